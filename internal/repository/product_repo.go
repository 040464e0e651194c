package repository

import (
	"microsite-shop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows FindAll; zero values mean "any".
type ProductFilter struct {
	CategorySlug string
	Type         model.ProductType
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	CountByCategory(categoryID uint) (int64, error)
	CountLowStock(threshold int) (int64, error)

	// Transaction-scoped operations used by checkout.
	LockByID(tx *gorm.DB, id uint) (*model.Product, error)
	UpdateStock(tx *gorm.DB, id uint, newStock int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// withCategory preloads the category together with its product count.
func withCategory(db *gorm.DB) *gorm.DB {
	return db.Preload("Category", func(db *gorm.DB) *gorm.DB {
		return db.Select(categoryWithCount)
	})
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Omit("Category").Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	products := []model.Product{}
	q := withCategory(r.db).Order("products.id ASC")
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Type != "" {
		q = q.Where("products.type = ?", filter.Type)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := withCategory(r.db).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Omit("Category").Save(product).Error
}

// Delete removes the product but keeps order history: line items lose the
// reference and retain their name and price snapshot.
func (r *productRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.OrderItem{}).
			Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *productRepo) CountByCategory(categoryID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Product{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}

func (r *productRepo) CountLowStock(threshold int) (int64, error) {
	var n int64
	err := r.db.Model(&model.Product{}).
		Where("type = ? AND stock <= ?", model.ProductPhysical, threshold).
		Count(&n).Error
	return n, err
}

// LockByID reads the current row inside tx with SELECT ... FOR UPDATE where supported.
func (r *productRepo) LockByID(tx *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateStock accepts *gorm.DB (tx) so it can run inside a transaction
func (r *productRepo) UpdateStock(tx *gorm.DB, id uint, newStock int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", newStock).Error
}
