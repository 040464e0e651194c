package repository

import (
	"time"

	"microsite-shop/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByID(id uint) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) error

	// Dashboard aggregates
	TotalRevenue() (decimal.Decimal, error)
	Count() (int64, error)
	FindRecent(limit int) ([]model.Order, error)
	FindCreatedSince(since time.Time) ([]model.Order, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Create inserts the order with its line items using tx.
func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Omit("User").Create(order).Error
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	orders := []model.Order{}
	err := r.db.Preload("Items.Product").Order("created_at DESC, id DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Items.Product").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByUserID(userID uint) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatus(id uint, status model.OrderStatus) error {
	res := r.db.Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepo) TotalRevenue() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.Order{}).Select("COALESCE(SUM(total), 0)").Row().Scan(&total)
	return total, err
}

func (r *orderRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Order{}).Count(&n).Error
	return n, err
}

func (r *orderRepo) FindRecent(limit int) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindCreatedSince(since time.Time) ([]model.Order, error) {
	orders := []model.Order{}
	err := r.db.Select("id", "total", "created_at").
		Where("created_at >= ?", since).
		Find(&orders).Error
	return orders, err
}
