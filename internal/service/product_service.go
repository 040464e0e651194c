package service

import (
	"fmt"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/internal/ws"

	"github.com/shopspring/decimal"
)

type ProductService interface {
	GetAllProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	CreateProduct(req *ProductRequest) (*model.Product, error)
	UpdateProduct(id uint, req *ProductRequest) (*model.Product, error)
	DeleteProduct(id uint) error
}

// ProductRequest is the admin create/update payload. Type defaults to physical.
type ProductRequest struct {
	Name        string            `json:"name" validate:"required,max=255"`
	Price       decimal.Decimal   `json:"price" validate:"gte=0"`
	CategoryID  *uint             `json:"categoryId"`
	Image       string            `json:"image"`
	Description string            `json:"description"`
	Stock       int               `json:"stock" validate:"gte=0"`
	Weight      int               `json:"weight" validate:"gte=0"`
	Type        model.ProductType `json:"type" validate:"omitempty,product_type"`
	FileURL     string            `json:"fileUrl"`
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	events       EventPublisher
}

func NewProductService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, events EventPublisher) ProductService {
	if events == nil {
		events = NopPublisher
	}
	return &productService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		events:       events,
	}
}

func (s *productService) GetAllProducts(filter repository.ProductFilter) ([]model.Product, error) {
	if filter.Type != "" && filter.Type != model.ProductPhysical && filter.Type != model.ProductDigital {
		return nil, apperr.Validation(fmt.Sprintf("Invalid product type '%s'", filter.Type))
	}
	products, err := s.productRepo.FindAll(filter)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch products", err)
	}
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, apperr.Internal("Failed to fetch product", err)
	}
	return product, nil
}

func (s *productService) CreateProduct(req *ProductRequest) (*model.Product, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	product := &model.Product{}
	req.apply(product)
	if err := s.productRepo.Create(product); err != nil {
		return nil, apperr.Internal("Failed to create product", err)
	}
	return s.GetProductByID(product.ID)
}

func (s *productService) UpdateProduct(id uint, req *ProductRequest) (*model.Product, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	oldStock := product.Stock

	req.apply(product)
	product.Category = nil
	if err := s.productRepo.Update(product); err != nil {
		return nil, apperr.Internal("Failed to update product", err)
	}

	if !product.IsDigital() && product.Stock != oldStock {
		s.events.Publish(ws.Event{
			Type:    ws.EventStockUpdate,
			Message: fmt.Sprintf("Stock for '%s' is now %d", product.Name, product.Stock),
			Data: stockChange{
				ProductID: product.ID,
				Name:      product.Name,
				OldStock:  oldStock,
				NewStock:  product.Stock,
			},
		})
	}
	return s.GetProductByID(id)
}

func (s *productService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		if isNotFound(err) {
			return apperr.NotFound("Product not found")
		}
		return apperr.Internal("Failed to delete product", err)
	}
	return nil
}

// check validates the payload and that the referenced category exists.
func (s *productService) check(req *ProductRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			if isNotFound(err) {
				return apperr.Validation(fmt.Sprintf("Category %d not found", *req.CategoryID))
			}
			return apperr.Internal("Failed to fetch category", err)
		}
	}
	return nil
}

func (req *ProductRequest) apply(p *model.Product) {
	p.Name = req.Name
	p.Price = req.Price
	p.CategoryID = req.CategoryID
	p.Image = req.Image
	p.Description = req.Description
	p.Stock = req.Stock
	p.Weight = req.Weight
	if p.Weight == 0 {
		p.Weight = 1000
	}
	p.Type = req.Type
	if p.Type == "" {
		p.Type = model.ProductPhysical
	}
	p.FileURL = req.FileURL
	if p.Type == model.ProductPhysical {
		p.FileURL = ""
	}
}
