package service

import (
	"fmt"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/logger"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/internal/ws"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	Checkout(req *CheckoutRequest, userID *uint) (*model.Order, error)
	GetAllOrders() ([]model.Order, error)
	GetOrderByID(id uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	UpdateStatus(id uint, status string) (*model.Order, error)
}

// CheckoutItem is one cart line; ID is the product id.
type CheckoutItem struct {
	ID       uint            `json:"id" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
}

type CheckoutRequest struct {
	Email           string           `json:"email" validate:"required,email"`
	FirstName       string           `json:"firstName" validate:"required,max=100"`
	LastName        string           `json:"lastName" validate:"max=100"`
	Address         string           `json:"address" validate:"required"`
	City            string           `json:"city" validate:"required,max=100"`
	PostalCode      string           `json:"postalCode" validate:"required,max=20"`
	Items           []CheckoutItem   `json:"items" validate:"required,min=1,dive"`
	Total           decimal.Decimal  `json:"total" validate:"gte=0"`
	Subtotal        *decimal.Decimal `json:"subtotal" validate:"omitempty,gte=0"`
	ShippingCost    *decimal.Decimal `json:"shippingCost" validate:"omitempty,gte=0"`
	ShippingCourier string           `json:"shippingCourier" validate:"max=50"`
	ShippingService string           `json:"shippingService" validate:"max=100"`
}

type orderService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	events      EventPublisher
}

func NewOrderService(db *gorm.DB, pRepo repository.ProductRepository, oRepo repository.OrderRepository, uRepo repository.UserRepository, events EventPublisher) OrderService {
	if events == nil {
		events = NopPublisher
	}
	return &orderService{
		db:          db,
		productRepo: pRepo,
		orderRepo:   oRepo,
		userRepo:    uRepo,
		events:      events,
	}
}

type stockChange struct {
	ProductID uint   `json:"productId"`
	Name      string `json:"name"`
	OldStock  int    `json:"oldStock"`
	NewStock  int    `json:"newStock"`
}

// Checkout re-reads every product, decrements physical stock and writes the order
// with its items in one transaction. Any failure rolls everything back.
func (s *orderService) Checkout(req *CheckoutRequest, userID *uint) (*model.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// A token for a user that no longer exists degrades to guest checkout.
	var owner *uint
	if userID != nil {
		if user, err := s.userRepo.FindByID(*userID); err == nil {
			owner = &user.ID
		}
	}

	order := &model.Order{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Address:         req.Address,
		City:            req.City,
		PostalCode:      req.PostalCode,
		Total:           req.Total,
		Subtotal:        req.Subtotal,
		ShippingCost:    req.ShippingCost,
		ShippingCourier: req.ShippingCourier,
		ShippingService: req.ShippingService,
		Status:          model.OrderPending,
		UserID:          owner,
	}

	var changes []stockChange
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items := make([]model.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			product, err := s.productRepo.LockByID(tx, it.ID)
			if err != nil {
				if isNotFound(err) {
					return apperr.Validation(fmt.Sprintf("Product %d not found", it.ID))
				}
				return err
			}

			if !product.IsDigital() {
				if product.Stock < it.Quantity {
					return apperr.Validation("Insufficient stock for " + product.Name)
				}
				newStock := product.Stock - it.Quantity
				if err := s.productRepo.UpdateStock(tx, product.ID, newStock); err != nil {
					return err
				}
				changes = append(changes, stockChange{
					ProductID: product.ID,
					Name:      product.Name,
					OldStock:  product.Stock,
					NewStock:  newStock,
				})
			}

			productID := product.ID
			items = append(items, model.OrderItem{
				ProductID:   &productID,
				ProductName: product.Name,
				Quantity:    it.Quantity,
				Price:       it.Price,
			})
		}

		order.Items = items
		return s.orderRepo.Create(tx, order)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			logger.Get().WithField("email", req.Email).Info("checkout rejected: " + err.Error())
			return nil, err
		}
		return nil, apperr.Internal("Failed to create order", err)
	}

	s.warnOnTotalMismatch(order)
	s.publishCheckout(order, changes)
	return order, nil
}

// The caller's total is stored as sent; a disagreement with the line items is only logged.
func (s *orderService) warnOnTotalMismatch(order *model.Order) {
	expected := order.ItemsTotal()
	if order.ShippingCost != nil {
		expected = expected.Add(*order.ShippingCost)
	}
	if !expected.Equal(order.Total) {
		logger.Get().WithFields(map[string]interface{}{
			"order_id": order.ID,
			"total":    order.Total.String(),
			"expected": expected.String(),
		}).Warn("order total differs from items plus shipping")
	}
}

func (s *orderService) publishCheckout(order *model.Order, changes []stockChange) {
	s.events.Publish(ws.Event{
		Type:    ws.EventOrderCreated,
		Message: fmt.Sprintf("New order #%d from %s %s", order.ID, order.FirstName, order.LastName),
		Data: map[string]interface{}{
			"id":     order.ID,
			"total":  order.Total,
			"items":  len(order.Items),
			"status": order.Status,
		},
	})
	for _, ch := range changes {
		s.events.Publish(ws.Event{
			Type:    ws.EventStockUpdate,
			Message: fmt.Sprintf("Stock for '%s' is now %d", ch.Name, ch.NewStock),
			Data:    ch,
		})
	}
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, apperr.Internal("Failed to fetch order", err)
	}
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch orders", err)
	}
	return orders, nil
}

// UpdateStatus sets any known status regardless of the current one.
func (s *orderService) UpdateStatus(id uint, status string) (*model.Order, error) {
	st := model.OrderStatus(status)
	if !st.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("Invalid status '%s'", status))
	}

	if err := s.orderRepo.UpdateStatus(id, st); err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, apperr.Internal("Failed to update order status", err)
	}

	order, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}

	s.events.Publish(ws.Event{
		Type:    ws.EventOrderStatusUpdated,
		Message: fmt.Sprintf("Order #%d is now %s", order.ID, order.Status),
		Data:    map[string]interface{}{"id": order.ID, "status": order.Status},
	})
	return order, nil
}
