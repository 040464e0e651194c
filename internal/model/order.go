package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status an admin may set, in lifecycle order.
var OrderStatuses = []OrderStatus{OrderPending, OrderPaid, OrderShipped, OrderCompleted, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Order struct {
	BaseModel
	Email           string           `gorm:"type:varchar(255);not null;index" json:"email"`
	FirstName       string           `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName        string           `gorm:"type:varchar(100)" json:"lastName"`
	Address         string           `gorm:"type:text;not null" json:"address"`
	City            string           `gorm:"type:varchar(100);not null" json:"city"`
	PostalCode      string           `gorm:"type:varchar(20);not null" json:"postalCode"`
	Total           decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"total"`
	Subtotal        *decimal.Decimal `gorm:"type:decimal(12,2)" json:"subtotal"`
	ShippingCost    *decimal.Decimal `gorm:"type:decimal(12,2)" json:"shippingCost"`
	ShippingCourier string           `gorm:"type:varchar(50)" json:"shippingCourier,omitempty"`
	ShippingService string           `gorm:"type:varchar(100)" json:"shippingService,omitempty"`
	Status          OrderStatus      `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`

	// Nil for guest checkout.
	UserID *uint `gorm:"index" json:"userId"`
	User   *User `gorm:"constraint:OnDelete:SET NULL;" json:"-"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`
}

// ItemsTotal is Σ price × quantity over the line items.
func (o *Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.LineTotal())
	}
	return sum
}

// OrderItem is an immutable line item. Price and ProductName are snapshots taken at checkout.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"index;not null" json:"orderId"`
	ProductID   *uint           `gorm:"index" json:"productId"`
	Product     *Product        `gorm:"constraint:OnDelete:SET NULL;" json:"product,omitempty"`
	ProductName string          `gorm:"type:varchar(255)" json:"productName"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (it OrderItem) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
