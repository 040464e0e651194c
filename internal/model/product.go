package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductType string

const (
	ProductPhysical ProductType = "physical"
	ProductDigital  ProductType = "digital"
)

// LowStockThreshold is the stock level at or below which a physical product is flagged.
const LowStockThreshold = 5

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CategoryID  *uint           `gorm:"index" json:"categoryId"`
	Category    *Category       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty"`
	Image       string          `gorm:"type:text" json:"image"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Weight      int             `gorm:"not null;default:1000" json:"weight"` // grams
	Type        ProductType     `gorm:"type:varchar(20);not null;default:physical;index" json:"type"`
	FileURL     string          `gorm:"type:text" json:"fileUrl,omitempty"`
}

// IsDigital reports whether the product bypasses stock accounting.
func (p *Product) IsDigital() bool {
	return p.Type == ProductDigital
}

// AfterFind keeps the catalog from ever showing negative stock.
func (p *Product) AfterFind(tx *gorm.DB) error {
	if p.Stock < 0 {
		p.Stock = 0
	}
	return nil
}
