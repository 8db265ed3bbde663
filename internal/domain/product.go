package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product is a catalog item. The core never mutates products; they are
// written by the seed program and read by everything else.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"uniqueIndex;not null"`
	Category    string          `json:"category" gorm:"not null"`
	BasePrice   decimal.Decimal `json:"basePrice" gorm:"type:numeric(12,2);not null"`
	Unit        string          `json:"unit" gorm:"not null"`
	Stock       int             `json:"stock" gorm:"not null"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	PriceTiers  datatypes.JSON  `json:"priceTiers,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PriceTier is one volume price break, stored as JSON on the product.
// The tier label ends up on order items as the applied-tier snapshot.
type PriceTier struct {
	Label       string          `json:"label"`
	MinQuantity int             `json:"minQuantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}
