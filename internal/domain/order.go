package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money fields render as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	OrderStatusPending = "pending"

	PaymentMethodCard = "card"
	PaymentMethodBank = "bank"
)

// Order is created once per checkout submission and never updated by
// this core afterwards. Status progression (paid, shipped) belongs to
// the payment webhook, which is out of scope.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	UserID          uint            `json:"userId" gorm:"not null;index"`
	TotalAmount     decimal.Decimal `json:"totalAmount" gorm:"type:numeric(12,2);not null"`
	VATAmount       decimal.Decimal `json:"vatAmount" gorm:"type:numeric(12,2);not null"`
	Status          string          `json:"status" gorm:"not null;default:pending"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"not null"`
	PaymentIntentID string          `json:"paymentIntentId,omitempty"`
	Items           []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderItem snapshots the unit price and volume tier at order time.
// Snapshots stay authoritative even if the catalog price changes later.
type OrderItem struct {
	ID         uint            `json:"-" gorm:"primaryKey"`
	OrderID    uint            `json:"-" gorm:"not null;index"`
	ProductID  uint            `json:"productId" gorm:"not null"`
	Quantity   int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice  decimal.Decimal `json:"pricePerUnit" gorm:"type:numeric(12,2);not null"`
	VolumeTier string          `json:"volumeTier" gorm:"not null"`
}
