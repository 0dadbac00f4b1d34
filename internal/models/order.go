package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order. Transitions between
// statuses are guarded by the policy package.
type OrderStatus string

const (
	StatusPlaced     OrderStatus = "placed"
	StatusCanceled   OrderStatus = "canceled"
	StatusProcessing OrderStatus = "processing"
	StatusInRoute    OrderStatus = "in_route"
	StatusDelivered  OrderStatus = "delivered"
	StatusReceived   OrderStatus = "received"
)

// Valid reports whether s is one of the defined order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPlaced, StatusCanceled, StatusProcessing, StatusInRoute, StatusDelivered, StatusReceived:
		return true
	}
	return false
}

type Order struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID   string          `gorm:"type:uuid;not null;index" json:"customer_id"`
	RestaurantID string          `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	Status       OrderStatus     `gorm:"not null;default:'placed'" json:"status"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	TipAmount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"tip_amount"`
	CouponID     *string         `gorm:"type:uuid" json:"coupon_id"`
	CreatedAt    time.Time       `json:"created_at"`

	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"status_history"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is a frozen snapshot of one cart line. PriceAtOrder is copied
// from the meal at creation time and never recomputed from the live catalog.
type OrderItem struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID      string          `gorm:"type:uuid;not null;index" json:"order_id"`
	MealID       string          `gorm:"type:uuid;not null;index" json:"meal_id"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	PriceAtOrder decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_at_order"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// OrderStatusHistory is the append-only audit trail of status changes.
// The first row of every order is always StatusPlaced.
type OrderStatusHistory struct {
	ID              string      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         string      `gorm:"type:uuid;not null;index" json:"order_id"`
	Status          OrderStatus `gorm:"not null" json:"status"`
	ChangedAt       time.Time   `gorm:"not null" json:"changed_at"`
	ChangedByUserID *string     `gorm:"type:uuid" json:"changed_by_user_id"`
}

func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.ChangedAt.IsZero() {
		h.ChangedAt = time.Now().UTC()
	}
	return nil
}
