package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Coupon struct {
	ID                 string          `gorm:"type:uuid;primaryKey" json:"id"`
	Code               string          `gorm:"uniqueIndex;not null" json:"code"`
	DiscountPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"discount_percentage"`
	IsActive           bool            `gorm:"not null;default:true" json:"is_active"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
