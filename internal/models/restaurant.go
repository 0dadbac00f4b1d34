package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Restaurant struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"not null;index" json:"name"`
	Description string `json:"description"`
	OwnerID     string `gorm:"type:uuid;not null;index" json:"owner_id"`
	IsBlocked   bool   `gorm:"not null;default:false" json:"is_blocked"`

	Owner *User  `gorm:"foreignKey:OwnerID" json:"-"`
	Meals []Meal `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"meals,omitempty"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
