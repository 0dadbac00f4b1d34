package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer        UserRole = "customer"
	RoleRestaurantOwner UserRole = "restaurant_owner"
	RoleAdmin           UserRole = "admin"
)

type User struct {
	ID             string   `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string   `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string   `gorm:"not null" json:"-"`
	FullName       string   `json:"full_name"`
	Role           UserRole `gorm:"not null;default:'customer'" json:"role"`
	IsActive       bool     `gorm:"not null;default:true" json:"is_active"`
	IsBlocked      bool     `gorm:"not null;default:false" json:"is_blocked"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
