package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GioRdrz/food-delivery/internal/models"
)

type OrderRepository interface {
	GetByID(id string) (*models.Order, error)
	List(offset, limit int) ([]models.Order, error)
	ListByCustomer(customerID string) ([]models.Order, error)
	ListByRestaurant(restaurantID string) ([]models.Order, error)

	// Create persists the order together with its items and its initial
	// status-history row in a single transaction: all rows become visible
	// together or none do.
	Create(order *models.Order) error

	// UpdateStatus re-reads the order under a row lock, calls authorize on
	// the fresh copy, and only then writes the new status plus one history
	// row, all inside one transaction. A concurrent writer therefore never
	// races the check-then-write.
	UpdateStatus(id string, target models.OrderStatus, changedBy string, authorize func(current *models.Order) error) (*models.Order, error)

	// Delete removes the order and cascades to its items and history.
	Delete(id string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Offset(offset).Limit(limit).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListByCustomer(customerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("customer_id = ?", customerID).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListByRestaurant(restaurantID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("restaurant_id = ?", restaurantID).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		items := order.Items
		history := order.StatusHistory
		order.Items = nil
		order.StatusHistory = nil

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.CreateInBatches(&items, len(items)).Error; err != nil {
				return err
			}
		}

		for i := range history {
			history[i].OrderID = order.ID
		}
		if len(history) > 0 {
			if err := tx.Create(&history).Error; err != nil {
				return err
			}
		}

		order.Items = items
		order.StatusHistory = history
		return nil
	})
}

func (r *orderRepository) UpdateStatus(id string, target models.OrderStatus, changedBy string, authorize func(current *models.Order) error) (*models.Order, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		read := tx
		// sqlite has no FOR UPDATE and serializes writers on its own; the
		// row lock is only needed where concurrent transactions exist.
		if tx.Dialector.Name() != "sqlite" {
			read = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var order models.Order
		err := read.First(&order, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := authorize(&order); err != nil {
			return err
		}

		if err := tx.Model(&order).Update("status", target).Error; err != nil {
			return err
		}

		row := models.OrderStatusHistory{
			OrderID:         order.ID,
			Status:          target,
			ChangedAt:       time.Now().UTC(),
			ChangedByUserID: &changedBy,
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func (r *orderRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderStatusHistory{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", id).Error
	})
}
