package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/models"
	"github.com/GioRdrz/food-delivery/internal/policy"
	"github.com/GioRdrz/food-delivery/internal/pricing"
	"github.com/GioRdrz/food-delivery/internal/repository"
)

// OrderLine is one (meal, quantity) pair of an inbound cart.
type OrderLine struct {
	MealID   string
	Quantity int
}

// OrderService owns the order lifecycle: cart validation, pricing, the
// atomic multi-row create, and guarded status transitions with their audit
// trail.
type OrderService struct {
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
	meals       repository.MealRepository
	coupons     repository.CouponRepository
	log         *slog.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	restaurants repository.RestaurantRepository,
	meals repository.MealRepository,
	coupons repository.CouponRepository,
	log *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:      orders,
		restaurants: restaurants,
		meals:       meals,
		coupons:     coupons,
		log:         log,
	}
}

// CreateOrder validates the cart against the catalog, prices it, and
// persists order + items + initial history atomically. Preconditions are
// checked in a fixed sequence; the first failure wins and nothing is
// written.
func (s *OrderService) CreateOrder(customer *models.User, restaurantID string, lines []OrderLine, tip decimal.Decimal, couponCode string) (*models.Order, error) {
	if customer.Role != models.RoleCustomer {
		s.log.Warn("non-customer attempted to place order", "user_id", customer.ID, "role", customer.Role)
		return nil, apperr.Forbiddenf("only customers can place orders")
	}

	restaurant, err := s.restaurants.GetByID(restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("restaurant not found")
		}
		return nil, apperr.Internalf(err, "failed to load restaurant")
	}
	if restaurant.IsBlocked {
		return nil, apperr.InvalidStatef("restaurant is blocked")
	}

	if len(lines) == 0 {
		return nil, apperr.InvalidStatef("order must contain at least one item")
	}

	items := make([]models.OrderItem, 0, len(lines))
	priced := make([]pricing.LineItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperr.InvalidStatef("quantity must be positive")
		}

		meal, err := s.meals.GetByID(line.MealID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperr.NotFoundf("meal with ID %s not found", line.MealID)
			}
			return nil, apperr.Internalf(err, "failed to load meal")
		}
		if meal.IsBlocked {
			return nil, apperr.InvalidStatef("meal %s is blocked", meal.Name)
		}
		if meal.RestaurantID != restaurantID {
			return nil, apperr.InvalidStatef("all meals must be from the same restaurant")
		}

		items = append(items, models.OrderItem{
			MealID:       meal.ID,
			Quantity:     line.Quantity,
			PriceAtOrder: meal.Price,
		})
		priced = append(priced, pricing.LineItem{UnitPrice: meal.Price, Quantity: line.Quantity})
	}

	var couponID *string
	var discount *decimal.Decimal
	if couponCode != "" {
		coupon, err := s.coupons.GetByCode(couponCode)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperr.NotFoundf("coupon not found")
			}
			return nil, apperr.Internalf(err, "failed to load coupon")
		}
		if !coupon.IsActive {
			return nil, apperr.InvalidStatef("coupon is not active")
		}
		couponID = &coupon.ID
		discount = &coupon.DiscountPercentage
	}

	total, err := pricing.Total(priced, discount, tip)
	if err != nil {
		return nil, err
	}

	changedBy := customer.ID
	order := &models.Order{
		CustomerID:   customer.ID,
		RestaurantID: restaurantID,
		Status:       models.StatusPlaced,
		TotalAmount:  total,
		TipAmount:    tip,
		CouponID:     couponID,
		Items:        items,
		StatusHistory: []models.OrderStatusHistory{{
			Status:          models.StatusPlaced,
			ChangedAt:       time.Now().UTC(),
			ChangedByUserID: &changedBy,
		}},
	}

	if err := s.orders.Create(order); err != nil {
		return nil, apperr.Internalf(err, "failed to create order")
	}

	s.log.Info("order created",
		"order_id", order.ID,
		"customer_id", customer.ID,
		"restaurant_id", restaurantID,
		"total", total.String(),
	)
	return order, nil
}

// UpdateStatus applies a guarded status transition and appends the audit
// row. The guard runs on a freshly locked copy of the order inside the
// store transaction, so a losing concurrent writer is re-validated, never
// blind-overwritten.
func (s *OrderService) UpdateStatus(actor *models.User, orderID string, target models.OrderStatus) (*models.Order, error) {
	if !target.Valid() {
		return nil, apperr.InvalidStatef("unknown order status: %s", target)
	}

	existing, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	// Owner id is immutable, so resolving it outside the lock is safe.
	restaurant, err := s.restaurants.GetByID(existing.RestaurantID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internalf(err, "failed to load restaurant")
	}
	var ownerID string
	if restaurant != nil {
		ownerID = restaurant.OwnerID
	}

	order, err := s.orders.UpdateStatus(orderID, target, actor.ID, func(current *models.Order) error {
		return policy.AuthorizeTransition(policy.TransitionRequest{
			Current:           current.Status,
			Target:            target,
			ActorID:           actor.ID,
			ActorRole:         actor.Role,
			OrderCustomerID:   current.CustomerID,
			RestaurantOwnerID: ownerID,
		})
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("order not found")
		}
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperr.Internalf(err, "failed to update order status")
	}

	s.log.Info("order status changed",
		"order_id", orderID,
		"status", target,
		"changed_by", actor.ID,
	)
	return order, nil
}

func (s *OrderService) GetOrder(orderID string) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("order not found")
		}
		return nil, apperr.Internalf(err, "failed to load order")
	}
	return order, nil
}

func (s *OrderService) ListOrders(offset, limit int) ([]models.Order, error) {
	orders, err := s.orders.List(offset, limit)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to list orders")
	}
	return orders, nil
}

func (s *OrderService) ListByCustomer(customerID string) ([]models.Order, error) {
	orders, err := s.orders.ListByCustomer(customerID)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to list orders")
	}
	return orders, nil
}

func (s *OrderService) ListByRestaurant(restaurantID string) ([]models.Order, error) {
	orders, err := s.orders.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to list orders")
	}
	return orders, nil
}

// ListForUser scopes the listing to what the actor may see: admins see
// everything, customers their own orders, owners the orders of their
// restaurants. The scoping ids come from the principal, never the client.
func (s *OrderService) ListForUser(actor *models.User, offset, limit int) ([]models.Order, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return s.ListOrders(offset, limit)
	case models.RoleCustomer:
		return s.ListByCustomer(actor.ID)
	case models.RoleRestaurantOwner:
		restaurants, err := s.restaurants.ListByOwner(actor.ID)
		if err != nil {
			return nil, apperr.Internalf(err, "failed to list restaurants")
		}
		orders := []models.Order{}
		for _, restaurant := range restaurants {
			batch, err := s.ListByRestaurant(restaurant.ID)
			if err != nil {
				return nil, err
			}
			orders = append(orders, batch...)
		}
		return orders, nil
	default:
		return []models.Order{}, nil
	}
}

// DeleteOrder removes an order and cascades to its items and history.
// Administrators only.
func (s *OrderService) DeleteOrder(actor *models.User, orderID string) error {
	if actor.Role != models.RoleAdmin {
		return apperr.Forbiddenf("only admins can delete orders")
	}

	if _, err := s.GetOrder(orderID); err != nil {
		return err
	}

	if err := s.orders.Delete(orderID); err != nil {
		return apperr.Internalf(err, "failed to delete order")
	}

	s.log.Info("order deleted", "order_id", orderID, "deleted_by", actor.ID)
	return nil
}
