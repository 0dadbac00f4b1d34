package service_test

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/db"
	"github.com/GioRdrz/food-delivery/internal/models"
	"github.com/GioRdrz/food-delivery/internal/repository"
	"github.com/GioRdrz/food-delivery/internal/service"
)

type testEnv struct {
	db          *gorm.DB
	orders      *service.OrderService
	mealRepo    repository.MealRepository
	customer    *models.User
	owner       *models.User
	admin       *models.User
	restaurant  *models.Restaurant
	meal        *models.Meal // priced 15.99
	coupon10    *models.Coupon
	inactiveCpn *models.Coupon
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(testDB); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	orderRepo := repository.NewOrderRepository(testDB)
	restaurantRepo := repository.NewRestaurantRepository(testDB)
	mealRepo := repository.NewMealRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)

	env := &testEnv{
		db:       testDB,
		orders:   service.NewOrderService(orderRepo, restaurantRepo, mealRepo, couponRepo, log),
		mealRepo: mealRepo,
	}

	env.customer = &models.User{Email: "customer@example.com", HashedPassword: "x", Role: models.RoleCustomer, IsActive: true}
	env.owner = &models.User{Email: "owner@example.com", HashedPassword: "x", Role: models.RoleRestaurantOwner, IsActive: true}
	env.admin = &models.User{Email: "admin@example.com", HashedPassword: "x", Role: models.RoleAdmin, IsActive: true}
	for _, u := range []*models.User{env.customer, env.owner, env.admin} {
		assert.NoError(t, testDB.Create(u).Error)
	}

	env.restaurant = &models.Restaurant{Name: "Testaurant", OwnerID: env.owner.ID}
	assert.NoError(t, testDB.Create(env.restaurant).Error)

	env.meal = &models.Meal{Name: "Margherita", Price: dec("15.99"), RestaurantID: env.restaurant.ID}
	assert.NoError(t, testDB.Create(env.meal).Error)

	env.coupon10 = &models.Coupon{Code: "SAVE10", DiscountPercentage: dec("10"), IsActive: true}
	env.inactiveCpn = &models.Coupon{Code: "EXPIRED", DiscountPercentage: dec("50"), IsActive: false}
	assert.NoError(t, testDB.Create(env.coupon10).Error)
	assert.NoError(t, testDB.Create(env.inactiveCpn).Error)

	return env
}

func (e *testEnv) line(quantity int) []service.OrderLine {
	return []service.OrderLine{{MealID: e.meal.ID, Quantity: quantity}}
}

func TestCreateOrder(t *testing.T) {

	t.Run("one meal with tip and no coupon", func(t *testing.T) {
		env := newTestEnv(t)

		order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("5.00"), "")
		assert.NoError(t, err)
		assert.Equal(t, models.StatusPlaced, order.Status)
		assert.True(t, order.TotalAmount.Equal(dec("20.99")), "total = %s", order.TotalAmount)
		assert.Len(t, order.Items, 1)
		assert.True(t, order.Items[0].PriceAtOrder.Equal(dec("15.99")))
		assert.Len(t, order.StatusHistory, 1)
		assert.Equal(t, models.StatusPlaced, order.StatusHistory[0].Status)
		assert.Equal(t, env.customer.ID, *order.StatusHistory[0].ChangedByUserID)
	})

	t.Run("ten percent coupon and no tip", func(t *testing.T) {
		env := newTestEnv(t)

		order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0.00"), "SAVE10")
		assert.NoError(t, err)
		assert.True(t, order.TotalAmount.Equal(dec("14.39")), "total = %s", order.TotalAmount)
		assert.NotNil(t, order.CouponID)
		assert.Equal(t, env.coupon10.ID, *order.CouponID)
	})

	t.Run("total survives later catalog price changes", func(t *testing.T) {
		env := newTestEnv(t)

		order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(2), dec("1.00"), "")
		assert.NoError(t, err)

		env.meal.Price = dec("99.99")
		assert.NoError(t, env.mealRepo.Update(env.meal))

		reread, err := env.orders.GetOrder(order.ID)
		assert.NoError(t, err)

		// Recompute from the persisted snapshots, not the live catalog.
		expected := reread.Items[0].PriceAtOrder.
			Mul(decimal.NewFromInt(int64(reread.Items[0].Quantity))).
			Add(reread.TipAmount).Round(2)
		assert.True(t, reread.TotalAmount.Equal(expected), "total %s != snapshot-derived %s", reread.TotalAmount, expected)
		assert.True(t, reread.Items[0].PriceAtOrder.Equal(dec("15.99")))
	})

	t.Run("rejects non-customer", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.orders.CreateOrder(env.owner, env.restaurant.ID, env.line(1), dec("0"), "")
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	})

	t.Run("rejects unknown restaurant", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.orders.CreateOrder(env.customer, "00000000-0000-0000-0000-000000000000", env.line(1), dec("0"), "")
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})

	t.Run("rejects blocked restaurant", func(t *testing.T) {
		env := newTestEnv(t)
		env.restaurant.IsBlocked = true
		assert.NoError(t, env.db.Save(env.restaurant).Error)

		_, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "")
		assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
	})

	t.Run("rejects blocked meal by name", func(t *testing.T) {
		env := newTestEnv(t)
		env.meal.IsBlocked = true
		assert.NoError(t, env.db.Save(env.meal).Error)

		_, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "")
		assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
		assert.Contains(t, apperr.Reason(err), "Margherita")
	})

	t.Run("rejects unknown meal naming the id", func(t *testing.T) {
		env := newTestEnv(t)

		missing := "11111111-1111-1111-1111-111111111111"
		_, err := env.orders.CreateOrder(env.customer, env.restaurant.ID,
			[]service.OrderLine{{MealID: missing, Quantity: 1}}, dec("0"), "")
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
		assert.Contains(t, apperr.Reason(err), missing)
	})

	t.Run("rejects cart mixing restaurants and writes nothing", func(t *testing.T) {
		env := newTestEnv(t)

		other := &models.Restaurant{Name: "Other", OwnerID: env.owner.ID}
		assert.NoError(t, env.db.Create(other).Error)
		foreignMeal := &models.Meal{Name: "Ramen", Price: dec("11.00"), RestaurantID: other.ID}
		assert.NoError(t, env.db.Create(foreignMeal).Error)

		_, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, []service.OrderLine{
			{MealID: env.meal.ID, Quantity: 1},
			{MealID: foreignMeal.ID, Quantity: 1},
		}, dec("0"), "")
		assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))

		var count int64
		assert.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		assert.NoError(t, env.db.Model(&models.OrderItem{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("rejects unknown coupon", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "NOPE")
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})

	t.Run("rejects inactive coupon", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "EXPIRED")
		assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
	})
}

func TestUpdateStatus(t *testing.T) {

	t.Run("owner moves placed order to processing", func(t *testing.T) {
		env := newTestEnv(t)

		order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "")
		assert.NoError(t, err)

		updated, err := env.orders.UpdateStatus(env.owner, order.ID, models.StatusProcessing)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusProcessing, updated.Status)
		assert.Len(t, updated.StatusHistory, 2)
		assert.Equal(t, models.StatusPlaced, updated.StatusHistory[0].Status)
		assert.Equal(t, models.StatusProcessing, updated.StatusHistory[1].Status)
		assert.Equal(t, env.owner.ID, *updated.StatusHistory[1].ChangedByUserID)
	})

	t.Run("customer cannot cancel once processing", func(t *testing.T) {
		env := newTestEnv(t)

		order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "")
		assert.NoError(t, err)
		_, err = env.orders.UpdateStatus(env.owner, order.ID, models.StatusProcessing)
		assert.NoError(t, err)

		_, err = env.orders.UpdateStatus(env.customer, order.ID, models.StatusCanceled)
		assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))

		// No history row for the failed attempt.
		reread, err := env.orders.GetOrder(order.ID)
		assert.NoError(t, err)
		assert.Len(t, reread.StatusHistory, 2)
	})

	t.Run("stranger customer cannot transition at all", func(t *testing.T) {
		env := newTestEnv(t)

		order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "")
		assert.NoError(t, err)

		stranger := &models.User{Email: "other@example.com", HashedPassword: "x", Role: models.RoleCustomer, IsActive: true}
		assert.NoError(t, env.db.Create(stranger).Error)

		_, err = env.orders.UpdateStatus(stranger, order.ID, models.StatusCanceled)
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	})

	t.Run("full delivery flow ends received", func(t *testing.T) {
		env := newTestEnv(t)

		order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "")
		assert.NoError(t, err)

		for _, step := range []models.OrderStatus{models.StatusProcessing, models.StatusInRoute, models.StatusDelivered} {
			_, err = env.orders.UpdateStatus(env.owner, order.ID, step)
			assert.NoError(t, err, "owner -> %s", step)
		}

		final, err := env.orders.UpdateStatus(env.customer, order.ID, models.StatusReceived)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusReceived, final.Status)
		assert.Len(t, final.StatusHistory, 5)

		// Terminal: even the admin cannot move it further.
		_, err = env.orders.UpdateStatus(env.admin, order.ID, models.StatusCanceled)
		assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
	})

	t.Run("unknown order", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.orders.UpdateStatus(env.admin, "22222222-2222-2222-2222-222222222222", models.StatusCanceled)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})

	t.Run("rejects undefined status value", func(t *testing.T) {
		env := newTestEnv(t)

		order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "")
		assert.NoError(t, err)

		_, err = env.orders.UpdateStatus(env.admin, order.ID, "refunded")
		assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
	})
}

func TestGetOrderIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(2), dec("3.00"), "SAVE10")
	assert.NoError(t, err)

	first, err := env.orders.GetOrder(order.ID)
	assert.NoError(t, err)
	second, err := env.orders.GetOrder(order.ID)
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Status, second.Status)
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	assert.Equal(t, len(first.Items), len(second.Items))
	assert.Equal(t, len(first.StatusHistory), len(second.StatusHistory))
}

func TestDeleteOrder(t *testing.T) {
	env := newTestEnv(t)

	order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "")
	assert.NoError(t, err)

	err = env.orders.DeleteOrder(env.customer, order.ID)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	err = env.orders.DeleteOrder(env.owner, order.ID)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	assert.NoError(t, env.orders.DeleteOrder(env.admin, order.ID))

	_, err = env.orders.GetOrder(order.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	var count int64
	assert.NoError(t, env.db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	assert.NoError(t, env.db.Model(&models.OrderStatusHistory{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	err = env.orders.DeleteOrder(env.admin, order.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestListForUser(t *testing.T) {
	env := newTestEnv(t)

	order, err := env.orders.CreateOrder(env.customer, env.restaurant.ID, env.line(1), dec("0"), "")
	assert.NoError(t, err)

	stranger := &models.User{Email: "other@example.com", HashedPassword: "x", Role: models.RoleCustomer, IsActive: true}
	assert.NoError(t, env.db.Create(stranger).Error)

	mine, err := env.orders.ListForUser(env.customer, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)

	theirs, err := env.orders.ListForUser(stranger, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, theirs, 0)

	owned, err := env.orders.ListForUser(env.owner, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, owned, 1)

	all, err := env.orders.ListForUser(env.admin, 0, 100)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}
