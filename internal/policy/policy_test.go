package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/models"
	"github.com/GioRdrz/food-delivery/internal/policy"
)

var allStatuses = []models.OrderStatus{
	models.StatusPlaced,
	models.StatusCanceled,
	models.StatusProcessing,
	models.StatusInRoute,
	models.StatusDelivered,
	models.StatusReceived,
}

var legalTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPlaced:     {models.StatusCanceled, models.StatusProcessing},
	models.StatusProcessing: {models.StatusCanceled, models.StatusInRoute},
	models.StatusInRoute:    {models.StatusDelivered},
	models.StatusDelivered:  {models.StatusReceived},
	models.StatusCanceled:   {},
	models.StatusReceived:   {},
}

func isLegal(from, to models.OrderStatus) bool {
	for _, t := range legalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Every pair outside the transition table fails InvalidState regardless of
// role, including for admins.
func TestIllegalTransitionsFailForEveryRole(t *testing.T) {
	roles := []models.UserRole{models.RoleCustomer, models.RoleRestaurantOwner, models.RoleAdmin}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			if isLegal(from, to) {
				continue
			}
			for _, role := range roles {
				err := policy.AuthorizeTransition(policy.TransitionRequest{
					Current:           from,
					Target:            to,
					ActorID:           "actor-1",
					ActorRole:         role,
					OrderCustomerID:   "actor-1",
					RestaurantOwnerID: "actor-1",
				})
				assert.Error(t, err, "%s -> %s should fail for %s", from, to, role)
				assert.Equal(t, apperr.InvalidState, apperr.KindOf(err), "%s -> %s for %s", from, to, role)
			}
		}
	}
}

func TestAdminMayPerformEveryLegalTransition(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range legalTransitions[from] {
			err := policy.AuthorizeTransition(policy.TransitionRequest{
				Current:   from,
				Target:    to,
				ActorID:   "admin-1",
				ActorRole: models.RoleAdmin,
				// Admin needs no ownership relation at all.
				OrderCustomerID:   "someone-else",
				RestaurantOwnerID: "someone-else",
			})
			assert.NoError(t, err, "admin %s -> %s", from, to)
		}
	}
}

func TestCustomerRules(t *testing.T) {
	base := policy.TransitionRequest{
		ActorID:           "cust-1",
		ActorRole:         models.RoleCustomer,
		OrderCustomerID:   "cust-1",
		RestaurantOwnerID: "owner-1",
	}

	t.Run("may cancel a placed order", func(t *testing.T) {
		req := base
		req.Current, req.Target = models.StatusPlaced, models.StatusCanceled
		assert.NoError(t, policy.AuthorizeTransition(req))
	})

	t.Run("may mark a delivered order received", func(t *testing.T) {
		req := base
		req.Current, req.Target = models.StatusDelivered, models.StatusReceived
		assert.NoError(t, policy.AuthorizeTransition(req))
	})

	t.Run("cannot cancel once processing", func(t *testing.T) {
		req := base
		req.Current, req.Target = models.StatusProcessing, models.StatusCanceled
		err := policy.AuthorizeTransition(req)
		assert.Error(t, err)
		assert.Equal(t, apperr.InvalidState, apperr.KindOf(err))
	})

	t.Run("cannot move an order into processing", func(t *testing.T) {
		req := base
		req.Current, req.Target = models.StatusPlaced, models.StatusProcessing
		err := policy.AuthorizeTransition(req)
		assert.Error(t, err)
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	})

	t.Run("cannot touch someone else's order with any target", func(t *testing.T) {
		for _, from := range allStatuses {
			for _, to := range legalTransitions[from] {
				req := base
				req.OrderCustomerID = "cust-2"
				req.Current, req.Target = from, to
				err := policy.AuthorizeTransition(req)
				assert.Error(t, err, "%s -> %s", from, to)
				assert.Equal(t, apperr.Forbidden, apperr.KindOf(err), "%s -> %s", from, to)
			}
		}
	})
}

func TestRestaurantOwnerRules(t *testing.T) {
	base := policy.TransitionRequest{
		ActorID:           "owner-1",
		ActorRole:         models.RoleRestaurantOwner,
		OrderCustomerID:   "cust-1",
		RestaurantOwnerID: "owner-1",
	}

	t.Run("may process, route, deliver and cancel", func(t *testing.T) {
		cases := []struct{ from, to models.OrderStatus }{
			{models.StatusPlaced, models.StatusProcessing},
			{models.StatusPlaced, models.StatusCanceled},
			{models.StatusProcessing, models.StatusInRoute},
			{models.StatusProcessing, models.StatusCanceled},
			{models.StatusInRoute, models.StatusDelivered},
		}
		for _, tc := range cases {
			req := base
			req.Current, req.Target = tc.from, tc.to
			assert.NoError(t, policy.AuthorizeTransition(req), "%s -> %s", tc.from, tc.to)
		}
	})

	t.Run("cannot mark received", func(t *testing.T) {
		req := base
		req.Current, req.Target = models.StatusDelivered, models.StatusReceived
		err := policy.AuthorizeTransition(req)
		assert.Error(t, err)
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	})

	t.Run("cannot touch another owner's order", func(t *testing.T) {
		req := base
		req.RestaurantOwnerID = "owner-2"
		req.Current, req.Target = models.StatusPlaced, models.StatusProcessing
		err := policy.AuthorizeTransition(req)
		assert.Error(t, err)
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	})
}

func TestUnknownRoleForbidden(t *testing.T) {
	err := policy.AuthorizeTransition(policy.TransitionRequest{
		Current:   models.StatusPlaced,
		Target:    models.StatusProcessing,
		ActorID:   "actor-1",
		ActorRole: "courier",
	})
	assert.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}
