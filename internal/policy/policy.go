// Package policy is the single source of truth for order-status
// transitions: which statuses may follow which, and which role may request
// the change. It is a pure function of the current status, the target
// status, the acting principal, and the ownership relation.
package policy

import (
	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/models"
)

// allowedTransitions maps each status to the set of statuses it may move to.
// canceled and received are terminal.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPlaced:     {models.StatusCanceled, models.StatusProcessing},
	models.StatusProcessing: {models.StatusCanceled, models.StatusInRoute},
	models.StatusInRoute:    {models.StatusDelivered},
	models.StatusDelivered:  {models.StatusReceived},
	models.StatusCanceled:   {},
	models.StatusReceived:   {},
}

// TransitionRequest carries everything the guard needs to decide.
type TransitionRequest struct {
	Current models.OrderStatus
	Target  models.OrderStatus

	ActorID   string
	ActorRole models.UserRole

	OrderCustomerID   string
	RestaurantOwnerID string
}

// AuthorizeTransition validates a requested status change. The transition
// table is checked first; only table-legal transitions proceed to the role
// and ownership checks.
func AuthorizeTransition(req TransitionRequest) error {
	if !transitionAllowed(req.Current, req.Target) {
		return apperr.InvalidStatef("cannot transition from %s to %s", req.Current, req.Target)
	}

	switch req.ActorRole {
	case models.RoleCustomer:
		if req.ActorID != req.OrderCustomerID {
			return apperr.Forbiddenf("not your order")
		}
		if req.Target != models.StatusCanceled && req.Target != models.StatusReceived {
			return apperr.Forbiddenf("customers can only cancel orders or mark them as received")
		}
		if req.Target == models.StatusCanceled && req.Current != models.StatusPlaced {
			return apperr.InvalidStatef("can only cancel orders that are in placed status")
		}
		return nil

	case models.RoleRestaurantOwner:
		if req.ActorID != req.RestaurantOwnerID {
			return apperr.Forbiddenf("not your restaurant's order")
		}
		if req.Target == models.StatusReceived {
			return apperr.Forbiddenf("only customers can mark orders as received")
		}
		return nil

	case models.RoleAdmin:
		return nil

	default:
		return apperr.Forbiddenf("role %s may not change order status", req.ActorRole)
	}
}

func transitionAllowed(current, target models.OrderStatus) bool {
	for _, allowed := range allowedTransitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}
