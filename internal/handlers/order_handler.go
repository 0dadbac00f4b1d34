package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/auth"
	"github.com/GioRdrz/food-delivery/internal/models"
	"github.com/GioRdrz/food-delivery/internal/service"
)

type OrderHandler struct {
	orders      *service.OrderService
	restaurants *service.RestaurantService
}

func NewOrderHandler(orders *service.OrderService, restaurants *service.RestaurantService) *OrderHandler {
	return &OrderHandler{orders: orders, restaurants: restaurants}
}

type CreateOrderItemRequest struct {
	MealID   string `json:"meal_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	RestaurantID string                   `json:"restaurant_id" binding:"required"`
	Items        []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TipAmount    decimal.Decimal          `json:"tip_amount"`
	CouponCode   string                   `json:"coupon_code"`
}

// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lines := make([]service.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.OrderLine{MealID: item.MealID, Quantity: item.Quantity})
	}

	order, err := h.orders.CreateOrder(auth.CurrentUser(c), req.RestaurantID, lines, req.TipAmount, req.CouponCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.UpdateStatus(auth.CurrentUser(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	orders, err := h.orders.ListForUser(auth.CurrentUser(c), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/my-orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user.Role != models.RoleCustomer {
		respondError(c, apperr.Forbiddenf("only customers can access this endpoint"))
		return
	}

	orders, err := h.orders.ListByCustomer(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/restaurant/:id
func (h *OrderHandler) ListByRestaurant(c *gin.Context) {
	user := auth.CurrentUser(c)

	restaurant, err := h.restaurants.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if user.Role != models.RoleAdmin && restaurant.OwnerID != user.ID {
		respondError(c, apperr.Forbiddenf("not your restaurant"))
		return
	}

	orders, err := h.orders.ListByRestaurant(restaurant.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	user := auth.CurrentUser(c)

	order, err := h.orders.GetOrder(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	switch user.Role {
	case models.RoleCustomer:
		if order.CustomerID != user.ID {
			respondError(c, apperr.Forbiddenf("not your order"))
			return
		}
	case models.RoleRestaurantOwner:
		restaurant, err := h.restaurants.GetByID(order.RestaurantID)
		if err != nil {
			respondError(c, err)
			return
		}
		if restaurant.OwnerID != user.ID {
			respondError(c, apperr.Forbiddenf("not your restaurant's order"))
			return
		}
	}

	c.JSON(http.StatusOK, order)
}

// DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orders.DeleteOrder(auth.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return offset, limit
}
