package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/GioRdrz/food-delivery/internal/auth"
	"github.com/GioRdrz/food-delivery/internal/service"
)

type MealHandler struct {
	meals *service.MealService
}

func NewMealHandler(meals *service.MealService) *MealHandler {
	return &MealHandler{meals: meals}
}

type CreateMealRequest struct {
	RestaurantID string          `json:"restaurant_id" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" binding:"required"`
}

// POST /api/meals
func (h *MealHandler) Create(c *gin.Context) {
	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.meals.Create(auth.CurrentUser(c), req.RestaurantID, req.Name, req.Description, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// GET /api/restaurants/:id/meals
func (h *MealHandler) ListByRestaurant(c *gin.Context) {
	meals, err := h.meals.ListByRestaurant(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

// GET /api/meals/:id
func (h *MealHandler) Get(c *gin.Context) {
	meal, err := h.meals.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

type UpdateMealRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsBlocked   *bool            `json:"is_blocked"`
}

// PATCH /api/meals/:id
func (h *MealHandler) Update(c *gin.Context) {
	var req UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := h.meals.Update(auth.CurrentUser(c), c.Param("id"), service.MealUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsBlocked:   req.IsBlocked,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DELETE /api/meals/:id
func (h *MealHandler) Delete(c *gin.Context) {
	if err := h.meals.Delete(auth.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
