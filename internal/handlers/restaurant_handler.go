package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GioRdrz/food-delivery/internal/auth"
	"github.com/GioRdrz/food-delivery/internal/service"
)

type RestaurantHandler struct {
	restaurants *service.RestaurantService
}

func NewRestaurantHandler(restaurants *service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// POST /api/restaurants
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant, err := h.restaurants.Create(auth.CurrentUser(c), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

// GET /api/restaurants
func (h *RestaurantHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	restaurants, err := h.restaurants.List(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurants)
}

// GET /api/restaurants/:id
func (h *RestaurantHandler) Get(c *gin.Context) {
	restaurant, err := h.restaurants.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

type UpdateRestaurantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsBlocked   *bool   `json:"is_blocked"`
}

// PATCH /api/restaurants/:id
func (h *RestaurantHandler) Update(c *gin.Context) {
	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant, err := h.restaurants.Update(auth.CurrentUser(c), c.Param("id"), service.RestaurantUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsBlocked:   req.IsBlocked,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// DELETE /api/restaurants/:id
func (h *RestaurantHandler) Delete(c *gin.Context) {
	if err := h.restaurants.Delete(auth.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
