package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/GioRdrz/food-delivery/internal/auth"
	"github.com/GioRdrz/food-delivery/internal/service"
)

type CouponHandler struct {
	coupons *service.CouponService
}

func NewCouponHandler(coupons *service.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

type CreateCouponRequest struct {
	Code               string          `json:"code" binding:"required"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" binding:"required"`
}

// POST /api/coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := h.coupons.Create(auth.CurrentUser(c), req.Code, req.DiscountPercentage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

// GET /api/coupons
func (h *CouponHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	coupons, err := h.coupons.List(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// GET /api/coupons/:id
func (h *CouponHandler) Get(c *gin.Context) {
	coupon, err := h.coupons.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

type UpdateCouponRequest struct {
	Code               *string          `json:"code"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	IsActive           *bool            `json:"is_active"`
}

// PATCH /api/coupons/:id
func (h *CouponHandler) Update(c *gin.Context) {
	var req UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := h.coupons.Update(auth.CurrentUser(c), c.Param("id"), service.CouponUpdate{
		Code:               req.Code,
		DiscountPercentage: req.DiscountPercentage,
		IsActive:           req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// DELETE /api/coupons/:id
func (h *CouponHandler) Delete(c *gin.Context) {
	if err := h.coupons.Delete(auth.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
