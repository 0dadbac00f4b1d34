package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/auth"
	"github.com/GioRdrz/food-delivery/internal/models"
	"github.com/GioRdrz/food-delivery/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	if auth.CurrentUser(c).Role != models.RoleAdmin {
		respondError(c, apperr.Forbiddenf("not enough permissions"))
		return
	}

	offset, limit := pagination(c)
	users, err := h.users.List(offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c))
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	actor := auth.CurrentUser(c)
	if actor.Role != models.RoleAdmin && actor.ID != c.Param("id") {
		respondError(c, apperr.Forbiddenf("not enough permissions"))
		return
	}

	user, err := h.users.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FullName  *string `json:"full_name"`
	IsActive  *bool   `json:"is_active"`
	IsBlocked *bool   `json:"is_blocked"`
}

// PATCH /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	actor := auth.CurrentUser(c)
	if actor.Role != models.RoleAdmin && actor.ID != c.Param("id") {
		respondError(c, apperr.Forbiddenf("not enough permissions"))
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only admins flip the moderation flags.
	if actor.Role != models.RoleAdmin && (req.IsActive != nil || req.IsBlocked != nil) {
		respondError(c, apperr.Forbiddenf("not enough permissions"))
		return
	}

	user, err := h.users.Update(c.Param("id"), service.UserUpdate{
		Email:     req.Email,
		Password:  req.Password,
		FullName:  req.FullName,
		IsActive:  req.IsActive,
		IsBlocked: req.IsBlocked,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if auth.CurrentUser(c).Role != models.RoleAdmin {
		respondError(c, apperr.Forbiddenf("not enough permissions"))
		return
	}

	if err := h.users.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
