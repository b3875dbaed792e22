package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"report_manager/internal/apperrors"
	"report_manager/internal/models"
	"report_manager/internal/services"
)

type UserHandler struct {
	userService     services.UserService
	activityService services.ActivityService
}

func NewUserHandler(userService services.UserService, activityService services.ActivityService) *UserHandler {
	return &UserHandler{userService: userService, activityService: activityService}
}

// ListUsers returns the active member directory for the team calendar.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.GetActiveUsers()
	if err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
		return
	}
	c.JSON(http.StatusOK, users)
}

type CreateUserRequest struct {
	ActorID  uint   `json:"actor_id"`
	Username string `json:"username"`
	Name     string `json:"display_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(c, fmt.Errorf("%w: missing required field", apperrors.ErrValidation))
		return
	}
	if err := h.userService.RequireAdmin(req.ActorID); err != nil {
		writeError(c, err)
		return
	}

	role := req.Role
	if role == "" {
		role = string(models.RoleUser)
	}
	user := &models.User{
		Username:    req.Username,
		DisplayName: req.Name,
		Email:       req.Email,
		Role:        role,
		IsActive:    true,
	}
	if err := h.userService.CreateUser(user, req.Password); err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetActivity serves the activity feed, per user or global.
func (h *UserHandler) GetActivity(c *gin.Context) {
	limit, _ := queryInt(c, "limit")

	if c.Query("userId") != "" {
		userID, err := queryUint(c, "userId")
		if err != nil {
			writeError(c, err)
			return
		}
		entries, err := h.activityService.GetUserActivity(userID, limit)
		if err != nil {
			writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	entries, err := h.activityService.GetRecentActivity(limit)
	if err != nil {
		writeError(c, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err))
		return
	}
	c.JSON(http.StatusOK, entries)
}
