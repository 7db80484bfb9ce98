package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storehouse/internal/services"
)

type UserHandler struct {
	service        services.UserService
	sessionService services.SessionService
}

func NewUserHandler(service services.UserService, sessionService services.SessionService) *UserHandler {
	return &UserHandler{service: service, sessionService: sessionService}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.service.GetUserByID(currentUserID(c))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetMyLoginLogs — история входов текущего пользователя.
func (h *UserHandler) GetMyLoginLogs(c *gin.Context) {
	limit, offset := pagination(c)
	logs, err := h.sessionService.ListLoginLogs(currentUserID(c), limit, offset)
	if err != nil {
		log.Printf("[user][logins] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list login logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": logs})
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	user, err := h.service.GetUserByID(id)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.service.ListUsers(limit, offset)
	if err != nil {
		log.Printf("[user][list] error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (h *UserHandler) GetUserCount(c *gin.Context) {
	count, err := h.service.GetUserCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

type updateUserRequest struct {
	FullName     string `json:"full_name"`
	UserName     string `json:"user_name"`
	ProfilePhoto string `json:"profile_photo"`
	RoleID       int64  `json:"role_id"`
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	user, err := h.service.GetUserByID(id)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.UserName != "" {
		user.UserName = req.UserName
	}
	if req.ProfilePhoto != "" {
		user.ProfilePhoto = req.ProfilePhoto
	}
	if req.RoleID != 0 {
		user.RoleID = req.RoleID
	}

	if err := h.service.UpdateUser(user); err != nil {
		log.Printf("[user][update] error id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if err := h.service.DeleteUser(id); err != nil {
		log.Printf("[user][delete] error id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
