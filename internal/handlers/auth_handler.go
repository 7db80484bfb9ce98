package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storehouse/internal/middleware"
	"storehouse/internal/models"
	"storehouse/internal/services"
)

type AuthHandler struct {
	userService    services.UserService
	sessionService services.SessionService
}

func NewAuthHandler(userService services.UserService, sessionService services.SessionService) *AuthHandler {
	return &AuthHandler{userService: userService, sessionService: sessionService}
}

// @Summary      Регистрация
// @Description  Создаёт пользователя и отправляет код подтверждения на email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        signup  body      models.SignupRequest  true  "Данные регистрации"
// @Success      201     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	res, err := h.userService.SignUp(c.Request.Context(), req.Name, email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "existing_user", "message": "User with this email already exists"})
		case errors.Is(err, services.ErrEmailSend):
			log.Printf("[auth][signup] email failure email=%s err=%v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "email_error", "message": "Error sending verification email"})
		default:
			log.Printf("[auth][signup] error email=%s err=%v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Server Error"})
		}
		return
	}

	// Мягкие лимиты выдачи пробрасываются как data, не как ошибка:
	// пользователь создан, код придёт после паузы/окна квоты.
	switch {
	case res.Issue.VerificationID != "":
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": res.Issue.VerificationID}})
	case res.Issue.SendLimitReached:
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"emailSendLimit": true}})
	default:
		c.JSON(http.StatusCreated, gin.H{"data": gin.H{"waitTime": res.Issue.WaitMinutes}})
	}
}

// @Summary      Повторная отправка кода
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Router       /resend-verification [post]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	issue, err := h.userService.ResendVerification(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, services.ErrEmailSend) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "email_error", "message": "Error sending verification email"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	switch {
	case issue.VerificationID != "":
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": issue.VerificationID}})
	case issue.SendLimitReached:
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"emailSendLimit": true}})
	default:
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"waitTime": issue.WaitMinutes}})
	}
}

// @Summary      Вход
// @Description  Проверяет пароль, создаёт сессию на 14 дней и лог входа
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	res, err := h.sessionService.Login(email, req.Password, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		default:
			log.Printf("[auth][login] error email=%q err=%v", email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Server Error"})
		}
		return
	}

	c.SetCookie(middleware.SessionCookie, res.AccessToken, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    res.User,
		"tokens": gin.H{
			"access_token": res.AccessToken,
		},
	})
}

// @Summary      Выход
// @Tags         Auth
// @Produce      json
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
		return
	}
	if err := h.sessionService.Logout(sessionID); err != nil {
		log.Printf("[auth][logout] error session=%s err=%v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "message": "Server Error"})
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
