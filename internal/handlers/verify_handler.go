package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storehouse/internal/services"
)

type VerifyHandler struct {
	verification services.VerificationService
}

func NewVerifyHandler(verification services.VerificationService) *VerifyHandler {
	return &VerifyHandler{verification: verification}
}

type verifyEmailRequest struct {
	ID   string `json:"id" binding:"required"`
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// @Summary      Подтверждение email
// @Description  Принимает id и код, ставит email_verified и гасит entry
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        verify  body      verifyEmailRequest  true  "id и код"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  map[string]string
// @Failure      429     {object}  map[string]string
// @Router       /verify-email [post]
func (h *VerifyHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	err := h.verification.VerifyEmail(c.Request.Context(), c.ClientIP(), req.ID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit",
				"message": "Too many requests. Please try again later.",
			})
		case errors.Is(err, services.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "code_expired",
				"message": "Verification code expired. Please generate a new verification code.",
			})
		case errors.Is(err, services.ErrCodeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_code",
				"message": "Please check your entered code",
			})
		default:
			log.Printf("[verify][confirm] error id=%s err=%v", req.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    gin.H{"emailVerified": true},
		"message": "Email Verified",
	})
}
