package handlers

import (
	"net/http"

	"finance-api/models"
	"finance-api/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Service *services.FinanceService
}

func (h *UserHandler) Me(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}
	c.JSON(http.StatusOK, user)
}

// ============================================================================
// 2FA
// ============================================================================

func (h *UserHandler) SetupTOTP(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}

	setup, err := h.Service.SetupTOTP(c.Request.Context(), user)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, setup)
}

func (h *UserHandler) VerifyTOTP(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}

	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.ConfirmTOTP(c.Request.Context(), user, req.Code); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "2FA enabled"})
}

func (h *UserHandler) DisableTOTP(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}

	if err := h.Service.DisableTOTP(c.Request.Context(), user); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "2FA disabled"})
}
