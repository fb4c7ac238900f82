package handlers

import (
	"net/http"

	"finance-api/models"
	"finance-api/services"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	Service *services.FinanceService
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}

	var req models.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.Service.RecordTransaction(c.Request.Context(), user, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *TransactionHandler) Report(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	transactions, err := h.Service.Report(c.Request.Context(), user, start, end)
	if err != nil {
		serviceError(c, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) Stats(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	stats, err := h.Service.Stats(c.Request.Context(), user, start, end)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Chart returns the per-category expense totals the client renders as a pie
// chart. An empty breakdown comes back 404 with no_data set, so the client
// shows a message instead of an empty image.
func (h *TransactionHandler) Chart(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}

	start, end, ok := parseDateRange(c)
	if !ok {
		return
	}

	totals, err := h.Service.CategoryBreakdown(c.Request.Context(), user, start, end)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}
