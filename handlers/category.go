package handlers

import (
	"net/http"

	"finance-api/models"
	"finance-api/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Service *services.FinanceService
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Service.CreateCategory(c.Request.Context(), user, req.Name)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) List(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}

	categories, err := h.Service.ListCategories(c.Request.Context(), user)
	if err != nil {
		serviceError(c, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Rename(c *gin.Context) {
	user := currentUser(c, h.Service)
	if user == nil {
		return
	}

	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Service.RenameCategory(c.Request.Context(), user, c.Param("id"), req.Name)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}
