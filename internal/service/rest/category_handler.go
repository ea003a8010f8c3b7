package rest

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/road23/candleshop/internal/domain"
	"github.com/road23/candleshop/internal/service/orchestrator"
)

// CategoryHandler обслуживает CRUD категорий каталога.
type CategoryHandler struct {
	orc *orchestrator.Orchestrator
}

// NewCategoryHandler создаёт обработчик категорий.
func NewCategoryHandler(orc *orchestrator.Orchestrator) *CategoryHandler {
	return &CategoryHandler{orc: orc}
}

// List — GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	respond(c, h.orc.Categories(), func(payload interface{}) interface{} {
		return categoryListView(payload.([]domain.CandleCategory))
	})
}

// GetByID — GET /api/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid category id")
		return
	}
	respond(c, h.orc.CategoryByID(id), func(payload interface{}) interface{} {
		return categoryToView(payload.(domain.CandleCategory))
	})
}

// Create — POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var body CategoryView
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		badRequest(c, "category name is required")
		return
	}
	respond(c, h.orc.CreateCategory(body.Name), func(payload interface{}) interface{} {
		return categoryToView(payload.(domain.CandleCategory))
	})
}

// Update — PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid category id")
		return
	}
	var body CategoryView
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		badRequest(c, "category name is required")
		return
	}
	respond(c, h.orc.UpdateCategory(id, body.Name), func(payload interface{}) interface{} {
		return categoryToView(payload.(domain.CandleCategory))
	})
}

// Delete — DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid category id")
		return
	}
	respond(c, h.orc.DeleteCategory(id), nil)
}
