package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/road23/candleshop/internal/domain"
	"github.com/road23/candleshop/internal/service/orchestrator"
)

// CandleHandler обслуживает операции каталога свечей.
type CandleHandler struct {
	orc *orchestrator.Orchestrator
}

// NewCandleHandler создаёт обработчик каталога.
func NewCandleHandler(orc *orchestrator.Orchestrator) *CandleHandler {
	return &CandleHandler{orc: orc}
}

// List — GET /api/candles?view=basic|full
func (h *CandleHandler) List(c *gin.Context) {
	view := c.DefaultQuery("view", viewBasic)
	respond(c, h.orc.Candles(), func(payload interface{}) interface{} {
		return candleListView(payload.([]domain.CandleAggregate), view)
	})
}

// GetByID — GET /api/candles/:id?view=basic|full
func (h *CandleHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid candle id")
		return
	}
	view := c.DefaultQuery("view", viewBasic)
	respond(c, h.orc.CandleByID(id), func(payload interface{}) interface{} {
		return candleView(payload.(domain.CandleAggregate), view)
	})
}

// GetByName — GET /api/candles/name/:name?view=basic|full
func (h *CandleHandler) GetByName(c *gin.Context) {
	view := c.DefaultQuery("view", viewBasic)
	respond(c, h.orc.CandleByName(c.Param("name")), func(payload interface{}) interface{} {
		return candleView(payload.(domain.CandleAggregate), view)
	})
}

// ListByCategory — GET /api/candles/category/:categoryId?view=basic|full
func (h *CandleHandler) ListByCategory(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		badRequest(c, "invalid category id")
		return
	}
	view := c.DefaultQuery("view", viewBasic)
	respond(c, h.orc.CandlesByCategory(categoryID), func(payload interface{}) interface{} {
		return candleListView(payload.([]domain.CandleAggregate), view)
	})
}

// Create — POST /api/candles?categoryId=N, тело — полное представление свечи.
func (h *CandleHandler) Create(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Query("categoryId"), 10, 64)
	if err != nil {
		badRequest(c, "invalid category id")
		return
	}
	var body CandleFullView
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	respond(c, h.orc.CreateCandle(categoryID, candleFromFullView(body)), func(payload interface{}) interface{} {
		return candleToFullView(payload.(domain.CandleAggregate))
	})
}

// Update — PUT /api/candles/:id, категория задаётся именем в теле.
func (h *CandleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid candle id")
		return
	}
	var body CandleFullView
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	respond(c, h.orc.UpdateCandle(id, body.Category, candleFromFullView(body)), func(payload interface{}) interface{} {
		return candleToFullView(payload.(domain.CandleAggregate))
	})
}

// Delete — DELETE /api/candles/:id
func (h *CandleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid candle id")
		return
	}
	respond(c, h.orc.DeleteCandle(id), nil)
}
