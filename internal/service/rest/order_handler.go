package rest

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/road23/candleshop/internal/domain"
	"github.com/road23/candleshop/internal/service/orchestrator"
)

// OrderHandler обслуживает операции над заказами.
type OrderHandler struct {
	orc *orchestrator.Orchestrator
}

// NewOrderHandler создаёт обработчик заказов.
func NewOrderHandler(orc *orchestrator.Orchestrator) *OrderHandler {
	return &OrderHandler{orc: orc}
}

func projectOrder(payload interface{}) interface{} {
	return orderToView(payload.(domain.Order))
}

func projectOrderList(payload interface{}) interface{} {
	return orderListView(payload.([]domain.Order))
}

// List — GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	respond(c, h.orc.Orders(), projectOrderList)
}

// GetByID — GET /api/orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	respond(c, h.orc.OrderByID(id), projectOrder)
}

// ListByCustomer — GET /api/orders/customer/:customerId
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		badRequest(c, "invalid customer id")
		return
	}
	respond(c, h.orc.OrdersByCustomer(customerID), projectOrderList)
}

// ListByPhone — GET /api/orders/phone/:phone
func (h *OrderHandler) ListByPhone(c *gin.Context) {
	respond(c, h.orc.OrdersByPhone(c.Param("phone")), projectOrderList)
}

// ListByDate — GET /api/orders/date/:date, дата в формате 2006-01-02.
func (h *OrderHandler) ListByDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		badRequest(c, "invalid date, expected YYYY-MM-DD")
		return
	}
	respond(c, h.orc.OrdersByDate(date), projectOrderList)
}

// ListByMinSum — GET /api/orders/minsum/:sum
func (h *OrderHandler) ListByMinSum(c *gin.Context) {
	sum, err := strconv.ParseInt(c.Param("sum"), 10, 64)
	if err != nil {
		badRequest(c, "invalid minimum sum")
		return
	}
	respond(c, h.orc.OrdersByMinSum(sum), projectOrderList)
}

// ListByMaxSum — GET /api/orders/maxsum/:sum
func (h *OrderHandler) ListByMaxSum(c *gin.Context) {
	sum, err := strconv.ParseInt(c.Param("sum"), 10, 64)
	if err != nil {
		badRequest(c, "invalid maximum sum")
		return
	}
	respond(c, h.orc.OrdersByMaxSum(sum), projectOrderList)
}

// Create — POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var body OrderView
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	ord := orderFromView(body)
	ord.ID = 0
	respond(c, h.orc.CreateOrder(ord), projectOrder)
}

// Update — PUT /api/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	var body OrderView
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	respond(c, h.orc.UpdateOrder(id, orderFromView(body)), projectOrder)
}

// Delete — DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid order id")
		return
	}
	respond(c, h.orc.DeleteOrder(id), nil)
}
