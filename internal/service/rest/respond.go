package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/road23/candleshop/internal/service/orchestrator"
)

const (
	viewBasic = "basic"
	viewFull  = "full"
)

// ErrorResponse — тело ответа для неуспешных исходов.
type ErrorResponse struct {
	Status   string   `json:"status"`
	Messages []string `json:"messages,omitempty"`
}

// respond транслирует исход агрегатной операции в HTTP-ответ.
// Конфликт уникальности отдаётся как 422, внутренняя ошибка — без деталей.
func respond(c *gin.Context, res orchestrator.Result, project func(payload interface{}) interface{}) {
	switch res.Kind {
	case orchestrator.KindOK:
		payload := res.Payload
		if project != nil && payload != nil {
			payload = project(payload)
		}
		if payload == nil {
			c.Status(http.StatusOK)
			return
		}
		c.JSON(http.StatusOK, payload)
	case orchestrator.KindNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Status: res.Kind.String(), Messages: res.Messages})
	case orchestrator.KindValidationFailed:
		c.JSON(http.StatusBadRequest, ErrorResponse{Status: res.Kind.String(), Messages: res.Messages})
	case orchestrator.KindConflict:
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Status: res.Kind.String(), Messages: res.Messages})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Status: res.Kind.String(), Messages: []string{"internal error"}})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Status:   orchestrator.KindValidationFailed.String(),
		Messages: []string{message},
	})
}
