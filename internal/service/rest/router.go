package rest

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/road23/candleshop/internal/service/orchestrator"
)

// NewRouter собирает HTTP-маршруты магазина поверх оркестратора.
func NewRouter(orc *orchestrator.Orchestrator, logger *log.Entry) *gin.Engine {
	if logger == nil {
		logger = log.New().WithField("layer", "http")
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	candles := NewCandleHandler(orc)
	categories := NewCategoryHandler(orc)
	orders := NewOrderHandler(orc)

	api := router.Group("/api")
	{
		cg := api.Group("/candles")
		{
			cg.GET("", candles.List)
			cg.GET("/:id", candles.GetByID)
			cg.GET("/name/:name", candles.GetByName)
			cg.GET("/category/:categoryId", candles.ListByCategory)
			cg.POST("", candles.Create)
			cg.PUT("/:id", candles.Update)
			cg.DELETE("/:id", candles.Delete)
		}

		ctg := api.Group("/categories")
		{
			ctg.GET("", categories.List)
			ctg.GET("/:id", categories.GetByID)
			ctg.POST("", categories.Create)
			ctg.PUT("/:id", categories.Update)
			ctg.DELETE("/:id", categories.Delete)
		}

		og := api.Group("/orders")
		{
			og.GET("", orders.List)
			og.GET("/:id", orders.GetByID)
			og.GET("/customer/:customerId", orders.ListByCustomer)
			og.GET("/phone/:phone", orders.ListByPhone)
			og.GET("/date/:date", orders.ListByDate)
			og.GET("/minsum/:sum", orders.ListByMinSum)
			og.GET("/maxsum/:sum", orders.ListByMaxSum)
			og.POST("", orders.Create)
			og.PUT("/:id", orders.Update)
			og.DELETE("/:id", orders.Delete)
		}
	}

	return router
}
