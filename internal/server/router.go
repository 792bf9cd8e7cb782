package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	indexersvc "github.com/0xPexy/sentra-inspect/internal/indexer/service"
)

func NewRouter(reader *indexersvc.Reader, hub *EventHub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	evalH := newEvaluationHandler(reader, hub)
	addrH := newAddressHandler(reader)
	api := r.Group("/api/v1")
	{
		api.GET("/evaluations", evalH.ListEvaluations)
		api.GET("/evaluations/:txHash", evalH.EvaluationDetail)
		api.GET("/stats/overview", evalH.StatsOverview)
		api.GET("/addresses/:address", addrH.LookupAddress)
		api.GET("/events", evalH.StreamEvents)
	}
	return r
}
