package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"commontable-alerts/config"
	"commontable-alerts/controllers"
)

func SetupRouter(
	log *zap.Logger,
	subscriptions *controllers.SubscriptionController,
	dispatch *controllers.DispatchController,
) *gin.Engine {
	r := gin.Default()

	// The signup form lives in the separate web frontend.
	r.Use(cors.Default())
	r.Use(config.PerformanceLogger(log))

	api := r.Group("/api")
	{
		api.POST("/subscribe", subscriptions.Subscribe)
		api.POST("/unsubscribe", subscriptions.Unsubscribe)

		api.GET("/send-daily", dispatch.SendDaily)
		api.POST("/send-daily", dispatch.SendDaily)

		api.GET("/health", dispatch.Health)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
