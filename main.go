package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"commontable-alerts/config"
	"commontable-alerts/controllers"
	"commontable-alerts/metrics"
	"commontable-alerts/models"
	"commontable-alerts/routes"
	"commontable-alerts/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.ConnectDB(cfg.DBURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.Subscriber{}); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	registry := services.NewGormRegistry(db)
	catalog := services.NewShelterStore(cfg.SheltersPath)
	digest := services.NewDigestService(catalog)
	sender := services.NewTwilioService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)

	dispatch, err := services.NewDispatchService(registry, digest, sender, logger, m, cfg.ScheduleTZ)
	if err != nil {
		logger.Fatal("failed to build dispatcher", zap.Error(err))
	}
	if err := dispatch.Start(cfg.ScheduleHour, cfg.ScheduleMinute); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer dispatch.Stop()

	subscriptionController := controllers.NewSubscriptionController(registry, sender, m, logger)
	dispatchController := controllers.NewDispatchController(dispatch, registry, cfg.CronSecret, logger)

	r := routes.SetupRouter(logger, subscriptionController, dispatchController)
	printRoutes(r)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
