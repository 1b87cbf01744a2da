// File: clinicbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicbook/config"
	"clinicbook/database"
	bookingRepo "clinicbook/database/repository/booking"
	practitionerRepo "clinicbook/database/repository/practitioner"
	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/routes"
	"clinicbook/services/scheduling"
	"clinicbook/utils"
	"clinicbook/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterCORS(router)

	// repositories.
	practitioners := practitionerRepo.NewMongoPractitionerRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	if err := practitioners.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure practitioner indexes: %v", err)
	}
	// The unique slot index is the double-booking guard; refusing to start
	// without it is deliberate.
	if err := bookings.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// services.
	engine := &scheduling.DefaultSchedulingEngine{
		Practitioners: practitioners,
		Bookings:      bookings,
		Cache:         scheduling.NewRedisAvailabilityCache(time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second),
		DemoSlots:     config.AppConfig.UseDemoSlots,
	}

	slotHandler := handlers.NewSlotHandler(engine)
	bookingHandler := handlers.NewBookingHandler(engine)

	// Register routes.
	routes.RegisterHealthRoute(router)
	routes.RegisterUserRoutes(router)
	routes.RegisterSlotRoutes(router, slotHandler)
	routes.RegisterReservationRoutes(router, bookingHandler)

	// Background reconciliation and cache warming.
	worker.Init(engine, bookings, practitioners)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
