package routes

import (
	"net/http"
	"strings"
	"time"

	"clinicbook/config"
	"clinicbook/handlers"
	"clinicbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCORS configures cross-origin access for the booking frontend.
func RegisterCORS(r *gin.Engine) {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if origins := strings.TrimSpace(config.AppConfig.AllowedOrigins); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	r.Use(cors.New(cfg))
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/api", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name": "Clinic Reservation API",
			"endpoints": gin.H{
				"slots":        "GET /api/slots",
				"reservations": "POST /api/reservations",
			},
		})
	})
}

// RegisterUserRoutes registers identity endpoints.
func RegisterUserRoutes(r *gin.Engine) {
	r.GET("/users/me", middleware.AuthMiddleware(), handlers.Me)
}

// RegisterSlotRoutes registers availability endpoints. Auth is optional:
// anonymous callers get the shared grid, authenticated callers additionally
// see their own booked slots as unreservable.
func RegisterSlotRoutes(r *gin.Engine, sh *handlers.SlotHandler) {
	api := r.Group("/api")
	api.Use(middleware.OptionalAuthMiddleware())
	{
		api.GET("/departments", handlers.GetDepartments)
		api.GET("/slots", sh.GetSlots)
		api.GET("/slots/week", sh.GetSlotsWeek)
	}
}

// RegisterReservationRoutes registers the booking workflow endpoints.
func RegisterReservationRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/reservations")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("", bh.CreateReservation)
		api.GET("", bh.ListReservations)
		api.PUT("/:id", bh.UpdateReservation)
		api.DELETE("/:id", bh.CancelReservation)
	}
}
