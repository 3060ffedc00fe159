package routes

import (
	"net/http"
	"time"

	"voltcare/handlers"
	"voltcare/middleware"
	"voltcare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers wired in main.
type HandlerBundle struct {
	Cart    *handlers.CartHandler
	Booking *handlers.BookingHandler
	Catalog *handlers.CatalogHandler
	Payment *handlers.PaymentHandler
}

// RegisterCatalogRoutes registers the proxied directory/catalog reads.
func RegisterCatalogRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthCustomerMiddleware())
	{
		api.GET("/vehicles", hb.Catalog.ListVehicles)
		api.GET("/centers", hb.Catalog.ListCenters)
		api.GET("/centers/:id/slots", hb.Catalog.ListCenterSlots)
		api.GET("/services", hb.Catalog.ListServices)
		api.GET("/packages", hb.Catalog.ListPackages)
		api.GET("/subscriptions", hb.Catalog.ListSubscriptions)
	}
}

// RegisterPaymentRoutes registers the payment callback lookups.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	api.Use(middleware.JWTAuthCustomerMiddleware())
	{
		api.GET("/outcome/:code", hb.Payment.GetOutcomeByCode)
		api.GET("/outcomes", hb.Payment.ListOutcomes)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes wires CORS and every route group onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCartRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
}
