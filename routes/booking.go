package routes

import (
	"voltcare/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterCartRoutes registers the session cart endpoints.
func RegisterCartRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/cart")
	api.Use(middleware.JWTAuthCustomerMiddleware())
	{
		api.GET("", hb.Cart.GetCart)
		api.POST("/services", hb.Cart.AddService)
		api.POST("/packages", hb.Cart.AddPackage)
		api.PUT("/items/:id/quantity", hb.Cart.SetQuantity)
		api.DELETE("/items/:id", hb.Cart.RemoveItem)
		api.DELETE("", hb.Cart.ClearCart)
	}
}

// RegisterBookingRoutes registers the booking wizard endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/booking")
	api.Use(middleware.JWTAuthCustomerMiddleware())
	{
		api.GET("/draft", hb.Booking.HasDraft)
		api.POST("/sessions", hb.Booking.StartSession)
		api.GET("/sessions/:sessionID", hb.Booking.GetSession)
		api.POST("/sessions/:sessionID/events", hb.Booking.HandleEvent)
		api.GET("/sessions/:sessionID/slots", hb.Booking.GetSlots)
		api.POST("/sessions/:sessionID/submit", hb.Booking.Submit)
		api.DELETE("/sessions/:sessionID", hb.Booking.Cancel)
	}
}
