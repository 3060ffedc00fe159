package handlers

import (
	"net/http"
	"strconv"

	"voltcare/middleware"
	"voltcare/models"
	cartsvc "voltcare/services/cart"
	"voltcare/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CartHandler exposes the session cart over HTTP.
type CartHandler struct {
	Cart          cartsvc.CartStore
	Subscriptions wizard.SubscriptionDirectory
	Logger        *zap.Logger
}

func NewCartHandler(store cartsvc.CartStore, subs wizard.SubscriptionDirectory, logger *zap.Logger) *CartHandler {
	return &CartHandler{Cart: store, Subscriptions: subs, Logger: logger}
}

// GetCart returns the priced cart. When a vehicleId query parameter is given,
// services covered by that vehicle's active subscriptions are priced at zero.
func (h *CartHandler) GetCart(c *gin.Context) {
	customerID := middleware.CustomerID(c)
	cart, err := h.Cart.Get(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}

	var subs []models.Subscription
	if v := c.Query("vehicleId"); v != "" {
		vehicleID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicleId"})
			return
		}
		subs, err = h.Subscriptions.ListActiveSubscriptionsForVehicle(c.Request.Context(), middleware.AuthToken(c), vehicleID)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, cartsvc.Summarize(cart, subs))
}

// AddService adds a service from the catalog to the cart.
func (h *CartHandler) AddService(c *gin.Context) {
	var input struct {
		Service         models.Service `json:"service"`
		AlreadyIncluded bool           `json:"alreadyIncluded"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.Service.ID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service id is required"})
		return
	}

	customerID := middleware.CustomerID(c)
	cart, err := h.Cart.Get(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	cart.AddService(input.Service)
	if input.AlreadyIncluded {
		cart.MarkAlreadyIncluded(input.Service.ID)
	}
	if err := h.Cart.Save(c.Request.Context(), cart); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalItemCount": cart.TotalItemCount()})
}

// AddPackage adds a package from the catalog to the cart.
func (h *CartHandler) AddPackage(c *gin.Context) {
	var input struct {
		Package models.Package `json:"package"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.Package.ID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "package id is required"})
		return
	}

	customerID := middleware.CustomerID(c)
	cart, err := h.Cart.Get(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	cart.AddPackage(input.Package)
	if err := h.Cart.Save(c.Request.Context(), cart); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalItemCount": cart.TotalItemCount()})
}

// SetQuantity overwrites a service entry's quantity; zero removes the entry.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	var input struct {
		Quantity  int  `json:"quantity"`
		IsPackage bool `json:"isPackage"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	customerID := middleware.CustomerID(c)
	cart, err := h.Cart.Get(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	cart.SetQuantity(id, input.Quantity, input.IsPackage)
	if err := h.Cart.Save(c.Request.Context(), cart); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalItemCount": cart.TotalItemCount()})
}

// RemoveItem deletes an entry by (id, isPackage).
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	isPackage := c.Query("isPackage") == "true"

	customerID := middleware.CustomerID(c)
	cart, err := h.Cart.Get(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	cart.RemoveItem(id, isPackage)
	if err := h.Cart.Save(c.Request.Context(), cart); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalItemCount": cart.TotalItemCount()})
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	customerID := middleware.CustomerID(c)
	if err := h.Cart.Clear(c.Request.Context(), customerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalItemCount": 0})
}
