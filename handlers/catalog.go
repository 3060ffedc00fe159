package handlers

import (
	"net/http"
	"strconv"

	"voltcare/middleware"
	"voltcare/services/platform"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler proxies the platform's directory and catalog reads.
type CatalogHandler struct {
	Platform *platform.Client
	Logger   *zap.Logger
}

func NewCatalogHandler(client *platform.Client, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Platform: client, Logger: logger}
}

// ListVehicles returns the signed-in customer's vehicles.
func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.Platform.ListMyVehicles(c.Request.Context(), middleware.AuthToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// ListCenters returns all active service centers.
func (h *CatalogHandler) ListCenters(c *gin.Context) {
	centers, err := h.Platform.ListActiveCenters(c.Request.Context(), middleware.AuthToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"centers": centers})
}

// ListCenterSlots returns a center's available slots for a date.
func (h *CatalogHandler) ListCenterSlots(c *gin.Context) {
	centerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid center id"})
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}
	slots, err := h.Platform.ListAvailableSlots(c.Request.Context(), middleware.AuthToken(c), centerID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ListServices returns the purchasable services matching the filters.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	filters := platform.CatalogFilters{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	services, err := h.Platform.ListActiveServices(c.Request.Context(), middleware.AuthToken(c), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListPackages returns the purchasable service packages.
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	packages, err := h.Platform.ListPackages(c.Request.Context(), middleware.AuthToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

// ListSubscriptions returns a vehicle's active subscriptions.
func (h *CatalogHandler) ListSubscriptions(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Query("vehicleId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicleId"})
		return
	}
	subs, err := h.Platform.ListActiveSubscriptionsForVehicle(c.Request.Context(), middleware.AuthToken(c), vehicleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}
