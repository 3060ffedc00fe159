package handlers

import (
	"net/http"

	outcomeRepo "voltcare/database/repository/outcome"
	"voltcare/middleware"
	"voltcare/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves the payment callback page's re-association lookup.
type PaymentHandler struct {
	Gateway  payment.PaymentGateway
	Outcomes outcomeRepo.OutcomeRepository
	Logger   *zap.Logger
}

func NewPaymentHandler(gateway payment.PaymentGateway, outcomes outcomeRepo.OutcomeRepository, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Gateway: gateway, Outcomes: outcomes, Logger: logger}
}

// GetOutcomeByCode resolves a payment code back to its recorded outcome and
// the gateway's current view of the payment.
func (h *PaymentHandler) GetOutcomeByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment code is required"})
		return
	}

	rec, err := h.Outcomes.GetByPaymentCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no booking found for this payment code"})
		return
	}
	if rec.CustomerID != middleware.CustomerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "this payment belongs to another customer"})
		return
	}

	status, err := h.Gateway.GetByCode(c.Request.Context(), middleware.AuthToken(c), code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcome": rec, "payment": status})
}

// ListOutcomes returns the customer's settled bookings, newest first.
func (h *PaymentHandler) ListOutcomes(c *gin.Context) {
	records, err := h.Outcomes.ListByCustomer(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcomes": records})
}
