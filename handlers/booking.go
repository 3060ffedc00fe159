package handlers

import (
	"net/http"

	"voltcare/middleware"
	"voltcare/services/draft"
	"voltcare/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking wizard over HTTP.
type BookingHandler struct {
	Wizard wizard.WizardService
	Drafts draft.DraftStore
	Logger *zap.Logger
}

func NewBookingHandler(w wizard.WizardService, drafts draft.DraftStore, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Wizard: w, Drafts: drafts, Logger: logger}
}

// StartSession opens a wizard session. A vehicleId in the body deep-links the
// wizard straight to step two.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		VehicleID int64 `json:"vehicleId"`
	}
	// Body is optional.
	_ = c.ShouldBindJSON(&input)

	sess, err := h.Wizard.StartSession(c.Request.Context(), middleware.AuthToken(c), middleware.CustomerID(c), input.VehicleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// GetSession returns the wizard session.
func (h *BookingHandler) GetSession(c *gin.Context) {
	sess, err := h.Wizard.GetSession(c.Request.Context(), middleware.CustomerID(c), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// HasDraft reports whether a pending booking draft exists, without consuming
// it. The storefront uses this to offer "Continue Booking" instead of "Buy Now".
func (h *BookingHandler) HasDraft(c *gin.Context) {
	has, err := h.Drafts.PeekHasDraft(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasDraft": has})
}

// wizardEvent binds the generic event payload posted by the client.
type wizardEvent struct {
	Type      string `json:"type" binding:"required"`
	VehicleID int64  `json:"vehicleId,omitempty"`
	CenterID  int64  `json:"centerId,omitempty"`
	Date      string `json:"date,omitempty"`
	SlotID    int64  `json:"slotId,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func (e wizardEvent) toEvent() (wizard.Event, bool) {
	switch e.Type {
	case "selectVehicle":
		return wizard.SelectVehicle{VehicleID: e.VehicleID}, true
	case "selectCenter":
		return wizard.SelectCenter{CenterID: e.CenterID}, true
	case "selectDate":
		return wizard.SelectDate{Date: e.Date}, true
	case "selectSlot":
		return wizard.SelectSlot{SlotID: e.SlotID}, true
	case "setNotes":
		return wizard.SetNotes{Notes: e.Notes}, true
	case "next":
		return wizard.Next{}, true
	case "back":
		return wizard.Back{}, true
	default:
		return nil, false
	}
}

// HandleEvent applies one wizard event to the session.
func (h *BookingHandler) HandleEvent(c *gin.Context) {
	var input wizardEvent
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	ev, ok := input.toEvent()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event type: " + input.Type})
		return
	}

	result, err := h.Wizard.HandleEvent(c.Request.Context(), middleware.AuthToken(c), middleware.CustomerID(c), c.Param("sessionID"), ev)
	if err != nil && result == nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"session": result.Session, "sideExit": result.SideExit}
	if err != nil {
		// The selection was accepted but an effect (e.g. the slot fetch)
		// failed; return the new state alongside the error.
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// GetSlots returns the session's current slot list.
func (h *BookingHandler) GetSlots(c *gin.Context) {
	sess, err := h.Wizard.GetSession(c.Request.Context(), middleware.CustomerID(c), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": sess.Slots})
}

// Submit books the appointment and resolves payment.
func (h *BookingHandler) Submit(c *gin.Context) {
	outcome, err := h.Wizard.Submit(c.Request.Context(), middleware.AuthToken(c), middleware.CustomerID(c), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

// Cancel discards the session and any pending draft.
func (h *BookingHandler) Cancel(c *gin.Context) {
	if err := h.Wizard.Cancel(c.Request.Context(), middleware.CustomerID(c), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}
