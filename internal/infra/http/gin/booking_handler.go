package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"stays/internal/app/commands"
	"stays/internal/app/dto"
	bookingapp "stays/internal/app/handlers/booking"
)

const idempotencyHeader = "Idempotency-Key"

type BookingHandler struct {
	Commands commands.Bus
}

type acknowledgeRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
	CheckIn   string `json:"checkin"`
	CheckOut  string `json:"checkout"`
	Guests    int    `json:"guests"`
}

// Acknowledge confirms a booking summary. Retries carrying the same
// Idempotency-Key replay the first acknowledgement.
func (h BookingHandler) Acknowledge(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req acknowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.AcknowledgeBookingCommand{
		ListingID:       strings.TrimSpace(req.ListingID),
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.Guests,
		IdempotencyKeyV: strings.TrimSpace(c.GetHeader(idempotencyHeader)),
	}
	result, err := commands.Dispatch[bookingapp.AcknowledgeBookingCommand, dto.BookingAcknowledgement](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ BookingHTTP = BookingHandler{}
