package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stays/internal/app/dto"
	pricingapp "stays/internal/app/handlers/pricing"
	"stays/internal/app/queries"
)

type PricingHandler struct {
	Queries queries.Bus
}

func (h PricingHandler) Quote(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pricing handler unavailable"})
		return
	}
	query := pricingapp.QuoteQuery{
		ListingID: c.Query("id"),
		CheckIn:   c.Query("checkin"),
		CheckOut:  c.Query("checkout"),
		Guests:    c.Query("guests"),
	}
	result, err := queries.Ask[pricingapp.QuoteQuery, dto.Quote](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
