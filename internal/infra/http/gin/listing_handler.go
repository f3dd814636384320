package ginserver

import (
	"net/http"
	"strconv"
	"strings"

	gin "github.com/gin-gonic/gin"

	"stays/internal/app/dto"
	listingapp "stays/internal/app/handlers/listings"
	"stays/internal/app/queries"
	"stays/internal/app/session"
	domainlistings "stays/internal/domain/listings"
)

// ListingHandler wires listing queries to HTTP.
type ListingHandler struct {
	Queries queries.Bus
}

// Catalog responds with the filtered, ordered catalog. It accepts the same
// facet parameters as the stays page.
func (h ListingHandler) Catalog(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	query := listingapp.SearchListingsQuery{
		Facets: session.ParseFacetForm(c.Request.URL.Query()),
		View:   domainlistings.ParseViewMode(c.Query(session.FieldView)),
	}
	result, err := queries.Ask[listingapp.SearchListingsQuery, dto.ListingCatalog](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Featured(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))
	result, err := queries.Ask[listingapp.FeaturedQuery, []dto.ListingCard](c.Request.Context(), h.Queries, listingapp.FeaturedQuery{Limit: limit})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": result})
}

func (h ListingHandler) Detail(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	query := listingapp.GetDetailQuery{ListingID: strings.TrimSpace(c.Param("id"))}
	result, err := queries.Ask[listingapp.GetDetailQuery, dto.ListingDetail](c.Request.Context(), h.Queries, query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ListingHTTP = ListingHandler{}
