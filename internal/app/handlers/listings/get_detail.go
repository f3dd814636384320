package listings

import (
	"context"

	"stays/internal/app/dto"
	"stays/internal/app/queries"
	"stays/internal/app/session"
	"stays/internal/domain/detail"
	domainlistings "stays/internal/domain/listings"
)

const getDetailKey = "listings.detail"

// GetDetailQuery composes the detail view of one listing. Unlike the
// property page it does not default to the first entry.
type GetDetailQuery struct {
	ListingID string
}

func (q GetDetailQuery) Key() string { return getDetailKey }

func (q GetDetailQuery) Validate() error {
	if q.ListingID == "" {
		return domainlistings.ErrIDRequired
	}
	return nil
}

type GetDetailHandler struct {
	Loader session.CatalogLoader
}

func (h *GetDetailHandler) Handle(ctx context.Context, q GetDetailQuery) (dto.ListingDetail, error) {
	res := h.Loader.Load(ctx)
	l, err := domainlistings.FindByID(res.Listings, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.ListingDetail{}, err
	}
	return dto.MapDetail(detail.Compose(l)), nil
}

var _ queries.Handler[GetDetailQuery, dto.ListingDetail] = (*GetDetailHandler)(nil)
