package policies

import (
	domainpricing "stays/internal/domain/pricing"
)

// PricingPort quotes a stay. The property page, booking page and JSON API
// share one implementation so totals always agree.
type PricingPort = domainpricing.Quoter

var _ PricingPort = domainpricing.Calculator{}
