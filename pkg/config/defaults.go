package config

import (
	"github.com/walteh/retrofit/pkg/rule"
)

var (
	defaultFrontendFiles = []string{
		"app/orders/page.tsx",
		"app/products/page.tsx",
		"app/clients/page.tsx",
		"app/buyer/catalog/page.tsx",
		"app/dashboard/page.tsx",
		"components/buyer/OrderCountdown.tsx",
		"components/products/ProductCard.tsx",
		"components/orders/OrderCard.tsx",
	}

	defaultBackendFiles = []string{
		"app/api/clients/route.tsx",
		"app/api/clients/[id]/route.tsx",
		"app/api/stats/route.tsx",
		"app/api/analytics/dashboard/route.tsx",
		"app/api/analytics/sales/route.tsx",
		"app/api/sellers/route.tsx",
		"app/api/sellers/[id]/route.tsx",
	}
)

// DefaultFiles returns the stock target list for profile
func DefaultFiles(profile string) []string {
	src := defaultFrontendFiles
	if profile == rule.ProfileBackend {
		src = defaultBackendFiles
	}
	return append([]string(nil), src...)
}
