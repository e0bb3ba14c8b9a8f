package cache

import (
	"fmt"
	"strings"

	"github.com/OneOfOne/xxhash"
	"github.com/google/uuid"

	"ouvidoria-ativa/internal/domain"
)

// Key namespaces. Single-record lookups use exact, deterministic keys;
// filter-combination and time-bucketed keys are evicted by pattern because
// the full set affected by one write cannot be enumerated.

func ManifestationKey(protocol string) string {
	return "manifestation:" + strings.ToUpper(strings.TrimSpace(protocol))
}

func MessagesKey(manifestationID uuid.UUID) string {
	return "messages:" + manifestationID.String()
}

func ListKey(filter domain.ManifestationFilter, page, pageSize int) string {
	return fmt.Sprintf("manifestation-list:%s:%d:%d", filterHash(filter), page, pageSize)
}

func DashboardKey(period domain.Period) string {
	return "dashboard-stats:" + string(period)
}

const (
	ListPattern      = "manifestation-list:*"
	DashboardPattern = "dashboard-stats:*"
)

// filterHash digests the canonical encoding of the filter set so arbitrary
// filter combinations map to bounded-length keys.
func filterHash(f domain.ManifestationFilter) string {
	h := xxhash.New64()
	fmt.Fprintf(h, "s=%s|c=%s|d=%s|i=%s|p=%s",
		strings.ToLower(strings.TrimSpace(f.Search)),
		f.Category, f.Department, f.Identity, f.Period)
	return fmt.Sprintf("%016x", h.Sum64())
}
