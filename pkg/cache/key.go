package cache

import (
	"fmt"
	"time"
)

// Cache keys for the home-page widgets. The read routes are not
// parameterized, so each key holds at most one value at a time.
const (
	// KeyFeatured caches the trending recipes widget.
	KeyFeatured = "home:featured"

	// KeyChefs caches the top chefs widget.
	KeyChefs = "home:chefs"

	// KeyStats caches the aggregated platform stats.
	KeyStats = "home:stats"
)

// Endpoint-specific TTLs. Failure payloads are cached briefly so a downed
// upstream isn't hammered by every page load.
const (
	// TTLFeatured is short so the trending list stays fresh.
	TTLFeatured = 60 * time.Second

	// TTLChefs tolerates more staleness; follow mutations invalidate it
	// explicitly anyway.
	TTLChefs = 5 * time.Minute

	// TTLStats covers the slowest-moving payload.
	TTLStats = 10 * time.Minute

	// TTLRecommended caches per-user ML recommendations.
	TTLRecommended = 5 * time.Minute

	// TTLFailure is applied to empty fallback payloads after an upstream
	// error or timeout.
	TTLFailure = 10 * time.Second
)

// RecommendedKey returns the per-user cache key for ML recommendations.
func RecommendedKey(userID int64) string {
	return fmt.Sprintf("home:recommended:%d", userID)
}
