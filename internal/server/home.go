package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/recipehub/home-proxy/pkg/cache"
	"github.com/recipehub/home-proxy/pkg/upstream"
)

// Upstream request budgets. Home widgets must render fast, so every proxy
// fetch has a hard deadline and falls back to a safe empty payload on miss.
const (
	featuredTimeout    = 2 * time.Second
	chefsTimeout       = 2 * time.Second
	statsTimeout       = 1500 * time.Millisecond
	recommendedTimeout = 2 * time.Second
)

// Backend queries behind the widget routes. The backend is asked for
// pre-sorted data; the proxy re-sorts anyway as a safety net.
const (
	featuredPath = "/v1/recipes/allRecipe?page=0&size=6&sortBy=likeCount&sortOrder=DESC"
	chefsPath    = "/v1/users/chefs?page=0&size=4&sortBy=followers&sortOrder=DESC"

	recommendedTopK = 8
)

// handleFeatured serves the trending-recipes widget: cache-aside against
// home:featured, sorted by reaction count descending. Upstream failures
// produce an empty envelope, cached briefly and served with 200 so the
// homepage always renders.
func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, err := s.cache.Get(ctx, cache.KeyFeatured); err == nil {
		writeRawJSON(w, http.StatusOK, cached)
		return
	}

	raw, err := s.backend.GetJSON(ctx, featuredPath, featuredTimeout)
	if err != nil {
		s.logger.Warn().Err(err).Str("cache_key", cache.KeyFeatured).Msg("Featured fetch failed, serving fallback")
		safe := map[string]any{"data": map[string]any{"content": []any{}}}
		s.cacheSet(ctx, cache.KeyFeatured, safe, cache.TTLFailure)
		writeJSON(w, http.StatusOK, safe)
		return
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		payload = nil
	}

	items, _ := upstream.Collection(payload)
	sort.SliceStable(items, func(i, j int) bool {
		return upstream.ReactionCount(items[i]) > upstream.ReactionCount(items[j])
	})

	// Attach the sorted content back into the envelope the caller expects.
	safe, ok := payload.(map[string]any)
	if !ok {
		safe = map[string]any{"data": map[string]any{"content": items}}
	} else if data, ok := safe["data"].(map[string]any); ok {
		data["content"] = items
	} else {
		safe["content"] = items
	}

	s.cacheSet(ctx, cache.KeyFeatured, safe, cache.TTLFeatured)
	writeJSON(w, http.StatusOK, safe)
}

// handleChefs serves the top-chefs widget: cache-aside against home:chefs,
// flattened to a plain array sorted by follower count descending.
func (s *Server) handleChefs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, err := s.cache.Get(ctx, cache.KeyChefs); err == nil {
		writeRawJSON(w, http.StatusOK, cached)
		return
	}

	raw, err := s.backend.GetJSON(ctx, chefsPath, chefsTimeout)
	if err != nil {
		s.logger.Warn().Err(err).Str("cache_key", cache.KeyChefs).Msg("Chefs fetch failed, serving fallback")
		safe := []any{}
		s.cacheSet(ctx, cache.KeyChefs, safe, cache.TTLFailure)
		writeJSON(w, http.StatusOK, safe)
		return
	}

	items, shape, err := upstream.DecodeCollection(raw)
	if err != nil {
		items = []any{}
	}
	s.logger.Debug().Str("shape", string(shape)).Int("count", len(items)).Msg("Chefs payload normalized")

	sort.SliceStable(items, func(i, j int) bool {
		return upstream.FollowerCount(items[i]) > upstream.FollowerCount(items[j])
	})

	s.cacheSet(ctx, cache.KeyChefs, items, cache.TTLChefs)
	writeJSON(w, http.StatusOK, items)
}

// handleStats aggregates platform totals from three backend endpoints,
// fetched in parallel with independent failure tolerance. Only a total
// failure (all three sub-requests failing) surfaces as a 500.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, err := s.cache.Get(ctx, cache.KeyStats); err == nil {
		writeRawJSON(w, http.StatusOK, cached)
		return
	}

	var recipesRaw, usersRaw, communityRaw []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recipesRaw, _ = s.backend.GetJSON(gctx, "/v1/recipes/allRecipe?page=0&size=1", statsTimeout)
		return nil
	})
	g.Go(func() error {
		usersRaw, _ = s.backend.GetJSON(gctx, "/v1/users?page=0&size=1", statsTimeout)
		return nil
	})
	g.Go(func() error {
		communityRaw, _ = s.backend.GetJSON(gctx, "/v1/user-stats/allUserStats", statsTimeout)
		return nil
	})
	// Sub-request errors are swallowed above; Wait can only report ctx issues.
	_ = g.Wait()

	if recipesRaw == nil && usersRaw == nil && communityRaw == nil {
		s.logger.Error().Str("cache_key", cache.KeyStats).Msg("All stats sub-requests failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed"})
		return
	}

	out := map[string]any{
		"totalRecipes":   upstream.DecodeTotal(recipesRaw),
		"totalUsers":     upstream.DecodeTotal(usersRaw),
		"totalCommunity": upstream.DecodeTotal(communityRaw),
	}

	s.cacheSet(ctx, cache.KeyStats, out, cache.TTLStats)
	writeJSON(w, http.StatusOK, out)
}

// handleRecommended serves ML-ranked chef recommendations for a user,
// hydrated into full profile documents. Per-user cache key; same
// empty-fallback policy as the other widgets.
func (s *Server) handleRecommended(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || userID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId required"})
		return
	}

	key := cache.RecommendedKey(userID)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		writeRawJSON(w, http.StatusOK, cached)
		return
	}

	ids, err := s.recommender.SimilarUsers(ctx, userID, recommendedTopK, recommendedTimeout)
	if err != nil || len(ids) == 0 {
		if err != nil {
			s.logger.Warn().Err(err).Int64("user_id", userID).Msg("Recommendation fetch failed, serving fallback")
		}
		safe := []any{}
		s.cacheSet(ctx, key, safe, cache.TTLFailure)
		writeJSON(w, http.StatusOK, safe)
		return
	}

	profiles, err := s.hydrator.FetchProfiles(ctx, ids)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("Profile hydration failed, serving fallback")
		safe := []any{}
		s.cacheSet(ctx, key, safe, cache.TTLFailure)
		writeJSON(w, http.StatusOK, safe)
		return
	}

	s.cacheSet(ctx, key, profiles, cache.TTLRecommended)
	writeJSON(w, http.StatusOK, profiles)
}

// handleInvalidateChefs drops the home:chefs entry so the next read is
// forced upstream. Clients call it after a follow/unfollow mutation.
func (s *Server) handleInvalidateChefs(w http.ResponseWriter, r *http.Request) {
	if err := s.cache.Delete(r.Context(), cache.KeyChefs); err != nil {
		s.logger.Error().Err(err).Str("cache_key", cache.KeyChefs).Msg("Chefs invalidation failed")
		writeJSON(w, http.StatusInternalServerError, map[string]bool{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// cacheSet stores best-effort: a failed write is logged and swallowed,
// leaving the route pass-through until the next attempt.
func (s *Server) cacheSet(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.logger.Warn().Err(err).Str("cache_key", key).Dur("ttl", ttl).Msg("Cache set failed")
	}
}
