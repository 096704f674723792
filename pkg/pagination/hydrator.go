package pagination

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ProfileFetcher is the slice of the backend client the hydrator needs.
type ProfileFetcher interface {
	UserByID(ctx context.Context, userID int64) ([]byte, error)
}

// Config holds hydrator configuration.
type Config struct {
	// MaxConcurrency is the maximum number of parallel profile fetches.
	MaxConcurrency int

	// Timeout bounds the whole hydration batch.
	Timeout time.Duration
}

// DefaultConfig returns a configuration safe for home-page latency budgets.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 5,
		Timeout:        3 * time.Second,
	}
}

// Hydrator fetches user profiles for ranked ID lists in parallel.
type Hydrator struct {
	fetcher ProfileFetcher
	config  Config
}

// NewHydrator creates a new hydrator.
func NewHydrator(fetcher ProfileFetcher, config Config) *Hydrator {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 5
	}
	if config.Timeout <= 0 {
		config.Timeout = 3 * time.Second
	}
	return &Hydrator{
		fetcher: fetcher,
		config:  config,
	}
}

// FetchProfiles fetches the given user IDs in parallel and returns the
// decoded profile documents in the input (ranking) order. IDs whose fetch
// fails or decodes to nothing are skipped.
func (h *Hydrator) FetchProfiles(ctx context.Context, ids []int64) ([]any, error) {
	if len(ids) == 0 {
		return []any{}, nil
	}

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	// One slot per ID keeps the ranking order without post-sorting.
	slots := make([]any, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(h.config.MaxConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			raw, err := h.fetcher.UserByID(ctx, id)
			if err != nil {
				log.Debug().Err(err).Int64("user_id", id).Msg("Profile fetch skipped")
				return nil
			}
			if profile, ok := decodeProfile(raw); ok {
				slots[i] = profile
			}
			return nil
		})
	}

	// Workers swallow their errors, so Wait only reflects ctx problems.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profiles := make([]any, 0, len(ids))
	for _, p := range slots {
		if p != nil {
			profiles = append(profiles, p)
		}
	}

	log.Debug().
		Int("requested", len(ids)).
		Int("hydrated", len(profiles)).
		Dur("duration", time.Since(start)).
		Msg("Profile hydration complete")

	return profiles, nil
}

// decodeProfile unwraps a single user document from the backend's optional
// data envelope.
func decodeProfile(raw []byte) (any, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	if obj, ok := v.(map[string]any); ok {
		if data, ok := obj["data"].(map[string]any); ok {
			return data, true
		}
	}
	return v, true
}
