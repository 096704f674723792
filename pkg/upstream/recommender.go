package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultMLBaseURL is the ML backend base URL used when none is configured.
const DefaultMLBaseURL = "http://localhost:8000/api"

// Recommender talks to the ML recommendation backend. The service is opaque:
// it returns ranked user IDs and nothing here depends on how they were ranked.
type Recommender struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewRecommender creates a client for the ML backend.
func NewRecommender(baseURL string) *Recommender {
	if baseURL == "" {
		baseURL = DefaultMLBaseURL
	}
	return &Recommender{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     log.With().Str("component", "recommender").Logger(),
	}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (r *Recommender) SetHTTPClient(client *http.Client) {
	r.httpClient = client
}

// SimilarUsers returns up to topK user IDs ranked by similarity to userID,
// most similar first.
func (r *Recommender) SimilarUsers(ctx context.Context, userID int64, topK int, timeout time.Duration) ([]int64, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(map[string]any{
		"user_id": userID,
		"top_k":   topK,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal similarity request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+"/recommendations/users", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &Error{ErrorClass: ErrorClassNetwork, Message: "ml backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{ErrorClass: ErrorClassNetwork, Message: "read response body", Err: err}
	}

	requestsTotal.WithLabelValues("/recommendations/users", fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		return nil, decodeError(resp.StatusCode, data)
	}

	var payload struct {
		SimilarUsers []struct {
			UserID int64 `json:"user_id"`
		} `json:"similar_users"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode similarity response: %w", err)
	}

	ids := make([]int64, 0, len(payload.SimilarUsers))
	for _, u := range payload.SimilarUsers {
		ids = append(ids, u.UserID)
	}

	r.logger.Debug().
		Int64("user_id", userID).
		Int("count", len(ids)).
		Msg("Fetched similar users")

	return ids, nil
}
