package upstream

import (
	"context"
	"encoding/json"
	"fmt"
)

// Follow creates a follow edge from follower to followee.
// A duplicate follow comes back as ErrAlreadyFollowing (via errors.Is).
func (c *Client) Follow(ctx context.Context, followerID, followeeID int64) error {
	body, err := json.Marshal(map[string]int64{
		"follower": followerID,
		"followee": followeeID,
	})
	if err != nil {
		return fmt.Errorf("marshal follow request: %w", err)
	}

	_, err = c.do(ctx, "POST", "/v1/follow/follow", body, DefaultTimeout)
	return err
}

// Unfollow removes the follow edge from follower to followee.
func (c *Client) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	path := fmt.Sprintf("/v1/follow/unfollow?followerId=%d&followeeId=%d", followerID, followeeID)
	_, err := c.do(ctx, "DELETE", path, nil, DefaultTimeout)
	return err
}

// IsFollowing asks the backend whether follower currently follows followee.
// The answer may arrive bare or wrapped in the usual data envelope.
func (c *Client) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	path := fmt.Sprintf("/v1/follow/check?followerId=%d&followeeId=%d", followerID, followeeID)
	raw, err := c.do(ctx, "GET", path, nil, DefaultTimeout)
	if err != nil {
		return false, err
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, fmt.Errorf("decode follow check: %w", err)
	}

	switch val := v.(type) {
	case bool:
		return val, nil
	case map[string]any:
		if b, ok := val["data"].(bool); ok {
			return b, nil
		}
	}
	return false, nil
}

// UserByID fetches a user's profile document as raw JSON.
func (c *Client) UserByID(ctx context.Context, userID int64) ([]byte, error) {
	return c.GetJSON(ctx, fmt.Sprintf("/v1/users/%d", userID), DefaultTimeout)
}
