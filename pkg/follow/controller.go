package follow

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/recipehub/home-proxy/pkg/upstream"
)

// ErrOutOfSync is returned when an optimistic unfollow was rolled back
// because the backend still reports the user as followed. The lists are
// already restored to their pre-mutation state when this is returned.
var ErrOutOfSync = errors.New("unfollow not confirmed by server")

// SocialAPI is the slice of the backend client the controller needs.
type SocialAPI interface {
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
}

// Invalidator drops session cache entries referencing a user.
// memcache.Store satisfies it.
type Invalidator interface {
	InvalidateUser(userID int64) int
}

// Controller owns the tracked discovery lists for one viewer and applies
// follow/unfollow mutations to them optimistically.
type Controller struct {
	mu       sync.Mutex
	viewerID int64
	api      SocialAPI
	cache    Invalidator
	bus      *Bus
	logger   zerolog.Logger
	lists    map[ListName][]Profile
}

// NewController creates a controller for the given viewer.
// cache and bus may be nil; the corresponding side effects are skipped.
func NewController(viewerID int64, api SocialAPI, cache Invalidator, bus *Bus) *Controller {
	lists := make(map[ListName][]Profile, len(TrackedLists))
	for _, name := range TrackedLists {
		lists[name] = nil
	}
	return &Controller{
		viewerID: viewerID,
		api:      api,
		cache:    cache,
		bus:      bus,
		logger:   log.With().Str("component", "follow").Int64("viewer_id", viewerID).Logger(),
		lists:    lists,
	}
}

// SetList replaces the named list's contents.
func (c *Controller) SetList(name ListName, profiles []Profile) {
	cp := make([]Profile, len(profiles))
	copy(cp, profiles)

	c.mu.Lock()
	c.lists[name] = cp
	c.mu.Unlock()
}

// List returns a copy of the named list.
func (c *Controller) List(name ListName) []Profile {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := make([]Profile, len(c.lists[name]))
	copy(cp, c.lists[name])
	return cp
}

// Follow marks userID as followed by the viewer.
//
// If local state already shows the user as followed, the mutation is skipped
// entirely: the user is removed from the discovery lists, affected session
// cache entries are invalidated and a follow event is published, with zero
// network calls. Otherwise a server-side pre-check guards against stale UI
// (the backend answers duplicate follows with a conflict), and the mutation
// runs only when the pre-check comes back negative. A conflict from the
// mutation itself is treated as idempotent success.
//
// Lists are only mutated once the outcome is known, so a failed follow
// leaves them exactly as they were.
func (c *Controller) Follow(ctx context.Context, userID int64) error {
	c.mu.Lock()
	already := c.isFollowingLocked(userID)
	c.mu.Unlock()

	if already {
		c.logger.Debug().Int64("user_id", userID).Msg("Follow skipped, already following locally")
		c.completeFollow(userID)
		return nil
	}

	// Pre-check failures fall through to the mutation; the conflict
	// classification below absorbs the duplicate case anyway.
	if ok, err := c.api.IsFollowing(ctx, c.viewerID, userID); err == nil && ok {
		c.logger.Debug().Int64("user_id", userID).Msg("Follow skipped, server already reports following")
		c.completeFollow(userID)
		return nil
	}

	if err := c.api.Follow(ctx, c.viewerID, userID); err != nil {
		if !upstream.IsConflict(err) {
			c.logger.Error().Err(err).Int64("user_id", userID).Msg("Follow mutation failed")
			return err
		}
		c.logger.Debug().Int64("user_id", userID).Msg("Follow conflict treated as success")
	}

	c.completeFollow(userID)
	return nil
}

// Unfollow removes the follow edge to userID, applying the change to local
// lists before the backend confirms. After the mutation the server state is
// re-checked; if it still reports following, the pre-mutation snapshot is
// restored and ErrOutOfSync is returned.
func (c *Controller) Unfollow(ctx context.Context, userID int64) error {
	c.mu.Lock()
	snap := c.capture(userID)
	c.applyUnfollowLocked(userID)
	c.mu.Unlock()

	if err := c.api.Unfollow(ctx, c.viewerID, userID); err != nil && !errors.Is(err, upstream.ErrNotFollowing) {
		c.mu.Lock()
		snap.restore(c)
		c.mu.Unlock()
		c.logger.Error().Err(err).Int64("user_id", userID).Msg("Unfollow mutation failed, rolled back")
		return err
	}

	// Verification: the mutation may have been swallowed upstream.
	if still, err := c.api.IsFollowing(ctx, c.viewerID, userID); err == nil && still {
		c.mu.Lock()
		snap.restore(c)
		c.mu.Unlock()
		c.logger.Warn().Int64("user_id", userID).Msg("Unfollow not confirmed, rolled back")
		return ErrOutOfSync
	}

	if c.cache != nil {
		c.cache.InvalidateUser(userID)
	}
	if c.bus != nil {
		c.bus.Publish(Event{Action: ActionUnfollow, FollowerID: c.viewerID, FolloweeID: userID})
	}
	return nil
}

// completeFollow applies the post-follow cleanup: the user disappears from
// every discovery list, stale session cache pages are dropped and siblings
// are notified.
func (c *Controller) completeFollow(userID int64) {
	c.mu.Lock()
	c.removeFromListsLocked(userID)
	c.mu.Unlock()

	if c.cache != nil {
		c.cache.InvalidateUser(userID)
	}
	if c.bus != nil {
		c.bus.Publish(Event{Action: ActionFollow, FollowerID: c.viewerID, FolloweeID: userID})
	}
}

// isFollowingLocked reports whether any tracked list shows userID as followed.
func (c *Controller) isFollowingLocked(userID int64) bool {
	for _, name := range TrackedLists {
		for _, p := range c.lists[name] {
			if p.ID == userID && p.IsFollowing {
				return true
			}
		}
	}
	return false
}

func (c *Controller) removeFromListsLocked(userID int64) {
	for _, name := range TrackedLists {
		list := c.lists[name]
		kept := list[:0]
		for _, p := range list {
			if p.ID != userID {
				kept = append(kept, p)
			}
		}
		c.lists[name] = kept
	}
}

func (c *Controller) applyUnfollowLocked(userID int64) {
	for _, name := range TrackedLists {
		list := c.lists[name]
		for i := range list {
			if list[i].ID == userID {
				list[i].IsFollowing = false
				if list[i].FollowersCount > 0 {
					list[i].FollowersCount--
				}
			}
		}
	}
}
