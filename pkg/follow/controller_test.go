package follow

import (
	"context"
	"testing"

	"github.com/recipehub/home-proxy/pkg/memcache"
	"github.com/recipehub/home-proxy/pkg/upstream"
)

// fakeAPI counts calls and scripts responses for the controller.
type fakeAPI struct {
	followCalls      int
	unfollowCalls    int
	isFollowingCalls int

	followErr    error
	unfollowErr  error
	serverStates []bool // consumed by successive IsFollowing calls
}

func (f *fakeAPI) Follow(ctx context.Context, followerID, followeeID int64) error {
	f.followCalls++
	return f.followErr
}

func (f *fakeAPI) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	f.unfollowCalls++
	return f.unfollowErr
}

func (f *fakeAPI) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	f.isFollowingCalls++
	if len(f.serverStates) == 0 {
		return false, nil
	}
	state := f.serverStates[0]
	f.serverStates = f.serverStates[1:]
	return state, nil
}

func seedLists(c *Controller, profiles ...Profile) {
	for _, name := range TrackedLists {
		c.SetList(name, profiles)
	}
}

func TestFollow_AlreadyFollowedLocally(t *testing.T) {
	api := &fakeAPI{}
	store := memcache.New()
	bus := NewBus()

	var events []Event
	bus.Subscribe(func(e Event) { events = append(events, e) })

	c := NewController(1, api, store, bus)
	seedLists(c,
		Profile{ID: 2, Username: "ben", FollowersCount: 10, IsFollowing: true},
		Profile{ID: 3, Username: "carla", FollowersCount: 5},
	)

	// Session cache holds a listing page containing user 2.
	store.Set("users?page=0&size=10&sort=recipes", []any{
		map[string]any{"id": float64(2)},
	}, memcache.DefaultTTL)

	if err := c.Follow(context.Background(), 2); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	if api.followCalls != 0 || api.isFollowingCalls != 0 {
		t.Errorf("expected zero network calls, got follow=%d check=%d",
			api.followCalls, api.isFollowingCalls)
	}

	for _, name := range TrackedLists {
		for _, p := range c.List(name) {
			if p.ID == 2 {
				t.Errorf("user 2 still present in list %s", name)
			}
		}
	}

	if _, ok := store.Get("users?page=0&size=10&sort=recipes"); ok {
		t.Error("session cache entry referencing user 2 should be invalidated")
	}

	if len(events) != 1 || events[0].Action != ActionFollow || events[0].FolloweeID != 2 {
		t.Errorf("expected one follow event for user 2, got %v", events)
	}
}

func TestFollow_ServerPreCheckShortCircuits(t *testing.T) {
	api := &fakeAPI{serverStates: []bool{true}}
	c := NewController(1, api, nil, nil)
	seedLists(c, Profile{ID: 2, Username: "ben"})

	if err := c.Follow(context.Background(), 2); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	if api.followCalls != 0 {
		t.Errorf("mutation should be skipped when server already reports following, got %d calls", api.followCalls)
	}
	if len(c.List(ListAll)) != 0 {
		t.Error("user should be removed from lists")
	}
}

func TestFollow_MutationSuccess(t *testing.T) {
	api := &fakeAPI{}
	c := NewController(1, api, nil, nil)
	seedLists(c, Profile{ID: 2}, Profile{ID: 3})

	if err := c.Follow(context.Background(), 2); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	if api.followCalls != 1 {
		t.Errorf("expected one mutation call, got %d", api.followCalls)
	}
	if got := c.List(ListTrending); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("trending list = %v, want only user 3", got)
	}
}

func TestFollow_ConflictTreatedAsSuccess(t *testing.T) {
	api := &fakeAPI{
		followErr: &upstream.Error{StatusCode: 409, Message: "duplicate", Err: upstream.ErrAlreadyFollowing},
	}
	c := NewController(1, api, nil, nil)
	seedLists(c, Profile{ID: 2})

	if err := c.Follow(context.Background(), 2); err != nil {
		t.Fatalf("conflict should be idempotent success, got %v", err)
	}
	if len(c.List(ListAll)) != 0 {
		t.Error("user should be removed despite the conflict")
	}
}

func TestFollow_HardErrorLeavesListsUntouched(t *testing.T) {
	api := &fakeAPI{
		followErr: &upstream.Error{StatusCode: 500, ErrorClass: upstream.ErrorClassServer, Message: "boom"},
	}
	c := NewController(1, api, nil, nil)
	seedLists(c, Profile{ID: 2, FollowersCount: 7})

	if err := c.Follow(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}

	got := c.List(ListAll)
	if len(got) != 1 || got[0].ID != 2 || got[0].FollowersCount != 7 {
		t.Errorf("lists must be untouched on failure, got %v", got)
	}
}

func TestUnfollow_Success(t *testing.T) {
	api := &fakeAPI{serverStates: []bool{false}}
	store := memcache.New()
	c := NewController(1, api, store, nil)
	seedLists(c, Profile{ID: 2, FollowersCount: 10, IsFollowing: true})

	if err := c.Unfollow(context.Background(), 2); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}

	got := c.List(ListAll)
	if len(got) != 1 {
		t.Fatalf("unfollow must not remove the user, got %v", got)
	}
	if got[0].IsFollowing || got[0].FollowersCount != 9 {
		t.Errorf("expected isFollowing=false count=9, got %+v", got[0])
	}
}

func TestUnfollow_VerificationRollsBack(t *testing.T) {
	// Server still reports following after the mutation.
	api := &fakeAPI{serverStates: []bool{true}}
	c := NewController(1, api, nil, nil)
	seedLists(c, Profile{ID: 2, Username: "ben", FollowersCount: 10, IsFollowing: true})

	err := c.Unfollow(context.Background(), 2)
	if err != ErrOutOfSync {
		t.Fatalf("expected ErrOutOfSync, got %v", err)
	}

	for _, name := range TrackedLists {
		got := c.List(name)
		if len(got) != 1 {
			t.Fatalf("list %s lost its entry: %v", name, got)
		}
		if !got[0].IsFollowing || got[0].FollowersCount != 10 {
			t.Errorf("list %s not rolled back: %+v", name, got[0])
		}
	}
}

func TestUnfollow_MutationErrorRollsBack(t *testing.T) {
	api := &fakeAPI{
		unfollowErr: &upstream.Error{StatusCode: 503, ErrorClass: upstream.ErrorClassServer, Message: "down"},
	}
	c := NewController(1, api, nil, nil)
	seedLists(c, Profile{ID: 2, FollowersCount: 3, IsFollowing: true})

	if err := c.Unfollow(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}

	got := c.List(ListAll)
	if !got[0].IsFollowing || got[0].FollowersCount != 3 {
		t.Errorf("expected rollback to pre-optimistic state, got %+v", got[0])
	}
}

func TestUnfollow_CounterNeverNegative(t *testing.T) {
	api := &fakeAPI{serverStates: []bool{false}}
	c := NewController(1, api, nil, nil)
	seedLists(c, Profile{ID: 2, FollowersCount: 0, IsFollowing: true})

	if err := c.Unfollow(context.Background(), 2); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}

	if got := c.List(ListAll); got[0].FollowersCount != 0 {
		t.Errorf("follower count went negative: %d", got[0].FollowersCount)
	}
}

func TestBus_SubscribeAndUnsubscribe(t *testing.T) {
	bus := NewBus()

	var got []Event
	unsub := bus.Subscribe(func(e Event) { got = append(got, e) })

	bus.Publish(Event{Action: ActionFollow, FollowerID: 1, FolloweeID: 2})
	unsub()
	bus.Publish(Event{Action: ActionUnfollow, FollowerID: 1, FolloweeID: 2})

	if len(got) != 1 || got[0].Action != ActionFollow {
		t.Errorf("expected exactly the first event, got %v", got)
	}
}
