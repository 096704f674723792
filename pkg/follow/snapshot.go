package follow

// snapshot captures the exact pre-mutation state of every list entry an
// optimistic update will touch. Rollback replays the captured profiles
// verbatim instead of re-deriving counters arithmetically.
type snapshot struct {
	userID  int64
	entries []snapEntry
}

type snapEntry struct {
	list    ListName
	index   int
	profile Profile
}

// capture records the current state of userID across all tracked lists.
// Caller must hold c.mu.
func (c *Controller) capture(userID int64) *snapshot {
	snap := &snapshot{userID: userID}
	for _, name := range TrackedLists {
		for i, p := range c.lists[name] {
			if p.ID == userID {
				snap.entries = append(snap.entries, snapEntry{
					list:    name,
					index:   i,
					profile: p,
				})
			}
		}
	}
	return snap
}

// restore writes the captured profiles back in place. Unfollow mutations only
// flip fields, never reorder, so the recorded indexes stay valid.
// Caller must hold c.mu.
func (s *snapshot) restore(c *Controller) {
	for _, e := range s.entries {
		list := c.lists[e.list]
		if e.index < len(list) && list[e.index].ID == e.profile.ID {
			list[e.index] = e.profile
		}
	}
}
