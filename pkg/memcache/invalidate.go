package memcache

// InvalidateUser scans every entry and drops those whose cached payload
// contains a user with the given id. Discovery pages cache whole listing
// responses, so after a follow/unfollow the affected pages must not keep
// serving the old follow state.
//
// The scan is O(entries * collection size), which is fine for a handful of
// session-scoped listing pages. Payloads are inspected structurally: a
// collection may be the value itself or nested under "data" or "content",
// mirroring the upstream envelope shapes.
func (s *memoryStore) InvalidateUser(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for key, e := range s.entries {
		if payloadContainsUser(e.value, userID) {
			delete(s.entries, key)
			dropped++
		}
	}
	return dropped
}

// payloadContainsUser reports whether v is, or wraps, a collection holding an
// object with "id" == userID. Unknown shapes are ignored.
func payloadContainsUser(v any, userID int64) bool {
	switch val := v.(type) {
	case []any:
		return sliceContainsUser(val, userID)
	case map[string]any:
		if items, ok := val["data"].([]any); ok {
			return sliceContainsUser(items, userID)
		}
		if items, ok := val["content"].([]any); ok {
			return sliceContainsUser(items, userID)
		}
	case []map[string]any:
		for _, item := range val {
			if idMatches(item["id"], userID) {
				return true
			}
		}
	}
	return false
}

func sliceContainsUser(items []any, userID int64) bool {
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if idMatches(obj["id"], userID) {
			return true
		}
	}
	return false
}

// idMatches tolerates the numeric types an id can carry depending on whether
// the payload came from encoding/json (float64) or was built in-process.
func idMatches(id any, userID int64) bool {
	switch n := id.(type) {
	case float64:
		return int64(n) == userID
	case int64:
		return n == userID
	case int:
		return int64(n) == userID
	}
	return false
}
