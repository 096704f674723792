package upstream

import (
	"encoding/json"
	"fmt"
)

// Shape tags which of the known backend envelope variants a payload used.
// The Java controllers wrap paginated collections inconsistently, so the
// decoding is centralized here instead of repeating the fallback chain at
// every call site.
type Shape string

const (
	// ShapeArray is a bare JSON array.
	ShapeArray Shape = "array"

	// ShapeDataData is {"data":{"data":[...]}}.
	ShapeDataData Shape = "data.data"

	// ShapeData is {"data":[...]}.
	ShapeData Shape = "data"

	// ShapeDataContent is {"data":{"content":[...]}} (Spring page).
	ShapeDataContent Shape = "data.content"

	// ShapeContent is {"content":[...]}.
	ShapeContent Shape = "content"

	// ShapeNone means no collection was found; callers get an empty slice.
	ShapeNone Shape = "none"
)

// DecodeCollection unmarshals raw JSON and extracts the collection it wraps.
// Unknown shapes yield an empty slice with ShapeNone, never an error: the
// cache layer is byte-transparent and callers always tolerate emptiness.
func DecodeCollection(raw []byte) ([]any, Shape, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, ShapeNone, fmt.Errorf("decode collection: %w", err)
	}
	items, shape := Collection(v)
	return items, shape, nil
}

// Collection extracts the item slice from an already-decoded payload,
// trying the known envelope variants in order.
func Collection(v any) ([]any, Shape) {
	if items, ok := v.([]any); ok {
		return items, ShapeArray
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return []any{}, ShapeNone
	}

	if data, ok := obj["data"].(map[string]any); ok {
		if items, ok := data["data"].([]any); ok {
			return items, ShapeDataData
		}
	}
	if items, ok := obj["data"].([]any); ok {
		return items, ShapeData
	}
	if data, ok := obj["data"].(map[string]any); ok {
		if items, ok := data["content"].([]any); ok {
			return items, ShapeDataContent
		}
	}
	if items, ok := obj["content"].([]any); ok {
		return items, ShapeContent
	}

	return []any{}, ShapeNone
}

// DecodeTotal extracts the total element count from a paginated response,
// tolerating the same envelope variance: data.totalElements, top-level
// totalElements, or the length of a bare data array.
func DecodeTotal(raw []byte) int64 {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return 0
	}

	if data, ok := obj["data"].(map[string]any); ok {
		if n, ok := data["totalElements"].(float64); ok {
			return int64(n)
		}
	}
	if n, ok := obj["totalElements"].(float64); ok {
		return int64(n)
	}
	if items, ok := obj["data"].([]any); ok {
		return int64(len(items))
	}

	return 0
}

// ReactionCount reads a recipe's like/reaction count, whichever field the
// backend populated. Missing or non-numeric fields count as zero.
func ReactionCount(item any) float64 {
	obj, ok := item.(map[string]any)
	if !ok {
		return 0
	}
	return numberField(obj, "reactionsCount", "reactions", "likes", "likeCount")
}

// FollowerCount reads a chef's follower count from the stats sub-object or
// the flattened fields.
func FollowerCount(item any) float64 {
	obj, ok := item.(map[string]any)
	if !ok {
		return 0
	}
	stats, hasStats := obj["stats"].(map[string]any)
	if hasStats {
		if n, ok := stats["followersCount"].(float64); ok {
			return n
		}
	}
	if n, ok := obj["followers"].(float64); ok {
		return n
	}
	if hasStats {
		if n, ok := stats["followers"].(float64); ok {
			return n
		}
	}
	return 0
}

func numberField(obj map[string]any, keys ...string) float64 {
	for _, key := range keys {
		if n, ok := obj[key].(float64); ok {
			return n
		}
	}
	return 0
}
