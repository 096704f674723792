// Package follow implements optimistic follow/unfollow state management for
// discovery views: mutations are applied to local lists before the backend
// confirms, with snapshot-based rollback when verification disagrees.
package follow

// Profile is the slice of a user that discovery lists track.
type Profile struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	FollowersCount int    `json:"followersCount"`
	IsFollowing    bool   `json:"isFollowing"`
}

// ListName identifies one of the tracked discovery lists.
type ListName string

const (
	// ListAll is the full chef listing for the current page.
	ListAll ListName = "all"

	// ListFiltered is the search-filtered view of ListAll.
	ListFiltered ListName = "filtered"

	// ListRecommended holds ML-ranked chef recommendations.
	ListRecommended ListName = "recommended"

	// ListTrending holds the top chefs by follower count.
	ListTrending ListName = "trending"
)

// TrackedLists enumerates every list a mutation must touch.
var TrackedLists = []ListName{ListAll, ListFiltered, ListRecommended, ListTrending}
