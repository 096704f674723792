// Package pagination provides bounded-parallel hydration of user profiles.
//
// The ML backend returns ranked user IDs only; turning them into renderable
// chef cards requires one backend fetch per ID. The hydrator runs those
// fetches in parallel with a concurrency cap, preserves the ranking order
// and skips individual failures so one slow profile never empties the list.
//
// Example usage:
//
//	hydrator := pagination.NewHydrator(backendClient, pagination.DefaultConfig())
//	profiles, err := hydrator.FetchProfiles(ctx, rankedIDs)
package pagination
