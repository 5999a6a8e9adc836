package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent read-heavy queries. Using a centralized singleflight.Group
// ensures that only one query runs for a given key while other callers
// wait for the result.

import "golang.org/x/sync/singleflight"

// LeaderboardGroup deduplicates leaderboard aggregation queries keyed by
// the requested limit (e.g. "top:10").
var LeaderboardGroup singleflight.Group

// RosterGroup deduplicates enemy roster reads keyed by league name, since
// the roster is assembled from DB rows plus config overrides on every read.
var RosterGroup singleflight.Group
