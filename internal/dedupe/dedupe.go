package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent read-mostly queries. Using a centralized singleflight.Group
// ensures only one query runs for a given key while other callers wait for
// the result.

import "golang.org/x/sync/singleflight"

// RosterGroup deduplicates unlocked-roster loads when several battle
// creations race; all of them key on "unlocked".
var RosterGroup singleflight.Group

// StatsGroup deduplicates aggregate battle-stat queries keyed by the
// aggregate name (e.g. "battle-stats").
var StatsGroup singleflight.Group
