// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import "confirmate.io/modelrater/sources"

// ArenaThreshold is the minimum fuzzy-match similarity for a leaderboard
// row to be attributed to the target model.
const ArenaThreshold = 75.0

// ArenaExtractor maps one best-matching ArenaLeaderboard row to arena_score
// and arena_votes.
type ArenaExtractor struct{}

// Extract selects the row in rows whose model column best matches variants
// and, if it clears ArenaThreshold, returns its metrics.
func (ArenaExtractor) Extract(rows []sources.ArenaRow, variants []string) ([]Metric, bool) {
	idx, ok := bestMatch(rows, variants, func(r sources.ArenaRow) string { return r.Model }, ArenaThreshold)
	if !ok {
		return nil, false
	}
	row := rows[idx]
	return []Metric{
		{Key: "arena_score", Value: row.Score, Unit: "elo"},
		{Key: "arena_votes", Value: row.Votes, Unit: "count"},
	}, true
}
