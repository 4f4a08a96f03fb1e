// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"encoding/csv"
	"strconv"
	"strings"
)

// ArenaRow is one row of a human-preference leaderboard (model, Elo, votes).
type ArenaRow struct {
	Model string
	Score float64
	Votes float64
}

// ArenaLeaderboard is the SourceClient for a CSV-distributed human-preference
// leaderboard.
type ArenaLeaderboard struct {
	*Client
}

// NewArenaLeaderboard builds an ArenaLeaderboard client.
func NewArenaLeaderboard(c *Client) *ArenaLeaderboard { return &ArenaLeaderboard{Client: c} }

// LoadRows fetches and parses the leaderboard CSV. Columns are matched by
// header name (case-insensitively): "model", "score"/"elo", "votes".
func (a *ArenaLeaderboard) LoadRows(ctx context.Context) ([]ArenaRow, bool) {
	body, ok := a.GetBytes(ctx, "", "leaderboard.csv")
	if !ok {
		return nil, false
	}

	reader := csv.NewReader(strings.NewReader(string(body)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		return nil, false
	}

	header := records[0]
	idx := columnIndex(header)
	modelCol, scoreCol, votesCol := idx("model"), idx("score", "elo"), idx("votes", "vote_count")
	if modelCol < 0 || scoreCol < 0 {
		return nil, false
	}

	var rows []ArenaRow
	for _, rec := range records[1:] {
		if modelCol >= len(rec) || scoreCol >= len(rec) {
			continue
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(rec[scoreCol]), 64)
		if err != nil {
			continue
		}
		var votes float64
		if votesCol >= 0 && votesCol < len(rec) {
			votes, _ = strconv.ParseFloat(strings.TrimSpace(rec[votesCol]), 64)
		}
		rows = append(rows, ArenaRow{Model: rec[modelCol], Score: score, Votes: votes})
	}
	return rows, true
}

// columnIndex returns a lookup closure for a CSV header row: given one or
// more candidate names, it returns the first matching column index or -1.
func columnIndex(header []string) func(candidates ...string) int {
	lower := make([]string, len(header))
	for i, h := range header {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return func(candidates ...string) int {
		for _, c := range candidates {
			for i, h := range lower {
				if h == c {
					return i
				}
			}
		}
		return -1
	}
}

// EloRange returns the (min, max) Elo score across every row, used by the
// ScoringEngine's benchmark-derived normalization for arena_score.
func EloRange(rows []ArenaRow) (min, max float64, ok bool) {
	if len(rows) == 0 {
		return 0, 0, false
	}
	min, max = rows[0].Score, rows[0].Score
	for _, r := range rows[1:] {
		if r.Score < min {
			min = r.Score
		}
		if r.Score > max {
			max = r.Score
		}
	}
	return min, max, true
}
