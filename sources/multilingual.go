// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"strconv"
	"strings"
)

// MultilingualRow is one parsed row of the Markdown multilingual-accuracy
// table: a model name and its "Average" column value (0..1).
type MultilingualRow struct {
	Model   string
	Average float64
}

// MultilingualResults is the SourceClient for an HTML/Markdown table of
// per-language-per-model accuracies.
type MultilingualResults struct {
	*Client
}

// NewMultilingualResults builds a MultilingualResults client.
func NewMultilingualResults(c *Client) *MultilingualResults { return &MultilingualResults{Client: c} }

// LoadRows fetches and parses the Markdown table.
func (m *MultilingualResults) LoadRows(ctx context.Context) ([]MultilingualRow, bool) {
	body, ok := m.GetBytes(ctx, "", "mmmlu.md")
	if !ok {
		return nil, false
	}
	return ParseMarkdownTable(string(body))
}

// ParseMarkdownTable parses a GitHub-flavored Markdown pipe table whose
// header includes a "Model" column and an "Average" column, returning one
// MultilingualRow per data row. Rows whose Average cell does not parse as a
// number are skipped.
func ParseMarkdownTable(text string) ([]MultilingualRow, bool) {
	lines := strings.Split(text, "\n")
	var headerCells []string
	dataStart := -1

	for i, line := range lines {
		if !strings.Contains(line, "|") {
			continue
		}
		cells := splitTableRow(line)
		if headerCells == nil {
			headerCells = cells
			continue
		}
		if isSeparatorRow(cells) {
			dataStart = i + 1
			break
		}
	}
	if headerCells == nil || dataStart < 0 {
		return nil, false
	}

	modelCol, avgCol := -1, -1
	for i, h := range headerCells {
		lh := strings.ToLower(strings.TrimSpace(h))
		if lh == "model" {
			modelCol = i
		}
		if lh == "average" || lh == "avg" {
			avgCol = i
		}
	}
	if modelCol < 0 || avgCol < 0 {
		return nil, false
	}

	var rows []MultilingualRow
	for _, line := range lines[dataStart:] {
		if !strings.Contains(line, "|") {
			continue
		}
		cells := splitTableRow(line)
		if modelCol >= len(cells) || avgCol >= len(cells) {
			continue
		}
		avg, err := strconv.ParseFloat(strings.TrimSpace(cells[avgCol]), 64)
		if err != nil {
			continue
		}
		rows = append(rows, MultilingualRow{Model: strings.TrimSpace(cells[modelCol]), Average: avg})
	}
	return rows, len(rows) > 0
}

func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.Trim(line, "|")
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		trimmed := strings.Trim(c, "-: ")
		if trimmed != "" {
			return false
		}
	}
	return len(cells) > 0
}
