// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// HFSearchResult is one Hugging Face Hub model-search hit.
type HFSearchResult struct {
	ID        string   `json:"id"`
	Author    string   `json:"author"`
	Downloads int64    `json:"downloads"`
	Likes     int64    `json:"likes"`
	Tags      []string `json:"tags"`
}

// HFSearch is the SourceClient for the Hugging Face Hub model-search
// endpoint, used by candidate discovery to find HF repos matching a
// display name or model-id suffix.
type HFSearch struct {
	*Client
}

// NewHFSearch builds an HFSearch client.
func NewHFSearch(c *Client) *HFSearch { return &HFSearch{Client: c} }

// Search queries the hub for query, returning up to limit hits.
func (h *HFSearch) Search(ctx context.Context, query string, limit int) ([]HFSearchResult, bool) {
	path := fmt.Sprintf("api/models?search=%s&limit=%d", url.QueryEscape(query), limit)
	body, ok := h.GetBytes(ctx, query, path)
	if !ok {
		return nil, false
	}
	var results []HFSearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, false
	}
	return results, true
}
