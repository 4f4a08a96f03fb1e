// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HFRepoMetadata is the subset of a Hugging Face Hub repo-info response this
// engine cares about: declared languages (feeding the Multilinguality
// category) and whether the repo still exists.
type HFRepoMetadata struct {
	ID        string   `json:"id"`
	Languages []string `json:"language"`
	Downloads int64    `json:"downloads"`
	Likes     int64    `json:"likes"`
}

// HFMetadata is the SourceClient for per-repo Hugging Face Hub metadata.
type HFMetadata struct {
	*Client
}

// NewHFMetadata builds an HFMetadata client.
func NewHFMetadata(c *Client) *HFMetadata { return &HFMetadata{Client: c} }

// FetchRepo fetches metadata for repoID ("org/name"). It returns
// (meta, true, true) on success, (zero, false, false) when the repo no
// longer exists (HTTP 404 — the signal the orchestrator's HF-invalidation
// rule acts on), and (zero, false, true) for any other recoverable failure
// (network error, rate limit, malformed body) that should NOT be treated as
// proof the repo is gone.
func (h *HFMetadata) FetchRepo(ctx context.Context, repoID string) (meta HFRepoMetadata, ok bool, exists bool) {
	path := fmt.Sprintf("api/models/%s", repoID)

	body, status, transportOK := h.GetWithStatus(ctx, path)
	if status == http.StatusNotFound {
		return HFRepoMetadata{}, false, false
	}
	if !transportOK || status < 200 || status >= 300 {
		return HFRepoMetadata{}, false, true
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return HFRepoMetadata{}, false, true
	}
	return meta, true, true
}
