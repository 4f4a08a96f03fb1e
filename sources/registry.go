// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"encoding/json"
)

// RegistryModel is one entry from the primary model-marketplace catalog.
//
// Pricing fields are pointers because the upstream catalog omits them
// outright for many free or local-only models; a nil field means "no
// pricing reported", distinct from a real $0.
type RegistryModel struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	ContextLength         float64  `json:"context_length"`
	PromptUSDPerToken     *float64 `json:"prompt_usd_per_token"`
	CompletionUSDPerToken *float64 `json:"completion_usd_per_token"`
	RequestUSD            *float64 `json:"request_usd"`
	SupportsTools         bool     `json:"supports_tools"`
	SupportsStructured    bool     `json:"supports_structured_outputs"`
	IsModerated           bool     `json:"is_moderated"`
}

type registryCatalog struct {
	Data []RegistryModel `json:"data"`
}

// ModelRegistry is the SourceClient for the primary model marketplace: a
// REST catalog of every model the marketplace exposes, with pricing and
// capability metadata.
type ModelRegistry struct {
	*Client
}

// NewModelRegistry builds a ModelRegistry client.
func NewModelRegistry(c *Client) *ModelRegistry { return &ModelRegistry{Client: c} }

// ListModels fetches and parses the full catalog. On any failure it returns
// (nil, false), never an error.
func (r *ModelRegistry) ListModels(ctx context.Context) ([]RegistryModel, bool) {
	body, ok := r.GetBytes(ctx, "", "models")
	if !ok {
		return nil, false
	}

	var catalog registryCatalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, false
	}
	return catalog.Data, true
}

// FindByID looks up one catalog entry by its full catalog id (the model's
// registry_id, e.g. "openai/gpt-x"), not by the bare provider_id.
func (r *ModelRegistry) FindByID(ctx context.Context, providerID string) (*RegistryModel, bool) {
	models, ok := r.ListModels(ctx)
	if !ok {
		return nil, false
	}
	for i := range models {
		if models[i].ID == providerID {
			return &models[i], true
		}
	}
	return nil, false
}
