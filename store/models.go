// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

package store

import "time"

// Model is a canonical language-model entity, unique by (provider, provider_id).
// RegistryID and HFRepoID are late-bound: they start nil and are only set once
// ingestion confirms them.
type Model struct {
	ID          uint   `gorm:"primaryKey"`
	DisplayName string `gorm:"column:display_name;not null"`
	Provider    string `gorm:"column:provider;not null;uniqueIndex:idx_model_identity"`
	ProviderID  string `gorm:"column:provider_id;not null;uniqueIndex:idx_model_identity"`
	RegistryID  *string `gorm:"column:registry_id"`
	HFRepoID    *string `gorm:"column:hf_repo_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Model) TableName() string { return "models" }

// Source is an append-only audit record of one ingestion from one upstream.
type Source struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	URL         string    `gorm:"column:url"`
	RetrievedAt time.Time `gorm:"column:retrieved_at"`
	PayloadBlob string    `gorm:"column:payload_blob"`
}

func (Source) TableName() string { return "sources" }

// RawMetric tracks the latest value of one metric key for one model.
type RawMetric struct {
	ModelID     uint      `gorm:"column:model_id;primaryKey;uniqueIndex:idx_raw_metric_key"`
	MetricKey   string    `gorm:"column:metric_key;primaryKey;uniqueIndex:idx_raw_metric_key"`
	Value       float64   `gorm:"column:value"`
	Unit        string    `gorm:"column:unit"`
	SourceID    uint      `gorm:"column:source_id"`
	RetrievedAt time.Time `gorm:"column:retrieved_at"`
}

func (RawMetric) TableName() string { return "raw_metrics" }

// Link is an idempotent insert-or-ignore record of a URL associated with a model.
type Link struct {
	ModelID   uint      `gorm:"column:model_id;primaryKey;uniqueIndex:idx_link_identity"`
	Kind      string    `gorm:"column:kind;primaryKey;uniqueIndex:idx_link_identity"`
	URL       string    `gorm:"column:url;primaryKey;uniqueIndex:idx_link_identity"`
	Title     string    `gorm:"column:title"`
	SourceID  uint      `gorm:"column:source_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Link) TableName() string { return "links" }

// Standard is a versioned, content-addressed scoring configuration. Identity
// is ConfigHash, the sha256 of the canonical-JSON form of ConfigJSON.
type Standard struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"column:name"`
	ConfigHash string    `gorm:"column:config_hash;uniqueIndex"`
	ConfigJSON string    `gorm:"column:config_json"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Standard) TableName() string { return "standards" }

// Score is a per-model, per-standard, per-category rescoring result. Rows
// are replaced wholesale on every rescore pass.
type Score struct {
	ModelID     uint      `gorm:"column:model_id;primaryKey;uniqueIndex:idx_score_identity"`
	StandardID  uint      `gorm:"column:standard_id;primaryKey;uniqueIndex:idx_score_identity"`
	Category    string    `gorm:"column:category;primaryKey;uniqueIndex:idx_score_identity"`
	ScoreValue  float64   `gorm:"column:score"`
	Confidence  float64   `gorm:"column:confidence"`
	Details     string    `gorm:"column:details"`
	ComputedAt  time.Time `gorm:"column:computed_at"`
}

func (Score) TableName() string { return "scores" }

// AllTypes returns every model type that must be covered by auto-migration.
func AllTypes() []any {
	return []any{&Model{}, &Source{}, &RawMetric{}, &Link{}, &Standard{}, &Score{}}
}
