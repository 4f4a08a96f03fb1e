// Copyright 2026 The Modelrater Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package store provides the relational persistence layer for the model
// rating engine: a thin GORM wrapper over a single SQLite file, with the
// domain-specific idempotent upserts the rating engine needs (models, raw
// metrics, links, standards, scores).
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Config configures how a Store connects to its SQLite file.
type Config struct {
	// Path is the filesystem path to the SQLite database file. If empty,
	// an in-memory database is used (one per Store, not shared).
	Path string

	// MaxConn is the maximum number of open connections. SQLite with WAL
	// supports exactly one writer; readers may be more, but this engine
	// is single-threaded so 1 is the sane default.
	MaxConn int
}

// DefaultConfig holds sane values the caller can override selectively.
var DefaultConfig = Config{
	MaxConn: 1,
}

// Store is the main database handle for the rating engine. Every method
// here is a thin, typed wrapper around a handful of GORM calls.
type Store struct {
	db  *gorm.DB
	cfg Config
}

// Option configures a Store at construction time.
type Option func(*Config)

// WithPath overrides the database file path.
func WithPath(path string) Option {
	return func(c *Config) { c.Path = path }
}

// WithInMemory forces an in-memory database, useful for tests.
func WithInMemory() Option {
	return func(c *Config) { c.Path = "" }
}

// Open creates a new Store, running auto-migration and setting
// PRAGMA journal_mode=WAL on open (skipped for :memory:).
func Open(opts ...Option) (s *Store, err error) {
	cfg := DefaultConfig
	for _, o := range opts {
		o(&cfg)
	}

	dsn := cfg.Path
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite database: %w", err)
	}

	if dsn != ":memory:" {
		if err = db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			return nil, fmt.Errorf("could not set journal mode: %w", err)
		}
	}

	if cfg.MaxConn > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("could not retrieve sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}

	if err = db.AutoMigrate(AllTypes()...); err != nil {
		return nil, fmt.Errorf("error during auto-migration: %w", err)
	}

	return &Store{db: db, cfg: cfg}, nil
}

// Close releases the underlying *sql.DB connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB exposes the underlying *gorm.DB for callers that need a raw query.
// The ScoringEngine does not use it; it reads cohort-wide values through
// MetricValuesAcrossCohort.
func (s *Store) DB() *gorm.DB { return s.db }

// translateErr maps common constraint-violation substrings to our sentinel
// errors.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return ErrUniqueConstraintFailed
	}
	if strings.Contains(msg, "constraint failed") {
		return ErrConstraintFailed
	}
	return err
}

// UpsertModel inserts a new Model or, if one already exists for
// (provider, provider_id), leaves its identity columns untouched and
// copies the existing row's ID and CreatedAt into m; m's RegistryID and
// HFRepoID are not refreshed from the stored row. RegistryID/HFRepoID are only set if the
// existing row does not already have them (late-binding, never
// overwritten with null by this path).
func (s *Store) UpsertModel(m *Model) (err error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	var existing Model
	err = s.db.Where("provider = ? AND provider_id = ?", m.Provider, m.ProviderID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.Create(m).Error
		return translateErr(err)
	}
	if err != nil {
		return translateErr(err)
	}

	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	updates := map[string]any{}
	if m.RegistryID != nil && existing.RegistryID == nil {
		updates["registry_id"] = *m.RegistryID
	}
	if m.HFRepoID != nil && existing.HFRepoID == nil {
		updates["hf_repo_id"] = *m.HFRepoID
	}
	if len(updates) > 0 {
		if err = s.db.Model(&Model{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
			return translateErr(err)
		}
	}
	return nil
}

// ClearHFRepoID implements the HF-invalidation rule in §4.5: the only path
// allowed to null out an already-set hf_repo_id.
func (s *Store) ClearHFRepoID(modelID uint) error {
	err := s.db.Model(&Model{}).Where("id = ?", modelID).Update("hf_repo_id", nil).Error
	return translateErr(err)
}

// GetModel retrieves a model by ID.
func (s *Store) GetModel(id uint) (m *Model, err error) {
	m = &Model{}
	err = s.db.First(m, id).Error
	return m, translateErr(err)
}

// FindModelByIdentity looks up a model by (provider, provider_id).
func (s *Store) FindModelByIdentity(provider, providerID string) (m *Model, err error) {
	m = &Model{}
	err = s.db.Where("provider = ? AND provider_id = ?", provider, providerID).First(m).Error
	return m, translateErr(err)
}

// ListModels returns every model in the cohort.
func (s *Store) ListModels() (models []Model, err error) {
	err = s.db.Order("id asc").Find(&models).Error
	return models, err
}

// CreateSource appends a new Source audit row and returns its ID.
func (s *Store) CreateSource(src *Source) (id uint, err error) {
	if src.RetrievedAt.IsZero() {
		src.RetrievedAt = time.Now().UTC()
	}
	if err = s.db.Create(src).Error; err != nil {
		return 0, translateErr(err)
	}
	return src.ID, nil
}

// UpsertLink inserts a Link, ignoring the insert if one already exists for
// the same (model_id, kind, url).
func (s *Store) UpsertLink(l *Link) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error
	return translateErr(err)
}

// UpsertMetric inserts or replaces the RawMetric row for (model_id, metric_key).
func (s *Store) UpsertMetric(m *RawMetric) error {
	if m.RetrievedAt.IsZero() {
		m.RetrievedAt = time.Now().UTC()
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_id"}, {Name: "metric_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "unit", "source_id", "retrieved_at"}),
	}).Create(m).Error
	return translateErr(err)
}

// MetricsForModel returns every RawMetric row for one model, keyed by metric_key.
func (s *Store) MetricsForModel(modelID uint) (out map[string]RawMetric, err error) {
	var rows []RawMetric
	if err = s.db.Where("model_id = ?", modelID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out = make(map[string]RawMetric, len(rows))
	for _, r := range rows {
		out[r.MetricKey] = r
	}
	return out, nil
}

// MetricValuesAcrossCohort returns every value of one metric key across all
// models, used by the ScoringEngine for cohort-derived normalization scales.
func (s *Store) MetricValuesAcrossCohort(metricKey string) (values []float64, err error) {
	var rows []RawMetric
	if err = s.db.Where("metric_key = ?", metricKey).Find(&rows).Error; err != nil {
		return nil, err
	}
	values = make([]float64, 0, len(rows))
	for _, r := range rows {
		values = append(values, r.Value)
	}
	return values, nil
}

// LinksForModel returns every Link row for one model.
func (s *Store) LinksForModel(modelID uint) (links []Link, err error) {
	err = s.db.Where("model_id = ?", modelID).Find(&links).Error
	return links, err
}

// GetOrCreateStandard returns the Standard row matching configHash,
// creating it if necessary. Two standards with identical content always
// share one row.
func (s *Store) GetOrCreateStandard(name, configHash, configJSON string) (st *Standard, err error) {
	st = &Standard{}
	err = s.db.Where("config_hash = ?", configHash).First(st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		st = &Standard{Name: name, ConfigHash: configHash, ConfigJSON: configJSON, CreatedAt: time.Now().UTC()}
		if err = s.db.Create(st).Error; err != nil {
			return nil, translateErr(err)
		}
		return st, nil
	}
	if err != nil {
		return nil, translateErr(err)
	}
	return st, nil
}

// UpsertScore replaces the Score row for (model_id, standard_id, category).
func (s *Store) UpsertScore(sc *Score) error {
	if sc.ComputedAt.IsZero() {
		sc.ComputedAt = time.Now().UTC()
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_id"}, {Name: "standard_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "confidence", "details", "computed_at"}),
	}).Create(sc).Error
	return translateErr(err)
}

// ScoresForModel returns every Score row for one model under one standard.
func (s *Store) ScoresForModel(modelID, standardID uint) (scores []Score, err error) {
	err = s.db.Where("model_id = ? AND standard_id = ?", modelID, standardID).Find(&scores).Error
	return scores, err
}
