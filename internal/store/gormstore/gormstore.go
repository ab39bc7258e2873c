// Package gormstore implements the durable-store boundary on SQLite through
// GORM (pure-Go driver, no CGO). Collections are saved snapshot-style — each
// save replaces the whole table inside one transaction — matching the
// whole-collection semantics of the store interface and of the JSON store.
package gormstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/store"
)

// Store persists collections in a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite database at path, applies PRAGMAs,
// migrates the schema, and attaches OTel tracing to all queries.
func Open(path string) (*Store, error) {
	// Fail early if the parent directory does not exist (instead of a
	// confusing sqlite "out of memory (14)" on some platforms).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&domain.Donor{},
		&domain.Requestor{},
		&domain.BloodRequest{},
		&domain.Donation{},
		&domain.Assignment{},
		&domain.InventoryRecord{},
		&domain.IdempotencyRecord{},
	); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an already opened and migrated GORM handle; used by tests.
func NewWithDB(db *gorm.DB) *Store { return &Store{db: db} }

// LoadDonors implements store.Store.
func (s *Store) LoadDonors(ctx context.Context) ([]domain.Donor, error) {
	var out []domain.Donor
	return out, s.find(ctx, &out)
}

// SaveDonors implements store.Store.
func (s *Store) SaveDonors(ctx context.Context, donors []domain.Donor) error {
	return replaceAll(s.db.WithContext(ctx), &domain.Donor{}, donors)
}

// LoadRequestors implements store.Store.
func (s *Store) LoadRequestors(ctx context.Context) ([]domain.Requestor, error) {
	var out []domain.Requestor
	return out, s.find(ctx, &out)
}

// SaveRequestors implements store.Store.
func (s *Store) SaveRequestors(ctx context.Context, requestors []domain.Requestor) error {
	return replaceAll(s.db.WithContext(ctx), &domain.Requestor{}, requestors)
}

// LoadRequests implements store.Store.
func (s *Store) LoadRequests(ctx context.Context) ([]domain.BloodRequest, error) {
	var out []domain.BloodRequest
	return out, s.find(ctx, &out)
}

// SaveRequests implements store.Store.
func (s *Store) SaveRequests(ctx context.Context, requests []domain.BloodRequest) error {
	return replaceAll(s.db.WithContext(ctx), &domain.BloodRequest{}, requests)
}

// LoadDonations implements store.Store.
func (s *Store) LoadDonations(ctx context.Context) ([]domain.Donation, error) {
	var out []domain.Donation
	return out, s.find(ctx, &out)
}

// SaveDonations implements store.Store.
func (s *Store) SaveDonations(ctx context.Context, donations []domain.Donation) error {
	return replaceAll(s.db.WithContext(ctx), &domain.Donation{}, donations)
}

// LoadAssignments implements store.Store.
func (s *Store) LoadAssignments(ctx context.Context) ([]domain.Assignment, error) {
	var out []domain.Assignment
	return out, s.find(ctx, &out)
}

// SaveAssignments implements store.Store.
func (s *Store) SaveAssignments(ctx context.Context, assignments []domain.Assignment) error {
	return replaceAll(s.db.WithContext(ctx), &domain.Assignment{}, assignments)
}

// LoadInventory implements store.Store.
func (s *Store) LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	var out []domain.InventoryRecord
	return out, s.find(ctx, &out)
}

// SaveInventory implements store.Store.
func (s *Store) SaveInventory(ctx context.Context, records []domain.InventoryRecord) error {
	return replaceAll(s.db.WithContext(ctx), &domain.InventoryRecord{}, records)
}

// LoadIdempotency implements store.Store.
func (s *Store) LoadIdempotency(ctx context.Context) ([]domain.IdempotencyRecord, error) {
	var out []domain.IdempotencyRecord
	return out, s.find(ctx, &out)
}

// SaveIdempotency implements store.Store.
func (s *Store) SaveIdempotency(ctx context.Context, records []domain.IdempotencyRecord) error {
	return replaceAll(s.db.WithContext(ctx), &domain.IdempotencyRecord{}, records)
}

func (s *Store) find(ctx context.Context, out any) error {
	if err := s.db.WithContext(ctx).Find(out).Error; err != nil {
		return fmt.Errorf("%w: %v", store.ErrPersistenceFailure, err)
	}
	return nil
}

// replaceAll swaps the full contents of one table inside a transaction, so a
// reader sees either the previous snapshot or the new one.
func replaceAll[T any](db *gorm.DB, model *T, rows []T) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrPersistenceFailure, err)
	}
	return nil
}
