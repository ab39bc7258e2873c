// Package jsonstore persists each entity collection as one pretty-printed
// JSON file in a data directory (donors.json, requestors.json, and so on),
// the same layout the original deployment used. Writes go through a temp
// file and os.Rename so a crash mid-write never leaves a torn collection.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/store"
)

// File names per entity kind.
const (
	donorsFile      = "donors.json"
	requestorsFile  = "requestors.json"
	requestsFile    = "blood_requests.json"
	donationsFile   = "donations.json"
	assignmentsFile = "assignments.json"
	inventoryFile   = "inventory.json"
	idempotencyFile = "idempotency.json"
)

// Store reads and writes entity collections under a single directory.
type Store struct {
	dir string
}

// Open prepares a JSON store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", store.ErrPersistenceFailure, err)
	}
	return &Store{dir: dir}, nil
}

// LoadDonors implements store.Store.
func (s *Store) LoadDonors(ctx context.Context) ([]domain.Donor, error) {
	var out []domain.Donor
	err := s.load(donorsFile, &out)
	return out, err
}

// SaveDonors implements store.Store.
func (s *Store) SaveDonors(ctx context.Context, donors []domain.Donor) error {
	return s.save(donorsFile, donors)
}

// LoadRequestors implements store.Store.
func (s *Store) LoadRequestors(ctx context.Context) ([]domain.Requestor, error) {
	var out []domain.Requestor
	err := s.load(requestorsFile, &out)
	return out, err
}

// SaveRequestors implements store.Store.
func (s *Store) SaveRequestors(ctx context.Context, requestors []domain.Requestor) error {
	return s.save(requestorsFile, requestors)
}

// LoadRequests implements store.Store.
func (s *Store) LoadRequests(ctx context.Context) ([]domain.BloodRequest, error) {
	var out []domain.BloodRequest
	err := s.load(requestsFile, &out)
	return out, err
}

// SaveRequests implements store.Store.
func (s *Store) SaveRequests(ctx context.Context, requests []domain.BloodRequest) error {
	return s.save(requestsFile, requests)
}

// LoadDonations implements store.Store.
func (s *Store) LoadDonations(ctx context.Context) ([]domain.Donation, error) {
	var out []domain.Donation
	err := s.load(donationsFile, &out)
	return out, err
}

// SaveDonations implements store.Store.
func (s *Store) SaveDonations(ctx context.Context, donations []domain.Donation) error {
	return s.save(donationsFile, donations)
}

// LoadAssignments implements store.Store.
func (s *Store) LoadAssignments(ctx context.Context) ([]domain.Assignment, error) {
	var out []domain.Assignment
	err := s.load(assignmentsFile, &out)
	return out, err
}

// SaveAssignments implements store.Store.
func (s *Store) SaveAssignments(ctx context.Context, assignments []domain.Assignment) error {
	return s.save(assignmentsFile, assignments)
}

// LoadInventory implements store.Store.
func (s *Store) LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error) {
	var out []domain.InventoryRecord
	err := s.load(inventoryFile, &out)
	return out, err
}

// SaveInventory implements store.Store.
func (s *Store) SaveInventory(ctx context.Context, records []domain.InventoryRecord) error {
	return s.save(inventoryFile, records)
}

// LoadIdempotency implements store.Store.
func (s *Store) LoadIdempotency(ctx context.Context) ([]domain.IdempotencyRecord, error) {
	var out []domain.IdempotencyRecord
	err := s.load(idempotencyFile, &out)
	return out, err
}

// SaveIdempotency implements store.Store.
func (s *Store) SaveIdempotency(ctx context.Context, records []domain.IdempotencyRecord) error {
	return s.save(idempotencyFile, records)
}

// load decodes one collection file into v. A missing file is an empty
// collection, not an error.
func (s *Store) load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read %s: %v", store.ErrPersistenceFailure, name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", store.ErrPersistenceFailure, name, err)
	}
	return nil
}

// save writes v to a temp file in the same directory and renames it over the
// collection file, so readers see either the old or the new collection.
func (s *Store) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", store.ErrPersistenceFailure, name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: temp file for %s: %v", store.ErrPersistenceFailure, name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", store.ErrPersistenceFailure, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", store.ErrPersistenceFailure, name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename %s: %v", store.ErrPersistenceFailure, name, err)
	}
	return nil
}
