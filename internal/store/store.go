// Package store defines the durable-store boundary the core persists
// through. Each entity kind is loaded and saved as a whole collection; the
// core writes after every successful mutation and treats a failed save as
// grounds for rolling the mutation back, so in-memory and durable state never
// diverge.
//
// Two implementations exist: jsonstore (one JSON file per kind, the original
// deployment model) and gormstore (SQLite via GORM).
package store

import (
	"context"
	"errors"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
)

// ErrPersistenceFailure wraps any error from a durable write that did not
// complete. Callers match it with errors.Is.
var ErrPersistenceFailure = errors.New("persistence failure")

// Store is the durable collaborator. Implementations must make each Save
// atomic per collection: a save either lands completely or not at all.
// LoadX on an empty store returns an empty collection, not an error.
type Store interface {
	LoadDonors(ctx context.Context) ([]domain.Donor, error)
	SaveDonors(ctx context.Context, donors []domain.Donor) error

	LoadRequestors(ctx context.Context) ([]domain.Requestor, error)
	SaveRequestors(ctx context.Context, requestors []domain.Requestor) error

	LoadRequests(ctx context.Context) ([]domain.BloodRequest, error)
	SaveRequests(ctx context.Context, requests []domain.BloodRequest) error

	LoadDonations(ctx context.Context) ([]domain.Donation, error)
	SaveDonations(ctx context.Context, donations []domain.Donation) error

	LoadAssignments(ctx context.Context) ([]domain.Assignment, error)
	SaveAssignments(ctx context.Context, assignments []domain.Assignment) error

	LoadInventory(ctx context.Context) ([]domain.InventoryRecord, error)
	SaveInventory(ctx context.Context, records []domain.InventoryRecord) error

	LoadIdempotency(ctx context.Context) ([]domain.IdempotencyRecord, error)
	SaveIdempotency(ctx context.Context, records []domain.IdempotencyRecord) error
}
