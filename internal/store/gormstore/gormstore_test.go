package gormstore

import (
	"context"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:gormstore_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
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
		t.Fatalf("automigrate: %v", err)
	}
	// Each test starts from empty tables.
	for _, m := range []any{
		&domain.Donor{}, &domain.Requestor{}, &domain.BloodRequest{},
		&domain.Donation{}, &domain.Assignment{}, &domain.InventoryRecord{},
		&domain.IdempotencyRecord{},
	} {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m)
	}
	return NewWithDB(db)
}

func TestSaveLoad_Donors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	in := []domain.Donor{
		{ID: "DON-1", Name: "Asha Rao", Email: "asha@example.com", BloodGroup: domain.OPositive,
			Age: 30, WeightKg: 62, Available: true, Active: true, RegisteredAt: now},
		{ID: "DON-2", Name: "Vikram Iyer", Email: "vikram@example.com", BloodGroup: domain.ABNegative,
			Age: 41, WeightKg: 80, Available: true, Active: true, RegisteredAt: now},
	}
	if err := s.SaveDonors(ctx, in); err != nil {
		t.Fatalf("SaveDonors: %v", err)
	}

	got, err := s.LoadDonors(ctx)
	if err != nil {
		t.Fatalf("LoadDonors: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d donors, want 2", len(got))
	}
}

func TestSave_ReplacesSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := []domain.BloodRequest{
		{ID: "BR-1", BloodGroup: domain.APositive, UnitsNeeded: 5, Status: domain.RequestPending},
		{ID: "BR-2", BloodGroup: domain.BNegative, UnitsNeeded: 2, Status: domain.RequestPending},
	}
	if err := s.SaveRequests(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// New snapshot drops BR-2 and updates BR-1.
	second := []domain.BloodRequest{
		{ID: "BR-1", BloodGroup: domain.APositive, UnitsNeeded: 5, UnitsFulfilled: 5, Status: domain.RequestFulfilled},
	}
	if err := s.SaveRequests(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.LoadRequests(ctx)
	if err != nil {
		t.Fatalf("LoadRequests: %v", err)
	}
	if len(got) != 1 || got[0].ID != "BR-1" || got[0].Status != domain.RequestFulfilled {
		t.Fatalf("snapshot not replaced: %+v", got)
	}
}

func TestSaveLoad_InventoryDonorIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := []domain.InventoryRecord{
		{BloodGroup: domain.OPositive, Units: 60, DonorIDs: []string{"DON-1", "DON-2"}},
		{BloodGroup: domain.ONegative, Units: 40, DonorIDs: nil},
	}
	if err := s.SaveInventory(ctx, in); err != nil {
		t.Fatalf("SaveInventory: %v", err)
	}

	got, err := s.LoadInventory(ctx)
	if err != nil || len(got) != 2 {
		t.Fatalf("LoadInventory: %v, %d records", err, len(got))
	}
	byGroup := map[domain.BloodGroup]domain.InventoryRecord{}
	for _, r := range got {
		byGroup[r.BloodGroup] = r
	}
	if op := byGroup[domain.OPositive]; op.Units != 60 || len(op.DonorIDs) != 2 {
		t.Fatalf("O+ record mismatch: %+v", op)
	}
}

func TestSaveLoad_Idempotency(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	in := []domain.IdempotencyRecord{
		{ID: "DN-IDEM0001", AssignmentID: "ASGN-1", Key: "retry-1",
			DonationID: "DN-1", CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour)},
	}
	if err := s.SaveIdempotency(ctx, in); err != nil {
		t.Fatalf("SaveIdempotency: %v", err)
	}

	got, err := s.LoadIdempotency(ctx)
	if err != nil || len(got) != 1 {
		t.Fatalf("LoadIdempotency: %v, %d records", err, len(got))
	}
	if got[0].AssignmentID != "ASGN-1" || got[0].Key != "retry-1" || got[0].DonationID != "DN-1" {
		t.Fatalf("record mismatch: %+v", got[0])
	}
}

func TestSave_EmptyCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveAssignments(ctx, []domain.Assignment{{
		ID: "ASGN-1", DonorID: "DON-1", RequestID: "BR-1",
		UnitsOffered: 2, Status: domain.AssignmentAccepted, AcceptedAt: time.Now().UTC(),
	}}); err != nil {
		t.Fatalf("seed save: %v", err)
	}
	if err := s.SaveAssignments(ctx, nil); err != nil {
		t.Fatalf("empty save: %v", err)
	}
	got, err := s.LoadAssignments(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty table, got %v %d", err, len(got))
	}
}
