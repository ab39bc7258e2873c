package services

import (
	"context"
	"testing"
	"time"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/ledger"
	"github.com/bloodsync/go-bloodbank-backend/internal/matching"
	"github.com/bloodsync/go-bloodbank-backend/internal/registry"
)

// fakeStore is an in-memory store.Store that can be told to fail a specific
// save, for exercising rollback paths.
type fakeStore struct {
	donors      []domain.Donor
	requestors  []domain.Requestor
	requests    []domain.BloodRequest
	donations   []domain.Donation
	assignments []domain.Assignment
	inventory   []domain.InventoryRecord
	idempotency []domain.IdempotencyRecord

	// failOn maps a collection name (donors, requestors, requests,
	// donations, assignments, inventory, idempotency) to the error its
	// save returns.
	failOn map[string]error

	saves []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{failOn: map[string]error{}}
}

func (f *fakeStore) check(kind string) error {
	f.saves = append(f.saves, kind)
	return f.failOn[kind]
}

func (f *fakeStore) LoadDonors(context.Context) ([]domain.Donor, error)       { return f.donors, nil }
func (f *fakeStore) LoadRequestors(context.Context) ([]domain.Requestor, error) {
	return f.requestors, nil
}
func (f *fakeStore) LoadRequests(context.Context) ([]domain.BloodRequest, error) {
	return f.requests, nil
}
func (f *fakeStore) LoadDonations(context.Context) ([]domain.Donation, error) { return f.donations, nil }
func (f *fakeStore) LoadAssignments(context.Context) ([]domain.Assignment, error) {
	return f.assignments, nil
}
func (f *fakeStore) LoadInventory(context.Context) ([]domain.InventoryRecord, error) {
	return f.inventory, nil
}

func (f *fakeStore) SaveDonors(_ context.Context, all []domain.Donor) error {
	if err := f.check("donors"); err != nil {
		return err
	}
	f.donors = all
	return nil
}

func (f *fakeStore) SaveRequestors(_ context.Context, all []domain.Requestor) error {
	if err := f.check("requestors"); err != nil {
		return err
	}
	f.requestors = all
	return nil
}

func (f *fakeStore) SaveRequests(_ context.Context, all []domain.BloodRequest) error {
	if err := f.check("requests"); err != nil {
		return err
	}
	f.requests = all
	return nil
}

func (f *fakeStore) SaveDonations(_ context.Context, all []domain.Donation) error {
	if err := f.check("donations"); err != nil {
		return err
	}
	f.donations = all
	return nil
}

func (f *fakeStore) SaveAssignments(_ context.Context, all []domain.Assignment) error {
	if err := f.check("assignments"); err != nil {
		return err
	}
	f.assignments = all
	return nil
}

func (f *fakeStore) SaveInventory(_ context.Context, all []domain.InventoryRecord) error {
	if err := f.check("inventory"); err != nil {
		return err
	}
	f.inventory = all
	return nil
}

func (f *fakeStore) LoadIdempotency(context.Context) ([]domain.IdempotencyRecord, error) {
	return f.idempotency, nil
}

func (f *fakeStore) SaveIdempotency(_ context.Context, all []domain.IdempotencyRecord) error {
	if err := f.check("idempotency"); err != nil {
		return err
	}
	f.idempotency = all
	return nil
}

// testClock is a controllable clock for the Core.
type testClock struct{ t time.Time }

func (c *testClock) now() time.Time            { return c.t }
func (c *testClock) advance(d time.Duration)   { c.t = c.t.Add(d) }
func (c *testClock) set(t time.Time)           { c.t = t }
func (c *testClock) daysAgo(n int) *time.Time  { t := c.t.AddDate(0, 0, -n); return &t }

func newTestCore(t *testing.T) (*Core, *fakeStore, *testClock) {
	t.Helper()
	st := newFakeStore()
	clk := &testClock{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	core := NewCore(registry.New(), ledger.New(ledger.DefaultThresholds), st)
	core.Now = clk.now
	return core, st, clk
}

// seedDonor registers a donor directly into registry and ledger.
func seedDonor(t *testing.T, c *Core, d domain.Donor) domain.Donor {
	t.Helper()
	if d.ID == "" {
		d.ID = NewID(prefixDonor)
	}
	c.Registry.PutDonor(d)
	if _, err := c.Ledger.RegisterDonor(d.ID, d.BloodGroup); err != nil {
		t.Fatalf("seedDonor: %v", err)
	}
	return d
}

func seedRequestor(t *testing.T, c *Core, q domain.Requestor) domain.Requestor {
	t.Helper()
	if q.ID == "" {
		q.ID = NewID(prefixRequestor)
	}
	c.Registry.PutRequestor(q)
	return q
}

func seedRequest(t *testing.T, c *Core, br domain.BloodRequest) domain.BloodRequest {
	t.Helper()
	if br.ID == "" {
		br.ID = NewID(prefixRequest)
	}
	if br.Status == "" {
		br.Status = domain.RequestPending
	}
	if br.Urgency == "" {
		br.Urgency = domain.UrgencyNormal
	}
	c.Registry.PutRequest(br)
	return br
}

func addStock(t *testing.T, c *Core, g domain.BloodGroup, units int) {
	t.Helper()
	if err := c.Ledger.AddUnits(g, units); err != nil {
		t.Fatalf("addStock: %v", err)
	}
}

func newDonorService(c *Core) *DonorService {
	return &DonorService{Core: c, Rule: matching.Rule{}}
}

func newRequestService(c *Core) *RequestService {
	return &RequestService{Core: c, Rule: matching.Rule{}}
}
