// Package registry holds the in-memory working set of durable entities:
// donors, requestors, blood requests, assignments, donations, and the replay
// records behind idempotent donation confirmation. It is
// loaded from the durable store at process start and updated by the service
// layer strictly after the corresponding durable write succeeded.
//
// All accessors copy: readers can never observe a torn record, and mutating
// a returned value does not touch registry state until it is put back.
package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/store"
)

// Registry is the synchronized entity working set. Safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	donors      map[string]domain.Donor
	requestors  map[string]domain.Requestor
	requests    map[string]domain.BloodRequest
	assignments map[string]domain.Assignment
	donations   map[string]domain.Donation
	idem        map[string]domain.IdempotencyRecord
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		donors:      map[string]domain.Donor{},
		requestors:  map[string]domain.Requestor{},
		requests:    map[string]domain.BloodRequest{},
		assignments: map[string]domain.Assignment{},
		donations:   map[string]domain.Donation{},
		idem:        map[string]domain.IdempotencyRecord{},
	}
}

func idemKey(assignmentID, key string) string {
	return assignmentID + "\x00" + key
}

// Load fills the registry from the durable store, replacing any prior
// contents.
func Load(ctx context.Context, st store.Store) (*Registry, error) {
	donors, err := st.LoadDonors(ctx)
	if err != nil {
		return nil, err
	}
	requestors, err := st.LoadRequestors(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := st.LoadRequests(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := st.LoadAssignments(ctx)
	if err != nil {
		return nil, err
	}
	donations, err := st.LoadDonations(ctx)
	if err != nil {
		return nil, err
	}
	idem, err := st.LoadIdempotency(ctx)
	if err != nil {
		return nil, err
	}

	r := New()
	for _, d := range donors {
		r.donors[d.ID] = d
	}
	for _, q := range requestors {
		r.requestors[q.ID] = q
	}
	for _, br := range requests {
		r.requests[br.ID] = br
	}
	for _, a := range assignments {
		r.assignments[a.ID] = a
	}
	for _, dn := range donations {
		r.donations[dn.ID] = dn
	}
	for _, rec := range idem {
		r.idem[idemKey(rec.AssignmentID, rec.Key)] = rec
	}
	return r, nil
}

// ---- Donors ----

// Donor returns a copy of the donor with the given id.
func (r *Registry) Donor(id string) (domain.Donor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.donors[id]
	return d, ok
}

// PutDonor inserts or replaces a donor.
func (r *Registry) PutDonor(d domain.Donor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.donors[d.ID] = d
}

// Donors returns all donors sorted by id.
func (r *Registry) Donors() []domain.Donor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Donor, 0, len(r.donors))
	for _, d := range r.donors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DonorsByGroups returns every donor whose blood group is in groups. It
// implements matching.DonorSource.
func (r *Registry) DonorsByGroups(groups []domain.BloodGroup) []domain.Donor {
	in := make(map[domain.BloodGroup]bool, len(groups))
	for _, g := range groups {
		in[g] = true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Donor
	for _, d := range r.donors {
		if in[d.BloodGroup] {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- Requestors ----

// Requestor returns a copy of the requestor with the given id.
func (r *Registry) Requestor(id string) (domain.Requestor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.requestors[id]
	return q, ok
}

// PutRequestor inserts or replaces a requestor.
func (r *Registry) PutRequestor(q domain.Requestor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requestors[q.ID] = q
}

// Requestors returns all requestors sorted by id.
func (r *Registry) Requestors() []domain.Requestor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Requestor, 0, len(r.requestors))
	for _, q := range r.requestors {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- Blood requests ----

// Request returns a copy of the blood request with the given id.
func (r *Registry) Request(id string) (domain.BloodRequest, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	br, ok := r.requests[id]
	return br, ok
}

// PutRequest inserts or replaces a blood request.
func (r *Registry) PutRequest(br domain.BloodRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[br.ID] = br
}

// Requests returns all blood requests sorted by creation time descending,
// then id for determinism.
func (r *Registry) Requests() []domain.BloodRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.BloodRequest, 0, len(r.requests))
	for _, br := range r.requests {
		out = append(out, br)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ---- Assignments ----

// Assignment returns a copy of the assignment with the given id.
func (r *Registry) Assignment(id string) (domain.Assignment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assignments[id]
	return a, ok
}

// PutAssignment inserts or replaces an assignment.
func (r *Registry) PutAssignment(a domain.Assignment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[a.ID] = a
}

// Assignments returns all assignments sorted by id.
func (r *Registry) Assignments() []domain.Assignment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Assignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActiveAssignment returns the active (accepted) assignment for the
// (donor, request) pair, if one exists. At most one can be active at a time.
func (r *Registry) ActiveAssignment(donorID, requestID string) (domain.Assignment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.assignments {
		if a.DonorID == donorID && a.RequestID == requestID && a.Active() {
			return a, true
		}
	}
	return domain.Assignment{}, false
}

// AssignmentsForRequest returns the assignments bound to one request,
// sorted by acceptance time then id.
func (r *Registry) AssignmentsForRequest(requestID string) []domain.Assignment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Assignment
	for _, a := range r.assignments {
		if a.RequestID == requestID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AcceptedAt.Equal(out[j].AcceptedAt) {
			return out[i].AcceptedAt.Before(out[j].AcceptedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ---- Donations ----

// PutDonation appends a donation. Donations are append-only; replacing an
// existing id would violate immutability, so existing entries are kept.
func (r *Registry) PutDonation(dn domain.Donation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.donations[dn.ID]; exists {
		return
	}
	r.donations[dn.ID] = dn
}

// Donations returns all donations sorted by time descending, then id.
func (r *Registry) Donations() []domain.Donation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Donation, 0, len(r.donations))
	for _, dn := range r.donations {
		out = append(out, dn)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DonatedAt.Equal(out[j].DonatedAt) {
			return out[i].DonatedAt.After(out[j].DonatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DonationsForDonor returns one donor's donations, newest first.
func (r *Registry) DonationsForDonor(donorID string) []domain.Donation {
	var out []domain.Donation
	for _, dn := range r.Donations() {
		if dn.DonorID == donorID {
			out = append(out, dn)
		}
	}
	return out
}

// ---- Idempotency records ----

// IdempotencyRecord returns the replay record for an (assignment, key) pair.
func (r *Registry) IdempotencyRecord(assignmentID, key string) (domain.IdempotencyRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.idem[idemKey(assignmentID, key)]
	return rec, ok
}

// PutIdempotencyRecord inserts or replaces a replay record.
func (r *Registry) PutIdempotencyRecord(rec domain.IdempotencyRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idem[idemKey(rec.AssignmentID, rec.Key)] = rec
}

// DeleteIdempotencyRecord drops the replay record for an (assignment, key)
// pair, if present.
func (r *Registry) DeleteIdempotencyRecord(assignmentID, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.idem, idemKey(assignmentID, key))
}

// IdempotencyRecords returns all replay records sorted by assignment id then
// key.
func (r *Registry) IdempotencyRecords() []domain.IdempotencyRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.IdempotencyRecord, 0, len(r.idem))
	for _, rec := range r.idem {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AssignmentID != out[j].AssignmentID {
			return out[i].AssignmentID < out[j].AssignmentID
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// ---- Counters ----

// Counts returns entity totals used by the statistics aggregator.
func (r *Registry) Counts() (donors, requestors, requests int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.donors), len(r.requestors), len(r.requests)
}
