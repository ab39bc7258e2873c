// Package services – RequestService
//
// This file implements RequestService: requestor registration, the blood
// request lifecycle up to (but not including) donation confirmation, donor
// candidate matching, the assignment accept/cancel flow, and the two
// stock-direct paths (fulfilling a request from inventory and direct
// withdrawal by a requestor).
//
// Observability: mutating methods are OpenTelemetry-instrumented.

package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/matching"
)

// RequestorInput carries the fields accepted at requestor registration.
type RequestorInput struct {
	Name         string
	Email        string
	Phone        string
	Organization string
	City         string
	State        string
}

// RequestInput carries the fields accepted at blood request creation.
type RequestInput struct {
	RequestorID  string
	PatientName  string
	BloodGroup   string
	UnitsNeeded  int
	HospitalName string
	City         string
	Urgency      string
}

// WithdrawalInput carries the fields of a direct stock withdrawal.
type WithdrawalInput struct {
	RequestorID  string
	BloodGroup   string
	Units        int
	PatientName  string
	HospitalName string
	City         string
}

// RequestService coordinates requestors, blood requests, matching, and
// assignments.
type RequestService struct {
	Core *Core

	// Rule is the donation eligibility policy used for candidate matching.
	Rule matching.Rule
}

// matcher builds a request matcher over the live donor registry.
func (s *RequestService) matcher() *matching.Matcher {
	return &matching.Matcher{Donors: s.Core.Registry, Rule: s.Rule}
}

// RegisterRequestor validates the input, assigns a REQ- id, and persists the
// requestor collection.
func (s *RequestService) RegisterRequestor(ctx context.Context, in RequestorInput) (*domain.Requestor, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "RegisterRequestor")
	defer span.End()

	name := normalizeName(in.Name)
	if name == "" || strings.TrimSpace(in.Email) == "" {
		return nil, ErrInvalidRequestor
	}

	c := s.Core
	c.mu.Lock()
	defer c.mu.Unlock()

	q := domain.Requestor{
		ID:           NewID(prefixRequestor),
		Name:         name,
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Organization: strings.TrimSpace(in.Organization),
		City:         normalizeName(in.City),
		State:        normalizeName(in.State),
		RegisteredAt: c.now(),
	}
	if err := c.saveRequestors(ctx, q); err != nil {
		return nil, err
	}
	c.Registry.PutRequestor(q)
	span.SetAttributes(attribute.String("requestor.id", q.ID))
	return &q, nil
}

// GetRequestor returns one requestor by id.
func (s *RequestService) GetRequestor(_ context.Context, id string) (*domain.Requestor, error) {
	q, ok := s.Core.Registry.Requestor(id)
	if !ok {
		return nil, ErrRequestorNotFound
	}
	return &q, nil
}

// CreateRequest validates the input and opens a pending blood request on
// behalf of an existing requestor.
func (s *RequestService) CreateRequest(ctx context.Context, in RequestInput) (*domain.BloodRequest, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "CreateRequest",
		trace.WithAttributes(
			attribute.String("requestor.id", in.RequestorID),
			attribute.String("blood_group", in.BloodGroup),
			attribute.Int("units_needed", in.UnitsNeeded),
		),
	)
	defer span.End()

	group, err := domain.ParseBloodGroup(in.BloodGroup)
	if err != nil {
		return nil, err
	}
	if in.UnitsNeeded <= 0 {
		return nil, ErrInvalidUnits
	}
	urgency := strings.ToLower(strings.TrimSpace(in.Urgency))
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}
	if _, ok := urgencyRank[urgency]; !ok {
		return nil, ErrInvalidRequest
	}

	c := s.Core
	c.mu.Lock()
	defer c.mu.Unlock()

	q, ok := c.Registry.Requestor(in.RequestorID)
	if !ok {
		return nil, ErrRequestorNotFound
	}

	br := domain.BloodRequest{
		ID:           NewID(prefixRequest),
		RequestorID:  q.ID,
		PatientName:  normalizeName(in.PatientName),
		BloodGroup:   group,
		UnitsNeeded:  in.UnitsNeeded,
		HospitalName: strings.TrimSpace(in.HospitalName),
		City:         normalizeName(in.City),
		Urgency:      urgency,
		Status:       domain.RequestPending,
		CreatedAt:    c.now(),
	}
	q.TotalRequests++

	if err := c.persistAll(ctx, c.stepRequests(br), c.stepRequestors(q)); err != nil {
		return nil, err
	}
	c.Registry.PutRequest(br)
	c.Registry.PutRequestor(q)
	span.SetAttributes(attribute.String("request.id", br.ID))
	return &br, nil
}

// GetRequest returns one blood request by id.
func (s *RequestService) GetRequest(_ context.Context, id string) (*domain.BloodRequest, error) {
	br, ok := s.Core.Registry.Request(id)
	if !ok {
		return nil, ErrRequestNotFound
	}
	return &br, nil
}

// ListRequestsPage returns a page of blood requests (newest first) plus the
// total count.
func (s *RequestService) ListRequestsPage(_ context.Context, page, pageSize int) ([]domain.BloodRequest, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	all := s.Core.Registry.Requests()
	total := len(all)
	start := (page - 1) * pageSize
	if start >= total {
		return []domain.BloodRequest{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// FindCandidates returns the eligible donors for a request, longest-eligible
// first. A request with no candidates yields an empty slice, not an error.
func (s *RequestService) FindCandidates(ctx context.Context, requestID string) ([]matching.Candidate, error) {
	tr := otel.Tracer("services/RequestService")
	_, span := tr.Start(ctx, "FindCandidates",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	br, ok := s.Core.Registry.Request(requestID)
	if !ok {
		return nil, ErrRequestNotFound
	}
	cands := s.matcher().FindCandidates(br, s.Core.now())
	span.SetAttributes(attribute.Int("candidates", len(cands)))
	return cands, nil
}

// AcceptRequest creates an accepted assignment binding a donor to a request.
// A donor may hold at most one active assignment per request.
func (s *RequestService) AcceptRequest(ctx context.Context, donorID, requestID string, unitsOffered int, notes string) (*domain.Assignment, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "AcceptRequest",
		trace.WithAttributes(
			attribute.String("donor.id", donorID),
			attribute.String("request.id", requestID),
			attribute.Int("units_offered", unitsOffered),
		),
	)
	defer span.End()

	c := s.Core
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.Registry.Donor(donorID)
	if !ok {
		return nil, ErrDonorNotFound
	}
	if !d.Active || !d.Available {
		return nil, ErrDonorNotEligible
	}
	br, ok := c.Registry.Request(requestID)
	if !ok {
		return nil, ErrRequestNotFound
	}
	if !br.Open() {
		return nil, ErrRequestFulfilled
	}
	if unitsOffered <= 0 || unitsOffered > br.Remaining() {
		return nil, ErrInvalidUnits
	}
	if _, exists := c.Registry.ActiveAssignment(donorID, requestID); exists {
		return nil, ErrDuplicateAssignment
	}

	a := domain.Assignment{
		ID:           NewID(prefixAssignment),
		DonorID:      d.ID,
		RequestID:    br.ID,
		UnitsOffered: unitsOffered,
		Status:       domain.AssignmentAccepted,
		Notes:        strings.TrimSpace(notes),
		AcceptedAt:   c.now(),
	}
	if err := c.saveAssignments(ctx, a); err != nil {
		return nil, err
	}
	c.Registry.PutAssignment(a)
	span.SetAttributes(attribute.String("assignment.id", a.ID))
	return &a, nil
}

// CancelAssignment moves an accepted assignment to the terminal cancelled
// state.
func (s *RequestService) CancelAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "CancelAssignment",
		trace.WithAttributes(attribute.String("assignment.id", assignmentID)),
	)
	defer span.End()

	c := s.Core
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.Registry.Assignment(assignmentID)
	if !ok {
		return nil, ErrAssignmentNotFound
	}
	if !a.Active() {
		return nil, ErrInvalidAssignmentState
	}
	a.Status = domain.AssignmentCancelled
	if err := c.saveAssignments(ctx, a); err != nil {
		return nil, err
	}
	c.Registry.PutAssignment(a)
	return &a, nil
}

// UseInventory fulfills part of an open request straight from stock, with no
// donor involved. The deduction is rolled back if the durable write fails.
func (s *RequestService) UseInventory(ctx context.Context, requestID string, units int) (*domain.BloodRequest, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "UseInventory",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
			attribute.Int("units", units),
		),
	)
	defer span.End()

	c := s.Core
	c.mu.Lock()
	defer c.mu.Unlock()

	br, ok := c.Registry.Request(requestID)
	if !ok {
		return nil, ErrRequestNotFound
	}
	if !br.Open() {
		return nil, ErrRequestFulfilled
	}
	if units <= 0 || units > br.Remaining() {
		return nil, ErrInvalidUnits
	}

	if err := c.Ledger.DeductUnits(br.BloodGroup, units); err != nil {
		return nil, err
	}

	br.UnitsFulfilled += units
	br.InventoryUsed += units
	br.Status = requestStatus(br)

	if err := c.persistRequestAndInventory(ctx, br); err != nil {
		_ = c.Ledger.AddUnits(br.BloodGroup, units)
		return nil, err
	}
	c.Registry.PutRequest(br)
	return &br, nil
}

// WithdrawFromInventory deducts stock on behalf of a requestor, recording an
// auto-fulfilled request and a withdrawal donation entry for the audit trail.
func (s *RequestService) WithdrawFromInventory(ctx context.Context, in WithdrawalInput) (*domain.BloodRequest, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "WithdrawFromInventory",
		trace.WithAttributes(
			attribute.String("requestor.id", in.RequestorID),
			attribute.String("blood_group", in.BloodGroup),
			attribute.Int("units", in.Units),
		),
	)
	defer span.End()

	group, err := domain.ParseBloodGroup(in.BloodGroup)
	if err != nil {
		return nil, err
	}
	if in.Units <= 0 {
		return nil, ErrInvalidUnits
	}

	c := s.Core
	c.mu.Lock()
	defer c.mu.Unlock()

	q, ok := c.Registry.Requestor(in.RequestorID)
	if !ok {
		return nil, ErrRequestorNotFound
	}

	if err := c.Ledger.DeductUnits(group, in.Units); err != nil {
		return nil, err
	}

	now := c.now()
	br := domain.BloodRequest{
		ID:             NewID(prefixRequest),
		RequestorID:    q.ID,
		PatientName:    normalizeName(in.PatientName),
		BloodGroup:     group,
		UnitsNeeded:    in.Units,
		UnitsFulfilled: in.Units,
		InventoryUsed:  in.Units,
		HospitalName:   strings.TrimSpace(in.HospitalName),
		City:           normalizeName(in.City),
		Urgency:        domain.UrgencyNormal,
		Status:         domain.RequestFulfilled,
		CreatedAt:      now,
	}
	dn := domain.Donation{
		ID:         NewID(prefixDonation),
		RequestID:  br.ID,
		BloodGroup: group,
		Units:      in.Units,
		Kind:       domain.DonationKindWithdrawal,
		DonatedAt:  now,
	}
	q.TotalRequests++

	if err := c.persistWithdrawal(ctx, q, br, dn); err != nil {
		_ = c.Ledger.AddUnits(group, in.Units)
		return nil, err
	}
	c.Registry.PutRequestor(q)
	c.Registry.PutRequest(br)
	c.Registry.PutDonation(dn)
	span.SetAttributes(attribute.String("request.id", br.ID))
	return &br, nil
}

func (c *Core) persistRequestAndInventory(ctx context.Context, br domain.BloodRequest) error {
	return c.persistAll(ctx, c.stepRequests(br), c.stepInventory())
}

func (c *Core) persistWithdrawal(ctx context.Context, q domain.Requestor, br domain.BloodRequest, dn domain.Donation) error {
	return c.persistAll(ctx,
		c.stepRequestors(q),
		c.stepRequests(br),
		c.stepDonations(dn),
		c.stepInventory(),
	)
}

// requestStatus derives a request's status from its fulfillment counters.
func requestStatus(br domain.BloodRequest) string {
	switch {
	case br.UnitsFulfilled >= br.UnitsNeeded:
		return domain.RequestFulfilled
	case br.UnitsFulfilled > 0:
		return domain.RequestPartial
	default:
		return domain.RequestPending
	}
}
