// Package services – DonationService
//
// This file implements DonationService, the donation processor. Confirming a
// donation is the most state-heavy operation in the system: it transitions
// the assignment, advances the request toward fulfillment, deducts ledger
// units, updates the donor's donation history, and appends the immutable
// donation record. All of it commits atomically or not at all.
//
// Confirmation supports idempotent replay: a repeated Idempotency-Key for the
// same assignment returns the originally created donation without
// re-executing any effect. Replay records are persisted alongside the other
// collections, so a restart does not reopen the retry window.

package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
)

// defaultIdempotencyTTL bounds how long a confirmation key is replayable.
const defaultIdempotencyTTL = 24 * time.Hour

// DonationService owns donation confirmation and donation history reads.
type DonationService struct {
	Core *Core

	// IdempotencyTTL bounds replay detection; 0 means the default.
	IdempotencyTTL time.Duration
}

// NewDonationService constructs a DonationService over the shared core.
func NewDonationService(core *Core, ttl time.Duration) *DonationService {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &DonationService{Core: core, IdempotencyTTL: ttl}
}

// Replay reports whether a prior confirmation exists for (assignmentID, key)
// and is still within its TTL. Used by the idempotency middleware lookup.
func (s *DonationService) Replay(_ context.Context, assignmentID, key string, now time.Time) (bool, error) {
	if key == "" {
		return false, nil
	}
	c := s.Core
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.Registry.IdempotencyRecord(assignmentID, key)
	return ok && now.Before(rec.ExpiresAt), nil
}

// ConfirmDonation executes the donation state machine for an accepted
// assignment:
//
//  1. the assignment must be in the accepted state;
//  2. units must be positive and not overshoot what the request still needs;
//  3. the requested blood group's stock is deducted (insufficiency propagates
//     unchanged);
//  4. the donation record, request progress, assignment transition, and
//     donor history are staged;
//  5. everything is persisted write-ahead; a store failure rolls the ledger
//     back, restores any collections already written, and leaves no visible
//     effect in memory or on disk.
//
// When idemKey is non-empty and was already used for this assignment, the
// original donation is returned and nothing is re-executed.
func (s *DonationService) ConfirmDonation(ctx context.Context, assignmentID string, units int, center, idemKey string) (*domain.Donation, error) {
	tr := otel.Tracer("services/DonationService")
	ctx, span := tr.Start(ctx, "ConfirmDonation",
		trace.WithAttributes(
			attribute.String("assignment.id", assignmentID),
			attribute.Int("units", units),
		),
	)
	defer span.End()

	c := s.Core
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	// Replay path: return the original donation untouched.
	if idemKey != "" {
		if rec, ok := c.Registry.IdempotencyRecord(assignmentID, idemKey); ok && now.Before(rec.ExpiresAt) {
			for _, dn := range c.Registry.Donations() {
				if dn.ID == rec.DonationID {
					span.SetAttributes(attribute.Bool("replay", true))
					return &dn, nil
				}
			}
		}
	}

	a, ok := c.Registry.Assignment(assignmentID)
	if !ok {
		return nil, ErrAssignmentNotFound
	}
	if !a.Active() {
		return nil, ErrInvalidAssignmentState
	}
	d, ok := c.Registry.Donor(a.DonorID)
	if !ok {
		return nil, ErrDonorNotFound
	}
	br, ok := c.Registry.Request(a.RequestID)
	if !ok {
		return nil, ErrRequestNotFound
	}
	if br.Status == domain.RequestFulfilled {
		return nil, ErrRequestFulfilled
	}
	if units <= 0 || units > br.Remaining() {
		return nil, ErrInvalidUnits
	}

	if err := c.Ledger.DeductUnits(br.BloodGroup, units); err != nil {
		return nil, err
	}

	dn := domain.Donation{
		ID:           NewID(prefixDonation),
		DonorID:      d.ID,
		RequestID:    br.ID,
		AssignmentID: a.ID,
		BloodGroup:   br.BloodGroup,
		Units:        units,
		Center:       strings.TrimSpace(center),
		Kind:         domain.DonationKindRequest,
		DonatedAt:    now,
	}
	br.UnitsFulfilled += units
	br.Status = requestStatus(br)
	a.Status = domain.AssignmentConfirmed
	confirmed := now
	a.ConfirmedAt = &confirmed
	last := now
	d.LastDonation = &last
	d.TotalDonations++

	var recs []domain.IdempotencyRecord
	if idemKey != "" {
		recs = append(recs, domain.IdempotencyRecord{
			ID:           NewID(prefixDonation),
			AssignmentID: assignmentID,
			Key:          idemKey,
			DonationID:   dn.ID,
			CreatedAt:    now,
			ExpiresAt:    now.Add(s.IdempotencyTTL),
		})
	}

	if err := s.persistConfirmation(ctx, d, br, a, dn, recs); err != nil {
		_ = c.Ledger.AddUnits(br.BloodGroup, units)
		return nil, err
	}

	c.Registry.PutDonor(d)
	c.Registry.PutRequest(br)
	c.Registry.PutAssignment(a)
	c.Registry.PutDonation(dn)
	for _, rec := range recs {
		c.Registry.PutIdempotencyRecord(rec)
	}
	s.sweepExpiredLocked(now)
	span.SetAttributes(
		attribute.String("donation.id", dn.ID),
		attribute.String("request.status", br.Status),
	)
	return &dn, nil
}

// ForDonor returns one donor's donation history, newest first.
func (s *DonationService) ForDonor(_ context.Context, donorID string) ([]domain.Donation, error) {
	if _, ok := s.Core.Registry.Donor(donorID); !ok {
		return nil, ErrDonorNotFound
	}
	out := s.Core.Registry.DonationsForDonor(donorID)
	if out == nil {
		out = []domain.Donation{}
	}
	return out, nil
}

// persistConfirmation writes every collection touched by a confirmation. A
// partial failure re-saves the collections already written so the durable
// view stays in step with the registry rollback.
func (s *DonationService) persistConfirmation(ctx context.Context, d domain.Donor, br domain.BloodRequest, a domain.Assignment, dn domain.Donation, recs []domain.IdempotencyRecord) error {
	c := s.Core
	steps := []saveStep{
		c.stepDonors(d),
		c.stepRequests(br),
		c.stepAssignments(a),
		c.stepDonations(dn),
	}
	if len(recs) > 0 {
		steps = append(steps, c.stepIdempotency(recs...))
	}
	steps = append(steps, c.stepInventory())
	return c.persistAll(ctx, steps...)
}

// sweepExpiredLocked drops expired replay records from the registry; callers
// hold Core.mu. The durable copy shrinks on the next idempotency save.
func (s *DonationService) sweepExpiredLocked(now time.Time) {
	for _, rec := range s.Core.Registry.IdempotencyRecords() {
		if !now.Before(rec.ExpiresAt) {
			s.Core.Registry.DeleteIdempotencyRecord(rec.AssignmentID, rec.Key)
		}
	}
}
