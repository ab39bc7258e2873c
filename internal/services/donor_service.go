// Package services – DonorService
//
// This file implements DonorService, the application-level component that
// owns donor registration, profile updates, lookups, and walk-in donations
// to general stock. Registration also enrolls the donor into the inventory
// ledger's per-group donor roster (idempotent on duplicate attempts).
//
// Observability: all mutating methods are OpenTelemetry-instrumented; spans
// include donor identifiers and unit counts where applicable.

package services

import (
	"context"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bloodsync/go-bloodbank-backend/internal/compat"
	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/matching"
)

// Donor registration bounds, restored from the original intake rules.
const (
	minDonorAge    = 18
	maxDonorAge    = 65
	minDonorWeight = 50.0

	// defaultMaxWalkInUnits caps a single walk-in donation.
	defaultMaxWalkInUnits = 50
)

// urgencyRank orders request urgency for donor-facing listings, highest first.
var urgencyRank = map[string]int{
	domain.UrgencyCritical: 0,
	domain.UrgencyHigh:     1,
	domain.UrgencyNormal:   2,
}

// DonorInput carries the fields accepted at donor registration.
type DonorInput struct {
	Name       string
	Email      string
	Phone      string
	Age        int
	Gender     string
	BloodGroup string
	WeightKg   float64
	City       string
	State      string
}

// DonorUpdate carries the mutable donor profile fields; nil means unchanged.
type DonorUpdate struct {
	Phone     *string
	Email     *string
	City      *string
	Available *bool
	Active    *bool
}

// DonorService coordinates donor lifecycle and walk-in donations.
type DonorService struct {
	Core *Core

	// Rule is the donation eligibility policy (minimum interval between
	// donations).
	Rule matching.Rule

	// MaxWalkInUnits bounds a single walk-in donation; 0 means the default.
	MaxWalkInUnits int
}

// Register validates the input, assigns a DON- id, enrolls the donor in the
// inventory roster, and persists donors and inventory.
func (s *DonorService) Register(ctx context.Context, in DonorInput) (*domain.Donor, error) {
	tr := otel.Tracer("services/DonorService")
	ctx, span := tr.Start(ctx, "Register",
		trace.WithAttributes(attribute.String("donor.blood_group", in.BloodGroup)),
	)
	defer span.End()

	group, err := domain.ParseBloodGroup(in.BloodGroup)
	if err != nil {
		return nil, err
	}
	name := normalizeName(in.Name)
	if name == "" || strings.TrimSpace(in.Email) == "" {
		return nil, ErrInvalidDonor
	}
	if in.Age < minDonorAge || in.Age > maxDonorAge {
		return nil, ErrInvalidDonor
	}
	if in.WeightKg < minDonorWeight {
		return nil, ErrInvalidDonor
	}

	c := s.Core
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	d := domain.Donor{
		ID:           NewID(prefixDonor),
		Name:         name,
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Age:          in.Age,
		Gender:       strings.TrimSpace(in.Gender),
		BloodGroup:   group,
		WeightKg:     in.WeightKg,
		City:         normalizeName(in.City),
		State:        normalizeName(in.State),
		Available:    true,
		Active:       true,
		RegisteredAt: now,
	}

	added, err := c.Ledger.RegisterDonor(d.ID, group)
	if err != nil {
		return nil, err
	}
	if err := c.persistAll(ctx, c.stepDonors(d), c.stepInventory()); err != nil {
		if added {
			c.Ledger.UnregisterDonor(d.ID, group)
		}
		return nil, err
	}

	c.Registry.PutDonor(d)
	span.SetAttributes(attribute.String("donor.id", d.ID))
	return &d, nil
}

// Get returns one donor by id.
func (s *DonorService) Get(_ context.Context, id string) (*domain.Donor, error) {
	d, ok := s.Core.Registry.Donor(id)
	if !ok {
		return nil, ErrDonorNotFound
	}
	return &d, nil
}

// ListPage returns a page of donors sorted by id, plus the total count.
func (s *DonorService) ListPage(_ context.Context, page, pageSize int) ([]domain.Donor, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	all := s.Core.Registry.Donors()
	total := len(all)
	start := (page - 1) * pageSize
	if start >= total {
		return []domain.Donor{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// Search returns donors filtered by blood group and/or city. Empty filters
// match everything; city matching is case-insensitive.
func (s *DonorService) Search(_ context.Context, bloodGroup, city string) ([]domain.Donor, error) {
	var group domain.BloodGroup
	if bloodGroup != "" {
		g, err := domain.ParseBloodGroup(bloodGroup)
		if err != nil {
			return nil, err
		}
		group = g
	}
	city = strings.ToLower(strings.TrimSpace(city))

	out := []domain.Donor{}
	for _, d := range s.Core.Registry.Donors() {
		if group != "" && d.BloodGroup != group {
			continue
		}
		if city != "" && strings.ToLower(d.City) != city {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// Update applies profile changes to a donor and persists the collection.
func (s *DonorService) Update(ctx context.Context, id string, upd DonorUpdate) (*domain.Donor, error) {
	tr := otel.Tracer("services/DonorService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(attribute.String("donor.id", id)),
	)
	defer span.End()

	c := s.Core
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.Registry.Donor(id)
	if !ok {
		return nil, ErrDonorNotFound
	}
	if upd.Phone != nil {
		d.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email == "" {
			return nil, ErrInvalidDonor
		}
		d.Email = email
	}
	if upd.City != nil {
		d.City = normalizeName(*upd.City)
	}
	if upd.Available != nil {
		d.Available = *upd.Available
	}
	if upd.Active != nil {
		d.Active = *upd.Active
	}

	if err := c.saveDonors(ctx, d); err != nil {
		return nil, err
	}
	c.Registry.PutDonor(d)
	return &d, nil
}

// DonateToInventory records a walk-in donation straight into general stock.
// The donor must be active, available, and past the minimum interval since
// their last donation; units must be within (0, max].
func (s *DonorService) DonateToInventory(ctx context.Context, donorID string, units int, center string) (*domain.Donation, error) {
	tr := otel.Tracer("services/DonorService")
	ctx, span := tr.Start(ctx, "DonateToInventory",
		trace.WithAttributes(
			attribute.String("donor.id", donorID),
			attribute.Int("units", units),
		),
	)
	defer span.End()

	max := s.MaxWalkInUnits
	if max <= 0 {
		max = defaultMaxWalkInUnits
	}
	if units <= 0 || units > max {
		return nil, ErrInvalidUnits
	}

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
	now := c.now()
	if !s.Rule.IsEligible(d.LastDonation, now) {
		return nil, ErrDonorNotEligible
	}

	if err := c.Ledger.AddUnits(d.BloodGroup, units); err != nil {
		return nil, err
	}

	dn := domain.Donation{
		ID:         NewID(prefixDonation),
		DonorID:    d.ID,
		BloodGroup: d.BloodGroup,
		Units:      units,
		Center:     strings.TrimSpace(center),
		Kind:       domain.DonationKindInventory,
		DonatedAt:  now,
	}
	last := now
	d.LastDonation = &last
	d.TotalDonations++

	if err := c.persistWalkIn(ctx, d, dn); err != nil {
		// Undo the stock increment; the amount was just added so the
		// deduction cannot fail.
		_ = c.Ledger.DeductUnits(d.BloodGroup, units)
		return nil, err
	}

	c.Registry.PutDonor(d)
	c.Registry.PutDonation(dn)
	span.SetAttributes(attribute.String("donation.id", dn.ID))
	return &dn, nil
}

// persistWalkIn writes the collections touched by a walk-in donation.
func (c *Core) persistWalkIn(ctx context.Context, d domain.Donor, dn domain.Donation) error {
	return c.persistAll(ctx, c.stepDonors(d), c.stepDonations(dn), c.stepInventory())
}

// AvailableRequests lists open blood requests the donor's group can serve,
// ordered by urgency (critical first) and then by request age (oldest first).
func (s *DonorService) AvailableRequests(_ context.Context, donorID string) ([]domain.BloodRequest, error) {
	d, ok := s.Core.Registry.Donor(donorID)
	if !ok {
		return nil, ErrDonorNotFound
	}

	out := []domain.BloodRequest{}
	for _, br := range s.Core.Registry.Requests() {
		if !br.Open() {
			continue
		}
		if !compat.Compatible(d.BloodGroup, br.BloodGroup) {
			continue
		}
		out = append(out, br)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := urgencyRank[out[i].Urgency], urgencyRank[out[j].Urgency]
		if ri != rj {
			return ri < rj
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// normalizeName trims the value and title-cases it for display.
func normalizeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ToLower(s))
}
