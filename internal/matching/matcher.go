// Package matching implements the donor-eligibility rule and the
// request-to-donor matching algorithm.
package matching

import (
	"sort"
	"time"

	"github.com/bloodsync/go-bloodbank-backend/internal/compat"
	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
)

// DonorSource supplies the donor roster the matcher ranks. The registry
// implements it; tests use small fakes.
type DonorSource interface {
	// DonorsByGroups returns every donor whose blood group is in groups.
	DonorsByGroups(groups []domain.BloodGroup) []domain.Donor
}

// Candidate is one ranked match for a blood request.
type Candidate struct {
	DonorID       string            `json:"donor_id"`
	Name          string            `json:"name"`
	BloodGroup    domain.BloodGroup `json:"blood_group"`
	City          string            `json:"city,omitempty"`
	EligibleSince time.Time         `json:"eligible_since"`
	DaysEligible  int               `json:"days_eligible"`
}

// Matcher produces ranked candidate lists for pending blood requests.
type Matcher struct {
	Donors DonorSource
	Rule   Rule
}

// NewMatcher constructs a Matcher with the default eligibility rule.
func NewMatcher(donors DonorSource) *Matcher {
	return &Matcher{Donors: donors}
}

// FindCandidates returns the eligible, compatible donors for req, ordered by
// longest-eligible first (a simple fairness tie-break) with ties broken by
// donor id for determinism. It returns an empty slice, never an error, when
// no eligible donor exists; callers surface that as "no match".
func (m *Matcher) FindCandidates(req domain.BloodRequest, now time.Time) []Candidate {
	groups := compat.CanReceiveFrom(req.BloodGroup)
	if len(groups) == 0 {
		return []Candidate{}
	}

	out := []Candidate{}
	for _, d := range m.Donors.DonorsByGroups(groups) {
		if !d.Available || !d.Active {
			continue
		}
		if !m.Rule.IsEligible(d.LastDonation, now) {
			continue
		}
		since := m.Rule.EligibleSince(d.LastDonation, d.RegisteredAt)
		out = append(out, Candidate{
			DonorID:       d.ID,
			Name:          d.Name,
			BloodGroup:    d.BloodGroup,
			City:          d.City,
			EligibleSince: since,
			DaysEligible:  int(now.Sub(since).Hours() / 24),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].EligibleSince.Equal(out[j].EligibleSince) {
			return out[i].EligibleSince.Before(out[j].EligibleSince)
		}
		return out[i].DonorID < out[j].DonorID
	})
	return out
}
