package compat

import (
	"testing"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
)

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

// The two tables must be mutual inverses across all 64 ordered pairs:
// donor ∈ CanReceiveFrom(g) iff g ∈ CanDonateTo(donor).
func TestMatrixInverseConsistency(t *testing.T) {
	for _, donor := range domain.BloodGroups() {
		for _, recipient := range domain.BloodGroups() {
			forward := contains(CanDonateTo(donor), recipient)
			backward := contains(CanReceiveFrom(recipient), donor)
			if forward != backward {
				t.Errorf("inconsistent relation %s -> %s: donate-to=%v receive-from=%v",
					donor, recipient, forward, backward)
			}
			if forward != Compatible(donor, recipient) {
				t.Errorf("Compatible(%s, %s) disagrees with tables", donor, recipient)
			}
		}
	}
}

func TestUniversalDonorAndRecipient(t *testing.T) {
	if got := CanDonateTo(domain.ONegative); len(got) != 8 {
		t.Errorf("O- should donate to all 8 groups, got %d (%v)", len(got), got)
	}
	if got := CanReceiveFrom(domain.ABPositive); len(got) != 8 {
		t.Errorf("AB+ should receive from all 8 groups, got %d (%v)", len(got), got)
	}
	if got := CanReceiveFrom(domain.ONegative); len(got) != 1 || got[0] != domain.ONegative {
		t.Errorf("O- should receive only from O-, got %v", got)
	}
	if got := CanDonateTo(domain.ABPositive); len(got) != 1 || got[0] != domain.ABPositive {
		t.Errorf("AB+ should donate only to AB+, got %v", got)
	}
}

func TestSpecificRelations(t *testing.T) {
	cases := []struct {
		recipient domain.BloodGroup
		donors    []domain.BloodGroup
	}{
		{domain.APositive, []domain.BloodGroup{domain.APositive, domain.ANegative, domain.OPositive, domain.ONegative}},
		{domain.ANegative, []domain.BloodGroup{domain.ANegative, domain.ONegative}},
		{domain.BPositive, []domain.BloodGroup{domain.BPositive, domain.BNegative, domain.OPositive, domain.ONegative}},
		{domain.BNegative, []domain.BloodGroup{domain.BNegative, domain.ONegative}},
		{domain.ABNegative, []domain.BloodGroup{domain.ANegative, domain.BNegative, domain.ABNegative, domain.ONegative}},
		{domain.OPositive, []domain.BloodGroup{domain.OPositive, domain.ONegative}},
	}
	for _, tc := range cases {
		got := CanReceiveFrom(tc.recipient)
		if len(got) != len(tc.donors) {
			t.Errorf("CanReceiveFrom(%s) = %v; want %v", tc.recipient, got, tc.donors)
			continue
		}
		for _, d := range tc.donors {
			if !contains(got, d) {
				t.Errorf("CanReceiveFrom(%s) missing %s", tc.recipient, d)
			}
		}
	}
}

func TestLookupsReturnCopies(t *testing.T) {
	a := CanDonateTo(domain.OPositive)
	a[0] = domain.ABNegative
	b := CanDonateTo(domain.OPositive)
	if contains(b, domain.ABNegative) {
		t.Fatalf("mutating a lookup result leaked into the table: %v", b)
	}
}
