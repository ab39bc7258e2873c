// Package compat implements the static blood-type compatibility matrix over
// the 8 standard ABO/Rh groups. The two relations (donate-to and
// receive-from) are fixed, hand-specified tables that must remain mutual
// inverses; Validate enforces that at process start.
//
// The package is pure and immutable: lookups never fail, never allocate
// shared state, and are safe for unbounded concurrent use.
package compat

import (
	"fmt"
	"sort"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
)

// donateTo maps a donor group to every group it may donate to, per the
// canonical ABO/Rh chart. O- is the universal donor.
var donateTo = map[domain.BloodGroup][]domain.BloodGroup{
	domain.APositive:  {domain.APositive, domain.ABPositive},
	domain.ANegative:  {domain.APositive, domain.ANegative, domain.ABPositive, domain.ABNegative},
	domain.BPositive:  {domain.BPositive, domain.ABPositive},
	domain.BNegative:  {domain.BPositive, domain.BNegative, domain.ABPositive, domain.ABNegative},
	domain.ABPositive: {domain.ABPositive},
	domain.ABNegative: {domain.ABPositive, domain.ABNegative},
	domain.OPositive:  {domain.OPositive, domain.APositive, domain.BPositive, domain.ABPositive},
	domain.ONegative: {
		domain.OPositive, domain.ONegative,
		domain.APositive, domain.ANegative,
		domain.BPositive, domain.BNegative,
		domain.ABPositive, domain.ABNegative,
	},
}

// receiveFrom maps a recipient group to every group it may receive from.
// AB+ is the universal recipient.
var receiveFrom = map[domain.BloodGroup][]domain.BloodGroup{
	domain.APositive: {domain.APositive, domain.ANegative, domain.OPositive, domain.ONegative},
	domain.ANegative: {domain.ANegative, domain.ONegative},
	domain.BPositive: {domain.BPositive, domain.BNegative, domain.OPositive, domain.ONegative},
	domain.BNegative: {domain.BNegative, domain.ONegative},
	domain.ABPositive: {
		domain.APositive, domain.ANegative,
		domain.BPositive, domain.BNegative,
		domain.ABPositive, domain.ABNegative,
		domain.OPositive, domain.ONegative,
	},
	domain.ABNegative: {domain.ANegative, domain.BNegative, domain.ABNegative, domain.ONegative},
	domain.OPositive:  {domain.OPositive, domain.ONegative},
	domain.ONegative:  {domain.ONegative},
}

// CanDonateTo returns the groups a donor of group g may donate to, sorted for
// deterministic output. Unknown groups yield an empty slice; validity is
// enforced at the boundary via domain.ParseBloodGroup.
func CanDonateTo(g domain.BloodGroup) []domain.BloodGroup {
	return sortedCopy(donateTo[g])
}

// CanReceiveFrom returns the donor groups a recipient of group g may receive
// from, sorted for deterministic output.
func CanReceiveFrom(g domain.BloodGroup) []domain.BloodGroup {
	return sortedCopy(receiveFrom[g])
}

// Compatible reports whether a donor of group donor may give to a recipient
// of group recipient.
func Compatible(donor, recipient domain.BloodGroup) bool {
	for _, g := range donateTo[donor] {
		if g == recipient {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of the two tables:
//
//   - every one of the 8 groups appears as a key in both tables;
//   - the relations are mutual inverses: donor ∈ receiveFrom[g] iff
//     g ∈ donateTo[donor].
//
// It returns a descriptive error on the first violation. The server calls it
// once during startup; the tables never change afterwards.
func Validate() error {
	for _, g := range domain.BloodGroups() {
		if _, ok := donateTo[g]; !ok {
			return fmt.Errorf("compat: donate-to table is missing group %s", g)
		}
		if _, ok := receiveFrom[g]; !ok {
			return fmt.Errorf("compat: receive-from table is missing group %s", g)
		}
	}
	for donor, recipients := range donateTo {
		for _, recipient := range recipients {
			if !contains(receiveFrom[recipient], donor) {
				return fmt.Errorf("compat: %s donates to %s but the inverse relation is missing", donor, recipient)
			}
		}
	}
	for recipient, donors := range receiveFrom {
		for _, donor := range donors {
			if !contains(donateTo[donor], recipient) {
				return fmt.Errorf("compat: %s receives from %s but the inverse relation is missing", recipient, donor)
			}
		}
	}
	return nil
}

func contains(groups []domain.BloodGroup, g domain.BloodGroup) bool {
	for _, x := range groups {
		if x == g {
			return true
		}
	}
	return false
}

func sortedCopy(groups []domain.BloodGroup) []domain.BloodGroup {
	out := make([]domain.BloodGroup, len(groups))
	copy(out, groups)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
