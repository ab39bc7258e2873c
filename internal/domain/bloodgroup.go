// Package domain defines the persistence models for donors, requestors,
// blood requests, assignments, donations, and inventory records. These types
// are mapped with GORM and form the core data layer of the blood bank
// application.
package domain

import "errors"

// BloodGroup is one of the 8 ABO/Rh combinations. The enumeration is closed;
// compatibility relations are fixed per group (see the compat package).
type BloodGroup string

// The 8 standard blood groups.
const (
	APositive  BloodGroup = "A+"
	ANegative  BloodGroup = "A-"
	BPositive  BloodGroup = "B+"
	BNegative  BloodGroup = "B-"
	ABPositive BloodGroup = "AB+"
	ABNegative BloodGroup = "AB-"
	OPositive  BloodGroup = "O+"
	ONegative  BloodGroup = "O-"
)

// ErrInvalidBloodGroup is returned when a blood group literal is not one of
// the 8 standard groups. It is rejected at the boundary, before any state is
// touched.
var ErrInvalidBloodGroup = errors.New("invalid blood group")

// BloodGroups lists all 8 groups in a stable display order. The returned
// slice is a fresh copy; callers may reorder it freely.
func BloodGroups() []BloodGroup {
	return []BloodGroup{
		APositive, ANegative,
		BPositive, BNegative,
		ABPositive, ABNegative,
		OPositive, ONegative,
	}
}

// ParseBloodGroup validates a blood group literal. Unknown literals yield
// ErrInvalidBloodGroup.
func ParseBloodGroup(s string) (BloodGroup, error) {
	switch BloodGroup(s) {
	case APositive, ANegative, BPositive, BNegative,
		ABPositive, ABNegative, OPositive, ONegative:
		return BloodGroup(s), nil
	}
	return "", ErrInvalidBloodGroup
}

// Valid reports whether g is one of the 8 standard groups.
func (g BloodGroup) Valid() bool {
	_, err := ParseBloodGroup(string(g))
	return err == nil
}

// String implements fmt.Stringer.
func (g BloodGroup) String() string { return string(g) }
