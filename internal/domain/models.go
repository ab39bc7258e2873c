// Package domain defines the persistence models for donors, requestors,
// blood requests, assignments, donations, and inventory records. These types
// are mapped with GORM and form the core data layer of the blood bank
// application.
package domain

import "time"

// Request lifecycle states. A request is created pending and is driven only
// by the donation processor: pending -> partial -> fulfilled. A fulfilled
// request accepts no further donations.
const (
	RequestPending   = "pending"
	RequestPartial   = "partial"
	RequestFulfilled = "fulfilled"
)

// Assignment lifecycle states. An assignment is created accepted and is
// terminal once the donation is confirmed or the assignment cancelled.
const (
	AssignmentAccepted  = "accepted"
	AssignmentConfirmed = "donation_confirmed"
	AssignmentCancelled = "cancelled"
)

// Request urgency levels, highest first when sorting open requests.
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyNormal   = "normal"
)

// Donation kinds. A request donation fulfills a specific blood request, an
// inventory donation is a walk-in contribution to general stock, and a
// withdrawal records a direct allocation of stock to a requestor.
const (
	DonationKindRequest    = "request"
	DonationKindInventory  = "inventory"
	DonationKindWithdrawal = "withdrawal"
)

// Donor represents a registered blood donor. A donor is registered into the
// matching inventory record's donor set exactly once (idempotent on duplicate
// registration attempts).
//
// Fields:
//   - ID: stable prefixed identifier (DON-XXXXXXXX).
//   - BloodGroup: one of the 8 standard groups; fixed at registration.
//   - LastDonation: date of the most recent donation, nil for new donors.
//   - Available: the donor's own availability toggle; unavailable donors are
//     filtered out of matching.
//   - Active: administrative flag; inactive donors never match.
type Donor struct {
	ID             string     `json:"donor_id"        gorm:"type:varchar(16);primaryKey"`
	Name           string     `json:"name"            gorm:"type:varchar(128);not null"`
	Email          string     `json:"email"           gorm:"type:varchar(128);not null;index"`
	Phone          string     `json:"phone"           gorm:"type:varchar(32);not null"`
	Age            int        `json:"age"             gorm:"not null"`
	Gender         string     `json:"gender"          gorm:"type:varchar(16)"`
	BloodGroup     BloodGroup `json:"blood_group"     gorm:"type:varchar(3);not null;index"`
	WeightKg       float64    `json:"weight_kg"       gorm:"not null"`
	City           string     `json:"city"            gorm:"type:varchar(64);index"`
	State          string     `json:"state"           gorm:"type:varchar(64)"`
	Available      bool       `json:"available"       gorm:"not null;default:true"`
	Active         bool       `json:"active"          gorm:"not null;default:true"`
	TotalDonations int        `json:"total_donations" gorm:"not null;default:0"`
	LastDonation   *time.Time `json:"last_donation,omitempty"`
	RegisteredAt   time.Time  `json:"registered_at"`
}

// TableName returns the database table name for Donor.
func (Donor) TableName() string { return "donors" }

// Requestor represents a hospital, blood bank, or individual that raises
// blood requests.
type Requestor struct {
	ID            string    `json:"requestor_id"   gorm:"type:varchar(16);primaryKey"`
	Name          string    `json:"name"           gorm:"type:varchar(128);not null"`
	Email         string    `json:"email"          gorm:"type:varchar(128);not null;index"`
	Phone         string    `json:"phone"          gorm:"type:varchar(32)"`
	Organization  string    `json:"organization"   gorm:"type:varchar(128)"`
	City          string    `json:"city"           gorm:"type:varchar(64)"`
	State         string    `json:"state"          gorm:"type:varchar(64)"`
	TotalRequests int       `json:"total_requests" gorm:"not null;default:0"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// TableName returns the database table name for Requestor.
func (Requestor) TableName() string { return "requestors" }

// BloodRequest is a demand for a number of units of one blood group.
//
// Invariants: UnitsNeeded > 0 and 0 <= UnitsFulfilled <= UnitsNeeded.
// Status is derived from UnitsFulfilled and is never set directly by
// transport code.
type BloodRequest struct {
	ID             string     `json:"request_id"      gorm:"type:varchar(16);primaryKey"`
	RequestorID    string     `json:"requestor_id"    gorm:"type:varchar(16);index"`
	PatientName    string     `json:"patient_name"    gorm:"type:varchar(128)"`
	BloodGroup     BloodGroup `json:"blood_group"     gorm:"type:varchar(3);not null;index"`
	UnitsNeeded    int        `json:"units_needed"    gorm:"not null"`
	UnitsFulfilled int        `json:"units_fulfilled" gorm:"not null;default:0"`
	InventoryUsed  int        `json:"inventory_used"  gorm:"not null;default:0"`
	HospitalName   string     `json:"hospital_name"   gorm:"type:varchar(128)"`
	City           string     `json:"city"            gorm:"type:varchar(64)"`
	Urgency        string     `json:"urgency"         gorm:"type:varchar(16);not null;default:'normal'"`
	Status         string     `json:"status"          gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TableName returns the database table name for BloodRequest.
func (BloodRequest) TableName() string { return "blood_requests" }

// Remaining returns the units still needed to fulfill the request.
func (r BloodRequest) Remaining() int { return r.UnitsNeeded - r.UnitsFulfilled }

// Open reports whether the request still accepts donations.
func (r BloodRequest) Open() bool {
	return r.Status == RequestPending || r.Status == RequestPartial
}

// Assignment binds a donor to a specific blood request prior to donation
// confirmation. At most one active (non-cancelled) assignment may exist per
// (donor, request) pair.
type Assignment struct {
	ID           string     `json:"assignment_id"   gorm:"type:varchar(16);primaryKey"`
	DonorID      string     `json:"donor_id"        gorm:"type:varchar(16);not null;index:idx_asgn_donor_req,priority:1"`
	RequestID    string     `json:"request_id"      gorm:"type:varchar(16);not null;index:idx_asgn_donor_req,priority:2"`
	UnitsOffered int        `json:"units_offered"   gorm:"not null"`
	Status       string     `json:"status"          gorm:"type:varchar(24);not null;default:'accepted'"`
	Notes        string     `json:"notes,omitempty" gorm:"type:text"`
	AcceptedAt   time.Time  `json:"accepted_at"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
}

// TableName returns the database table name for Assignment.
func (Assignment) TableName() string { return "assignments" }

// Active reports whether the assignment still awaits a donation.
func (a Assignment) Active() bool { return a.Status == AssignmentAccepted }

// Donation is the immutable record of a confirmed transfer. Exactly one
// donation is created per confirmed transfer; donations are never mutated or
// deleted after creation.
type Donation struct {
	ID           string     `json:"donation_id"             gorm:"type:varchar(16);primaryKey"`
	DonorID      string     `json:"donor_id"                gorm:"type:varchar(16);index"`
	RequestID    string     `json:"request_id,omitempty"    gorm:"type:varchar(16);index"`
	AssignmentID string     `json:"assignment_id,omitempty" gorm:"type:varchar(16)"`
	BloodGroup   BloodGroup `json:"blood_group"             gorm:"type:varchar(3);not null;index"`
	Units        int        `json:"units"                   gorm:"not null"`
	Center       string     `json:"center"                  gorm:"type:varchar(128)"`
	Kind         string     `json:"kind"                    gorm:"type:varchar(16);not null"`
	DonatedAt    time.Time  `json:"donated_at"`
}

// TableName returns the database table name for Donation.
func (Donation) TableName() string { return "donations" }

// InventoryRecord is the per-group unit count and donor roster as it is
// persisted. The authoritative runtime copy lives in the ledger package; this
// type is the durable-store and wire representation.
//
// Invariant: Units >= 0; donor_count always equals len(DonorIDs).
type InventoryRecord struct {
	BloodGroup BloodGroup `json:"blood_group" gorm:"type:varchar(3);primaryKey"`
	Units      int        `json:"units"       gorm:"not null;default:0"`
	DonorIDs   []string   `json:"donor_ids"   gorm:"serializer:json"`
}

// TableName returns the database table name for InventoryRecord.
func (InventoryRecord) TableName() string { return "inventory" }

// DonorCount returns the number of donors registered for the group.
func (r InventoryRecord) DonorCount() int { return len(r.DonorIDs) }
