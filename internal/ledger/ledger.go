// Package ledger implements the authoritative in-memory inventory: per
// blood-group unit counts and the donor roster. All mutation goes through the
// Ledger's mutex so unit counts can never go negative or lose updates under
// concurrent callers; reads return point-in-time copies.
//
// The ledger owns no persistence. Services persist the ledger's Records()
// through the durable store after each successful mutation and roll the
// ledger back if the write fails.
package ledger

import (
	"errors"
	"sort"
	"sync"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
)

// Sentinel errors reported by ledger mutations.
var (
	// ErrInsufficientInventory is returned when a deduction exceeds the
	// available units of a group. The ledger is left untouched.
	ErrInsufficientInventory = errors.New("insufficient inventory")

	// ErrInvalidUnits is returned for non-positive unit amounts.
	ErrInvalidUnits = errors.New("units must be positive")
)

// GroupStatus is the tiered depletion status of one blood group.
type GroupStatus string

// Depletion tiers, derived from the configured thresholds.
const (
	StatusCritical GroupStatus = "critical"
	StatusLow      GroupStatus = "low"
	StatusAdequate GroupStatus = "adequate"
)

// Thresholds define the unit counts below which a group is considered
// critical or low. They are configuration, not constants: the source system
// never pins exact numbers, so deployments tune them.
type Thresholds struct {
	Critical int // units below this are critical
	Low      int // units below this (but >= Critical) are low
}

// DefaultThresholds mirror the levels observed in the original deployment.
var DefaultThresholds = Thresholds{Critical: 20, Low: 40}

// Status classifies a unit count against the thresholds.
func (t Thresholds) Status(units int) GroupStatus {
	switch {
	case units < t.Critical:
		return StatusCritical
	case units < t.Low:
		return StatusLow
	default:
		return StatusAdequate
	}
}

// GroupSnapshot is a consistent point-in-time view of one blood group.
type GroupSnapshot struct {
	BloodGroup domain.BloodGroup `json:"blood_group"`
	Units      int               `json:"units"`
	DonorCount int               `json:"donor_count"`
	DonorIDs   []string          `json:"donor_ids"`
	Status     GroupStatus       `json:"status"`
}

type record struct {
	units  int
	donors map[string]struct{}
}

// Ledger is the single authoritative source of per-group unit counts and
// donor membership. Safe for concurrent use.
type Ledger struct {
	mu         sync.RWMutex
	records    map[domain.BloodGroup]*record
	thresholds Thresholds
}

// New returns a Ledger covering all 8 blood groups with zero units and the
// given thresholds.
func New(t Thresholds) *Ledger {
	records := make(map[domain.BloodGroup]*record, 8)
	for _, g := range domain.BloodGroups() {
		records[g] = &record{donors: make(map[string]struct{})}
	}
	return &Ledger{records: records, thresholds: t}
}

// Restore replaces the ledger contents with the given durable records,
// typically at process start. Groups absent from records keep zero units.
func (l *Ledger) Restore(records []domain.InventoryRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range records {
		if !r.BloodGroup.Valid() {
			return domain.ErrInvalidBloodGroup
		}
		rec := l.records[r.BloodGroup]
		rec.units = r.Units
		rec.donors = make(map[string]struct{}, len(r.DonorIDs))
		for _, id := range r.DonorIDs {
			rec.donors[id] = struct{}{}
		}
	}
	l.publishMetricsLocked()
	return nil
}

// RegisterDonor adds donorID to the group's donor set. It is idempotent:
// re-registering an already present donor is a no-op and the donor count is
// incremented only on first insertion. It reports whether the donor was
// newly added.
func (l *Ledger) RegisterDonor(donorID string, group domain.BloodGroup) (bool, error) {
	if !group.Valid() {
		return false, domain.ErrInvalidBloodGroup
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := l.records[group]
	if _, ok := rec.donors[donorID]; ok {
		return false, nil
	}
	rec.donors[donorID] = struct{}{}
	donorGauge.WithLabelValues(string(group)).Set(float64(len(rec.donors)))
	return true, nil
}

// UnregisterDonor removes donorID from the group's donor set. It is the
// inverse of RegisterDonor and exists so a failed durable write after a
// registration can be unwound. Removing an absent donor is a no-op.
func (l *Ledger) UnregisterDonor(donorID string, group domain.BloodGroup) {
	if !group.Valid() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := l.records[group]
	if _, ok := rec.donors[donorID]; !ok {
		return
	}
	delete(rec.donors, donorID)
	donorGauge.WithLabelValues(string(group)).Set(float64(len(rec.donors)))
}

// DeductUnits removes amount units from the group. It fails with
// ErrInsufficientInventory when amount exceeds the available units and never
// leaves the count negative, even under concurrent callers.
func (l *Ledger) DeductUnits(group domain.BloodGroup, amount int) error {
	if !group.Valid() {
		return domain.ErrInvalidBloodGroup
	}
	if amount <= 0 {
		return ErrInvalidUnits
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := l.records[group]
	if amount > rec.units {
		return ErrInsufficientInventory
	}
	rec.units -= amount
	unitsGauge.WithLabelValues(string(group)).Set(float64(rec.units))
	return nil
}

// AddUnits adds amount units to the group (manual restock or walk-in
// donation).
func (l *Ledger) AddUnits(group domain.BloodGroup, amount int) error {
	if !group.Valid() {
		return domain.ErrInvalidBloodGroup
	}
	if amount <= 0 {
		return ErrInvalidUnits
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := l.records[group]
	rec.units += amount
	unitsGauge.WithLabelValues(string(group)).Set(float64(rec.units))
	return nil
}

// Units returns the current unit count of one group.
func (l *Ledger) Units(group domain.BloodGroup) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if rec, ok := l.records[group]; ok {
		return rec.units
	}
	return 0
}

// Status derives the depletion tier of one group from the configured
// thresholds.
func (l *Ledger) Status(group domain.BloodGroup) GroupStatus {
	return l.thresholds.Status(l.Units(group))
}

// Snapshot returns a consistent point-in-time view of every group, keyed in
// the stable display order of domain.BloodGroups. Donor id slices are copies
// sorted for determinism.
func (l *Ledger) Snapshot() []GroupSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]GroupSnapshot, 0, len(l.records))
	for _, g := range domain.BloodGroups() {
		rec := l.records[g]
		ids := make([]string, 0, len(rec.donors))
		for id := range rec.donors {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out = append(out, GroupSnapshot{
			BloodGroup: g,
			Units:      rec.units,
			DonorCount: len(ids),
			DonorIDs:   ids,
			Status:     l.thresholds.Status(rec.units),
		})
	}
	return out
}

// Records converts the current state to durable inventory records, in the
// same consistent view as Snapshot.
func (l *Ledger) Records() []domain.InventoryRecord {
	snap := l.Snapshot()
	out := make([]domain.InventoryRecord, 0, len(snap))
	for _, s := range snap {
		out = append(out, domain.InventoryRecord{
			BloodGroup: s.BloodGroup,
			Units:      s.Units,
			DonorIDs:   s.DonorIDs,
		})
	}
	return out
}

// CriticalGroups lists the groups currently below the critical threshold.
func (l *Ledger) CriticalGroups() []domain.BloodGroup {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.BloodGroup
	for _, g := range domain.BloodGroups() {
		if l.thresholds.Status(l.records[g].units) == StatusCritical {
			out = append(out, g)
		}
	}
	return out
}

// TotalUnits sums the unit counts across all groups.
func (l *Ledger) TotalUnits() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := 0
	for _, rec := range l.records {
		total += rec.units
	}
	return total
}

// publishMetricsLocked refreshes every gauge; callers hold l.mu.
func (l *Ledger) publishMetricsLocked() {
	for g, rec := range l.records {
		unitsGauge.WithLabelValues(string(g)).Set(float64(rec.units))
		donorGauge.WithLabelValues(string(g)).Set(float64(len(rec.donors)))
	}
}
