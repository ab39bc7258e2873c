package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/ledger"
	"github.com/bloodsync/go-bloodbank-backend/internal/registry"
	"github.com/bloodsync/go-bloodbank-backend/internal/store"
)

// confirmFixture seeds a donor, an open request, and an accepted assignment.
func confirmFixture(t *testing.T, core *Core, group domain.BloodGroup, unitsNeeded, stock int) (domain.Donor, domain.BloodRequest, domain.Assignment) {
	t.Helper()
	d := seedDonor(t, core, domain.Donor{BloodGroup: group, Available: true, Active: true})
	br := seedRequest(t, core, domain.BloodRequest{BloodGroup: group, UnitsNeeded: unitsNeeded})
	a := domain.Assignment{
		ID:           NewID(prefixAssignment),
		DonorID:      d.ID,
		RequestID:    br.ID,
		UnitsOffered: unitsNeeded,
		Status:       domain.AssignmentAccepted,
		AcceptedAt:   core.now(),
	}
	core.Registry.PutAssignment(a)
	if stock > 0 {
		addStock(t, core, group, stock)
	}
	return d, br, a
}

func TestConfirmDonation_PartialThenFulfilled(t *testing.T) {
	core, _, clk := newTestCore(t)
	svc := NewDonationService(core, 0)
	ctx := context.Background()

	d, br, a := confirmFixture(t, core, domain.OPositive, 5, 10)

	// 2 of 5 units: request goes partial.
	dn, err := svc.ConfirmDonation(ctx, a.ID, 2, "Central Blood Center", "")
	if err != nil {
		t.Fatalf("ConfirmDonation: %v", err)
	}
	if dn.Kind != domain.DonationKindRequest || dn.Units != 2 {
		t.Fatalf("ConfirmDonation: %+v", dn)
	}
	gotReq, _ := core.Registry.Request(br.ID)
	if gotReq.Status != domain.RequestPartial || gotReq.UnitsFulfilled != 2 {
		t.Fatalf("ConfirmDonation: request %+v", gotReq)
	}
	gotAsgn, _ := core.Registry.Assignment(a.ID)
	if gotAsgn.Status != domain.AssignmentConfirmed || gotAsgn.ConfirmedAt == nil {
		t.Fatalf("ConfirmDonation: assignment %+v", gotAsgn)
	}
	gotDonor, _ := core.Registry.Donor(d.ID)
	if gotDonor.TotalDonations != 1 || gotDonor.LastDonation == nil || !gotDonor.LastDonation.Equal(clk.t) {
		t.Fatalf("ConfirmDonation: donor %+v", gotDonor)
	}
	if units := core.Ledger.Units(domain.OPositive); units != 8 {
		t.Fatalf("ConfirmDonation: units = %d; want 8", units)
	}

	// Remaining 3 units through a second assignment: request fulfilled.
	a2 := domain.Assignment{
		ID:         NewID(prefixAssignment),
		DonorID:    d.ID,
		RequestID:  br.ID,
		Status:     domain.AssignmentAccepted,
		AcceptedAt: core.now(),
	}
	core.Registry.PutAssignment(a2)
	if _, err := svc.ConfirmDonation(ctx, a2.ID, 3, "", ""); err != nil {
		t.Fatalf("ConfirmDonation(2nd): %v", err)
	}
	gotReq, _ = core.Registry.Request(br.ID)
	if gotReq.Status != domain.RequestFulfilled || gotReq.Remaining() != 0 {
		t.Fatalf("ConfirmDonation: request %+v", gotReq)
	}

	// A third confirmation finds the request terminal.
	a3 := domain.Assignment{
		ID:         NewID(prefixAssignment),
		DonorID:    d.ID,
		RequestID:  br.ID,
		Status:     domain.AssignmentAccepted,
		AcceptedAt: core.now(),
	}
	core.Registry.PutAssignment(a3)
	_, err = svc.ConfirmDonation(ctx, a3.ID, 1, "", "")
	if !errors.Is(err, ErrRequestFulfilled) {
		t.Fatalf("ConfirmDonation(terminal) = %v; want ErrRequestFulfilled", err)
	}
	// The terminal case is the overshoot taken to its limit, so the broader
	// unit-count sentinel matches too.
	if !errors.Is(err, ErrInvalidUnits) {
		t.Fatalf("ConfirmDonation(terminal) = %v; want ErrInvalidUnits to match", err)
	}
}

func TestConfirmDonation_Validation(t *testing.T) {
	core, _, _ := newTestCore(t)
	svc := NewDonationService(core, 0)
	ctx := context.Background()

	_, _, a := confirmFixture(t, core, domain.APositive, 3, 10)

	if _, err := svc.ConfirmDonation(ctx, "ASGN-NOPE0000", 1, "", ""); !errors.Is(err, ErrAssignmentNotFound) {
		t.Fatalf("ConfirmDonation(missing) = %v; want ErrAssignmentNotFound", err)
	}
	for _, units := range []int{0, -2, 4} {
		if _, err := svc.ConfirmDonation(ctx, a.ID, units, "", ""); !errors.Is(err, ErrInvalidUnits) {
			t.Fatalf("ConfirmDonation(%d) = %v; want ErrInvalidUnits", units, err)
		}
	}

	// Cancelled assignments are terminal.
	cancelled := a
	cancelled.Status = domain.AssignmentCancelled
	core.Registry.PutAssignment(cancelled)
	if _, err := svc.ConfirmDonation(ctx, a.ID, 1, "", ""); !errors.Is(err, ErrInvalidAssignmentState) {
		t.Fatalf("ConfirmDonation(cancelled) = %v; want ErrInvalidAssignmentState", err)
	}
}

func TestConfirmDonation_InsufficientInventory(t *testing.T) {
	core, _, _ := newTestCore(t)
	svc := NewDonationService(core, 0)
	ctx := context.Background()

	_, br, a := confirmFixture(t, core, domain.ABNegative, 3, 1)

	if _, err := svc.ConfirmDonation(ctx, a.ID, 2, "", ""); !errors.Is(err, ledger.ErrInsufficientInventory) {
		t.Fatalf("ConfirmDonation = %v; want ErrInsufficientInventory", err)
	}
	// Nothing moved.
	gotReq, _ := core.Registry.Request(br.ID)
	gotAsgn, _ := core.Registry.Assignment(a.ID)
	if gotReq.UnitsFulfilled != 0 || gotAsgn.Status != domain.AssignmentAccepted {
		t.Fatalf("ConfirmDonation: state changed after insufficiency")
	}
}

func TestConfirmDonation_AtomicOnStoreFailure(t *testing.T) {
	core, st, _ := newTestCore(t)
	svc := NewDonationService(core, 0)
	ctx := context.Background()

	d, br, a := confirmFixture(t, core, domain.OPositive, 5, 10)
	st.failOn["assignments"] = errors.New("disk full")

	_, err := svc.ConfirmDonation(ctx, a.ID, 2, "", "")
	if !errors.Is(err, store.ErrPersistenceFailure) {
		t.Fatalf("ConfirmDonation: %v; want ErrPersistenceFailure", err)
	}

	// The ledger deduction was rolled back and no entity was committed.
	if units := core.Ledger.Units(domain.OPositive); units != 10 {
		t.Fatalf("ConfirmDonation: ledger not restored, units=%d", units)
	}
	gotReq, _ := core.Registry.Request(br.ID)
	gotAsgn, _ := core.Registry.Assignment(a.ID)
	gotDonor, _ := core.Registry.Donor(d.ID)
	if gotReq.UnitsFulfilled != 0 || gotReq.Status != domain.RequestPending {
		t.Fatalf("ConfirmDonation: request committed: %+v", gotReq)
	}
	if gotAsgn.Status != domain.AssignmentAccepted || gotAsgn.ConfirmedAt != nil {
		t.Fatalf("ConfirmDonation: assignment committed: %+v", gotAsgn)
	}
	if gotDonor.TotalDonations != 0 || gotDonor.LastDonation != nil {
		t.Fatalf("ConfirmDonation: donor committed: %+v", gotDonor)
	}
	if len(core.Registry.Donations()) != 0 {
		t.Fatalf("ConfirmDonation: donation committed despite failure")
	}

	// The store clears up and the same confirmation succeeds.
	delete(st.failOn, "assignments")
	if _, err := svc.ConfirmDonation(ctx, a.ID, 2, "", ""); err != nil {
		t.Fatalf("ConfirmDonation(retry): %v", err)
	}
}

func TestConfirmDonation_DurableStateRestoredOnStoreFailure(t *testing.T) {
	core, st, _ := newTestCore(t)
	svc := NewDonationService(core, 0)
	ctx := context.Background()

	_, _, a := confirmFixture(t, core, domain.OPositive, 5, 10)

	// Donors and requests land durably before the assignments save fails;
	// both must be re-saved from the untouched registry so a reload sees
	// the same state memory shows.
	st.failOn["assignments"] = errors.New("disk full")
	if _, err := svc.ConfirmDonation(ctx, a.ID, 2, "", ""); !errors.Is(err, store.ErrPersistenceFailure) {
		t.Fatalf("ConfirmDonation: %v; want ErrPersistenceFailure", err)
	}
	if len(st.donors) != 1 || st.donors[0].TotalDonations != 0 || st.donors[0].LastDonation != nil {
		t.Fatalf("durable donor diverged from memory: %+v", st.donors)
	}
	if len(st.requests) != 1 || st.requests[0].UnitsFulfilled != 0 || st.requests[0].Status != domain.RequestPending {
		t.Fatalf("durable request diverged from memory: %+v", st.requests)
	}
	if len(st.donations) != 0 {
		t.Fatalf("donation persisted despite failure: %+v", st.donations)
	}

	// Failing the very last save unwinds every earlier collection too.
	delete(st.failOn, "assignments")
	st.failOn["inventory"] = errors.New("disk full")
	if _, err := svc.ConfirmDonation(ctx, a.ID, 2, "", ""); !errors.Is(err, store.ErrPersistenceFailure) {
		t.Fatalf("ConfirmDonation: %v; want ErrPersistenceFailure", err)
	}
	if len(st.donations) != 0 {
		t.Fatalf("durable donation survived rollback: %+v", st.donations)
	}
	if len(st.assignments) != 1 || st.assignments[0].Status != domain.AssignmentAccepted {
		t.Fatalf("durable assignment diverged from memory: %+v", st.assignments)
	}
	if len(st.donors) != 1 || st.donors[0].TotalDonations != 0 {
		t.Fatalf("durable donor diverged from memory: %+v", st.donors)
	}
}

func TestConfirmDonation_ReplaySurvivesRestart(t *testing.T) {
	core, st, clk := newTestCore(t)
	svc := NewDonationService(core, 0)
	ctx := context.Background()

	_, _, a := confirmFixture(t, core, domain.BPositive, 5, 10)

	first, err := svc.ConfirmDonation(ctx, a.ID, 2, "Central", "retry-key-1")
	if err != nil {
		t.Fatalf("ConfirmDonation: %v", err)
	}
	if len(st.idempotency) != 1 || st.idempotency[0].DonationID != first.ID {
		t.Fatalf("replay record not persisted: %+v", st.idempotency)
	}

	// A fresh process hydrated from the same store still detects the key.
	reg, err := registry.Load(ctx, st)
	if err != nil {
		t.Fatalf("registry.Load: %v", err)
	}
	led := ledger.New(ledger.DefaultThresholds)
	if err := led.Restore(st.inventory); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	core2 := NewCore(reg, led, st)
	core2.Now = clk.now
	svc2 := NewDonationService(core2, 0)

	exists, err := svc2.Replay(ctx, a.ID, "retry-key-1", core2.now())
	if err != nil || !exists {
		t.Fatalf("Replay after reload = %v, %v; want true", exists, err)
	}
	again, err := svc2.ConfirmDonation(ctx, a.ID, 2, "Central", "retry-key-1")
	if err != nil {
		t.Fatalf("ConfirmDonation(replay after reload): %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("replay after reload created donation %q; want %q", again.ID, first.ID)
	}
	if units := core2.Ledger.Units(domain.BPositive); units != 8 {
		t.Fatalf("replay after reload re-deducted units: %d", units)
	}
}

func TestConfirmDonation_IdempotentReplay(t *testing.T) {
	core, st, _ := newTestCore(t)
	svc := NewDonationService(core, 0)
	ctx := context.Background()

	_, br, a := confirmFixture(t, core, domain.BPositive, 5, 10)

	first, err := svc.ConfirmDonation(ctx, a.ID, 2, "Central", "retry-key-1")
	if err != nil {
		t.Fatalf("ConfirmDonation: %v", err)
	}

	// Same key replays the original donation with no further effects.
	again, err := svc.ConfirmDonation(ctx, a.ID, 2, "Central", "retry-key-1")
	if err != nil {
		t.Fatalf("ConfirmDonation(replay): %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("ConfirmDonation(replay): new donation %q created", again.ID)
	}
	if units := core.Ledger.Units(domain.BPositive); units != 8 {
		t.Fatalf("ConfirmDonation(replay): units deducted twice, units=%d", units)
	}
	gotReq, _ := core.Registry.Request(br.ID)
	if gotReq.UnitsFulfilled != 2 {
		t.Fatalf("ConfirmDonation(replay): request advanced twice: %+v", gotReq)
	}
	if len(st.donations) != 1 {
		t.Fatalf("ConfirmDonation(replay): %d donations persisted", len(st.donations))
	}

	// The Replay lookup agrees.
	exists, err := svc.Replay(ctx, a.ID, "retry-key-1", core.now())
	if err != nil || !exists {
		t.Fatalf("Replay = %v, %v; want true", exists, err)
	}
	exists, _ = svc.Replay(ctx, a.ID, "other-key", core.now())
	if exists {
		t.Fatalf("Replay: unknown key reported as replay")
	}
}

func TestDonationsForDonor(t *testing.T) {
	core, _, _ := newTestCore(t)
	svc := NewDonationService(core, 0)
	ctx := context.Background()

	d, _, a := confirmFixture(t, core, domain.OPositive, 5, 10)
	if _, err := svc.ConfirmDonation(ctx, a.ID, 2, "", ""); err != nil {
		t.Fatalf("ConfirmDonation: %v", err)
	}

	got, err := svc.ForDonor(ctx, d.ID)
	if err != nil || len(got) != 1 {
		t.Fatalf("ForDonor: %v, %d donations", err, len(got))
	}
	if _, err := svc.ForDonor(ctx, "DON-NOPE0000"); !errors.Is(err, ErrDonorNotFound) {
		t.Fatalf("ForDonor(missing) = %v; want ErrDonorNotFound", err)
	}
}
