package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/store"
)

func validDonorInput() DonorInput {
	return DonorInput{
		Name:       "asha rao",
		Email:      "asha@example.com",
		Phone:      "+30 694 000 0000",
		Age:        29,
		Gender:     "female",
		BloodGroup: "O+",
		WeightKg:   62,
		City:       "athens",
	}
}

func TestDonorRegister(t *testing.T) {
	core, st, _ := newTestCore(t)
	svc := newDonorService(core)
	ctx := context.Background()

	d, err := svc.Register(ctx, validDonorInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(d.ID) != len("DON-1A2B3C4D") || d.ID[:4] != "DON-" {
		t.Fatalf("Register: bad id %q", d.ID)
	}
	if d.Name != "Asha Rao" || d.City != "Athens" {
		t.Fatalf("Register: name/city not normalized: %q / %q", d.Name, d.City)
	}
	if !d.Available || !d.Active {
		t.Fatalf("Register: new donor must start available and active")
	}
	if d.LastDonation != nil {
		t.Fatalf("Register: new donor has a last donation date")
	}

	// Ledger roster and durable collections both updated.
	if got := core.Ledger.Snapshot()[6]; got.BloodGroup != domain.OPositive || got.DonorCount != 1 {
		t.Fatalf("Register: ledger roster %+v", got)
	}
	if len(st.donors) != 1 || len(st.inventory) != 8 {
		t.Fatalf("Register: persisted %d donors, %d inventory rows", len(st.donors), len(st.inventory))
	}
}

func TestDonorRegister_Validation(t *testing.T) {
	core, _, _ := newTestCore(t)
	svc := newDonorService(core)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*DonorInput)
		want   error
	}{
		{"unknown group", func(in *DonorInput) { in.BloodGroup = "C+" }, domain.ErrInvalidBloodGroup},
		{"too young", func(in *DonorInput) { in.Age = 17 }, ErrInvalidDonor},
		{"too old", func(in *DonorInput) { in.Age = 66 }, ErrInvalidDonor},
		{"underweight", func(in *DonorInput) { in.WeightKg = 49.5 }, ErrInvalidDonor},
		{"blank name", func(in *DonorInput) { in.Name = "   " }, ErrInvalidDonor},
		{"blank email", func(in *DonorInput) { in.Email = "" }, ErrInvalidDonor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validDonorInput()
			tc.mutate(&in)
			if _, err := svc.Register(ctx, in); !errors.Is(err, tc.want) {
				t.Fatalf("Register(%s) = %v; want %v", tc.name, err, tc.want)
			}
		})
	}

	// Boundary ages are accepted.
	for _, age := range []int{18, 65} {
		in := validDonorInput()
		in.Age = age
		if _, err := svc.Register(ctx, in); err != nil {
			t.Fatalf("Register(age=%d): %v", age, err)
		}
	}
}

func TestDonorRegister_RollbackOnStoreFailure(t *testing.T) {
	core, st, _ := newTestCore(t)
	st.failOn["donors"] = errors.New("disk full")
	svc := newDonorService(core)

	_, err := svc.Register(context.Background(), validDonorInput())
	if !errors.Is(err, store.ErrPersistenceFailure) {
		t.Fatalf("Register: %v; want ErrPersistenceFailure", err)
	}
	if len(core.Registry.Donors()) != 0 {
		t.Fatalf("Register: donor committed despite store failure")
	}
	for _, g := range core.Ledger.Snapshot() {
		if g.DonorCount != 0 {
			t.Fatalf("Register: ledger roster not rolled back for %s", g.BloodGroup)
		}
	}
}

func TestDonorUpdate(t *testing.T) {
	core, _, _ := newTestCore(t)
	svc := newDonorService(core)
	ctx := context.Background()

	d := seedDonor(t, core, domain.Donor{BloodGroup: domain.APositive, Name: "Asha Rao", Available: true, Active: true})

	off := false
	phone := "+30 694 111 1111"
	got, err := svc.Update(ctx, d.ID, DonorUpdate{Available: &off, Phone: &phone})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Available || got.Phone != phone {
		t.Fatalf("Update: %+v", got)
	}

	if _, err := svc.Update(ctx, "DON-MISSING1", DonorUpdate{}); !errors.Is(err, ErrDonorNotFound) {
		t.Fatalf("Update(missing) = %v; want ErrDonorNotFound", err)
	}

	empty := ""
	if _, err := svc.Update(ctx, d.ID, DonorUpdate{Email: &empty}); !errors.Is(err, ErrInvalidDonor) {
		t.Fatalf("Update(blank email) = %v; want ErrInvalidDonor", err)
	}
}

func TestDonateToInventory(t *testing.T) {
	core, st, clk := newTestCore(t)
	svc := newDonorService(core)
	ctx := context.Background()

	d := seedDonor(t, core, domain.Donor{BloodGroup: domain.BNegative, Available: true, Active: true})

	dn, err := svc.DonateToInventory(ctx, d.ID, 3, "Central Blood Center")
	if err != nil {
		t.Fatalf("DonateToInventory: %v", err)
	}
	if dn.Kind != domain.DonationKindInventory || dn.Units != 3 || dn.RequestID != "" {
		t.Fatalf("DonateToInventory: %+v", dn)
	}
	if got := core.Ledger.Units(domain.BNegative); got != 3 {
		t.Fatalf("DonateToInventory: units = %d; want 3", got)
	}

	updated, _ := core.Registry.Donor(d.ID)
	if updated.TotalDonations != 1 || updated.LastDonation == nil || !updated.LastDonation.Equal(clk.t) {
		t.Fatalf("DonateToInventory: donor history %+v", updated)
	}
	if len(st.donations) != 1 {
		t.Fatalf("DonateToInventory: %d donations persisted", len(st.donations))
	}
}

func TestDonateToInventory_EligibilityGate(t *testing.T) {
	core, _, clk := newTestCore(t)
	svc := newDonorService(core)
	ctx := context.Background()

	d := seedDonor(t, core, domain.Donor{
		BloodGroup:   domain.OPositive,
		Available:    true,
		Active:       true,
		LastDonation: clk.daysAgo(30),
	})
	if _, err := svc.DonateToInventory(ctx, d.ID, 1, ""); !errors.Is(err, ErrDonorNotEligible) {
		t.Fatalf("DonateToInventory(30d) = %v; want ErrDonorNotEligible", err)
	}

	// Exactly at the interval the donor becomes eligible again.
	clk.advance(26 * 24 * time.Hour)
	if _, err := svc.DonateToInventory(ctx, d.ID, 1, ""); err != nil {
		t.Fatalf("DonateToInventory(56d): %v", err)
	}
}

func TestDonateToInventory_Bounds(t *testing.T) {
	core, _, _ := newTestCore(t)
	svc := newDonorService(core)
	ctx := context.Background()

	d := seedDonor(t, core, domain.Donor{BloodGroup: domain.OPositive, Available: true, Active: true})

	for _, units := range []int{0, -1, 51} {
		if _, err := svc.DonateToInventory(ctx, d.ID, units, ""); !errors.Is(err, ErrInvalidUnits) {
			t.Fatalf("DonateToInventory(%d) = %v; want ErrInvalidUnits", units, err)
		}
	}

	unavailable := seedDonor(t, core, domain.Donor{BloodGroup: domain.OPositive, Available: false, Active: true})
	if _, err := svc.DonateToInventory(ctx, unavailable.ID, 1, ""); !errors.Is(err, ErrDonorNotEligible) {
		t.Fatalf("DonateToInventory(unavailable) = %v; want ErrDonorNotEligible", err)
	}
}

func TestDonateToInventory_RollbackOnStoreFailure(t *testing.T) {
	core, st, _ := newTestCore(t)
	st.failOn["donations"] = errors.New("disk full")
	svc := newDonorService(core)

	d := seedDonor(t, core, domain.Donor{BloodGroup: domain.ABPositive, Available: true, Active: true})

	_, err := svc.DonateToInventory(context.Background(), d.ID, 5, "")
	if !errors.Is(err, store.ErrPersistenceFailure) {
		t.Fatalf("DonateToInventory: %v; want ErrPersistenceFailure", err)
	}
	if got := core.Ledger.Units(domain.ABPositive); got != 0 {
		t.Fatalf("DonateToInventory: ledger not rolled back, units=%d", got)
	}
	unchanged, _ := core.Registry.Donor(d.ID)
	if unchanged.TotalDonations != 0 || unchanged.LastDonation != nil {
		t.Fatalf("DonateToInventory: donor history committed despite failure")
	}
	if len(core.Registry.Donations()) != 0 {
		t.Fatalf("DonateToInventory: donation committed despite failure")
	}
	// The donors collection was written before the donation save failed;
	// compensation must have overwritten it with the pre-mutation state.
	if len(st.donors) != 1 || st.donors[0].TotalDonations != 0 || st.donors[0].LastDonation != nil {
		t.Fatalf("DonateToInventory: durable donor diverged from registry: %+v", st.donors)
	}
}

func TestAvailableRequests(t *testing.T) {
	core, _, clk := newTestCore(t)
	svc := newDonorService(core)
	ctx := context.Background()

	// O- donates to everyone, so this donor sees every open request.
	d := seedDonor(t, core, domain.Donor{BloodGroup: domain.ONegative, Available: true, Active: true})

	old := clk.t.Add(-48 * time.Hour)
	seedRequest(t, core, domain.BloodRequest{ID: "BR-N1", BloodGroup: domain.APositive, UnitsNeeded: 2, Urgency: domain.UrgencyNormal, CreatedAt: clk.t})
	seedRequest(t, core, domain.BloodRequest{ID: "BR-C1", BloodGroup: domain.BPositive, UnitsNeeded: 2, Urgency: domain.UrgencyCritical, CreatedAt: clk.t})
	seedRequest(t, core, domain.BloodRequest{ID: "BR-C2", BloodGroup: domain.OPositive, UnitsNeeded: 2, Urgency: domain.UrgencyCritical, CreatedAt: old})
	seedRequest(t, core, domain.BloodRequest{ID: "BR-F1", BloodGroup: domain.OPositive, UnitsNeeded: 2, UnitsFulfilled: 2, Status: domain.RequestFulfilled, CreatedAt: old})

	got, err := svc.AvailableRequests(ctx, d.ID)
	if err != nil {
		t.Fatalf("AvailableRequests: %v", err)
	}
	ids := make([]string, 0, len(got))
	for _, br := range got {
		ids = append(ids, br.ID)
	}
	want := []string{"BR-C2", "BR-C1", "BR-N1"}
	if len(ids) != len(want) {
		t.Fatalf("AvailableRequests: got %v; want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("AvailableRequests: got %v; want %v", ids, want)
		}
	}

	// An A+ donor cannot serve a B+ request.
	a := seedDonor(t, core, domain.Donor{BloodGroup: domain.APositive, Available: true, Active: true})
	got, err = svc.AvailableRequests(ctx, a.ID)
	if err != nil {
		t.Fatalf("AvailableRequests: %v", err)
	}
	for _, br := range got {
		if br.ID == "BR-C1" {
			t.Fatalf("AvailableRequests: incompatible request listed")
		}
	}
}

func TestDonorSearch(t *testing.T) {
	core, _, _ := newTestCore(t)
	svc := newDonorService(core)
	ctx := context.Background()

	seedDonor(t, core, domain.Donor{ID: "DON-A", BloodGroup: domain.APositive, City: "Athens", Available: true, Active: true})
	seedDonor(t, core, domain.Donor{ID: "DON-B", BloodGroup: domain.APositive, City: "Patras", Available: true, Active: true})
	seedDonor(t, core, domain.Donor{ID: "DON-C", BloodGroup: domain.ONegative, City: "Athens", Available: true, Active: true})

	got, err := svc.Search(ctx, "A+", "athens")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].ID != "DON-A" {
		t.Fatalf("Search: %+v", got)
	}

	if _, err := svc.Search(ctx, "Z-", ""); !errors.Is(err, domain.ErrInvalidBloodGroup) {
		t.Fatalf("Search(bad group) = %v; want ErrInvalidBloodGroup", err)
	}

	all, _ := svc.Search(ctx, "", "")
	if len(all) != 3 {
		t.Fatalf("Search(no filter): got %d donors", len(all))
	}
}
