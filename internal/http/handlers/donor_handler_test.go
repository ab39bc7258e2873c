package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/services"
	"github.com/bloodsync/go-bloodbank-backend/internal/store"
)

// ---------- RegisterDonor ----------

func TestRegisterDonor_BadJSON_Success_InvalidGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Bad JSON -> 400
	{
		h := newStubHandlers(nil, nil, nil, nil)
		r := gin.New()
		r.POST("/donors", h.RegisterDonor)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/donors", bytes.NewBufferString("{bad"))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("bad json -> %d", w.Code)
		}
	}

	// Success -> 201 with the service's donor echoed back
	{
		svc := stubDonorSvc{
			register: func(_ context.Context, in services.DonorInput) (*domain.Donor, error) {
				if in.BloodGroup != "O+" || in.Age != 29 {
					t.Fatalf("unexpected input: %#v", in)
				}
				return &domain.Donor{ID: "DON-AB12CD34", Name: "Asha Rao", BloodGroup: domain.OPositive}, nil
			},
		}
		h := newStubHandlers(svc, nil, nil, nil)
		r := gin.New()
		r.POST("/donors", h.RegisterDonor)

		body := `{"name":"asha rao","email":"asha@example.com","age":29,"blood_group":"O+","weight_kg":62}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/donors", bytes.NewBufferString(body))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("create -> %d body=%s", w.Code, w.Body.String())
		}
		var out domain.Donor
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("json: %v", err)
		}
		if out.ID != "DON-AB12CD34" || out.Name != "Asha Rao" {
			t.Fatalf("unexpected donor: %#v", out)
		}
	}

	// Unknown blood group -> 400 invalid_blood_group
	{
		svc := stubDonorSvc{
			register: func(context.Context, services.DonorInput) (*domain.Donor, error) {
				return nil, domain.ErrInvalidBloodGroup
			},
		}
		h := newStubHandlers(svc, nil, nil, nil)
		r := gin.New()
		r.POST("/donors", h.RegisterDonor)

		body := `{"name":"x","email":"x@example.com","age":29,"blood_group":"Z+","weight_kg":62}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/donors", bytes.NewBufferString(body))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("invalid group -> %d", w.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json: %v", err)
		}
		if resp.Code != ErrCodeInvalidBloodGroup {
			t.Fatalf("code = %q", resp.Code)
		}
	}
}

// ---------- ListDonors ----------

func TestListDonors_PageAndSearch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	donors := []domain.Donor{
		{ID: "DON-1", BloodGroup: domain.OPositive, City: "Athens"},
		{ID: "DON-2", BloodGroup: domain.ANegative, City: "Patras"},
	}

	svc := stubDonorSvc{
		listPage: func(_ context.Context, page, pageSize int) ([]domain.Donor, int, error) {
			if page != 2 || pageSize != 1 {
				t.Fatalf("page args: %d %d", page, pageSize)
			}
			return donors[1:], 2, nil
		},
		search: func(_ context.Context, group, city string) ([]domain.Donor, error) {
			if group != "O+" || city != "Athens" {
				t.Fatalf("search args: %q %q", group, city)
			}
			return donors[:1], nil
		},
	}
	h := newStubHandlers(svc, nil, nil, nil)
	r := gin.New()
	r.GET("/donors", h.ListDonors)

	// Paginated listing
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/donors?page=2&page_size=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d body=%s", w.Code, w.Body.String())
	}
	var out ListDonorsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(out.Donors) != 1 || out.Donors[0].ID != "DON-2" {
		t.Fatalf("unexpected page: %#v", out.Donors)
	}
	if out.Pagination.Total != 2 || out.Pagination.TotalPages != 2 || out.Pagination.HasNext {
		t.Fatalf("pagination mismatch: %#v", out.Pagination)
	}

	// Search branch
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/donors?blood_group=O%2B&city=Athens", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("search -> %d body=%s", w.Code, w.Body.String())
	}
	out = ListDonorsResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(out.Donors) != 1 || out.Donors[0].ID != "DON-1" {
		t.Fatalf("unexpected search result: %#v", out.Donors)
	}
}

func TestListDonors_SearchInvalidGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := stubDonorSvc{
		search: func(context.Context, string, string) ([]domain.Donor, error) {
			return nil, domain.ErrInvalidBloodGroup
		},
	}
	h := newStubHandlers(svc, nil, nil, nil)
	r := gin.New()
	r.GET("/donors", h.ListDonors)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/donors?blood_group=XX", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad group -> %d", w.Code)
	}
}

// ---------- GetDonor / UpdateDonor ----------

func TestGetDonor_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := stubDonorSvc{
		get: func(context.Context, string) (*domain.Donor, error) {
			return nil, services.ErrDonorNotFound
		},
	}
	h := newStubHandlers(svc, nil, nil, nil)
	r := gin.New()
	r.GET("/donors/:id", h.GetDonor)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/donors/DON-MISSING1", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing donor -> %d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Code != ErrCodeNotFound {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestUpdateDonor_PassesPartialFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := stubDonorSvc{
		update: func(_ context.Context, id string, upd services.DonorUpdate) (*domain.Donor, error) {
			if id != "DON-1" {
				t.Fatalf("id = %q", id)
			}
			if upd.Available == nil || *upd.Available {
				t.Fatalf("expected available=false, got %#v", upd.Available)
			}
			if upd.City != nil || upd.Phone != nil || upd.Email != nil || upd.Active != nil {
				t.Fatalf("unexpected extra fields: %#v", upd)
			}
			d := domain.Donor{ID: id, Available: false}
			return &d, nil
		},
	}
	h := newStubHandlers(svc, nil, nil, nil)
	r := gin.New()
	r.PATCH("/donors/:id", h.UpdateDonor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/donors/DON-1", bytes.NewBufferString(`{"available":false}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update -> %d body=%s", w.Code, w.Body.String())
	}
}

// ---------- WalkInDonation ----------

func TestWalkInDonation_NotEligible_And_PersistenceFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Not eligible -> 422 not_eligible
	{
		svc := stubDonorSvc{
			donate: func(context.Context, string, int, string) (*domain.Donation, error) {
				return nil, services.ErrDonorNotEligible
			},
		}
		h := newStubHandlers(svc, nil, nil, nil)
		r := gin.New()
		r.POST("/donors/:id/donations", h.WalkInDonation)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/donors/DON-1/donations", bytes.NewBufferString(`{"units":1}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("not eligible -> %d", w.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json: %v", err)
		}
		if resp.Code != ErrCodeNotEligible {
			t.Fatalf("code = %q", resp.Code)
		}
	}

	// Store failure -> 502 persistence_failure
	{
		svc := stubDonorSvc{
			donate: func(context.Context, string, int, string) (*domain.Donation, error) {
				return nil, store.ErrPersistenceFailure
			},
		}
		h := newStubHandlers(svc, nil, nil, nil)
		r := gin.New()
		r.POST("/donors/:id/donations", h.WalkInDonation)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/donors/DON-1/donations", bytes.NewBufferString(`{"units":1}`))
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadGateway {
			t.Fatalf("persistence failure -> %d", w.Code)
		}
	}
}

// ---------- DonorRequests / DonorDonations ----------

func TestDonorRequests_And_Donations(t *testing.T) {
	gin.SetMode(gin.TestMode)

	donorSvc := stubDonorSvc{
		available: func(_ context.Context, donorID string) ([]domain.BloodRequest, error) {
			if donorID != "DON-1" {
				t.Fatalf("donorID = %q", donorID)
			}
			return []domain.BloodRequest{{ID: "BR-1", Urgency: domain.UrgencyCritical}}, nil
		},
	}
	donationSvc := stubDonationSvc{
		forDonor: func(_ context.Context, donorID string) ([]domain.Donation, error) {
			return []domain.Donation{{ID: "DN-1", DonorID: donorID}}, nil
		},
	}
	h := newStubHandlers(donorSvc, nil, donationSvc, nil)
	r := gin.New()
	r.GET("/donors/:id/requests", h.DonorRequests)
	r.GET("/donors/:id/donations", h.DonorDonations)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/donors/DON-1/requests", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("requests -> %d", w.Code)
	}
	var brs []domain.BloodRequest
	if err := json.Unmarshal(w.Body.Bytes(), &brs); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(brs) != 1 || brs[0].ID != "BR-1" {
		t.Fatalf("unexpected requests: %#v", brs)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/donors/DON-1/donations", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("donations -> %d", w.Code)
	}
	var dns []domain.Donation
	if err := json.Unmarshal(w.Body.Bytes(), &dns); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(dns) != 1 || dns[0].DonorID != "DON-1" {
		t.Fatalf("unexpected donations: %#v", dns)
	}
}
