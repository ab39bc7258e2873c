// Handler wiring and shared DTOs.
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results (and sentinel errors) into HTTP responses. Business
// rules live entirely in the services package.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/matching"
	"github.com/bloodsync/go-bloodbank-backend/internal/services"
	"github.com/bloodsync/go-bloodbank-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// DonorService defines donor lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type DonorService interface {
	// Register creates a new donor and enrolls it in the inventory roster.
	Register(ctx context.Context, in services.DonorInput) (*domain.Donor, error)
	// Get returns one donor by id.
	Get(ctx context.Context, id string) (*domain.Donor, error)
	// ListPage returns a page of donors and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Donor, int, error)
	// Search filters donors by blood group and/or city.
	Search(ctx context.Context, bloodGroup, city string) ([]domain.Donor, error)
	// Update applies profile changes to a donor.
	Update(ctx context.Context, id string, upd services.DonorUpdate) (*domain.Donor, error)
	// DonateToInventory records a walk-in donation to general stock.
	DonateToInventory(ctx context.Context, donorID string, units int, center string) (*domain.Donation, error)
	// AvailableRequests lists open requests the donor can serve.
	AvailableRequests(ctx context.Context, donorID string) ([]domain.BloodRequest, error)
}

// RequestService defines requestor, blood request, and assignment operations.
type RequestService interface {
	// RegisterRequestor creates a new requestor.
	RegisterRequestor(ctx context.Context, in services.RequestorInput) (*domain.Requestor, error)
	// GetRequestor returns one requestor by id.
	GetRequestor(ctx context.Context, id string) (*domain.Requestor, error)
	// CreateRequest opens a pending blood request.
	CreateRequest(ctx context.Context, in services.RequestInput) (*domain.BloodRequest, error)
	// GetRequest returns one blood request by id.
	GetRequest(ctx context.Context, id string) (*domain.BloodRequest, error)
	// ListRequestsPage returns a page of blood requests and the total count.
	ListRequestsPage(ctx context.Context, page, pageSize int) ([]domain.BloodRequest, int, error)
	// FindCandidates ranks eligible donors for a request.
	FindCandidates(ctx context.Context, requestID string) ([]matching.Candidate, error)
	// AcceptRequest binds a donor to a request with an accepted assignment.
	AcceptRequest(ctx context.Context, donorID, requestID string, unitsOffered int, notes string) (*domain.Assignment, error)
	// CancelAssignment cancels an accepted assignment.
	CancelAssignment(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	// UseInventory fulfills part of a request straight from stock.
	UseInventory(ctx context.Context, requestID string, units int) (*domain.BloodRequest, error)
	// WithdrawFromInventory deducts stock directly for a requestor.
	WithdrawFromInventory(ctx context.Context, in services.WithdrawalInput) (*domain.BloodRequest, error)
}

// DonationService defines donation confirmation and history operations.
type DonationService interface {
	// ConfirmDonation executes the donation state machine for an assignment.
	ConfirmDonation(ctx context.Context, assignmentID string, units int, center, idemKey string) (*domain.Donation, error)
	// Replay reports whether a prior confirmation exists for the key.
	Replay(ctx context.Context, assignmentID, key string, now time.Time) (bool, error)
	// ForDonor returns one donor's donation history, newest first.
	ForDonor(ctx context.Context, donorID string) ([]domain.Donation, error)
}

// StatsService defines the read-model aggregations.
type StatsService interface {
	// Inventory returns the real-time inventory snapshot.
	Inventory(ctx context.Context) (*services.InventorySnapshot, error)
	// Dashboard returns the aggregate system counters.
	Dashboard(ctx context.Context) (*services.DashboardStats, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for donors, requestors, requests,
// assignments, donations, and statistics. It depends on abstract service
// interfaces to keep transport concerns separate from business logic.
type Handlers struct {
	donorSvc    DonorService
	requestSvc  RequestService
	donationSvc DonationService
	statsSvc    StatsService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(donorSvc DonorService, requestSvc RequestService, donationSvc DonationService, statsSvc StatsService) *Handlers {
	return &Handlers{
		donorSvc:    donorSvc,
		requestSvc:  requestSvc,
		donationSvc: donationSvc,
		statsSvc:    statsSvc,
	}
}

//
// Shared DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// paginate computes the response metadata for a page.
func paginate(page, pageSize, total int) Pagination {
	totalPages := (total + pageSize - 1) / pageSize
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}
