// Assignment, withdrawal, and statistics HTTP handlers.
//
// This file exposes the remaining REST endpoints:
//   - POST  /assignments/{id}/confirm   (confirm donation; honors Idempotency-Key)
//   - POST  /assignments/{id}/cancel    (cancel assignment)
//   - POST  /inventory/withdrawals      (requestor direct withdrawal)
//   - GET   /inventory                  (real-time snapshot with compatibility vectors)
//   - GET   /dashboard/stats            (aggregate counters)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloodsync/go-bloodbank-backend/internal/http/middleware"
	"github.com/bloodsync/go-bloodbank-backend/internal/services"
)

//
// DTOs
//

// ConfirmDonationRequest is the JSON payload for confirming a donation.
type ConfirmDonationRequest struct {
	Units  int    `json:"units" binding:"required" example:"2"`
	Center string `json:"center" example:"Central Blood Center"`
}

// WithdrawalRequest is the JSON payload for a direct stock withdrawal.
type WithdrawalRequest struct {
	RequestorID  string `json:"requestor_id" binding:"required" example:"REQ-1A2B3C4D"`
	BloodGroup   string `json:"blood_group" binding:"required" example:"A-"`
	Units        int    `json:"units" binding:"required" example:"2"`
	PatientName  string `json:"patient_name" example:"Maria P"`
	HospitalName string `json:"hospital_name" example:"City General"`
	City         string `json:"city" example:"Athens"`
}

//
// Handlers
//

// ConfirmDonation godoc
// @ID          confirmDonation
// @Summary     Confirm a donation
// @Description Confirms the donation for an accepted assignment: deducts stock, advances the request, and records the donation. Safe to retry with the same Idempotency-Key.
// @Tags        Assignments
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false  "Replay-safe retry key"
// @Param       id    path  string  true  "Assignment ID"  example(ASGN-1A2B3C4D)
// @Param       body  body  handlers.ConfirmDonationRequest  true  "Units donated"
//
// @Success     201  {object}  domain.Donation
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid units"
// @Failure     404  {object}  handlers.ErrorResponse  "Assignment not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Insufficient inventory or terminal state"
// @Failure     502  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /assignments/{id}/confirm [post]
func (h *Handlers) ConfirmDonation(c *gin.Context) {
	var req ConfirmDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	idemKey, _ := middleware.GetIdempotencyKey(c)

	dn, err := h.donationSvc.ConfirmDonation(c.Request.Context(), c.Param("id"), req.Units, req.Center, idemKey)
	if err != nil {
		failErr(c, err)
		return
	}
	status := http.StatusCreated
	if middleware.IsReplay(c) {
		status = http.StatusOK
	}
	ok(c, status, dn)
}

// CancelAssignment godoc
// @ID          cancelAssignment
// @Summary     Cancel an assignment
// @Description Moves an accepted assignment to the terminal cancelled state.
// @Tags        Assignments
// @Produce     json
//
// @Param       id  path  string  true  "Assignment ID"  example(ASGN-1A2B3C4D)
//
// @Success     200  {object}  domain.Assignment
// @Failure     404  {object}  handlers.ErrorResponse  "Assignment not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Assignment already terminal"
// @Router      /assignments/{id}/cancel [post]
func (h *Handlers) CancelAssignment(c *gin.Context) {
	a, err := h.requestSvc.CancelAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// Withdraw godoc
// @ID          withdrawInventory
// @Summary     Withdraw stock directly
// @Description Deducts units for a requestor, recording an auto-fulfilled request and a withdrawal entry.
// @Tags        Inventory
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.WithdrawalRequest  true  "Withdrawal details"
//
// @Success     201  {object}  domain.BloodRequest
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid group or units"
// @Failure     404  {object}  handlers.ErrorResponse  "Requestor not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Insufficient inventory"
// @Failure     502  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /inventory/withdrawals [post]
func (h *Handlers) Withdraw(c *gin.Context) {
	var req WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	br, err := h.requestSvc.WithdrawFromInventory(c.Request.Context(), services.WithdrawalInput{
		RequestorID:  req.RequestorID,
		BloodGroup:   req.BloodGroup,
		Units:        req.Units,
		PatientName:  req.PatientName,
		HospitalName: req.HospitalName,
		City:         req.City,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, br)
}

// Inventory godoc
// @ID          inventorySnapshot
// @Summary     Real-time inventory snapshot
// @Description Per-group units, donor roster, depletion status, and compatibility vectors.
// @Tags        Inventory
// @Produce     json
//
// @Success     200  {object}  services.InventorySnapshot
// @Router      /inventory [get]
func (h *Handlers) Inventory(c *gin.Context) {
	snap, err := h.statsSvc.Inventory(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, snap)
}

// DashboardStats godoc
// @ID          dashboardStats
// @Summary     Aggregate dashboard counters
// @Tags        Statistics
// @Produce     json
//
// @Success     200  {object}  services.DashboardStats
// @Router      /dashboard/stats [get]
func (h *Handlers) DashboardStats(c *gin.Context) {
	stats, err := h.statsSvc.Dashboard(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, stats)
}
