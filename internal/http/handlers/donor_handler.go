// Donor HTTP handlers.
//
// This file exposes REST endpoints for donor resources:
//   - POST   /donors                   (register)
//   - GET    /donors                   (list, paginated, or search by group/city)
//   - GET    /donors/{id}              (fetch)
//   - PATCH  /donors/{id}              (profile / availability update)
//   - GET    /donors/{id}/requests     (open requests the donor can serve)
//   - GET    /donors/{id}/donations    (donation history)
//   - POST   /donors/{id}/donations    (walk-in donation to general stock)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	"github.com/bloodsync/go-bloodbank-backend/internal/services"
)

//
// DTOs
//

// RegisterDonorRequest is the JSON payload for registering a donor.
type RegisterDonorRequest struct {
	Name       string  `json:"name" binding:"required" example:"Asha Rao"`
	Email      string  `json:"email" binding:"required,email" example:"asha@example.com"`
	Phone      string  `json:"phone" example:"+30 694 000 0000"`
	Age        int     `json:"age" binding:"required" example:"29"`
	Gender     string  `json:"gender" example:"female"`
	BloodGroup string  `json:"blood_group" binding:"required" example:"O+"`
	WeightKg   float64 `json:"weight_kg" binding:"required" example:"62"`
	City       string  `json:"city" example:"Athens"`
	State      string  `json:"state" example:"Attica"`
}

// UpdateDonorRequest is the JSON payload for a donor profile update. Absent
// fields stay unchanged.
type UpdateDonorRequest struct {
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	City      *string `json:"city,omitempty"`
	Available *bool   `json:"available,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// WalkInDonationRequest is the JSON payload for a walk-in inventory donation.
type WalkInDonationRequest struct {
	Units  int    `json:"units" binding:"required" example:"2"`
	Center string `json:"center" example:"Central Blood Center"`
}

// ListDonorsResponse wraps a page of donors and pagination information.
type ListDonorsResponse struct {
	Donors     []domain.Donor `json:"donors"`
	Pagination Pagination     `json:"pagination"`
}

//
// Handlers
//

// RegisterDonor godoc
// @ID          registerDonor
// @Summary     Register a donor
// @Description Registers a new blood donor and enrolls them in the inventory donor roster.
// @Tags        Donors
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterDonorRequest  true  "Donor details"
//
// @Success     201  {object}  domain.Donor
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid details or blood group"
// @Failure     502  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /donors [post]
func (h *Handlers) RegisterDonor(c *gin.Context) {
	var req RegisterDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	d, err := h.donorSvc.Register(c.Request.Context(), services.DonorInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Age:        req.Age,
		Gender:     req.Gender,
		BloodGroup: req.BloodGroup,
		WeightKg:   req.WeightKg,
		City:       req.City,
		State:      req.State,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, d)
}

// ListDonors godoc
// @ID          listDonors
// @Summary     List or search donors
// @Description Returns a page of donors. When blood_group or city is given, returns the matching donors unpaginated.
// @Tags        Donors
// @Produce     json
//
// @Param       blood_group  query  string  false  "Filter by blood group"  example(O+)
// @Param       city         query  string  false  "Filter by city"         example(Athens)
// @Param       page         query  int     false  "Page number"     minimum(1) default(1)
// @Param       page_size    query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListDonorsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid blood group"
// @Router      /donors [get]
func (h *Handlers) ListDonors(c *gin.Context) {
	ctx := c.Request.Context()

	if group, city := c.Query("blood_group"), c.Query("city"); group != "" || city != "" {
		items, err := h.donorSvc.Search(ctx, group, city)
		if err != nil {
			failErr(c, err)
			return
		}
		pageSize := len(items)
		if pageSize == 0 {
			pageSize = 1
		}
		ok(c, http.StatusOK, ListDonorsResponse{
			Donors:     items,
			Pagination: paginate(1, pageSize, len(items)),
		})
		return
	}

	page, pageSize := clampPagination(c)
	items, total, err := h.donorSvc.ListPage(ctx, page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListDonorsResponse{
		Donors:     items,
		Pagination: paginate(page, pageSize, total),
	})
}

// GetDonor godoc
// @ID          getDonor
// @Summary     Fetch a donor
// @Tags        Donors
// @Produce     json
//
// @Param       id  path  string  true  "Donor ID"  example(DON-1A2B3C4D)
//
// @Success     200  {object}  domain.Donor
// @Failure     404  {object}  handlers.ErrorResponse  "Donor not found"
// @Router      /donors/{id} [get]
func (h *Handlers) GetDonor(c *gin.Context) {
	d, err := h.donorSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// UpdateDonor godoc
// @ID          updateDonor
// @Summary     Update a donor profile
// @Description Applies partial changes to contact details, availability, or active status.
// @Tags        Donors
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Donor ID"  example(DON-1A2B3C4D)
// @Param       body  body  handlers.UpdateDonorRequest  true  "Fields to change"
//
// @Success     200  {object}  domain.Donor
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Donor not found"
// @Router      /donors/{id} [patch]
func (h *Handlers) UpdateDonor(c *gin.Context) {
	var req UpdateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	d, err := h.donorSvc.Update(c.Request.Context(), c.Param("id"), services.DonorUpdate{
		Phone:     req.Phone,
		Email:     req.Email,
		City:      req.City,
		Available: req.Available,
		Active:    req.Active,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// DonorRequests godoc
// @ID          donorRequests
// @Summary     Open requests a donor can serve
// @Description Lists open blood requests compatible with the donor's group, most urgent first.
// @Tags        Donors
// @Produce     json
//
// @Param       id  path  string  true  "Donor ID"  example(DON-1A2B3C4D)
//
// @Success     200  {array}   domain.BloodRequest
// @Failure     404  {object}  handlers.ErrorResponse  "Donor not found"
// @Router      /donors/{id}/requests [get]
func (h *Handlers) DonorRequests(c *gin.Context) {
	items, err := h.donorSvc.AvailableRequests(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// DonorDonations godoc
// @ID          donorDonations
// @Summary     Donation history of a donor
// @Tags        Donors
// @Produce     json
//
// @Param       id  path  string  true  "Donor ID"  example(DON-1A2B3C4D)
//
// @Success     200  {array}   domain.Donation
// @Failure     404  {object}  handlers.ErrorResponse  "Donor not found"
// @Router      /donors/{id}/donations [get]
func (h *Handlers) DonorDonations(c *gin.Context) {
	items, err := h.donationSvc.ForDonor(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// WalkInDonation godoc
// @ID          walkInDonation
// @Summary     Record a walk-in donation
// @Description Adds a donor's walk-in donation straight to general stock, subject to the donation interval.
// @Tags        Donors
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Donor ID"  example(DON-1A2B3C4D)
// @Param       body  body  handlers.WalkInDonationRequest  true  "Units donated"
//
// @Success     201  {object}  domain.Donation
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid units"
// @Failure     404  {object}  handlers.ErrorResponse  "Donor not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Donor not eligible yet"
// @Failure     502  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /donors/{id}/donations [post]
func (h *Handlers) WalkInDonation(c *gin.Context) {
	var req WalkInDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	dn, err := h.donorSvc.DonateToInventory(c.Request.Context(), c.Param("id"), req.Units, req.Center)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, dn)
}
