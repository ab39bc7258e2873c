// Requestor and blood request HTTP handlers.
//
// This file exposes REST endpoints for requestors and requests:
//   - POST   /requestors                 (register)
//   - GET    /requestors/{id}            (fetch)
//   - POST   /requests                   (open a request)
//   - GET    /requests                   (list, paginated)
//   - GET    /requests/{id}              (fetch)
//   - GET    /requests/{id}/candidates   (ranked eligible donors)
//   - POST   /requests/{id}/inventory    (fulfil from stock)
//   - POST   /requests/{id}/assignments  (donor accepts the request)
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

// RegisterRequestorRequest is the JSON payload for registering a requestor.
type RegisterRequestorRequest struct {
	Name         string `json:"name" binding:"required" example:"City General Hospital"`
	Email        string `json:"email" binding:"required,email" example:"transfusion@cgh.example.com"`
	Phone        string `json:"phone" example:"+30 210 000 0000"`
	Organization string `json:"organization" example:"City General"`
	City         string `json:"city" example:"Athens"`
	State        string `json:"state" example:"Attica"`
}

// CreateRequestRequest is the JSON payload for opening a blood request.
type CreateRequestRequest struct {
	RequestorID  string `json:"requestor_id" binding:"required" example:"REQ-1A2B3C4D"`
	PatientName  string `json:"patient_name" example:"Maria P"`
	BloodGroup   string `json:"blood_group" binding:"required" example:"AB-"`
	UnitsNeeded  int    `json:"units_needed" binding:"required" example:"4"`
	HospitalName string `json:"hospital_name" example:"City General"`
	City         string `json:"city" example:"Athens"`
	Urgency      string `json:"urgency" example:"high" enums:"normal,high,critical"`
}

// UseInventoryRequest is the JSON payload for fulfilling a request from stock.
type UseInventoryRequest struct {
	Units int `json:"units" binding:"required" example:"2"`
}

// AcceptRequestRequest is the JSON payload for a donor accepting a request.
type AcceptRequestRequest struct {
	DonorID      string `json:"donor_id" binding:"required" example:"DON-1A2B3C4D"`
	UnitsOffered int    `json:"units_offered" binding:"required" example:"2"`
	Notes        string `json:"notes" example:"evening slot"`
}

// ListRequestsResponse wraps a page of blood requests and pagination
// information.
type ListRequestsResponse struct {
	Requests   []domain.BloodRequest `json:"requests"`
	Pagination Pagination            `json:"pagination"`
}

//
// Handlers
//

// RegisterRequestor godoc
// @ID          registerRequestor
// @Summary     Register a requestor
// @Description Registers a hospital, blood bank, or individual that raises blood requests.
// @Tags        Requestors
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterRequestorRequest  true  "Requestor details"
//
// @Success     201  {object}  domain.Requestor
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /requestors [post]
func (h *Handlers) RegisterRequestor(c *gin.Context) {
	var req RegisterRequestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	q, err := h.requestSvc.RegisterRequestor(c.Request.Context(), services.RequestorInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Organization: req.Organization,
		City:         req.City,
		State:        req.State,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, q)
}

// GetRequestor godoc
// @ID          getRequestor
// @Summary     Fetch a requestor
// @Tags        Requestors
// @Produce     json
//
// @Param       id  path  string  true  "Requestor ID"  example(REQ-1A2B3C4D)
//
// @Success     200  {object}  domain.Requestor
// @Failure     404  {object}  handlers.ErrorResponse  "Requestor not found"
// @Router      /requestors/{id} [get]
func (h *Handlers) GetRequestor(c *gin.Context) {
	q, err := h.requestSvc.GetRequestor(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// CreateRequest godoc
// @ID          createRequest
// @Summary     Open a blood request
// @Description Opens a pending request for a number of units of one blood group.
// @Tags        Requests
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateRequestRequest  true  "Request details"
//
// @Success     201  {object}  domain.BloodRequest
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid details, group, or units"
// @Failure     404  {object}  handlers.ErrorResponse  "Requestor not found"
// @Router      /requests [post]
func (h *Handlers) CreateRequest(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	br, err := h.requestSvc.CreateRequest(c.Request.Context(), services.RequestInput{
		RequestorID:  req.RequestorID,
		PatientName:  req.PatientName,
		BloodGroup:   req.BloodGroup,
		UnitsNeeded:  req.UnitsNeeded,
		HospitalName: req.HospitalName,
		City:         req.City,
		Urgency:      req.Urgency,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, br)
}

// ListRequests godoc
// @ID          listRequests
// @Summary     List blood requests (paginated)
// @Tags        Requests
// @Produce     json
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ListRequestsResponse
// @Router      /requests [get]
func (h *Handlers) ListRequests(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.requestSvc.ListRequestsPage(c.Request.Context(), page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListRequestsResponse{
		Requests:   items,
		Pagination: paginate(page, pageSize, total),
	})
}

// GetRequest godoc
// @ID          getRequest
// @Summary     Fetch a blood request
// @Tags        Requests
// @Produce     json
//
// @Param       id  path  string  true  "Request ID"  example(BR-1A2B3C4D)
//
// @Success     200  {object}  domain.BloodRequest
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Router      /requests/{id} [get]
func (h *Handlers) GetRequest(c *gin.Context) {
	br, err := h.requestSvc.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, br)
}

// RequestCandidates godoc
// @ID          requestCandidates
// @Summary     Ranked donor candidates for a request
// @Description Lists compatible, available, eligible donors, longest-eligible first. Empty list when nobody matches.
// @Tags        Requests
// @Produce     json
//
// @Param       id  path  string  true  "Request ID"  example(BR-1A2B3C4D)
//
// @Success     200  {array}   matching.Candidate
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Router      /requests/{id}/candidates [get]
func (h *Handlers) RequestCandidates(c *gin.Context) {
	cands, err := h.requestSvc.FindCandidates(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, cands)
}

// UseInventory godoc
// @ID          useInventory
// @Summary     Fulfil a request from stock
// @Description Deducts units from inventory and advances the request, with no donor involved.
// @Tags        Requests
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Request ID"  example(BR-1A2B3C4D)
// @Param       body  body  handlers.UseInventoryRequest  true  "Units to take from stock"
//
// @Success     200  {object}  domain.BloodRequest
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid units"
// @Failure     404  {object}  handlers.ErrorResponse  "Request not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Insufficient inventory or request closed"
// @Failure     502  {object}  handlers.ErrorResponse  "Persistence failure"
// @Router      /requests/{id}/inventory [post]
func (h *Handlers) UseInventory(c *gin.Context) {
	var req UseInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	br, err := h.requestSvc.UseInventory(c.Request.Context(), c.Param("id"), req.Units)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, br)
}

// AcceptRequest godoc
// @ID          acceptRequest
// @Summary     Donor accepts a request
// @Description Creates an accepted assignment binding the donor to the request.
// @Tags        Requests
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Request ID"  example(BR-1A2B3C4D)
// @Param       body  body  handlers.AcceptRequestRequest  true  "Donor and units offered"
//
// @Success     201  {object}  domain.Assignment
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid units"
// @Failure     404  {object}  handlers.ErrorResponse  "Donor or request not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Duplicate assignment or request closed"
// @Router      /requests/{id}/assignments [post]
func (h *Handlers) AcceptRequest(c *gin.Context) {
	var req AcceptRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a, err := h.requestSvc.AcceptRequest(c.Request.Context(), req.DonorID, c.Param("id"), req.UnitsOffered, req.Notes)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, a)
}
