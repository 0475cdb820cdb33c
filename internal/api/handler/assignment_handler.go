package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// AssignmentHandler handles HTTP requests for assignment operations.
type AssignmentHandler struct {
	service ports.AssignmentService
}

func NewAssignmentHandler(service ports.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

type createAssignmentRequest struct {
	AssetID      string  `json:"asset_id"          validate:"required"`
	UserID       *string `json:"user_id"`
	AssignedDate string  `json:"assigned_date"     validate:"omitempty,datetime=2006-01-02"`
	ReturnedDate string  `json:"returned_date"     validate:"omitempty,datetime=2006-01-02"`
	Location     string  `json:"location"`
	Reason       string  `json:"assignment_reason"`
	Notes        string  `json:"notes"`
}

// updateAssignmentRequest carries the writable field set. Absent fields are
// left unchanged; the identifying fields and reason are immutable.
type updateAssignmentRequest struct {
	ReturnedDate *string `json:"returned_date" validate:"omitempty,datetime=2006-01-02"`
	Location     *string `json:"location"`
	Notes        *string `json:"notes"`
}

type assignmentResponse struct {
	ID           string  `json:"id"`
	AssetID      string  `json:"asset_id"`
	UserID       *string `json:"user_id,omitempty"`
	AssignedDate string  `json:"assigned_date"`
	ReturnedDate *string `json:"returned_date,omitempty"`
	Location     string  `json:"location,omitempty"`
	Reason       string  `json:"assignment_reason,omitempty"`
	Notes        string  `json:"notes,omitempty"`
	Active       bool    `json:"active"`
}

type listAssignmentsResponse struct {
	Data       []assignmentResponse `json:"data"`
	Pagination paginationResponse   `json:"pagination"`
}

// Create handles POST /v1/assignments. Supplying returned_date records an
// already-closed historical assignment without touching the asset.
//
// @Summary      Open an assignment or import a historical one
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAssignmentRequest  true  "Assignment details"
// @Success      201   {object}  assignmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/assignments [post]
func (h *AssignmentHandler) Create(c echo.Context) error {
	var req createAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.CreateAssignment(c.Request().Context(), ports.CreateAssignmentInput{
		AssetID:      req.AssetID,
		UserID:       req.UserID,
		AssignedDate: parseDatePtr(req.AssignedDate),
		ReturnedDate: parseDatePtr(req.ReturnedDate),
		Location:     req.Location,
		Reason:       req.Reason,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAssignmentResponse(detail))
}

// Get handles GET /v1/assignments/:id.
//
// @Summary      Get an assignment
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Assignment id"
// @Success      200  {object}  assignmentResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/assignments/{id} [get]
func (h *AssignmentHandler) Get(c echo.Context) error {
	detail, err := h.service.GetAssignment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAssignmentResponse(detail))
}

// Update handles PATCH /v1/assignments/:id. Setting returned_date on an
// active assignment closes it and moves the asset into maintenance.
//
// @Summary      Edit an assignment's writable fields
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Assignment id"
// @Param        body  body      updateAssignmentRequest  true  "Fields to change"
// @Success      200   {object}  assignmentResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/assignments/{id} [patch]
func (h *AssignmentHandler) Update(c echo.Context) error {
	var req updateAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	input := ports.UpdateAssignmentInput{
		ID:       c.Param("id"),
		Location: req.Location,
		Notes:    req.Notes,
	}
	if req.ReturnedDate != nil {
		input.ReturnedDate = parseDatePtr(*req.ReturnedDate)
	}

	detail, err := h.service.UpdateAssignment(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAssignmentResponse(detail))
}

// List handles GET /v1/assignments.
//
// @Summary      List assignments with filtering, sorting and pagination
// @Tags         assignments
// @Produce      json
// @Security     BearerAuth
// @Param        status         query  string    false  "active or returned"
// @Param        location       query  []string  false  "Location filter"  collectionFormat(multi)
// @Param        assigned_from  query  string    false  "Assigned date lower bound (YYYY-MM-DD)"
// @Param        assigned_to    query  string    false  "Assigned date upper bound (YYYY-MM-DD)"
// @Param        returned_from  query  string    false  "Returned date lower bound (YYYY-MM-DD)"
// @Param        returned_to    query  string    false  "Returned date upper bound (YYYY-MM-DD)"
// @Param        sort_by        query  string    false  "Sort field"
// @Param        order          query  string    false  "asc or desc (default desc)"
// @Param        page           query  int       false  "Page (1-based)"
// @Param        limit          query  int       false  "Page size (max 100)"
// @Success      200  {object}  listAssignmentsResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/assignments [get]
func (h *AssignmentHandler) List(c echo.Context) error {
	assignedFrom, err := queryDate(c, "assigned_from")
	if err != nil {
		return err
	}
	assignedTo, err := queryDate(c, "assigned_to")
	if err != nil {
		return err
	}
	returnedFrom, err := queryDate(c, "returned_from")
	if err != nil {
		return err
	}
	returnedTo, err := queryDate(c, "returned_to")
	if err != nil {
		return err
	}

	result, err := h.service.ListAssignments(c.Request().Context(), ports.ListAssignmentsInput{
		Status:       c.QueryParam("status"),
		Locations:    queryValues(c, "location"),
		AssignedFrom: assignedFrom,
		AssignedTo:   assignedTo,
		ReturnedFrom: returnedFrom,
		ReturnedTo:   returnedTo,
		SortBy:       c.QueryParam("sort_by"),
		SortDesc:     querySortDesc(c, true),
		Page:         queryInt(c, "page"),
		Limit:        queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	items := make([]assignmentResponse, len(result.Items))
	for i := range result.Items {
		items[i] = toAssignmentResponse(&result.Items[i])
	}
	return c.JSON(http.StatusOK, listAssignmentsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// toAssignmentResponse maps the service DTO to the JSON contract.
func toAssignmentResponse(d *ports.AssignmentDetail) assignmentResponse {
	var returned *string
	if d.ReturnedDate != nil {
		s := d.ReturnedDate.Format(dateLayout)
		returned = &s
	}
	return assignmentResponse{
		ID:           d.ID,
		AssetID:      d.AssetID,
		UserID:       d.UserID,
		AssignedDate: d.AssignedDate.Format(dateLayout),
		ReturnedDate: returned,
		Location:     d.Location,
		Reason:       d.Reason,
		Notes:        d.Notes,
		Active:       d.Active,
	}
}
