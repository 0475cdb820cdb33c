package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// Dates cross the wire as YYYY-MM-DD strings.
const dateLayout = "2006-01-02"

type createAssetRequest struct {
	Name         string  `json:"name"          validate:"required"`
	Category     string  `json:"category"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	OSOptionID   *string `json:"os_option_id"`
	SerialNumber string  `json:"serial_number" validate:"required"`
	PurchaseDate string  `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	Status       string  `json:"status"        validate:"omitempty,oneof=operational maintenance decommissioned lost_damaged pending_setup reserved"`
	Location     string  `json:"location"`
	Notes        string  `json:"notes"`
}

type updateAssetRequest struct {
	Name         string  `json:"name"          validate:"required"`
	Category     string  `json:"category"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	OSOptionID   *string `json:"os_option_id"`
	SerialNumber string  `json:"serial_number" validate:"required"`
	PurchaseDate string  `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	Status       string  `json:"status"        validate:"required,oneof=operational maintenance decommissioned lost_damaged pending_setup reserved"`
	Location     string  `json:"location"`
	Notes        string  `json:"notes"`
}

// Response-only types owned by the transport layer.
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type assetResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category,omitempty"`
	Brand        string     `json:"brand,omitempty"`
	Model        string     `json:"model,omitempty"`
	OSOptionID   *string    `json:"os_option_id,omitempty"`
	SerialNumber string     `json:"serial_number"`
	PurchaseDate *string    `json:"purchase_date,omitempty"`
	Status       string     `json:"status"`
	Location     string     `json:"location,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Derived at read time from the asset's active assignment.
	IsAssigned      bool   `json:"is_assigned"`
	CurrentLocation string `json:"current_location"`
	CurrentUser     string `json:"current_user"`
}

// assetSummaryResponse is the lightweight item used in list responses.
// It intentionally omits the derived projections to keep listing cheap.
type assetSummaryResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Brand        string  `json:"brand,omitempty"`
	Model        string  `json:"model,omitempty"`
	SerialNumber string  `json:"serial_number"`
	PurchaseDate *string `json:"purchase_date,omitempty"`
	Status       string  `json:"status"`
	Location     string  `json:"location,omitempty"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listAssetsResponse struct {
	Data       []assetSummaryResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}
