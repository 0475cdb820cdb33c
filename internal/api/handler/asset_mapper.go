package handler

import (
	"time"

	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateAssetInput(req createAssetRequest) ports.CreateAssetInput {
	return ports.CreateAssetInput{
		Name:         req.Name,
		Category:     req.Category,
		Brand:        req.Brand,
		Model:        req.Model,
		OSOptionID:   req.OSOptionID,
		SerialNumber: req.SerialNumber,
		PurchaseDate: parseDatePtr(req.PurchaseDate),
		Status:       req.Status,
		Location:     req.Location,
		Notes:        req.Notes,
	}
}

func toUpdateAssetInput(id string, req updateAssetRequest) ports.UpdateAssetInput {
	return ports.UpdateAssetInput{
		ID:           id,
		Name:         req.Name,
		Category:     req.Category,
		Brand:        req.Brand,
		Model:        req.Model,
		OSOptionID:   req.OSOptionID,
		SerialNumber: req.SerialNumber,
		PurchaseDate: parseDatePtr(req.PurchaseDate),
		Status:       req.Status,
		Location:     req.Location,
		Notes:        req.Notes,
	}
}

// parseDatePtr assumes the value already passed datetime validation; an
// empty string maps to nil.
func parseDatePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// --- Service result → HTTP response ---

func toAssetResponse(d *ports.AssetDetail) assetResponse {
	return assetResponse{
		ID:              d.ID,
		Name:            d.Name,
		Category:        d.Category,
		Brand:           d.Brand,
		Model:           d.Model,
		OSOptionID:      d.OSOptionID,
		SerialNumber:    d.SerialNumber,
		PurchaseDate:    formatDatePtr(d.PurchaseDate),
		Status:          d.Status,
		Location:        d.Location,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
		IsAssigned:      d.IsAssigned,
		CurrentLocation: d.CurrentLocation,
		CurrentUser:     d.CurrentUser,
	}
}

func toListAssetsResponse(r *ports.ListAssetsResult) listAssetsResponse {
	items := make([]assetSummaryResponse, len(r.Items))
	for i, a := range r.Items {
		items[i] = assetSummaryResponse{
			ID:           a.ID,
			Name:         a.Name,
			Category:     a.Category,
			Brand:        a.Brand,
			Model:        a.Model,
			SerialNumber: a.SerialNumber,
			PurchaseDate: formatDatePtr(a.PurchaseDate),
			Status:       a.Status,
			Location:     a.Location,
		}
	}
	return listAssetsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
