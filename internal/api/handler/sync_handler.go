package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// SyncHandler triggers directory reconciliation runs on demand.
type SyncHandler struct {
	service ports.SyncService
}

func NewSyncHandler(service ports.SyncService) *SyncHandler {
	return &SyncHandler{service: service}
}

type syncResultResponse struct {
	Fetched    int       `json:"fetched"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Pruned     int64     `json:"pruned"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Run handles POST /v1/sync/run — executes one reconciliation synchronously
// and reports its counts.
//
// @Summary      Run a directory sync now
// @Tags         sync
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  syncResultResponse
// @Failure      409  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/sync/run [post]
func (h *SyncHandler) Run(c echo.Context) error {
	result, err := h.service.Run(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, syncResultResponse{
		Fetched:    result.Fetched,
		Created:    result.Created,
		Updated:    result.Updated,
		Pruned:     result.Pruned,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
	})
}
