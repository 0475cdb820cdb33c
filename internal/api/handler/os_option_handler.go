package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// OSOptionHandler handles HTTP requests for OS reference data.
type OSOptionHandler struct {
	service ports.OSOptionService
}

func NewOSOptionHandler(service ports.OSOptionService) *OSOptionHandler {
	return &OSOptionHandler{service: service}
}

type createOSOptionRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create handles POST /v1/os-options.
//
// @Summary      Add an OS option
// @Tags         os-options
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOSOptionRequest  true  "OS option"
// @Success      201   {object}  domain.OSOption
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/os-options [post]
func (h *OSOptionHandler) Create(c echo.Context) error {
	var req createOSOptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	opt, err := h.service.CreateOSOption(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, opt)
}

// List handles GET /v1/os-options.
//
// @Summary      List OS options
// @Tags         os-options
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.OSOption
// @Router       /v1/os-options [get]
func (h *OSOptionHandler) List(c echo.Context) error {
	opts, err := h.service.ListOSOptions(c.Request().Context())
	if err != nil {
		return err
	}
	if opts == nil {
		opts = []*domain.OSOption{}
	}
	return c.JSON(http.StatusOK, opts)
}

// Delete handles DELETE /v1/os-options/:id. Assets referencing the option
// keep no dangling reference.
//
// @Summary      Delete an OS option
// @Tags         os-options
// @Security     BearerAuth
// @Param        id  path  string  true  "OS option id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/os-options/{id} [delete]
func (h *OSOptionHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteOSOption(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
