package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// AssetHandler handles HTTP requests for asset operations.
type AssetHandler struct {
	service ports.AssetService
}

func NewAssetHandler(service ports.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// Create handles POST /v1/assets.
//
// @Summary      Register a new asset
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAssetRequest  true  "Asset details"
// @Success      201   {object}  assetResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/assets [post]
func (h *AssetHandler) Create(c echo.Context) error {
	var req createAssetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.CreateAsset(c.Request().Context(), toCreateAssetInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAssetResponse(detail))
}

// Get handles GET /v1/assets/:id.
//
// @Summary      Get an asset with its derived assignment state
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Asset id"
// @Success      200  {object}  assetResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/assets/{id} [get]
func (h *AssetHandler) Get(c echo.Context) error {
	detail, err := h.service.GetAsset(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAssetResponse(detail))
}

// Update handles PUT /v1/assets/:id.
//
// @Summary      Replace an asset's editable fields
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Asset id"
// @Param        body  body      updateAssetRequest  true  "Replacement asset state"
// @Success      200   {object}  assetResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/assets/{id} [put]
func (h *AssetHandler) Update(c echo.Context) error {
	var req updateAssetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.UpdateAsset(c.Request().Context(), toUpdateAssetInput(c.Param("id"), req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAssetResponse(detail))
}

// Delete handles DELETE /v1/assets/:id. The asset's assignment history is
// removed with it.
//
// @Summary      Delete an asset and its assignment history
// @Tags         assets
// @Security     BearerAuth
// @Param        id  path  string  true  "Asset id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/assets/{id} [delete]
func (h *AssetHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteAsset(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/assets.
//
// @Summary      List assets with filtering, sorting and pagination
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        status          query  []string  false  "Status filter"            collectionFormat(multi)
// @Param        category        query  []string  false  "Category filter"          collectionFormat(multi)
// @Param        brand           query  []string  false  "Brand filter"             collectionFormat(multi)
// @Param        location        query  []string  false  "Location filter"          collectionFormat(multi)
// @Param        purchased_from  query  string    false  "Purchase date lower bound (YYYY-MM-DD)"
// @Param        purchased_to    query  string    false  "Purchase date upper bound (YYYY-MM-DD)"
// @Param        sort_by         query  string    false  "Sort field"
// @Param        order           query  string    false  "asc or desc"
// @Param        page            query  int       false  "Page (1-based)"
// @Param        limit           query  int       false  "Page size (max 100)"
// @Success      200  {object}  listAssetsResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/assets [get]
func (h *AssetHandler) List(c echo.Context) error {
	purchasedFrom, err := queryDate(c, "purchased_from")
	if err != nil {
		return err
	}
	purchasedTo, err := queryDate(c, "purchased_to")
	if err != nil {
		return err
	}

	result, err := h.service.ListAssets(c.Request().Context(), ports.ListAssetsInput{
		Statuses:      queryValues(c, "status"),
		Categories:    queryValues(c, "category"),
		Brands:        queryValues(c, "brand"),
		Locations:     queryValues(c, "location"),
		PurchasedFrom: purchasedFrom,
		PurchasedTo:   purchasedTo,
		SortBy:        c.QueryParam("sort_by"),
		SortDesc:      querySortDesc(c, false),
		Page:          queryInt(c, "page"),
		Limit:         queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListAssetsResponse(result))
}
