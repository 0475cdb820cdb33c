package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// DirectoryUserHandler exposes the locally synchronised directory user set.
// There is no create or update endpoint: records originate from the sync
// reconciler and the live refresh only.
type DirectoryUserHandler struct {
	service ports.DirectoryUserService
}

func NewDirectoryUserHandler(service ports.DirectoryUserService) *DirectoryUserHandler {
	return &DirectoryUserHandler{service: service}
}

type directoryUserResponse struct {
	ID            string     `json:"id"`
	DirectoryID   string     `json:"directory_id"`
	PrincipalName string     `json:"principal_name"`
	DisplayName   string     `json:"display_name"`
	Department    string     `json:"department"`
	IsActive      bool       `json:"is_active"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	SyncedAt      time.Time  `json:"synced_at"`
}

type listDirectoryUsersResponse struct {
	Data       []directoryUserResponse `json:"data"`
	Pagination paginationResponse      `json:"pagination"`
}

// List handles GET /v1/directory/users.
//
// @Summary      List synchronised directory users
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        department       query  []string  false  "Department filter"  collectionFormat(multi)
// @Param        is_active        query  bool      false  "Account enabled filter"
// @Param        include_deleted  query  bool      false  "Include records pruned by the sync"
// @Param        sort_by          query  string    false  "Sort field"
// @Param        order            query  string    false  "asc or desc"
// @Param        page             query  int       false  "Page (1-based)"
// @Param        limit            query  int       false  "Page size (max 100)"
// @Success      200  {object}  listDirectoryUsersResponse
// @Failure      400  {object}  errorResponse
// @Router       /v1/directory/users [get]
func (h *DirectoryUserHandler) List(c echo.Context) error {
	isActive, err := queryBoolPtr(c, "is_active")
	if err != nil {
		return err
	}

	result, err := h.service.ListUsers(c.Request().Context(), ports.ListDirectoryUsersInput{
		Departments:    queryValues(c, "department"),
		IsActive:       isActive,
		IncludeDeleted: queryBool(c, "include_deleted"),
		SortBy:         c.QueryParam("sort_by"),
		SortDesc:       querySortDesc(c, false),
		Page:           queryInt(c, "page"),
		Limit:          queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	items := make([]directoryUserResponse, len(result.Items))
	for i := range result.Items {
		items[i] = toDirectoryUserResponse(&result.Items[i])
	}
	return c.JSON(http.StatusOK, listDirectoryUsersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /v1/directory/users/:principal_name.
//
// @Summary      Get a directory user by principal name
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        principal_name  path      string  true  "User principal name"
// @Success      200             {object}  directoryUserResponse
// @Failure      404             {object}  errorResponse
// @Router       /v1/directory/users/{principal_name} [get]
func (h *DirectoryUserHandler) Get(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("principal_name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDirectoryUserResponse(user))
}

// Refresh handles POST /v1/directory/users/:principal_name/refresh — pulls
// one user live from the directory and updates the local record.
//
// @Summary      Refresh one directory user from the live directory
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        principal_name  path      string  true  "User principal name"
// @Success      200             {object}  directoryUserResponse
// @Failure      404             {object}  errorResponse
// @Failure      502             {object}  errorResponse
// @Router       /v1/directory/users/{principal_name}/refresh [post]
func (h *DirectoryUserHandler) Refresh(c echo.Context) error {
	user, err := h.service.RefreshUser(c.Request().Context(), c.Param("principal_name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDirectoryUserResponse(user))
}

// Delete handles DELETE /v1/directory/users/:id. The user's assignment
// history survives with the user reference cleared.
//
// @Summary      Delete a local directory user record
// @Tags         directory
// @Security     BearerAuth
// @Param        id  path  string  true  "Local record id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/directory/users/{id} [delete]
func (h *DirectoryUserHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toDirectoryUserResponse(u *domain.DirectoryUser) directoryUserResponse {
	return directoryUserResponse{
		ID:            u.ID,
		DirectoryID:   u.DirectoryID,
		PrincipalName: u.PrincipalName,
		DisplayName:   u.DisplayName,
		Department:    u.Department,
		IsActive:      u.IsActive,
		DeletedAt:     u.DeletedAt,
		SyncedAt:      u.SyncedAt,
	}
}
