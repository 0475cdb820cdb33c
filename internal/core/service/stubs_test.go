package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func strPtr(s string) *string { return &s }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type stubAssetRepo struct {
	byID      map[string]*domain.Asset
	seq       int
	createErr error
	deleted   []string
	clearedOS []string
}

func newStubAssetRepo() *stubAssetRepo {
	return &stubAssetRepo{byID: make(map[string]*domain.Asset)}
}

func (r *stubAssetRepo) Create(_ context.Context, a *domain.Asset) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.SerialNumber == a.SerialNumber {
			return domain.ErrDuplicateSerialNumber
		}
	}
	r.seq++
	a.ID = fmt.Sprintf("asset_%d", r.seq)
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAssetRepo) FindByID(_ context.Context, id string) (*domain.Asset, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAssetRepo) Update(_ context.Context, a *domain.Asset) error {
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrAssetNotFound
	}
	for id, existing := range r.byID {
		if id != a.ID && existing.SerialNumber == a.SerialNumber {
			return domain.ErrDuplicateSerialNumber
		}
	}
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAssetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAssetNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubAssetRepo) List(_ context.Context, f ports.ListAssetsFilter) ([]*domain.Asset, int64, error) {
	var matched []*domain.Asset
	for _, a := range r.byID {
		if len(f.Statuses) > 0 && !containsString(f.Statuses, string(a.Status)) {
			continue
		}
		if len(f.Categories) > 0 && !containsString(f.Categories, a.Category) {
			continue
		}
		if len(f.Brands) > 0 && !containsString(f.Brands, a.Brand) {
			continue
		}
		if len(f.Locations) > 0 && !containsString(f.Locations, a.Location) {
			continue
		}
		if !f.PurchasedFrom.IsZero() && (a.PurchaseDate == nil || a.PurchaseDate.Before(f.PurchasedFrom)) {
			continue
		}
		if !f.PurchasedTo.IsZero() && (a.PurchaseDate == nil || a.PurchaseDate.After(f.PurchasedTo)) {
			continue
		}
		clone := *a
		matched = append(matched, &clone)
	}
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubAssetRepo) ClearOSOption(_ context.Context, osOptionID string) error {
	for _, a := range r.byID {
		if a.OSOptionID != nil && *a.OSOptionID == osOptionID {
			a.OSOptionID = nil
		}
	}
	r.clearedOS = append(r.clearedOS, osOptionID)
	return nil
}

type closeCall struct {
	assignmentID string
	assetStatus  domain.AssetStatus
}

type stubAssignmentRepo struct {
	byID       map[string]*domain.Assignment
	seq        int
	closeCalls []closeCall
	closeErr   error
	// when set, CloseWithAsset mirrors the asset status change the real
	// transactional implementation performs
	assets *stubAssetRepo
}

func newStubAssignmentRepo() *stubAssignmentRepo {
	return &stubAssignmentRepo{byID: make(map[string]*domain.Assignment)}
}

func (r *stubAssignmentRepo) Create(_ context.Context, a *domain.Assignment) error {
	r.seq++
	a.ID = fmt.Sprintf("assignment_%d", r.seq)
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAssignmentRepo) FindByID(_ context.Context, id string) (*domain.Assignment, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAssignmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAssignmentRepo) Update(_ context.Context, a *domain.Assignment) error {
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrAssignmentNotFound
	}
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAssignmentRepo) CloseWithAsset(_ context.Context, a *domain.Assignment, status domain.AssetStatus) error {
	if r.closeErr != nil {
		return r.closeErr
	}
	clone := *a
	r.byID[a.ID] = &clone
	if r.assets != nil {
		if asset, ok := r.assets.byID[a.AssetID]; ok {
			asset.Status = status
		}
	}
	r.closeCalls = append(r.closeCalls, closeCall{assignmentID: a.ID, assetStatus: status})
	return nil
}

func (r *stubAssignmentRepo) FindActiveByAsset(_ context.Context, assetID string) (*domain.Assignment, error) {
	for _, a := range r.byID {
		if a.AssetID == assetID && a.ReturnedDate == nil {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAssignmentNotFound
}

func (r *stubAssignmentRepo) List(_ context.Context, f ports.ListAssignmentsFilter) ([]*domain.Assignment, int64, error) {
	var matched []*domain.Assignment
	for _, a := range r.byID {
		if f.Status == ports.AssignmentStatusActive && a.ReturnedDate != nil {
			continue
		}
		if f.Status == ports.AssignmentStatusReturned && a.ReturnedDate == nil {
			continue
		}
		if len(f.Locations) > 0 && !containsString(f.Locations, a.Location) {
			continue
		}
		if !f.AssignedFrom.IsZero() && a.AssignedDate.Before(f.AssignedFrom) {
			continue
		}
		if !f.AssignedTo.IsZero() && a.AssignedDate.After(f.AssignedTo) {
			continue
		}
		if !f.ReturnedFrom.IsZero() && (a.ReturnedDate == nil || a.ReturnedDate.Before(f.ReturnedFrom)) {
			continue
		}
		if !f.ReturnedTo.IsZero() && (a.ReturnedDate == nil || a.ReturnedDate.After(f.ReturnedTo)) {
			continue
		}
		clone := *a
		matched = append(matched, &clone)
	}
	return paginate(matched, f.Page, f.Limit)
}

type stubUserRepo struct {
	byID            map[string]*domain.DirectoryUser
	seq             int
	upsertCalls     int
	upsertErrOn     string // directory id that triggers upsertErr
	upsertErr       error
	softDeleteCalls int
	deleted         []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.DirectoryUser)}
}

func (r *stubUserRepo) seed(u domain.DirectoryUser) *domain.DirectoryUser {
	r.seq++
	u.ID = fmt.Sprintf("user_%d", r.seq)
	clone := u
	r.byID[u.ID] = &clone
	return &clone
}

func (r *stubUserRepo) findByDirectoryID(directoryID string) *domain.DirectoryUser {
	for _, u := range r.byID {
		if u.DirectoryID == directoryID {
			return u
		}
	}
	return nil
}

func (r *stubUserRepo) Upsert(_ context.Context, u *domain.DirectoryUser) (bool, error) {
	r.upsertCalls++
	if r.upsertErr != nil && (r.upsertErrOn == "" || r.upsertErrOn == u.DirectoryID) {
		return false, r.upsertErr
	}
	if existing := r.findByDirectoryID(u.DirectoryID); existing != nil {
		existing.PrincipalName = u.PrincipalName
		existing.DisplayName = u.DisplayName
		existing.Department = u.Department
		existing.IsActive = u.IsActive
		existing.SyncedAt = u.SyncedAt
		existing.DeletedAt = nil
		return false, nil
	}
	r.seq++
	u.ID = fmt.Sprintf("user_%d", r.seq)
	clone := *u
	r.byID[u.ID] = &clone
	return true, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.DirectoryUser, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDirectoryUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByPrincipalName(_ context.Context, principalName string) (*domain.DirectoryUser, error) {
	for _, u := range r.byID {
		if u.PrincipalName == principalName {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrDirectoryUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListDirectoryUsersFilter) ([]*domain.DirectoryUser, int64, error) {
	var matched []*domain.DirectoryUser
	for _, u := range r.byID {
		if !f.IncludeDeleted && u.DeletedAt != nil {
			continue
		}
		if len(f.Departments) > 0 && !containsString(f.Departments, u.Department) {
			continue
		}
		if f.IsActive != nil && u.IsActive != *f.IsActive {
			continue
		}
		clone := *u
		matched = append(matched, &clone)
	}
	return paginate(matched, f.Page, f.Limit)
}

func (r *stubUserRepo) SoftDeleteNotIn(_ context.Context, directoryIDs []string, at time.Time) (int64, error) {
	r.softDeleteCalls++
	keep := make(map[string]struct{}, len(directoryIDs))
	for _, id := range directoryIDs {
		keep[id] = struct{}{}
	}
	var n int64
	for _, u := range r.byID {
		if _, ok := keep[u.DirectoryID]; ok || u.DeletedAt != nil {
			continue
		}
		marked := at
		u.DeletedAt = &marked
		n++
	}
	return n, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrDirectoryUserNotFound
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubOSOptionRepo struct {
	byID map[string]*domain.OSOption
	seq  int
}

func newStubOSOptionRepo() *stubOSOptionRepo {
	return &stubOSOptionRepo{byID: make(map[string]*domain.OSOption)}
}

func (r *stubOSOptionRepo) Create(_ context.Context, o *domain.OSOption) error {
	for _, existing := range r.byID {
		if existing.Name == o.Name {
			return domain.ErrDuplicateOSOption
		}
	}
	r.seq++
	o.ID = fmt.Sprintf("os_%d", r.seq)
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOSOptionRepo) FindByID(_ context.Context, id string) (*domain.OSOption, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOSOptionNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOSOptionRepo) List(_ context.Context) ([]*domain.OSOption, error) {
	var out []*domain.OSOption
	for _, o := range r.byID {
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubOSOptionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOSOptionNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubDirectoryClient struct {
	records     []ports.DirectoryRecord
	fetchErr    error
	fetchCalls  int
	fetchUserFn func(principalName string) (*ports.DirectoryRecord, error)
}

func (c *stubDirectoryClient) FetchAllUsers(_ context.Context) ([]ports.DirectoryRecord, error) {
	c.fetchCalls++
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}
	out := make([]ports.DirectoryRecord, len(c.records))
	copy(out, c.records)
	return out, nil
}

func (c *stubDirectoryClient) FetchUser(_ context.Context, principalName string) (*ports.DirectoryRecord, error) {
	if c.fetchUserFn != nil {
		return c.fetchUserFn(principalName)
	}
	for _, rec := range c.records {
		if rec.PrincipalName == principalName {
			clone := rec
			return &clone, nil
		}
	}
	return nil, domain.ErrDirectoryUserNotFound
}

type stubSyncLock struct {
	heldElsewhere bool
	acquireErr    error
	acquired      int
	released      int
}

func (l *stubSyncLock) Acquire(_ context.Context) (bool, error) {
	if l.acquireErr != nil {
		return false, l.acquireErr
	}
	if l.heldElsewhere {
		return false, nil
	}
	l.acquired++
	return true, nil
}

func (l *stubSyncLock) Release(_ context.Context) error {
	l.released++
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func paginate[T any](matched []*T, page, limit int) ([]*T, int64, error) {
	total := int64(len(matched))
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*T{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}
