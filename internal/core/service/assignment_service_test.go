package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

type assignmentFixture struct {
	assets      *stubAssetRepo
	assignments *stubAssignmentRepo
	users       *stubUserRepo
	svc         *AssignmentService
	assetID     string
}

func newAssignmentFixture(t *testing.T, allowShared bool) *assignmentFixture {
	t.Helper()
	assets := newStubAssetRepo()
	assignments := newStubAssignmentRepo()
	assignments.assets = assets
	users := newStubUserRepo()

	asset := &domain.Asset{
		Name:         "ThinkPad X1",
		SerialNumber: "SN-001",
		Status:       domain.StatusOperational,
		Location:     "Warehouse A",
	}
	if err := assets.Create(context.Background(), asset); err != nil {
		t.Fatalf("seed asset: %v", err)
	}

	return &assignmentFixture{
		assets:      assets,
		assignments: assignments,
		users:       users,
		svc:         NewAssignmentService(assignments, assets, users, allowShared, discardLogger),
		assetID:     asset.ID,
	}
}

func TestAssignmentService_Create_AssetMustExist(t *testing.T) {
	f := newAssignmentFixture(t, false)

	_, err := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: "asset_404"})
	if !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssignmentService_Create_DefaultsAssignedDate(t *testing.T) {
	f := newAssignmentFixture(t, false)

	detail, err := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: f.assetID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.AssignedDate.IsZero() {
		t.Error("assigned date must default to today")
	}
	if !detail.Active {
		t.Error("new assignment must be active")
	}
}

func TestAssignmentService_Create_SecondActiveRejected(t *testing.T) {
	f := newAssignmentFixture(t, false)

	if _, err := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: f.assetID}); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	_, err := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: f.assetID})
	if !errors.Is(err, domain.ErrAssetAlreadyAssigned) {
		t.Errorf("expected ErrAssetAlreadyAssigned, got %v", err)
	}
}

func TestAssignmentService_Create_SharedModeAllowsOverlap(t *testing.T) {
	f := newAssignmentFixture(t, true)

	if _, err := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: f.assetID}); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	if _, err := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: f.assetID}); err != nil {
		t.Errorf("shared mode must allow a second active assignment, got %v", err)
	}
}

func TestAssignmentService_Create_HistoricalImportNoSideEffect(t *testing.T) {
	f := newAssignmentFixture(t, false)

	// An already-closed record never had an active state to transition
	// from, so the asset must stay untouched even alongside a live
	// assignment.
	if _, err := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: f.assetID}); err != nil {
		t.Fatalf("live assignment: %v", err)
	}
	_, err := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{
		AssetID:      f.assetID,
		AssignedDate: datePtr(2025, time.March, 1),
		ReturnedDate: datePtr(2025, time.April, 1),
	})
	if err != nil {
		t.Fatalf("historical import: %v", err)
	}
	if len(f.assignments.closeCalls) != 0 {
		t.Error("import of a closed assignment must not trigger the maintenance transition")
	}
	if f.assets.byID[f.assetID].Status != domain.StatusOperational {
		t.Errorf("asset status must stay operational, got %q", f.assets.byID[f.assetID].Status)
	}
}

func TestAssignmentService_Create_UnknownUserRejected(t *testing.T) {
	f := newAssignmentFixture(t, false)

	_, err := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{
		AssetID: f.assetID,
		UserID:  strPtr("user_404"),
	})
	if !errors.Is(err, domain.ErrDirectoryUserNotFound) {
		t.Errorf("expected ErrDirectoryUserNotFound, got %v", err)
	}
}

func TestAssignmentService_Close_MovesAssetToMaintenance(t *testing.T) {
	f := newAssignmentFixture(t, false)

	created, err := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: f.assetID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	detail, err := f.svc.UpdateAssignment(context.Background(), ports.UpdateAssignmentInput{
		ID:           created.ID,
		ReturnedDate: datePtr(2026, time.August, 29),
	})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if detail.Active {
		t.Error("closed assignment must not be active")
	}
	if len(f.assignments.closeCalls) != 1 {
		t.Fatalf("expected exactly one transactional close, got %d", len(f.assignments.closeCalls))
	}
	if f.assignments.closeCalls[0].assetStatus != domain.StatusMaintenance {
		t.Errorf("expected maintenance status, got %q", f.assignments.closeCalls[0].assetStatus)
	}
	if f.assets.byID[f.assetID].Status != domain.StatusMaintenance {
		t.Errorf("asset must be in maintenance, got %q", f.assets.byID[f.assetID].Status)
	}
}

func TestAssignmentService_ResaveReturned_DoesNotRetrigger(t *testing.T) {
	f := newAssignmentFixture(t, false)

	created, _ := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: f.assetID})
	if _, err := f.svc.UpdateAssignment(context.Background(), ports.UpdateAssignmentInput{
		ID:           created.ID,
		ReturnedDate: datePtr(2026, time.August, 1),
	}); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Operator inspected the asset and put it back in service.
	f.assets.byID[f.assetID].Status = domain.StatusOperational

	// Correcting the return date or the notes on the already-returned
	// assignment must not flip the asset back to maintenance.
	if _, err := f.svc.UpdateAssignment(context.Background(), ports.UpdateAssignmentInput{
		ID:           created.ID,
		ReturnedDate: datePtr(2026, time.August, 2),
		Notes:        strPtr("returned with charger"),
	}); err != nil {
		t.Fatalf("re-save: %v", err)
	}

	if len(f.assignments.closeCalls) != 1 {
		t.Errorf("expected one close call total, got %d", len(f.assignments.closeCalls))
	}
	if f.assets.byID[f.assetID].Status != domain.StatusOperational {
		t.Errorf("asset status must remain operational, got %q", f.assets.byID[f.assetID].Status)
	}
}

func TestAssignmentService_Update_LocationAndNotesOnly(t *testing.T) {
	f := newAssignmentFixture(t, false)

	created, _ := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{
		AssetID:  f.assetID,
		Location: "Room 204",
		Reason:   "new hire",
	})

	detail, err := f.svc.UpdateAssignment(context.Background(), ports.UpdateAssignmentInput{
		ID:       created.ID,
		Location: strPtr("Room 310"),
		Notes:    strPtr("moved desks"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if detail.Location != "Room 310" || detail.Notes != "moved desks" {
		t.Errorf("writable fields not applied: %+v", detail)
	}
	if !detail.Active {
		t.Error("update without return date must keep the assignment active")
	}
	if detail.Reason != "new hire" {
		t.Errorf("reason is immutable, got %q", detail.Reason)
	}
	if len(f.assignments.closeCalls) != 0 {
		t.Error("no transition edge, no asset side effect")
	}
}

func TestAssignmentService_List_StatusFilter(t *testing.T) {
	f := newAssignmentFixture(t, true)

	first, _ := f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: f.assetID})
	_, _ = f.svc.CreateAssignment(context.Background(), ports.CreateAssignmentInput{AssetID: f.assetID})
	if _, err := f.svc.UpdateAssignment(context.Background(), ports.UpdateAssignmentInput{
		ID:           first.ID,
		ReturnedDate: datePtr(2026, time.August, 29),
	}); err != nil {
		t.Fatalf("close: %v", err)
	}

	active, err := f.svc.ListAssignments(context.Background(), ports.ListAssignmentsInput{Status: ports.AssignmentStatusActive})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if active.Total != 1 {
		t.Errorf("active filter: expected 1, got %d", active.Total)
	}

	returned, _ := f.svc.ListAssignments(context.Background(), ports.ListAssignmentsInput{Status: ports.AssignmentStatusReturned})
	if returned.Total != 1 {
		t.Errorf("returned filter: expected 1, got %d", returned.Total)
	}

	all, _ := f.svc.ListAssignments(context.Background(), ports.ListAssignmentsInput{})
	if all.Total != 2 {
		t.Errorf("no filter: expected 2, got %d", all.Total)
	}
}
