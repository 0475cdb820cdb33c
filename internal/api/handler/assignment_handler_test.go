package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/assetdesk/inventory-system/internal/core/ports"
)

type stubAssignmentService struct {
	listFn func(ctx context.Context, input ports.ListAssignmentsInput) (*ports.ListAssignmentsResult, error)
}

func (s *stubAssignmentService) CreateAssignment(ctx context.Context, input ports.CreateAssignmentInput) (*ports.AssignmentDetail, error) {
	return nil, nil
}

func (s *stubAssignmentService) GetAssignment(ctx context.Context, id string) (*ports.AssignmentDetail, error) {
	return nil, nil
}

func (s *stubAssignmentService) UpdateAssignment(ctx context.Context, input ports.UpdateAssignmentInput) (*ports.AssignmentDetail, error) {
	return nil, nil
}

func (s *stubAssignmentService) ListAssignments(ctx context.Context, input ports.ListAssignmentsInput) (*ports.ListAssignmentsResult, error) {
	return s.listFn(ctx, input)
}

func TestAssignmentHandler_List_DefaultsToNewestFirst(t *testing.T) {
	var got ports.ListAssignmentsInput
	stub := &stubAssignmentService{
		listFn: func(ctx context.Context, input ports.ListAssignmentsInput) (*ports.ListAssignmentsResult, error) {
			got = input
			return &ports.ListAssignmentsResult{}, nil
		},
	}
	handler := NewAssignmentHandler(stub)

	c, rec := newAssetContext(t, http.MethodGet, "/v1/assignments", "")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.SortBy != "" {
		t.Errorf("sort_by = %q, want empty for repo fallback", got.SortBy)
	}
	if !got.SortDesc {
		t.Error("parameterless list must sort descending (most recent first)")
	}
}

func TestAssignmentHandler_List_ExplicitAscendingOrder(t *testing.T) {
	var got ports.ListAssignmentsInput
	stub := &stubAssignmentService{
		listFn: func(ctx context.Context, input ports.ListAssignmentsInput) (*ports.ListAssignmentsResult, error) {
			got = input
			return &ports.ListAssignmentsResult{}, nil
		},
	}
	handler := NewAssignmentHandler(stub)

	c, _ := newAssetContext(t, http.MethodGet, "/v1/assignments?sort_by=assigned_date&order=asc", "")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.SortBy != "assigned_date" {
		t.Errorf("sort_by = %q", got.SortBy)
	}
	if got.SortDesc {
		t.Error("order=asc must override the descending default")
	}
}
