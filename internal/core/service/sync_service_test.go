package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

func record(id, upn, displayName string) ports.DirectoryRecord {
	rec := ports.DirectoryRecord{ID: id, PrincipalName: upn, Enabled: true}
	if displayName != "" {
		rec.DisplayName = &displayName
	}
	return rec
}

func TestSyncService_Run_UpsertAndPrune(t *testing.T) {
	users := newStubUserRepo()
	users.seed(domain.DirectoryUser{DirectoryID: "1", PrincipalName: "a@corp.com", DisplayName: "A"})
	users.seed(domain.DirectoryUser{DirectoryID: "2", PrincipalName: "b@corp.com", DisplayName: "B"})

	client := &stubDirectoryClient{records: []ports.DirectoryRecord{record("1", "a@corp.com", "A")}}
	svc := NewSyncService(client, users, nil, 0, discardLogger)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fetched != 1 || result.Created != 0 || result.Updated != 1 {
		t.Errorf("unexpected counts: %+v", result)
	}
	if result.Pruned != 1 {
		t.Errorf("expected 1 pruned, got %d", result.Pruned)
	}

	kept := users.findByDirectoryID("1")
	if kept == nil || kept.DeletedAt != nil {
		t.Error("user present in the pull must survive unmarked")
	}
	pruned := users.findByDirectoryID("2")
	if pruned == nil {
		t.Fatal("pruned user must still exist as a record")
	}
	if pruned.DeletedAt == nil {
		t.Error("user absent from the pull must carry a deleted_at marker")
	}
}

func TestSyncService_Run_Idempotent(t *testing.T) {
	users := newStubUserRepo()
	client := &stubDirectoryClient{records: []ports.DirectoryRecord{
		record("1", "a@corp.com", "A"),
		record("2", "b@corp.com", "B"),
	}}
	svc := NewSyncService(client, users, nil, 0, discardLogger)

	first, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Created != 2 {
		t.Errorf("first run: expected 2 created, got %d", first.Created)
	}

	second, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Created != 0 || second.Updated != 2 || second.Pruned != 0 {
		t.Errorf("second run must be a pure refresh: %+v", second)
	}
	if len(users.byID) != 2 {
		t.Errorf("expected 2 records after both runs, got %d", len(users.byID))
	}
}

func TestSyncService_Run_DefaultsUnavailable(t *testing.T) {
	users := newStubUserRepo()
	client := &stubDirectoryClient{records: []ports.DirectoryRecord{record("3", "x@y.com", "")}}
	svc := NewSyncService(client, users, nil, 0, discardLogger)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u := users.findByDirectoryID("3")
	if u == nil {
		t.Fatal("user not created")
	}
	if u.DisplayName != "Unavailable" {
		t.Errorf("absent display name must default to %q, got %q", "Unavailable", u.DisplayName)
	}
	if u.Department != "Unavailable" {
		t.Errorf("absent department must default to %q, got %q", "Unavailable", u.Department)
	}
}

func TestSyncService_Run_FetchFailureWritesNothing(t *testing.T) {
	users := newStubUserRepo()
	users.seed(domain.DirectoryUser{DirectoryID: "1", PrincipalName: "a@corp.com"})

	client := &stubDirectoryClient{fetchErr: domain.ErrDirectoryUnavailable}
	svc := NewSyncService(client, users, nil, 0, discardLogger)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrDirectoryUnavailable) {
		t.Fatalf("expected directory error, got %v", err)
	}
	if users.upsertCalls != 0 {
		t.Error("a failed fetch must not trigger any upsert")
	}
	if users.softDeleteCalls != 0 {
		t.Error("a failed fetch must not trigger the prune pass")
	}
	if u := users.findByDirectoryID("1"); u == nil || u.DeletedAt != nil {
		t.Error("local state must be untouched after a failed fetch")
	}
}

func TestSyncService_Run_UpsertFailureAbortsBeforePrune(t *testing.T) {
	users := newStubUserRepo()
	users.upsertErrOn = "2"
	users.upsertErr = domain.ErrDuplicatePrincipalName

	client := &stubDirectoryClient{records: []ports.DirectoryRecord{
		record("1", "a@corp.com", "A"),
		record("2", "a@corp.com", "A2"), // directory anomaly: duplicate upn
	}}
	svc := NewSyncService(client, users, nil, 0, discardLogger)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrDuplicatePrincipalName) {
		t.Fatalf("expected ErrDuplicatePrincipalName, got %v", err)
	}
	if users.softDeleteCalls != 0 {
		t.Error("an aborted run must not reach the prune pass")
	}
}

func TestSyncService_Run_LockHeld(t *testing.T) {
	users := newStubUserRepo()
	client := &stubDirectoryClient{records: []ports.DirectoryRecord{record("1", "a@corp.com", "A")}}
	lock := &stubSyncLock{heldElsewhere: true}
	svc := NewSyncService(client, users, lock, 0, discardLogger)

	_, err := svc.Run(context.Background())
	if !errors.Is(err, domain.ErrSyncAlreadyRunning) {
		t.Fatalf("expected ErrSyncAlreadyRunning, got %v", err)
	}
	if client.fetchCalls != 0 {
		t.Error("a locked-out run must not hit the directory")
	}
}

func TestSyncService_Run_LockReleasedAfterRun(t *testing.T) {
	users := newStubUserRepo()
	client := &stubDirectoryClient{records: nil}
	lock := &stubSyncLock{}
	svc := NewSyncService(client, users, lock, 0, discardLogger)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lock.acquired != 1 || lock.released != 1 {
		t.Errorf("expected acquire/release once, got %d/%d", lock.acquired, lock.released)
	}
}

func TestSyncService_Run_LockErrorDegradesToUnlocked(t *testing.T) {
	users := newStubUserRepo()
	client := &stubDirectoryClient{records: []ports.DirectoryRecord{record("1", "a@corp.com", "A")}}
	lock := &stubSyncLock{acquireErr: errors.New("redis down")}
	svc := NewSyncService(client, users, lock, 0, discardLogger)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("a broken lock store must not block the run: %v", err)
	}
}

func TestSyncService_Run_ReappearingUserClearsSoftDelete(t *testing.T) {
	users := newStubUserRepo()
	gone := time.Now().UTC().AddDate(0, 0, -7)
	seeded := users.seed(domain.DirectoryUser{
		DirectoryID:   "1",
		PrincipalName: "a@corp.com",
		DeletedAt:     &gone,
	})

	client := &stubDirectoryClient{records: []ports.DirectoryRecord{record("1", "a@corp.com", "A")}}
	svc := NewSyncService(client, users, nil, 0, discardLogger)

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u := users.byID[seeded.ID]; u.DeletedAt != nil {
		t.Error("a user present in the pull again must lose its deleted_at marker")
	}
}
