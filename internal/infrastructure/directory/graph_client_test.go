package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/assetdesk/inventory-system/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*GraphClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewGraphClient(Config{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	return client, srv
}

func TestGraphClient_FetchAllUsers_FollowsPagination(t *testing.T) {
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"value": [
				{"id": "3", "userPrincipalName": "c@corp.com", "displayName": "C", "accountEnabled": false}
			]}`)
			return
		}
		fmt.Fprintf(w, `{"value": [
			{"id": "1", "userPrincipalName": "a@corp.com", "displayName": "A", "department": "IT", "accountEnabled": true},
			{"id": "2", "userPrincipalName": "b@corp.com", "accountEnabled": true}
		], "@odata.nextLink": %q}`, srv.URL+"/users?page=2")
	})
	client, server := newTestClient(t, mux)
	srv = server

	records, err := client.FetchAllUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records across both pages, got %d", len(records))
	}

	first := records[0]
	if first.ID != "1" || first.PrincipalName != "a@corp.com" || !first.Enabled {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.DisplayName == nil || *first.DisplayName != "A" {
		t.Errorf("unexpected display name: %v", first.DisplayName)
	}
	if records[1].DisplayName != nil || records[1].Department != nil {
		t.Error("omitted fields must decode as nil")
	}
	if records[2].Enabled {
		t.Error("disabled accounts must carry Enabled=false")
	}
}

func TestGraphClient_FetchAllUsers_ServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.FetchAllUsers(context.Background())
	if !errors.Is(err, domain.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}
}

func TestGraphClient_FetchUser(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "1", "userPrincipalName": "a@corp.com", "displayName": "A", "accountEnabled": true}`)
	}))

	rec, err := client.FetchUser(context.Background(), "a@corp.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "1" || rec.PrincipalName != "a@corp.com" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestGraphClient_FetchUser_NotFoundVsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.FetchUser(context.Background(), "nobody@corp.com")
	if !errors.Is(err, domain.ErrDirectoryUserNotFound) {
		t.Fatalf("a 404 must map to ErrDirectoryUserNotFound, got %v", err)
	}
	if errors.Is(err, domain.ErrDirectoryUnavailable) {
		t.Fatal("a 404 must not read as a directory outage")
	}

	client, _ = newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	_, err = client.FetchUser(context.Background(), "a@corp.com")
	if !errors.Is(err, domain.ErrDirectoryUnavailable) {
		t.Fatalf("a 502 must map to ErrDirectoryUnavailable, got %v", err)
	}
}
