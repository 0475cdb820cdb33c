package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/assetdesk/inventory-system/internal/core/domain"
	"github.com/assetdesk/inventory-system/internal/core/ports"
)

const (
	defaultBaseURL = "https://graph.microsoft.com/v1.0"
	selectFields   = "id,displayName,userPrincipalName,department,accountEnabled"
)

// Config captures the settings for the Microsoft Graph connection.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	// BaseURL overrides the Graph endpoint, used by tests.
	BaseURL string
	// HTTPClient overrides the OAuth2 client, used by tests. When nil the
	// client credentials flow against the tenant's token endpoint is used.
	HTTPClient *http.Client
}

// GraphClient implements ports.DirectoryClient against the Microsoft Graph
// users API, authenticating with the OAuth2 client credentials flow.
type GraphClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewGraphClient(cfg Config) *GraphClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		oauth := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.TenantID),
			Scopes:       []string{"https://graph.microsoft.com/.default"},
		}
		httpClient = oauth.Client(context.Background())
		httpClient.Timeout = 30 * time.Second
	}

	return &GraphClient{httpClient: httpClient, baseURL: baseURL}
}

// graphUser mirrors the fields selected from the Graph users resource.
type graphUser struct {
	ID                string  `json:"id"`
	DisplayName       *string `json:"displayName"`
	UserPrincipalName string  `json:"userPrincipalName"`
	Department        *string `json:"department"`
	AccountEnabled    bool    `json:"accountEnabled"`
}

type graphUserPage struct {
	Value    []graphUser `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// FetchAllUsers pulls the complete user set, following @odata.nextLink
// until the last page.
func (c *GraphClient) FetchAllUsers(ctx context.Context) ([]ports.DirectoryRecord, error) {
	next := fmt.Sprintf("%s/users?$select=%s&$top=999", c.baseURL, url.QueryEscape(selectFields))

	var records []ports.DirectoryRecord
	for next != "" {
		var page graphUserPage
		if err := c.get(ctx, next, &page); err != nil {
			return nil, err
		}
		for _, u := range page.Value {
			records = append(records, toRecord(u))
		}
		next = page.NextLink
	}
	return records, nil
}

// FetchUser pulls one user by principal name.
func (c *GraphClient) FetchUser(ctx context.Context, principalName string) (*ports.DirectoryRecord, error) {
	endpoint := fmt.Sprintf("%s/users/%s?$select=%s",
		c.baseURL, url.PathEscape(principalName), url.QueryEscape(selectFields))

	var u graphUser
	if err := c.get(ctx, endpoint, &u); err != nil {
		return nil, err
	}
	rec := toRecord(u)
	return &rec, nil
}

func (c *GraphClient) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrDirectoryUserNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: graph returned %d", domain.ErrDirectoryUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode graph response: %w", err)
	}
	return nil
}

func toRecord(u graphUser) ports.DirectoryRecord {
	return ports.DirectoryRecord{
		ID:            u.ID,
		PrincipalName: u.UserPrincipalName,
		DisplayName:   u.DisplayName,
		Department:    u.Department,
		Enabled:       u.AccountEnabled,
	}
}
