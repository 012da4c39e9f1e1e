package toggl

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.track.toggl.com"

var ErrMissingToken = errors.New("toggl api token is required")

// Client defines the Toggl Track API operations used by the journal.
type Client interface {
	Me(ctx context.Context) (Me, error)
	ListProjects(ctx context.Context, workspaceID int64) ([]Project, error)
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]TimeEntry, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	APIToken   string
	UserAgent  string
	HTTPClient httpDoer
}

type HTTPClient struct {
	baseURL    string
	authHeader string
	userAgent  string
	httpClient httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	token := strings.TrimSpace(cfg.APIToken)
	if token == "" {
		return nil, ErrMissingToken
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	// Toggl basic auth: the token is the user name, "api_token" the password.
	auth := base64.StdEncoding.EncodeToString([]byte(token + ":api_token"))

	return &HTTPClient{
		baseURL:    baseURL,
		authHeader: "Basic " + auth,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}, nil
}

type Me struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	FullName           string `json:"fullname"`
	DefaultWorkspaceID int64  `json:"default_workspace_id"`
	Timezone           string `json:"timezone"`
}

type Project struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"workspace_id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
}

type TimeEntry struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	ProjectID   *int64    `json:"project_id"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	// Duration in seconds; negative while the timer is running.
	Duration int64    `json:"duration"`
	Tags     []string `json:"tags"`
}

func (c *HTTPClient) Me(ctx context.Context) (Me, error) {
	var out Me
	if err := c.doJSON(ctx, http.MethodGet, "/api/v9/me", nil, &out); err != nil {
		return Me{}, err
	}
	return out, nil
}

func (c *HTTPClient) ListProjects(ctx context.Context, workspaceID int64) ([]Project, error) {
	if workspaceID <= 0 {
		return nil, fmt.Errorf("workspace id must be > 0")
	}
	path := fmt.Sprintf("/api/v9/workspaces/%d/projects", workspaceID)
	query := url.Values{}
	query.Set("active", "both")
	var out []Project
	if err := c.doJSON(ctx, http.MethodGet, path, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTimeEntries returns entries starting in [from, to).
func (c *HTTPClient) ListTimeEntries(ctx context.Context, from, to time.Time) ([]TimeEntry, error) {
	query := url.Values{}
	query.Set("start_date", from.Format(time.RFC3339))
	query.Set("end_date", to.Format(time.RFC3339))
	var out []TimeEntry
	if err := c.doJSON(ctx, http.MethodGet, "/api/v9/me/time_entries", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpointPath string, query url.Values, out any) error {
	target := c.baseURL + endpointPath
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("create request %s %s: %w", method, endpointPath, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, endpointPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf(
			"request %s %s failed with status %d: %s",
			method,
			endpointPath,
			resp.StatusCode,
			strings.TrimSpace(string(responseBody)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response %s %s: %w", method, endpointPath, err)
	}
	return nil
}
