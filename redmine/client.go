package redmine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const apiKeyHeader = "X-Redmine-API-Key"

// Client is the subset of the Redmine REST API used by the loader and the reporter.
type Client interface {
	CreateTimeEntry(ctx context.Context, entry NewTimeEntry) (TimeEntry, error)
	ListTimeEntries(ctx context.Context, filter TimeEntryFilter) ([]TimeEntry, error)
	GetIssue(ctx context.Context, id int64) (Issue, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient httpDoer
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}, nil
}

type NewTimeEntry struct {
	IssueID  int64
	SpentOn  string // YYYY-MM-DD
	Hours    decimal.Decimal
	Comments string
}

type IDName struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type TimeEntry struct {
	ID       int64           `json:"id"`
	Issue    *IDName         `json:"issue,omitempty"`
	User     *IDName         `json:"user,omitempty"`
	Hours    decimal.Decimal `json:"hours"`
	Comments string          `json:"comments"`
	SpentOn  string          `json:"spent_on"`
}

func (e TimeEntry) IssueID() int64 {
	if e.Issue == nil {
		return 0
	}
	return e.Issue.ID
}

type TimeEntryFilter struct {
	IssueID int64
	From    string
	To      string
	// OnlyMine restricts results to the owner of the API key.
	OnlyMine bool
}

type Issue struct {
	ID      int64  `json:"id"`
	Subject string `json:"subject"`
}

type createTimeEntryRequest struct {
	TimeEntry createTimeEntryPayload `json:"time_entry"`
}

type createTimeEntryPayload struct {
	IssueID  int64       `json:"issue_id"`
	SpentOn  string      `json:"spent_on"`
	Hours    json.Number `json:"hours"`
	Comments string      `json:"comments"`
}

type timeEntryResponse struct {
	TimeEntry TimeEntry `json:"time_entry"`
}

type timeEntriesResponse struct {
	TimeEntries []TimeEntry `json:"time_entries"`
	TotalCount  int         `json:"total_count"`
	Offset      int         `json:"offset"`
	Limit       int         `json:"limit"`
}

type issueResponse struct {
	Issue Issue `json:"issue"`
}

type errorsResponse struct {
	Errors []string `json:"errors"`
}

func (c *HTTPClient) CreateTimeEntry(ctx context.Context, entry NewTimeEntry) (TimeEntry, error) {
	if entry.IssueID <= 0 {
		return TimeEntry{}, errors.New("issue id must be > 0")
	}
	if strings.TrimSpace(entry.SpentOn) == "" {
		return TimeEntry{}, errors.New("spent_on is required")
	}

	payload := createTimeEntryRequest{TimeEntry: createTimeEntryPayload{
		IssueID:  entry.IssueID,
		SpentOn:  entry.SpentOn,
		Hours:    json.Number(entry.Hours.String()),
		Comments: entry.Comments,
	}}

	var out timeEntryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/time_entries.json", payload, &out); err != nil {
		return TimeEntry{}, err
	}
	return out.TimeEntry, nil
}

// ListTimeEntries pages through /time_entries.json until every match is read.
func (c *HTTPClient) ListTimeEntries(ctx context.Context, filter TimeEntryFilter) ([]TimeEntry, error) {
	const pageSize = 100

	query := url.Values{}
	if filter.IssueID > 0 {
		query.Set("issue_id", strconv.FormatInt(filter.IssueID, 10))
	}
	if filter.From != "" {
		query.Set("from", filter.From)
	}
	if filter.To != "" {
		query.Set("to", filter.To)
	}
	if filter.OnlyMine {
		query.Set("user_id", "me")
	}
	query.Set("limit", strconv.Itoa(pageSize))

	out := make([]TimeEntry, 0)
	for offset := 0; ; {
		query.Set("offset", strconv.Itoa(offset))

		var page timeEntriesResponse
		if err := c.doJSON(ctx, http.MethodGet, "/time_entries.json?"+query.Encode(), nil, &page); err != nil {
			return nil, err
		}
		out = append(out, page.TimeEntries...)

		offset += len(page.TimeEntries)
		if len(page.TimeEntries) == 0 || offset >= page.TotalCount {
			return out, nil
		}
	}
}

func (c *HTTPClient) GetIssue(ctx context.Context, id int64) (Issue, error) {
	if id <= 0 {
		return Issue{}, errors.New("issue id must be > 0")
	}

	var out issueResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/issues/%d.json", id), nil, &out); err != nil {
		return Issue{}, err
	}
	return out.Issue, nil
}

// IssueURL builds the browser link of an issue.
func IssueURL(baseURL string, id int64) string {
	return fmt.Sprintf("%s/issues/%d", strings.TrimRight(baseURL, "/"), id)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpointPath string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpointPath, bodyReader)
	if err != nil {
		return fmt.Errorf("create request %s %s: %w", method, endpointPath, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, endpointPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			Method:     method,
			Path:       endpointPath,
			StatusCode: resp.StatusCode,
			Messages:   decodeErrorMessages(responseBody),
		}
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

// StatusError is returned for non-2xx responses. Redmine validation failures
// (422) carry their messages in Messages.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Messages   []string
}

func (e *StatusError) Error() string {
	path := e.Path
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if len(e.Messages) == 0 {
		return fmt.Sprintf("request %s %s failed with status %d", e.Method, path, e.StatusCode)
	}
	return fmt.Sprintf(
		"request %s %s failed with status %d: %s",
		e.Method,
		path,
		e.StatusCode,
		strings.Join(e.Messages, "; "),
	)
}

func decodeErrorMessages(body []byte) []string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	var parsed errorsResponse
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		return parsed.Errors
	}
	if strings.HasPrefix(trimmed, "<") {
		return nil
	}
	return []string{trimmed}
}
