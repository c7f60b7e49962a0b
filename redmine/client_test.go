package redmine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ClientConfig
	}{
		{name: "missing base URL", cfg: ClientConfig{APIKey: "key"}},
		{name: "relative base URL", cfg: ClientConfig{BaseURL: "redmine.local", APIKey: "key"}},
		{name: "missing api key", cfg: ClientConfig{BaseURL: "https://redmine.example.com"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewClient(tc.cfg); err == nil {
				t.Fatalf("expected error for %+v", tc.cfg)
			}
		})
	}
}

func TestHTTPClient_CreateTimeEntry(t *testing.T) {
	t.Parallel()

	var seenBody map[string]map[string]any
	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		if got := fmt.Sprintf("%s %s", r.Method, r.URL.Path); got != "POST /time_entries.json" {
			t.Fatalf("unexpected request: %s", got)
		}
		if got := r.Header.Get("X-Redmine-API-Key"); got != "secret" {
			t.Fatalf("unexpected api key header: %q", got)
		}
		if got := r.Header.Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
			t.Fatalf("unexpected content type: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&seenBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		resp := jsonResponse(timeEntryResponse{TimeEntry: TimeEntry{
			ID:       77,
			Issue:    &IDName{ID: 101},
			Hours:    decimal.RequireFromString("2.5"),
			Comments: "review",
			SpentOn:  "2024-05-03",
		}})
		resp.StatusCode = http.StatusCreated
		return resp, nil
	}}

	client := newTestClient(t, doer)
	created, err := client.CreateTimeEntry(context.Background(), NewTimeEntry{
		IssueID:  101,
		SpentOn:  "2024-05-03",
		Hours:    decimal.RequireFromString("2.5"),
		Comments: "review",
	})
	if err != nil {
		t.Fatalf("create time entry: %v", err)
	}
	if created.ID != 77 || created.IssueID() != 101 {
		t.Fatalf("unexpected created entry: %+v", created)
	}

	payload := seenBody["time_entry"]
	if payload == nil {
		t.Fatalf("missing time_entry envelope: %+v", seenBody)
	}
	if payload["issue_id"] != float64(101) {
		t.Fatalf("unexpected issue_id: %#v", payload["issue_id"])
	}
	if payload["hours"] != 2.5 {
		t.Fatalf("hours must be sent as a JSON number, got %#v", payload["hours"])
	}
	if payload["spent_on"] != "2024-05-03" || payload["comments"] != "review" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestHTTPClient_CreateTimeEntryValidationError(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusUnprocessableEntity,
			Body:       io.NopCloser(strings.NewReader(`{"errors":["Issue is invalid"]}`)),
			Header:     make(http.Header),
		}, nil
	}}

	client := newTestClient(t, doer)
	_, err := client.CreateTimeEntry(context.Background(), NewTimeEntry{
		IssueID: 999,
		SpentOn: "2024-05-03",
		Hours:   decimal.NewFromInt(1),
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", statusErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "Issue is invalid") {
		t.Fatalf("error should carry the redmine message: %v", err)
	}
}

func TestHTTPClient_CreateTimeEntryRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		t.Fatalf("no request expected")
		return nil, nil
	}}
	client := newTestClient(t, doer)

	if _, err := client.CreateTimeEntry(context.Background(), NewTimeEntry{SpentOn: "2024-05-03"}); err == nil {
		t.Fatalf("expected error for missing issue id")
	}
	if _, err := client.CreateTimeEntry(context.Background(), NewTimeEntry{IssueID: 1}); err == nil {
		t.Fatalf("expected error for missing date")
	}
}

func TestHTTPClient_ListTimeEntriesPaginates(t *testing.T) {
	t.Parallel()

	calls := 0
	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		calls++
		if got := fmt.Sprintf("%s %s", r.Method, r.URL.Path); got != "GET /time_entries.json" {
			t.Fatalf("unexpected request: %s", got)
		}
		query := r.URL.Query()
		if query.Get("issue_id") != "101" || query.Get("from") != "2024-05-03" || query.Get("to") != "2024-05-03" {
			t.Fatalf("unexpected filter: %s", r.URL.RawQuery)
		}
		if query.Get("user_id") != "me" {
			t.Fatalf("expected user_id=me, got %q", query.Get("user_id"))
		}

		switch query.Get("offset") {
		case "0":
			return jsonResponse(timeEntriesResponse{
				TimeEntries: []TimeEntry{{ID: 1, Issue: &IDName{ID: 101}, Hours: decimal.NewFromInt(3)}},
				TotalCount:  2,
				Limit:       1,
			}), nil
		case "1":
			return jsonResponse(timeEntriesResponse{
				TimeEntries: []TimeEntry{{ID: 2, Issue: &IDName{ID: 101}, Hours: decimal.NewFromInt(5)}},
				TotalCount:  2,
				Offset:      1,
				Limit:       1,
			}), nil
		default:
			t.Fatalf("unexpected offset: %q", query.Get("offset"))
			return nil, nil
		}
	}}

	client := newTestClient(t, doer)
	entries, err := client.ListTimeEntries(context.Background(), TimeEntryFilter{
		IssueID:  101,
		From:     "2024-05-03",
		To:       "2024-05-03",
		OnlyMine: true,
	})
	if err != nil {
		t.Fatalf("list time entries: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 page requests, got %d", calls)
	}
	if len(entries) != 2 || entries[0].ID != 1 || entries[1].ID != 2 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestHTTPClient_GetIssue(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		if got := fmt.Sprintf("%s %s", r.Method, r.URL.Path); got != "GET /issues/101.json" {
			t.Fatalf("unexpected request: %s", got)
		}
		return jsonResponse(issueResponse{Issue: Issue{ID: 101, Subject: "Fix login"}}), nil
	}}

	client := newTestClient(t, doer)
	issue, err := client.GetIssue(context.Background(), 101)
	if err != nil {
		t.Fatalf("get issue: %v", err)
	}
	if issue.Subject != "Fix login" {
		t.Fatalf("unexpected subject: %q", issue.Subject)
	}
}

func TestHTTPClient_GetIssueNotFound(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
		}, nil
	}}

	client := newTestClient(t, doer)
	_, err := client.GetIssue(context.Background(), 404)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}
}

func TestIssueURL(t *testing.T) {
	t.Parallel()

	if got := IssueURL("https://redmine.example.com/", 101); got != "https://redmine.example.com/issues/101" {
		t.Fatalf("unexpected issue url: %q", got)
	}
}

func newTestClient(t *testing.T, doer httpDoer) *HTTPClient {
	t.Helper()

	client, err := NewClient(ClientConfig{
		BaseURL:    "https://redmine.example.com/",
		APIKey:     "secret",
		UserAgent:  "redhour-test",
		HTTPClient: doer,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

type fakeDoer struct {
	fn func(*http.Request) (*http.Response, error)
}

func (f fakeDoer) Do(req *http.Request) (*http.Response, error) {
	return f.fn(req)
}

func jsonResponse(payload any) *http.Response {
	body, _ := json.Marshal(payload)
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(string(body))),
		Header:     make(http.Header),
	}
}
