// Package harvest is a minimal Harvest v2 API client covering the timer
// and time-entry operations clockhand needs.
package harvest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Tiliavir/clockhand/internal/model"
)

const (
	// DefaultBaseURL is the public Harvest v2 API endpoint.
	DefaultBaseURL = "https://api.harvestapp.com/v2"

	requestTimeout = 10 * time.Second
)

// Client is an authenticated Harvest API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userID     int64 // cached after the first CurrentUser call
}

// accountTransport adds the Harvest-Account-Id header to every request.
type accountTransport struct {
	accountID int64
	base      http.RoundTripper
}

func (t *accountTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Harvest-Account-Id", strconv.FormatInt(t.accountID, 10))
	r.Header.Set("User-Agent", "clockhand")
	return t.base.RoundTrip(r)
}

// NewClient builds a Harvest client from a personal access token and
// account id. baseURL may be empty to use the public API endpoint.
func NewClient(ctx context.Context, token string, accountID int64, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, src)
	hc.Transport = &accountTransport{accountID: accountID, base: hc.Transport}
	hc.Timeout = requestTimeout
	return &Client{baseURL: baseURL, httpClient: hc}
}

// TimeEntry is the wire shape of a Harvest time entry.
type TimeEntry struct {
	ID             int64      `json:"id"`
	SpentDate      string     `json:"spent_date"`
	Hours          float64    `json:"hours"`
	Notes          string     `json:"notes"`
	IsRunning      bool       `json:"is_running"`
	TimerStartedAt *time.Time `json:"timer_started_at"`
	Project        struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"project"`
}

func (e *TimeEntry) snapshot() model.TimerSnapshot {
	snap := model.TimerSnapshot{
		Running:     e.IsRunning,
		EntryID:     e.ID,
		ProjectID:   e.Project.ID,
		ProjectName: e.Project.Name,
		Hours:       e.Hours,
		Notes:       e.Notes,
	}
	if e.TimerStartedAt != nil {
		snap.StartedAt = *e.TimerStartedAt
	}
	return snap
}

// timeEntriesResponse is the Harvest paged response for time entries.
type timeEntriesResponse struct {
	TimeEntries []TimeEntry `json:"time_entries"`
	Links       struct {
		Next string `json:"next"`
	} `json:"links"`
}

type userResponse struct {
	ID int64 `json:"id"`
}

// do issues a request and decodes the JSON response into out (may be nil).
// endpoint is a path relative to the base URL, or an absolute URL when
// following pagination links. Transport failures and 5xx responses map to
// ErrServiceUnavailable, 404 to ErrNotFound.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	if !strings.HasPrefix(endpoint, "http") {
		endpoint = c.baseURL + endpoint
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrServiceUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, endpoint)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: API error %d", ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("harvest API error %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding harvest response: %w", err)
		}
	}
	return nil
}

// CurrentUser returns the authenticated user's id, cached after the first call.
func (c *Client) CurrentUser(ctx context.Context) (int64, error) {
	if c.userID != 0 {
		return c.userID, nil
	}
	var u userResponse
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return 0, err
	}
	c.userID = u.ID
	return u.ID, nil
}

// runningEntry returns the currently running time entry, or nil if none.
func (c *Client) runningEntry(ctx context.Context) (*TimeEntry, error) {
	uid, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{
		"user_id":    {strconv.FormatInt(uid, 10)},
		"is_running": {"true"},
		"per_page":   {"1"},
	}
	var page timeEntriesResponse
	if err := c.do(ctx, http.MethodGet, "/time_entries?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	if len(page.TimeEntries) == 0 {
		return nil, nil
	}
	e := page.TimeEntries[0]
	return &e, nil
}

// Snapshot reports the current timer state. A zero snapshot means idle.
func (c *Client) Snapshot(ctx context.Context) (model.TimerSnapshot, error) {
	entry, err := c.runningEntry(ctx)
	if err != nil {
		return model.TimerSnapshot{}, err
	}
	if entry == nil {
		return model.TimerSnapshot{}, nil
	}
	return entry.snapshot(), nil
}

// StartTimer creates a running time entry for the given project. backdate
// shifts the recorded start time into the past, so elapsed time already
// includes the backdated interval.
func (c *Client) StartTimer(ctx context.Context, projectID int64, backdate time.Duration) (model.TimerSnapshot, error) {
	uid, err := c.CurrentUser(ctx)
	if err != nil {
		return model.TimerSnapshot{}, err
	}
	start := time.Now().Add(-backdate)
	body := map[string]any{
		"user_id":      uid,
		"project_id":   projectID,
		"spent_date":   start.Format("2006-01-02"),
		"started_time": start.Format("3:04pm"),
	}
	var e TimeEntry
	if err := c.do(ctx, http.MethodPost, "/time_entries", body, &e); err != nil {
		return model.TimerSnapshot{}, err
	}
	return e.snapshot(), nil
}

// RestartLatest resumes today's most recent time entry, optionally
// backdating the restart. Returns ErrNotFound when today has no entries
// and ErrTimerRunning when a timer is already active.
func (c *Client) RestartLatest(ctx context.Context, backdate time.Duration) (model.TimerSnapshot, error) {
	entry, err := c.DayEntry(ctx, time.Now())
	if err != nil {
		return model.TimerSnapshot{}, err
	}
	if entry.IsRunning {
		return entry.snapshot(), ErrTimerRunning
	}

	var e TimeEntry
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/time_entries/%d/restart", entry.ID), nil, &e); err != nil {
		return model.TimerSnapshot{}, err
	}
	if backdate > 0 {
		body := map[string]any{
			"started_time": time.Now().Add(-backdate).Format("3:04pm"),
		}
		if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/time_entries/%d", e.ID), body, &e); err != nil {
			return model.TimerSnapshot{}, err
		}
	}
	return e.snapshot(), nil
}

// StopTimer stops the running timer. Returns ErrNoRunningTimer if none.
func (c *Client) StopTimer(ctx context.Context) (model.TimerSnapshot, error) {
	entry, err := c.runningEntry(ctx)
	if err != nil {
		return model.TimerSnapshot{}, err
	}
	if entry == nil {
		return model.TimerSnapshot{}, ErrNoRunningTimer
	}
	var e TimeEntry
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/time_entries/%d/stop", entry.ID), nil, &e); err != nil {
		return model.TimerSnapshot{}, err
	}
	return e.snapshot(), nil
}

// DayEntry returns the given day's most recent time entry, preferring a
// running one. Returns ErrNotFound when the day has no entries.
func (c *Client) DayEntry(ctx context.Context, day time.Time) (TimeEntry, error) {
	uid, err := c.CurrentUser(ctx)
	if err != nil {
		return TimeEntry{}, err
	}
	date := day.Format("2006-01-02")
	q := url.Values{
		"user_id": {strconv.FormatInt(uid, 10)},
		"from":    {date},
		"to":      {date},
	}
	var page timeEntriesResponse
	if err := c.do(ctx, http.MethodGet, "/time_entries?"+q.Encode(), nil, &page); err != nil {
		return TimeEntry{}, err
	}
	if len(page.TimeEntries) == 0 {
		return TimeEntry{}, fmt.Errorf("%w: no time entry on %s", ErrNotFound, date)
	}
	// Harvest returns newest first.
	for i := range page.TimeEntries {
		if page.TimeEntries[i].IsRunning {
			return page.TimeEntries[i], nil
		}
	}
	return page.TimeEntries[0], nil
}

// UpdateNotes replaces the notes of a time entry.
func (c *Client) UpdateNotes(ctx context.Context, entryID int64, notes string) error {
	body := map[string]any{"notes": notes}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/time_entries/%d", entryID), body, nil)
}

// ListEntries returns the user's time entries from the given date onward,
// following pagination. Entries come back in API order (newest first).
func (c *Client) ListEntries(ctx context.Context, from time.Time) ([]TimeEntry, error) {
	uid, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{
		"user_id":  {strconv.FormatInt(uid, 10)},
		"from":     {from.Format("2006-01-02")},
		"per_page": {"200"},
	}

	var all []TimeEntry
	endpoint := "/time_entries?" + q.Encode()
	for endpoint != "" {
		var page timeEntriesResponse
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.TimeEntries...)
		endpoint = page.Links.Next
	}
	return all, nil
}
