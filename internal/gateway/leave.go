package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"ems-admin/internal/auth"
	"ems-admin/internal/domain"
	"ems-admin/internal/httpx"
)

// Leave talks to the /leave surface. Reads collapse to safe defaults on
// failure; writes propagate the transport status.
type Leave struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  auth.TokenSource
	Retry   httpx.RetryConfig
}

func NewLeave(baseURL string, tokens auth.TokenSource) *Leave {
	emp := NewEmployees(baseURL, tokens)
	return &Leave{
		BaseURL: baseURL,
		HTTP:    emp.HTTP,
		Tokens:  tokens,
		Retry:   emp.Retry,
	}
}

// Requests lists leave requests, optionally filtered by status. A failed
// read collapses to an empty page.
func (g *Leave) Requests(ctx context.Context, page, size int, status string) domain.LeavePage {
	u, err := url.Parse(g.BaseURL + "/leave/requests")
	if err != nil {
		return domain.EmptyLeavePage()
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if status != "" {
		q.Set("status", status)
	}
	u.RawQuery = q.Encode()

	var out domain.LeavePage
	if err := g.getJSON(ctx, u.String(), &out); err != nil {
		return domain.EmptyLeavePage()
	}
	if out.Content == nil {
		out.Content = []domain.LeaveRequest{}
	}
	return out
}

// MyRequests lists the calling employee's own requests, empty on failure.
func (g *Leave) MyRequests(ctx context.Context, employeeID int64) []domain.LeaveRequest {
	var out []domain.LeaveRequest
	u := fmt.Sprintf("%s/leave/requests/employee/%d", g.BaseURL, employeeID)
	if err := g.getJSON(ctx, u, &out); err != nil || out == nil {
		return []domain.LeaveRequest{}
	}
	return out
}

// Request submits a new leave request.
func (g *Leave) Request(ctx context.Context, req domain.LeaveRequest) (*domain.LeaveRequest, error) {
	var out domain.LeaveRequest
	if err := g.writeJSON(ctx, http.MethodPost, g.BaseURL+"/leave/requests", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStatus approves or rejects a pending request.
func (g *Leave) UpdateStatus(ctx context.Context, id int64, status, comments string) error {
	body := map[string]string{"status": status}
	if comments != "" {
		body["comments"] = comments
	}
	u := fmt.Sprintf("%s/leave/requests/%d/status", g.BaseURL, id)
	return g.writeJSON(ctx, http.MethodPut, u, body, nil)
}

// Cancel withdraws the caller's own pending request.
func (g *Leave) Cancel(ctx context.Context, id int64) error {
	u := fmt.Sprintf("%s/leave/requests/%d/cancel", g.BaseURL, id)
	return g.writeJSON(ctx, http.MethodPut, u, nil, nil)
}

// Balance reads an employee's leave balance; the default balance stands in
// when the read fails.
func (g *Leave) Balance(ctx context.Context, employeeID int64) domain.LeaveBalance {
	var out domain.LeaveBalance
	u := fmt.Sprintf("%s/leave/balance/%d", g.BaseURL, employeeID)
	if err := g.getJSON(ctx, u, &out); err != nil {
		b := domain.DefaultLeaveBalance()
		b.EmployeeID = employeeID
		return b
	}
	return out
}

// Calendar lists approved requests overlapping [start, end], empty on
// failure. Dates are ISO strings.
func (g *Leave) Calendar(ctx context.Context, start, end string) []domain.LeaveRequest {
	u, err := url.Parse(g.BaseURL + "/leave/calendar")
	if err != nil {
		return []domain.LeaveRequest{}
	}
	q := u.Query()
	q.Set("startDate", start)
	q.Set("endDate", end)
	u.RawQuery = q.Encode()

	var out []domain.LeaveRequest
	if err := g.getJSON(ctx, u.String(), &out); err != nil || out == nil {
		return []domain.LeaveRequest{}
	}
	return out
}

// Policy reads the tenant policy, defaulting on failure.
func (g *Leave) Policy(ctx context.Context) domain.LeavePolicy {
	var out domain.LeavePolicy
	if err := g.getJSON(ctx, g.BaseURL+"/leave/policy", &out); err != nil {
		return domain.DefaultLeavePolicy()
	}
	return out
}

// UpdatePolicy replaces the tenant policy.
func (g *Leave) UpdatePolicy(ctx context.Context, p domain.LeavePolicy) error {
	return g.writeJSON(ctx, http.MethodPut, g.BaseURL+"/leave/policy", p, nil)
}

// Stats reads the management summary, zero-valued on failure.
func (g *Leave) Stats(ctx context.Context) domain.LeaveStats {
	var out domain.LeaveStats
	if err := g.getJSON(ctx, g.BaseURL+"/leave/stats", &out); err != nil {
		return domain.LeaveStats{}
	}
	return out
}

func (g *Leave) getJSON(ctx context.Context, rawURL string, out any) error {
	return httpx.DoJSON(ctx, g.HTTP, func(ctx context.Context) (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, rawURL, nil)
	}, out, g.Retry)
}

func (g *Leave) writeJSON(ctx context.Context, method, rawURL string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}
	key := uuid.NewString()

	build := func(ctx context.Context) (*http.Request, error) {
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := g.newRequest(ctx, method, rawURL, rd)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Idempotency-Key", key)
		return req, nil
	}

	if out != nil {
		return httpx.DoJSON(ctx, g.HTTP, build, out, g.Retry)
	}
	_, _, err := httpx.Do(ctx, g.HTTP, build, g.Retry)
	return err
}

func (g *Leave) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if g.Tokens != nil {
		if token := g.Tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}
