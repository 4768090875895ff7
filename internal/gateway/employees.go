// Package gateway is the sole owner of network I/O against the EMS
// backend. Reference-list and search reads absorb transport failures and
// substitute safe defaults; mutating calls propagate the transport status
// so controllers can surface it.
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
	"time"

	"github.com/google/uuid"

	"ems-admin/internal/auth"
	"ems-admin/internal/domain"
	"ems-admin/internal/httpx"
	"ems-admin/internal/refdata"
)

// Employees talks to /employees and /export/employees. Zero-valued fields
// are filled by NewEmployees; tests may override HTTP and Retry.
type Employees struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  auth.TokenSource
	Retry   httpx.RetryConfig
}

func NewEmployees(baseURL string, tokens auth.TokenSource) *Employees {
	tr := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Employees{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout:   30 * time.Second,
			Transport: tr,
		},
		Tokens: tokens,
		Retry:  httpx.DefaultRetryConfig(),
	}
}

// Departments reads the department reference list. On any transport error
// or an empty result it resolves with the fallback list; it never fails.
// This is a public read: no credential is attached.
func (g *Employees) Departments(ctx context.Context) []string {
	return g.referenceList(ctx, g.BaseURL+"/employees/departments", refdata.FallbackDepartments())
}

// Positions reads the position reference list with the same policy as
// Departments.
func (g *Employees) Positions(ctx context.Context) []string {
	return g.referenceList(ctx, g.BaseURL+"/employees/positions", refdata.FallbackPositions())
}

func (g *Employees) referenceList(ctx context.Context, rawURL string, fallback []string) []string {
	var out []string
	err := httpx.DoJSON(ctx, g.HTTP, func(ctx context.Context) (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, rawURL, nil, false)
	}, &out, g.Retry)
	if err != nil || len(out) == 0 {
		return fallback
	}
	return out
}

// Search runs a filtered, paged employee read. A transport failure
// collapses to an empty zero-count page; the caller is never asked to
// special-case network errors here.
func (g *Employees) Search(ctx context.Context, page, size int, criteria domain.SearchCriteria) domain.EmployeePage {
	u, err := url.Parse(g.BaseURL + "/employees")
	if err != nil {
		return domain.EmptyPage(size)
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if criteria.SearchTerm != "" {
		q.Set("search", criteria.SearchTerm)
	}
	if criteria.Department != "" {
		q.Set("department", criteria.Department)
	}
	if criteria.Position != "" {
		q.Set("position", criteria.Position)
	}
	if criteria.MinSalary > 0 {
		q.Set("minSalary", strconv.FormatFloat(criteria.MinSalary, 'f', -1, 64))
	}
	if criteria.MaxSalary > 0 {
		q.Set("maxSalary", strconv.FormatFloat(criteria.MaxSalary, 'f', -1, 64))
	}
	u.RawQuery = q.Encode()

	var out domain.EmployeePage
	err = httpx.DoJSON(ctx, g.HTTP, func(ctx context.Context) (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, u.String(), nil, true)
	}, &out, g.Retry)
	if err != nil {
		return domain.EmptyPage(size)
	}
	if out.Size == 0 {
		out.Size = size
	}
	return out
}

// Get fetches a single employee by id.
func (g *Employees) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	var out domain.Employee
	err := httpx.DoJSON(ctx, g.HTTP, func(ctx context.Context) (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, fmt.Sprintf("%s/employees/%d", g.BaseURL, id), nil, true)
	}, &out, g.Retry)
	if err != nil {
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	return &out, nil
}

// Create persists a new employee. Transport errors propagate with their
// status so the form can map 400/409/401.
func (g *Employees) Create(ctx context.Context, emp domain.Employee) (*domain.Employee, error) {
	return g.write(ctx, http.MethodPost, g.BaseURL+"/employees", emp)
}

// Update replaces an existing employee.
func (g *Employees) Update(ctx context.Context, id int64, emp domain.Employee) (*domain.Employee, error) {
	return g.write(ctx, http.MethodPut, fmt.Sprintf("%s/employees/%d", g.BaseURL, id), emp)
}

func (g *Employees) write(ctx context.Context, method, rawURL string, emp domain.Employee) (*domain.Employee, error) {
	payload, err := json.Marshal(emp)
	if err != nil {
		return nil, err
	}
	key := uuid.NewString()

	var out domain.Employee
	err = httpx.DoJSON(ctx, g.HTTP, func(ctx context.Context) (*http.Request, error) {
		req, err := g.newRequest(ctx, method, rawURL, bytes.NewReader(payload), true)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", key)
		return req, nil
	}, &out, g.Retry)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes one employee.
func (g *Employees) Delete(ctx context.Context, id int64) error {
	key := uuid.NewString()
	_, _, err := httpx.Do(ctx, g.HTTP, func(ctx context.Context) (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/employees/%d", g.BaseURL, id), nil, true)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Idempotency-Key", key)
		return req, nil
	}, g.Retry)
	return err
}

// BulkDelete removes a set of employees in one call.
func (g *Employees) BulkDelete(ctx context.Context, ids []int64) error {
	payload, err := json.Marshal(map[string][]int64{"ids": ids})
	if err != nil {
		return err
	}
	key := uuid.NewString()

	_, _, err = httpx.Do(ctx, g.HTTP, func(ctx context.Context) (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodPost, g.BaseURL+"/employees/bulk/delete", bytes.NewReader(payload), true)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", key)
		return req, nil
	}, g.Retry)
	return err
}

// EmailExists asks the backend whether an email is taken; a failed check
// reports false rather than blocking the form.
func (g *Employees) EmailExists(ctx context.Context, email string) bool {
	u := g.BaseURL + "/employees/check-email?email=" + url.QueryEscape(email)
	var exists bool
	err := httpx.DoJSON(ctx, g.HTTP, func(ctx context.Context) (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, u, nil, true)
	}, &exists, g.Retry)
	if err != nil {
		return false
	}
	return exists
}

// Stats reads the dashboard summary, zero-valued on any failure.
func (g *Employees) Stats(ctx context.Context) domain.EmployeeStats {
	var out domain.EmployeeStats
	err := httpx.DoJSON(ctx, g.HTTP, func(ctx context.Context) (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, g.BaseURL+"/employees/stats/summary", nil, true)
	}, &out, g.Retry)
	if err != nil {
		return domain.EmployeeStats{}
	}
	return out
}

// ExportCSV downloads the backend-rendered CSV export.
func (g *Employees) ExportCSV(ctx context.Context) ([]byte, error) {
	return g.export(ctx, "csv")
}

// ExportExcel downloads the backend-rendered Excel export (opaque binary).
func (g *Employees) ExportExcel(ctx context.Context) ([]byte, error) {
	return g.export(ctx, "excel")
}

func (g *Employees) export(ctx context.Context, format string) ([]byte, error) {
	data, _, err := httpx.Download(ctx, g.HTTP, func(ctx context.Context) (*http.Request, error) {
		return g.newRequest(ctx, http.MethodGet, g.BaseURL+"/export/employees/"+format, nil, true)
	}, g.Retry)
	if err != nil {
		return nil, fmt.Errorf("export %s failed: %w", format, err)
	}
	return data, nil
}

// newRequest builds a request, attaching the bearer credential unless the
// endpoint is one of the public reference reads.
func (g *Employees) newRequest(ctx context.Context, method, rawURL string, body io.Reader, authed bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if authed && g.Tokens != nil {
		if token := g.Tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}
