// Package leavectl holds the thin controllers over the leave gateway:
// request submission with balance checks, the management listing, the
// calendar month view, and approval actions.
package leavectl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ems-admin/internal/domain"
	"ems-admin/internal/events"
)

const dateLayout = "2006-01-02"

// Gateway is the slice of the leave gateway the controllers need.
type Gateway interface {
	Requests(ctx context.Context, page, size int, status string) domain.LeavePage
	MyRequests(ctx context.Context, employeeID int64) []domain.LeaveRequest
	Request(ctx context.Context, req domain.LeaveRequest) (*domain.LeaveRequest, error)
	UpdateStatus(ctx context.Context, id int64, status, comments string) error
	Cancel(ctx context.Context, id int64) error
	Balance(ctx context.Context, employeeID int64) domain.LeaveBalance
	Calendar(ctx context.Context, start, end string) []domain.LeaveRequest
	Stats(ctx context.Context) domain.LeaveStats
}

var (
	ErrInvalidDates        = errors.New("end date must not be before start date")
	ErrInsufficientBalance = errors.New("not enough leave days available")
)

// RequestInput is the raw leave-request form.
type RequestInput struct {
	LeaveType   string
	StartDate   string
	EndDate     string
	IsHalfDay   bool
	HalfDayType string // AM or PM
	Reason      string
}

// TotalDays computes the requested span, inclusive of both endpoints. A
// half-day request counts 0.5 regardless of the range.
func (in RequestInput) TotalDays() (float64, error) {
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return 0, fmt.Errorf("start date: %w", err)
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return 0, fmt.Errorf("end date: %w", err)
	}
	if end.Before(start) {
		return 0, ErrInvalidDates
	}
	if in.IsHalfDay {
		return 0.5, nil
	}
	return float64(end.Sub(start).Hours()/24) + 1, nil
}

// RequestController drives one leave-request form for one employee.
type RequestController struct {
	gw         Gateway
	employeeID int64

	mu      sync.Mutex
	balance domain.LeaveBalance
	loaded  bool
}

func NewRequestController(gw Gateway, employeeID int64) *RequestController {
	return &RequestController{gw: gw, employeeID: employeeID}
}

// Load preloads the employee's balance; the gateway substitutes defaults
// on failure so this never errors.
func (c *RequestController) Load(ctx context.Context) {
	b := c.gw.Balance(ctx, c.employeeID)
	c.mu.Lock()
	c.balance = b
	c.loaded = true
	c.mu.Unlock()
}

func (c *RequestController) Balance() domain.LeaveBalance {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return domain.DefaultLeaveBalance()
	}
	return c.balance
}

// Submit validates the input against the balance and sends the request.
func (c *RequestController) Submit(ctx context.Context, in RequestInput) (*domain.LeaveRequest, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, errors.New("a reason is required")
	}
	days, err := in.TotalDays()
	if err != nil {
		return nil, err
	}
	if days > c.Balance().Available(in.LeaveType) {
		return nil, ErrInsufficientBalance
	}

	return c.gw.Request(ctx, domain.LeaveRequest{
		EmployeeID:  c.employeeID,
		LeaveType:   in.LeaveType,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		TotalDays:   days,
		Reason:      strings.TrimSpace(in.Reason),
		Status:      domain.LeavePending,
		IsHalfDay:   in.IsHalfDay,
		HalfDayType: in.HalfDayType,
	})
}

// MyRequests lists the employee's own requests.
func (c *RequestController) MyRequests(ctx context.Context) []domain.LeaveRequest {
	return c.gw.MyRequests(ctx, c.employeeID)
}

// Withdraw cancels one of the employee's own pending requests.
func (c *RequestController) Withdraw(ctx context.Context, id int64) error {
	return c.gw.Cancel(ctx, id)
}

// ManagementController drives the paged, status-filtered admin listing.
type ManagementController struct {
	gw   Gateway
	size int

	mu      sync.Mutex
	page    int
	status  string
	current domain.LeavePage
	stats   domain.LeaveStats
}

func NewManagementController(gw Gateway, pageSize int) *ManagementController {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ManagementController{gw: gw, size: pageSize, current: domain.EmptyLeavePage()}
}

// Refresh reloads the listing and the summary stats.
func (c *ManagementController) Refresh(ctx context.Context) {
	c.mu.Lock()
	page, status := c.page, c.status
	c.mu.Unlock()

	result := c.gw.Requests(ctx, page, c.size, status)
	stats := c.gw.Stats(ctx)

	c.mu.Lock()
	c.current = result
	c.stats = stats
	c.mu.Unlock()
}

// FilterStatus applies a status filter and reloads from the first page.
func (c *ManagementController) FilterStatus(ctx context.Context, status string) {
	c.mu.Lock()
	c.status = status
	c.page = 0
	c.mu.Unlock()
	c.Refresh(ctx)
}

func (c *ManagementController) SetPage(ctx context.Context, p int) {
	c.mu.Lock()
	if p < 0 {
		p = 0
	}
	c.page = p
	c.mu.Unlock()
	c.Refresh(ctx)
}

func (c *ManagementController) Page() domain.LeavePage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *ManagementController) Stats() domain.LeaveStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// CalendarController indexes approved leave per day over one month.
type CalendarController struct {
	gw Gateway

	mu    sync.Mutex
	year  int
	month time.Month
	byDay map[string][]domain.LeaveRequest
}

func NewCalendarController(gw Gateway) *CalendarController {
	return &CalendarController{gw: gw, byDay: map[string][]domain.LeaveRequest{}}
}

// LoadMonth fetches the month's requests and builds the per-day index.
// Multi-day requests appear under every day they cover inside the month.
func (c *CalendarController) LoadMonth(ctx context.Context, year int, month time.Month) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	requests := c.gw.Calendar(ctx, first.Format(dateLayout), last.Format(dateLayout))

	byDay := map[string][]domain.LeaveRequest{}
	for _, req := range requests {
		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			continue
		}
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil || end.Before(start) {
			continue
		}
		if start.Before(first) {
			start = first
		}
		if end.After(last) {
			end = last
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			key := d.Format(dateLayout)
			byDay[key] = append(byDay[key], req)
		}
	}

	c.mu.Lock()
	c.year, c.month, c.byDay = year, month, byDay
	c.mu.Unlock()
}

// Day returns the requests covering one day of the loaded month.
func (c *CalendarController) Day(date string) []domain.LeaveRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byDay[date]
}

func (c *CalendarController) Month() (int, time.Month) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.year, c.month
}

// ApprovalController performs approve/reject actions and refreshes the
// management listing only after the backend confirms.
type ApprovalController struct {
	gw   Gateway
	mgmt *ManagementController
}

func NewApprovalController(gw Gateway, mgmt *ManagementController) *ApprovalController {
	return &ApprovalController{gw: gw, mgmt: mgmt}
}

func (c *ApprovalController) Approve(ctx context.Context, id int64, comments string) error {
	return c.decide(ctx, id, domain.LeaveApproved, comments)
}

func (c *ApprovalController) Reject(ctx context.Context, id int64, comments string) error {
	return c.decide(ctx, id, domain.LeaveRejected, comments)
}

func (c *ApprovalController) decide(ctx context.Context, id int64, status, comments string) error {
	if err := c.gw.UpdateStatus(ctx, id, status, comments); err != nil {
		return err
	}
	if c.mgmt != nil {
		c.mgmt.Refresh(ctx)
	}
	return nil
}

// PendingWatcher is the poll source for the notification feed: it reads
// the leave stats and emits an event whenever the pending-request count
// changes. The first poll emits the baseline.
type PendingWatcher struct {
	gw Gateway

	mu     sync.Mutex
	last   int
	primed bool
}

func NewPendingWatcher(gw Gateway) *PendingWatcher {
	return &PendingWatcher{gw: gw}
}

// Poll satisfies the events.Feed source contract.
func (w *PendingWatcher) Poll(ctx context.Context) []events.Event {
	pending := w.gw.Stats(ctx).PendingRequests

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.primed && pending == w.last {
		return nil
	}
	w.primed = true
	w.last = pending
	return []events.Event{{
		Kind:    "leave-pending",
		Message: fmt.Sprintf("pending leave requests: %d", pending),
		At:      time.Now(),
	}}
}
