// Package form holds the employee form controller: create/edit mode,
// validation, fallback/remote reference-list reconciliation, and submit
// error mapping.
package form

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"ems-admin/internal/domain"
	"ems-admin/internal/httpx"
	"ems-admin/internal/phone"
	"ems-admin/internal/refdata"
)

// Gateway is the slice of the employee gateway the form needs.
type Gateway interface {
	Departments(ctx context.Context) []string
	Positions(ctx context.Context) []string
	Create(ctx context.Context, emp domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, id int64, emp domain.Employee) (*domain.Employee, error)
}

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Fields is the raw form input. Salary stays a string until submit so the
// controller can validate what the user actually typed.
type Fields struct {
	FirstName   string
	LastName    string
	Email       string
	CountryCode string
	PhoneNumber string
	Department  string
	Position    string
	Salary      string
}

var (
	ErrInvalidForm    = errors.New("please fill all required fields correctly")
	ErrDuplicateEmail = errors.New("an employee with this email already exists")
	ErrSessionExpired = errors.New("your session has expired, please log in again")
)

var (
	nameRe   = regexp.MustCompile(`^[A-Za-z ]{2,50}$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^[0-9]{8,15}$`)
	salaryRe = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)
)

// Controller drives one open form instance. Mode is fixed at construction
// and never changes.
type Controller struct {
	gw     Gateway
	logout func()

	mode Mode
	id   *int64

	mu          sync.Mutex
	fields      Fields
	touched     map[string]bool
	departments []string
	positions   []string
	loading     bool
	pending     int
	loadDone    chan struct{}
	disposed    bool
	closed      bool
	saved       *domain.Employee
}

// New builds a form controller. A non-nil existing record selects edit
// mode and preloads the fields; nil selects create mode. logout runs when
// the backend reports an expired session and may be nil.
func New(gw Gateway, logout func(), existing *domain.Employee) *Controller {
	c := &Controller{
		gw:      gw,
		logout:  logout,
		mode:    ModeCreate,
		touched: map[string]bool{},
		fields:  Fields{CountryCode: refdata.DefaultCountryCode},
	}
	if existing != nil {
		c.mode = ModeEdit
		c.id = existing.ID
		c.preload(*existing)
	}
	return c
}

// preload decomposes an existing record into form fields, tolerating
// missing optional values.
func (c *Controller) preload(emp domain.Employee) {
	code, local := phone.Split(emp.PhoneNumber, refdata.CountryCodes())
	if emp.CountryCode != "" {
		if _, ok := refdata.LookupCountry(emp.CountryCode); ok {
			code = emp.CountryCode
		}
	}
	c.fields = Fields{
		FirstName:   emp.FirstName,
		LastName:    emp.LastName,
		Email:       emp.Email,
		CountryCode: code,
		PhoneNumber: local,
		Department:  emp.Department,
		Position:    emp.Position,
		Salary:      strconv.FormatFloat(emp.Salary, 'f', -1, 64),
	}
}

func (c *Controller) Mode() Mode { return c.mode }

// Load seeds the reference lists with the fallback data synchronously,
// then asks the gateway for the authoritative lists in the background.
// A fetched list replaces the fallback only when non-empty. The loading
// flag clears exactly once, after both fetches complete in any order.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.departments = refdata.FallbackDepartments()
	c.positions = refdata.FallbackPositions()
	c.loading = true
	c.pending = 2
	c.loadDone = make(chan struct{})
	c.mu.Unlock()

	go func() {
		c.applyList(&c.departments, c.gw.Departments(ctx))
	}()
	go func() {
		c.applyList(&c.positions, c.gw.Positions(ctx))
	}()
}

func (c *Controller) applyList(target *[]string, list []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.disposed && len(list) > 0 {
		*target = list
	}
	c.pending--
	if c.pending == 0 {
		c.loading = false
		close(c.loadDone)
	}
}

// LoadDone reports completion of the background reference fetches. Nil
// before Load is called.
func (c *Controller) LoadDone() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadDone
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) Departments() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.departments))
	copy(out, c.departments)
	return out
}

func (c *Controller) Positions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.positions))
	copy(out, c.positions)
	return out
}

func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// SetFields replaces the raw input wholesale (the UI binding pushes the
// full field set on every change).
func (c *Controller) SetFields(f Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = f
}

func (c *Controller) Touched(field string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched[field]
}

// Validate checks the current input and returns field-keyed issues. It
// marks every field touched so messages render.
func (c *Controller) Validate() map[string]string {
	c.mu.Lock()
	f := c.fields
	for _, name := range []string{"firstName", "lastName", "email", "phoneNumber", "department", "position", "salary"} {
		c.touched[name] = true
	}
	c.mu.Unlock()

	issues := map[string]string{}
	if !nameRe.MatchString(strings.TrimSpace(f.FirstName)) {
		issues["firstName"] = "first name must be 2-50 letters"
	}
	if !nameRe.MatchString(strings.TrimSpace(f.LastName)) {
		issues["lastName"] = "last name must be 2-50 letters"
	}
	if !emailRe.MatchString(strings.TrimSpace(f.Email)) {
		issues["email"] = "a valid email address is required"
	}
	if !phoneRe.MatchString(f.PhoneNumber) {
		issues["phoneNumber"] = "phone must be 8-15 digits"
	}
	if strings.TrimSpace(f.Department) == "" {
		issues["department"] = "department is required"
	}
	if strings.TrimSpace(f.Position) == "" {
		issues["position"] = "position is required"
	}
	if !salaryRe.MatchString(strings.TrimSpace(f.Salary)) {
		issues["salary"] = "salary must be a number with at most 2 decimals"
	} else if v, err := strconv.ParseFloat(strings.TrimSpace(f.Salary), 64); err != nil || v > 1_000_000 {
		issues["salary"] = "salary must be between 0 and 1,000,000"
	}
	return issues
}

// Submit validates, assembles the canonical record, and calls the gateway.
// Validation failures never reach the network. On success the form closes
// and the server's record is returned; 409 leaves the form open.
func (c *Controller) Submit(ctx context.Context) (*domain.Employee, error) {
	if issues := c.Validate(); len(issues) > 0 {
		return nil, ErrInvalidForm
	}

	c.mu.Lock()
	f := c.fields
	disposed := c.disposed
	c.mu.Unlock()
	if disposed {
		return nil, errors.New("form is closed")
	}

	salary, _ := strconv.ParseFloat(strings.TrimSpace(f.Salary), 64)
	emp := domain.Employee{
		ID:          c.id,
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Email:       strings.ToLower(strings.TrimSpace(f.Email)),
		PhoneNumber: phone.Join(f.CountryCode, f.PhoneNumber),
		CountryCode: f.CountryCode,
		Department:  strings.TrimSpace(f.Department),
		Position:    strings.TrimSpace(f.Position),
		Salary:      salary,
	}

	var saved *domain.Employee
	var err error
	if c.mode == ModeEdit && c.id != nil {
		saved, err = c.gw.Update(ctx, *c.id, emp)
	} else {
		saved, err = c.gw.Create(ctx, emp)
	}
	if err != nil {
		return nil, c.mapSubmitError(err)
	}

	c.mu.Lock()
	if !c.disposed {
		c.closed = true
		c.saved = saved
	}
	c.mu.Unlock()
	return saved, nil
}

func (c *Controller) mapSubmitError(err error) error {
	switch httpx.StatusOf(err) {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidForm, serverMessageOr(err, "the server rejected the submitted data"))
	case http.StatusConflict:
		return ErrDuplicateEmail
	case http.StatusUnauthorized:
		if c.logout != nil {
			c.logout()
		}
		return ErrSessionExpired
	}
	if msg := serverMessageOr(err, ""); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("save failed: %w", err)
}

func serverMessageOr(err error, def string) string {
	var herr *httpx.HTTPError
	if errors.As(err, &herr) {
		if msg := herr.ServerMessage(); msg != "" {
			return msg
		}
	}
	return def
}

// Cancel closes the form without touching the gateway.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// Closed reports whether the form has finished, and with what record on a
// successful save.
func (c *Controller) Closed() (bool, *domain.Employee) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed, c.saved
}

// Dispose detaches the controller: late async completions become no-ops.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
}
