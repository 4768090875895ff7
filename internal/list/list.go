// Package list holds the employee list controller: paged search state,
// the bulk selection set, bulk delete, and export of selected rows.
package list

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"ems-admin/internal/domain"
	"ems-admin/internal/export"
)

// Gateway is the slice of the employee gateway the list needs.
type Gateway interface {
	Search(ctx context.Context, page, size int, criteria domain.SearchCriteria) domain.EmployeePage
	BulkDelete(ctx context.Context, ids []int64) error
}

var ErrNothingSelected = errors.New("no rows selected")

// Controller drives the list view. The selection set is rebuilt from
// scratch on every reload; it never survives a search.
type Controller struct {
	gw Gateway

	mu       sync.Mutex
	page     int
	size     int
	criteria domain.SearchCriteria
	current  domain.EmployeePage
	selected map[int64]bool
	disposed bool
}

func New(gw Gateway, pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Controller{
		gw:       gw,
		size:     pageSize,
		current:  domain.EmptyPage(pageSize),
		selected: map[int64]bool{},
	}
}

// Search reloads the current page. Any existing selection is dropped.
func (c *Controller) Search(ctx context.Context) {
	c.mu.Lock()
	page, size, criteria := c.page, c.size, c.criteria
	c.mu.Unlock()

	result := c.gw.Search(ctx, page, size, criteria)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.current = result
	c.selected = map[int64]bool{}
}

// Apply sets new filter criteria, resets to the first page, and reloads.
func (c *Controller) Apply(ctx context.Context, criteria domain.SearchCriteria) {
	c.mu.Lock()
	c.criteria = criteria
	c.page = 0
	c.mu.Unlock()
	c.Search(ctx)
}

// Clear drops the criteria and selection, resets to the first page, and
// reloads.
func (c *Controller) Clear(ctx context.Context) {
	c.Apply(ctx, domain.SearchCriteria{})
}

// SetPage navigates to page p and reloads.
func (c *Controller) SetPage(ctx context.Context, p int) {
	c.mu.Lock()
	if p < 0 {
		p = 0
	}
	c.page = p
	c.mu.Unlock()
	c.Search(ctx)
}

func (c *Controller) Page() domain.EmployeePage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) Criteria() domain.SearchCriteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// Toggle flips one row's membership in the selection set.
func (c *Controller) Toggle(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected[id] {
		delete(c.selected, id)
	} else {
		c.selected[id] = true
	}
}

func (c *Controller) IsSelected(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected[id]
}

// SelectAll is a full toggle over the loaded rows: if every row is
// already selected it clears the set, otherwise it selects them all.
func (c *Controller) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := c.loadedIDs()
	if len(ids) == 0 {
		return
	}
	all := true
	for _, id := range ids {
		if !c.selected[id] {
			all = false
			break
		}
	}
	if all {
		c.selected = map[int64]bool{}
		return
	}
	for _, id := range ids {
		c.selected[id] = true
	}
}

func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = map[int64]bool{}
}

// Selected returns the selected ids in ascending order.
func (c *Controller) Selected() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, 0, len(c.selected))
	for id := range c.selected {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ToolbarVisible holds the invariant: visible exactly when the selection
// is non-empty.
func (c *Controller) ToolbarVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.selected) > 0
}

// BulkDelete removes the selected rows after confirmation. An empty
// selection is a no-op without prompting; a declined confirmation issues
// no network call. On failure the selection is kept so the user can
// retry; on success it is cleared and the page reloaded.
func (c *Controller) BulkDelete(ctx context.Context, confirm func(count int) bool) error {
	ids := c.Selected()
	if len(ids) == 0 {
		return nil
	}
	if confirm != nil && !confirm(len(ids)) {
		return nil
	}

	if err := c.gw.BulkDelete(ctx, ids); err != nil {
		return err
	}

	c.mu.Lock()
	disposed := c.disposed
	if !disposed {
		c.selected = map[int64]bool{}
	}
	c.mu.Unlock()
	if !disposed {
		c.Search(ctx)
	}
	return nil
}

// ExportSelected writes the selected rows as CSV, in page order, from the
// in-memory values. No network round-trip.
func (c *Controller) ExportSelected(w io.Writer, cols []export.Column) error {
	rows, err := c.selectedRows()
	if err != nil {
		return err
	}
	return export.WriteEmployeesCSV(w, cols, rows)
}

// ExportSelectedPDF writes the selected rows as a PDF table.
func (c *Controller) ExportSelectedPDF(w io.Writer, cols []export.Column) error {
	rows, err := c.selectedRows()
	if err != nil {
		return err
	}
	return export.WriteEmployeesPDF(w, cols, rows)
}

func (c *Controller) selectedRows() ([]domain.Employee, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var rows []domain.Employee
	for _, e := range c.current.Content {
		if e.ID != nil && c.selected[*e.ID] {
			rows = append(rows, e)
		}
	}
	if len(rows) == 0 {
		return nil, ErrNothingSelected
	}
	return rows, nil
}

func (c *Controller) loadedIDs() []int64 {
	var ids []int64
	for _, e := range c.current.Content {
		if e.ID != nil {
			ids = append(ids, *e.ID)
		}
	}
	return ids
}

// Dispose detaches the controller; late completions no longer mutate it.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
}
