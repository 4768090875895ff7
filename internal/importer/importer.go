// Package importer parses employee bulk-import files (CSV and XLSX),
// validates them row by row for the preview dialog, and submits the
// valid rows through the gateway.
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"ems-admin/internal/concurrency"
	"ems-admin/internal/domain"
)

// Gateway is the slice of the employee gateway the importer needs.
type Gateway interface {
	Create(ctx context.Context, emp domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, id int64, emp domain.Employee) (*domain.Employee, error)
}

// Row is one parsed import line with its validation outcome.
type Row struct {
	Line     int
	Employee domain.Employee
	Errors   []string
}

func (r Row) Valid() bool { return len(r.Errors) == 0 }

// Preview is what the import dialog shows before submission.
type Preview struct {
	Rows    []Row
	Valid   int
	Invalid int
}

var templateHeader = []string{"First Name", "Last Name", "Email", "Phone", "Department", "Position", "Salary"}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Template returns the CSV template offered for download, header plus one
// example line.
func Template() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(templateHeader)
	_ = w.Write([]string{"Jane", "Doe", "jane.doe@example.com", "+15551234567", "IT", "Software Engineer", "50000"})
	w.Flush()
	return buf.Bytes()
}

// PreviewCSV parses and validates up to limit data rows (0 = all). The
// first record is treated as a header when it matches the template.
func PreviewCSV(r io.Reader, limit int) (Preview, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Preview{}, fmt.Errorf("parse csv: %w", err)
	}
	return previewRecords(records, limit), nil
}

// PreviewXLSX reads the first sheet of an Excel workbook and validates it
// like PreviewCSV.
func PreviewXLSX(path string, limit int) (Preview, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Preview{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Preview{}, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return Preview{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return previewRecords(records, limit), nil
}

func previewRecords(records [][]string, limit int) Preview {
	var p Preview
	start := 0
	if len(records) > 0 && isHeader(records[0]) {
		start = 1
	}
	for i := start; i < len(records); i++ {
		if limit > 0 && len(p.Rows) >= limit {
			break
		}
		if blank(records[i]) {
			continue
		}
		row := parseRow(i+1, records[i])
		if row.Valid() {
			p.Valid++
		} else {
			p.Invalid++
		}
		p.Rows = append(p.Rows, row)
	}
	return p
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "first name" || first == "firstname"
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRow(line int, record []string) Row {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	row := Row{Line: line}
	row.Employee = domain.Employee{
		FirstName:   field(0),
		LastName:    field(1),
		Email:       strings.ToLower(field(2)),
		PhoneNumber: field(3),
		Department:  field(4),
		Position:    field(5),
	}

	if row.Employee.FirstName == "" {
		row.Errors = append(row.Errors, "first name is required")
	}
	if row.Employee.LastName == "" {
		row.Errors = append(row.Errors, "last name is required")
	}
	if !emailRe.MatchString(row.Employee.Email) {
		row.Errors = append(row.Errors, "a valid email is required")
	}
	if row.Employee.Department == "" {
		row.Errors = append(row.Errors, "department is required")
	}
	if s := field(6); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			row.Errors = append(row.Errors, "salary must be a non-negative number")
		} else {
			row.Employee.Salary = v
		}
	}
	return row
}

// Reconcile splits the valid rows into creates and updates by matching
// emails (case-insensitive) against the existing records. Matched rows
// carry the existing id so the gateway issues an update.
func Reconcile(rows []Row, existing []domain.Employee) (creates, updates []domain.Employee) {
	byEmail := map[string]domain.Employee{}
	for _, e := range existing {
		key := strings.ToLower(strings.TrimSpace(e.Email))
		if key == "" {
			continue
		}
		byEmail[key] = e
	}

	for _, row := range rows {
		if !row.Valid() {
			continue
		}
		emp := row.Employee
		if current, ok := byEmail[emp.Email]; ok && current.ID != nil {
			emp.ID = current.ID
			updates = append(updates, emp)
			continue
		}
		creates = append(creates, emp)
	}
	return creates, updates
}

// Submit pushes creates and updates through the gateway with a bounded
// worker pool. Per-row failures are collected, not fatal.
func Submit(ctx context.Context, gw Gateway, creates, updates []domain.Employee) []error {
	opts := concurrency.ParallelOptions{MaxWorkers: 5}

	errs := concurrency.ForEach(ctx, creates, opts, func(ctx context.Context, _ int, emp domain.Employee) error {
		if _, err := gw.Create(ctx, emp); err != nil {
			return fmt.Errorf("create %s: %w", emp.Email, err)
		}
		return nil
	})
	errs = append(errs, concurrency.ForEach(ctx, updates, opts, func(ctx context.Context, _ int, emp domain.Employee) error {
		if _, err := gw.Update(ctx, *emp.ID, emp); err != nil {
			return fmt.Errorf("update %s: %w", emp.Email, err)
		}
		return nil
	})...)
	return errs
}
