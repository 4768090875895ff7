// Package export renders employee rows to the downloadable formats the
// admin offers: CSV built in-process and a simple tabular PDF.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"ems-admin/internal/domain"
	"ems-admin/internal/phone"
)

// Column is one exportable employee attribute.
type Column struct {
	Key   string
	Title string
	Value func(domain.Employee) string
}

var registry = []Column{
	{"id", "ID", func(e domain.Employee) string {
		if e.ID == nil {
			return ""
		}
		return strconv.FormatInt(*e.ID, 10)
	}},
	{"firstName", "First Name", func(e domain.Employee) string { return e.FirstName }},
	{"lastName", "Last Name", func(e domain.Employee) string { return e.LastName }},
	{"email", "Email", func(e domain.Employee) string { return e.Email }},
	{"phoneNumber", "Phone", func(e domain.Employee) string { return phone.Format(e.PhoneNumber) }},
	{"department", "Department", func(e domain.Employee) string { return e.Department }},
	{"position", "Position", func(e domain.Employee) string { return e.Position }},
	{"salary", "Salary", func(e domain.Employee) string {
		return strconv.FormatFloat(e.Salary, 'f', 2, 64)
	}},
	{"hireDate", "Hire Date", func(e domain.Employee) string { return e.HireDate }},
	{"createdAt", "Created At", func(e domain.Employee) string { return e.CreatedAt }},
}

// Columns returns the full column registry in display order.
func Columns() []Column {
	out := make([]Column, len(registry))
	copy(out, registry)
	return out
}

// DefaultColumns is the set the export dialog preselects.
func DefaultColumns() []Column {
	return ColumnsFor([]string{"id", "firstName", "lastName", "email", "phoneNumber", "department", "position", "salary"})
}

// ColumnsFor resolves keys against the registry, keeping registry order
// and dropping unknown keys.
func ColumnsFor(keys []string) []Column {
	want := map[string]bool{}
	for _, k := range keys {
		want[k] = true
	}
	var out []Column
	for _, c := range registry {
		if want[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// WriteEmployeesCSV writes a header row and one record per employee.
// encoding/csv quotes fields containing the delimiter.
func WriteEmployeesCSV(w io.Writer, cols []Column, employees []domain.Employee) error {
	if len(cols) == 0 {
		cols = DefaultColumns()
	}
	cw := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Title
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(cols))
	for _, e := range employees {
		for i, c := range cols {
			row[i] = c.Value(e)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEmployeesPDF renders the rows as a landscape table.
func WriteEmployeesPDF(w io.Writer, cols []Column, employees []domain.Employee) error {
	if len(cols) == 0 {
		cols = DefaultColumns()
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Employees")
	pdf.Ln(12)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(cols))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(colW, 8, c.Title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, e := range employees {
		for _, c := range cols {
			pdf.CellFormat(colW, 7, c.Value(e), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// SaveLocal writes an export payload under dir and returns the full path.
func SaveLocal(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
