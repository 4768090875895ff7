package importer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/xuri/excelize/v2"

	"ems-admin/internal/domain"
)

const sampleCSV = `First Name,Last Name,Email,Phone,Department,Position,Salary
Jane,Doe,jane@ex.com,+15551234567,IT,Engineer,50000
,Smith,sam@ex.com,+15550000000,HR,Manager,60000
Max,Muster,not-an-email,+15551111111,IT,Engineer,
Ann,Lee,ANN@EX.COM,+15552222222,Finance,Analyst,abc
`

func TestPreviewCSV(t *testing.T) {
	p, err := PreviewCSV(strings.NewReader(sampleCSV), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Rows) != 4 {
		t.Fatalf("expected 4 data rows, got %d", len(p.Rows))
	}
	if p.Valid != 1 || p.Invalid != 3 {
		t.Fatalf("expected 1 valid / 3 invalid, got %d/%d", p.Valid, p.Invalid)
	}

	if !p.Rows[0].Valid() || p.Rows[0].Employee.Salary != 50000 {
		t.Errorf("row 1 should be valid: %+v", p.Rows[0])
	}
	if p.Rows[1].Valid() || !strings.Contains(p.Rows[1].Errors[0], "first name") {
		t.Errorf("row 2 must fail on first name: %+v", p.Rows[1])
	}
	if p.Rows[2].Valid() || !strings.Contains(p.Rows[2].Errors[0], "email") {
		t.Errorf("row 3 must fail on email: %+v", p.Rows[2])
	}
	if p.Rows[3].Valid() {
		t.Errorf("row 4 must fail on salary: %+v", p.Rows[3])
	}
	if p.Rows[3].Employee.Email != "ann@ex.com" {
		t.Errorf("emails must be lowercased, got %q", p.Rows[3].Employee.Email)
	}
}

func TestPreviewCSVLimit(t *testing.T) {
	p, err := PreviewCSV(strings.NewReader(sampleCSV), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Rows) != 2 {
		t.Fatalf("expected the preview limited to 2 rows, got %d", len(p.Rows))
	}
}

func TestPreviewCSVWithoutHeader(t *testing.T) {
	p, err := PreviewCSV(strings.NewReader("Jane,Doe,jane@ex.com,+15551234567,IT,Engineer,50000\n"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Rows) != 1 || !p.Rows[0].Valid() {
		t.Fatalf("headerless input must still parse: %+v", p.Rows)
	}
}

func TestPreviewXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"First Name", "Last Name", "Email", "Phone", "Department", "Position", "Salary"},
		{"Jane", "Doe", "jane@ex.com", "+15551234567", "IT", "Engineer", 50000},
		{"", "Smith", "sam@ex.com", "+15550000000", "HR", "Manager", 60000},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	p, err := PreviewXLSX(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Valid != 1 || p.Invalid != 1 {
		t.Fatalf("expected 1 valid / 1 invalid, got %d/%d", p.Valid, p.Invalid)
	}
}

func TestTemplateRoundTrips(t *testing.T) {
	p, err := PreviewCSV(strings.NewReader(string(Template())), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Rows) != 1 || !p.Rows[0].Valid() {
		t.Fatalf("the template's example row must validate: %+v", p.Rows)
	}
}

func TestReconcile(t *testing.T) {
	id := int64(3)
	existing := []domain.Employee{
		{ID: &id, Email: "Jane@Ex.com", FirstName: "Janet"},
	}
	rows := []Row{
		{Employee: domain.Employee{FirstName: "Jane", LastName: "Doe", Email: "jane@ex.com", Department: "IT"}},
		{Employee: domain.Employee{FirstName: "New", LastName: "Hire", Email: "new@ex.com", Department: "HR"}},
		{Employee: domain.Employee{Email: "broken"}, Errors: []string{"bad"}},
	}

	creates, updates := Reconcile(rows, existing)
	if len(creates) != 1 || creates[0].Email != "new@ex.com" {
		t.Fatalf("unexpected creates %+v", creates)
	}
	if len(updates) != 1 || updates[0].ID == nil || *updates[0].ID != 3 {
		t.Fatalf("matched rows must carry the existing id: %+v", updates)
	}
}

type stubGateway struct {
	mu      sync.Mutex
	created []string
	updated []int64
	failFor string
}

func (s *stubGateway) Create(ctx context.Context, emp domain.Employee) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if emp.Email == s.failFor {
		return nil, errors.New("rejected")
	}
	s.created = append(s.created, emp.Email)
	return &emp, nil
}

func (s *stubGateway) Update(ctx context.Context, id int64, emp domain.Employee) (*domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, id)
	return &emp, nil
}

func TestSubmitCollectsPerRowFailures(t *testing.T) {
	gw := &stubGateway{failFor: "bad@ex.com"}
	id := int64(9)
	creates := []domain.Employee{
		{Email: "ok@ex.com"}, {Email: "bad@ex.com"}, {Email: "also-ok@ex.com"},
	}
	updates := []domain.Employee{{ID: &id, Email: "upd@ex.com"}}

	errs := Submit(context.Background(), gw, creates, updates)
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "bad@ex.com") {
		t.Fatalf("expected one failure naming the row, got %v", errs)
	}
	if len(gw.created) != 2 {
		t.Errorf("the other creates must still land, got %v", gw.created)
	}
	if len(gw.updated) != 1 || gw.updated[0] != 9 {
		t.Errorf("unexpected updates %v", gw.updated)
	}
}
