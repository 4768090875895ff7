package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"ems-admin/internal/auth"
	"ems-admin/internal/domain"
	"ems-admin/internal/httpx"
	"ems-admin/internal/refdata"
)

func newTestEmployees(t *testing.T, h http.Handler) (*Employees, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	g := NewEmployees(srv.URL, auth.NewMemory("test-token"))
	g.HTTP = srv.Client()
	g.Retry = httpx.NoRetry()
	return g, srv
}

func newTestLeave(t *testing.T, h http.Handler) *Leave {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	g := NewLeave(srv.URL, auth.NewMemory("test-token"))
	g.HTTP = srv.Client()
	g.Retry = httpx.NoRetry()
	return g
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestDepartmentsFromBackend(t *testing.T) {
	r := chi.NewRouter()
	var gotAuth string
	r.Get("/employees/departments", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		writeJSON(w, []string{"Engineering", "Design"})
	})
	g, _ := newTestEmployees(t, r)

	got := g.Departments(context.Background())
	if len(got) != 2 || got[0] != "Engineering" {
		t.Fatalf("unexpected departments %v", got)
	}
	if gotAuth != "" {
		t.Errorf("reference read should not carry a credential, got %q", gotAuth)
	}
}

func TestDepartmentsFallback(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"empty list": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, []string{})
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Get("/employees/departments", h)
			g, _ := newTestEmployees(t, r)

			got := g.Departments(context.Background())
			want := refdata.FallbackDepartments()
			if len(got) != len(want) || got[0] != want[0] {
				t.Fatalf("expected fallback list, got %v", got)
			}
		})
	}
}

func TestPositionsFallbackOnUnreachableBackend(t *testing.T) {
	g := NewEmployees("http://127.0.0.1:1", auth.NewMemory(""))
	g.Retry = httpx.NoRetry()

	got := g.Positions(context.Background())
	if len(got) != len(refdata.FallbackPositions()) {
		t.Fatalf("expected fallback positions, got %v", got)
	}
}

func TestSearchQueryAndPaging(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/employees", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("page") != "2" || q.Get("size") != "10" {
			t.Errorf("unexpected paging params %v", q)
		}
		if q.Get("search") != "smith" || q.Get("department") != "IT" {
			t.Errorf("unexpected filter params %v", q)
		}
		if q.Get("minSalary") != "50000" {
			t.Errorf("unexpected minSalary %q", q.Get("minSalary"))
		}
		if q.Has("position") || q.Has("maxSalary") {
			t.Error("empty criteria must be omitted from the query")
		}
		writeJSON(w, map[string]any{
			"content":       []map[string]any{{"id": 1, "firstName": "Jane"}},
			"number":        2,
			"size":          10,
			"totalElements": 21,
			"totalPages":    3,
		})
	})
	g, _ := newTestEmployees(t, r)

	page := g.Search(context.Background(), 2, 10, domain.SearchCriteria{
		SearchTerm: "smith",
		Department: "IT",
		MinSalary:  50000,
	})
	if page.TotalElements != 21 || page.Page != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if len(page.Content) != 1 || page.Content[0].FirstName != "Jane" {
		t.Fatalf("unexpected content %+v", page.Content)
	}
	if page.HasNext != false {
		t.Error("page 2 of 3 is the last page")
	}
	if page.HasPrevious != true {
		t.Error("page 2 has previous pages")
	}
}

func TestSearchCollapsesErrorsToEmptyPage(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/employees", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	g, _ := newTestEmployees(t, r)

	page := g.Search(context.Background(), 0, 10, domain.SearchCriteria{})
	if page.TotalElements != 0 || len(page.Content) != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
	if page.Content == nil {
		t.Fatal("content must be an empty slice, not nil")
	}
	if page.Size != 10 {
		t.Errorf("empty page keeps the requested size, got %d", page.Size)
	}
}

func TestCreateSendsCredentialAndIdempotencyKey(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/employees", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing bearer, got %q", req.Header.Get("Authorization"))
		}
		if req.Header.Get("Idempotency-Key") == "" {
			t.Error("missing idempotency key")
		}
		if ct := req.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var emp domain.Employee
		if err := json.NewDecoder(req.Body).Decode(&emp); err != nil {
			t.Fatal(err)
		}
		id := int64(7)
		emp.ID = &id
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, emp)
	})
	g, _ := newTestEmployees(t, r)

	created, err := g.Create(context.Background(), domain.Employee{
		FirstName: "Jane", LastName: "Doe", Email: "jane.doe@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == nil || *created.ID != 7 {
		t.Fatalf("expected assigned id 7, got %+v", created)
	}
}

func TestCreateConflictPropagatesStatusAndMessage(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/employees", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		writeJSON(w, map[string]string{"message": "Email already in use"})
	})
	g, _ := newTestEmployees(t, r)

	_, err := g.Create(context.Background(), domain.Employee{Email: "dup@example.com"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if httpx.StatusOf(err) != http.StatusConflict {
		t.Fatalf("expected 409, got %d", httpx.StatusOf(err))
	}
	var herr *httpx.HTTPError
	if !errors.As(err, &herr) || herr.ServerMessage() != "Email already in use" {
		t.Fatalf("expected server message, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	r := chi.NewRouter()
	r.Put("/employees/{id}", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") != "5" {
			t.Errorf("unexpected id %s", chi.URLParam(req, "id"))
		}
		var emp domain.Employee
		_ = json.NewDecoder(req.Body).Decode(&emp)
		writeJSON(w, emp)
	})
	var deleted string
	r.Delete("/employees/{id}", func(w http.ResponseWriter, req *http.Request) {
		deleted = chi.URLParam(req, "id")
		w.WriteHeader(http.StatusNoContent)
	})
	g, _ := newTestEmployees(t, r)

	if _, err := g.Update(context.Background(), 5, domain.Employee{FirstName: "Max"}); err != nil {
		t.Fatal(err)
	}
	if err := g.Delete(context.Background(), 9); err != nil {
		t.Fatal(err)
	}
	if deleted != "9" {
		t.Fatalf("expected delete of 9, got %q", deleted)
	}
}

func TestBulkDelete(t *testing.T) {
	r := chi.NewRouter()
	var got struct {
		IDs []int64 `json:"ids"`
	}
	r.Post("/employees/bulk/delete", func(w http.ResponseWriter, req *http.Request) {
		if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	g, _ := newTestEmployees(t, r)

	if err := g.BulkDelete(context.Background(), []int64{3, 1, 4}); err != nil {
		t.Fatal(err)
	}
	if len(got.IDs) != 3 || got.IDs[2] != 4 {
		t.Fatalf("unexpected ids %v", got.IDs)
	}
}

func TestEmailExists(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/employees/check-email", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, req.URL.Query().Get("email") == "taken@example.com")
	})
	g, _ := newTestEmployees(t, r)

	if !g.EmailExists(context.Background(), "taken@example.com") {
		t.Error("expected true for taken email")
	}
	if g.EmailExists(context.Background(), "free@example.com") {
		t.Error("expected false for free email")
	}
}

func TestEmailExistsFalseOnError(t *testing.T) {
	g := NewEmployees("http://127.0.0.1:1", auth.NewMemory(""))
	g.Retry = httpx.NoRetry()
	if g.EmailExists(context.Background(), "any@example.com") {
		t.Error("a failed check must not report the email as taken")
	}
}

func TestExportCSVDownloads(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/export/employees/csv", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("ID,First Name\n1,Jane\n"))
	})
	g, _ := newTestEmployees(t, r)

	data, err := g.ExportCSV(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "ID,First Name") {
		t.Fatalf("unexpected export %q", data)
	}
}

func TestExportWrapsFailure(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/export/employees/excel", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	g, _ := newTestEmployees(t, r)

	_, err := g.ExportExcel(context.Background())
	if err == nil || !strings.Contains(err.Error(), "export excel failed") {
		t.Fatalf("expected wrapped export error, got %v", err)
	}
}

func TestLeaveRequestsAndStatusFilter(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/leave/requests", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Query().Get("status") != "PENDING" {
			t.Errorf("expected status filter, got %v", req.URL.Query())
		}
		writeJSON(w, domain.LeavePage{
			Content:       []domain.LeaveRequest{{EmployeeID: 1, LeaveType: domain.LeaveVacation, Status: domain.LeavePending}},
			TotalElements: 1,
		})
	})
	g := newTestLeave(t, r)

	page := g.Requests(context.Background(), 0, 10, domain.LeavePending)
	if page.TotalElements != 1 || len(page.Content) != 1 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestLeaveReadsCollapseToDefaults(t *testing.T) {
	g := NewLeave("http://127.0.0.1:1", auth.NewMemory(""))
	g.Retry = httpx.NoRetry()
	ctx := context.Background()

	if page := g.Requests(ctx, 0, 10, ""); page.Content == nil || len(page.Content) != 0 {
		t.Errorf("expected empty page, got %+v", page)
	}
	if b := g.Balance(ctx, 42); b.VacationDays != 20 || b.EmployeeID != 42 {
		t.Errorf("expected default balance for employee 42, got %+v", b)
	}
	if p := g.Policy(ctx); p.MaxConsecutiveDays != 30 {
		t.Errorf("expected default policy, got %+v", p)
	}
	if s := g.Stats(ctx); s != (domain.LeaveStats{}) {
		t.Errorf("expected zero stats, got %+v", s)
	}
	if c := g.Calendar(ctx, "2026-08-01", "2026-08-31"); c == nil || len(c) != 0 {
		t.Errorf("expected empty calendar, got %v", c)
	}
}

func TestLeaveUpdateStatus(t *testing.T) {
	r := chi.NewRouter()
	var got map[string]string
	r.Put("/leave/requests/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		if chi.URLParam(req, "id") != "3" {
			t.Errorf("unexpected id %s", chi.URLParam(req, "id"))
		}
		_ = json.NewDecoder(req.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	})
	g := newTestLeave(t, r)

	if err := g.UpdateStatus(context.Background(), 3, domain.LeaveApproved, "enjoy"); err != nil {
		t.Fatal(err)
	}
	if got["status"] != domain.LeaveApproved || got["comments"] != "enjoy" {
		t.Fatalf("unexpected body %v", got)
	}
}

func TestLeaveRequestSubmit(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/leave/requests", func(w http.ResponseWriter, req *http.Request) {
		var lr domain.LeaveRequest
		if err := json.NewDecoder(req.Body).Decode(&lr); err != nil {
			t.Fatal(err)
		}
		id := int64(11)
		lr.ID = &id
		lr.Status = domain.LeavePending
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, lr)
	})
	g := newTestLeave(t, r)

	out, err := g.Request(context.Background(), domain.LeaveRequest{
		EmployeeID: 1, LeaveType: domain.LeaveSick,
		StartDate: "2026-09-01", EndDate: "2026-09-02", TotalDays: 2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.ID == nil || *out.ID != 11 || out.Status != domain.LeavePending {
		t.Fatalf("unexpected response %+v", out)
	}
}
