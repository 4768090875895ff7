// Package domain holds the canonical data model of the EMS admin client.
// The backend is the source of truth; these types are the one shape every
// gateway response and form submission maps through.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Employee is the canonical employee record. ID is nil until the backend
// has persisted the record. PhoneNumber is the combined wire form
// (country code + local digits); CountryCode repeats the prefix so the
// backend does not have to re-derive it.
type Employee struct {
	ID          *int64  `json:"id,omitempty"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	CountryCode string  `json:"countryCode,omitempty"`
	Department  string  `json:"department"`
	Position    string  `json:"position"`
	Salary      float64 `json:"salary"`
	HireDate    string  `json:"hireDate,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// salaryWire tolerates the salary arriving as either a JSON number or a
// numeric string, a drift seen across backend versions. An empty or null
// value decodes to 0.
type salaryWire float64

func (s *salaryWire) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*s = 0
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("salary %q: %w", raw, err)
		}
		*s = salaryWire(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = salaryWire(v)
	return nil
}

func (e *Employee) UnmarshalJSON(b []byte) error {
	type plain Employee
	aux := struct {
		Salary salaryWire `json:"salary"`
		*plain
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.Salary = float64(aux.Salary)
	return nil
}

// SearchCriteria is the optional filter set for paged employee search.
// Zero-valued fields are omitted from the outgoing query entirely.
type SearchCriteria struct {
	SearchTerm string
	Department string
	Position   string
	MinSalary  float64
	MaxSalary  float64
}

// IsZero reports whether no filter is set.
func (c SearchCriteria) IsZero() bool {
	return c == SearchCriteria{}
}

// EmployeeStats is the dashboard summary. Loosely-typed in the backend;
// modeled here with explicit fields and zero defaults.
type EmployeeStats struct {
	TotalEmployees   int     `json:"totalEmployees"`
	TotalDepartments int     `json:"totalDepartments"`
	AverageSalary    float64 `json:"averageSalary"`
	NewThisMonth     int     `json:"newThisMonth"`
}
