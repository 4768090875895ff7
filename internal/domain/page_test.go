package domain

import (
	"encoding/json"
	"testing"
)

func TestEmployeePageDecodesSpringShape(t *testing.T) {
	raw := `{
		"content": [{"id": 1, "firstName": "Jane"}],
		"number": 1,
		"size": 10,
		"totalElements": 25,
		"totalPages": 3
	}`
	var p EmployeePage
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatal(err)
	}
	if p.Page != 1 || p.TotalElements != 25 {
		t.Fatalf("unexpected page %+v", p)
	}
	if !p.HasNext || !p.HasPrevious {
		t.Errorf("page 1 of 3 has both neighbours, got next=%v prev=%v", p.HasNext, p.HasPrevious)
	}
}

func TestEmployeePageDecodesAlternateFieldNames(t *testing.T) {
	raw := `{
		"content": [],
		"page": 0,
		"size": 10,
		"totalItems": 4,
		"totalPages": 1,
		"hasNext": false,
		"hasPrevious": false
	}`
	var p EmployeePage
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatal(err)
	}
	if p.Page != 0 || p.TotalElements != 4 {
		t.Fatalf("unexpected page %+v", p)
	}
	if p.HasNext || p.HasPrevious {
		t.Error("explicit navigation flags must win over derivation")
	}
}

func TestEmployeePageNilContentBecomesEmptySlice(t *testing.T) {
	var p EmployeePage
	if err := json.Unmarshal([]byte(`{"totalElements": 0}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Content == nil {
		t.Fatal("content must never be nil after decode")
	}
}

func TestEmptyPage(t *testing.T) {
	p := EmptyPage(25)
	if p.Size != 25 || p.TotalElements != 0 || len(p.Content) != 0 {
		t.Fatalf("unexpected empty page %+v", p)
	}
	if p.HasNext || p.HasPrevious {
		t.Error("empty page has no navigation")
	}
}
