package domain

import "encoding/json"

// EmployeePage is one page of a paged employee search.
type EmployeePage struct {
	Content       []Employee `json:"content"`
	Page          int        `json:"page"`
	Size          int        `json:"size"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
	HasNext       bool       `json:"hasNext"`
	HasPrevious   bool       `json:"hasPrevious"`
}

// EmptyPage is the page a failed search collapses to: zero counts, no
// navigation, the requested size preserved.
func EmptyPage(size int) EmployeePage {
	return EmployeePage{Content: []Employee{}, Size: size}
}

// employeePageWire tolerates the field-name drift seen across backend
// versions: "number" vs "page" for the page index and "totalElements" vs
// "totalItems" for the total count. hasNext/hasPrevious are derived when
// the backend omits them.
type employeePageWire struct {
	Content       []Employee `json:"content"`
	Number        *int       `json:"number"`
	Page          *int       `json:"page"`
	Size          int        `json:"size"`
	TotalElements *int64     `json:"totalElements"`
	TotalItems    *int64     `json:"totalItems"`
	TotalPages    int        `json:"totalPages"`
	HasNext       *bool      `json:"hasNext"`
	HasPrevious   *bool      `json:"hasPrevious"`
}

func (p *EmployeePage) UnmarshalJSON(b []byte) error {
	var w employeePageWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	out := EmployeePage{
		Content:    w.Content,
		Size:       w.Size,
		TotalPages: w.TotalPages,
	}
	if out.Content == nil {
		out.Content = []Employee{}
	}

	switch {
	case w.Number != nil:
		out.Page = *w.Number
	case w.Page != nil:
		out.Page = *w.Page
	}

	switch {
	case w.TotalElements != nil:
		out.TotalElements = *w.TotalElements
	case w.TotalItems != nil:
		out.TotalElements = *w.TotalItems
	}

	if w.HasNext != nil {
		out.HasNext = *w.HasNext
	} else {
		out.HasNext = out.Page+1 < out.TotalPages
	}
	if w.HasPrevious != nil {
		out.HasPrevious = *w.HasPrevious
	} else {
		out.HasPrevious = out.Page > 0
	}

	*p = out
	return nil
}
