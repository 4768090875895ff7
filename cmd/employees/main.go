// Command employees searches the employee directory, prints the matching
// page, and can export the shown rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"ems-admin/internal/auth"
	"ems-admin/internal/config"
	"ems-admin/internal/devutil"
	"ems-admin/internal/domain"
	"ems-admin/internal/export"
	"ems-admin/internal/gateway"
	"ems-admin/internal/list"
)

func main() {
	var (
		search     = flag.String("search", "", "free-text search term")
		department = flag.String("department", "", "filter by department")
		position   = flag.String("position", "", "filter by position")
		minSalary  = flag.Float64("min-salary", 0, "minimum salary filter")
		maxSalary  = flag.Float64("max-salary", 0, "maximum salary filter")
		page       = flag.Int("page", 0, "page number (0-based)")
		size       = flag.Int("size", 0, "page size (default from EMS_PAGE_SIZE)")
		exportPath = flag.String("export", "", "export the shown rows as CSV to this path")
		stats      = flag.Bool("stats", false, "print the dashboard summary")
		verbose    = flag.Bool("v", false, "verbose row dumps")
	)
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *size <= 0 {
		*size = cfg.PageSize
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout*4)
	defer cancel()

	tokens := auth.NewMemory(cfg.AuthToken)
	gw := gateway.NewEmployees(cfg.APIBaseURL, tokens)

	ctl := list.New(gw, *size)
	ctl.Apply(ctx, domain.SearchCriteria{
		SearchTerm: *search,
		Department: *department,
		Position:   *position,
		MinSalary:  *minSalary,
		MaxSalary:  *maxSalary,
	})
	if *page > 0 {
		ctl.SetPage(ctx, *page)
	}

	result := ctl.Page()
	log.Printf("page %d/%d, %d employees total", result.Page+1, max(result.TotalPages, 1), result.TotalElements)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tDEPARTMENT\tPOSITION\tSALARY")
	for _, e := range result.Content {
		id := int64(0)
		if e.ID != nil {
			id = *e.ID
		}
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%.2f\n", id, e.FirstName, e.LastName, e.Email, e.Department, e.Position, e.Salary)
		if *verbose {
			log.Printf("row: %v", devutil.Pick(e, "id", "email", "phoneNumber", "hireDate", "createdAt"))
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}

	if *stats {
		s := gw.Stats(ctx)
		log.Printf("totals: employees=%d departments=%d avg-salary=%.2f", s.TotalEmployees, s.TotalDepartments, s.AverageSalary)
	}

	if *exportPath != "" {
		ctl.SelectAll()
		f, err := os.Create(*exportPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := ctl.ExportSelected(f, export.DefaultColumns()); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %d rows to %s", len(result.Content), *exportPath)
	}
}
