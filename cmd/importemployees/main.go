// Command importemployees previews a bulk-import file (CSV or XLSX),
// reports per-row validation, and optionally applies the valid rows.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ems-admin/internal/auth"
	"ems-admin/internal/config"
	"ems-admin/internal/domain"
	"ems-admin/internal/gateway"
	"ems-admin/internal/importer"
)

func main() {
	var (
		file     = flag.String("file", "", "import file (.csv or .xlsx)")
		limit    = flag.Int("limit", 0, "preview at most N rows (0 = all)")
		apply    = flag.Bool("apply", false, "submit the valid rows after preview")
		template = flag.String("template", "", "write the CSV template to this path and exit")
	)
	flag.Parse()

	if *template != "" {
		if err := os.WriteFile(*template, importer.Template(), 0o644); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote template to %s", *template)
		return
	}
	if *file == "" {
		log.Fatal("-file is required (or -template)")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	preview, err := loadPreview(*file, *limit)
	if err != nil {
		log.Fatal(err)
	}

	for _, row := range preview.Rows {
		if row.Valid() {
			continue
		}
		log.Printf("line %d: %s (%s)", row.Line, strings.Join(row.Errors, "; "), row.Employee.Email)
	}
	log.Printf("preview: %d valid, %d invalid", preview.Valid, preview.Invalid)

	if !*apply {
		return
	}
	if preview.Valid == 0 {
		log.Fatal("nothing to apply")
	}

	tokens := auth.NewMemory(cfg.AuthToken)
	gw := gateway.NewEmployees(cfg.APIBaseURL, tokens)

	existing := fetchAll(ctx, gw, cfg.PageSize)
	creates, updates := importer.Reconcile(preview.Rows, existing)
	log.Printf("applying %d creates, %d updates", len(creates), len(updates))

	errs := importer.Submit(ctx, gw, creates, updates)
	for _, err := range errs {
		log.Printf("WARN: %v", err)
	}
	log.Printf("done: %d rows applied, %d failed", len(creates)+len(updates)-len(errs), len(errs))
}

func loadPreview(file string, limit int) (importer.Preview, error) {
	if strings.EqualFold(filepath.Ext(file), ".xlsx") {
		return importer.PreviewXLSX(file, limit)
	}
	f, err := os.Open(file)
	if err != nil {
		return importer.Preview{}, err
	}
	defer f.Close()
	return importer.PreviewCSV(f, limit)
}

func fetchAll(ctx context.Context, gw *gateway.Employees, pageSize int) []domain.Employee {
	var all []domain.Employee
	for page := 0; ; page++ {
		result := gw.Search(ctx, page, pageSize, domain.SearchCriteria{})
		all = append(all, result.Content...)
		if !result.HasNext || len(result.Content) == 0 {
			break
		}
	}
	return all
}
