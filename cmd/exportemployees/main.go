// Command exportemployees produces an employee export file, either by
// downloading the backend-rendered CSV/Excel or by building a CSV/PDF
// locally from the full directory, and optionally ships it via SFTP.
package main

import (
	"bytes"
	"context"
	"flag"
	"log"
	"path/filepath"
	"strings"
	"time"

	"ems-admin/internal/auth"
	"ems-admin/internal/config"
	"ems-admin/internal/domain"
	"ems-admin/internal/export"
	"ems-admin/internal/gateway"
	"ems-admin/internal/sftpclient"
)

func main() {
	var (
		format     = flag.String("format", "csv", "export format: csv, excel (backend) or pdf (local)")
		source     = flag.String("source", "backend", "csv source: backend download or local build")
		outName    = flag.String("out", "", "output file name (default employees-<date>.<ext>)")
		columns    = flag.String("columns", "", "comma-separated column keys for local builds")
		maxPages   = flag.Int("max-pages", 0, "page cap when building locally (0 = all)")
		uploadSFTP = flag.Bool("sftp", false, "upload the export via SFTP")
	)
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	rootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	tokens := auth.NewMemory(cfg.AuthToken)
	gw := gateway.NewEmployees(cfg.APIBaseURL, tokens)

	name := *outName
	if name == "" {
		ext := *format
		if ext == "excel" {
			ext = "xlsx"
		}
		name = "employees-" + time.Now().Format("2006-01-02") + "." + ext
	}

	var data []byte
	var err error
	switch {
	case *format == "excel":
		data, err = gw.ExportExcel(rootCtx)
	case *format == "csv" && *source == "backend":
		data, err = gw.ExportCSV(rootCtx)
	case *format == "csv" || *format == "pdf":
		data, err = buildLocal(rootCtx, gw, *format, parseColumns(*columns), cfg.PageSize, *maxPages)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatal(err)
	}

	path, err := export.SaveLocal(cfg.ExportDir, name, data)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d bytes to %s", len(data), path)

	if *uploadSFTP {
		upCtx, upCancel := context.WithTimeout(rootCtx, 5*time.Minute)
		defer upCancel()

		upCfg := sftpclient.FromAppConfig(cfg)
		if err := sftpclient.UploadFile(upCtx, upCfg, path, filepath.Base(path)); err != nil {
			log.Fatal(err)
		}
		log.Printf("uploaded to sftp://%s:%d%s/%s", upCfg.Host, upCfg.Port, upCfg.RemoteDir, filepath.Base(path))
	}
}

func parseColumns(s string) []export.Column {
	if strings.TrimSpace(s) == "" {
		return export.DefaultColumns()
	}
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	cols := export.ColumnsFor(keys)
	if len(cols) == 0 {
		return export.DefaultColumns()
	}
	return cols
}

// buildLocal pulls every page of the directory and renders it in-process.
func buildLocal(ctx context.Context, gw *gateway.Employees, format string, cols []export.Column, pageSize, maxPages int) ([]byte, error) {
	var all []domain.Employee
	for page := 0; ; page++ {
		if maxPages > 0 && page >= maxPages {
			break
		}
		result := gw.Search(ctx, page, pageSize, domain.SearchCriteria{})
		all = append(all, result.Content...)
		if !result.HasNext || len(result.Content) == 0 {
			break
		}
	}
	log.Printf("fetched %d employees for local %s build", len(all), format)

	var buf bytes.Buffer
	var err error
	if format == "pdf" {
		err = export.WriteEmployeesPDF(&buf, cols, all)
	} else {
		err = export.WriteEmployeesCSV(&buf, cols, all)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
