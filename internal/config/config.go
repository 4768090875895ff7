package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// EMS backend
	APIBaseURL     string
	AuthToken      string
	RequestTimeout time.Duration
	PageSize       int

	// Local export output
	ExportDir string

	// SFTP delivery of export files
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPInsecureIgnoreHostKey bool
}

func Load() Config {
	return Config{
		APIBaseURL:     getenv("EMS_API_BASE_URL", "http://localhost:8080/api"),
		AuthToken:      os.Getenv("EMS_AUTH_TOKEN"),
		RequestTimeout: getenvDuration("EMS_REQUEST_TIMEOUT", 30*time.Second),
		PageSize:       getenvInt("EMS_PAGE_SIZE", 10),

		ExportDir: getenv("EMS_EXPORT_DIR", "."),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOST_KEY", false),
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("EMS_API_BASE_URL is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("EMS_PAGE_SIZE must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("EMS_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
