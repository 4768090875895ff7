package sftpclient

import (
	"context"
	"strings"
	"testing"

	"ems-admin/internal/config"
)

func TestUploadRequiresCredentials(t *testing.T) {
	err := Upload(context.Background(), Config{}, strings.NewReader("x"), "out.csv")
	if err == nil || !strings.Contains(err.Error(), "SFTP_HOST") {
		t.Fatalf("expected a missing-credentials error, got %v", err)
	}
}

func TestUploadRequiresHostKeyOptIn(t *testing.T) {
	cfg := Config{Host: "drop.internal", User: "ems", Pass: "s3cret"}
	err := Upload(context.Background(), cfg, strings.NewReader("x"), "out.csv")
	if err == nil || !strings.Contains(err.Error(), "host key") {
		t.Fatalf("expected a host-key opt-in error, got %v", err)
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(config.Config{
		SFTPHost: "drop.internal", SFTPPort: 2022, SFTPUser: "ems",
		SFTPPass: "s3cret", SFTPDir: "/exports", SFTPInsecureIgnoreHostKey: true,
	})
	if cfg.Host != "drop.internal" || cfg.Port != 2022 || cfg.RemoteDir != "/exports" {
		t.Fatalf("unexpected mapping %+v", cfg)
	}
	if !cfg.InsecureIgnoreHostKey {
		t.Error("host key flag must carry over")
	}
}
