package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserhop/internal/games/laserhop"
	"github.com/vovakirdan/laserhop/internal/storage"
)

func TestGameIDForMode(t *testing.T) {
	tests := []struct {
		mode    string
		want    string
		wantErr bool
	}{
		{"", laserhop.IDCampaign, false},
		{"campaign", laserhop.IDCampaign, false},
		{"Endless", laserhop.IDEndless, false},
		{laserhop.IDEndless, laserhop.IDEndless, false},
		{"arcade", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, err := gameIDForMode(tt.mode)
			if (err != nil) != tt.wantErr {
				t.Fatalf("gameIDForMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("gameIDForMode(%q) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	var db, level string
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&db, "db", "default.db", "")
	cmd.Flags().StringVar(&level, "log-level", "info", "")

	t.Setenv("LASERHOP_DB", "/tmp/env.db")
	t.Setenv("LASERHOP_LOG_LEVEL", "debug")
	if err := cmd.Flags().Set("log-level", "warn"); err != nil {
		t.Fatal(err)
	}

	if err := applyEnv(cmd); err != nil {
		t.Fatalf("applyEnv() failed: %v", err)
	}
	if db != "/tmp/env.db" {
		t.Errorf("db = %q, want the env value", db)
	}
	if level != "warn" {
		t.Errorf("log-level = %q, an explicit flag should win", level)
	}
}

func TestPrintRecent(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	var buf bytes.Buffer
	if err := printRecent(&buf, store, 10); err != nil {
		t.Fatalf("printRecent() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs recorded yet.") {
		t.Errorf("empty output = %q", buf.String())
	}

	store.SaveRun(storage.Run{GameID: laserhop.IDCampaign, Player: "ann", Score: 3, Level: 2, Reason: "hazard"})
	store.SaveRun(storage.Run{GameID: laserhop.IDEndless, Player: "bea", Score: 9, Level: 5, Reason: "laser"})

	buf.Reset()
	if err := printRecent(&buf, store, 1); err != nil {
		t.Fatalf("printRecent() failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Laser Hop (Endless)") || !strings.Contains(out, "bea") {
		t.Errorf("output should list the newest run: %q", out)
	}
	if strings.Contains(out, "ann") {
		t.Errorf("limit 1 should hide the older run: %q", out)
	}
}
