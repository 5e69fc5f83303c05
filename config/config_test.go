package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Ledger.Path != "expenses.csv" {
		t.Errorf("Ledger.Path = %s, want expenses.csv", cfg.Ledger.Path)
	}
	if cfg.Report.Dir != "." {
		t.Errorf("Report.Dir = %s, want .", cfg.Report.Dir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
	}

	home, _ := os.UserHomeDir()
	if cfg.Organizer.Dir != filepath.Join(home, "Downloads") {
		t.Errorf("Organizer.Dir = %s, want ~/Downloads expanded", cfg.Organizer.Dir)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	content := "ledger:\n  path: /data/ledger.csv\nlogging:\n  level: debug\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("创建配置文件失败: %v", err)
	}
	t.Setenv("DESKTOP_AUTOMATION_REPORT_DIR", "/tmp/reports")

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Ledger.Path != "/data/ledger.csv" {
		t.Errorf("Ledger.Path = %s", cfg.Ledger.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s", cfg.Logging.Level)
	}
	if cfg.Report.Dir != "/tmp/reports" {
		t.Errorf("Report.Dir = %s, want env override", cfg.Report.Dir)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	testCases := map[string]string{
		"~/Downloads": filepath.Join(home, "Downloads"),
		"~":           home,
		"/abs/path":   "/abs/path",
		"rel/path":    "rel/path",
		"":            "",
	}
	for in, want := range testCases {
		got, err := ExpandPath(in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error = %v", in, err)
		}
		if got != want {
			t.Errorf("ExpandPath(%q) = %s, want %s", in, got, want)
		}
	}
}
