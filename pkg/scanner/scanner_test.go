package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-automation/internal"
	"github.com/moyu-x/desktop-automation/pkg/classifier"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, fs afero.Fs, path string, size int, modified time.Time) {
	t.Helper()
	if err := afero.WriteFile(fs, path, make([]byte, size), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	if err := fs.Chtimes(path, modified, modified); err != nil {
		t.Fatalf("设置修改时间失败: %v", err)
	}
}

func newMemScanner() (*Scanner, afero.Fs) {
	fs := afero.NewMemMapFs()
	s := NewScanner(fs)
	s.Now = func() time.Time { return fixedNow }
	return s, fs
}

func TestScanner_Scan(t *testing.T) {
	s, fs := newMemScanner()
	if err := fs.MkdirAll("/data/sub", 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}

	writeFile(t, fs, "/data/a.JPG", 1024*1024, fixedNow.Add(-3*24*time.Hour))
	writeFile(t, fs, "/data/b.txt", 2048, fixedNow.Add(-40*24*time.Hour-time.Hour))
	writeFile(t, fs, "/data/README", 10, fixedNow)
	writeFile(t, fs, "/data/sub/nested.png", 10, fixedNow)

	records, err := s.Scan("/data")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records (subdir ignored), got %d", len(records))
	}

	byName := make(map[string]FileRecord)
	for _, r := range records {
		byName[r.Name] = r
	}

	a := byName["a.JPG"]
	if a.Extension != ".jpg" {
		t.Errorf("Expected lowercased extension .jpg, got %q", a.Extension)
	}
	if a.Category != classifier.Images {
		t.Errorf("Expected Images, got %s", a.Category)
	}
	if a.SizeMB() != 1.0 {
		t.Errorf("Expected 1.00 MB, got %v", a.SizeMB())
	}
	if a.AgeDays != 3 {
		t.Errorf("Expected age 3 days, got %d", a.AgeDays)
	}

	b := byName["b.txt"]
	if b.AgeDays != 40 {
		t.Errorf("Expected age 40 days (floored), got %d", b.AgeDays)
	}
	if b.Category != classifier.Documents {
		t.Errorf("Expected Documents, got %s", b.Category)
	}

	readme := byName["README"]
	if readme.Extension != "" || readme.Category != classifier.Other {
		t.Errorf("Expected empty extension and Other, got %q %s", readme.Extension, readme.Category)
	}
	if readme.MIME != "" {
		t.Errorf("MIME should stay empty without sniffing, got %q", readme.MIME)
	}
}

func TestScanner_Scan_EmptyDir(t *testing.T) {
	s, fs := newMemScanner()
	if err := fs.MkdirAll("/empty/only-dirs", 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}

	records, err := s.Scan("/empty")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}

func TestScanner_Scan_NotFound(t *testing.T) {
	s, fs := newMemScanner()

	_, err := s.Scan("/missing")
	if !errors.Is(err, internal.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	writeFile(t, fs, "/file.txt", 1, fixedNow)
	_, err = s.Scan("/file.txt")
	if !errors.Is(err, internal.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a regular file, got %v", err)
	}
}

func TestScanner_Scan_SniffContent(t *testing.T) {
	s, fs := newMemScanner()
	s.SniffContent = true

	if err := afero.WriteFile(fs, "/data/photo.dat", []byte("\x89PNG\r\n\x1a\n0000"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	if err := afero.WriteFile(fs, "/data/notes.txt", []byte("random content"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	records, err := s.Scan("/data")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	for _, r := range records {
		switch r.Name {
		case "photo.dat":
			if r.MIME != "image/png" {
				t.Errorf("Expected image/png, got %q", r.MIME)
			}
			if r.Category != classifier.Other {
				t.Errorf("Sniffing must not change the category, got %s", r.Category)
			}
		case "notes.txt":
			if r.MIME != UnknownMIME {
				t.Errorf("Expected %s, got %q", UnknownMIME, r.MIME)
			}
		}
	}
}

func TestScanner_ListNames(t *testing.T) {
	s, fs := newMemScanner()
	for _, name := range []string{"/d/y.txt", "/d/x.txt"} {
		writeFile(t, fs, name, 1, fixedNow)
	}
	if err := fs.MkdirAll("/d/folder", 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}

	names, err := s.ListNames("/d")
	if err != nil {
		t.Fatalf("ListNames() error = %v", err)
	}
	if strings.Join(names, ",") != "x.txt,y.txt" {
		t.Errorf("Unexpected names: %v", names)
	}
}

func TestScanner_Scan_WithSymlinks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping symlink test in short mode")
	}

	tempDir := t.TempDir()

	filePath := filepath.Join(tempDir, "file.txt")
	if err := os.WriteFile(filePath, []byte("test content"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	linkPath := filepath.Join(tempDir, "link.txt")
	if err := os.Symlink(filePath, linkPath); err != nil {
		t.Skipf("Skipping symlink test: %v", err)
	}

	s := NewScanner(afero.NewOsFs())
	records, err := s.Scan(tempDir)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(records) != 2 {
		t.Errorf("Expected 2 files (original + symlink), got %d", len(records))
	}
}

func TestAgeDays(t *testing.T) {
	testCases := []struct {
		name     string
		modified time.Time
		expected int
	}{
		{"now", fixedNow, 0},
		{"almost a day", fixedNow.Add(-23 * time.Hour), 0},
		{"exactly a week", fixedNow.Add(-7 * 24 * time.Hour), 7},
		{"future", fixedNow.Add(2 * time.Hour), -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AgeDays(fixedNow, tc.modified); got != tc.expected {
				t.Errorf("AgeDays() = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestRoundMB(t *testing.T) {
	if got := RoundMB(1536 * 1024); got != 1.5 {
		t.Errorf("RoundMB() = %v, want 1.5", got)
	}
	if got := RoundMB(0); got != 0 {
		t.Errorf("RoundMB(0) = %v", got)
	}
	if got := RoundMB(5000); got != 0 {
		t.Errorf("RoundMB(5000) = %v, want 0", got)
	}
}
