package organizer

import (
	"os"
	"syscall"
	"testing"

	"github.com/spf13/afero"

	"github.com/moyu-x/desktop-automation/pkg/scanner"
)

func setup(t *testing.T, files map[string]string) (afero.Fs, []scanner.FileRecord) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0644); err != nil {
			t.Fatalf("创建测试文件失败: %v", err)
		}
	}

	records, err := scanner.NewScanner(fs).Scan("/downloads")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	return fs, records
}

func TestOrganize(t *testing.T) {
	fs, records := setup(t, map[string]string{
		"/downloads/a.jpg":     "img",
		"/downloads/b.pdf":     "doc",
		"/downloads/c.unknown": "???",
		"/downloads/d.mp3":     "song",
	})

	result, err := New(fs).Organize("/downloads", records)
	if err != nil {
		t.Fatalf("Organize() error = %v", err)
	}
	if result.Moved != 3 || result.Skipped != 0 || result.Failed != 0 {
		t.Errorf("Unexpected result: %+v", result)
	}

	for _, path := range []string{"/downloads/Images/a.jpg", "/downloads/Documents/b.pdf", "/downloads/Music/d.mp3", "/downloads/c.unknown"} {
		if exists, _ := afero.Exists(fs, path); !exists {
			t.Errorf("Expected %s to exist", path)
		}
	}
	if exists, _ := afero.Exists(fs, "/downloads/a.jpg"); exists {
		t.Error("a.jpg should have been moved")
	}
	if exists, _ := afero.DirExists(fs, "/downloads/Other"); exists {
		t.Error("Other files must stay in place")
	}
}

func TestOrganize_SkipsExistingTarget(t *testing.T) {
	fs, records := setup(t, map[string]string{
		"/downloads/a.jpg":        "new",
		"/downloads/b.jpg":        "other",
		"/downloads/Images/a.jpg": "old",
	})

	result, err := New(fs).Organize("/downloads", records)
	if err != nil {
		t.Fatalf("Organize() error = %v", err)
	}
	if result.Moved != 1 || result.Skipped != 1 {
		t.Errorf("Unexpected result: %+v", result)
	}

	data, _ := afero.ReadFile(fs, "/downloads/Images/a.jpg")
	if string(data) != "old" {
		t.Errorf("Existing target must not be overwritten, got %q", data)
	}
	if exists, _ := afero.Exists(fs, "/downloads/a.jpg"); !exists {
		t.Error("Skipped file should remain in source dir")
	}
}

func TestOrganize_SourceRemovedAfterScan(t *testing.T) {
	fs, records := setup(t, map[string]string{"/downloads/a.png": "x"})
	if err := fs.Remove("/downloads/a.png"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	result, err := New(fs).Organize("/downloads", records)
	if err != nil {
		t.Fatalf("Organize() error = %v", err)
	}
	if result.Skipped != 1 || result.Moved != 0 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestMoveFile_CopyFallback(t *testing.T) {
	base := afero.NewMemMapFs()
	if err := afero.WriteFile(base, "/src/a.txt", []byte("content"), 0644); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}
	if err := base.MkdirAll("/dst", 0755); err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}

	o := New(noRenameFs{base})
	if err := o.moveFile("/src/a.txt", "/dst/a.txt"); err != nil {
		t.Fatalf("moveFile() error = %v", err)
	}

	data, err := afero.ReadFile(base, "/dst/a.txt")
	if err != nil || string(data) != "content" {
		t.Errorf("Unexpected destination content %q (%v)", data, err)
	}
	if exists, _ := afero.Exists(base, "/src/a.txt"); exists {
		t.Error("Source should be removed after copy")
	}
}

// noRenameFs 模拟跨卷移动时 rename 失败
type noRenameFs struct {
	afero.Fs
}

func (noRenameFs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EXDEV}
}
