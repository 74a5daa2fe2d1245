package content

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"

	"codeberg.org/snonux/codewise/internal/testutil"
)

func TestReadCode_LiteralBytes(t *testing.T) {
	dir := t.TempDir()
	src := "class Solution:\r\n    def twoSum(self):\n\t\treturn []  # 两数之和\n"
	path := filepath.Join(dir, "sol.py")
	testutil.CreateTestFile(t, path, []byte(src))

	r := NewReader(simplifiedchinese.GB18030, nil)
	cf := r.ReadCode(path)

	if cf.Content == nil || *cf.Content != src {
		t.Fatalf("Content mismatch: %v", cf.Content)
	}
	if cf.Extension == nil || *cf.Extension != ".py" {
		t.Errorf("Extension = %v, want .py", cf.Extension)
	}
	if cf.Name != "sol.py" {
		t.Errorf("Name = %q, want sol.py", cf.Name)
	}
}

func TestReadCode_Missing(t *testing.T) {
	logger := &testutil.RecordingLogger{}
	r := NewReader(nil, logger)

	cf := r.ReadCode(filepath.Join(t.TempDir(), "missing.cpp"))
	if cf.Content != nil || cf.Extension != nil {
		t.Errorf("Expected absent content for missing file, got %+v", cf)
	}
	if cf.Name != "missing.cpp" {
		t.Errorf("Name should still be set, got %q", cf.Name)
	}
	if logger.Count("ERROR", "Error reading file") != 1 {
		t.Errorf("Expected one error entry, got %+v", logger.Entries)
	}
	if !logger.Entries[0].Trace {
		t.Error("Expected I/O error to be logged with trace")
	}
}

func TestReadText_Directory(t *testing.T) {
	logger := &testutil.RecordingLogger{}
	r := NewReader(nil, logger)

	if _, ok := r.ReadText(t.TempDir()); ok {
		t.Error("Expected failure when reading a directory")
	}
	if logger.Count("ERROR", "Error reading file") != 1 {
		t.Errorf("Expected error entry, got %+v", logger.Entries)
	}
}

func TestReadText_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits not enforced")
	}

	path := filepath.Join(t.TempDir(), "README.md")
	testutil.CreateTestFile(t, path, []byte("secret"))
	if err := os.Chmod(path, 0000); err != nil {
		t.Fatal(err)
	}

	if _, ok := NewReader(nil, nil).ReadText(path); ok {
		t.Error("Expected failure for unreadable file")
	}
}

func TestReadText_GB18030Fallback(t *testing.T) {
	want := "给定一个整数数组 nums"
	encoded, err := simplifiedchinese.GB18030.NewEncoder().String(want)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "README.md")
	testutil.CreateTestFile(t, path, []byte(encoded))

	logger := &testutil.RecordingLogger{}
	got, ok := NewReader(simplifiedchinese.GB18030, logger).ReadText(path)
	if !ok {
		t.Fatal("Expected successful read")
	}
	if got != want {
		t.Errorf("ReadText = %q, want %q", got, want)
	}
	if logger.Count("WARN", "fallback encoding") != 1 {
		t.Errorf("Expected fallback warning, got %+v", logger.Entries)
	}
}

func TestReadText_ReplacementWithoutFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sol.cpp")
	testutil.CreateTestFile(t, path, []byte{'a', 0xff, 'b'})

	logger := &testutil.RecordingLogger{}
	got, ok := NewReader(nil, logger).ReadText(path)
	if !ok {
		t.Fatal("Expected successful read")
	}
	if got != "a�b" {
		t.Errorf("ReadText = %q, want replacement character", got)
	}
	if logger.Count("WARN", "replacing invalid sequences") != 1 {
		t.Errorf("Expected replacement warning, got %+v", logger.Entries)
	}
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		in      string
		wantNil bool
		wantErr bool
	}{
		{"", true, false},
		{"none", true, false},
		{"GB18030", false, false},
		{"gbk", false, false},
		{"latin1", true, true},
	}
	for _, tt := range tests {
		enc, err := ParseFallback(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFallback(%q) err = %v", tt.in, err)
		}
		if (enc == nil) != tt.wantNil {
			t.Errorf("ParseFallback(%q) = %v", tt.in, enc)
		}
	}
}
