package classify

import (
	"path/filepath"
	"reflect"
	"testing"

	"codeberg.org/snonux/codewise/internal/testutil"
)

func TestClassify(t *testing.T) {
	dir := filepath.Join("LeetCode", "array", "two-sum")
	join := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		name       string
		policy     CodePolicy
		files      []string
		wantCode   []string
		wantReadme string
	}{
		{
			name:       "code and readme",
			files:      []string{"readme.md", "sol.py"},
			wantCode:   []string{join("sol.py")},
			wantReadme: join("readme.md"),
		},
		{
			name:       "readme case insensitive",
			files:      []string{"README.MD", "Main.java"},
			wantCode:   []string{join("Main.java")},
			wantReadme: join("README.MD"),
		},
		{
			name:       "all policy keeps every code file in order",
			files:      []string{"a.cpp", "b.py", "notes.txt", "README.md"},
			wantCode:   []string{join("a.cpp"), join("b.py")},
			wantReadme: join("README.md"),
		},
		{
			name:       "first policy stops at the first match",
			policy:     PolicyFirst,
			files:      []string{"a.cpp", "b.py", "README.md"},
			wantCode:   []string{join("a.cpp")},
			wantReadme: join("README.md"),
		},
		{
			name:     "uppercase extension",
			files:    []string{"SOL.PY"},
			wantCode: []string{join("SOL.PY")},
		},
		{
			name:  "nothing recognized",
			files: []string{"notes.txt", "image.png", "readme.txt"},
		},
		{
			name: "empty directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(nil, tt.policy, nil)
			res := c.Classify(dir, tt.files)

			if !reflect.DeepEqual(res.CodeFiles, tt.wantCode) {
				t.Errorf("CodeFiles = %v, want %v", res.CodeFiles, tt.wantCode)
			}
			if res.Readme != tt.wantReadme {
				t.Errorf("Readme = %q, want %q", res.Readme, tt.wantReadme)
			}
		})
	}
}

func TestClassify_Warnings(t *testing.T) {
	logger := &testutil.RecordingLogger{}
	c := New(nil, PolicyAll, logger)

	res := c.Classify("LeetCode/array/no-readme", []string{"sol.py"})
	if res.Empty() {
		t.Fatal("Expected code file to be found")
	}
	if logger.Count("WARN", "No README file found") != 1 {
		t.Errorf("Expected README warning, got %+v", logger.Entries)
	}
	if logger.Count("WARN", "No code file found") != 0 {
		t.Errorf("Unexpected code warning: %+v", logger.Entries)
	}

	res = c.Classify("LeetCode/array/empty", nil)
	if !res.Empty() {
		t.Error("Expected empty result")
	}
	if logger.Count("WARN", "LeetCode/array/empty") != 2 {
		t.Errorf("Expected both warnings naming the directory, got %+v", logger.Entries)
	}
}

func TestNew_CustomExtensions(t *testing.T) {
	c := New([]string{"go", ".RS", " "}, PolicyAll, nil)

	tests := map[string]bool{
		"main.go":   true,
		"lib.rs":    true,
		"sol.py":    false,
		"readme.md": false,
		"Makefile":  false,
	}
	for name, want := range tests {
		if got := c.IsCode(name); got != want {
			t.Errorf("IsCode(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestReadmeNeverCode(t *testing.T) {
	c := New([]string{".md"}, PolicyAll, nil)
	res := c.Classify("dir", []string{"README.md", "notes.md"})

	if len(res.CodeFiles) != 1 || filepath.Base(res.CodeFiles[0]) != "notes.md" {
		t.Errorf("README must not be classified as code, got %v", res.CodeFiles)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    CodePolicy
		wantErr bool
	}{
		{"", PolicyAll, false},
		{"all", PolicyAll, false},
		{"FIRST", PolicyFirst, false},
		{"best", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
