package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateProblemTree creates a category/problem tree under a temp directory.
// Keys of files are slash-separated paths relative to the root, for example
// "array/two-sum/sol.py". Paths are joined with filepath so the layout is
// the same on every platform.
func CreateProblemTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(append([]string{root}, strings.Split(rel, "/")...)...)
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", path, err)
			}
			continue
		}
		CreateTestFile(t, path, []byte(content))
	}
	return root
}

// CreateProblemDirectory creates root/category/key with a solution and README.
func CreateProblemDirectory(t *testing.T, root, category, key string) string {
	t.Helper()

	dir := filepath.Join(root, category, key)
	CreateTestFile(t, filepath.Join(dir, "solution.py"), []byte("class Solution:\n    pass\n"))
	CreateTestFile(t, filepath.Join(dir, "README.md"), []byte("# "+key+"\n给定一个整数数组\n"))
	return dir
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}
