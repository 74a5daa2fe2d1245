package internal

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LeetCode", "LeetCode"},
		{"./LeetCode", "__LeetCode"},
		{"two-sum_2", "two-sum_2"},
		{"数组 题目", "数组_题目"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID("LeetCode")

	parts := strings.Split(id, "_")
	if len(parts) != 2 {
		t.Fatalf("Expected two parts in run ID, got %q", id)
	}
	if len(parts[1]) != 8 {
		t.Errorf("Expected 8 char hash suffix, got %q", parts[1])
	}

	other := GenerateRunID("Other")
	if strings.Split(other, "_")[1] == parts[1] {
		t.Error("Expected different hash for different roots")
	}
}
