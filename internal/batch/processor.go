// Package batch reads selection files that restrict an extraction run to a
// subset of problems.
package batch

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one selection line. Tag is empty when the line names only a key.
type Entry struct {
	Tag string
	Key string
}

// Selection is a set of problems to process. A nil Selection includes
// everything.
type Selection struct {
	keys   map[string]struct{}
	tagged map[string]struct{}
}

// ReadSelectionFile reads problem selections from a file
// Supports formats:
// - Key only: "two-sum" (matches the key in every category)
// - Category and key: "array/two-sum"
// - Comments: lines starting with '#'
func ReadSelectionFile(filename string) (*Selection, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection file: %w", err)
	}
	return NewSelection(ParseEntries(string(content))), nil
}

// ParseEntries parses selection lines.
func ParseEntries(content string) []Entry {
	var entries []Entry

	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Accept Windows style separators too
		line = strings.ReplaceAll(line, "\\", "/")
		line = strings.Trim(line, "/")

		if tag, key, found := strings.Cut(line, "/"); found {
			tag, key = strings.TrimSpace(tag), strings.TrimSpace(key)
			if tag == "" || key == "" || strings.Contains(key, "/") {
				// Ignore malformed nested paths
				continue
			}
			entries = append(entries, Entry{Tag: tag, Key: key})
			continue
		}

		entries = append(entries, Entry{Key: line})
	}

	return entries
}

// NewSelection builds a selection from entries.
func NewSelection(entries []Entry) *Selection {
	s := &Selection{
		keys:   make(map[string]struct{}),
		tagged: make(map[string]struct{}),
	}
	for _, e := range entries {
		if e.Tag == "" {
			s.keys[e.Key] = struct{}{}
		} else {
			s.tagged[e.Tag+"/"+e.Key] = struct{}{}
		}
	}
	return s
}

// Includes reports whether the problem tag/key is selected.
func (s *Selection) Includes(tag, key string) bool {
	if s == nil {
		return true
	}
	if _, ok := s.keys[key]; ok {
		return true
	}
	_, ok := s.tagged[tag+"/"+key]
	return ok
}

// Len returns the number of selection entries.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys) + len(s.tagged)
}
