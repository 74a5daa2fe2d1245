// Package classify splits the file names of a problem directory into code
// candidates and the README candidate.
package classify

import (
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/codewise/internal/logging"
)

// ReadmeName is matched case-insensitively.
const ReadmeName = "readme.md"

// DefaultExtensions is the allow-list used when none is configured.
var DefaultExtensions = []string{".cpp", ".py", ".java"}

// CodePolicy decides how many code files are taken from a directory.
type CodePolicy string

const (
	// PolicyAll keeps every allow-listed file in listing order.
	PolicyAll CodePolicy = "all"
	// PolicyFirst keeps only the first allow-listed file.
	PolicyFirst CodePolicy = "first"
)

// ParsePolicy validates a policy name
func ParsePolicy(s string) (CodePolicy, error) {
	switch CodePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyAll, "":
		return PolicyAll, nil
	case PolicyFirst:
		return PolicyFirst, nil
	default:
		return "", fmt.Errorf("unknown code file policy: %s (use all or first)", s)
	}
}

// Result holds the classified file paths of one directory. Readme is empty
// when the directory has no README.
type Result struct {
	CodeFiles []string
	Readme    string
}

// Empty reports whether neither code nor README was found.
func (r Result) Empty() bool {
	return len(r.CodeFiles) == 0 && r.Readme == ""
}

// Classifier partitions directory listings.
type Classifier struct {
	extensions map[string]struct{}
	policy     CodePolicy
	logger     logging.Logger
}

// New creates a classifier. An empty extension list selects DefaultExtensions.
func New(extensions []string, policy CodePolicy, logger logging.Logger) *Classifier {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if policy == "" {
		policy = PolicyAll
	}
	if logger == nil {
		logger = logging.Nop{}
	}

	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}

	return &Classifier{extensions: set, policy: policy, logger: logger}
}

// IsReadme reports whether name is a README candidate.
func IsReadme(name string) bool {
	return strings.EqualFold(name, ReadmeName)
}

// IsCode reports whether name has an allow-listed extension.
func (c *Classifier) IsCode(name string) bool {
	if IsReadme(name) {
		return false
	}
	_, ok := c.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Classify inspects names (in the given order) of files inside dir and
// returns full paths of the code files and the README. Missing pieces are
// logged as warnings.
func (c *Classifier) Classify(dir string, names []string) Result {
	var res Result

	for _, name := range names {
		switch {
		case IsReadme(name):
			if res.Readme == "" {
				res.Readme = filepath.Join(dir, name)
			}
		case c.IsCode(name):
			if c.policy == PolicyFirst && len(res.CodeFiles) > 0 {
				continue
			}
			res.CodeFiles = append(res.CodeFiles, filepath.Join(dir, name))
		}
	}

	if len(res.CodeFiles) == 0 {
		c.logger.Warn("No code file found in directory", "dir", dir)
	}
	if res.Readme == "" {
		c.logger.Warn("No README file found in directory", "dir", dir)
	}

	return res
}
