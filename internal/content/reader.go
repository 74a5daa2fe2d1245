// Package content reads classified files into text, normalizing them to
// UTF-8.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"

	"codeberg.org/snonux/codewise/internal/dataset"
	"codeberg.org/snonux/codewise/internal/logging"
)

// Fallback encodings selectable by name.
var fallbacks = map[string]encoding.Encoding{
	"gb18030": simplifiedchinese.GB18030,
	"gbk":     simplifiedchinese.GBK,
}

// ParseFallback maps a config name to an encoding. "none" or "" disables the
// fallback.
func ParseFallback(name string) (encoding.Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return nil, nil
	}
	enc, ok := fallbacks[name]
	if !ok {
		return nil, fmt.Errorf("unsupported fallback encoding: %s", name)
	}
	return enc, nil
}

// Reader reads files as UTF-8 text.
type Reader struct {
	fallback encoding.Encoding
	logger   logging.Logger
}

// NewReader creates a reader. fallback may be nil.
func NewReader(fallback encoding.Encoding, logger logging.Logger) *Reader {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Reader{fallback: fallback, logger: logger}
}

// ReadCode reads a code file. On failure Content and Extension are nil.
func (r *Reader) ReadCode(path string) dataset.CodeFile {
	cf := dataset.CodeFile{Name: filepath.Base(path)}

	text, ok := r.ReadText(path)
	if !ok {
		return cf
	}
	cf.Content = &text
	cf.Extension = dataset.Stringp(filepath.Ext(path))
	return cf
}

// ReadText returns the full text of path. Errors are logged and reported
// as ok == false.
func (r *Reader) ReadText(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		r.logger.ErrorTrace("Error reading file", err, "path", path)
		return "", false
	}
	if info.IsDir() {
		r.logger.Error("Error reading file", fmt.Errorf("%s is a directory", path), "path", path)
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.ErrorTrace("Error reading file", err, "path", path)
		return "", false
	}

	return r.decode(path, data), true
}

func (r *Reader) decode(path string, data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	if r.fallback != nil {
		decoded, err := r.fallback.NewDecoder().Bytes(data)
		if err == nil && utf8.Valid(decoded) && !strings.ContainsRune(string(decoded), utf8.RuneError) {
			r.logger.Warn("File is not UTF-8, decoded with fallback encoding", "path", path)
			return string(decoded)
		}
	}

	r.logger.Warn("File is not valid UTF-8, replacing invalid sequences", "path", path)
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
