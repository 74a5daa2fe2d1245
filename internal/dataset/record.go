// Package dataset holds the extracted problem records and renders them as a
// table.
package dataset

import (
	"errors"
	"fmt"
)

// Column names of the output table, in order.
var columns = []string{"tags", "key", "code_files", "readme", "link"}

// CodeFile is one source file of a problem. Content and Extension are nil
// when the file could not be read.
type CodeFile struct {
	Name      string  `json:"name"`
	Content   *string `json:"code_content"`
	Extension *string `json:"extension"`
}

// ProblemRecord is one row of the dataset.
type ProblemRecord struct {
	Tag       string     `json:"tags"`
	Key       string     `json:"key"`
	CodeFiles []CodeFile `json:"code_files"`
	Readme    *string    `json:"readme"`
	Link      *string    `json:"link"`
}

// HasCode reports whether at least one code file was read successfully.
func (r ProblemRecord) HasCode() bool {
	for _, cf := range r.CodeFiles {
		if cf.Content != nil {
			return true
		}
	}
	return false
}

// ErrIncompleteRecord is returned by Append for records without tag or key.
var ErrIncompleteRecord = errors.New("record requires tag and key")

// Dataset is an append-only table of problem records.
type Dataset struct {
	records []ProblemRecord
}

// New creates an empty dataset
func New() *Dataset {
	return &Dataset{}
}

// Append adds a record. The record's code file slice is copied so later
// changes by the caller do not leak into the table.
func (d *Dataset) Append(r ProblemRecord) error {
	if r.Tag == "" || r.Key == "" {
		return fmt.Errorf("%w: tag=%q key=%q", ErrIncompleteRecord, r.Tag, r.Key)
	}
	files := make([]CodeFile, len(r.CodeFiles))
	copy(files, r.CodeFiles)
	r.CodeFiles = files
	d.records = append(d.records, r)
	return nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns a copy of all rows in insertion order.
func (d *Dataset) Records() []ProblemRecord {
	return d.Head(d.Len())
}

// Head returns a copy of the first n rows.
func (d *Dataset) Head(n int) []ProblemRecord {
	if d == nil || n <= 0 {
		return []ProblemRecord{}
	}
	if n > len(d.records) {
		n = len(d.records)
	}
	out := make([]ProblemRecord, n)
	copy(out, d.records[:n])
	return out
}

// Columns returns the column names of the table.
func (d *Dataset) Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Stringp returns a pointer to s. Used to build optional fields.
func Stringp(s string) *string {
	return &s
}
