package dataset

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

const (
	nullCell     = "<nil>"
	maxCellRunes = 48
)

// WriteTable renders the first limit rows of d as an aligned table.
// A limit <= 0 renders every row.
func WriteTable(w io.Writer, d *Dataset, limit int) error {
	rows := d.Records()
	if limit > 0 {
		rows = d.Head(limit)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\t"+strings.Join(d.Columns(), "\t"))
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i,
			cell(r.Tag),
			cell(r.Key),
			codeCell(r.CodeFiles),
			optionalCell(r.Readme),
			optionalCell(r.Link),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if limit > 0 && limit < d.Len() {
		_, err := fmt.Fprintf(w, "... %d of %d rows\n", len(rows), d.Len())
		return err
	}
	_, err := fmt.Fprintf(w, "[%d rows x %d columns]\n", d.Len(), len(columns))
	return err
}

func codeCell(files []CodeFile) string {
	if len(files) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(files))
	for _, f := range files {
		ext := nullCell
		if f.Extension != nil {
			ext = *f.Extension
		}
		if f.Content == nil {
			parts = append(parts, ext+":"+nullCell)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%dB", ext, len(*f.Content)))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func optionalCell(s *string) string {
	if s == nil {
		return nullCell
	}
	return cell(*s)
}

// cell collapses whitespace and truncates long values.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxCellRunes {
		return s
	}
	r := []rune(s)
	return string(r[:maxCellRunes-3]) + "..."
}
