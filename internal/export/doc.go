// Package export writes a finished dataset to files, databases and object
// storage. Absent record fields are written as JSON null, empty CSV cells
// or SQL NULL.
package export
