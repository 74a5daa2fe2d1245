// Package logging provides the write-only log sink shared by the extraction
// components. Components receive a Logger at construction; there is no
// process-wide logger.
package logging
