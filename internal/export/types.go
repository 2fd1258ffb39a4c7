// Package export turns record sets into downloadable artifacts (CSV, PDF)
// and optionally pushes them to object storage.
package export

import "errors"

// Format is the export output format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ErrPDFDependencyMissing is returned when no headless Chromium binary is
// available for PDF rendering.
var ErrPDFDependencyMissing = errors.New("pdf export dependency missing")

// ErrNoRecords is returned when an export is requested for an empty set.
var ErrNoRecords = errors.New("no records to export")

// Result is a finished export artifact.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

// ParseFormat maps a request parameter to a Format.
func ParseFormat(raw string) (Format, bool) {
	switch Format(raw) {
	case FormatCSV, "":
		return FormatCSV, true
	case FormatPDF:
		return FormatPDF, true
	default:
		return "", false
	}
}
