package export

import (
	"html"
	"sort"
	"strings"

	"leadlens/api/internal/record"
)

// fixedColumns is the export order for schema fields. A column is emitted
// when the first record carries a value for it.
var fixedColumns = []string{
	"name", "address", "phone", "website", "description",
	"rating", "latitude", "longitude", "favorite",
}

// CSV renders records as comma-separated values. The header is derived from
// the first record's populated keys; social links are flattened into one
// column per platform and appended after the regular columns. Every cell is
// HTML-escaped and then double-quoted. The escaping is redundant with CSV
// quoting but downstream consumers rely on it, so it stays.
func CSV(records []record.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	columns := columnsFor(records[0])

	var b strings.Builder
	writeRow(&b, columns)
	for _, rec := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = cellValue(rec, col)
		}
		b.WriteString("\n")
		writeRow(&b, cells)
	}
	return []byte(b.String()), nil
}

func columnsFor(first record.Record) []string {
	var columns []string
	for _, col := range fixedColumns {
		if first.Field(col) != "" {
			columns = append(columns, col)
		}
	}

	extraKeys := make([]string, 0, len(first.Extra))
	for key := range first.Extra {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)
	columns = append(columns, extraKeys...)

	if len(first.Sources) > 0 {
		columns = append(columns, "sources")
	}

	platforms := make([]string, 0, len(first.SocialMedia))
	for platform := range first.SocialMedia {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	return append(columns, platforms...)
}

func cellValue(rec record.Record, column string) string {
	if url, ok := rec.SocialMedia[column]; ok {
		return url
	}
	if column == "sources" {
		return strings.Join(rec.Sources, "; ")
	}
	return rec.Field(column)
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`"`)
		b.WriteString(html.EscapeString(cell))
		b.WriteString(`"`)
	}
}
