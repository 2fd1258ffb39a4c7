package record

import (
	"errors"
	"strings"
)

// ErrEmptyData marks a source with a header row but no data rows (or no rows
// at all). Callers surface it differently from a fetch failure: the sheet
// exists but holds nothing to show.
var ErrEmptyData = errors.New("data source has no data rows")

// FromRows converts raw sheet rows into records. The first row is the header;
// header names are lower-cased before use as field keys. Missing trailing
// cells become empty strings. Each record's RowIndex is its 1-based sheet row
// (data index + 1 header + 1 for 1-based counting).
func FromRows(rows [][]string) ([]Record, []string, error) {
	if len(rows) < 2 {
		return nil, nil, ErrEmptyData
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec := Record{RowIndex: i + 2}
		for col, header := range headers {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			rec.SetField(header, value)
		}
		rec.Favorite = NormalizeFavorite(rec.Favorite)
		records = append(records, rec)
	}
	return records, headers, nil
}

// HeadersEqual reports whether two header sets are structurally identical.
// A change triggers reconstruction of the sort options on the caller's side.
func HeadersEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ColumnIndex finds the 0-based column for a field key in a header set,
// resolving aliases the same way normalization does. Returns -1 when the
// column does not exist.
func ColumnIndex(headers []string, key string) int {
	want := CanonicalKey(key)
	for i, h := range headers {
		if CanonicalKey(h) == want {
			return i
		}
	}
	return -1
}
