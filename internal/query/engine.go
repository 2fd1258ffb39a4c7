// Package query filters and orders record sets for display. Both operations
// return fresh slices; the input set is never mutated.
package query

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"leadlens/api/internal/record"
)

// SortNone disables ordering; records keep their input order.
const SortNone = "none"

// Direction controls sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps a request parameter to a Direction, defaulting to
// ascending for anything unrecognized.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), string(Descending)) {
		return Descending
	}
	return Ascending
}

// Filter returns the records whose name, address, or description contains the
// query as a case-insensitive substring. An empty query keeps everything.
func Filter(records []record.Record, q string) []record.Record {
	out := make([]record.Record, 0, len(records))
	needle := strings.ToLower(strings.TrimSpace(q))
	for _, rec := range records {
		if needle == "" || matches(rec, needle) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec record.Record, needle string) bool {
	for _, field := range []string{rec.Name, rec.Address, rec.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Sort orders records by the named field. The sort is stable: ties keep their
// relative input order. Key SortNone (or "") returns a copy in input order.
func Sort(records []record.Record, key string, dir Direction) []record.Record {
	out := make([]record.Record, len(records))
	copy(out, records)
	if key == "" || key == SortNone {
		return out
	}

	multiplier := 1
	if dir == Descending {
		multiplier = -1
	}

	coll := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		a := out[i].Field(key)
		b := out[j].Field(key)
		return compareValues(coll, a, b)*multiplier < 0
	})
	return out
}

// compareValues orders two cell values: booleans first (TRUE > FALSE), then
// strictly-numeric strings, then collated text.
func compareValues(coll *collate.Collator, a, b string) int {
	if ba, aOK := asBool(a); aOK {
		if bb, bOK := asBool(b); bOK {
			switch {
			case ba == bb:
				return 0
			case ba:
				return 1
			default:
				return -1
			}
		}
	}

	if fa, aOK := asNumber(a); aOK {
		if fb, bOK := asNumber(b); bOK {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}

	return coll.CompareString(a, b)
}

func asBool(v string) (bool, bool) {
	switch {
	case strings.EqualFold(v, record.FavoriteTrue):
		return true, true
	case strings.EqualFold(v, record.FavoriteFalse):
		return false, true
	}
	return false, false
}

// asNumber accepts a value only when the parsed float's string form
// round-trips to the original. That keeps "123 Main St" out of the numeric
// path while "123" stays in it.
func asNumber(v string) (float64, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	if strconv.FormatFloat(f, 'f', -1, 64) != v {
		return 0, false
	}
	return f, true
}
