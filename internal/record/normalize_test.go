package record

import (
	"errors"
	"testing"
)

func TestFromRows(t *testing.T) {
	rows := [][]string{
		{"Name", "Address", "Favorite"},
		{"Acme", "1 Main St", "FALSE"},
	}

	records, headers, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Name != "Acme" || rec.Address != "1 Main St" || rec.Favorite != "FALSE" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.RowIndex != 2 {
		t.Errorf("expected rowIndex 2, got %d", rec.RowIndex)
	}

	wantHeaders := []string{"name", "address", "favorite"}
	if !HeadersEqual(headers, wantHeaders) {
		t.Errorf("expected headers %v, got %v", wantHeaders, headers)
	}
}

func TestFromRows_MissingCellsBecomeEmpty(t *testing.T) {
	rows := [][]string{
		{"Name", "Address", "Phone"},
		{"Acme"},
	}

	records, _, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if records[0].Address != "" || records[0].Phone != "" {
		t.Errorf("expected empty strings for missing cells, got %+v", records[0])
	}
}

func TestFromRows_EmptySourceIsAnError(t *testing.T) {
	for _, rows := range [][][]string{
		nil,
		{},
		{{"Name", "Address"}},
	} {
		if _, _, err := FromRows(rows); !errors.Is(err, ErrEmptyData) {
			t.Errorf("rows %v: expected ErrEmptyData, got %v", rows, err)
		}
	}
}

func TestFromRows_UnknownColumnsLandInExtra(t *testing.T) {
	rows := [][]string{
		{"Name", "Address", "Opening Hours"},
		{"Acme", "1 Main St", "9-5"},
	}

	records, _, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if got := records[0].Field("opening hours"); got != "9-5" {
		t.Errorf("expected extra column value 9-5, got %q", got)
	}
}

func TestFromRows_HeaderAliases(t *testing.T) {
	rows := [][]string{
		{"Name", "Address", "Lat", "Lng", "Summary"},
		{"Acme", "1 Main St", "40.1", "-74.2", "widgets"},
	}

	records, _, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	rec := records[0]
	if rec.Latitude != "40.1" || rec.Longitude != "-74.2" || rec.Description != "widgets" {
		t.Errorf("aliases not resolved: %+v", rec)
	}
	if !rec.HasCoordinates() {
		t.Error("expected coordinates present")
	}
}

func TestNormalizeFavorite(t *testing.T) {
	cases := map[string]string{
		"TRUE":   "TRUE",
		"true":   "TRUE",
		" True ": "TRUE",
		"FALSE":  "FALSE",
		"":       "FALSE",
		"yes":    "FALSE",
		"1":      "FALSE",
	}
	for in, want := range cases {
		if got := NormalizeFavorite(in); got != want {
			t.Errorf("NormalizeFavorite(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordID_CollidesOnNameAndAddress(t *testing.T) {
	a := Record{Name: "Acme", Address: "1 Main St", Phone: "555"}
	b := Record{Name: "Acme", Address: "1 Main St", Phone: "999"}
	c := Record{Name: "Acme", Address: "2 Elm St"}

	if a.ID() != b.ID() {
		t.Error("records with identical name+address must share an ID")
	}
	if a.ID() == c.ID() {
		t.Error("records with different addresses must not share an ID")
	}
}

func TestColumnIndex(t *testing.T) {
	headers := []string{"name", "address", "favorite"}
	if got := ColumnIndex(headers, "Favorite"); got != 2 {
		t.Errorf("expected column 2, got %d", got)
	}
	if got := ColumnIndex(headers, "rating"); got != -1 {
		t.Errorf("expected -1 for missing column, got %d", got)
	}
}

func TestSetField_NormalizesFavorite(t *testing.T) {
	var rec Record
	rec.SetField("favorite", "true")
	if rec.Favorite != "TRUE" {
		t.Errorf("expected TRUE, got %q", rec.Favorite)
	}
}
