package query

import (
	"testing"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"leadlens/api/internal/record"
)

func testRecords() []record.Record {
	return []record.Record{
		{Name: "Bayside Barbers", Address: "9 Ocean Ave", Rating: "4.5", Favorite: "FALSE"},
		{Name: "Acme Salon", Address: "1 Main St", Rating: "3.9", Favorite: "TRUE"},
		{Name: "Curl Up", Address: "123 Main St", Description: "walk-ins welcome", Rating: "4.5", Favorite: "FALSE"},
	}
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	got := Filter(testRecords(), "MAIN st")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Name != "Acme Salon" || got[1].Name != "Curl Up" {
		t.Errorf("unexpected matches: %v, %v", got[0].Name, got[1].Name)
	}
}

func TestFilter_MatchesDescription(t *testing.T) {
	got := Filter(testRecords(), "walk-ins")
	if len(got) != 1 || got[0].Name != "Curl Up" {
		t.Fatalf("expected Curl Up, got %v", got)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	once := Filter(testRecords(), "main")
	twice := Filter(once, "main")
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID() != twice[i].ID() {
			t.Errorf("record %d differs after refiltering", i)
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := testRecords()
	Filter(in, "acme")
	if in[0].Name != "Bayside Barbers" {
		t.Error("input slice was reordered")
	}
}

func TestSort_Booleans(t *testing.T) {
	got := Sort(testRecords(), "favorite", Descending)
	if got[0].Favorite != "TRUE" {
		t.Errorf("expected TRUE first descending, got %q", got[0].Favorite)
	}
	got = Sort(testRecords(), "favorite", Ascending)
	if got[len(got)-1].Favorite != "TRUE" {
		t.Errorf("expected TRUE last ascending, got %q", got[len(got)-1].Favorite)
	}
}

func TestSort_NumericGuard(t *testing.T) {
	coll := collate.New(language.Und, collate.Numeric, collate.IgnoreCase)

	if _, ok := asNumber("123 Main St"); ok {
		t.Error(`"123 Main St" must not be numeric`)
	}
	if _, ok := asNumber("123"); !ok {
		t.Error(`"123" must be numeric`)
	}
	if _, ok := asNumber("123.50"); ok {
		t.Error(`"123.50" fails the round-trip guard`)
	}

	// Mixed values fall back to numeric-aware collation, so the digit runs
	// still compare as numbers: 45 before 123.
	if compareValues(coll, "45 Elm St", "123 Main St") >= 0 {
		t.Error("numeric-aware collation should order 45... before 123...")
	}
}

func TestSort_NumericOrder(t *testing.T) {
	records := []record.Record{
		{Name: "a", Rating: "10"},
		{Name: "b", Rating: "9.5"},
		{Name: "c", Rating: "2"},
	}
	got := Sort(records, "rating", Ascending)
	want := []string{"c", "b", "a"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, got[i].Name)
		}
	}
}

func TestSort_ReversedDirectionIsExactReverse(t *testing.T) {
	records := []record.Record{
		{Name: "Curl Up"},
		{Name: "Acme Salon"},
		{Name: "Bayside Barbers"},
	}
	asc := Sort(records, "name", Ascending)
	desc := Sort(records, "name", Descending)
	for i := range asc {
		if asc[i].Name != desc[len(desc)-1-i].Name {
			t.Fatalf("descending is not the reverse of ascending at %d", i)
		}
	}
}

func TestSort_StableOnTies(t *testing.T) {
	records := []record.Record{
		{Name: "first", Rating: "4.5"},
		{Name: "second", Rating: "4.5"},
		{Name: "third", Rating: "4.5"},
	}
	got := Sort(records, "rating", Ascending)
	for i, name := range []string{"first", "second", "third"} {
		if got[i].Name != name {
			t.Fatalf("tie order not preserved at %d: got %s", i, got[i].Name)
		}
	}
}

func TestSort_MissingValuesCoerceToEmpty(t *testing.T) {
	records := []record.Record{
		{Name: "with", Rating: "1"},
		{Name: "without"},
	}
	got := Sort(records, "rating", Ascending)
	if got[0].Name != "without" {
		t.Errorf("empty value should sort before \"1\", got %s first", got[0].Name)
	}
}

func TestSort_NoneKeepsInputOrder(t *testing.T) {
	in := testRecords()
	got := Sort(in, SortNone, Descending)
	for i := range in {
		if got[i].ID() != in[i].ID() {
			t.Fatalf("order changed at %d", i)
		}
	}
}
