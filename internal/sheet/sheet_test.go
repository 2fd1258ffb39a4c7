package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractID(t *testing.T) {
	cases := map[string]string{
		"https://docs.google.com/spreadsheets/d/1AbC-def_123/edit#gid=0": "1AbC-def_123",
		"https://docs.google.com/spreadsheets/d/1AbC-def_123":            "1AbC-def_123",
		"1AbC-def_123":   "1AbC-def_123",
		"  1AbC-def_123 ": "1AbC-def_123",
	}
	for in, want := range cases {
		if got := ExtractID(in); got != want {
			t.Errorf("ExtractID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{0: "A", 2: "C", 25: "Z", 26: "AA", 27: "AB", 701: "ZZ", 702: "AAA"}
	for in, want := range cases {
		if got := ColumnLetter(in); got != want {
			t.Errorf("ColumnLetter(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestCellRange(t *testing.T) {
	if got := CellRange("Leads", 2, 2); got != "Leads!C2" {
		t.Errorf("expected Leads!C2, got %q", got)
	}
}

func TestFetchRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"range":          "Leads",
			"majorDimension": "ROWS",
			"values":         [][]string{{"Name", "Address"}, {"Acme", "1 Main St"}},
		})
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.Client(), server.URL)
	rows, err := client.FetchRows(context.Background(), "sheet-id", "Leads")
	if err != nil {
		t.Fatalf("FetchRows: %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "Acme" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestFetchRows_Classification(t *testing.T) {
	cases := []struct {
		status int
		class  Class
		fatal  bool
	}{
		{http.StatusNotFound, ClassNotFound, true},
		{http.StatusForbidden, ClassPermissionDenied, true},
		{http.StatusTooManyRequests, ClassRateLimited, false},
		{http.StatusUnauthorized, ClassAuthConfig, false},
		{http.StatusInternalServerError, ClassUnknown, false},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": tc.status, "message": "nope"},
			})
		}))

		client := NewClientWithHTTP(server.Client(), server.URL)
		_, err := client.FetchRows(context.Background(), "sheet-id", "Leads")
		server.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tc.status)
		}
		if got := ClassOf(err); got != tc.class {
			t.Errorf("status %d: class %s, want %s", tc.status, got, tc.class)
		}
		if got := Fatal(err); got != tc.fatal {
			t.Errorf("status %d: fatal %v, want %v", tc.status, got, tc.fatal)
		}
	}
}

func TestUpdateCell_SendsUserEnteredWrite(t *testing.T) {
	var gotPath, gotQuery string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{"updatedCells": 1})
	}))
	defer server.Close()

	client := NewClientWithHTTP(server.Client(), server.URL)
	if err := client.UpdateCell(context.Background(), "sheet-id", "Leads!C2", "TRUE"); err != nil {
		t.Fatalf("UpdateCell: %v", err)
	}

	if gotPath != "/sheet-id/values/Leads!C2" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotQuery != "valueInputOption=USER_ENTERED" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	values, _ := gotBody["values"].([]any)
	if len(values) != 1 {
		t.Fatalf("expected 1 value row, got %v", gotBody["values"])
	}
	row, _ := values[0].([]any)
	if len(row) != 1 || row[0] != "TRUE" {
		t.Errorf("expected [[TRUE]], got %v", values)
	}
}

func TestClassOf_UnknownForPlainErrors(t *testing.T) {
	if got := ClassOf(errors.New("boom")); got != ClassUnknown {
		t.Errorf("expected unknown, got %s", got)
	}
}

func TestUserMessage_ValidationKeepsDetail(t *testing.T) {
	err := newError(ClassValidation, "no favorite column in this sheet", nil)
	if got := UserMessage(err); got != "no favorite column in this sheet" {
		t.Errorf("unexpected message %q", got)
	}
}
