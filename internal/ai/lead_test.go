package ai

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(SearchRequest{BusinessType: "hair salon", City: "Rotterdam", RadiusKm: 10, MaxResults: 5})
	for _, want := range []string{"5", "hair salon", "10 km", "Rotterdam"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q: %s", want, prompt)
		}
	}
}

func TestBuildPrompt_DefaultMaxResults(t *testing.T) {
	prompt := BuildPrompt(SearchRequest{BusinessType: "bakery", City: "Utrecht", RadiusKm: 3})
	if !strings.Contains(prompt, "up to 20") {
		t.Errorf("expected default cap of 20 in prompt: %s", prompt)
	}
}

func TestParseLeads(t *testing.T) {
	raw := `[{"name":"Acme Salon","address":"1 Main St","lat":51.9,"lng":4.5,
		"phone":"555-0101","rating":4.5,
		"socialMedia":{"instagram":"https://instagram.com/acme"}}]`

	leads, err := ParseLeads([]byte(raw))
	if err != nil {
		t.Fatalf("ParseLeads: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(leads))
	}
	lead := leads[0]
	if lead.Name != "Acme Salon" || lead.Lat != 51.9 {
		t.Errorf("unexpected lead: %+v", lead)
	}
	if lead.SocialMedia == nil || lead.SocialMedia.Instagram == "" {
		t.Errorf("expected social links, got %+v", lead.SocialMedia)
	}
}

func TestParseLeads_RejectsMissingRequiredFields(t *testing.T) {
	cases := []string{
		`[{"address":"1 Main St","lat":51.9,"lng":4.5}]`,
		`[{"name":"Acme","lat":51.9,"lng":4.5}]`,
		`[{"name":"Acme","address":"1 Main St","lat":951.9,"lng":4.5}]`,
		`[{"name":"Acme","address":"1 Main St","lat":51.9,"lng":400}]`,
		`not json`,
	}
	for _, raw := range cases {
		if _, err := ParseLeads([]byte(raw)); err == nil {
			t.Errorf("expected error for %s", raw)
		}
	}
}

func TestParseLeads_EmptyArray(t *testing.T) {
	leads, err := ParseLeads([]byte(`[]`))
	if err != nil {
		t.Fatalf("ParseLeads: %v", err)
	}
	if len(leads) != 0 {
		t.Errorf("expected no leads, got %d", len(leads))
	}
}
