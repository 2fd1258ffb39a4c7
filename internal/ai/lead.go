// Package ai queries a generative model for structured business leads:
// prompt in, schema-validated JSON out.
package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// SocialLinks holds per-platform profile URLs.
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Lead is one business returned by the model. Name, Address, Lat, and Lng are
// required; the rest is best-effort.
type Lead struct {
	Name        string       `json:"name"`
	Address     string       `json:"address"`
	Lat         float64      `json:"lat"`
	Lng         float64      `json:"lng"`
	Phone       string       `json:"phone,omitempty"`
	Website     string       `json:"website,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	Rating      float64      `json:"rating,omitempty"`
	SocialMedia *SocialLinks `json:"socialMedia,omitempty"`
	Sources     []string     `json:"sources,omitempty"`
}

// SearchRequest describes one lead search.
type SearchRequest struct {
	BusinessType string
	City         string
	RadiusKm     int
	MaxResults   int
}

// BuildPrompt renders the search request as the model prompt.
func BuildPrompt(req SearchRequest) string {
	max := req.MaxResults
	if max <= 0 {
		max = 20
	}
	return fmt.Sprintf(
		"List up to %d real %s businesses within %d km of %s. "+
			"For each, provide the exact name, street address, latitude, longitude, "+
			"and when known: phone, website, a one-sentence summary, rating out of 5, "+
			"and social media profile URLs. Only include businesses you are confident exist.",
		max, strings.TrimSpace(req.BusinessType), req.RadiusKm, strings.TrimSpace(req.City),
	)
}

// leadSchema declares the response shape enforced by the model: an array of
// lead objects with the required identity and coordinate fields.
func leadSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":    {Type: genai.TypeString},
				"address": {Type: genai.TypeString},
				"lat":     {Type: genai.TypeNumber},
				"lng":     {Type: genai.TypeNumber},
				"phone":   {Type: genai.TypeString},
				"website": {Type: genai.TypeString},
				"summary": {Type: genai.TypeString},
				"rating":  {Type: genai.TypeNumber},
				"socialMedia": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"instagram": {Type: genai.TypeString},
						"twitter":   {Type: genai.TypeString},
						"facebook":  {Type: genai.TypeString},
					},
				},
			},
			Required: []string{"name", "address", "lat", "lng"},
		},
	}
}

// ParseLeads decodes and validates the model's JSON response. Schema
// enforcement is not trusted on its own: every lead is checked for the
// required fields and plausible coordinates, and invalid entries fail the
// whole response rather than being silently dropped.
func ParseLeads(raw []byte) ([]Lead, error) {
	var leads []Lead
	if err := json.Unmarshal(raw, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	for i, lead := range leads {
		if err := validateLead(lead); err != nil {
			return nil, fmt.Errorf("lead %d: %w", i, err)
		}
	}
	return leads, nil
}

func validateLead(lead Lead) error {
	if strings.TrimSpace(lead.Name) == "" {
		return fmt.Errorf("missing required field name")
	}
	if strings.TrimSpace(lead.Address) == "" {
		return fmt.Errorf("missing required field address")
	}
	if lead.Lat < -90 || lead.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", lead.Lat)
	}
	if lead.Lng < -180 || lead.Lng > 180 {
		return fmt.Errorf("longitude %v out of range", lead.Lng)
	}
	return nil
}
