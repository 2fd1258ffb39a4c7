// Package search provides full-text search over saved leads, backed by
// Meilisearch with an in-memory fallback.
package search

// Result is a single search hit returned to the caller.
type Result struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Snippet  string `json:"snippet,omitempty"`
	SearchID string `json:"searchId"`
}

// Query describes a search request across saved leads.
type Query struct {
	Text   string
	Limit  int
	Offset int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// LeadDoc is the data we index per saved lead.
type LeadDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	SearchID    string `json:"searchId"`
}
