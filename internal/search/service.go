package search

import (
	"context"
	"log"
	"strings"

	"leadlens/api/internal/record"
)

// Loader reads all saved leads for the fallback path.
type Loader func(ctx context.Context) ([]record.Record, []string, error)

// Service is the facade that tries Meilisearch first and falls back to a
// substring scan over everything the loader returns.
type Service struct {
	meili  *Meili
	loader Loader
}

// NewService creates a search service. meili may be nil if Meilisearch is not
// configured.
func NewService(meili *Meili, loader Loader) *Service {
	return &Service{meili: meili, loader: loader}
}

// Search tries Meilisearch if healthy, otherwise falls back to scanning the
// saved leads directly.
func (s *Service) Search(ctx context.Context, q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, total, err := s.meili.Search(q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text}
		}
		log.Printf("search: meilisearch error, falling back to local scan: %v", err)
	}

	results, total, err := s.scan(ctx, q)
	if err != nil {
		log.Printf("search: local scan error: %v", err)
		return Response{Results: []Result{}, Total: 0, Query: q.Text}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text}
}

func (s *Service) scan(ctx context.Context, q Query) ([]Result, int, error) {
	records, searchIDs, err := s.loader(ctx)
	if err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit == 0 {
		limit = 20
	}

	var results []Result
	total := 0
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	for i, rec := range records {
		if needle != "" && !contains(rec, needle) {
			continue
		}
		total++
		if total <= q.Offset || len(results) >= limit {
			continue
		}
		searchID := ""
		if i < len(searchIDs) {
			searchID = searchIDs[i]
		}
		results = append(results, Result{
			ID:       rec.ID(),
			Name:     rec.Name,
			Address:  rec.Address,
			Snippet:  rec.Description,
			SearchID: searchID,
		})
	}
	return results, total, nil
}

func contains(rec record.Record, needle string) bool {
	for _, field := range []string{rec.Name, rec.Address, rec.Description} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// IndexLeads pushes saved leads into the index (fire-and-forget).
func (s *Service) IndexLeads(docs []LeadDoc) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexLeads(docs); err != nil {
			log.Printf("search: index leads: %v", err)
		}
	}()
}

// DeleteSearch removes a saved search's leads from the index
// (fire-and-forget).
func (s *Service) DeleteSearch(searchID string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteSearch(searchID); err != nil {
			log.Printf("search: delete search %s: %v", searchID, err)
		}
	}()
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}
