package app

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"leadlens/api/internal/ai"
	"leadlens/api/internal/record"
	"leadlens/api/internal/search"
	"leadlens/api/internal/store"
	"leadlens/api/internal/util"
	"leadlens/api/internal/view"
)

type AISearchInput struct {
	BusinessType string `json:"businessType"`
	City         string `json:"city"`
	RadiusKm     int    `json:"radiusKm"`
	MaxResults   int    `json:"maxResults"`
}

func (in AISearchInput) validate() error {
	if strings.TrimSpace(in.BusinessType) == "" {
		return errValidation("businessType is required")
	}
	if strings.TrimSpace(in.City) == "" {
		return errValidation("city is required")
	}
	if in.RadiusKm < 0 {
		return errValidation("radiusKm must not be negative")
	}
	return nil
}

// SearchBusinesses asks the model for leads matching the request and returns
// them projected as cards and map markers. AI results are display-only; they
// carry no sheet row and cannot be edited in place.
func (s *Service) SearchBusinesses(ctx context.Context, in AISearchInput) (map[string]any, error) {
	if s.ai == nil {
		return nil, domainError(http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI search is not configured on this server", nil)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	leads, err := s.ai.Search(ctx, ai.SearchRequest{
		BusinessType: in.BusinessType,
		City:         in.City,
		RadiusKm:     in.RadiusKm,
		MaxResults:   in.MaxResults,
	})
	if err != nil {
		return nil, domainError(http.StatusBadGateway, "AI_SEARCH_FAILED", "The search could not be completed. Try rephrasing the request.", nil)
	}

	records := recordsFromLeads(leads)
	return map[string]any{
		"records": view.Cards(records),
		"markers": view.Markers(records),
		"count":   len(records),
	}, nil
}

// CreateSavedSearch runs an AI search and persists both the request and its
// result set, indexing the leads for full-text search.
func (s *Service) CreateSavedSearch(ctx context.Context, sess Session, in AISearchInput) (map[string]any, error) {
	if s.ai == nil {
		return nil, domainError(http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI search is not configured on this server", nil)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	leads, err := s.ai.Search(ctx, ai.SearchRequest{
		BusinessType: in.BusinessType,
		City:         in.City,
		RadiusKm:     in.RadiusKm,
		MaxResults:   in.MaxResults,
	})
	if err != nil {
		return nil, domainError(http.StatusBadGateway, "AI_SEARCH_FAILED", "The search could not be completed. Try rephrasing the request.", nil)
	}

	saved := store.SavedSearch{
		ID:           util.NewID("srch"),
		UserID:       sess.UserID,
		BusinessType: in.BusinessType,
		City:         in.City,
		RadiusKm:     in.RadiusKm,
		MaxResults:   in.MaxResults,
	}
	if err := s.store.CreateSavedSearch(ctx, saved); err != nil {
		return nil, err
	}

	stored := make([]store.SavedLead, 0, len(leads))
	docs := make([]search.LeadDoc, 0, len(leads))
	for _, lead := range leads {
		item := savedLeadFromAI(lead, saved.ID, sess.UserID)
		stored = append(stored, item)
		docs = append(docs, search.LeadDoc{
			ID:          item.ID,
			Name:        item.Name,
			Address:     item.Address,
			Description: item.Description,
			SearchID:    saved.ID,
		})
	}
	if err := s.store.SaveLeads(ctx, saved.ID, stored); err != nil {
		return nil, err
	}
	if s.searcher != nil {
		s.searcher.IndexLeads(docs)
	}

	records := recordsFromLeads(leads)
	return map[string]any{
		"search":  savedSearchPayload(saved),
		"records": view.Cards(records),
		"markers": view.Markers(records),
		"count":   len(records),
	}, nil
}

func (s *Service) ListSavedSearches(ctx context.Context, sess Session) (map[string]any, error) {
	items, err := s.store.ListSavedSearches(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	payload := make([]map[string]any, 0, len(items))
	for _, item := range items {
		payload = append(payload, savedSearchPayload(item))
	}
	return map[string]any{"searches": payload}, nil
}

func (s *Service) DeleteSavedSearch(ctx context.Context, sess Session, searchID string) error {
	if err := s.store.DeleteSavedSearch(ctx, sess.UserID, searchID); err != nil {
		if store.ErrNotFound(err) {
			return errNotFound("saved search not found")
		}
		return err
	}
	if err := s.store.DeleteLeadsBySearch(ctx, searchID); err != nil {
		return err
	}
	if s.searcher != nil {
		s.searcher.DeleteSearch(searchID)
	}
	return nil
}

// SavedSearchLeads returns the stored result set of one saved search.
func (s *Service) SavedSearchLeads(ctx context.Context, sess Session, searchID string) (map[string]any, error) {
	saved, err := s.store.GetSavedSearch(ctx, sess.UserID, searchID)
	if err != nil {
		if store.ErrNotFound(err) {
			return nil, errNotFound("saved search not found")
		}
		return nil, err
	}
	leads, err := s.store.ListLeadsBySearch(ctx, searchID)
	if err != nil {
		return nil, err
	}

	records := make([]record.Record, 0, len(leads))
	for _, lead := range leads {
		records = append(records, recordFromSavedLead(lead))
	}
	return map[string]any{
		"search":  savedSearchPayload(saved),
		"records": view.Cards(records),
		"markers": view.Markers(records),
		"count":   len(records),
	}, nil
}

// SearchLeads runs full-text search over all stored leads.
func (s *Service) SearchLeads(ctx context.Context, q search.Query) (search.Response, error) {
	if s.searcher == nil {
		return search.Response{}, domainError(http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE", "Lead search is not configured on this server", nil)
	}
	return s.searcher.Search(ctx, q), nil
}

// LeadLoader adapts the Postgres lead set as the search fallback source.
func LeadLoader(st *store.PostgresStore) search.Loader {
	return func(ctx context.Context) ([]record.Record, []string, error) {
		leads, err := st.ListAllLeads(ctx)
		if err != nil {
			return nil, nil, err
		}
		records := make([]record.Record, 0, len(leads))
		searchIDs := make([]string, 0, len(leads))
		for _, lead := range leads {
			records = append(records, recordFromSavedLead(lead))
			searchIDs = append(searchIDs, lead.SearchID)
		}
		return records, searchIDs, nil
	}
}

func savedSearchPayload(item store.SavedSearch) map[string]any {
	return map[string]any{
		"id":           item.ID,
		"businessType": item.BusinessType,
		"city":         item.City,
		"radiusKm":     item.RadiusKm,
		"maxResults":   item.MaxResults,
		"createdAt":    item.CreatedAt,
	}
}

func recordsFromLeads(leads []ai.Lead) []record.Record {
	records := make([]record.Record, 0, len(leads))
	for _, lead := range leads {
		records = append(records, record.Record{
			Name:        lead.Name,
			Address:     lead.Address,
			Phone:       lead.Phone,
			Website:     lead.Website,
			Description: lead.Summary,
			Rating:      formatRating(lead.Rating),
			Latitude:    strconv.FormatFloat(lead.Lat, 'f', -1, 64),
			Longitude:   strconv.FormatFloat(lead.Lng, 'f', -1, 64),
			Favorite:    record.FavoriteFalse,
			SocialMedia: socialMap(lead.SocialMedia),
			Sources:     lead.Sources,
		})
	}
	return records
}

func savedLeadFromAI(lead ai.Lead, searchID, userID string) store.SavedLead {
	return store.SavedLead{
		ID:          util.NewID("lead"),
		SearchID:    searchID,
		UserID:      userID,
		Name:        lead.Name,
		Address:     lead.Address,
		Phone:       lead.Phone,
		Website:     lead.Website,
		Description: lead.Summary,
		Rating:      formatRating(lead.Rating),
		Latitude:    strconv.FormatFloat(lead.Lat, 'f', -1, 64),
		Longitude:   strconv.FormatFloat(lead.Lng, 'f', -1, 64),
		Favorite:    record.FavoriteFalse,
		SocialMedia: socialMap(lead.SocialMedia),
		Sources:     lead.Sources,
	}
}

func recordFromSavedLead(lead store.SavedLead) record.Record {
	return record.Record{
		Name:        lead.Name,
		Address:     lead.Address,
		Phone:       lead.Phone,
		Website:     lead.Website,
		Description: lead.Description,
		Rating:      lead.Rating,
		Latitude:    lead.Latitude,
		Longitude:   lead.Longitude,
		Favorite:    record.NormalizeFavorite(lead.Favorite),
		SocialMedia: lead.SocialMedia,
		Sources:     lead.Sources,
	}
}

func socialMap(links *ai.SocialLinks) map[string]string {
	if links == nil {
		return nil
	}
	out := make(map[string]string)
	if links.Instagram != "" {
		out["instagram"] = links.Instagram
	}
	if links.Twitter != "" {
		out["twitter"] = links.Twitter
	}
	if links.Facebook != "" {
		out["facebook"] = links.Facebook
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func formatRating(rating float64) string {
	if rating == 0 {
		return ""
	}
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
