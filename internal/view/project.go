// Package view projects record sets into display descriptors: escaped card
// content for lists and marker descriptors for the map widget. Projection is
// pure; it never touches shared state.
package view

import (
	"html"
	"strconv"

	"leadlens/api/internal/record"
)

// Card is one rendered list entry. Every text field has been HTML-escaped,
// so consumers can interpolate it into markup directly.
type Card struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Phone       string            `json:"phone,omitempty"`
	Website     string            `json:"website,omitempty"`
	Description string            `json:"description,omitempty"`
	Rating      string            `json:"rating,omitempty"`
	Favorite    bool              `json:"favorite"`
	Editable    bool              `json:"editable"`
	SocialMedia map[string]string `json:"socialMedia,omitempty"`
	Sources     []string          `json:"sources,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Marker is one map marker. It shares the card's derived ID so a marker click
// can highlight its card and vice versa.
type Marker struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Favorite bool    `json:"favorite"`
}

// Cards maps records to card descriptors in order.
func Cards(records []record.Record) []Card {
	cards := make([]Card, 0, len(records))
	for _, rec := range records {
		card := Card{
			ID:          rec.ID(),
			Name:        html.EscapeString(rec.Name),
			Address:     html.EscapeString(rec.Address),
			Phone:       html.EscapeString(rec.Phone),
			Website:     html.EscapeString(rec.Website),
			Description: html.EscapeString(rec.Description),
			Rating:      html.EscapeString(rec.Rating),
			Favorite:    rec.Favorite == record.FavoriteTrue,
			Editable:    rec.Editable(),
		}
		if len(rec.SocialMedia) > 0 {
			card.SocialMedia = make(map[string]string, len(rec.SocialMedia))
			for platform, url := range rec.SocialMedia {
				card.SocialMedia[html.EscapeString(platform)] = html.EscapeString(url)
			}
		}
		for _, source := range rec.Sources {
			card.Sources = append(card.Sources, html.EscapeString(source))
		}
		if len(rec.Extra) > 0 {
			card.Extra = make(map[string]string, len(rec.Extra))
			for key, value := range rec.Extra {
				card.Extra[html.EscapeString(key)] = html.EscapeString(value)
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// Markers maps records with usable coordinates to marker descriptors.
// Records without both coordinates stay in the list but get no marker.
func Markers(records []record.Record) []Marker {
	markers := make([]Marker, 0, len(records))
	for _, rec := range records {
		if !rec.HasCoordinates() {
			continue
		}
		lat, latErr := strconv.ParseFloat(rec.Latitude, 64)
		lng, lngErr := strconv.ParseFloat(rec.Longitude, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		markers = append(markers, Marker{
			ID:       rec.ID(),
			Name:     rec.Name,
			Lat:      lat,
			Lng:      lng,
			Favorite: rec.Favorite == record.FavoriteTrue,
		})
	}
	return markers
}
