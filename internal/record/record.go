// Package record defines the normalized lead record shared by the sheet
// and AI ingestion paths.
package record

import (
	"encoding/base64"
	"strings"
)

// Favorite flag values as stored in the backing sheet.
const (
	FavoriteTrue  = "TRUE"
	FavoriteFalse = "FALSE"
)

// Record is a normalized business entry. Field values are kept as strings,
// matching sheet cells; unknown sheet columns land in Extra. RowIndex is the
// 1-based sheet row (header included) and is zero for AI-sourced records,
// which makes them read-only.
type Record struct {
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Phone       string            `json:"phone,omitempty"`
	Website     string            `json:"website,omitempty"`
	Description string            `json:"description,omitempty"`
	Rating      string            `json:"rating,omitempty"`
	Latitude    string            `json:"latitude,omitempty"`
	Longitude   string            `json:"longitude,omitempty"`
	Favorite    string            `json:"favorite,omitempty"`
	SocialMedia map[string]string `json:"socialMedia,omitempty"`
	Sources     []string          `json:"sources,omitempty"`
	RowIndex    int               `json:"rowIndex,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// ID derives the record identity from name and address. Two records with the
// same name and address collide on purpose: the same key correlates cards and
// map markers.
func (r Record) ID() string {
	return base64.RawURLEncoding.EncodeToString([]byte(r.Name + "|" + r.Address))
}

// Editable reports whether the record is backed by a sheet row and can be
// favorited or edited.
func (r Record) Editable() bool {
	return r.RowIndex > 0
}

// HasCoordinates reports whether both latitude and longitude are present.
func (r Record) HasCoordinates() bool {
	return strings.TrimSpace(r.Latitude) != "" && strings.TrimSpace(r.Longitude) != ""
}

// Field returns the value for a lower-cased field key, consulting the fixed
// schema first and the extension map second. Missing fields yield "".
func (r Record) Field(key string) string {
	switch CanonicalKey(key) {
	case "name":
		return r.Name
	case "address":
		return r.Address
	case "phone":
		return r.Phone
	case "website":
		return r.Website
	case "description":
		return r.Description
	case "rating":
		return r.Rating
	case "latitude":
		return r.Latitude
	case "longitude":
		return r.Longitude
	case "favorite":
		return r.Favorite
	}
	return r.Extra[strings.ToLower(key)]
}

// SetField assigns the value for a lower-cased field key, writing through to
// the fixed schema where the key is known and to Extra otherwise. The
// favorite field is normalized on write.
func (r *Record) SetField(key, value string) {
	switch CanonicalKey(key) {
	case "name":
		r.Name = value
	case "address":
		r.Address = value
	case "phone":
		r.Phone = value
	case "website":
		r.Website = value
	case "description":
		r.Description = value
	case "rating":
		r.Rating = value
	case "latitude":
		r.Latitude = value
	case "longitude":
		r.Longitude = value
	case "favorite":
		r.Favorite = NormalizeFavorite(value)
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[strings.ToLower(key)] = value
	}
}

// CanonicalKey resolves header aliases to the fixed schema key. Unknown keys
// come back lower-cased and untouched.
func CanonicalKey(key string) string {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "lat", "latitude":
		return "latitude"
	case "lng", "lon", "longitude":
		return "longitude"
	case "summary", "description":
		return "description"
	default:
		return strings.ToLower(strings.TrimSpace(key))
	}
}

// NormalizeFavorite coerces any stored value to the literal "TRUE"/"FALSE".
// Anything that is not TRUE (case-insensitively) is FALSE.
func NormalizeFavorite(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), FavoriteTrue) {
		return FavoriteTrue
	}
	return FavoriteFalse
}
