package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) CreateUser(ctx context.Context, user User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, display_name, email, password_hash)
		VALUES ($1, $2, LOWER($3), $4)
	`, user.ID, user.DisplayName, user.Email, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, email, password_hash, created_at, updated_at
		FROM users WHERE email = LOWER($1)
	`, email).Scan(&user.ID, &user.DisplayName, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, email, password_hash, created_at, updated_at
		FROM users WHERE id = $1
	`, userID).Scan(&user.ID, &user.DisplayName, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET password_hash=$2, updated_at=NOW() WHERE id=$1
	`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveRefreshSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_sessions (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO UPDATE SET user_id=EXCLUDED.user_id, expires_at=EXCLUDED.expires_at, revoked_at=NULL
	`, tokenHash, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}

func (s *PostgresStore) RevokeRefreshSession(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE refresh_sessions SET revoked_at=NOW() WHERE token_hash=$1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}

func (s *PostgresStore) LookupRefreshSession(ctx context.Context, tokenHash string) (User, error) {
	const query = `
		SELECT u.id, u.display_name, u.email
		FROM refresh_sessions rs
		JOIN users u ON u.id = rs.user_id
		WHERE rs.token_hash = $1
			AND rs.revoked_at IS NULL
			AND rs.expires_at > NOW()
	`
	var user User
	err := s.db.QueryRowContext(ctx, query, tokenHash).Scan(&user.ID, &user.DisplayName, &user.Email)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) RevokeAccessToken(ctx context.Context, jti string, exp time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO revoked_access_tokens (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING
	`, jti, exp)
	if err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsAccessTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM revoked_access_tokens WHERE jti=$1)`, jti).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return revoked, nil
}

func (s *PostgresStore) CreateSavedSearch(ctx context.Context, item SavedSearch) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_searches (id, user_id, business_type, city, radius_km, max_results)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, item.ID, item.UserID, item.BusinessType, item.City, item.RadiusKm, item.MaxResults)
	if err != nil {
		return fmt.Errorf("insert saved search: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSavedSearch(ctx context.Context, userID, searchID string) (SavedSearch, error) {
	var item SavedSearch
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, business_type, city, radius_km, max_results, created_at
		FROM saved_searches WHERE id=$1 AND user_id=$2
	`, searchID, userID).Scan(&item.ID, &item.UserID, &item.BusinessType, &item.City, &item.RadiusKm, &item.MaxResults, &item.CreatedAt)
	if err != nil {
		return SavedSearch{}, err
	}
	return item, nil
}

func (s *PostgresStore) ListSavedSearches(ctx context.Context, userID string) ([]SavedSearch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, business_type, city, radius_km, max_results, created_at
		FROM saved_searches
		WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	defer rows.Close()

	items := make([]SavedSearch, 0)
	for rows.Next() {
		var item SavedSearch
		if err := rows.Scan(&item.ID, &item.UserID, &item.BusinessType, &item.City, &item.RadiusKm, &item.MaxResults, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved searches: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) DeleteSavedSearch(ctx context.Context, userID, searchID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id=$1 AND user_id=$2`, searchID, userID)
	if err != nil {
		return fmt.Errorf("delete saved search: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved search rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SaveLeads replaces the lead set stored for a search in one transaction.
func (s *PostgresStore) SaveLeads(ctx context.Context, searchID string, leads []SavedLead) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save leads: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM saved_leads WHERE search_id=$1`, searchID); err != nil {
		return fmt.Errorf("clear leads: %w", err)
	}
	for _, lead := range leads {
		social, err := json.Marshal(nonNilMap(lead.SocialMedia))
		if err != nil {
			return fmt.Errorf("marshal social media: %w", err)
		}
		sources, err := json.Marshal(nonNilSlice(lead.Sources))
		if err != nil {
			return fmt.Errorf("marshal sources: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO saved_leads
				(id, search_id, user_id, name, address, phone, website, description,
				 rating, latitude, longitude, favorite, social_media, sources)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`, lead.ID, searchID, lead.UserID, lead.Name, lead.Address, lead.Phone, lead.Website,
			lead.Description, lead.Rating, lead.Latitude, lead.Longitude, lead.Favorite,
			string(social), string(sources))
		if err != nil {
			return fmt.Errorf("insert lead: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save leads: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListLeadsBySearch(ctx context.Context, searchID string) ([]SavedLead, error) {
	return s.queryLeads(ctx, `
		SELECT id, search_id, user_id, name, address, phone, website, description,
			rating, latitude, longitude, favorite, social_media, sources, created_at
		FROM saved_leads WHERE search_id=$1 ORDER BY name
	`, searchID)
}

// ListAllLeads returns every stored lead. The search index fallback scans
// this set when Meilisearch is unavailable.
func (s *PostgresStore) ListAllLeads(ctx context.Context) ([]SavedLead, error) {
	return s.queryLeads(ctx, `
		SELECT id, search_id, user_id, name, address, phone, website, description,
			rating, latitude, longitude, favorite, social_media, sources, created_at
		FROM saved_leads ORDER BY name
	`)
}

func (s *PostgresStore) DeleteLeadsBySearch(ctx context.Context, searchID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_leads WHERE search_id=$1`, searchID); err != nil {
		return fmt.Errorf("delete leads: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryLeads(ctx context.Context, query string, args ...any) ([]SavedLead, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	items := make([]SavedLead, 0)
	for rows.Next() {
		var item SavedLead
		var social, sources string
		if err := rows.Scan(&item.ID, &item.SearchID, &item.UserID, &item.Name, &item.Address,
			&item.Phone, &item.Website, &item.Description, &item.Rating, &item.Latitude,
			&item.Longitude, &item.Favorite, &social, &sources, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		if err := json.Unmarshal([]byte(social), &item.SocialMedia); err != nil {
			return nil, fmt.Errorf("decode social media: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &item.Sources); err != nil {
			return nil, fmt.Errorf("decode sources: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return items, nil
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nonNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ErrNotFound reports whether err means the row does not exist.
func ErrNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
