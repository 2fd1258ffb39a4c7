package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"leadlens/api/internal/ai"
	"leadlens/api/internal/auth"
	"leadlens/api/internal/authpw"
	"leadlens/api/internal/config"
	"leadlens/api/internal/export"
	"leadlens/api/internal/history"
	"leadlens/api/internal/poller"
	"leadlens/api/internal/query"
	"leadlens/api/internal/record"
	"leadlens/api/internal/search"
	"leadlens/api/internal/session"
	"leadlens/api/internal/sheet"
	"leadlens/api/internal/store"
	"leadlens/api/internal/util"
	"leadlens/api/internal/view"
)

type Session struct {
	Token        string
	RefreshToken string
	UserID       string
	UserName     string
	Email        string
	JTI          string
	ExpiresAt    time.Time
}

type dataStore interface {
	CreateUser(context.Context, store.User) error
	GetUserByEmail(context.Context, string) (store.User, error)
	GetUserByID(context.Context, string) (store.User, error)
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
	SaveRefreshSession(context.Context, string, string, time.Time) error
	LookupRefreshSession(context.Context, string) (store.User, error)
	RevokeRefreshSession(context.Context, string) error
	RevokeAccessToken(context.Context, string, time.Time) error
	IsAccessTokenRevoked(context.Context, string) (bool, error)
	CreateSavedSearch(context.Context, store.SavedSearch) error
	GetSavedSearch(ctx context.Context, userID, searchID string) (store.SavedSearch, error)
	ListSavedSearches(context.Context, string) ([]store.SavedSearch, error)
	DeleteSavedSearch(ctx context.Context, userID, searchID string) error
	SaveLeads(context.Context, string, []store.SavedLead) error
	ListLeadsBySearch(context.Context, string) ([]store.SavedLead, error)
	DeleteLeadsBySearch(context.Context, string) error
	Ping(ctx context.Context) error
}

// refreshStore holds refresh token state. Redis serves this when it is
// configured; the Postgres store is the fallback.
type refreshStore interface {
	SaveRefreshSession(context.Context, string, string, time.Time) error
	LookupRefreshSession(context.Context, string) (store.User, error)
	RevokeRefreshSession(context.Context, string) error
}

// clientState remembers small per-user preferences between visits.
type clientState interface {
	SaveLastSource(ctx context.Context, userID, sourceURL string) error
	LastSource(ctx context.Context, userID string) (string, error)
}

type sheetClient interface {
	FetchRows(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
	UpdateCell(ctx context.Context, spreadsheetID, cellRange, value string) error
}

type aiSearcher interface {
	Search(ctx context.Context, req ai.SearchRequest) ([]ai.Lead, error)
}

type snapshotHistory interface {
	CommitSnapshot(workspaceID string, headers []string, records []record.Record, author, message string) (history.Entry, error)
	History(workspaceID string, limit int) ([]history.Entry, error)
	SnapshotByHash(workspaceID, hash string) ([]string, []record.Record, error)
}

// Deps collects the service's collaborators. Store and Sheets are required;
// everything else degrades gracefully when nil.
type Deps struct {
	Store     *store.PostgresStore
	Sessions  *session.RedisStore
	Sheets    *sheet.Client
	AI        *ai.Client
	Passwords *authpw.Service
	Exporter  *export.Service
	Searcher  *search.Service
	Snapshots *history.Service
}

type Service struct {
	cfg       config.Config
	store     dataStore
	sessions  refreshStore
	state     clientState
	sheets    sheetClient
	ai        aiSearcher
	passwords *authpw.Service
	exporter  *export.Service
	searcher  *search.Service
	snapshots snapshotHistory

	mu         sync.RWMutex
	workspaces map[string]*workspace
}

func New(cfg config.Config, deps Deps) *Service {
	s := &Service{
		cfg:        cfg,
		store:      deps.Store,
		sheets:     deps.Sheets,
		passwords:  deps.Passwords,
		exporter:   deps.Exporter,
		searcher:   deps.Searcher,
		workspaces: make(map[string]*workspace),
	}
	if deps.Sessions != nil {
		s.sessions = deps.Sessions
		s.state = deps.Sessions
	}
	if deps.AI != nil {
		s.ai = deps.AI
	}
	if deps.Snapshots != nil {
		s.snapshots = deps.Snapshots
	}
	return s
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) PasswordService() *authpw.Service {
	return s.passwords
}

// refreshStorage prefers Redis for refresh tokens and falls back to Postgres.
func (s *Service) refreshStorage() refreshStore {
	if s.sessions != nil {
		return s.sessions
	}
	return s.store
}

// CreateSession issues access and refresh tokens for an authenticated user.
func (s *Service) CreateSession(ctx context.Context, userID string) (Session, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	tokenHash := auth.HashToken(refreshToken)
	storage := s.refreshStorage()
	user, err := storage.LookupRefreshSession(ctx, tokenHash)
	if err != nil {
		return Session{}, err
	}
	if err := storage.RevokeRefreshSession(ctx, tokenHash); err != nil {
		return Session{}, err
	}
	// Redis keeps only the user ID; rehydrate the rest from Postgres.
	if user.DisplayName == "" {
		user, err = s.store.GetUserByID(ctx, user.ID)
		if err != nil {
			return Session{}, err
		}
	}
	return s.issueSession(ctx, user)
}

func (s *Service) issueSession(ctx context.Context, user store.User) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)
	jti := util.NewID("jti")

	token, err := auth.IssueToken([]byte(s.cfg.JWTSecret), auth.Claims{
		Sub:   user.ID,
		Name:  user.DisplayName,
		Email: user.Email,
		JTI:   jti,
		Exp:   expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refresh := util.NewID("rft") + util.NewID("")
	refreshExpires := now.Add(s.cfg.RefreshTTL)
	if err := s.refreshStorage().SaveRefreshSession(ctx, auth.HashToken(refresh), user.ID, refreshExpires); err != nil {
		return Session{}, err
	}

	return Session{
		Token:        token,
		RefreshToken: refresh,
		UserID:       user.ID,
		UserName:     user.DisplayName,
		Email:        user.Email,
		JTI:          jti,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.JWTSecret), token)
	if err != nil {
		return Session{}, err
	}
	revoked, err := s.store.IsAccessTokenRevoked(ctx, claims.JTI)
	if err != nil {
		return Session{}, err
	}
	if revoked {
		return Session{}, auth.ErrInvalidToken
	}

	return Session{
		Token:     token,
		UserID:    claims.Sub,
		UserName:  claims.Name,
		Email:     claims.Email,
		JTI:       claims.JTI,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

func (s *Service) Logout(ctx context.Context, sess Session, refreshToken string) error {
	if sess.JTI != "" {
		_ = s.store.RevokeAccessToken(ctx, sess.JTI, sess.ExpiresAt)
	}
	if refreshToken != "" {
		_ = s.refreshStorage().RevokeRefreshSession(ctx, auth.HashToken(refreshToken))
	}
	return nil
}

// LastSource returns the spreadsheet URL the user last connected, if any.
func (s *Service) LastSource(ctx context.Context, sess Session) (string, bool) {
	if s.state == nil {
		return "", false
	}
	url, err := s.state.LastSource(ctx, sess.UserID)
	if err != nil {
		return "", false
	}
	return url, true
}

// workspace is one connected spreadsheet: its normalized records, its poller,
// and the bookkeeping that keeps writes and polls from trampling each other.
type workspace struct {
	id            string
	spreadsheetID string
	sheetName     string
	sourceURL     string
	ownerID       string
	ownerName     string

	mu         sync.RWMutex
	headers    []string
	records    []record.Record
	lastError  string
	lastSyncAt time.Time

	editMu  sync.Mutex
	editors int

	lockMu     sync.Mutex
	writeLocks map[string]bool

	poller *poller.Poller
}

func (w *workspace) editing() bool {
	w.editMu.Lock()
	defer w.editMu.Unlock()
	return w.editors > 0
}

// tryLockRecord claims the per-record write slot. Concurrent writes to the
// same record are rejected rather than queued so the caller sees a clean
// conflict instead of a silently reordered pair of sheet writes.
func (w *workspace) tryLockRecord(recordID string) bool {
	w.lockMu.Lock()
	defer w.lockMu.Unlock()
	if w.writeLocks[recordID] {
		return false
	}
	w.writeLocks[recordID] = true
	return true
}

func (w *workspace) unlockRecord(recordID string) {
	w.lockMu.Lock()
	defer w.lockMu.Unlock()
	delete(w.writeLocks, recordID)
}

func (w *workspace) snapshot() ([]record.Record, []string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	records := make([]record.Record, len(w.records))
	copy(records, w.records)
	headers := make([]string, len(w.headers))
	copy(headers, w.headers)
	return records, headers
}

type WorkspaceInfo struct {
	ID            string    `json:"id"`
	SpreadsheetID string    `json:"spreadsheetId"`
	SheetName     string    `json:"sheetName"`
	SourceURL     string    `json:"sourceUrl"`
	Headers       []string  `json:"headers"`
	RecordCount   int       `json:"recordCount"`
	LastSyncAt    time.Time `json:"lastSyncAt"`
}

// ConnectWorkspace loads a spreadsheet, normalizes it, and starts polling it
// for outside changes.
func (s *Service) ConnectWorkspace(ctx context.Context, sess Session, sourceURL, sheetName string) (WorkspaceInfo, error) {
	spreadsheetID := sheet.ExtractID(sourceURL)
	if spreadsheetID == "" {
		return WorkspaceInfo{}, errValidation("a spreadsheet URL or ID is required")
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	rows, err := s.sheets.FetchRows(ctx, spreadsheetID, sheet.RowRange(sheetName))
	if err != nil {
		return WorkspaceInfo{}, sheetDomainError(err)
	}
	records, headers, err := record.FromRows(rows)
	if err != nil {
		if errors.Is(err, record.ErrEmptyData) {
			return WorkspaceInfo{}, errValidation("the sheet has no data rows")
		}
		return WorkspaceInfo{}, err
	}

	ws := &workspace{
		id:            util.NewID("ws"),
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		sourceURL:     sourceURL,
		ownerID:       sess.UserID,
		ownerName:     sess.UserName,
		headers:       headers,
		records:       records,
		lastSyncAt:    time.Now(),
		writeLocks:    make(map[string]bool),
	}

	interval := s.cfg.PollInterval
	if interval <= 0 {
		interval = poller.DefaultInterval
	}
	ws.poller = poller.New(
		func(ctx context.Context) ([][]string, error) {
			return s.sheets.FetchRows(ctx, ws.spreadsheetID, sheet.RowRange(ws.sheetName))
		},
		poller.WithInterval(interval),
		poller.WithEditGate(ws.editing),
		poller.WithOnApply(func(rows [][]string) { s.applyRows(ws, rows) }),
		poller.WithOnError(func(err error) {
			ws.mu.Lock()
			ws.lastError = sheet.UserMessage(err)
			ws.mu.Unlock()
		}),
	)
	ws.poller.Seed(rows)

	s.mu.Lock()
	s.workspaces[ws.id] = ws
	s.mu.Unlock()

	if err := ws.poller.Start(); err != nil && !errors.Is(err, poller.ErrAlreadyStarted) {
		return WorkspaceInfo{}, err
	}

	if s.state != nil {
		_ = s.state.SaveLastSource(ctx, sess.UserID, sourceURL)
	}
	if s.snapshots != nil {
		_, _ = s.snapshots.CommitSnapshot(ws.id, headers, records, sess.UserName, "Connect spreadsheet")
	}

	return s.workspaceInfo(ws), nil
}

// applyRows replaces the workspace record set after the poller saw a change.
func (s *Service) applyRows(ws *workspace, rows [][]string) {
	records, headers, err := record.FromRows(rows)
	if err != nil {
		ws.mu.Lock()
		ws.lastError = "The sheet no longer has data rows."
		ws.mu.Unlock()
		return
	}

	ws.mu.Lock()
	message := "Sheet changed"
	if !record.HeadersEqual(ws.headers, headers) {
		message = "Sheet structure changed"
	}
	ws.headers = headers
	ws.records = records
	ws.lastError = ""
	ws.lastSyncAt = time.Now()
	ws.mu.Unlock()

	if s.snapshots != nil {
		_, _ = s.snapshots.CommitSnapshot(ws.id, headers, records, ws.ownerName, message)
	}
}

func (s *Service) workspace(id string) (*workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return nil, errNotFound("workspace not found")
	}
	return ws, nil
}

// workspaceFor resolves a workspace for its owner. A foreign workspace ID is
// indistinguishable from an unknown one.
func (s *Service) workspaceFor(sess Session, id string) (*workspace, error) {
	ws, err := s.workspace(id)
	if err != nil {
		return nil, err
	}
	if ws.ownerID != sess.UserID {
		return nil, errNotFound("workspace not found")
	}
	return ws, nil
}

func (s *Service) workspaceInfo(ws *workspace) WorkspaceInfo {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return WorkspaceInfo{
		ID:            ws.id,
		SpreadsheetID: ws.spreadsheetID,
		SheetName:     ws.sheetName,
		SourceURL:     ws.sourceURL,
		Headers:       append([]string(nil), ws.headers...),
		RecordCount:   len(ws.records),
		LastSyncAt:    ws.lastSyncAt,
	}
}

// DisconnectWorkspace stops polling and forgets the workspace. Only the owner
// can disconnect it.
func (s *Service) DisconnectWorkspace(sess Session, id string) error {
	s.mu.Lock()
	ws, ok := s.workspaces[id]
	if ok && ws.ownerID != sess.UserID {
		ok = false
	}
	if ok {
		delete(s.workspaces, id)
	}
	s.mu.Unlock()
	if !ok {
		return errNotFound("workspace not found")
	}
	ws.poller.Stop()
	return nil
}

type RecordsQuery struct {
	Query   string
	SortKey string
	Dir     query.Direction
}

// Records returns the filtered, sorted projection of a workspace.
func (s *Service) Records(ctx context.Context, sess Session, workspaceID string, q RecordsQuery) (map[string]any, error) {
	ws, err := s.workspaceFor(sess, workspaceID)
	if err != nil {
		return nil, err
	}
	records, _ := ws.snapshot()

	filtered := query.Filter(records, q.Query)
	sorted := query.Sort(filtered, q.SortKey, q.Dir)

	favorites := 0
	for _, rec := range sorted {
		if rec.Favorite == record.FavoriteTrue {
			favorites++
		}
	}

	return map[string]any{
		"records":   view.Cards(sorted),
		"markers":   view.Markers(sorted),
		"total":     len(records),
		"matched":   len(sorted),
		"favorites": favorites,
	}, nil
}

// ToggleFavorite flips a record's favorite flag, writing the change through
// to the sheet. The in-memory flip happens first; a failed write rolls it
// back so the projection never drifts from the sheet.
func (s *Service) ToggleFavorite(ctx context.Context, sess Session, workspaceID, recordID string) (view.Card, error) {
	ws, err := s.workspaceFor(sess, workspaceID)
	if err != nil {
		return view.Card{}, err
	}
	if !ws.tryLockRecord(recordID) {
		return view.Card{}, errConflict("WRITE_IN_FLIGHT", "A write for this record is already in progress")
	}
	defer ws.unlockRecord(recordID)

	ws.mu.Lock()
	idx := indexOfRecord(ws.records, recordID)
	if idx < 0 {
		ws.mu.Unlock()
		return view.Card{}, errNotFound("record not found")
	}
	if !ws.records[idx].Editable() {
		ws.mu.Unlock()
		return view.Card{}, errValidation("this record cannot be edited")
	}
	column := record.ColumnIndex(ws.headers, "favorite")
	if column < 0 {
		ws.mu.Unlock()
		return view.Card{}, errValidation("the sheet has no favorite column")
	}

	prior := ws.records[idx].Favorite
	next := record.FavoriteTrue
	if prior == record.FavoriteTrue {
		next = record.FavoriteFalse
	}
	ws.records[idx].Favorite = next
	rowIndex := ws.records[idx].RowIndex
	ws.mu.Unlock()

	cell := sheet.CellRange(ws.sheetName, column, rowIndex)
	if err := s.sheets.UpdateCell(ctx, ws.spreadsheetID, cell, next); err != nil {
		ws.mu.Lock()
		if j := indexOfRecord(ws.records, recordID); j >= 0 {
			ws.records[j].Favorite = prior
		}
		ws.mu.Unlock()
		return view.Card{}, sheetDomainError(err)
	}

	return ws.cardFor(recordID), nil
}

// UpdateRecordField edits one field of a record and writes it through to the
// sheet, rolling back the in-memory value if the write fails.
func (s *Service) UpdateRecordField(ctx context.Context, sess Session, workspaceID, recordID, field, value string) (view.Card, error) {
	key := record.CanonicalKey(field)
	if key == "" {
		return view.Card{}, errValidation("a field name is required")
	}

	ws, err := s.workspaceFor(sess, workspaceID)
	if err != nil {
		return view.Card{}, err
	}
	if !ws.tryLockRecord(recordID) {
		return view.Card{}, errConflict("WRITE_IN_FLIGHT", "A write for this record is already in progress")
	}
	defer ws.unlockRecord(recordID)

	ws.mu.Lock()
	idx := indexOfRecord(ws.records, recordID)
	if idx < 0 {
		ws.mu.Unlock()
		return view.Card{}, errNotFound("record not found")
	}
	if !ws.records[idx].Editable() {
		ws.mu.Unlock()
		return view.Card{}, errValidation("this record cannot be edited")
	}
	column := record.ColumnIndex(ws.headers, key)
	if column < 0 {
		ws.mu.Unlock()
		return view.Card{}, errValidation(fmt.Sprintf("the sheet has no %q column", key))
	}

	if key == "favorite" {
		value = record.NormalizeFavorite(value)
	}
	prior := ws.records[idx].Field(key)
	ws.records[idx].SetField(key, value)
	rowIndex := ws.records[idx].RowIndex
	// Editing name or address changes the derived ID.
	currentID := ws.records[idx].ID()
	ws.mu.Unlock()

	cell := sheet.CellRange(ws.sheetName, column, rowIndex)
	if err := s.sheets.UpdateCell(ctx, ws.spreadsheetID, cell, value); err != nil {
		ws.mu.Lock()
		if j := indexOfRecord(ws.records, currentID); j >= 0 {
			ws.records[j].SetField(key, prior)
		}
		ws.mu.Unlock()
		return view.Card{}, sheetDomainError(err)
	}

	return ws.cardFor(currentID), nil
}

// cardFor projects the current state of one record. A record displaced by a
// concurrent poll falls back to a zero card; callers treat that as refresh.
func (w *workspace) cardFor(recordID string) view.Card {
	w.mu.RLock()
	defer w.mu.RUnlock()
	idx := indexOfRecord(w.records, recordID)
	if idx < 0 {
		return view.Card{}
	}
	return view.Cards(w.records[idx : idx+1])[0]
}

// BeginEdit opens an edit session. Polling pauses while any session is open.
func (s *Service) BeginEdit(sess Session, workspaceID string) error {
	ws, err := s.workspaceFor(sess, workspaceID)
	if err != nil {
		return err
	}
	ws.editMu.Lock()
	ws.editors++
	ws.editMu.Unlock()
	return nil
}

// EndEdit closes an edit session.
func (s *Service) EndEdit(sess Session, workspaceID string) error {
	ws, err := s.workspaceFor(sess, workspaceID)
	if err != nil {
		return err
	}
	ws.editMu.Lock()
	if ws.editors > 0 {
		ws.editors--
	}
	ws.editMu.Unlock()
	return nil
}

// PollStatus reports the poller phase and last sync outcome.
func (s *Service) PollStatus(sess Session, workspaceID string) (map[string]any, error) {
	ws, err := s.workspaceFor(sess, workspaceID)
	if err != nil {
		return nil, err
	}
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return map[string]any{
		"state":       string(ws.poller.State()),
		"editing":     ws.editing(),
		"lastError":   ws.lastError,
		"lastSyncAt":  ws.lastSyncAt,
		"recordCount": len(ws.records),
	}, nil
}

// ResumePolling clears a fatal suspension after the user fixed the source.
func (s *Service) ResumePolling(sess Session, workspaceID string) error {
	ws, err := s.workspaceFor(sess, workspaceID)
	if err != nil {
		return err
	}
	ws.poller.Resume()
	ws.mu.Lock()
	ws.lastError = ""
	ws.mu.Unlock()
	return nil
}

// ExportRecords renders the current filtered view of a workspace as a file.
// When upload is requested and object storage is configured, the artifact is
// also stored and its URL returned.
func (s *Service) ExportRecords(ctx context.Context, sess Session, workspaceID string, q RecordsQuery, format export.Format, upload bool) (*export.Result, string, error) {
	ws, err := s.workspaceFor(sess, workspaceID)
	if err != nil {
		return nil, "", err
	}
	records, _ := ws.snapshot()
	filtered := query.Filter(records, q.Query)
	sorted := query.Sort(filtered, q.SortKey, q.Dir)

	result, err := s.exporter.Export("leads-"+ws.sheetName, sorted, format)
	if err != nil {
		if errors.Is(err, export.ErrNoRecords) {
			return nil, "", errValidation("there are no records to export")
		}
		if errors.Is(err, export.ErrPDFDependencyMissing) {
			return nil, "", domainError(http.StatusNotImplemented, "PDF_UNAVAILABLE", "PDF export is not available on this server", nil)
		}
		return nil, "", err
	}

	var url string
	if upload && s.exporter.UploadConfigured() {
		url, err = s.exporter.Upload(ctx, result)
		if err != nil {
			return nil, "", fmt.Errorf("upload export: %w", err)
		}
	}
	return result, url, nil
}

// WorkspaceHistory lists snapshot commits for a workspace, newest first.
func (s *Service) WorkspaceHistory(sess Session, workspaceID string, limit int) ([]history.Entry, error) {
	if _, err := s.workspaceFor(sess, workspaceID); err != nil {
		return nil, err
	}
	if s.snapshots == nil {
		return []history.Entry{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	return s.snapshots.History(workspaceID, limit)
}

// SnapshotRecords returns the record set of one historical snapshot, projected
// the same way as the live view.
func (s *Service) SnapshotRecords(sess Session, workspaceID, hash string) (map[string]any, error) {
	if _, err := s.workspaceFor(sess, workspaceID); err != nil {
		return nil, err
	}
	if s.snapshots == nil {
		return nil, errNotFound("snapshot not found")
	}
	headers, records, err := s.snapshots.SnapshotByHash(workspaceID, hash)
	if err != nil {
		return nil, errNotFound("snapshot not found")
	}
	return map[string]any{
		"headers": headers,
		"records": view.Cards(records),
		"markers": view.Markers(records),
		"count":   len(records),
	}, nil
}

func indexOfRecord(records []record.Record, recordID string) int {
	for i := range records {
		if records[i].ID() == recordID {
			return i
		}
	}
	return -1
}

func parseLimitOffset(rawLimit, rawOffset string) (int, int, error) {
	limit, offset := 20, 0
	if raw := strings.TrimSpace(rawLimit); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errValidation("limit must be an integer")
		}
		limit = parsed
	}
	if raw := strings.TrimSpace(rawOffset); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errValidation("offset must be an integer")
		}
		offset = parsed
	}
	return limit, offset, nil
}
