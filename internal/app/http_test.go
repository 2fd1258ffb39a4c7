package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadlens/api/internal/ai"
	"leadlens/api/internal/record"
	"leadlens/api/internal/store"
)

func newTestServer(t *testing.T) (http.Handler, *Service, *fakeStore, *fakeSheets, *fakeAI) {
	t.Helper()
	svc, fs, sh, model := newTestService(t)
	server := NewHTTPServer(svc, "*")
	return server.Handler(), svc, fs, sh, model
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.NewDecoder(recorder.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func signIn(t *testing.T, handler http.Handler) string {
	t.Helper()
	resp := doJSON(t, handler, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":       "ada@example.com",
		"password":    "correct horse",
		"displayName": "Ada",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", resp.Code, resp.Body.String())
	}
	payload := decodeResponse(t, resp)
	token, _ := payload["accessToken"].(string)
	if token == "" {
		t.Fatal("signup should return an access token")
	}
	return token
}

func TestHealthEndpoint(t *testing.T) {
	handler, _, _, _, _ := newTestServer(t)
	resp := doJSON(t, handler, http.MethodGet, "/api/health", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if resp.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request ID header")
	}
}

func TestReadyEndpoint(t *testing.T) {
	handler, _, fs, _, _ := newTestServer(t)

	resp := doJSON(t, handler, http.MethodGet, "/api/ready", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}

	fs.pingErr = errors.New("connection refused")
	resp = doJSON(t, handler, http.MethodGet, "/api/ready", "", nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when the database is down", resp.Code)
	}
	payload := decodeResponse(t, resp)
	if payload["status"] != "not_ready" {
		t.Fatalf("status field = %v", payload["status"])
	}
}

func TestCORSPreflights(t *testing.T) {
	handler, _, _, _, _ := newTestServer(t)
	resp := doJSON(t, handler, http.MethodOptions, "/api/workspaces", "", nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("status = %d", resp.Code)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("expected CORS origin header")
	}
}

func TestAuthSignUpAndSignIn(t *testing.T) {
	handler, _, _, _, _ := newTestServer(t)
	token := signIn(t, handler)

	resp := doJSON(t, handler, http.MethodGet, "/api/session", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("session status = %d", resp.Code)
	}
	payload := decodeResponse(t, resp)
	if payload["authenticated"] != true || payload["userName"] != "Ada" {
		t.Fatalf("session payload = %v", payload)
	}

	resp = doJSON(t, handler, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct horse",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("signin status = %d", resp.Code)
	}

	resp = doJSON(t, handler, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("bad signin status = %d, want 401", resp.Code)
	}
}

func TestSessionWithoutToken(t *testing.T) {
	handler, _, _, _, _ := newTestServer(t)
	resp := doJSON(t, handler, http.MethodGet, "/api/session", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	payload := decodeResponse(t, resp)
	if payload["authenticated"] != false {
		t.Fatalf("payload = %v", payload)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	handler, svc, fs, _, _ := newTestServer(t)
	_ = fs.CreateUser(context.Background(), store.User{ID: "u1", DisplayName: "Ada", Email: "ada@example.com"})
	sess, err := svc.CreateSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	resp := doJSON(t, handler, http.MethodPost, "/api/session/refresh", "", map[string]string{
		"refreshToken": sess.RefreshToken,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("refresh status = %d", resp.Code)
	}
	payload := decodeResponse(t, resp)
	if payload["refreshToken"] == sess.RefreshToken {
		t.Fatal("refresh token should rotate")
	}

	resp = doJSON(t, handler, http.MethodPost, "/api/session/refresh", "", map[string]string{
		"refreshToken": sess.RefreshToken,
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("replayed refresh status = %d, want 401", resp.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	handler, _, _, _, _ := newTestServer(t)
	resp := doJSON(t, handler, http.MethodPost, "/api/workspaces", "", map[string]string{"sourceUrl": "sheet-id-123"})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestWorkspaceFlow(t *testing.T) {
	handler, _, _, sh, _ := newTestServer(t)
	token := signIn(t, handler)

	resp := doJSON(t, handler, http.MethodPost, "/api/workspaces", token, map[string]string{
		"sourceUrl": "https://docs.google.com/spreadsheets/d/abc123DEF/edit#gid=0",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("connect status = %d, body %s", resp.Code, resp.Body.String())
	}
	payload := decodeResponse(t, resp)
	wsPayload, ok := payload["workspace"].(map[string]any)
	if !ok {
		t.Fatalf("workspace payload = %T", payload["workspace"])
	}
	if wsPayload["spreadsheetId"] != "abc123DEF" {
		t.Fatalf("spreadsheet id = %v", wsPayload["spreadsheetId"])
	}
	wsID, _ := wsPayload["id"].(string)

	resp = doJSON(t, handler, http.MethodGet, "/api/workspaces/"+wsID+"/records?q=valencia&sort=name&dir=asc", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("records status = %d", resp.Code)
	}
	records := decodeResponse(t, resp)
	if records["matched"].(float64) != 1 {
		t.Fatalf("matched = %v", records["matched"])
	}

	favID := record.Record{Name: "Blue Bottle", Address: "1 Ferry Building"}.ID()
	resp = doJSON(t, handler, http.MethodPost, "/api/workspaces/"+wsID+"/records/"+favID+"/favorite", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("favorite status = %d, body %s", resp.Code, resp.Body.String())
	}
	if writes := sh.writes(); len(writes) != 1 || writes[0].value != record.FavoriteTrue {
		t.Fatalf("writes = %+v", writes)
	}

	resp = doJSON(t, handler, http.MethodPatch, "/api/workspaces/"+wsID+"/records/"+favID, token, map[string]string{
		"field": "phone",
		"value": "555-0123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, handler, http.MethodGet, "/api/workspaces/"+wsID+"/poll", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("poll status = %d", resp.Code)
	}
	status := decodeResponse(t, resp)
	if status["state"] != "idle" {
		t.Fatalf("poll state = %v", status["state"])
	}

	resp = doJSON(t, handler, http.MethodDelete, "/api/workspaces/"+wsID, token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("disconnect status = %d", resp.Code)
	}
	resp = doJSON(t, handler, http.MethodGet, "/api/workspaces/"+wsID+"/records", token, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("records after disconnect = %d, want 404", resp.Code)
	}
}

func TestEditSessionEndpoints(t *testing.T) {
	handler, svc, _, _, _ := newTestServer(t)
	token := signIn(t, handler)

	resp := doJSON(t, handler, http.MethodPost, "/api/workspaces", token, map[string]string{"sourceUrl": "sheet-id-123"})
	wsID := decodeResponse(t, resp)["workspace"].(map[string]any)["id"].(string)
	t.Cleanup(func() {
		if sess, err := svc.SessionFromToken(context.Background(), token); err == nil {
			_ = svc.DisconnectWorkspace(sess, wsID)
		}
	})

	resp = doJSON(t, handler, http.MethodPost, "/api/workspaces/"+wsID+"/edit/begin", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("edit begin status = %d", resp.Code)
	}

	resp = doJSON(t, handler, http.MethodGet, "/api/workspaces/"+wsID+"/poll", token, nil)
	if editing := decodeResponse(t, resp)["editing"]; editing != true {
		t.Fatalf("editing = %v, want true", editing)
	}

	resp = doJSON(t, handler, http.MethodPost, "/api/workspaces/"+wsID+"/edit/end", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("edit end status = %d", resp.Code)
	}

	resp = doJSON(t, handler, http.MethodGet, "/api/workspaces/"+wsID+"/poll", token, nil)
	if editing := decodeResponse(t, resp)["editing"]; editing != false {
		t.Fatalf("editing = %v, want false", editing)
	}
}

func TestExportEndpoint(t *testing.T) {
	handler, svc, _, _, _ := newTestServer(t)
	token := signIn(t, handler)

	resp := doJSON(t, handler, http.MethodPost, "/api/workspaces", token, map[string]string{"sourceUrl": "sheet-id-123"})
	wsID := decodeResponse(t, resp)["workspace"].(map[string]any)["id"].(string)
	t.Cleanup(func() {
		if sess, err := svc.SessionFromToken(context.Background(), token); err == nil {
			_ = svc.DisconnectWorkspace(sess, wsID)
		}
	})

	resp = doJSON(t, handler, http.MethodPost, "/api/workspaces/"+wsID+"/export", token, map[string]any{
		"format": "csv",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("export status = %d, body %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("content type = %q", got)
	}
	if disposition := resp.Header().Get("Content-Disposition"); !strings.Contains(disposition, "attachment") {
		t.Fatalf("content disposition = %q", disposition)
	}
	if !strings.Contains(resp.Body.String(), "Ritual Coffee") {
		t.Fatal("export body should contain record data")
	}

	resp = doJSON(t, handler, http.MethodPost, "/api/workspaces/"+wsID+"/export", token, map[string]any{
		"format": "xlsx",
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad format status = %d, want 422", resp.Code)
	}
}

func TestAISearchEndpoint(t *testing.T) {
	handler, _, _, _, model := newTestServer(t)
	token := signIn(t, handler)
	model.leads = []ai.Lead{
		{Name: "Tartine", Address: "600 Guerrero St", Lat: 37.7614, Lng: -122.4241},
	}

	resp := doJSON(t, handler, http.MethodPost, "/api/leads/search", token, map[string]any{
		"businessType": "bakery",
		"city":         "San Francisco",
		"radiusKm":     5,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("search status = %d, body %s", resp.Code, resp.Body.String())
	}
	payload := decodeResponse(t, resp)
	if payload["count"].(float64) != 1 {
		t.Fatalf("count = %v", payload["count"])
	}

	resp = doJSON(t, handler, http.MethodPost, "/api/leads/search", token, map[string]any{
		"city": "San Francisco",
	})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("validation status = %d, want 422", resp.Code)
	}
}

func TestSavedSearchEndpoints(t *testing.T) {
	handler, _, _, _, model := newTestServer(t)
	token := signIn(t, handler)
	model.leads = []ai.Lead{
		{Name: "Tartine", Address: "600 Guerrero St", Lat: 37.7614, Lng: -122.4241},
	}

	resp := doJSON(t, handler, http.MethodPost, "/api/searches", token, map[string]any{
		"businessType": "bakery",
		"city":         "San Francisco",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", resp.Code, resp.Body.String())
	}
	created := decodeResponse(t, resp)
	searchID := created["search"].(map[string]any)["id"].(string)

	resp = doJSON(t, handler, http.MethodGet, "/api/searches", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list status = %d", resp.Code)
	}
	listed := decodeResponse(t, resp)
	if searches := listed["searches"].([]any); len(searches) != 1 {
		t.Fatalf("searches = %v", searches)
	}

	resp = doJSON(t, handler, http.MethodGet, "/api/searches/"+searchID+"/leads", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("leads status = %d", resp.Code)
	}

	resp = doJSON(t, handler, http.MethodDelete, "/api/searches/"+searchID, token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete status = %d", resp.Code)
	}
	resp = doJSON(t, handler, http.MethodDelete, "/api/searches/"+searchID, token, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.Code)
	}
}
