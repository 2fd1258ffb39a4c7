package search

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// meiliStub records every request and answers with a minimal task payload,
// enough for the client to treat each call as accepted.
type meiliStub struct {
	mu       sync.Mutex
	requests []stubRequest
	server   *httptest.Server
}

type stubRequest struct {
	method string
	path   string
	body   string
}

func newMeiliStub(t *testing.T) (*Meili, *meiliStub) {
	t.Helper()
	stub := &meiliStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.requests = append(stub.requests, stubRequest{method: r.Method, path: r.URL.Path, body: string(body)})
		stub.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/health" {
			_, _ = w.Write([]byte(`{"status":"available"}`))
			return
		}
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"taskUid":    1,
			"indexUid":   idxLeads,
			"status":     "enqueued",
			"type":       "documentDeletion",
			"enqueuedAt": "2024-01-01T00:00:00Z",
		})
	}))

	m := NewMeili(stub.server.URL, "test-key")
	t.Cleanup(func() {
		m.Close()
		stub.server.Close()
	})
	return m, stub
}

func (s *meiliStub) find(method, pathSuffix string) (stubRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, req := range s.requests {
		if req.method == method && strings.HasSuffix(req.path, pathSuffix) {
			return req, true
		}
	}
	return stubRequest{}, false
}

func TestMeiliIndexLeads(t *testing.T) {
	m, stub := newMeiliStub(t)

	err := m.IndexLeads([]LeadDoc{
		{ID: "lead-1", Name: "Acme Salon", Address: "1 Main St", SearchID: "s1"},
	})
	if err != nil {
		t.Fatalf("IndexLeads: %v", err)
	}

	req, ok := stub.find(http.MethodPost, "/indexes/"+idxLeads+"/documents")
	if !ok {
		t.Fatal("expected a document addition request")
	}
	if !strings.Contains(req.body, "Acme Salon") || !strings.Contains(req.body, `"searchId":"s1"`) {
		t.Fatalf("document body = %s", req.body)
	}
}

func TestMeiliDeleteSearch(t *testing.T) {
	m, stub := newMeiliStub(t)

	if err := m.DeleteSearch("s1"); err != nil {
		t.Fatalf("DeleteSearch: %v", err)
	}

	req, ok := stub.find(http.MethodPost, "/indexes/"+idxLeads+"/documents/delete")
	if !ok {
		t.Fatal("expected a delete-by-filter request")
	}
	if !strings.Contains(req.body, `searchId = \"s1\"`) {
		t.Fatalf("filter body = %s", req.body)
	}
}
