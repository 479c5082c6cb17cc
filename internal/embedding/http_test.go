package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestEmbedder(t *testing.T, baseURL string) *HTTPEmbedder {
	t.Helper()
	t.Setenv("TEST_EMBED_KEY", "test-key")
	e, err := NewHTTPEmbedder(HTTPConfig{
		BaseURL:    baseURL,
		APIKeyEnv:  "TEST_EMBED_KEY",
		Model:      "test-model",
		Dimensions: 3,
		Timeout:    2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewHTTPEmbedder: %v", err)
	}
	return e
}

func TestHTTPEmbedder_embedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer auth: %q", r.Header.Get("Authorization"))
		}
		var req embeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		resp := embeddingsResponse{}
		for i := range req.Input {
			resp.Data = append(resp.Data, struct {
				Embedding []float32 `json:"embedding"`
				Index     int       `json:"index"`
			}{Embedding: []float32{float32(i), 1, 0}, Index: i})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	e := newTestEmbedder(t, srv.URL)
	vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	if len(vecs) != 2 || vecs[1][0] != 1 {
		t.Errorf("got %v", vecs)
	}
}

func TestHTTPEmbedder_retriesOn500(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(embeddingsResponse{Data: []struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		}{{Embedding: []float32{1, 0, 0}, Index: 0}}})
	}))
	defer srv.Close()

	e := newTestEmbedder(t, srv.URL)
	if _, err := e.Embed(context.Background(), "x"); err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestHTTPEmbedder_badRequestNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	e := newTestEmbedder(t, srv.URL)
	if _, err := e.Embed(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("4xx should not retry, calls=%d", calls.Load())
	}
}

func TestNewHTTPEmbedder_missingKey(t *testing.T) {
	t.Setenv("EMPTY_KEY_ENV", "")
	if _, err := NewHTTPEmbedder(HTTPConfig{APIKeyEnv: "EMPTY_KEY_ENV"}); err == nil {
		t.Error("expected error for missing API key")
	}
}
