package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()}), mr
}

func TestNewsFallbackWithoutAPIKey(t *testing.T) {
	h := NewNewsHandler("", nil)

	rec, env := invoke(t, h.Latest, http.MethodGet, "/news", "", 0)
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, env)
	assert.Equal(t, "fallback", data["source"])
	assert.Len(t, data["articles"].([]any), 5)
}

func TestNewsFetchesAndCaches(t *testing.T) {
	var hits int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "welding", r.URL.Query().Get("q"))
		assert.Equal(t, "key123", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"articles":[{"title":"Orbital welding advances","description":"d","url":"https://example.com/a","image":"","publishedAt":"2026-08-30T10:00:00Z","source":{"name":"Welding Journal"}}]}`))
	}))
	defer upstream.Close()

	rdb, _ := newsClient(t)
	h := &NewsHandler{
		APIKey:  "key123",
		BaseURL: upstream.URL,
		RDB:     rdb,
		Client:  &http.Client{Timeout: time.Second},
	}

	rec, env := invoke(t, h.Latest, http.MethodGet, "/news", "", 0)
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, env)
	assert.Equal(t, "gnews", data["source"])
	articles := data["articles"].([]any)
	require.Len(t, articles, 1)
	first := articles[0].(map[string]any)
	assert.Equal(t, "Orbital welding advances", first["title"])
	assert.Equal(t, "Welding Journal", first["source"])

	// Second request is served from Redis, not the upstream.
	rec, env = invoke(t, h.Latest, http.MethodGet, "/news", "", 0)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gnews", dataMap(t, env)["source"])
	assert.Equal(t, 1, hits)
}

func TestNewsFallbackOnUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	h := &NewsHandler{
		APIKey:  "key123",
		BaseURL: upstream.URL,
		Client:  &http.Client{Timeout: time.Second},
	}

	rec, env := invoke(t, h.Latest, http.MethodGet, "/news", "", 0)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fallback", dataMap(t, env)["source"])
}

func TestNewsFallbackOnEmptyResult(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"articles":[]}`))
	}))
	defer upstream.Close()

	h := &NewsHandler{
		APIKey:  "key123",
		BaseURL: upstream.URL,
		Client:  &http.Client{Timeout: time.Second},
	}

	rec, env := invoke(t, h.Latest, http.MethodGet, "/news", "", 0)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fallback", dataMap(t, env)["source"])
}
