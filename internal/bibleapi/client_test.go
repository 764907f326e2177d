package bibleapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/config"
)

const john316Response = `{
  "reference": "John 3:16",
  "verses": [
    {"book_id": "JHN", "book_name": "John", "chapter": 3, "verse": 16, "text": "For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life.\n"}
  ],
  "text": "For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life.\n",
  "translation_id": "kjv",
  "translation_name": "King James Version"
}`

type apiServer struct {
	*httptest.Server
	hits atomic.Int32
}

// newAPIServer answers with the given statuses in order, then 200 with body.
func newAPIServer(t *testing.T, body string, statuses ...int) *apiServer {
	t.Helper()
	s := &apiServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(s.hits.Add(1))
		if n <= len(statuses) {
			w.WriteHeader(statuses[n-1])
			_, _ = fmt.Fprint(w, `{"error":"unavailable"}`)
			return
		}
		if r.URL.Path != "/John 3:16" || r.URL.Query().Get("translation") != "kjv" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprint(w, `{"error":"not found"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestClient(t *testing.T, baseURL, cacheDir string) *Client {
	t.Helper()
	c := NewClient(config.APIConfig{
		BaseURL:          baseURL,
		Translation:      "kjv",
		Timeout:          5 * time.Second,
		CacheDirectory:   cacheDir,
		CacheTTL:         time.Hour,
		CacheSize:        10,
		MaxRetryAttempts: 3,
	}, WithRetryDelay(time.Millisecond))
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}

func TestClient_Lookup(t *testing.T) {
	john316 := bible.NewReference("John", 3, 16)

	tests := []struct {
		name         string
		statuses     []int
		ref          bible.Reference
		wantHits     int32
		wantErr      bool
		wantStatus   int
		wantTextHead string
	}{
		{
			name:         "success",
			ref:          john316,
			wantHits:     1,
			wantTextHead: "For God so loved the world",
		},
		{
			name:         "server errors are retried",
			statuses:     []int{http.StatusInternalServerError, http.StatusTooManyRequests},
			ref:          john316,
			wantHits:     3,
			wantTextHead: "For God so loved the world",
		},
		{
			name:       "retries give up after the configured attempts",
			statuses:   []int{500, 500, 500, 500, 500},
			ref:        john316,
			wantHits:   4,
			wantErr:    true,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "not found is not retried",
			ref:        bible.NewReference("Jude", 1, 26),
			wantHits:   1,
			wantErr:    true,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newAPIServer(t, john316Response, tt.statuses...)
			client := newTestClient(t, server.URL, "")

			got, err := client.Lookup(context.Background(), tt.ref)
			assert.Equal(t, tt.wantHits, server.hits.Load())
			if tt.wantErr {
				require.Error(t, err)
				var respErr *ResponseError
				require.True(t, errors.As(err, &respErr))
				assert.Equal(t, tt.wantStatus, respErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "John 3:16", got.Reference)
			assert.Contains(t, got.Text, tt.wantTextHead)
		})
	}
}

func TestClient_Lookup_Caches(t *testing.T) {
	ref := bible.NewReference("John", 3, 16)
	cacheDir := t.TempDir()
	server := newAPIServer(t, john316Response)

	client := newTestClient(t, server.URL, cacheDir)
	_, err := client.Lookup(context.Background(), ref)
	require.NoError(t, err)
	_, err = client.Lookup(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, int32(1), server.hits.Load(), "second lookup is served from memory")
	assert.FileExists(t, client.files.filePath("kjv_John.3.16"))

	fresh := newTestClient(t, server.URL, cacheDir)
	got, err := fresh.Lookup(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "John 3:16", got.Reference)
	assert.Equal(t, int32(1), server.hits.Load(), "a new client reads the file cache")
}

func TestClient_Lookup_InvalidBodiesAreNotCached(t *testing.T) {
	ref := bible.NewReference("John", 3, 16)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "malformed json", body: "<html>maintenance</html>", wantErr: "json.Unmarshal(kjv_John.3.16)"},
		{name: "no verse text", body: `{"reference": "John 3:16", "verses": [], "text": "  "}`, wantErr: "empty response for John 3:16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if hits.Add(1) == 1 {
					_, _ = fmt.Fprint(w, tt.body)
					return
				}
				_, _ = fmt.Fprint(w, john316Response)
			}))
			t.Cleanup(server.Close)

			client := newTestClient(t, server.URL, t.TempDir())
			cachePath := client.files.filePath("kjv_John.3.16")

			_, err := client.Lookup(context.Background(), ref)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoFileExists(t, cachePath)

			got, err := client.Lookup(context.Background(), ref)
			require.NoError(t, err)
			assert.Contains(t, got.Text, "For God so loved the world")
			assert.Equal(t, int32(2), hits.Load())
			assert.FileExists(t, cachePath)
		})
	}
}

func TestClient_Lookup_Summary(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", "")
	_, err := client.Lookup(context.Background(), bible.SummaryOf("John"))
	assert.Error(t, err)
}

func TestMemoryCache(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := newMemoryCache(2, time.Hour)
	cache.now = func() time.Time { return now }

	cache.add("a", Verse{Reference: "A"})
	cache.add("b", Verse{Reference: "B"})
	_, ok := cache.get("a")
	require.True(t, ok)

	// "b" is the least recently used entry
	cache.add("c", Verse{Reference: "C"})
	_, ok = cache.get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, cache.len())

	now = now.Add(time.Hour)
	_, ok = cache.get("a")
	assert.False(t, ok, "entries expire after the ttl")
	assert.Equal(t, 1, cache.len())
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "server error", err: &ResponseError{StatusCode: 503}, want: true},
		{name: "rate limited", err: fmt.Errorf("wrapped > %w", &ResponseError{StatusCode: 429}), want: true},
		{name: "not found", err: &ResponseError{StatusCode: 404}, want: false},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), want: true},
		{name: "canceled", err: fmt.Errorf("httpClient.Get > %w", context.Canceled), want: false},
		{name: "other", err: errors.New("json.Unmarshal failed"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestVerse_Texts(t *testing.T) {
	v := Verse{
		Reference: "Luke 2:10-11",
		Verses: []VerseRow{
			{BookName: "Luke", Chapter: 2, Verse: 10, Text: "And the angel said unto them, Fear not.\n"},
			{BookName: "Luke", Chapter: 2, Verse: 11, Text: "For unto you is born this day.\n"},
		},
	}
	got := v.Texts(bible.Reference{Book: "Luke", Chapter: 2, Verse: 10, EndVerse: 11})
	assert.Equal(t, map[bible.Reference]string{
		bible.NewReference("Luke", 2, 10): "And the angel said unto them, Fear not.",
		bible.NewReference("Luke", 2, 11): "For unto you is born this day.",
	}, got)

	single := Verse{Text: " Jesus wept.\n"}
	assert.Equal(t, map[bible.Reference]string{
		bible.NewReference("John", 11, 35): "Jesus wept.",
	}, single.Texts(bible.NewReference("John", 11, 35)))
}
