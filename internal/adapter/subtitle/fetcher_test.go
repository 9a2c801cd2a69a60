package subtitle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.vtt":
			_, _ = w.Write([]byte("WEBVTT\n\n00:00.000 --> 00:01.000\nhello\n"))
		case "/big.vtt":
			_, _ = w.Write([]byte(strings.Repeat("a", 64)))
		case "/slow.vtt":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := NewHTTPFetcher(time.Second, 0)
		payload, err := f.Fetch(ctx, server.URL+"/ok.vtt")
		require.NoError(t, err)
		assert.True(t, payload.OK())
		assert.Equal(t, http.StatusOK, payload.StatusCode)
		assert.Contains(t, string(payload.Body), "hello")
	})

	t.Run("not found is a payload", func(t *testing.T) {
		f := NewHTTPFetcher(time.Second, 0)
		payload, err := f.Fetch(ctx, server.URL+"/missing.vtt")
		require.NoError(t, err)
		assert.False(t, payload.OK())
		assert.Equal(t, http.StatusNotFound, payload.StatusCode)
		assert.Empty(t, payload.Body)
	})

	t.Run("body over limit", func(t *testing.T) {
		f := NewHTTPFetcher(time.Second, 16)
		_, err := f.Fetch(ctx, server.URL+"/big.vtt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds 16 bytes")
	})

	t.Run("client timeout", func(t *testing.T) {
		f := NewHTTPFetcherWithClient(&http.Client{Timeout: 20 * time.Millisecond}, 0)
		_, err := f.Fetch(ctx, server.URL+"/slow.vtt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "subtitle request failed")
	})

	t.Run("invalid url", func(t *testing.T) {
		f := NewHTTPFetcher(time.Second, 0)
		_, err := f.Fetch(ctx, "://bad")
		assert.Error(t, err)
	})
}
