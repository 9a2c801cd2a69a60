package smartsort

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"video-quiz/internal/domain"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raws(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, json.RawMessage(item))
	}
	return out
}

func TestDecodeItems_Forms(t *testing.T) {
	items, err := DecodeItems(raws(
		`{"title": "Intro", "description": "Basics", "transcription": "hello"}`,
		`["Second", null, "words"]`,
		`{"title": "Third", "description": null, "transcript": "No transcript available.", "transcript_status": "missing"}`,
		`{"title": "Fourth"}`,
	))
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.IsType(t, MappingForm{}, items[0])
	assert.IsType(t, TripleForm{}, items[1])
	assert.IsType(t, RecordForm{}, items[2])
	assert.IsType(t, MappingForm{}, items[3])

	videos := Canonicalize(items)
	assert.Equal(t, VideoItem{Title: mo.Some("Intro"), Description: mo.Some("Basics"), Transcription: mo.Some("hello")}, videos[0])
	assert.Equal(t, VideoItem{Title: mo.Some("Second"), Description: mo.None[string](), Transcription: mo.Some("words")}, videos[1])
	assert.Equal(t, VideoItem{Title: mo.Some("Third"), Description: mo.None[string](), Transcription: mo.Some(domain.NoTranscriptAvailable)}, videos[2])
	assert.Equal(t, VideoItem{Title: mo.Some("Fourth")}, videos[3])
}

func TestDecodeItems_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"short triple", `["a", "b"]`},
		{"long triple", `["a", "b", "c", "d"]`},
		{"non string element", `["a", 2, "c"]`},
		{"number", `42`},
		{"string", `"just a title"`},
		{"null", `null`},
		{"bad mapping field", `{"title": 7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeItems(raws(`{"title": "ok"}`, tt.raw))
			require.Error(t, err)
			assert.True(t, domain.HasCode(err, domain.CodeUnsupportedItemShape))

			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, 1, domainErr.Context["index"])
		})
	}
}

func TestVideoItem_JSON(t *testing.T) {
	data, err := json.Marshal(VideoItem{Title: mo.Some("T")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "T", "description": null, "transcription": null}`, string(data))
}

func TestForwarder_Sort(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ordered": [1, 0]}`))
	}))
	defer server.Close()

	f := NewForwarderWithClient(server.URL, server.Client(), nil)
	result, err := f.Sort(context.Background(), SortRequest{
		CourseName: "Go",
		Goals:      "learn channels",
		Videos:     []VideoItem{{Title: mo.Some("a")}, {Title: mo.Some("b")}},
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ordered": []any{float64(1), float64(0)}}, result)
	assert.Equal(t, "Go", received["course_name"])
	assert.Equal(t, "learn channels", received["goals"])
	assert.Len(t, received["videos"], 2)
}

func TestForwarder_SortFailures(t *testing.T) {
	t.Run("status error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte("bad goals"))
		}))
		defer server.Close()

		result, err := NewForwarderWithClient(server.URL, server.Client(), nil).Sort(context.Background(), SortRequest{
			CourseName: "Go", Goals: "g", Videos: []VideoItem{{}},
		})
		require.NoError(t, err)
		assert.Equal(t, HTTPStatusFailure{
			Error:          ErrHTTPStatus,
			StatusCode:     http.StatusUnprocessableEntity,
			ResponseText:   "bad goals",
			URL:            server.URL,
			PayloadPreview: PayloadPreview{CourseName: "Go", Goals: "g", VideosCount: 1},
		}, result)
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>ok</html>"))
		}))
		defer server.Close()

		result, err := NewForwarderWithClient(server.URL, server.Client(), nil).Sort(context.Background(), SortRequest{})
		require.NoError(t, err)
		assert.Equal(t, InvalidJSONFailure{Error: ErrInvalidJSON, StatusCode: http.StatusOK, ResponseText: "<html>ok</html>"}, result)
	})

	t.Run("request error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		result, err := NewForwarderWithClient(url, http.DefaultClient, nil).Sort(context.Background(), SortRequest{})
		require.NoError(t, err)
		failure, ok := result.(RequestFailure)
		require.True(t, ok)
		assert.Equal(t, ErrRequest, failure.Error)
		assert.Equal(t, url, failure.URL)
		assert.NotEmpty(t, failure.Message)
	})

	t.Run("not configured", func(t *testing.T) {
		f := NewForwarderWithClient("", http.DefaultClient, nil)
		assert.False(t, f.Configured())
		_, err := f.Sort(context.Background(), SortRequest{})
		assert.True(t, domain.HasCode(err, domain.CodeBackendUnavailable))
	})
}
