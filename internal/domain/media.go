package domain

import (
	"context"
	"fmt"
)

// NoTranscriptAvailable is the transcript of a record whose video has no
// subtitle track in the requested language.
const NoTranscriptAvailable = "No transcript available."

// DefaultLanguage is used when a reference carries no language code.
const DefaultLanguage = "en"

// VideoReference locates a video and the language its transcript should be in.
type VideoReference struct {
	URL      string
	Language string
}

// NewVideoReference returns a reference, defaulting the language to DefaultLanguage.
func NewVideoReference(url, language string) VideoReference {
	if language == "" {
		language = DefaultLanguage
	}
	return VideoReference{URL: url, Language: language}
}

// TrackKind distinguishes author-provided subtitles from machine captions.
type TrackKind string

const (
	TrackOfficial TrackKind = "official"
	TrackAuto     TrackKind = "auto"
)

// SubtitleTrack is one downloadable rendition of a subtitle stream.
type SubtitleTrack struct {
	URL  string `json:"url"`
	Ext  string `json:"ext"`
	Name string `json:"name,omitempty"`
}

// MediaInfo is what the provider reports about a video. Title and Description
// stay nil when the provider omits them.
type MediaInfo struct {
	ID                string
	Title             *string
	Description       *string
	Subtitles         map[string][]SubtitleTrack
	AutomaticCaptions map[string][]SubtitleTrack
}

// TranscriptStatus records how the transcript of a MediaRecord was obtained.
type TranscriptStatus string

const (
	TranscriptOK       TranscriptStatus = "ok"
	TranscriptMissing  TranscriptStatus = "missing"
	TranscriptDegraded TranscriptStatus = "degraded"
)

// TranscriptSource describes the track a transcript was read from.
type TranscriptSource struct {
	Kind     TrackKind `json:"kind"`
	Language string    `json:"language"`
	Ext      string    `json:"ext"`
}

// MediaRecord is the normalized metadata of one video. Transcript is never empty:
// it holds either the decoded track text or a placeholder sentence.
type MediaRecord struct {
	Title            *string           `json:"title"`
	Description      *string           `json:"description"`
	Transcript       string            `json:"transcript"`
	TranscriptStatus TranscriptStatus  `json:"transcript_status,omitempty"`
	TranscriptSource *TranscriptSource `json:"transcript_source,omitempty"`
}

// TitleOr returns the title, or fallback when it is absent.
func (r *MediaRecord) TitleOr(fallback string) string {
	if r.Title == nil {
		return fallback
	}
	return *r.Title
}

// DescriptionOr returns the description, or fallback when it is absent.
func (r *MediaRecord) DescriptionOr(fallback string) string {
	if r.Description == nil {
		return fallback
	}
	return *r.Description
}

// SubtitleFetchDegradedText is the placeholder transcript for a track whose
// download answered with a non-success status.
func SubtitleFetchDegradedText(statusCode int) string {
	return fmt.Sprintf("Failed to fetch subtitles (HTTP %d)", statusCode)
}

// SubtitleRequestDegradedText is the placeholder transcript for a track whose
// download did not complete.
func SubtitleRequestDegradedText(err error) string {
	return fmt.Sprintf("Failed to fetch subtitles (request error: %v)", err)
}

// SubtitlePayload is the raw body of a subtitle download.
type SubtitlePayload struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (p *SubtitlePayload) OK() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}

// MediaInfoProvider looks up video metadata without downloading media.
type MediaInfoProvider interface {
	FetchInfo(ctx context.Context, ref VideoReference) (*MediaInfo, error)
}

// SubtitleFetcher downloads a subtitle payload. A non-2xx answer is returned as
// a payload, not an error; errors are reserved for requests that did not complete.
type SubtitleFetcher interface {
	Fetch(ctx context.Context, url string) (*SubtitlePayload, error)
}

// MediaResolver turns a reference into a MediaRecord.
type MediaResolver interface {
	Resolve(ctx context.Context, ref VideoReference) (*MediaRecord, error)
}
