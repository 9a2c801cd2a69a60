// Package resolver turns a video reference into a MediaRecord: one provider
// query for metadata and track listings, then at most one subtitle download.
package resolver

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"video-quiz/internal/domain"
	"video-quiz/internal/transcript"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Resolver implements domain.MediaResolver.
type Resolver struct {
	provider domain.MediaInfoProvider
	fetcher  domain.SubtitleFetcher
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a Resolver. timeout bounds the whole resolution; zero disables the bound.
func New(provider domain.MediaInfoProvider, fetcher domain.SubtitleFetcher, timeout time.Duration, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		provider: provider,
		fetcher:  fetcher,
		timeout:  timeout,
		logger:   logger,
	}
}

// selection is the track chosen for a language, if any.
type selection struct {
	track domain.SubtitleTrack
	kind  domain.TrackKind
}

// SelectTrack applies the subtitle priority: official subtitles in the language,
// then auto-generated captions in the language. The two lists are never merged.
func SelectTrack(info *domain.MediaInfo, language string) (domain.SubtitleTrack, domain.TrackKind, bool) {
	if sel, ok := firstUsable(info.Subtitles, language, domain.TrackOfficial); ok {
		return sel.track, sel.kind, true
	}
	if sel, ok := firstUsable(info.AutomaticCaptions, language, domain.TrackAuto); ok {
		return sel.track, sel.kind, true
	}
	return domain.SubtitleTrack{}, "", false
}

func firstUsable(tracks map[string][]domain.SubtitleTrack, language string, kind domain.TrackKind) (selection, bool) {
	track, ok := lo.Find(tracks[language], func(t domain.SubtitleTrack) bool {
		return strings.TrimSpace(t.URL) != ""
	})
	if !ok {
		return selection{}, false
	}
	return selection{track: track, kind: kind}, true
}

// Resolve fails only when the provider does. A failed subtitle download leaves
// a placeholder transcript and TranscriptDegraded status on an otherwise
// complete record.
func (r *Resolver) Resolve(ctx context.Context, ref domain.VideoReference) (*domain.MediaRecord, error) {
	if strings.TrimSpace(ref.URL) == "" {
		return nil, domain.NewInvalidInputError("url is required")
	}
	if ref.Language == "" {
		ref.Language = domain.DefaultLanguage
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	info, err := r.provider.FetchInfo(ctx, ref)
	if err != nil {
		r.logger.Error("Failed to resolve video metadata",
			zap.String("url", ref.URL),
			zap.String("language", ref.Language),
			zap.Error(err))
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewUpstreamFetchError(ref.URL, err)
	}

	record := &domain.MediaRecord{
		Title:       info.Title,
		Description: info.Description,
	}

	track, kind, ok := SelectTrack(info, ref.Language)
	if !ok {
		r.logger.Info("No subtitle track in requested language",
			zap.String("url", ref.URL),
			zap.String("language", ref.Language),
			zap.Strings("official_languages", sortedKeys(info.Subtitles)),
			zap.Strings("auto_languages", sortedKeys(info.AutomaticCaptions)))
		record.Transcript = domain.NoTranscriptAvailable
		record.TranscriptStatus = domain.TranscriptMissing
		return record, nil
	}

	record.TranscriptSource = &domain.TranscriptSource{Kind: kind, Language: ref.Language, Ext: track.Ext}
	record.Transcript, record.TranscriptStatus = r.readTrack(ctx, ref, track)
	return record, nil
}

func (r *Resolver) readTrack(ctx context.Context, ref domain.VideoReference, track domain.SubtitleTrack) (string, domain.TranscriptStatus) {
	payload, err := r.fetcher.Fetch(ctx, track.URL)
	if err != nil {
		r.logger.Warn("Subtitle download failed, continuing with placeholder",
			zap.String("url", ref.URL),
			zap.String("language", ref.Language),
			zap.Error(err))
		return domain.SubtitleRequestDegradedText(err), domain.TranscriptDegraded
	}
	if !payload.OK() {
		r.logger.Warn("Subtitle download returned non-success status, continuing with placeholder",
			zap.String("url", ref.URL),
			zap.String("language", ref.Language),
			zap.Int("status", payload.StatusCode))
		return domain.SubtitleFetchDegradedText(payload.StatusCode), domain.TranscriptDegraded
	}

	text, err := transcript.Decode(track.Ext, payload.Body)
	if err != nil {
		r.logger.Warn("Subtitle payload could not be decoded, using raw text",
			zap.String("url", ref.URL),
			zap.String("ext", track.Ext),
			zap.Error(err))
		text = strings.TrimSpace(string(payload.Body))
	}
	if text == "" {
		return domain.NoTranscriptAvailable, domain.TranscriptMissing
	}
	return text, domain.TranscriptOK
}

func sortedKeys(m map[string][]domain.SubtitleTrack) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

var _ domain.MediaResolver = (*Resolver)(nil)
