package resolver

import (
	"video-quiz/internal/adapter/subtitle"
	"video-quiz/internal/adapter/ytdlp"
	"video-quiz/internal/config"
	"video-quiz/internal/domain"

	"go.uber.org/zap"
)

// NewFromConfig wires the yt-dlp provider, the subtitle fetcher and, when c is
// non-nil, the record cache. A missing yt-dlp binary is logged, not fatal.
func NewFromConfig(cfg *config.Config, c domain.Cache, logger *zap.Logger) (domain.MediaResolver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	provider, err := ytdlp.NewProvider(cfg.Provider.Binary, cfg.Provider.Timeout, logger)
	if err != nil {
		return nil, err
	}
	if err := provider.CheckBinary(); err != nil {
		logger.Warn("Media info provider binary not found, resolutions will fail", zap.Error(err))
	}

	fetcher := subtitle.NewHTTPFetcher(cfg.Subtitle.Timeout, cfg.Subtitle.MaxBytes)
	base := New(provider, fetcher, cfg.Resolver.Timeout, logger)
	return NewCached(base, c, cfg.Cache.MediaTTL, cfg.Resolver.Timeout, logger), nil
}
