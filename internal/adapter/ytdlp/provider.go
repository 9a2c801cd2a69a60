// Package ytdlp reads video metadata and subtitle track listings from the
// yt-dlp command line tool without downloading any media.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"video-quiz/internal/domain"

	"go.uber.org/zap"
)

// Runner executes a command and returns its stdout and stderr.
type Runner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// ExecRunner runs the command with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Provider implements domain.MediaInfoProvider on top of yt-dlp.
type Provider struct {
	binary  string
	timeout time.Duration
	run     Runner
	logger  *zap.Logger
}

// Option customises a Provider.
type Option func(*Provider)

// WithRunner replaces the command runner.
func WithRunner(run Runner) Option {
	return func(p *Provider) { p.run = run }
}

// NewProvider creates a provider invoking binary. A zero timeout leaves the
// call bounded only by the caller's context.
func NewProvider(binary string, timeout time.Duration, logger *zap.Logger, opts ...Option) (*Provider, error) {
	if binary == "" {
		return nil, fmt.Errorf("yt-dlp binary cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{
		binary:  binary,
		timeout: timeout,
		run:     ExecRunner,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// CheckBinary reports whether the configured binary is on PATH.
func (p *Provider) CheckBinary() error {
	if _, err := exec.LookPath(p.binary); err != nil {
		return fmt.Errorf("%s not found: %w", p.binary, err)
	}
	return nil
}

// Args returns the command line used to query ref.
func Args(ref domain.VideoReference) []string {
	return []string{
		"--dump-single-json",
		"--skip-download",
		"--no-warnings",
		"--no-playlist",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", ref.Language,
		ref.URL,
	}
}

type infoJSON struct {
	ID                string                            `json:"id"`
	Type              string                            `json:"_type"`
	Title             *string                           `json:"title"`
	Description       *string                           `json:"description"`
	Subtitles         map[string][]domain.SubtitleTrack `json:"subtitles"`
	AutomaticCaptions map[string][]domain.SubtitleTrack `json:"automatic_captions"`
}

// FetchInfo runs a single yt-dlp query for ref.
func (p *Provider) FetchInfo(ctx context.Context, ref domain.VideoReference) (*domain.MediaInfo, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	stdout, stderr, err := p.run(ctx, p.binary, Args(ref)...)
	p.logger.Debug("yt-dlp finished",
		zap.String("url", ref.URL),
		zap.Duration("duration", time.Since(start)),
		zap.Int("stdout_bytes", len(stdout)))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, domain.NewUpstreamFetchError(ref.URL, fmt.Errorf("yt-dlp did not finish: %w", ctxErr))
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, domain.NewUpstreamFetchError(ref.URL, fmt.Errorf("yt-dlp exited with code %d: %s", exitErr.ExitCode(), lastLine(stderr))).
				WithContext("stderr", strings.TrimSpace(string(stderr)))
		}
		return nil, domain.NewUpstreamFetchError(ref.URL, err)
	}

	return parseInfo(ref.URL, stdout)
}

func parseInfo(url string, data []byte) (*domain.MediaInfo, error) {
	var raw infoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.NewUpstreamFormatError(url, "info is not a JSON object", err)
	}
	if raw.Type == "playlist" {
		return nil, domain.NewUpstreamFormatError(url, "reference resolved to a playlist, not a video", nil)
	}
	if raw.ID == "" {
		return nil, domain.NewUpstreamFormatError(url, "info has no video id", nil)
	}

	return &domain.MediaInfo{
		ID:                raw.ID,
		Title:             raw.Title,
		Description:       raw.Description,
		Subtitles:         raw.Subtitles,
		AutomaticCaptions: raw.AutomaticCaptions,
	}, nil
}

// lastLine returns the last non-empty line of yt-dlp's stderr, which carries the ERROR message.
func lastLine(stderr []byte) string {
	lines := strings.Split(strings.TrimSpace(string(stderr)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no error output"
}

var _ domain.MediaInfoProvider = (*Provider)(nil)
