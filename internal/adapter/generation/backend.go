// Package generation adapts text-generation models to domain.GenerationBackend.
package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"video-quiz/internal/config"
	"video-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const (
	SourceNone   = "none"
	SourceOllama = "ollama"
	SourceOpenAI = "openai"
)

// LangchainBackend generates text through any langchaingo model.
type LangchainBackend struct {
	model       llms.Model
	name        string
	timeout     time.Duration
	temperature float64
	logger      *zap.Logger
}

// NewLangchainBackend wraps model. A zero timeout leaves the caller's
// deadline in charge.
func NewLangchainBackend(model llms.Model, name string, timeout time.Duration, temperature float64, logger *zap.Logger) *LangchainBackend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LangchainBackend{
		model:       model,
		name:        name,
		timeout:     timeout,
		temperature: temperature,
		logger:      logger,
	}
}

func (b *LangchainBackend) Name() string { return b.name }

func (b *LangchainBackend) Available() bool { return b.model != nil }

// Generate sends prompt as a single human message and returns the first choice.
func (b *LangchainBackend) Generate(ctx context.Context, prompt string) (string, error) {
	if b.model == nil {
		return "", domain.NewBackendUnavailableError(b.name)
	}
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	start := time.Now()
	b.logger.Debug("Calling generation backend", zap.String("backend", b.name), zap.Int("prompt_length", len(prompt)))

	output, err := llms.GenerateFromSinglePrompt(ctx, b.model, prompt, llms.WithTemperature(b.temperature))
	if err != nil {
		b.logger.Error("Generation backend call failed",
			zap.String("backend", b.name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", domain.NewGenerationError(b.name, err)
	}

	b.logger.Info("Generation completed",
		zap.String("backend", b.name),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("output_length", len(output)))
	return output, nil
}

// NullBackend stands in when no model is configured.
type NullBackend struct{}

func (NullBackend) Name() string { return SourceNone }

func (NullBackend) Available() bool { return false }

func (NullBackend) Generate(ctx context.Context, prompt string) (string, error) {
	return "", domain.NewBackendUnavailableError("generation backend")
}

// NewFromConfig builds the one backend selected by cfg.Source.
func NewFromConfig(cfg config.LLMConfig, logger *zap.Logger) (domain.GenerationBackend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	source := strings.ToLower(strings.TrimSpace(cfg.Source))

	switch source {
	case "", SourceNone:
		logger.Info("No generation backend configured; quizzes are returned as prepared prompts")
		return NullBackend{}, nil

	case SourceOllama:
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("llm.server_url is required for source %q", source)
		}
		model, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		logger.Info("Ollama generation backend configured", zap.String("server", cfg.ServerURL), zap.String("model", cfg.Model))
		return NewLangchainBackend(model, SourceOllama, cfg.Timeout, cfg.Temperature, logger), nil

	case SourceOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm.api_key is required for source %q", source)
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
			openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		logger.Info("OpenAI generation backend configured", zap.String("model", cfg.Model))
		return NewLangchainBackend(model, SourceOpenAI, cfg.Timeout, cfg.Temperature, logger), nil
	}

	return nil, fmt.Errorf("unknown llm.source %q", cfg.Source)
}
