package service

import (
	"context"

	"video-quiz/internal/adapter/generation"
	"video-quiz/internal/domain"
	"video-quiz/internal/dto"
	"video-quiz/internal/logger"
	"video-quiz/internal/normalizer"
	"video-quiz/internal/prompt"
	"video-quiz/internal/util"
	"video-quiz/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	ProcessMetadata(ctx context.Context, url, lang string) (*domain.MediaRecord, error)
	PrepareQuiz(ctx context.Context, req *dto.QuizRequest, params domain.QuizParameters) (*dto.QuizResponse, error)
	GenerateQuiz(ctx context.Context, req *dto.QuizRequest, params domain.QuizParameters) (*dto.QuizResponse, error)
	BuildFromProvided(title, description, transcript *string, params domain.QuizParameters) *dto.QuizResponse
	Backend() domain.GenerationBackend
}

// quizService implements QuizService
type quizService struct {
	resolver  domain.MediaResolver
	backend   domain.GenerationBackend
	validator *validation.Validator
}

// NewQuizService creates a new instance of quizService. A nil backend is
// treated as unconfigured.
func NewQuizService(resolver domain.MediaResolver, backend domain.GenerationBackend, validator *validation.Validator) QuizService {
	if backend == nil {
		backend = generation.NullBackend{}
	}
	if validator == nil {
		validator = validation.NewValidator()
	}
	return &quizService{
		resolver:  resolver,
		backend:   backend,
		validator: validator,
	}
}

func (s *quizService) Backend() domain.GenerationBackend {
	return s.backend
}

// ProcessMetadata resolves title, description and transcript for url.
func (s *quizService) ProcessMetadata(ctx context.Context, url, lang string) (*domain.MediaRecord, error) {
	return s.resolver.Resolve(ctx, domain.NewVideoReference(url, lang))
}

// PrepareQuiz resolves the video and returns the instruction for a client
// that runs generation itself.
func (s *quizService) PrepareQuiz(ctx context.Context, req *dto.QuizRequest, params domain.QuizParameters) (*dto.QuizResponse, error) {
	record, err := s.ProcessMetadata(ctx, req.URL, req.Lang)
	if err != nil {
		return nil, err
	}
	resp := s.prepared(record, params)
	resp.URL = req.URL
	return resp, nil
}

// GenerateQuiz resolves the video, calls the backend and normalizes its
// output. Unparseable output is returned as a parse_failed response, not an
// error. Without a backend the prepared instruction is returned.
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.QuizRequest, params domain.QuizParameters) (*dto.QuizResponse, error) {
	l := logger.Get().With(zap.String("url", req.URL))

	record, err := s.ProcessMetadata(ctx, req.URL, req.Lang)
	if err != nil {
		return nil, err
	}

	if !s.backend.Available() {
		l.Debug("Generation backend unavailable, returning prepared quiz")
		resp := s.prepared(record, params)
		resp.URL = req.URL
		return resp, nil
	}

	output, err := s.backend.Generate(ctx, prompt.Build(record, params).String())
	if err != nil {
		return nil, err
	}

	resp := newResponse(params)
	resp.URL = req.URL
	resp.Backend = s.backend.Name()

	result := normalizer.Normalize(output)
	if !result.OK() {
		l.Warn("Generator output is not JSON", zap.String("backend", s.backend.Name()), zap.Int("output_length", len(output)))
		resp.Status = dto.StatusParseFailed
		resp.Quiz = result.Failure()
		return resp, nil
	}

	l.Debug("Normalized generator output", zap.String("tier", string(result.Tier)))
	resp.Status = dto.StatusGenerated
	resp.Quiz = result.Value
	if req.Strict {
		resp.ValidationErrors = s.validator.ValidateQuiz(result.Value, params)
		if len(resp.ValidationErrors) > 0 {
			l.Info("Generated quiz does not match schema", zap.Int("violations", len(resp.ValidationErrors)))
		}
	}
	return resp, nil
}

// BuildFromProvided prepares a quiz from metadata the caller already has.
// An absent transcript becomes the no-transcript sentinel.
func (s *quizService) BuildFromProvided(title, description, transcript *string, params domain.QuizParameters) *dto.QuizResponse {
	record := &domain.MediaRecord{
		Title:       title,
		Description: description,
		Transcript:  domain.NoTranscriptAvailable,
	}
	if transcript != nil && *transcript != "" {
		record.Transcript = *transcript
	}
	return s.prepared(record, params)
}

func (s *quizService) prepared(record *domain.MediaRecord, params domain.QuizParameters) *dto.QuizResponse {
	resp := newResponse(params)
	resp.Status = dto.StatusPrepared
	resp.Backend = s.backend.Name()
	resp.Instruction = prompt.Header(params)
	resp.Record = record
	return resp
}

func newResponse(params domain.QuizParameters) *dto.QuizResponse {
	return &dto.QuizResponse{
		ID:         util.NewULID(),
		AmtQuest:   params.QuestionCount,
		Difficulty: string(params.Difficulty),
		TestType:   string(params.TestType),
	}
}
