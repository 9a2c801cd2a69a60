package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"video-quiz/internal/config"
	"video-quiz/internal/domain"
	"video-quiz/internal/dto"
	"video-quiz/internal/logger"
	"video-quiz/internal/normalizer"
	"video-quiz/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestMain will be used to initialize the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}

	exitVal := m.Run()

	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Mocks ---

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, ref domain.VideoReference) (*domain.MediaRecord, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaRecord), args.Error(1)
}

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Name() string { return "mock" }

func (m *MockBackend) Available() bool {
	return m.Called().Bool(0)
}

func (m *MockBackend) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

const testURL = "https://www.youtube.com/watch?v=abc123"

func strPtr(s string) *string { return &s }

func testRecord() *domain.MediaRecord {
	return &domain.MediaRecord{
		Title:            strPtr("Go Concurrency"),
		Description:      strPtr("Channels and select"),
		Transcript:       "A channel connects goroutines.",
		TranscriptStatus: domain.TranscriptOK,
	}
}

func testParams() domain.QuizParameters {
	return domain.QuizParameters{QuestionCount: 1, Difficulty: domain.DifficultyMedium, TestType: domain.TestTypeMultipleChoice}
}

const validQuizJSON = `{"questions":[{"question":"What connects goroutines?","options":["channel","mutex","map","slice"],"explanation":["Yes.","No.","No.","No."],"answer":"channel"}]}`

func TestProcessMetadata(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, domain.VideoReference{URL: testURL, Language: "en"}).Return(testRecord(), nil)

	svc := NewQuizService(resolver, nil, nil)
	record, err := svc.ProcessMetadata(context.Background(), testURL, "")

	require.NoError(t, err)
	assert.Equal(t, "Go Concurrency", record.TitleOr(""))
	resolver.AssertExpectations(t)
}

func TestGenerateQuiz_Generated(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(testRecord(), nil)

	backend := new(MockBackend)
	backend.On("Available").Return(true)
	backend.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "exactly 1 questions") &&
			strings.Contains(p, "Title: Go Concurrency") &&
			strings.Contains(p, "A channel connects goroutines.")
	})).Return("Here you go:\n```json\n"+validQuizJSON+"\n```", nil)

	svc := NewQuizService(resolver, backend, nil)
	resp, err := svc.GenerateQuiz(context.Background(), &dto.QuizRequest{URL: testURL, Strict: true}, testParams())

	require.NoError(t, err)
	assert.Equal(t, dto.StatusGenerated, resp.Status)
	assert.True(t, util.IsULID(resp.ID))
	assert.Equal(t, testURL, resp.URL)
	assert.Equal(t, 1, resp.AmtQuest)
	assert.Equal(t, "medium", resp.Difficulty)
	assert.Equal(t, "multiple-choice-4-option", resp.TestType)
	assert.Equal(t, "mock", resp.Backend)
	assert.Empty(t, resp.ValidationErrors)

	quiz, ok := resp.Quiz.(map[string]any)
	require.True(t, ok)
	assert.Len(t, quiz["questions"], 1)
	backend.AssertExpectations(t)
}

func TestGenerateQuiz_StrictReportsViolations(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(testRecord(), nil)
	backend := new(MockBackend)
	backend.On("Available").Return(true)
	backend.On("Generate", mock.Anything, mock.Anything).Return(`{"questions": []}`, nil)

	svc := NewQuizService(resolver, backend, nil)

	resp, err := svc.GenerateQuiz(context.Background(), &dto.QuizRequest{URL: testURL, Strict: true}, testParams())
	require.NoError(t, err)
	assert.Equal(t, dto.StatusGenerated, resp.Status)
	assert.NotEmpty(t, resp.ValidationErrors)
	assert.Equal(t, map[string]any{"questions": []any{}}, resp.Quiz)

	resp, err = svc.GenerateQuiz(context.Background(), &dto.QuizRequest{URL: testURL}, testParams())
	require.NoError(t, err)
	assert.Empty(t, resp.ValidationErrors)
}

func TestGenerateQuiz_ParseFailed(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(testRecord(), nil)
	backend := new(MockBackend)
	backend.On("Available").Return(true)
	backend.On("Generate", mock.Anything, mock.Anything).Return("Sorry, I cannot comply.", nil)

	resp, err := NewQuizService(resolver, backend, nil).GenerateQuiz(context.Background(), &dto.QuizRequest{URL: testURL}, testParams())

	require.NoError(t, err)
	assert.Equal(t, dto.StatusParseFailed, resp.Status)
	assert.Equal(t, normalizer.Failure{RawOutput: "Sorry, I cannot comply.", Error: "invalid_json"}, resp.Quiz)
}

func TestGenerateQuiz_BackendUnavailableReturnsPrepared(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(testRecord(), nil)

	resp, err := NewQuizService(resolver, nil, nil).GenerateQuiz(context.Background(), &dto.QuizRequest{URL: testURL}, testParams())

	require.NoError(t, err)
	assert.Equal(t, dto.StatusPrepared, resp.Status)
	assert.Equal(t, "none", resp.Backend)
	assert.Contains(t, resp.Instruction, "Create exactly 1 questions.")
	assert.Equal(t, testRecord(), resp.Record)
	assert.Nil(t, resp.Quiz)
}

func TestGenerateQuiz_Errors(t *testing.T) {
	t.Run("resolution failure aborts", func(t *testing.T) {
		resolver := new(MockResolver)
		resolver.On("Resolve", mock.Anything, mock.Anything).Return(nil, domain.NewUpstreamFetchError(testURL, assert.AnError))
		backend := new(MockBackend)

		_, err := NewQuizService(resolver, backend, nil).GenerateQuiz(context.Background(), &dto.QuizRequest{URL: testURL}, testParams())
		assert.True(t, domain.HasCode(err, domain.CodeUpstreamFetch))
		backend.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("generation failure surfaces", func(t *testing.T) {
		resolver := new(MockResolver)
		resolver.On("Resolve", mock.Anything, mock.Anything).Return(testRecord(), nil)
		backend := new(MockBackend)
		backend.On("Available").Return(true)
		backend.On("Generate", mock.Anything, mock.Anything).Return("", domain.NewGenerationError("mock", assert.AnError))

		_, err := NewQuizService(resolver, backend, nil).GenerateQuiz(context.Background(), &dto.QuizRequest{URL: testURL}, testParams())
		assert.True(t, domain.HasCode(err, domain.CodeGeneration))
	})
}

func TestPrepareQuiz(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, domain.VideoReference{URL: testURL, Language: "de"}).Return(testRecord(), nil)
	backend := new(MockBackend)

	resp, err := NewQuizService(resolver, backend, nil).PrepareQuiz(context.Background(), &dto.QuizRequest{URL: testURL, Lang: "de"}, testParams())

	require.NoError(t, err)
	assert.Equal(t, dto.StatusPrepared, resp.Status)
	assert.Equal(t, testURL, resp.URL)
	assert.NotEmpty(t, resp.Instruction)
	backend.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestBuildFromProvided(t *testing.T) {
	svc := NewQuizService(new(MockResolver), nil, nil)
	params := testParams()

	resp := svc.BuildFromProvided(strPtr("Title"), strPtr("Desc"), nil, params)
	assert.Equal(t, dto.StatusPrepared, resp.Status)
	assert.Equal(t, domain.NoTranscriptAvailable, resp.Record.Transcript)
	assert.Equal(t, "Title", resp.Record.TitleOr(""))

	resp = svc.BuildFromProvided(nil, nil, strPtr("spoken words"), params)
	assert.Equal(t, "spoken words", resp.Record.Transcript)
	assert.Nil(t, resp.Record.Title)
}
