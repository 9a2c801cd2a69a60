package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	cause := errors.New("exit status 1")
	err := fmt.Errorf("resolve: %w", NewUpstreamFetchError("https://youtu.be/x", cause))

	assert.True(t, HasCode(err, CodeUpstreamFetch))
	assert.False(t, HasCode(err, CodeUpstreamFormat))
	assert.False(t, HasCode(cause, CodeUpstreamFetch))
	assert.ErrorIs(t, err, cause)
}

func TestDomainError_JSON(t *testing.T) {
	err := NewUnsupportedItemShapeError(2, "number")

	data, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	assert.JSONEq(t, `{"code": "UNSUPPORTED_ITEM_SHAPE", "message": "unsupported video item at index 2: number", "context": {"index": 2}}`, string(data))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		NewMissingFieldError("url"),
		NewOutOfRangeError("amt_quest", 0, 1, MaxQuestionCount),
	}
	assert.Equal(t, "validation failed: url: field is required; amt_quest: must be between 1 and 50", errs.Error())
	assert.Equal(t, "must be one of: easy, hard", NewInvalidFormatError("difficulty", "x", "easy", "hard").Message)
}

func TestMediaRecord_Fallbacks(t *testing.T) {
	title := "Goroutines"
	r := &MediaRecord{Title: &title}

	assert.Equal(t, "Goroutines", r.TitleOr("?"))
	assert.Equal(t, "?", r.DescriptionOr("?"))
	assert.Equal(t, VideoReference{URL: "u", Language: DefaultLanguage}, NewVideoReference("u", ""))
	assert.Equal(t, "Failed to fetch subtitles (HTTP 404)", SubtitleFetchDegradedText(404))
}

func TestTestType_Description(t *testing.T) {
	assert.Equal(t, "multiple choice with 4 options and only 1 correct answer", TestTypeMultipleChoice.Description())
	assert.Equal(t, "flashcard where a definition or question is paired by 1 answer", TestTypeFlashcard.Description())
	assert.Equal(t, "essay", TestType("essay").Description())
}
