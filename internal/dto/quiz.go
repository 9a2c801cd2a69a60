package dto

import (
	"encoding/json"

	"video-quiz/internal/domain"
)

// Quiz statuses reported in QuizResponse.Status.
const (
	StatusGenerated   = "generated"
	StatusParseFailed = "parse_failed"
	StatusPrepared    = "prepared"
)

// ProcessDataRequest asks for the metadata and transcript of one video
// @Description Request body for resolving video metadata
type ProcessDataRequest struct {
	URL  string `json:"url"`
	Lang string `json:"lang,omitempty"`
}

// QuizRequest asks for a quiz about one video. Omitted parameters take their defaults.
// @Description Request body for preparing or generating a quiz
type QuizRequest struct {
	URL        string `json:"url"`
	Lang       string `json:"lang,omitempty"`
	AmtQuest   *int   `json:"amt_quest,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	TestType   string `json:"test_type,omitempty"`
	Strict     bool   `json:"strict,omitempty"`
}

// FromMetadataRequest carries metadata the client already holds
// @Description Request body for building a quiz prompt from provided metadata
type FromMetadataRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Transcript  *string `json:"transcript,omitempty"`
	AmtQuest    *int    `json:"amt_quest,omitempty"`
	Difficulty  string  `json:"difficulty,omitempty"`
	TestType    string  `json:"test_type,omitempty"`
}

// QuizResponse echoes the parameters next to the quiz. Quiz holds the parsed
// value, or {raw_output, error} when the generator output could not be parsed.
// Prepared responses carry Instruction and Record instead of Quiz.
// @Description Quiz result or prepared prompt
type QuizResponse struct {
	ID               string                  `json:"id"`
	Status           string                  `json:"status"`
	URL              string                  `json:"url,omitempty"`
	AmtQuest         int                     `json:"amt_quest"`
	Difficulty       string                  `json:"difficulty"`
	TestType         string                  `json:"test_type"`
	Backend          string                  `json:"backend,omitempty"`
	Quiz             any                     `json:"quiz,omitempty"`
	Instruction      string                  `json:"instruction,omitempty"`
	Record           *domain.MediaRecord     `json:"record,omitempty"`
	ValidationErrors domain.ValidationErrors `json:"validation_errors,omitempty"`
}

// SmartSortRequest is forwarded to the sorting service. Each video may be an
// object, a [title, description, transcription] array or a media record.
// @Description Request body for ordering videos into a course
type SmartSortRequest struct {
	CourseName string            `json:"course_name"`
	Goals      string            `json:"goals"`
	Videos     []json.RawMessage `json:"videos"`
}

// HealthResponse reports process and dependency status
type HealthResponse struct {
	Status     string `json:"status"`
	Generation string `json:"generation"`
	Cache      string `json:"cache"`
}
