package domain

// Difficulty is the requested quiz difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the accepted difficulty values.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// TestType is the requested quiz format.
type TestType string

const (
	TestTypeMultipleChoice TestType = "multiple-choice-4-option"
	TestTypeFlashcard      TestType = "flashcard"
)

// TestTypes lists the accepted test type values.
var TestTypes = []TestType{TestTypeMultipleChoice, TestTypeFlashcard}

// Description is the sentence rendered into the generation instruction.
func (t TestType) Description() string {
	switch t {
	case TestTypeMultipleChoice:
		return "multiple choice with 4 options and only 1 correct answer"
	case TestTypeFlashcard:
		return "flashcard where a definition or question is paired by 1 answer"
	}
	return string(t)
}

const (
	DefaultQuestionCount = 10
	MaxQuestionCount     = 50

	// OptionsPerQuestion is the fixed length of options and explanation arrays.
	OptionsPerQuestion = 4
)

// QuizParameters are validated quiz settings. Build them with
// validation.ParseQuizParameters so that QuestionCount > 0 and both enums
// hold one of the listed values.
type QuizParameters struct {
	QuestionCount int        `json:"amt_quest"`
	Difficulty    Difficulty `json:"difficulty"`
	TestType      TestType   `json:"test_type"`
}

// QuizInstruction is the rendered prompt handed to the generation step.
type QuizInstruction string

func (i QuizInstruction) String() string {
	return string(i)
}
