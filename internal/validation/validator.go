package validation

import (
	"fmt"
	"net/url"
	"strings"

	"video-quiz/internal/domain"

	"github.com/samber/lo"
)

// Validator checks request parameters and generated quizzes.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

var testTypeAliases = map[string]domain.TestType{
	"multiple-choice": domain.TestTypeMultipleChoice,
	"multiple_choice": domain.TestTypeMultipleChoice,
}

// ValidateVideoURL rejects empty or non-absolute references.
func (v *Validator) ValidateVideoURL(raw string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return append(errors, domain.NewMissingFieldError("url"))
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, domain.NewInvalidFormatError("url", raw))
	}
	return errors
}

// ParseQuizParameters applies defaults to omitted fields and rejects anything
// outside the accepted sets. Values are never coerced into range.
func (v *Validator) ParseQuizParameters(amt *int, difficulty, testType string) (domain.QuizParameters, domain.ValidationErrors) {
	var errors domain.ValidationErrors
	params := domain.QuizParameters{
		QuestionCount: domain.DefaultQuestionCount,
		Difficulty:    domain.DifficultyEasy,
		TestType:      domain.TestTypeFlashcard,
	}

	if amt != nil {
		if *amt <= 0 || *amt > domain.MaxQuestionCount {
			errors = append(errors, domain.NewOutOfRangeError("amt_quest", *amt, 1, domain.MaxQuestionCount))
		} else {
			params.QuestionCount = *amt
		}
	}

	if difficulty != "" {
		if lo.Contains(domain.Difficulties, domain.Difficulty(difficulty)) {
			params.Difficulty = domain.Difficulty(difficulty)
		} else {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty,
				lo.Map(domain.Difficulties, func(d domain.Difficulty, _ int) string { return string(d) })...))
		}
	}

	if testType != "" {
		if parsed, ok := parseTestType(testType); ok {
			params.TestType = parsed
		} else {
			errors = append(errors, domain.NewInvalidFormatError("test_type", testType,
				lo.Map(domain.TestTypes, func(t domain.TestType, _ int) string { return string(t) })...))
		}
	}

	return params, errors
}

// parseTestType accepts the canonical keys, a few spellings of them, and the
// descriptive labels. Matching is exact.
func parseTestType(s string) (domain.TestType, bool) {
	if alias, ok := testTypeAliases[s]; ok {
		return alias, true
	}
	return lo.Find(domain.TestTypes, func(t domain.TestType) bool {
		return s == string(t) || s == t.Description()
	})
}

// ValidateQuiz checks a normalized value against the quiz schema. It is a
// separate step from normalization; callers decide whether violations matter.
func (v *Validator) ValidateQuiz(value any, params domain.QuizParameters) domain.ValidationErrors {
	var errors domain.ValidationErrors

	obj, ok := value.(map[string]any)
	if !ok {
		return append(errors, domain.NewInvalidFormatError("quiz", fmt.Sprintf("%T", value)))
	}
	raw, present := obj["questions"]
	if !present {
		return append(errors, domain.NewMissingFieldError("questions"))
	}
	questions, ok := raw.([]any)
	if !ok {
		return append(errors, domain.NewInvalidFormatError("questions", fmt.Sprintf("%T", raw)))
	}
	if len(questions) != params.QuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("questions", len(questions), params.QuestionCount, params.QuestionCount))
	}

	for i, q := range questions {
		errors = append(errors, validateQuestion(fmt.Sprintf("questions[%d]", i), q)...)
	}
	return errors
}

func validateQuestion(path string, value any) domain.ValidationErrors {
	var errors domain.ValidationErrors

	q, ok := value.(map[string]any)
	if !ok {
		return append(errors, domain.NewInvalidFormatError(path, fmt.Sprintf("%T", value)))
	}

	question, _ := q["question"].(string)
	if strings.TrimSpace(question) == "" {
		errors = append(errors, domain.NewMissingFieldError(path+".question"))
	}

	options, optErrs := stringArray(path+".options", q["options"])
	errors = append(errors, optErrs...)
	_, explErrs := stringArray(path+".explanation", q["explanation"])
	errors = append(errors, explErrs...)

	answer, ok := q["answer"].(string)
	switch {
	case !ok || answer == "":
		errors = append(errors, domain.NewMissingFieldError(path+".answer"))
	case len(optErrs) == 0 && !lo.Contains(options, answer):
		errors = append(errors, domain.NewInvalidFormatError(path+".answer", answer, options...))
	}
	return errors
}

func stringArray(path string, value any) ([]string, domain.ValidationErrors) {
	if value == nil {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError(path)}
	}
	items, ok := value.([]any)
	if !ok {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError(path, fmt.Sprintf("%T", value))}
	}
	if len(items) != domain.OptionsPerQuestion {
		return nil, domain.ValidationErrors{
			domain.NewOutOfRangeError(path, len(items), domain.OptionsPerQuestion, domain.OptionsPerQuestion),
		}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, domain.ValidationErrors{domain.NewInvalidFormatError(path, fmt.Sprintf("%T", item))}
		}
		out = append(out, s)
	}
	return out, nil
}
