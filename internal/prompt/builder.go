// Package prompt renders the instruction that asks a text generator for a quiz.
// The wording is part of the contract with the generation step: changing it
// changes what models return.
package prompt

import (
	"fmt"
	"strings"

	"video-quiz/internal/domain"
)

// NotProvided stands in for an absent title or description.
const NotProvided = "(not provided)"

const schema = `{
  "questions": [
    {
      "question": string,
      "options": [string, string, string, string],
      "explanation": [string, string, string, string],
      "answer": string
    }
  ]
}`

// Build renders the instruction for record and params. It performs no I/O and
// returns byte-identical output for identical input. params must already be
// validated.
func Build(record *domain.MediaRecord, params domain.QuizParameters) domain.QuizInstruction {
	var b strings.Builder

	b.WriteString(Header(params))
	b.WriteString("\n\n")
	b.WriteString("Title: ")
	b.WriteString(record.TitleOr(NotProvided))
	b.WriteString("\nDescription: ")
	b.WriteString(record.DescriptionOr(NotProvided))
	b.WriteString("\nTranscript:\n")
	b.WriteString(record.Transcript)
	b.WriteString("\n")

	return domain.QuizInstruction(b.String())
}

// Header renders the instruction without the source material. It is what a
// client receives when it runs generation itself with the record alongside.
func Header(params domain.QuizParameters) string {
	var b strings.Builder

	b.WriteString("You are a quiz generator. ")
	b.WriteString("Use the given title, description, and transcript to generate a quiz.\n")
	fmt.Fprintf(&b, "Create exactly %d questions.\n", params.QuestionCount)
	fmt.Fprintf(&b, "Difficulty = %s.\n", params.Difficulty)
	fmt.Fprintf(&b, "Type = %s (%s).\n", params.TestType, params.TestType.Description())
	b.WriteString("Return the output strictly as a JSON object with the following format:\n\n")
	b.WriteString(schema)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Every question must have exactly %d options.\n", domain.OptionsPerQuestion)
	fmt.Fprintf(&b, "\"explanation\" must have exactly %d entries; entry i explains why options[i] is correct or incorrect.\n", domain.OptionsPerQuestion)
	b.WriteString("\"answer\" must be exactly one of the strings in \"options\".\n")
	b.WriteString("Do not include any explanation, notes, or extra text outside of the JSON object.")

	return b.String()
}
