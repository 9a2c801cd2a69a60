package main

import (
	"fmt"

	"video-quiz/internal/prompt"
	"video-quiz/internal/validation"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newPromptCmd(d deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prompt <url>",
		Short:   "Print the quiz generation instruction for a video",
		Example: "quizctl prompt https://youtu.be/abc --amt 7 --difficulty hard --type multiple-choice-4-option",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var amt *int
			if cmd.Flags().Changed("amt") {
				amt = lo.ToPtr(lo.Must(cmd.Flags().GetInt("amt")))
			}
			params, errs := validation.NewValidator().ParseQuizParameters(amt,
				lo.Must(cmd.Flags().GetString("difficulty")),
				lo.Must(cmd.Flags().GetString("type")))
			if len(errs) > 0 {
				return errs
			}

			record, err := resolveRecord(cmd, d, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), prompt.Build(record, params).String())
			return err
		},
	}

	cmd.Flags().IntP("amt", "n", 10, "Number of questions")
	cmd.Flags().StringP("difficulty", "d", "", "easy, medium or hard (default easy)")
	cmd.Flags().StringP("type", "t", "", "multiple-choice-4-option or flashcard (default flashcard)")
	return cmd
}
