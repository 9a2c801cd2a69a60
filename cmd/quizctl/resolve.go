package main

import (
	"github.com/spf13/cobra"
)

func newResolveCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <url>",
		Short:   "Print title, description and transcript of a video as JSON",
		Example: "quizctl resolve https://www.youtube.com/watch?v=dQw4w9WgXcQ --lang en",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := resolveRecord(cmd, d, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), record)
		},
	}
}
