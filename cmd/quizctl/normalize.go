package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"video-quiz/internal/normalizer"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var errNotJSON = errors.New("no JSON could be recovered")

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [file|-]",
		Short: "Recover the JSON object from raw model output",
		Long: "Reads model output from a file, or stdin when the argument is '-' or omitted, and prints\n" +
			"the recovered JSON. Unrecoverable input prints {\"raw_output\", \"error\": \"invalid_json\"}.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			result := normalizer.Normalize(string(data))
			if err := writeJSON(cmd.OutOrStdout(), result.Payload()); err != nil {
				return err
			}
			if lo.Must(cmd.Flags().GetBool("tier")) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "tier: %s\n", result.Tier)
			}
			if !result.OK() && lo.Must(cmd.Flags().GetBool("fail")) {
				return errNotJSON
			}
			return nil
		},
	}

	cmd.Flags().Bool("tier", false, "Report which fallback produced the value on stderr")
	cmd.Flags().Bool("fail", false, "Exit non-zero when nothing could be recovered")
	return cmd
}
