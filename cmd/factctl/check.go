package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// errTooSimilar makes factctl exit with status 1 without printing an error.
var errTooSimilar = errors.New("question is too similar to an existing one")

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <question>",
		Short: "Show the closest existing question and whether a submission would be rejected",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			res, err := b.Service.Check(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Match == "" {
				fmt.Fprintln(out, "no existing questions")
			} else {
				fmt.Fprintf(out, "best match: %s\n", res.Match)
			}
			fmt.Fprintf(out, "score:      %.4f\n", res.Score)
			fmt.Fprintf(out, "threshold:  %.4f\n", res.Threshold)

			if res.TooSimilar {
				fmt.Fprintln(out, "result:     rejected")
				return errTooSimilar
			}
			fmt.Fprintln(out, "result:     accepted")
			return nil
		},
	}
}
