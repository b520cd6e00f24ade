package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Submit every row of a facts CSV file",
		Long: `Reads a CSV file with a Question,Answer,Location,Category header and
submits each row. Rows that fail validation or the similarity check are
reported and skipped. --force skips the similarity check.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			report, err := b.Service.Import(cmd.Context(), f, force)
			if report != nil {
				out := cmd.OutOrStdout()
				for _, r := range report.Rejected {
					fmt.Fprintf(out, "row %d: %s\n", r.Row, r.Reason)
				}
				fmt.Fprintf(out, "saved %d, rejected %d\n", report.Saved, len(report.Rejected))
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the similarity check")
	return cmd
}
