package main

import (
	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write every fact as CSV to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			return b.Service.Export(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
