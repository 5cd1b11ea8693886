package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denshoproject/namesdb-editor/internal/application/handlers"
)

type dumpFlags struct {
	cols   []string
	limit  int
	output string
}

func newDumpCmd() *cobra.Command {
	var flags dumpFlags

	cmd := &cobra.Command{
		Use:   "dump [model]",
		Short: "Export records to CSV",
		Long:  "Exports records of the given model as CSV, to stdout or a file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.cols, "cols", "c", nil, "Columns to export (default: all fields)")
	cmd.Flags().IntVarP(&flags.limit, "limit", "l", DefaultDumpLimit, "Maximum number of records (0 = all)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runDump(cmd *cobra.Command, args []string, flags dumpFlags) error {
	ctx := cmd.Context()

	return withDump(func(h *handlers.DumpHandler) error {
		count, err := h.Handle(ctx, args[0], handlers.DumpOptions{
			Cols:     flags.cols,
			Limit:    flags.limit,
			FilePath: flags.output,
		})
		if err != nil {
			return err
		}
		if flags.output != "" {
			fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", count, flags.output)
		}
		return nil
	})
}
