package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denshoproject/namesdb-editor/internal/application/handlers"
)

type searchMultiFlags struct {
	method string
	output string
}

func newSearchMultiCmd() *cobra.Command {
	var flags searchMultiFlags

	cmd := &cobra.Command{
		Use:   "searchmulti [csvfile]",
		Short: "Find registry persons for names in external metadata",
		Long: "Reads a CSV of (id, fieldname, names) rows, decodes each names cell, " +
			"and writes candidate person matches as CSV.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearchMulti(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.method, "method", "m", "sql", "Match method (vector, sql)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runSearchMulti(cmd *cobra.Command, args []string, flags searchMultiFlags) error {
	if flags.method != "vector" && flags.method != "sql" {
		return fmt.Errorf("invalid method %q, valid methods: vector, sql", flags.method)
	}

	ctx := cmd.Context()

	return withReconcile(flags.method, func(h *handlers.ReconcileHandler) error {
		count, err := h.Handle(ctx, args[0], handlers.ReconcileOptions{
			Method:   flags.method,
			FilePath: flags.output,
		})
		if err != nil {
			return err
		}
		if flags.output != "" {
			fmt.Fprintf(os.Stderr, "Wrote %d matches to %s\n", count, flags.output)
		}
		return nil
	})
}
