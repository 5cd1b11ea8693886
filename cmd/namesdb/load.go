package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denshoproject/namesdb-editor/internal/application/handlers"
)

type loadFlags struct {
	format   string
	username string
	note     string
	offset   int
	limit    int
}

func newLoadCmd() *cobra.Command {
	var flags loadFlags

	cmd := &cobra.Command{
		Use:   "load [model] [file]",
		Short: "Import records from a CSV or JSON file",
		Long: "Imports rows as records of the given model, creating or updating by " +
			"natural key. Changed saves are recorded in the audit log.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "Input format (auto, json, csv)")
	cmd.Flags().StringVarP(&flags.username, "username", "u", "", "Username recorded in the audit log")
	cmd.Flags().StringVarP(&flags.note, "note", "n", "", "Note recorded in the audit log")
	cmd.Flags().IntVar(&flags.offset, "offset", 0, "Skip the first N rows")
	cmd.Flags().IntVarP(&flags.limit, "limit", "l", 0, "Load at most N rows (0 = all)")

	return cmd
}

func runLoad(cmd *cobra.Command, args []string, flags loadFlags) error {
	if !contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	ctx := cmd.Context()

	return withLoad(func(h *handlers.LoadHandler) error {
		result, err := h.Handle(ctx, args[0], args[1], handlers.LoadOptions{
			Format:   flags.format,
			Username: flags.username,
			Note:     flags.note,
			Offset:   flags.offset,
			Limit:    flags.limit,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Saved %d records\n", result.Saved)
		if len(result.Errors) > 0 {
			fmt.Fprintf(os.Stderr, "%d rows failed:\n", len(result.Errors))
			for _, loadErr := range result.Errors {
				fmt.Fprintf(os.Stderr, "  %s\n", loadErr.Error())
			}
		}
		return nil
	})
}
