package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denshoproject/namesdb-editor/internal/application/handlers"
)

func newPostCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "post [model]",
		Short: "Publish records to the search index",
		Long:  "Projects records of the given model into search documents and upserts them.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withPublish(func(h *handlers.PublishHandler) error {
				result, err := h.Post(ctx, args[0], limit)
				if err != nil {
					return err
				}
				fmt.Printf("Posted %d documents\n", result.Posted)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultPostLimit, "Maximum number of records (0 = all)")

	return cmd
}
