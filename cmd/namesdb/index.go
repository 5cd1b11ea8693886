package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denshoproject/namesdb-editor/internal/application/handlers"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the search indices",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withPublish(func(h *handlers.PublishHandler) error {
				if err := h.CreateIndices(ctx); err != nil {
					return err
				}
				fmt.Println("Indices created")
				return nil
			})
		},
	}
}

func newDestroyCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the search indices and all their documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("refusing to destroy indices without --confirm")
			}

			ctx := cmd.Context()

			return withPublish(func(h *handlers.PublishHandler) error {
				if err := h.DestroyIndices(ctx); err != nil {
					return err
				}
				fmt.Println("Indices destroyed")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm destruction")

	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show search index status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withPublish(func(h *handlers.PublishHandler) error {
				statuses, err := h.Status(ctx)
				if err != nil {
					return err
				}
				for _, s := range statuses {
					if s.Exists {
						fmt.Printf("%-24s %d documents\n", s.Name, s.Points)
					} else {
						fmt.Printf("%-24s missing\n", s.Name)
					}
				}
				return nil
			})
		},
	}
}
