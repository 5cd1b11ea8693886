package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/denshoproject/namesdb-editor/internal/domain/entities"
	"github.com/denshoproject/namesdb-editor/internal/domain/ports"
	"github.com/denshoproject/namesdb-editor/internal/infrastructure/config"
)

func newRevisionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revisions [model] [id]",
		Short: "Show the audit trail for one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := entities.Kind(args[0])
			if !kind.IsValid() {
				return fmt.Errorf("unknown record kind %q (one of: %v)", args[0], entities.Kinds)
			}

			ctx := cmd.Context()

			return withDB(func(cfg *config.Config, db ports.RegistryDB) error {
				revisions, err := db.FindRevisions(ctx, kind, args[1])
				if err != nil {
					return err
				}
				if len(revisions) == 0 {
					fmt.Printf("No revisions for %s %s\n", kind, args[1])
					return nil
				}

				for _, rev := range revisions {
					fmt.Printf("%s  %s  %s\n", rev.Timestamp.Format(time.RFC3339), rev.Username, rev.Note)
					fmt.Println(rev.Diff)
					fmt.Println()
				}
				return nil
			})
		},
	}
}
