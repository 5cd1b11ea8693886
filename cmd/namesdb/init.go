package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/denshoproject/namesdb-editor/internal/infrastructure/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a namesdb configuration in the current directory",
		Long:  "Writes a default .namesdb/config.yaml; edit it before loading data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			if err := config.WriteDefault(cwd); err != nil {
				return err
			}

			fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))
			return nil
		},
	}
}
