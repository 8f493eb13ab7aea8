package main

import (
	"fmt"

	"github.com/agriconnect/agriconnect"
	"github.com/spf13/cobra"
)

func newSeedCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert reference data",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "languages",
		Short: "Insert the default languages that are missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			module, db, err := agriconnect.Open(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			created, err := module.SeedLanguages(cmd.Context(), agriconnect.DefaultLanguages())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d languages\n", created)
			return nil
		},
	})
	return cmd
}
