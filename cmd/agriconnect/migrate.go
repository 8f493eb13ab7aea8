package main

import (
	"context"
	"fmt"
	"io"

	"github.com/agriconnect/agriconnect"
	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return runMigrations(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration group",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := agriconnect.Rollback(cmd.Context(), db, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migrations\n", len(result.Names))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := agriconnect.MigrationStatuses(cmd.Context(), db)
			if err != nil {
				return err
			}
			for _, status := range statuses {
				state := "pending"
				if status.Applied {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", state, status.ID())
			}
			return nil
		},
	})
	return cmd
}

func runMigrations(ctx context.Context, cfg agriconnect.Config, out io.Writer) error {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := agriconnect.Migrate(ctx, db, nil)
	if err != nil {
		return err
	}
	if !result.Applied() {
		fmt.Fprintln(out, "database is up to date")
		return nil
	}
	fmt.Fprintf(out, "applied %d migrations (group %d)\n", len(result.Names), result.GroupID)
	return nil
}
