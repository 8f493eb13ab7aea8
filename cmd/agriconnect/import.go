package main

import (
	"fmt"

	"github.com/agriconnect/agriconnect"
	"github.com/spf13/cobra"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load content from files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "advisory <crop-advisory|post-harvest> <dir>",
		Short: "Import Markdown articles into advisory storage",
		Long: `Reads every *.md file under dir. The language comes from the
frontmatter "language" key or from a leading locale directory such as hi/.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			result, err := module.ImportAdvisory(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d articles\n", result.Imported)
			for _, issue := range result.Skipped {
				fmt.Fprintf(out, "skipped %s: %v\n", issue.Path, issue.Err)
			}
			return nil
		},
	})
	return cmd
}
