package commands

import "github.com/spf13/cobra"

// RootCmd assembles the sitecms command tree.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sitecms",
		Short:         "Real-estate site content server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		ServeCmd(),
		MigrateCmd(),
		ImportCmd(),
		AdminCmd(),
		SchemaCmd(),
	)
	return rootCmd
}
