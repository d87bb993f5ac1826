package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uhudbuilders/sitecms/migration"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	cmd.AddCommand(
		UpCmd(),
		DownCmd(),
		StatusCmd(),
		HistoryCmd(),
	)
	return cmd
}

func UpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			debug, _ := cmd.Flags().GetBool("debug")
			out := cmd.OutOrStdout()

			_, st, err := openStore(debug)
			if err != nil {
				return err
			}
			defer st.Close()
			m := getMigrator(st)

			if dryRun {
				pending, err := m.Pending(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to get pending migrations: %w", err)
				}
				if len(pending) == 0 {
					fmt.Fprintln(out, "No pending migrations.")
					return nil
				}
				fmt.Fprintln(out, "Pending migrations (dry run):")
				for _, mr := range pending {
					fmt.Fprintf(out, "  %s (%s)\n", mr.Name, mr.Version)
				}
				return nil
			}

			applied, err := m.Up(cmd.Context())
			for _, mr := range applied {
				fmt.Fprintf(out, "Applied migration: %s (%s)\n", mr.Name, mr.Version)
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(out, "No pending migrations.")
			}
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "Show pending migrations without executing them")
	return cmd
}

func DownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Revert the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")

			_, st, err := openStore(debug)
			if err != nil {
				return err
			}
			defer st.Close()

			reverted, err := getMigrator(st).Down(cmd.Context())
			if errors.Is(err, migration.ErrNothingToRevert) {
				fmt.Fprintln(cmd.OutOrStdout(), "No migrations to revert.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully reverted migration: %s\n", reverted.Name)
			return nil
		},
	}
}

func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show status of all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			out := cmd.OutOrStdout()

			_, st, err := openStore(debug)
			if err != nil {
				return err
			}
			defer st.Close()

			statuses, err := getMigrator(st).Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Fprintf(out, "%-16s  %-30s  %-8s\n", "Version", "Name", "Status")
			for _, s := range statuses {
				status := "Pending"
				if s.Applied {
					status = "Applied"
				}
				fmt.Fprintf(out, "%-16s  %-30s  %-8s\n", s.Version, s.Name, status)
			}
			return nil
		},
	}
}

func HistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show applied migrations, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			out := cmd.OutOrStdout()

			_, st, err := openStore(debug)
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := getMigrator(st).History(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No migrations have been applied.")
				return nil
			}

			fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", "Version", "Name", "Applied At")
			for _, r := range records {
				fmt.Fprintf(out, "%-16s  %-30s  %-24s\n", r.Version, r.Name, r.AppliedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
