package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/uhudbuilders/sitecms/internal/legacy"
)

func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a legacy document-store export (JSON or YAML)",
		Long: `Copies projects, units, gallery items, messages and site settings from a
legacy export into the database. Rows whose id already exists are skipped,
so the import can be re-run. With --seed the built-in sample catalogue is
imported instead of a file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			seed, _ := cmd.Flags().GetBool("seed")
			debug, _ := cmd.Flags().GetBool("debug")

			var exp *legacy.Export
			switch {
			case seed && len(args) > 0:
				return fmt.Errorf("--seed and a file argument are mutually exclusive")
			case seed:
				exp = legacy.Seed()
			case len(args) == 1:
				var err error
				if exp, err = legacy.ReadFile(args[0]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("an export file is required unless --seed is set")
			}

			cfg, st, err := openStore(debug)
			if err != nil {
				return err
			}
			defer st.Close()

			im := legacy.NewImporter(st,
				legacy.WithDryRun(dryRun),
				legacy.WithLogger(newLogger(cfg.Log.Level)),
			)
			report, err := im.Run(cmd.Context(), exp)
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
	cmd.Flags().Bool("dry-run", false, "Parse the export and report without writing")
	cmd.Flags().Bool("seed", false, "Import the built-in sample catalogue")
	cmd.Flags().Bool("debug", false, "Enable debug output")
	return cmd
}

func printReport(out io.Writer, r *legacy.Report) {
	if r.DryRun {
		fmt.Fprintln(out, "Dry run, nothing was written.")
	}
	fmt.Fprintf(out, "%-12s  %8s  %8s  %8s\n", "Collection", "Found", "Inserted", "Skipped")
	rows := []struct {
		name string
		t    legacy.Tally
	}{
		{"projects", r.Projects},
		{"units", r.Units},
		{"gallery", r.Gallery},
		{"messages", r.Messages},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%-12s  %8d  %8d  %8d\n", row.name, row.t.Found, row.t.Inserted, row.t.Skipped)
	}
	settings := "not present"
	if r.Settings {
		settings = "imported"
		if r.DryRun {
			settings = "present"
		}
	}
	fmt.Fprintf(out, "Settings: %s\n", settings)
}
