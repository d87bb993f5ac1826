package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uhudbuilders/sitecms/internal/models"
	"github.com/uhudbuilders/sitecms/internal/schema"
)

func SchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Describe the tables derived from the registered models",
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := schema.Describe(models.ModelTypeRegistry)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, t := range tables {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s (%s)\n", t.TableName(), t.Model)
				for _, c := range t.TableColumns() {
					fmt.Fprintf(out, "  %-20s  %-10s  %s\n", c.ColumnName(), c.Type(), c.Attributes())
				}
			}
			return nil
		},
	}
}
