package commands

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/gitmeta/internal/cli/output"
	"github.com/marmos91/gitmeta/pkg/store"
)

// listCmd prints every stored metadata record as a table.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored metadata records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		table := output.NewTableData("PATH", "MODE", "MTIME", "ATIME")
		err = s.store.ForEach(func(rec store.Record) error {
			table.AddRow(
				rec.Path,
				fmt.Sprintf("%04o", uint32(rec.FileMode()&fs.ModePerm)),
				time.Unix(rec.Mtime, 0).Format(time.RFC3339),
				time.Unix(rec.Atime, 0).Format(time.RFC3339),
			)
			return nil
		})
		if err != nil {
			return err
		}

		return output.PrintTable(cmd.OutOrStdout(), table)
	},
}
