package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSheetsCmd(open func(ctx context.Context) (SheetLister, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List the tabs of the configured spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd.Context())
			if err != nil {
				return err
			}
			names, err := store.ListSheetNames(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
