package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/adforge/adforge/internal/observability"
	"github.com/adforge/adforge/internal/output"
)

var historyFlags struct {
	clear  bool
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear past generations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openHistoryStore(ctx, currentConfig())
		if err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to open history store", err)
		}
		defer st.Close() // nolint:errcheck // best-effort cleanup

		if historyFlags.clear {
			if err := st.ClearHistory(ctx); err != nil {
				return err
			}
			fmt.Println("History cleared.")
			return nil
		}

		format, err := output.ParseFormat(historyFlags.format)
		if err != nil {
			return err
		}

		items, err := st.ListHistory(ctx)
		if err != nil {
			return err
		}

		rendered, err := output.NewFormatter(format).FormatHistory(items)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	f := historyCmd.Flags()
	f.BoolVar(&historyFlags.clear, "clear", false, "remove all history items")
	f.StringVarP(&historyFlags.format, "output", "o", string(output.FormatTable), "output format: table, json, markdown")
}
