package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/adforge/adforge/internal/observability"
	"github.com/adforge/adforge/internal/veolink"
)

var suggestFlags struct {
	name        string
	productType string
	features    string
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest a product action for the video",
	Long: `Suggest a short physical demonstration of the product for the
presenter. Always prints a usable suggestion; failures fall back to a fixed
default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		service, err := newGenerationService(ctx, currentConfig(), observability.CLILogger)
		if err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to initialize completion driver", err)
		}

		suggestion := service.GenerateActionSuggestion(ctx, suggestFlags.name, suggestFlags.productType, suggestFlags.features)
		fmt.Println(suggestion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	f := suggestCmd.Flags()
	f.StringVar(&suggestFlags.name, "name", "", "product name (required)")
	f.StringVar(&suggestFlags.productType, "type", string(veolink.ProductPhysical), "product type")
	f.StringVar(&suggestFlags.features, "features", "", "product features/description")

	_ = suggestCmd.MarkFlagRequired("name")
}
