package cmd

import (
	"fmt"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"

	"github.com/adforge/adforge/internal/observability"
)

var remixFlags struct {
	name     string
	features string
	request  string
}

var remixCmd = &cobra.Command{
	Use:   "remix",
	Short: "Generate one extra prompt from a free-form request",
	Long: `Generate a single ad-hoc prompt block from a free-form request
("mostra o produto de costas", "close no tecido", ...). Always prints a
string; failures map to fixed placeholders.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		service, err := newGenerationService(ctx, currentConfig(), observability.CLILogger)
		if err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to initialize completion driver", err)
		}

		prompt := service.GenerateExtraPrompt(ctx, remixFlags.name, remixFlags.features, remixFlags.request)
		fmt.Println(prompt)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(remixCmd)

	f := remixCmd.Flags()
	f.StringVar(&remixFlags.name, "name", "", "product name (required)")
	f.StringVar(&remixFlags.features, "features", "", "product features/description")
	f.StringVar(&remixFlags.request, "request", "", "free-form request for the extra prompt (required)")

	_ = remixCmd.MarkFlagRequired("name")
	_ = remixCmd.MarkFlagRequired("request")
}
