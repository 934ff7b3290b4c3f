package cmd

import (
	"fmt"
	"strings"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adforge/adforge/internal/observability"
	"github.com/adforge/adforge/internal/output"
	"github.com/adforge/adforge/internal/veolink"
)

var generateFlags struct {
	name        string
	features    string
	price       string
	target      string
	productType string
	interaction string
	environment string
	emphasis    string
	tone        string
	gender      string
	extra       string
	timeOfDay   string
	wordCount   int
	format      string
	noHistory   bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate prompt strategies for a product",
	Long: `Generate a full set of Veo3/Flow prompt strategies from a product
description. The first strategy is appended to history unless --no-history
is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := currentConfig()

		productCfg := veolink.ProductConfig{
			ProductName:     generateFlags.name,
			Features:        generateFlags.features,
			Price:           generateFlags.price,
			HasPrice:        strings.TrimSpace(generateFlags.price) != "",
			TargetModel:     veolink.TargetModel(generateFlags.target),
			ProductType:     veolink.ProductType(generateFlags.productType),
			InteractionMode: veolink.InteractionMode(generateFlags.interaction),
			Environment:     generateFlags.environment,
			VisualEmphasis:  veolink.VisualEmphasis(generateFlags.emphasis),
			VoiceTone:       veolink.VoiceTone(generateFlags.tone),
			Gender:          veolink.Gender(generateFlags.gender),
			ExtraContext:    generateFlags.extra,
			TimeOfDay:       veolink.TimeOfDay(generateFlags.timeOfDay),
			WordCount:       generateFlags.wordCount,
		}
		if err := productCfg.Validate(); err != nil {
			return err
		}

		format, err := output.ParseFormat(generateFlags.format)
		if err != nil {
			return err
		}

		service, err := newGenerationService(ctx, cfg, observability.CLILogger)
		if err != nil {
			ExitWithCode(observability.CLILogger, foundry.ExitConfigInvalid, "Failed to initialize completion driver", err)
		}

		response, err := service.GeneratePrompts(ctx, productCfg)
		if err != nil {
			// The façade already normalized this into the fixed guidance
			// message; the cause is in the logs.
			return err
		}

		if !generateFlags.noHistory && len(response.Strategies) > 0 {
			if st, err := openHistoryStore(ctx, cfg); err != nil {
				observability.CLILogger.Warn("History store unavailable, skipping append", zap.Error(err))
			} else {
				defer st.Close() // nolint:errcheck // best-effort cleanup
				if _, err := st.AppendHistory(ctx, productCfg.ProductName, response.Strategies[0], cfg.History.MaxItems); err != nil {
					observability.CLILogger.Warn("Failed to append history", zap.Error(err))
				}
			}
		}

		rendered, err := output.NewFormatter(format).FormatResponse(response)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.StringVar(&generateFlags.name, "name", "", "product name (required)")
	f.StringVar(&generateFlags.features, "features", "", "product features/description (required)")
	f.StringVar(&generateFlags.price, "price", "", "price text; omit to leave the price out of the prompts")
	f.StringVar(&generateFlags.target, "target", string(veolink.TargetFlow), `target model: "Flow", "Veo3", "Flow Fashion"`)
	f.StringVar(&generateFlags.productType, "type", string(veolink.ProductPhysical), `product type: "Físico", "Moda", "Digital", "Alimento"`)
	f.StringVar(&generateFlags.interaction, "interaction", string(veolink.InteractionHandheld), `interaction mode: "Celular na Mão", "Mãos Livres (Tripé)"`)
	f.StringVar(&generateFlags.environment, "environment", "", "scene environment (default: neutral studio)")
	f.StringVar(&generateFlags.emphasis, "emphasis", string(veolink.EmphasisLifestyle), "visual emphasis")
	f.StringVar(&generateFlags.tone, "tone", string(veolink.ToneEnthusiastic), "voice tone")
	f.StringVar(&generateFlags.gender, "gender", string(veolink.GenderWoman), `presenter: "Mulher", "Homem"`)
	f.StringVar(&generateFlags.extra, "extra", "", "extra context for the model")
	f.StringVar(&generateFlags.timeOfDay, "time", string(veolink.TimeDay), `time of day: "Day", "Night"`)
	f.IntVar(&generateFlags.wordCount, "words", veolink.MinWordCount, fmt.Sprintf("dialogue word count [%d,%d]", veolink.MinWordCount, veolink.MaxWordCount))
	f.StringVarP(&generateFlags.format, "output", "o", string(output.FormatTable), "output format: table, json, markdown")
	f.BoolVar(&generateFlags.noHistory, "no-history", false, "do not append the result to history")

	_ = generateCmd.MarkFlagRequired("name")
	_ = generateCmd.MarkFlagRequired("features")
}
