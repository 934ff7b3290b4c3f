package veolink

import (
	"fmt"
	"strings"
)

// Brand handle stamped into every product-lock line.
const brandHandle = "@achadinhos_da_ellen"

// Fixed presenter personas. Gender selects between them; nothing else in
// the pipeline branches on gender.
const (
	characterMan   = "AI-generated Brazilian male named Leo, 25yo. Athletic build, sun-kissed skin."
	characterWoman = "AI-generated Brazilian female named Ella, 25yo. Wavy brown hair, fit build, sun-kissed skin."
)

const defaultEnvironment = "neutral studio"

// CompileFullInstruction maps a product configuration into the system
// instruction and the advisory output schema for a full generation. It is
// pure and deterministic: identical configurations compile to byte-identical
// output.
func CompileFullInstruction(cfg ProductConfig) (string, map[string]any) {
	character := characterWoman
	if cfg.Gender == GenderMan {
		character = characterMan
	}

	var product strings.Builder
	fmt.Fprintf(&product, "FOTOS REAIS DO NOSSO PRODUTO %s. %s.", cfg.ProductName, cfg.Features)
	if cfg.HasPrice {
		fmt.Fprintf(&product, " Preço: R$ %s.", cfg.Price)
	}
	fmt.Fprintf(&product, " Marca: %s.", brandHandle)

	environment := cfg.Environment
	if strings.TrimSpace(environment) == "" {
		environment = defaultEnvironment
	}
	light := "Cinematic night light"
	if cfg.TimeOfDay == TimeDay {
		light = "Day light"
	}

	posture := "Handheld smartphone POV (selfie style)."
	if cfg.InteractionMode == InteractionHandsFree {
		posture = "Hands-free mode. Full range of motion for both hands."
	}

	var b strings.Builder
	b.WriteString("VOCÊ É O ENGENHEIRO DE PROMPTS VEO3 DA @ACHADINHOS_DA_ELLEN.\n\n")
	b.WriteString("REGRA ABSOLUTA: O campo \"full_prompt\" deve ser uma string única contendo EXATAMENTE estes 7 blocos, um em cada linha:\n\n")
	b.WriteString("[COMPLIANCE NOTICE]: AI Character Disclosure.\n")
	fmt.Fprintf(&b, "[CHARACTER]: %s\n", character)
	fmt.Fprintf(&b, "[PRODUCT_LOCK]: %s\n", product.String())
	fmt.Fprintf(&b, "[SCENE]: 9:16 Vertical, %s, %s.\n", environment, light)
	fmt.Fprintf(&b, "[POSTURE]: PHYSICS: %s\n", posture)
	fmt.Fprintf(&b, "[ACTION]: (Descreva a ação técnica focando em: %s)\n", cfg.ExtraContext)
	fmt.Fprintf(&b, "[DIALOGUE]: [Character] diz: \"(Roteiro em PT-BR focado no tom %s)\"\n\n", string(cfg.VoiceTone))
	b.WriteString("Gere 4 estratégias de venda (estilo TikTok/Reels) em formato JSON.")

	return b.String(), strategiesSchema()
}

// CompileUserPrompt builds the short task message that accompanies the
// system instruction of a full generation.
func CompileUserPrompt(cfg ProductConfig) string {
	return fmt.Sprintf("Gere 4 blocos de vídeo para o produto: %s. Cada bloco deve ter o seu próprio \"full_prompt\" com os 7 locks.", cfg.ProductName)
}

// CompileActionSuggestionInstruction builds the one-shot instruction for a
// short action suggestion. No schema; the reply is free text.
func CompileActionSuggestionInstruction(productName, productType, features string) string {
	return fmt.Sprintf("Gere uma ação curta de 8s para demonstrar o produto %s (%s). Destaques: %s. Use verbos técnicos. Responda apenas com a ação em PT-BR.",
		productName, productType, features)
}

// CompileExtraPromptInstruction builds the one-shot instruction for an
// ad-hoc prompt remix. No schema; the reply is free text.
func CompileExtraPromptInstruction(productName, features, userRequest string) string {
	return fmt.Sprintf("Gere um bloco de prompt VEO3 único para %s baseado no pedido: %s. Características: %s. Use o padrão [TAG]: conteúdo.",
		productName, userRequest, features)
}

// strategiesSchema is the advisory reply schema for full generations. The
// backend treats it as a hint; the reconciler re-validates every reply.
func strategiesSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"strategies": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":           map[string]any{"type": "string"},
						"marketing_angle": map[string]any{"type": "string"},
						"tiktok_caption":  map[string]any{"type": "string"},
						"segments": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"index":       map[string]any{"type": "integer"},
									"full_prompt": map[string]any{"type": "string"},
								},
								"required": []string{"index", "full_prompt"},
							},
						},
					},
					"required": []string{"title", "segments"},
				},
			},
		},
		"required": []string{"strategies"},
	}
}
