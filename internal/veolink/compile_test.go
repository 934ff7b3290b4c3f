package veolink

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixtureConfig() ProductConfig {
	return ProductConfig{
		ProductName:     "Macacão X",
		Features:        "Tecido leve",
		Price:           "99,90",
		HasPrice:        true,
		TargetModel:     TargetVeo3,
		ProductType:     ProductFashion,
		InteractionMode: InteractionHandsFree,
		Environment:     "",
		VisualEmphasis:  EmphasisLifestyle,
		VoiceTone:       ToneEnthusiastic,
		Gender:          GenderWoman,
		ExtraContext:    "mostrar o caimento do tecido",
		TimeOfDay:       TimeDay,
		WordCount:       25,
	}
}

func TestCompileFullInstructionDeterministic(t *testing.T) {
	cfg := fixtureConfig()

	first, firstSchema := CompileFullInstruction(cfg)
	second, secondSchema := CompileFullInstruction(cfg)

	require.Equal(t, first, second)
	require.Equal(t, firstSchema, secondSchema)
}

func TestCompileFullInstructionContainsSevenTagLines(t *testing.T) {
	instruction, _ := CompileFullInstruction(fixtureConfig())

	for _, tag := range TagOrder {
		require.Contains(t, instruction, "["+string(tag)+"]:")
	}
}

func TestCompileFullInstructionPriceOmittedWithoutFlag(t *testing.T) {
	cfg := fixtureConfig()
	cfg.HasPrice = false
	cfg.Price = ""

	instruction, _ := CompileFullInstruction(cfg)

	require.NotContains(t, instruction, "R$")
	require.NotContains(t, instruction, "Preço")
}

func TestCompileFullInstructionPriceIncludedWithFlag(t *testing.T) {
	instruction, _ := CompileFullInstruction(fixtureConfig())

	require.Contains(t, instruction, "Preço: R$ 99,90.")
}

func TestCompileFullInstructionEnvironmentDefault(t *testing.T) {
	cfg := fixtureConfig()
	cfg.Environment = ""

	instruction, _ := CompileFullInstruction(cfg)
	require.Contains(t, instruction, "neutral studio")

	cfg.Environment = "cozinha moderna"
	instruction, _ = CompileFullInstruction(cfg)
	require.Contains(t, instruction, "cozinha moderna")
	require.NotContains(t, instruction, "neutral studio")
}

func TestCompileFullInstructionTimeOfDay(t *testing.T) {
	cfg := fixtureConfig()

	instruction, _ := CompileFullInstruction(cfg)
	require.Contains(t, instruction, "Day light")

	cfg.TimeOfDay = TimeNight
	instruction, _ = CompileFullInstruction(cfg)
	require.Contains(t, instruction, "Cinematic night light")
}

func TestCompileFullInstructionCharacterByGender(t *testing.T) {
	cfg := fixtureConfig()

	instruction, _ := CompileFullInstruction(cfg)
	require.Contains(t, instruction, "Ella")
	require.NotContains(t, instruction, "Leo")

	cfg.Gender = GenderMan
	instruction, _ = CompileFullInstruction(cfg)
	require.Contains(t, instruction, "Leo")
	require.NotContains(t, instruction, "Ella")
}

func TestCompileFullInstructionPostureByInteractionMode(t *testing.T) {
	cfg := fixtureConfig()

	instruction, _ := CompileFullInstruction(cfg)
	require.Contains(t, instruction, "Hands-free mode")

	cfg.InteractionMode = InteractionHandheld
	instruction, _ = CompileFullInstruction(cfg)
	require.Contains(t, instruction, "Handheld smartphone POV")
}

func TestCompileFullInstructionSchemaShape(t *testing.T) {
	_, schema := CompileFullInstruction(fixtureConfig())

	require.Equal(t, "object", schema["type"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	strategies, ok := props["strategies"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "array", strategies["type"])

	items, ok := strategies["items"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, []string{"title", "segments"}, items["required"])
}

func TestCompileActionSuggestionInstruction(t *testing.T) {
	instruction := CompileActionSuggestionInstruction("Macacão X", "Moda", "Tecido leve")

	require.Contains(t, instruction, "Macacão X")
	require.Contains(t, instruction, "Moda")
	require.Contains(t, instruction, "Tecido leve")
	require.True(t, strings.HasSuffix(instruction, "PT-BR."))
}

func TestCompileExtraPromptInstruction(t *testing.T) {
	instruction := CompileExtraPromptInstruction("Macacão X", "Tecido leve", "foco em close-up")

	require.Contains(t, instruction, "Macacão X")
	require.Contains(t, instruction, "foco em close-up")
	require.Contains(t, instruction, "[TAG]: conteúdo")
}

func TestProductConfigValidate(t *testing.T) {
	require.NoError(t, fixtureConfig().Validate())

	cfg := fixtureConfig()
	cfg.ProductName = "  "
	require.Error(t, cfg.Validate())

	cfg = fixtureConfig()
	cfg.Features = ""
	require.Error(t, cfg.Validate())

	cfg = fixtureConfig()
	cfg.VoiceTone = "Sarcástico"
	require.Error(t, cfg.Validate())

	cfg = fixtureConfig()
	cfg.WordCount = 50
	require.Error(t, cfg.Validate())
}
