package veolink

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adforge/adforge/internal/veolink/driver"
)

type stubDriver struct {
	text string
	err  error
	req  *driver.Request
}

func (d *stubDriver) Complete(ctx context.Context, req *driver.Request) (*driver.Response, error) {
	d.req = req
	if d.err != nil {
		return nil, d.err
	}
	return &driver.Response{Text: d.text}, nil
}

func (d *stubDriver) Name() string { return "stub" }

const singleStrategyReply = `{"strategies":[{"title":"Demo","segments":[{"index":0,"full_prompt":"[COMPLIANCE NOTICE]: AI Character Disclosure.\n[CHARACTER]: Ella\n[PRODUCT_LOCK]: FOTOS REAIS DO NOSSO PRODUTO Macacão X.\n[SCENE]: 9:16 Vertical, neutral studio, Day light.\n[POSTURE]: PHYSICS: Hands-free mode.\n[ACTION]: mostra o caimento\n[DIALOGUE]: [Character] diz: \"olha isso\""}]}]}`

func TestGeneratePromptsEndToEnd(t *testing.T) {
	drv := &stubDriver{text: singleStrategyReply}
	svc := NewService(drv, "gemini-2.5-flash", nil)

	resp, err := svc.GeneratePrompts(context.Background(), fixtureConfig())
	require.NoError(t, err)
	require.Len(t, resp.Strategies, 1)
	require.Len(t, resp.Strategies[0].Segments, 1)
	require.Equal(t, 0, resp.Strategies[0].Segments[0].Index)
	require.True(t, WellFormedPromptBlock(resp.Strategies[0].Segments[0].FullPrompt))

	// The request carries the compiled instruction, the advisory schema,
	// and the full-generation temperature.
	require.NotNil(t, drv.req)
	require.Equal(t, "gemini-2.5-flash", drv.req.Model)
	require.Contains(t, drv.req.System, "[PRODUCT_LOCK]:")
	require.Contains(t, drv.req.User, "Macacão X")
	require.NotNil(t, drv.req.ResponseFormat)
	require.Equal(t, "json_schema", drv.req.ResponseFormat.Type)
	require.NotNil(t, drv.req.ResponseFormat.JSONSchema)
	require.NotNil(t, drv.req.Temperature)
	require.InDelta(t, 0.7, *drv.req.Temperature, 1e-9)
}

func TestGeneratePromptsTransportFailure(t *testing.T) {
	cause := &driver.ProviderError{Provider: "stub", StatusCode: 503, Message: "unavailable"}
	svc := NewService(&stubDriver{err: cause}, "m", nil)

	_, err := svc.GeneratePrompts(context.Background(), fixtureConfig())

	var failed *GenerationFailedError
	require.ErrorAs(t, err, &failed)
	require.Equal(t, GenerationFailedMessage, err.Error())
	// The cause stays reachable for logs but never leaks into the message.
	require.ErrorIs(t, err, cause)
	require.NotContains(t, err.Error(), "unavailable")
}

func TestGeneratePromptsMalformedReply(t *testing.T) {
	svc := NewService(&stubDriver{text: "Sure, here you go: {not valid json"}, "m", nil)

	_, err := svc.GeneratePrompts(context.Background(), fixtureConfig())

	var failed *GenerationFailedError
	require.ErrorAs(t, err, &failed)
	var malformed *MalformedReplyError
	require.ErrorAs(t, err, &malformed)
}

func TestGeneratePromptsEmptyReply(t *testing.T) {
	svc := NewService(&stubDriver{text: ""}, "m", nil)

	_, err := svc.GeneratePrompts(context.Background(), fixtureConfig())

	var failed *GenerationFailedError
	require.ErrorAs(t, err, &failed)
	require.ErrorIs(t, err, ErrEmptyReply)
}

func TestGeneratePromptsInvalidConfig(t *testing.T) {
	drv := &stubDriver{text: singleStrategyReply}
	svc := NewService(drv, "m", nil)

	cfg := fixtureConfig()
	cfg.ProductName = ""
	_, err := svc.GeneratePrompts(context.Background(), cfg)

	require.Error(t, err)
	var failed *GenerationFailedError
	require.False(t, errors.As(err, &failed))
	// No network call is attempted for a config that fails validation.
	require.Nil(t, drv.req)
}

func TestGenerateActionSuggestion(t *testing.T) {
	drv := &stubDriver{text: "  Abre a embalagem e aponta para a costura.  "}
	svc := NewService(drv, "m", nil)

	got := svc.GenerateActionSuggestion(context.Background(), "Macacão X", "Moda", "Tecido leve")
	require.Equal(t, "Abre a embalagem e aponta para a costura.", got)
	require.NotNil(t, drv.req.Temperature)
	require.InDelta(t, 0.7, *drv.req.Temperature, 1e-9)
	require.Nil(t, drv.req.ResponseFormat)
}

func TestGenerateActionSuggestionNeverFails(t *testing.T) {
	svc := NewService(&stubDriver{err: &driver.ProviderError{Provider: "stub", Message: "down"}}, "m", nil)
	got := svc.GenerateActionSuggestion(context.Background(), "Macacão X", "Moda", "Tecido leve")
	require.Equal(t, DefaultActionSuggestion, got)

	svc = NewService(&stubDriver{text: "   "}, "m", nil)
	got = svc.GenerateActionSuggestion(context.Background(), "Macacão X", "Moda", "Tecido leve")
	require.Equal(t, DefaultActionSuggestion, got)
}

func TestGenerateExtraPrompt(t *testing.T) {
	drv := &stubDriver{text: "[ACTION]: close-up no tecido"}
	svc := NewService(drv, "m", nil)

	got := svc.GenerateExtraPrompt(context.Background(), "Macacão X", "Tecido leve", "foco em close-up")
	require.Equal(t, "[ACTION]: close-up no tecido", got)
	require.NotNil(t, drv.req.Temperature)
	require.InDelta(t, 0.8, *drv.req.Temperature, 1e-9)
}

func TestGenerateExtraPromptNeverFails(t *testing.T) {
	svc := NewService(&stubDriver{err: &driver.ProviderError{Provider: "stub", Message: "down"}}, "m", nil)
	require.Equal(t, "Erro de conexão.", svc.GenerateExtraPrompt(context.Background(), "p", "f", "r"))

	svc = NewService(&stubDriver{text: ""}, "m", nil)
	require.Equal(t, "Erro na geração.", svc.GenerateExtraPrompt(context.Background(), "p", "f", "r"))

	svc = NewService(&stubDriver{text: " \n "}, "m", nil)
	require.Equal(t, "Erro na geração.", svc.GenerateExtraPrompt(context.Background(), "p", "f", "r"))
}
