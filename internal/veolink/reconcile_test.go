package veolink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const validReply = `{
  "strategies": [
    {
      "title": "Achado do dia",
      "marketing_angle": "Urgência",
      "tiktok_caption": "Corre que acaba!",
      "tiktok_hashtags": ["#achadinhos", "#moda"],
      "segments": [
        {"index": 0, "full_prompt": "[COMPLIANCE NOTICE]: AI Character Disclosure.\n[CHARACTER]: Ella\n[PRODUCT_LOCK]: produto\n[SCENE]: estúdio\n[POSTURE]: PHYSICS: tripé\n[ACTION]: mostra\n[DIALOGUE]: fala"},
        {"index": 1, "full_prompt": "[COMPLIANCE NOTICE]: AI Character Disclosure.\n[CHARACTER]: Ella\n[PRODUCT_LOCK]: produto\n[SCENE]: estúdio\n[POSTURE]: PHYSICS: tripé\n[ACTION]: aproxima\n[DIALOGUE]: fecha"}
      ]
    },
    {
      "title": "Storytelling",
      "segments": [
        {"index": 0, "full_prompt": "bloco"}
      ]
    }
  ]
}`

func TestReconcileStrategiesRoundTrip(t *testing.T) {
	resp, err := ReconcileStrategies(validReply)
	require.NoError(t, err)
	require.Len(t, resp.Strategies, 2)

	first := resp.Strategies[0]
	require.Equal(t, "Achado do dia", first.Title)
	require.Equal(t, "Urgência", first.MarketingAngle)
	require.Equal(t, "Corre que acaba!", first.TikTokCaption)
	require.Equal(t, []string{"#achadinhos", "#moda"}, first.TikTokHashtags)
	require.Len(t, first.Segments, 2)
	require.Equal(t, 0, first.Segments[0].Index)
	require.Equal(t, 1, first.Segments[1].Index)
	require.True(t, WellFormedPromptBlock(first.Segments[0].FullPrompt))

	second := resp.Strategies[1]
	require.Equal(t, "Storytelling", second.Title)
	require.Empty(t, second.MarketingAngle)
	require.NotNil(t, second.TikTokHashtags)
	require.Empty(t, second.TikTokHashtags)
	require.Equal(t, "bloco", second.Segments[0].FullPrompt)
}

func TestReconcileStrategiesIdempotent(t *testing.T) {
	first, err := ReconcileStrategies(validReply)
	require.NoError(t, err)
	second, err := ReconcileStrategies(validReply)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestReconcileStrategiesToleratesProseWrapping(t *testing.T) {
	wrapped := "Claro! Aqui está o JSON pedido:\n```json\n" + validReply + "\n```\nEspero que ajude."
	resp, err := ReconcileStrategies(wrapped)
	require.NoError(t, err)
	require.Len(t, resp.Strategies, 2)
}

func TestReconcileStrategiesEmptyReply(t *testing.T) {
	_, err := ReconcileStrategies("")
	require.ErrorIs(t, err, ErrEmptyReply)

	_, err = ReconcileStrategies("   \n\t ")
	require.ErrorIs(t, err, ErrEmptyReply)
}

func TestReconcileStrategiesNoJSONSpan(t *testing.T) {
	_, err := ReconcileStrategies("desculpe, não consegui gerar nada")

	var malformed *MalformedReplyError
	require.ErrorAs(t, err, &malformed)
}

func TestReconcileStrategiesParseFailure(t *testing.T) {
	_, err := ReconcileStrategies("Sure, here you go: {not valid json")

	var malformed *MalformedReplyError
	require.ErrorAs(t, err, &malformed)
}

func TestReconcileStrategiesMissingRequiredFields(t *testing.T) {
	_, err := ReconcileStrategies(`{"strategies":[{"marketing_angle":"x"}]}`)

	var violation *SchemaViolationError
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "strategies[0].title", violation.Path)
}

func TestReconcileStrategiesWrongTypedFields(t *testing.T) {
	var violation *SchemaViolationError

	_, err := ReconcileStrategies(`{"strategies":"nope"}`)
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "strategies", violation.Path)

	_, err = ReconcileStrategies(`{"strategies":[{"title":"t","segments":[{"index":"0","full_prompt":"p"}]}]}`)
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "strategies[0].segments[0].index", violation.Path)

	_, err = ReconcileStrategies(`{"strategies":[{"title":"t","segments":[{"index":0.5,"full_prompt":"p"}]}]}`)
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "strategies[0].segments[0].index", violation.Path)

	_, err = ReconcileStrategies(`{"strategies":[{"title":"t","segments":[{"index":0,"full_prompt":""}]}]}`)
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "strategies[0].segments[0].full_prompt", violation.Path)
}

func TestReconcileStrategiesEmptyStrategies(t *testing.T) {
	var violation *SchemaViolationError

	_, err := ReconcileStrategies(`{"strategies":[]}`)
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "strategies", violation.Path)
}

func TestReconcileStrategiesPreservesIndexMismatch(t *testing.T) {
	// Indices that disagree with slice positions are kept as received, not
	// repaired.
	resp, err := ReconcileStrategies(`{"strategies":[{"title":"t","segments":[{"index":3,"full_prompt":"a"},{"index":1,"full_prompt":"b"}]}]}`)
	require.NoError(t, err)
	require.Equal(t, 3, resp.Strategies[0].Segments[0].Index)
	require.Equal(t, 1, resp.Strategies[0].Segments[1].Index)
	require.Equal(t, "a", resp.Strategies[0].Segments[0].FullPrompt)
}

func TestReconcileText(t *testing.T) {
	require.Equal(t, "ação", ReconcileText("  ação \n", "fallback"))
	require.Equal(t, "fallback", ReconcileText("", "fallback"))
	require.Equal(t, "fallback", ReconcileText("   ", "fallback"))
}
