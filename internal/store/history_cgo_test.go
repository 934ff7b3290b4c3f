//go:build cgo

package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adforge/adforge/internal/config"
	"github.com/adforge/adforge/internal/veolink"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := Open(context.Background(), config.StoreConfig{
		Driver: "libsql",
		Path:   ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func sampleStrategy(title string) veolink.GeneratedStrategy {
	return veolink.GeneratedStrategy{
		Title:          title,
		MarketingAngle: "Prova social",
		TotalDuration:  "16s",
		Segments: []veolink.PromptSegment{
			{Index: 0, FullPrompt: "[COMPLIANCE NOTICE]: teste", DialogueSnippet: "Oi!"},
		},
	}
}

func TestAppendAndListHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	first, err := st.AppendHistory(ctx, "Macacão X", sampleStrategy("Estratégia 1"), 50)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.False(t, first.CreatedAt.IsZero())

	second, err := st.AppendHistory(ctx, "Tênis Y", sampleStrategy("Estratégia 2"), 50)
	require.NoError(t, err)

	items, err := st.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Most recent first.
	require.Equal(t, second.ID, items[0].ID)
	require.Equal(t, "Tênis Y", items[0].ProductName)
	require.Equal(t, "Estratégia 2", items[0].Strategy.Title)
	require.Equal(t, first.ID, items[1].ID)
	require.Len(t, items[1].Strategy.Segments, 1)
	require.Equal(t, "Oi!", items[1].Strategy.Segments[0].DialogueSnippet)
}

func TestAppendHistoryEvictsOldest(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	const maxItems = 3
	for i := 0; i < maxItems+2; i++ {
		_, err := st.AppendHistory(ctx, fmt.Sprintf("Produto %d", i), sampleStrategy(fmt.Sprintf("Estratégia %d", i)), maxItems)
		require.NoError(t, err)
	}

	items, err := st.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, maxItems)
	require.Equal(t, "Produto 4", items[0].ProductName)
	require.Equal(t, "Produto 2", items[len(items)-1].ProductName)
}

func TestGetHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	saved, err := st.AppendHistory(ctx, "Macacão X", sampleStrategy("Estratégia 1"), 50)
	require.NoError(t, err)

	found, err := st.GetHistory(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, saved.ID, found.ID)
	require.Equal(t, "Estratégia 1", found.Strategy.Title)

	missing, err := st.GetHistory(ctx, "does-not-exist")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestClearHistory(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.AppendHistory(ctx, "Macacão X", sampleStrategy("Estratégia 1"), 50)
	require.NoError(t, err)

	require.NoError(t, st.ClearHistory(ctx))

	items, err := st.ListHistory(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}
