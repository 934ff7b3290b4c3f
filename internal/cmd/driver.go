package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fulmenhq/gofulmen/logging"

	"github.com/adforge/adforge/internal/config"
	"github.com/adforge/adforge/internal/store"
	"github.com/adforge/adforge/internal/veolink"
	"github.com/adforge/adforge/internal/veolink/driver"
	"github.com/adforge/adforge/internal/veolink/driver/gemini"
	"github.com/adforge/adforge/internal/veolink/driver/openai"
)

// newDriver selects the completion driver from config. API keys come from
// the environment only.
func newDriver(ctx context.Context, cfg config.AIConfig) (driver.Driver, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "gemini":
		return gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"))
	case "openai":
		return openai.NewClient(cfg.BaseURL, os.Getenv("OPENAI_API_KEY")), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// newGenerationService builds the generation façade from config.
func newGenerationService(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*veolink.Service, error) {
	drv, err := newDriver(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("initialize %s driver: %w", cfg.AI.Provider, err)
	}

	svc := veolink.NewService(drv, cfg.AI.Model, logger)
	svc.Timeout = cfg.AI.Timeout
	return svc, nil
}

// openHistoryStore opens and migrates the history store.
func openHistoryStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}
