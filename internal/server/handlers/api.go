package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/adforge/adforge/internal/errors"
	"github.com/adforge/adforge/internal/observability"
	"github.com/adforge/adforge/internal/veolink"
)

// HistoryStore is the persistence surface the API handlers need. Satisfied
// by *store.Store; faked in tests.
type HistoryStore interface {
	AppendHistory(ctx context.Context, productName string, strategy veolink.GeneratedStrategy, maxItems int) (*veolink.HistoryItem, error)
	ListHistory(ctx context.Context) ([]veolink.HistoryItem, error)
	ClearHistory(ctx context.Context) error
}

// API bundles the generation façade and history store behind the HTTP
// endpoints. Store may be nil; history endpoints then degrade gracefully.
type API struct {
	Service      *veolink.Service
	Store        HistoryStore
	HistoryLimit int
}

// SuggestRequest is the body of POST /api/suggest.
type SuggestRequest struct {
	ProductName string `json:"product_name"`
	ProductType string `json:"product_type"`
	Features    string `json:"features"`
}

// SuggestResponse always carries a usable suggestion.
type SuggestResponse struct {
	Suggestion string `json:"suggestion"`
}

// RemixRequest is the body of POST /api/remix.
type RemixRequest struct {
	ProductName string `json:"product_name"`
	Features    string `json:"features"`
	Request     string `json:"request"`
}

// RemixResponse always carries a prompt string (possibly a fixed placeholder).
type RemixResponse struct {
	Prompt string `json:"prompt"`
}

// Generate handles POST /api/generate: a full compile → complete → reconcile
// run. On success the first strategy is appended to history.
func (a *API) Generate(w http.ResponseWriter, r *http.Request) {
	var cfg veolink.ProductConfig
	if err := decodeJSON(r, &cfg); err != nil {
		respondWithError(w, r, apperrors.WrapInvalidInput(r.Context(), err, "invalid request body"))
		return
	}

	if err := cfg.Validate(); err != nil {
		respondWithError(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	response, err := a.Service.GeneratePrompts(r.Context(), cfg)
	if err != nil {
		var failed *veolink.GenerationFailedError
		if errors.As(err, &failed) {
			respondWithError(w, r, apperrors.WrapExternalService(r.Context(), errors.Unwrap(failed), failed.Error()))
			return
		}
		respondWithError(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	a.appendHistory(r.Context(), cfg.ProductName, response)

	writeJSON(w, http.StatusOK, response)
}

// Suggest handles POST /api/suggest. The operation never fails; malformed
// bodies are still rejected since there would be nothing to suggest for.
func (a *API) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, apperrors.WrapInvalidInput(r.Context(), err, "invalid request body"))
		return
	}

	suggestion := a.Service.GenerateActionSuggestion(r.Context(), req.ProductName, req.ProductType, req.Features)
	writeJSON(w, http.StatusOK, SuggestResponse{Suggestion: suggestion})
}

// Remix handles POST /api/remix: a single ad-hoc prompt block from a
// free-form request. Always 200.
func (a *API) Remix(w http.ResponseWriter, r *http.Request) {
	var req RemixRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, r, apperrors.WrapInvalidInput(r.Context(), err, "invalid request body"))
		return
	}

	prompt := a.Service.GenerateExtraPrompt(r.Context(), req.ProductName, req.Features, req.Request)
	writeJSON(w, http.StatusOK, RemixResponse{Prompt: prompt})
}

// HistoryList handles GET /api/history, most recent first.
func (a *API) HistoryList(w http.ResponseWriter, r *http.Request) {
	if a.Store == nil {
		writeJSON(w, http.StatusOK, []veolink.HistoryItem{})
		return
	}

	items, err := a.Store.ListHistory(r.Context())
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "failed to list history"))
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HistoryClear handles DELETE /api/history.
func (a *API) HistoryClear(w http.ResponseWriter, r *http.Request) {
	if a.Store != nil {
		if err := a.Store.ClearHistory(r.Context()); err != nil {
			respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "failed to clear history"))
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// appendHistory records the first strategy of a successful generation. A
// persistence failure is logged, never surfaced to the caller.
func (a *API) appendHistory(ctx context.Context, productName string, response *veolink.PromptResponse) {
	if a.Store == nil || response == nil || len(response.Strategies) == 0 {
		return
	}

	if _, err := a.Store.AppendHistory(ctx, productName, response.Strategies[0], a.HistoryLimit); err != nil {
		if observability.ServerLogger != nil {
			observability.ServerLogger.Warn("failed to append history",
				zap.String("product", productName),
				zap.Error(err))
		}
	}
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	// Reject trailing garbage after the JSON document.
	if decoder.More() {
		return errors.New("unexpected trailing content")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
