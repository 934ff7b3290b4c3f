package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/adforge/adforge/internal/errors"
	"github.com/adforge/adforge/internal/veolink"
	"github.com/adforge/adforge/internal/veolink/driver"
)

type stubDriver struct {
	text string
	err  error
}

func (d *stubDriver) Complete(ctx context.Context, req *driver.Request) (*driver.Response, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &driver.Response{Text: d.text}, nil
}

func (d *stubDriver) Name() string { return "stub" }

type fakeStore struct {
	items    []veolink.HistoryItem
	appends  int
	listErr  error
	clearErr error
}

func (f *fakeStore) AppendHistory(ctx context.Context, productName string, strategy veolink.GeneratedStrategy, maxItems int) (*veolink.HistoryItem, error) {
	f.appends++
	item := veolink.HistoryItem{ID: "fixed-id", ProductName: productName, Strategy: strategy}
	f.items = append([]veolink.HistoryItem{item}, f.items...)
	return &item, nil
}

func (f *fakeStore) ListHistory(ctx context.Context) ([]veolink.HistoryItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeStore) ClearHistory(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.items = nil
	return nil
}

const strategiesReply = `{"strategies":[{"title":"Estratégia 1: Prova Social","segments":[{"index":0,"full_prompt":"[COMPLIANCE NOTICE]: teste"}]}]}`

func validConfig() veolink.ProductConfig {
	return veolink.ProductConfig{
		ProductName:     "Macacão X",
		Features:        "Tecido leve",
		Price:           "99,90",
		HasPrice:        true,
		TargetModel:     veolink.TargetFlow,
		ProductType:     veolink.ProductFashion,
		InteractionMode: veolink.InteractionHandsFree,
		VisualEmphasis:  veolink.EmphasisLifestyle,
		VoiceTone:       veolink.ToneEnthusiastic,
		Gender:          veolink.GenderWoman,
		TimeOfDay:       veolink.TimeDay,
		WordCount:       25,
	}
}

func newTestAPI(drv driver.Driver, st HistoryStore) *API {
	return &API{
		Service:      veolink.NewService(drv, "test-model", nil),
		Store:        st,
		HistoryLimit: 50,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) apperrors.HTTPErrorResponse {
	t.Helper()

	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestGenerateSuccessAppendsHistory(t *testing.T) {
	st := &fakeStore{}
	api := newTestAPI(&stubDriver{text: strategiesReply}, st)

	rec := postJSON(t, api.Generate, "/api/generate", validConfig())
	require.Equal(t, http.StatusOK, rec.Code)

	var response veolink.PromptResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Len(t, response.Strategies, 1)
	require.Equal(t, "Estratégia 1: Prova Social", response.Strategies[0].Title)

	require.Equal(t, 1, st.appends)
	require.Equal(t, "Macacão X", st.items[0].ProductName)
}

func TestGenerateRejectsInvalidBody(t *testing.T) {
	api := newTestAPI(&stubDriver{text: strategiesReply}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	api.Generate(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_INPUT", decodeErrorBody(t, rec).Error.Code)
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	st := &fakeStore{}
	api := newTestAPI(&stubDriver{text: strategiesReply}, st)

	cfg := validConfig()
	cfg.ProductName = ""

	rec := postJSON(t, api.Generate, "/api/generate", cfg)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION_FAILED", decodeErrorBody(t, rec).Error.Code)
	require.Zero(t, st.appends)
}

func TestGenerateMapsFailureToBadGateway(t *testing.T) {
	st := &fakeStore{}
	api := newTestAPI(&stubDriver{err: errors.New("connection refused")}, st)

	rec := postJSON(t, api.Generate, "/api/generate", validConfig())
	require.Equal(t, http.StatusBadGateway, rec.Code)

	body := decodeErrorBody(t, rec)
	require.Equal(t, "EXTERNAL_SERVICE_ERROR", body.Error.Code)
	// Only the fixed guidance message leaves the server.
	require.Equal(t, veolink.GenerationFailedMessage, body.Error.Message)
	require.Zero(t, st.appends)
}

func TestSuggestAlwaysReturnsSuggestion(t *testing.T) {
	api := newTestAPI(&stubDriver{err: errors.New("down")}, nil)

	rec := postJSON(t, api.Suggest, "/api/suggest", SuggestRequest{
		ProductName: "Macacão X",
		ProductType: "Moda",
		Features:    "Tecido leve",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SuggestResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, veolink.DefaultActionSuggestion, resp.Suggestion)
}

func TestRemixAlwaysReturnsPrompt(t *testing.T) {
	api := newTestAPI(&stubDriver{text: "[SCENE]: take alternativo"}, nil)

	rec := postJSON(t, api.Remix, "/api/remix", RemixRequest{
		ProductName: "Macacão X",
		Features:    "Tecido leve",
		Request:     "mostra o produto de costas",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp RemixResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "[SCENE]: take alternativo", resp.Prompt)
}

func TestHistoryListAndClear(t *testing.T) {
	st := &fakeStore{}
	api := newTestAPI(&stubDriver{text: strategiesReply}, st)

	rec := postJSON(t, api.Generate, "/api/generate", validConfig())
	require.Equal(t, http.StatusOK, rec.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	listRec := httptest.NewRecorder()
	api.HistoryList(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)

	var items []veolink.HistoryItem
	require.NoError(t, json.NewDecoder(listRec.Body).Decode(&items))
	require.Len(t, items, 1)

	clearReq := httptest.NewRequest(http.MethodDelete, "/api/history", nil)
	clearRec := httptest.NewRecorder()
	api.HistoryClear(clearRec, clearReq)
	require.Equal(t, http.StatusNoContent, clearRec.Code)
	require.Empty(t, st.items)
}

func TestHistoryListWithoutStore(t *testing.T) {
	api := newTestAPI(&stubDriver{text: strategiesReply}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	api.HistoryList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestHistoryListStoreFailure(t *testing.T) {
	api := newTestAPI(&stubDriver{text: strategiesReply}, &fakeStore{listErr: errors.New("disk gone")})

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	api.HistoryList(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "DATABASE_ERROR", decodeErrorBody(t, rec).Error.Code)
}
