package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/beaten-by-the-market/krx-radar/internal/config"
	"github.com/beaten-by-the-market/krx-radar/internal/deepsearch"
	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

type stubSearcher struct {
	docs      []models.Document
	searchErr error
	prices    []deepsearch.PricePoint
	profile   models.EntitySummary
	lastQuery deepsearch.DocumentQuery
	lastSym   string
}

func (s *stubSearcher) SearchDocuments(ctx context.Context, q deepsearch.DocumentQuery) ([]models.Document, error) {
	s.lastQuery = q
	return s.docs, s.searchErr
}

func (s *stubSearcher) StockPrices(ctx context.Context, symbol, dateFrom, dateTo string) ([]deepsearch.PricePoint, error) {
	s.lastSym = symbol
	return s.prices, nil
}

func (s *stubSearcher) Disclosures(ctx context.Context, symbol, dateFrom, dateTo string, count int) ([]models.Document, error) {
	return nil, nil
}

func (s *stubSearcher) IRDocuments(ctx context.Context, symbol, dateFrom, dateTo string, count int) ([]models.Document, error) {
	return nil, nil
}

func (s *stubSearcher) AnalystReports(ctx context.Context, symbol, dateFrom, dateTo string, count int) ([]models.Document, error) {
	return nil, nil
}

func (s *stubSearcher) EntityProfile(ctx context.Context, symbol string) (models.EntitySummary, error) {
	return s.profile, nil
}

type stubRoster struct {
	entities []models.Entity
	err      error
}

func (s *stubRoster) Entities(ctx context.Context) ([]models.Entity, error) {
	return s.entities, s.err
}

type stubMeta struct {
	pingErr error
	stamp   string
}

func (s *stubMeta) Ping(ctx context.Context) error                 { return s.pingErr }
func (s *stubMeta) LastUpdate(ctx context.Context) (string, error) { return s.stamp, nil }

func newTestServer(ds *stubSearcher, rs *stubRoster, meta *stubMeta) http.Handler {
	srv := &server{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg: &config.API{
			PageSize:    100,
			DetailCount: 10,
		},
		ds:     ds,
		roster: rs,
		store:  meta,
	}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)
	r.Get("/presets", srv.handlePresets)
	r.Get("/roster", srv.handleRoster)
	r.Get("/news", srv.handleNews)
	r.Get("/stocks/{symbol}/prices", srv.handleStockPrices)
	r.Get("/stocks/{symbol}/overview", srv.handleStockOverview)
	return r
}

func doGet(t *testing.T, h http.Handler, path string, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	target := path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(&stubSearcher{}, &stubRoster{}, &stubMeta{})
	rec := doGet(t, h, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	h = newTestServer(&stubSearcher{}, &stubRoster{}, &stubMeta{pingErr: errors.New("db down")})
	rec = doGet(t, h, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePresets(t *testing.T) {
	h := newTestServer(&stubSearcher{}, &stubRoster{}, &stubMeta{})
	rec := doGet(t, h, "/presets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp presetsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Sections, "경제")
	require.Contains(t, resp.PublisherGroups, "중앙경제지")
	require.Contains(t, resp.IssueCategories, "실적")
}

func TestHandleRosterAppliesSelection(t *testing.T) {
	rs := &stubRoster{entities: []models.Entity{
		{Symbol: "KRX:005930", Name: "삼성전자", Market: models.MarketKOSPI},
		{Symbol: "KRX:263750", Name: "펄어비스", Market: models.MarketKOSDAQ},
	}}
	h := newTestServer(&stubSearcher{}, rs, &stubMeta{stamp: "20250102"})

	rec := doGet(t, h, "/roster", url.Values{"markets": {"kosdaq"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp rosterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "20250102", resp.LastUpdate)
	require.Equal(t, 1, resp.Count)
	require.Equal(t, "펄어비스", resp.Entities[0].Name)
}

func TestHandleNewsRequiresDateRange(t *testing.T) {
	h := newTestServer(&stubSearcher{}, &stubRoster{}, &stubMeta{})
	rec := doGet(t, h, "/news", url.Values{"q": {"반도체"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleNewsRejectsUnknownIssue(t *testing.T) {
	h := newTestServer(&stubSearcher{}, &stubRoster{}, &stubMeta{})
	rec := doGet(t, h, "/news", url.Values{
		"date_from": {"20250101"},
		"date_to":   {"20250102"},
		"issue":     {"모름"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleNewsEndToEnd(t *testing.T) {
	ds := &stubSearcher{docs: []models.Document{
		{
			ID:       "doc1",
			Title:    "에이콤, 공급 계약 체결 발표",
			Polarity: models.Polarity{Name: "긍정"},
			Securities: []models.Mention{
				{Symbol: "KRX:100000"},
				{Symbol: "KRX:200000"},
			},
		},
		{ID: "doc2", Title: "시황 정리"},
		{
			ID:       "doc3",
			Title:    "에이콤 사옥 이전",
			Polarity: models.Polarity{Name: "중립"},
			Entities: []models.Mention{{Name: "에이콤"}},
		},
	}}
	rs := &stubRoster{entities: []models.Entity{
		{Symbol: "KRX:100000", Name: "에이콤", Market: models.MarketKOSPI},
		{Symbol: "KRX:200000", Name: "비머티리얼즈", Market: models.MarketKOSDAQ},
	}}
	h := newTestServer(ds, rs, &stubMeta{})

	rec := doGet(t, h, "/news", url.Values{
		"date_from": {"20250101"},
		"date_to":   {"20250102"},
		"keywords":  {"(계약 and 체결)"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, "20250101", ds.lastQuery.DateFrom)
	require.Equal(t, 100, ds.lastQuery.Count)

	var resp newsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// doc3 fails the clause filter but still counts in the aggregate.
	require.Equal(t, 2, resp.TotalMatched)
	require.Len(t, resp.Documents, 1)
	require.Equal(t, "doc1", resp.Documents[0].ID)
	require.Equal(t, []string{"에이콤", "비머티리얼즈"}, resp.Documents[0].EntityNames)

	require.Len(t, resp.Stats, 2)
	require.Equal(t, "에이콤", resp.Stats[0].Name)
	require.Equal(t, 2, resp.Stats[0].Total)
	require.Equal(t, 1, resp.Stats[0].Positive)
	require.Equal(t, 1, resp.Stats[0].Neutral)
	require.Equal(t, "비머티리얼즈", resp.Stats[1].Name)
	require.Equal(t, 1, resp.Stats[1].Total)
}

func TestHandleNewsPassesPresetsThrough(t *testing.T) {
	ds := &stubSearcher{}
	h := newTestServer(ds, &stubRoster{}, &stubMeta{})

	rec := doGet(t, h, "/news", url.Values{
		"date_from":       {"20250101"},
		"date_to":         {"20250102"},
		"section":         {"경제"},
		"publisher_group": {"석간지"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, []string{"economy"}, ds.lastQuery.Sections)
	require.Len(t, ds.lastQuery.Publishers, 5)
}

func TestHandleStockPricesPrefixesSymbol(t *testing.T) {
	ds := &stubSearcher{prices: []deepsearch.PricePoint{{Date: "2025-01-02", Close: 53900}}}
	h := newTestServer(ds, &stubRoster{}, &stubMeta{})

	rec := doGet(t, h, "/stocks/5930/prices", url.Values{
		"date_from": {"2025-01-01"},
		"date_to":   {"2025-01-03"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "KRX:005930", ds.lastSym)
}

func TestHandleStockOverview(t *testing.T) {
	ds := &stubSearcher{
		profile: models.EntitySummary{Symbol: "KRX:005930", Name: "삼성전자"},
		prices:  []deepsearch.PricePoint{{Date: "2025-01-02", Close: 53900}},
	}
	h := newTestServer(ds, &stubRoster{}, &stubMeta{})

	rec := doGet(t, h, "/stocks/KRX:005930/overview", url.Values{
		"date_from": {"20250101"},
		"date_to":   {"20250103"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp overviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "삼성전자", resp.Profile.Name)
	require.Len(t, resp.Prices, 1)
}
