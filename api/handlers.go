package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/beaten-by-the-market/krx-radar/internal/aggregate"
	"github.com/beaten-by-the-market/krx-radar/internal/config"
	"github.com/beaten-by-the-market/krx-radar/internal/deepsearch"
	"github.com/beaten-by-the-market/krx-radar/internal/issue"
	"github.com/beaten-by-the-market/krx-radar/internal/models"
	"github.com/beaten-by-the-market/krx-radar/internal/pipeline"
	"github.com/beaten-by-the-market/krx-radar/internal/roster"
)

// documentSearcher is the slice of the DeepSearch client the handlers use.
type documentSearcher interface {
	SearchDocuments(ctx context.Context, q deepsearch.DocumentQuery) ([]models.Document, error)
	StockPrices(ctx context.Context, symbol, dateFrom, dateTo string) ([]deepsearch.PricePoint, error)
	Disclosures(ctx context.Context, symbol, dateFrom, dateTo string, count int) ([]models.Document, error)
	IRDocuments(ctx context.Context, symbol, dateFrom, dateTo string, count int) ([]models.Document, error)
	AnalystReports(ctx context.Context, symbol, dateFrom, dateTo string, count int) ([]models.Document, error)
	EntityProfile(ctx context.Context, symbol string) (models.EntitySummary, error)
}

type rosterSource interface {
	Entities(ctx context.Context) ([]models.Entity, error)
}

type rosterMeta interface {
	Ping(ctx context.Context) error
	LastUpdate(ctx context.Context) (string, error)
}

type server struct {
	log    *slog.Logger
	cfg    *config.API
	ds     documentSearcher
	roster rosterSource
	store  rosterMeta
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type presetsResponse struct {
	Sections        []string `json:"sections"`
	PublisherGroups []string `json:"publisher_groups"`
	IssueCategories []string `json:"issue_categories"`
}

func (s *server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presetsResponse{
		Sections:        deepsearch.SectionNames(),
		PublisherGroups: deepsearch.PublisherGroupNames(),
		IssueCategories: issue.CategoryNames(),
	})
}

type rosterResponse struct {
	LastUpdate string          `json:"last_update"`
	Count      int             `json:"count"`
	Entities   []models.Entity `json:"entities"`
}

func (s *server) handleRoster(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entities, err := s.roster.Entities(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	entities = selectionFromQuery(r).Apply(entities)

	stamp, err := s.store.LastUpdate(ctx)
	if err != nil {
		s.log.Warn("roster last update", slog.Any("err", err))
	}

	writeJSON(w, http.StatusOK, rosterResponse{
		LastUpdate: stamp,
		Count:      len(entities),
		Entities:   entities,
	})
}

type newsResponse struct {
	Documents    []pipeline.TaggedDocument `json:"documents"`
	Stats        []aggregate.Row           `json:"stats"`
	TotalMatched int                       `json:"total_matched"`
}

// handleNews runs the full search: fetch every result page for the window,
// keep documents mentioning a selected listed company, tag them with the
// issue filter, and aggregate sentiment per company. The response carries
// only clause-matching documents; stats cover every company mention.
func (s *server) handleNews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 4*time.Minute)
	defer cancel()

	params := r.URL.Query()
	dateFrom := strings.TrimSpace(params.Get("date_from"))
	dateTo := strings.TrimSpace(params.Get("date_to"))
	timeFrom := strings.TrimSpace(params.Get("time_from"))
	timeTo := strings.TrimSpace(params.Get("time_to"))
	hasDates := dateFrom != "" && dateTo != ""
	hasTimes := timeFrom != "" && timeTo != ""
	if !hasDates && !hasTimes {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "a date_from/date_to (YYYYMMDD) or time_from/time_to range is required",
		})
		return
	}

	clauses, err := s.clausesFromQuery(params.Get("issue"), params.Get("keywords"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	query := deepsearch.DocumentQuery{
		Keyword:    strings.TrimSpace(params.Get("q")),
		Sections:   sectionsFromQuery(params.Get("section")),
		Publishers: publishersFromQuery(params.Get("publishers"), params.Get("publisher_group")),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		TimeFrom:   timeFrom,
		TimeTo:     timeTo,
		Count:      clampInt(params.Get("count"), s.cfg.PageSize, 100),
		Page:       1,
	}

	docs, err := s.ds.SearchDocuments(ctx, query)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	entities, err := s.roster.Entities(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	entities = selectionFromQuery(r).Apply(entities)

	result := pipeline.Run(docs, entities, clauses)
	writeJSON(w, http.StatusOK, newsResponse{
		Documents:    result.Filtered(),
		Stats:        result.Stats,
		TotalMatched: len(result.Documents),
	})
}

func (s *server) handleStockPrices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Minute)
	defer cancel()

	symbol := fullSymbol(chi.URLParam(r, "symbol"))
	dateFrom := strings.TrimSpace(r.URL.Query().Get("date_from"))
	dateTo := strings.TrimSpace(r.URL.Query().Get("date_to"))

	prices, err := s.ds.StockPrices(ctx, symbol, dateFrom, dateTo)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbol": symbol, "prices": prices})
}

type overviewResponse struct {
	Profile     models.EntitySummary    `json:"profile"`
	Prices      []deepsearch.PricePoint `json:"prices"`
	Disclosures []models.Document       `json:"disclosures"`
	IRDocuments []models.Document       `json:"ir_documents"`
	Reports     []models.Document       `json:"analyst_reports"`
}

// handleStockOverview fans the five per-company lookups out in parallel.
// Partial failures degrade to empty sections rather than failing the page.
func (s *server) handleStockOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	symbol := fullSymbol(chi.URLParam(r, "symbol"))
	dateFrom := strings.TrimSpace(r.URL.Query().Get("date_from"))
	dateTo := strings.TrimSpace(r.URL.Query().Get("date_to"))
	if dateFrom == "" || dateTo == "" {
		// Default to the trailing year.
		now := time.Now()
		dateFrom = now.AddDate(-1, 0, 0).Format("2006-01-02")
		dateTo = now.Format("2006-01-02")
	}
	count := s.cfg.DetailCount

	var (
		wg   sync.WaitGroup
		resp overviewResponse
	)
	fetch := func(name string, f func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(); err != nil {
				s.log.Warn("overview section failed",
					slog.String("section", name),
					slog.String("symbol", symbol),
					slog.Any("err", err),
				)
			}
		}()
	}

	fetch("profile", func() error {
		p, err := s.ds.EntityProfile(ctx, symbol)
		resp.Profile = p
		return err
	})
	fetch("prices", func() error {
		p, err := s.ds.StockPrices(ctx, symbol, dateFrom, dateTo)
		resp.Prices = p
		return err
	})
	fetch("disclosures", func() error {
		d, err := s.ds.Disclosures(ctx, symbol, dateFrom, dateTo, count)
		resp.Disclosures = d
		return err
	})
	fetch("ir", func() error {
		d, err := s.ds.IRDocuments(ctx, symbol, dateFrom, dateTo, count)
		resp.IRDocuments = d
		return err
	})
	fetch("reports", func() error {
		d, err := s.ds.AnalystReports(ctx, symbol, dateFrom, dateTo, count)
		resp.Reports = d
		return err
	})
	wg.Wait()

	writeJSON(w, http.StatusOK, resp)
}

// clausesFromQuery resolves the issue filter: a custom keywords expression
// wins over a named category preset.
func (s *server) clausesFromQuery(category, keywords string) ([]issue.Clause, error) {
	if expr := strings.TrimSpace(keywords); expr != "" {
		return issue.ParseQuery(expr), nil
	}
	name := strings.TrimSpace(category)
	if name == "" {
		return nil, nil
	}
	clauses, ok := issue.CategoryClauses(name)
	if !ok {
		return nil, &badParamError{param: "issue", value: name}
	}
	return clauses, nil
}

type badParamError struct {
	param string
	value string
}

func (e *badParamError) Error() string {
	return "unknown " + e.param + " value: " + e.value
}

// sectionsFromQuery accepts either a preset display name or a raw section
// slug. Empty and the all-sections preset both mean no restriction.
func sectionsFromQuery(raw string) []string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return nil
	}
	if slug, ok := deepsearch.SectionSlug(name); ok {
		if slug == "" {
			return nil
		}
		return []string{slug}
	}
	return []string{name}
}

// publishersFromQuery merges an explicit outlet list with a named group.
func publishersFromQuery(rawList, group string) []string {
	out := parseCSV(rawList)
	if name := strings.TrimSpace(group); name != "" {
		if pubs, ok := deepsearch.PublisherGroup(name); ok {
			out = append(out, pubs...)
		}
	}
	return out
}

func selectionFromQuery(r *http.Request) roster.Selection {
	params := r.URL.Query()
	var markets []models.Market
	for _, m := range parseCSV(params.Get("markets")) {
		markets = append(markets, models.Market(strings.ToUpper(m)))
	}
	return roster.Selection{
		Markets: markets,
		Names:   parseCSV(params.Get("names")),
		Codes:   parseCSV(params.Get("codes")),
	}
}

// fullSymbol restores the exchange prefix on a bare six-digit code.
func fullSymbol(raw string) string {
	sym := strings.TrimSpace(raw)
	if sym == "" {
		return sym
	}
	if strings.Contains(sym, ":") {
		return sym
	}
	return "KRX:" + roster.NormalizeCode(sym)
}

func parseCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func clampInt(raw string, fallback, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}
