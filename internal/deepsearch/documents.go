package deepsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

type docsPayload struct {
	Docs     []models.Document `json:"docs"`
	LastPage int               `json:"last_page"`
}

// docsFrom scans the pods for the one carrying a document list.
func docsFrom(pods []pod) (docsPayload, error) {
	for _, p := range pods {
		if len(p.Content.Data) == 0 {
			continue
		}
		var probe struct {
			Docs json.RawMessage `json:"docs"`
		}
		if err := json.Unmarshal(p.Content.Data, &probe); err != nil || probe.Docs == nil {
			continue
		}
		var payload docsPayload
		if err := json.Unmarshal(p.Content.Data, &payload); err != nil {
			return docsPayload{}, fmt.Errorf("decode document pod: %w", err)
		}
		return payload, nil
	}
	return docsPayload{}, errNoDocsPod
}

// SearchDocuments runs the query and walks every result page, deduplicating
// by document id. Documents arriving without an id get a generated one so
// downstream keying never collides on the empty string.
func (c *Client) SearchDocuments(ctx context.Context, q DocumentQuery) ([]models.Document, error) {
	if q.Count == 0 {
		q.Count = 100
	}
	if q.Page == 0 {
		q.Page = 1
	}

	seen := make(map[string]struct{})
	var out []models.Document
	collect := func(docs []models.Document) {
		for _, d := range docs {
			if d.ID == "" {
				d.ID = d.ContentURL
			}
			if d.ID == "" {
				d.ID = uuid.NewString()
			}
			if _, dup := seen[d.ID]; dup {
				continue
			}
			seen[d.ID] = struct{}{}
			out = append(out, d)
		}
	}

	page := q.Page
	for {
		pq := q
		pq.Page = page
		expr, err := pq.Build()
		if err != nil {
			return nil, err
		}

		pods, err := c.compute(ctx, expr)
		if err != nil {
			return nil, fmt.Errorf("search page %d: %w", page, err)
		}
		payload, err := docsFrom(pods)
		if err != nil {
			return nil, fmt.Errorf("search page %d: %w", page, err)
		}
		collect(payload.Docs)

		if page >= payload.LastPage {
			break
		}
		page++
	}

	c.log.Info("document search complete",
		slog.Int("documents", len(out)),
		slog.Int("pages", page-q.Page+1),
	)
	return out, nil
}

// symbolDocuments fetches company-scoped documents of one category pair,
// for example ["company"], ["disclosure"].
func (c *Client) symbolDocuments(ctx context.Context, categories [2]string, symbol, dateFrom, dateTo string, count int) ([]models.Document, error) {
	if count <= 0 {
		count = 50
	}
	expr := fmt.Sprintf(`DocumentSearch(["%s"], ["%s"], "securities.symbol:%s", count=%d, date_from=%s, date_to=%s)`,
		categories[0], categories[1], symbol, count, dateFrom, dateTo)

	pods, err := c.compute(ctx, expr)
	if err != nil {
		return nil, err
	}
	payload, err := docsFrom(pods)
	if err != nil {
		return nil, err
	}
	return payload.Docs, nil
}

// Disclosures fetches the regulatory filings of one listed company.
func (c *Client) Disclosures(ctx context.Context, symbol, dateFrom, dateTo string, count int) ([]models.Document, error) {
	return c.symbolDocuments(ctx, [2]string{"company", "disclosure"}, symbol, dateFrom, dateTo, count)
}

// IRDocuments fetches investor-relations material of one listed company.
func (c *Client) IRDocuments(ctx context.Context, symbol, dateFrom, dateTo string, count int) ([]models.Document, error) {
	return c.symbolDocuments(ctx, [2]string{"company", "ir"}, symbol, dateFrom, dateTo, count)
}

// AnalystReports fetches sell-side research on one listed company.
func (c *Client) AnalystReports(ctx context.Context, symbol, dateFrom, dateTo string, count int) ([]models.Document, error) {
	return c.symbolDocuments(ctx, [2]string{"research", "company"}, symbol, dateFrom, dateTo, count)
}
