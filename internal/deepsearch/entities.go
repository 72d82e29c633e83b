package deepsearch

import (
	"context"
	"fmt"

	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

// Market ids the entity lookup accepts: 1=KOSPI, 2=KOSDAQ, 3=KONEX.
var marketIDs = map[models.Market]string{
	models.MarketKOSPI:  "1",
	models.MarketKOSDAQ: "2",
	models.MarketKONEX:  "3",
}

// Listing is one row of the listed-company lookup.
type Listing struct {
	Symbol string
	Name   string
	Market models.Market
}

// ListedCompanies returns every company currently listed on the given board.
func (c *Client) ListedCompanies(ctx context.Context, market models.Market) ([]Listing, error) {
	id, ok := marketIDs[market]
	if !ok {
		return nil, fmt.Errorf("unknown market %q", market)
	}

	expr := fmt.Sprintf(`FindEntity("Financial", "%s", fields=["market_id"])`, id)
	pods, err := c.compute(ctx, expr)
	if err != nil {
		return nil, fmt.Errorf("list %s companies: %w", market, err)
	}
	f, err := frameFrom(pods)
	if err != nil {
		return nil, fmt.Errorf("list %s companies: %w", market, err)
	}

	out := make([]Listing, 0, f.rows())
	for i := 0; i < f.rows(); i++ {
		sym := f.str("symbol", i)
		if sym == "" {
			continue
		}
		out = append(out, Listing{
			Symbol: sym,
			Name:   f.str("entity_name", i),
			Market: market,
		})
	}
	return out, nil
}

// EntityProfile fetches the registration summary of one listed company.
// The upstream frame is one row wide; absent columns come back empty.
func (c *Client) EntityProfile(ctx context.Context, symbol string) (models.EntitySummary, error) {
	expr := fmt.Sprintf("GetEntitySummary(%s)", symbol)
	pods, err := c.compute(ctx, expr)
	if err != nil {
		return models.EntitySummary{}, fmt.Errorf("profile %s: %w", symbol, err)
	}
	f, err := frameFrom(pods)
	if err != nil {
		return models.EntitySummary{}, fmt.Errorf("profile %s: %w", symbol, err)
	}
	if f.rows() == 0 {
		return models.EntitySummary{}, fmt.Errorf("profile %s: empty frame", symbol)
	}

	return models.EntitySummary{
		Symbol:          f.str("symbol", 0),
		Name:            f.str("entity_name", 0),
		SymbolNICE:      f.str("symbol_nice", 0),
		CEO:             f.str("ceo", 0),
		BusinessRID:     f.str("business_rid", 0),
		CompanyRID:      f.str("company_rid", 0),
		Website:         f.str("website", 0),
		CompanyTypeL1:   f.str("company_type_l1", 0),
		CompanyTypeSize: f.str("company_type_size", 0),
		MarketID:        f.str("market_id", 0),
		IndustryID:      f.str("industry_id", 0),
		IndustryName:    f.str("industry_name", 0),
		DateListed:      f.str("date_listed", 0),
		Status:          f.str("status", 0),
	}, nil
}
