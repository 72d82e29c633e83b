package deepsearch

import (
	"context"
	"fmt"
)

// PricePoint is one trading day of a stock price series.
type PricePoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// StockPrices fetches the daily price series of one symbol. Dates are
// YYYY-MM-DD; with both empty the upstream returns only the latest trading
// day.
func (c *Client) StockPrices(ctx context.Context, symbol, dateFrom, dateTo string) ([]PricePoint, error) {
	expr := fmt.Sprintf("GetStockPrices([%s])", symbol)
	if dateFrom != "" && dateTo != "" {
		expr = fmt.Sprintf("GetStockPrices([%s], date_from=%s, date_to=%s)", symbol, dateFrom, dateTo)
	}

	pods, err := c.compute(ctx, expr)
	if err != nil {
		return nil, fmt.Errorf("prices %s: %w", symbol, err)
	}
	f, err := frameFrom(pods)
	if err != nil {
		return nil, fmt.Errorf("prices %s: %w", symbol, err)
	}

	out := make([]PricePoint, 0, f.rows())
	for i := 0; i < f.rows(); i++ {
		out = append(out, PricePoint{
			Date:   f.str("date", i),
			Open:   f.num("open", i),
			High:   f.num("high", i),
			Low:    f.num("low", i),
			Close:  f.num("close", i),
			Volume: f.num("volume", i),
		})
	}
	return out, nil
}
