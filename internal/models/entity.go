package models

// Market identifies the KRX board a company is listed on.
type Market string

const (
	MarketKOSPI  Market = "KOSPI"
	MarketKOSDAQ Market = "KOSDAQ"
	MarketKONEX  Market = "KONEX"
)

// Markets lists every board in display order.
func Markets() []Market {
	return []Market{MarketKOSPI, MarketKOSDAQ, MarketKONEX}
}

// Entity is one listed-company row of the roster, as the matching pass
// consumes it. Registration ids are stored as bare digits.
type Entity struct {
	Symbol      string `json:"symbol"`
	SymbolNICE  string `json:"symbol_nice"`
	Name        string `json:"entity_name"`
	BusinessRID string `json:"business_rid"`
	CompanyRID  string `json:"company_rid"`
	Market      Market `json:"mkt"`
	LastUpdate  string `json:"last_update"`
}

// EntitySummary is the registration profile the refresher writes back to the
// roster table. It carries the columns the dashboard and batch job read;
// the upstream profile has more, all contact-detail padding.
type EntitySummary struct {
	Symbol          string `json:"symbol"`
	Name            string `json:"entity_name"`
	SymbolNICE      string `json:"symbol_nice"`
	CEO             string `json:"ceo"`
	BusinessRID     string `json:"business_rid"`
	CompanyRID      string `json:"company_rid"`
	Website         string `json:"website"`
	CompanyTypeL1   string `json:"company_type_l1"`
	CompanyTypeSize string `json:"company_type_size"`
	MarketID        string `json:"market_id"`
	IndustryID      string `json:"industry_id"`
	IndustryName    string `json:"industry_name"`
	DateListed      string `json:"date_listed"`
	Status          string `json:"status"`
	Market          Market `json:"mkt"`
	LastUpdate      string `json:"last_update"`
}

// Entity projects the summary down to the matching-pass row.
func (s EntitySummary) Entity() Entity {
	return Entity{
		Symbol:      s.Symbol,
		SymbolNICE:  s.SymbolNICE,
		Name:        s.Name,
		BusinessRID: s.BusinessRID,
		CompanyRID:  s.CompanyRID,
		Market:      s.Market,
		LastUpdate:  s.LastUpdate,
	}
}
