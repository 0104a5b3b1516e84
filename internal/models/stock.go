package models

// Price carries the current quote relative to the previous close.
type Price struct {
	Current       float64 `json:"current"`
	PreviousClose float64 `json:"previous_close"`
	Change        float64 `json:"change"`
	ChangePercent string  `json:"change_percent"`
	Currency      string  `json:"currency"`
}

// Trading summarizes the latest session.
type Trading struct {
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume int64   `json:"volume"`
}

// StockQuote is the normalized quote payload.
type StockQuote struct {
	Symbol         string  `json:"symbol"`
	Price          Price   `json:"price"`
	Trading        Trading `json:"trading"`
	LastTradingDay string  `json:"last_trading_day"`
	Source         string  `json:"source"`
}

// SymbolMatch is one result of a symbol search.
type SymbolMatch struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Region      string  `json:"region"`
	MarketOpen  string  `json:"market_open"`
	MarketClose string  `json:"market_close"`
	Timezone    string  `json:"timezone"`
	Currency    string  `json:"currency"`
	MatchScore  float64 `json:"match_score"`
}

// SymbolSearchResult is the normalized symbol-search payload.
type SymbolSearchResult struct {
	SearchKeywords string        `json:"search_keywords"`
	TotalMatches   int           `json:"total_matches"`
	Matches        []SymbolMatch `json:"matches"`
	Source         string        `json:"source"`
}
