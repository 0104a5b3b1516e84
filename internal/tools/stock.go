package tools

import (
	"context"
	"strings"

	"github.com/apifuse/apifuse/internal/models"
)

// StockAPI is the pair of provider calls the stock tools make.
type StockAPI interface {
	Quote(ctx context.Context, symbol string) (*models.StockQuote, error)
	Search(ctx context.Context, keywords string) (*models.SymbolSearchResult, error)
}

type stockQuoteParams struct {
	Symbol string `json:"symbol" validate:"required" jsonschema:"description=Stock symbol (e.g. AAPL; MSFT; GOOGL),minLength=1,pattern=^[A-Za-z0-9.-]+$"`
}

type stockSearchParams struct {
	Keywords string `json:"keywords" validate:"required" jsonschema:"description=Search keywords (company name or symbol),minLength=1"`
}

// StockQuoteTool returns the get_stock_price capability. Symbols are
// case-insensitive and normalized to uppercase before the provider call.
func StockQuoteTool(api StockAPI) Tool {
	return Tool{
		Name:        "get_stock_price",
		Description: "Get current stock price and trading information for a given symbol",
		InputSchema: inputSchema(&stockQuoteParams{}),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			var p stockQuoteParams
			if err := decodeArgs(args, &p); err != nil {
				return nil, err
			}

			symbol := strings.ToUpper(strings.TrimSpace(p.Symbol))
			if symbol == "" {
				return nil, InvalidParameters("symbol", "cannot be empty")
			}

			return api.Quote(ctx, symbol)
		},
	}
}

// StockSearchTool returns the search_stocks capability.
func StockSearchTool(api StockAPI) Tool {
	return Tool{
		Name:        "search_stocks",
		Description: "Search for stock symbols by company name or keywords",
		InputSchema: inputSchema(&stockSearchParams{}),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			var p stockSearchParams
			if err := decodeArgs(args, &p); err != nil {
				return nil, err
			}

			keywords := strings.TrimSpace(p.Keywords)
			if keywords == "" {
				return nil, InvalidParameters("keywords", "cannot be empty")
			}

			return api.Search(ctx, keywords)
		},
	}
}
