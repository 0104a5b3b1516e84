package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/apifuse/apifuse/internal/models"
	"github.com/apifuse/apifuse/internal/tools"
	"github.com/rs/zerolog/log"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

// StockService fetches quotes and symbol searches from Alpha Vantage.
type StockService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewStockService(apiKey string, timeout time.Duration) *StockService {
	return &StockService{
		apiKey:  apiKey,
		baseURL: alphaVantageBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the provider endpoint, used by tests.
func (s *StockService) WithBaseURL(u string) *StockService {
	s.baseURL = u
	return s
}

// Alpha Vantage reports errors inside 200 bodies: "Error Message" for bad
// symbols, "Note" when the request quota is exhausted.
type avEnvelope struct {
	ErrorMessage string            `json:"Error Message"`
	Note         string            `json:"Note"`
	GlobalQuote  map[string]string `json:"Global Quote"`
	BestMatches  []map[string]string `json:"bestMatches"`
}

// Quote fetches the current quote for symbol. The symbol must already be
// normalized to uppercase by the tool.
func (s *StockService) Quote(ctx context.Context, symbol string) (*models.StockQuote, error) {
	data, err := s.query(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
	})
	if err != nil {
		return nil, err
	}

	if data.ErrorMessage != "" {
		return nil, tools.NotFound(
			fmt.Sprintf("unknown stock symbol %q", symbol),
			map[string]any{"symbol": symbol},
		)
	}
	if data.Note != "" {
		return nil, tools.RateLimited("Alpha Vantage")
	}
	if len(data.GlobalQuote) == 0 {
		return nil, tools.NotFound(
			fmt.Sprintf("no data available for symbol %q", symbol),
			map[string]any{"symbol": symbol},
		)
	}

	quote := data.GlobalQuote
	symbolOut := quote["01. symbol"]
	if symbolOut == "" {
		symbolOut = symbol
	}

	return &models.StockQuote{
		Symbol: symbolOut,
		Price: models.Price{
			Current:       avFloat(quote["05. price"]),
			PreviousClose: avFloat(quote["08. previous close"]),
			Change:        avFloat(quote["09. change"]),
			ChangePercent: avPercent(quote["10. change percent"]),
			Currency:      "USD",
		},
		Trading: models.Trading{
			Open:   avFloat(quote["02. open"]),
			High:   avFloat(quote["03. high"]),
			Low:    avFloat(quote["04. low"]),
			Volume: avInt(quote["06. volume"]),
		},
		LastTradingDay: avString(quote["07. latest trading day"], "Unknown"),
		Source:         "Alpha Vantage",
	}, nil
}

// Search looks up symbols matching free-text keywords.
func (s *StockService) Search(ctx context.Context, keywords string) (*models.SymbolSearchResult, error) {
	data, err := s.query(ctx, url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {keywords},
	})
	if err != nil {
		return nil, err
	}

	if data.ErrorMessage != "" {
		return nil, tools.Upstream("Alpha Vantage", 0, data.ErrorMessage)
	}
	if data.Note != "" {
		return nil, tools.RateLimited("Alpha Vantage")
	}

	matches := make([]models.SymbolMatch, 0, len(data.BestMatches))
	for _, m := range data.BestMatches {
		matches = append(matches, models.SymbolMatch{
			Symbol:      m["1. symbol"],
			Name:        m["2. name"],
			Type:        m["3. type"],
			Region:      m["4. region"],
			MarketOpen:  m["5. marketOpen"],
			MarketClose: m["6. marketClose"],
			Timezone:    m["7. timezone"],
			Currency:    m["8. currency"],
			MatchScore:  avFloat(m["9. matchScore"]),
		})
	}

	return &models.SymbolSearchResult{
		SearchKeywords: keywords,
		TotalMatches:   len(matches),
		Matches:        matches,
		Source:         "Alpha Vantage",
	}, nil
}

func (s *StockService) query(ctx context.Context, q url.Values) (*avEnvelope, error) {
	if s.apiKey == "" {
		return nil, tools.MissingCredential("Alpha Vantage")
	}
	q.Set("apikey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, tools.Upstream("Alpha Vantage", 0, err.Error())
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("function", q.Get("function")).Msg("alpha vantage request failed")
		return nil, tools.Upstream("Alpha Vantage", 0, err.Error())
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, tools.RateLimited("Alpha Vantage")
	default:
		return nil, tools.Upstream("Alpha Vantage", resp.StatusCode, "")
	}

	var data avEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, tools.Upstream("Alpha Vantage", resp.StatusCode, "malformed response body")
	}
	return &data, nil
}

func avFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func avInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func avString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// avPercent normalizes a change-percent field to exactly one trailing "%".
func avPercent(s string) string {
	if s == "" {
		return "0%"
	}
	return strings.TrimSuffix(s, "%") + "%"
}
