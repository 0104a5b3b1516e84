package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/apifuse/apifuse/internal/service"
	"github.com/apifuse/apifuse/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteFixture = `{
	"Global Quote": {
		"01. symbol": "AAPL",
		"02. open": "212.50",
		"03. high": "215.20",
		"04. low": "211.80",
		"05. price": "214.29",
		"06. volume": "44243800",
		"07. latest trading day": "2024-06-10",
		"08. previous close": "212.49",
		"09. change": "1.80",
		"10. change percent": "0.8471%"
	}
}`

const searchFixture = `{
	"bestMatches": [
		{
			"1. symbol": "AAPL",
			"2. name": "Apple Inc",
			"3. type": "Equity",
			"4. region": "United States",
			"5. marketOpen": "09:30",
			"6. marketClose": "16:00",
			"7. timezone": "UTC-04",
			"8. currency": "USD",
			"9. matchScore": "1.0000"
		}
	]
}`

func stockServer(t *testing.T, body string) (*service.StockService, *url.Values) {
	t.Helper()
	var seen url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query()
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return service.NewStockService("test-key", 5*time.Second).WithBaseURL(srv.URL), &seen
}

func TestQuoteNormalizesFixture(t *testing.T) {
	svc, seen := stockServer(t, quoteFixture)

	quote, err := svc.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "GLOBAL_QUOTE", seen.Get("function"))
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 214.29, quote.Price.Current)
	assert.Equal(t, 212.49, quote.Price.PreviousClose)
	assert.Equal(t, 1.80, quote.Price.Change)
	assert.Equal(t, "0.8471%", quote.Price.ChangePercent)
	assert.Equal(t, "USD", quote.Price.Currency)
	assert.Equal(t, int64(44243800), quote.Trading.Volume)
	assert.Equal(t, "2024-06-10", quote.LastTradingDay)
	assert.Equal(t, "Alpha Vantage", quote.Source)
}

func TestQuoteMissingChangePercentDefaultsToZero(t *testing.T) {
	svc, _ := stockServer(t, `{
		"Global Quote": {
			"01. symbol": "AAPL",
			"05. price": "214.29"
		}
	}`)

	quote, err := svc.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "0%", quote.Price.ChangePercent)
}

func TestQuoteErrorMessageMapsToNotFound(t *testing.T) {
	svc, _ := stockServer(t, `{"Error Message": "Invalid API call."}`)

	_, err := svc.Quote(context.Background(), "ZZZZZZ")
	te := tools.AsError(err)
	assert.Equal(t, tools.KindNotFound, te.Kind)
	assert.Contains(t, te.Message, "ZZZZZZ")
}

func TestQuoteNoteMapsToRateLimited(t *testing.T) {
	svc, _ := stockServer(t, `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 25 requests per day."}`)

	_, err := svc.Quote(context.Background(), "AAPL")
	te := tools.AsError(err)
	assert.Equal(t, tools.KindRateLimited, te.Kind)
}

func TestQuoteEmptyGlobalQuoteMapsToNotFound(t *testing.T) {
	svc, _ := stockServer(t, `{"Global Quote": {}}`)

	_, err := svc.Quote(context.Background(), "AAPL")
	te := tools.AsError(err)
	assert.Equal(t, tools.KindNotFound, te.Kind)
}

func TestQuote429MapsToRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()
	svc := service.NewStockService("test-key", 5*time.Second).WithBaseURL(srv.URL)

	_, err := svc.Quote(context.Background(), "AAPL")
	te := tools.AsError(err)
	assert.Equal(t, tools.KindRateLimited, te.Kind)
}

func TestSearchNormalizesFixture(t *testing.T) {
	svc, seen := stockServer(t, searchFixture)

	result, err := svc.Search(context.Background(), "apple")
	require.NoError(t, err)

	assert.Equal(t, "SYMBOL_SEARCH", seen.Get("function"))
	assert.Equal(t, "apple", seen.Get("keywords"))
	assert.Equal(t, "apple", result.SearchKeywords)
	assert.Equal(t, 1, result.TotalMatches)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "AAPL", result.Matches[0].Symbol)
	assert.Equal(t, "Apple Inc", result.Matches[0].Name)
	assert.Equal(t, 1.0, result.Matches[0].MatchScore)
}

func TestSearchNoMatchesReturnsEmptyList(t *testing.T) {
	svc, _ := stockServer(t, `{"bestMatches": []}`)

	result, err := svc.Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Zero(t, result.TotalMatches)
	assert.Empty(t, result.Matches)
}

func TestStockMissingKey(t *testing.T) {
	svc := service.NewStockService("", 5*time.Second)

	_, err := svc.Quote(context.Background(), "AAPL")
	te := tools.AsError(err)
	assert.Equal(t, tools.KindMissingCredential, te.Kind)
}
