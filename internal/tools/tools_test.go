package tools_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/apifuse/apifuse/internal/models"
	"github.com/apifuse/apifuse/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Stub providers ───────────────────────────────────────────────────────────

type stubWeather struct {
	calls   int
	city    string
	country string
	units   string
	report  *models.WeatherReport
	err     error
}

func (s *stubWeather) CurrentWeather(_ context.Context, city, country, units string) (*models.WeatherReport, error) {
	s.calls++
	s.city, s.country, s.units = city, country, units
	return s.report, s.err
}

type stubNews struct {
	calls    int
	query    string
	category string
	country  string
	pageSize int
	digest   *models.NewsDigest
	err      error
}

func (s *stubNews) Headlines(_ context.Context, query, category, country string, pageSize int) (*models.NewsDigest, error) {
	s.calls++
	s.query, s.category, s.country, s.pageSize = query, category, country, pageSize
	return s.digest, s.err
}

type stubStock struct {
	quoteCalls  int
	searchCalls int
	symbol      string
	keywords    string
	quote       *models.StockQuote
	result      *models.SymbolSearchResult
	err         error
}

func (s *stubStock) Quote(_ context.Context, symbol string) (*models.StockQuote, error) {
	s.quoteCalls++
	s.symbol = symbol
	return s.quote, s.err
}

func (s *stubStock) Search(_ context.Context, keywords string) (*models.SymbolSearchResult, error) {
	s.searchCalls++
	s.keywords = keywords
	return s.result, s.err
}

func requireKind(t *testing.T, err error, kind tools.ErrorKind) *tools.Error {
	t.Helper()
	require.Error(t, err)
	te := tools.AsError(err)
	require.Equal(t, kind, te.Kind)
	return te
}

// ─── Validation short-circuit ─────────────────────────────────────────────────

func TestWeatherMissingCityNeverCallsProvider(t *testing.T) {
	stub := &stubWeather{}
	tool := tools.WeatherTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{})
	requireKind(t, err, tools.KindInvalidParameters)
	assert.Zero(t, stub.calls)
}

func TestWeatherBlankCityNeverCallsProvider(t *testing.T) {
	stub := &stubWeather{}
	tool := tools.WeatherTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{"city": "   "})
	requireKind(t, err, tools.KindInvalidParameters)
	assert.Zero(t, stub.calls)
}

func TestWeatherInvalidUnits(t *testing.T) {
	stub := &stubWeather{}
	tool := tools.WeatherTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{"city": "London", "units": "fahrenheit"})
	te := requireKind(t, err, tools.KindInvalidParameters)
	assert.Contains(t, te.Message, "units")
	assert.Zero(t, stub.calls)
}

func TestWeatherUnknownArgumentRejected(t *testing.T) {
	stub := &stubWeather{}
	tool := tools.WeatherTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{"city": "London", "zip": "12345"})
	requireKind(t, err, tools.KindInvalidParameters)
	assert.Zero(t, stub.calls)
}

func TestStockQuoteMissingSymbolNeverCallsProvider(t *testing.T) {
	stub := &stubStock{}
	tool := tools.StockQuoteTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{})
	requireKind(t, err, tools.KindInvalidParameters)
	assert.Zero(t, stub.quoteCalls)
}

func TestStockSearchMissingKeywordsNeverCallsProvider(t *testing.T) {
	stub := &stubStock{}
	tool := tools.StockSearchTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{})
	requireKind(t, err, tools.KindInvalidParameters)
	assert.Zero(t, stub.searchCalls)
}

func TestNewsPageSizeOutOfRange(t *testing.T) {
	stub := &stubNews{}
	tool := tools.NewsTool(stub)

	for _, size := range []int{-1, 101} {
		_, err := tool.Execute(context.Background(), map[string]any{"page_size": size})
		requireKind(t, err, tools.KindInvalidParameters)
	}
	assert.Zero(t, stub.calls)
}

func TestNewsInvalidCategory(t *testing.T) {
	stub := &stubNews{}
	tool := tools.NewsTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{"category": "astrology"})
	te := requireKind(t, err, tools.KindInvalidParameters)
	assert.Contains(t, te.Message, "category")
	assert.Zero(t, stub.calls)
}

// ─── Normalization of inputs ──────────────────────────────────────────────────

func TestWeatherDefaultsToMetric(t *testing.T) {
	stub := &stubWeather{report: &models.WeatherReport{}}
	tool := tools.WeatherTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{"city": "London"})
	require.NoError(t, err)
	assert.Equal(t, "metric", stub.units)
	assert.Equal(t, "London", stub.city)
}

func TestWeatherCountryUppercased(t *testing.T) {
	stub := &stubWeather{report: &models.WeatherReport{}}
	tool := tools.WeatherTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{"city": "London", "country": "gb"})
	require.NoError(t, err)
	assert.Equal(t, "GB", stub.country)
}

func TestStockSymbolUppercasedBeforeProviderCall(t *testing.T) {
	stub := &stubStock{quote: &models.StockQuote{Symbol: "AAPL"}}
	tool := tools.StockQuoteTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{"symbol": "aapl"})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", stub.symbol)
}

func TestNewsAcceptsZeroFilters(t *testing.T) {
	stub := &stubNews{digest: &models.NewsDigest{}}
	tool := tools.NewsTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, 10, stub.pageSize)
	assert.Empty(t, stub.query)
}

// ─── Idempotence ──────────────────────────────────────────────────────────────

func TestStockQuoteIdempotentAgainstDeterministicStub(t *testing.T) {
	stub := &stubStock{quote: &models.StockQuote{
		Symbol: "AAPL",
		Price:  models.Price{Current: 123.45, Currency: "USD"},
	}}
	tool := tools.StockQuoteTool(stub)
	args := map[string]any{"symbol": "AAPL"}

	first, err := tool.Execute(context.Background(), args)
	require.NoError(t, err)
	second, err := tool.Execute(context.Background(), args)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))
}

// ─── Provider failures pass through verbatim ──────────────────────────────────

func TestWeatherProviderErrorPassesThrough(t *testing.T) {
	stub := &stubWeather{err: tools.RateLimited("OpenWeatherMap")}
	tool := tools.WeatherTool(stub)

	_, err := tool.Execute(context.Background(), map[string]any{"city": "London"})
	requireKind(t, err, tools.KindRateLimited)
}

// ─── Input schemas ────────────────────────────────────────────────────────────

func schemaAsMap(t *testing.T, tool tools.Tool) map[string]any {
	t.Helper()
	raw, err := json.Marshal(tool.InputSchema)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestWeatherSchemaRequiresCity(t *testing.T) {
	m := schemaAsMap(t, tools.WeatherTool(&stubWeather{}))

	assert.Equal(t, "object", m["type"])
	assert.Contains(t, m["required"], "city")

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)
	units, ok := props["units"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"metric", "imperial", "kelvin"}, units["enum"])
}

func TestNewsSchemaHasNoRequiredFields(t *testing.T) {
	m := schemaAsMap(t, tools.NewsTool(&stubNews{}))
	assert.Nil(t, m["required"])

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)
	category, ok := props["category"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, category["enum"], 7)
}

// ─── Error mapping tables ─────────────────────────────────────────────────────

func TestErrorHTTPStatusMapping(t *testing.T) {
	cases := map[tools.ErrorKind]int{
		tools.KindInvalidParameters: 400,
		tools.KindUnknownTool:       400,
		tools.KindNotFound:          404,
		tools.KindUpstreamError:     502,
		tools.KindRateLimited:       503,
		tools.KindMissingCredential: 503,
	}
	for kind, want := range cases {
		e := &tools.Error{Kind: kind}
		assert.Equal(t, want, e.HTTPStatus(), "kind %s", kind)
	}
}

func TestErrorRPCCodeMapping(t *testing.T) {
	cases := map[tools.ErrorKind]int{
		tools.KindInvalidParameters: -32602,
		tools.KindUnknownTool:       -32602,
		tools.KindMissingCredential: -32001,
		tools.KindUpstreamError:     -32003,
		tools.KindRateLimited:       -32004,
		tools.KindNotFound:          -32005,
	}
	for kind, want := range cases {
		e := &tools.Error{Kind: kind}
		assert.Equal(t, want, e.RPCCode(), "kind %s", kind)
	}
}
