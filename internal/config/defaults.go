package config

const (
	DefaultHost     = "localhost"
	DefaultPort     = 8000
	DefaultMode     = ModeHTTP
	DefaultLogLevel = "info"

	DefaultAPIKeyHeader = "X-API-Key"

	DefaultProviderTimeoutSeconds = 10
)

var DefaultCORSOrigins = []string{"*"}
