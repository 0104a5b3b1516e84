package tools

import (
	"context"
	"strings"

	"github.com/apifuse/apifuse/internal/models"
)

// WeatherAPI is the provider call the weather tool makes.
type WeatherAPI interface {
	CurrentWeather(ctx context.Context, city, country, units string) (*models.WeatherReport, error)
}

type weatherParams struct {
	City    string `json:"city" validate:"required" jsonschema:"description=Name of the city,minLength=1"`
	Country string `json:"country,omitempty" validate:"omitempty,len=2,alpha" jsonschema:"description=Country code (optional; e.g. 'US' or 'GB')"`
	Units   string `json:"units,omitempty" validate:"omitempty,oneof=metric imperial kelvin" jsonschema:"description=Temperature units,enum=metric,enum=imperial,enum=kelvin,default=metric"`
}

// WeatherTool returns the get_weather capability.
func WeatherTool(api WeatherAPI) Tool {
	return Tool{
		Name:        "get_weather",
		Description: "Get current weather information for a specified city",
		InputSchema: inputSchema(&weatherParams{}),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			var p weatherParams
			if err := decodeArgs(args, &p); err != nil {
				return nil, err
			}

			p.City = strings.TrimSpace(p.City)
			if p.City == "" {
				return nil, InvalidParameters("city", "cannot be empty")
			}
			p.Country = strings.ToUpper(strings.TrimSpace(p.Country))
			if p.Units == "" {
				p.Units = "metric"
			}

			return api.CurrentWeather(ctx, p.City, p.Country, p.Units)
		},
	}
}
