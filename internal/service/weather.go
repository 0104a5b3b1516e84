// Package service contains the provider clients. Each wraps one third-party
// REST API: a single outbound call per operation, provider status codes and
// error bodies translated into the shared taxonomy, responses reshaped into
// the normalized models. No retries, no caching.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/apifuse/apifuse/internal/models"
	"github.com/apifuse/apifuse/internal/tools"
	"github.com/rs/zerolog/log"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// WeatherService fetches current conditions from OpenWeatherMap.
type WeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewWeatherService(apiKey string, timeout time.Duration) *WeatherService {
	return &WeatherService{
		apiKey:  apiKey,
		baseURL: openWeatherBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the provider endpoint, used by tests.
func (s *WeatherService) WithBaseURL(u string) *WeatherService {
	s.baseURL = u
	return s
}

// owmResponse is the subset of the OpenWeatherMap /weather body we consume.
type owmResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Visibility int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Dt       int64 `json:"dt"`
	Timezone int   `json:"timezone"`
}

// CurrentWeather looks up current conditions for a city. country is an
// optional ISO code appended to the provider query; units is one of
// metric, imperial, kelvin (already validated by the tool).
func (s *WeatherService) CurrentWeather(ctx context.Context, city, country, units string) (*models.WeatherReport, error) {
	if s.apiKey == "" {
		return nil, tools.MissingCredential("OpenWeatherMap")
	}

	location := city
	if country != "" {
		location = city + "," + country
	}

	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", s.apiKey)
	q.Set("units", units)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, tools.Upstream("OpenWeatherMap", 0, err.Error())
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("city", city).Msg("openweathermap request failed")
		return nil, tools.Upstream("OpenWeatherMap", 0, err.Error())
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, tools.NotFound(
			fmt.Sprintf("city %q not found", location),
			map[string]any{"city": location},
		)
	case http.StatusTooManyRequests:
		return nil, tools.RateLimited("OpenWeatherMap")
	default:
		return nil, tools.Upstream("OpenWeatherMap", resp.StatusCode, "")
	}

	var data owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, tools.Upstream("OpenWeatherMap", resp.StatusCode, "malformed response body")
	}
	if len(data.Weather) == 0 {
		return nil, tools.Upstream("OpenWeatherMap", resp.StatusCode, "response missing weather conditions")
	}

	return normalizeWeather(&data, units), nil
}

func normalizeWeather(data *owmResponse, units string) *models.WeatherReport {
	tempUnit := map[string]string{
		"metric":   "°C",
		"imperial": "°F",
		"kelvin":   "K",
	}[units]

	speedUnit := "m/s"
	if units == "imperial" {
		speedUnit = "mph"
	}

	return &models.WeatherReport{
		Location: models.Location{
			City:    data.Name,
			Country: data.Sys.Country,
			Coordinates: models.Coordinates{
				Latitude:  data.Coord.Lat,
				Longitude: data.Coord.Lon,
			},
		},
		Weather: models.Conditions{
			Condition:   data.Weather[0].Main,
			Description: data.Weather[0].Description,
			Icon:        data.Weather[0].Icon,
		},
		Temperature: models.Temperature{
			Current:   data.Main.Temp,
			FeelsLike: data.Main.FeelsLike,
			Min:       data.Main.TempMin,
			Max:       data.Main.TempMax,
			Unit:      tempUnit,
		},
		Humidity:   fmt.Sprintf("%d%%", data.Main.Humidity),
		Pressure:   fmt.Sprintf("%d hPa", data.Main.Pressure),
		Visibility: fmt.Sprintf("%.1f km", float64(data.Visibility)/1000),
		Wind: models.Wind{
			Speed:     fmt.Sprintf("%g %s", data.Wind.Speed, speedUnit),
			Direction: fmt.Sprintf("%d°", data.Wind.Deg),
		},
		Clouds:    fmt.Sprintf("%d%%", data.Clouds.All),
		Timestamp: data.Dt,
		Timezone:  data.Timezone,
		Source:    "OpenWeatherMap",
	}
}
