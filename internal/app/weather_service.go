package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"envmetrics/internal/domain"
)

var (
	// ErrMissingCity indicates an absent city name.
	ErrMissingCity = errors.New("city name is required")
	// ErrWeatherUpstream indicates that the external weather lookup failed.
	// It is distinct from storage failures even though both map to a 500.
	ErrWeatherUpstream = errors.New("failed to fetch weather data")
)

// WeatherRecord is the result of a successful weather ingestion: the values
// stored plus the city name the provider resolved.
type WeatherRecord struct {
	City     string  `json:"city"`
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
	Pressure float64 `json:"pressure"`
}

// WeatherService records current conditions for a city as a measurement.
type WeatherService struct {
	provider     domain.WeatherProvider
	measurements domain.MeasurementRepository
}

// NewWeatherService creates a WeatherService writing into the given store.
func NewWeatherService(provider domain.WeatherProvider, measurements domain.MeasurementRepository) *WeatherService {
	return &WeatherService{provider: provider, measurements: measurements}
}

// RecordFromCity looks up current conditions and appends a measurement with
// temperature, humidity and pressure mapped to field1, field2 and field3.
// The lookup has no retry; a failure surfaces immediately as
// ErrWeatherUpstream.
func (s *WeatherService) RecordFromCity(ctx context.Context, city string) (*WeatherRecord, error) {
	if strings.TrimSpace(city) == "" {
		return nil, ErrMissingCity
	}

	obs, err := s.provider.Current(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUpstream, err)
	}

	_, err = s.measurements.Append(ctx, domain.Measurement{
		Timestamp: time.Now().UTC(),
		Field1:    obs.TempC,
		Field2:    obs.Humidity,
		Field3:    obs.PressureMb,
	})
	if err != nil {
		return nil, err
	}

	return &WeatherRecord{
		City:     obs.City,
		Temp:     obs.TempC,
		Humidity: obs.Humidity,
		Pressure: obs.PressureMb,
	}, nil
}
