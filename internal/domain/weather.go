package domain

import "context"

// WeatherObservation is a provider's current conditions for a resolved city.
type WeatherObservation struct {
	City       string
	TempC      float64
	Humidity   float64
	PressureMb float64
}

// WeatherProvider is the port for the external weather lookup.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (WeatherObservation, error)
}
