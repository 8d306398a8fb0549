package weatherapi

import (
	"context"

	"golang.org/x/time/rate"

	"envmetrics/internal/domain"
)

// RateLimited wraps a weather provider with a token-bucket limiter guarding
// the upstream request quota.
type RateLimited struct {
	provider domain.WeatherProvider
	limiter  *rate.Limiter
}

var _ domain.WeatherProvider = (*RateLimited)(nil)

// NewRateLimited allows rps requests per second with the given burst.
// rps may be fractional for less than one request per second.
func NewRateLimited(provider domain.WeatherProvider, rps float64, burst int) *RateLimited {
	return &RateLimited{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Current waits for limiter permission, then forwards to the wrapped provider.
func (r *RateLimited) Current(ctx context.Context, city string) (domain.WeatherObservation, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return domain.WeatherObservation{}, err
	}
	return r.provider.Current(ctx, city)
}
