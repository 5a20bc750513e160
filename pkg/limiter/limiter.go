package limiter

import (
	"golang.org/x/time/rate"
)

type Limiter interface {
	limiterSetup()
}

// New returns a limiter allowing rps requests per second, or nil when rps
// is not positive.
func New(rps int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(rps), rps)
}
