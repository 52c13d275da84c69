package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

func CreateCircuitBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	var st gobreaker.Settings
	st.Name = name
	// The account call already carries a 10s client timeout, so a tripped
	// breaker backs off a little longer than one full timeout before probing
	// again with a single request.
	st.MaxRequests = 1
	st.Interval = 60 * time.Second
	st.Timeout = 15 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](st)

	return cb
}
