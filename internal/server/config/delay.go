package config

import (
	"fmt"
	"time"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/timex"
)

func parseDelay(raw string) (time.Duration, error) {
	return timex.ParseMillis(raw)
}

type delayError struct {
	source string
	raw    string
	err    error
}

func (e delayError) Error() string {
	return fmt.Sprintf("invalid response delay %q from %s, using default %s: %v", e.raw, e.source, DefaultResponseDelay, e.err)
}

func (e delayError) Unwrap() error { return e.err }
