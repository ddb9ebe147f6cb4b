package source

import (
	"context"
	"errors"
	"fmt"

	"emotion-monitor/internal/models"
)

// ErrUnavailable classifies every fetch failure: transport errors, timeouts,
// non-success status codes, malformed or empty bodies.
var ErrUnavailable = errors.New("sample source unavailable")

// SampleSource returns the current readings for one cycle.
type SampleSource interface {
	Fetch(ctx context.Context) (models.Reading, error)
}

// Func adapts a function to SampleSource.
type Func func(ctx context.Context) (models.Reading, error)

func (f Func) Fetch(ctx context.Context) (models.Reading, error) { return f(ctx) }

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}
