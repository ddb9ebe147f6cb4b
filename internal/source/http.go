package source

import (
	"context"
	"time"

	"emotion-monitor/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// HTTPSource polls a sensor endpoint with a single GET per fetch. Failed
// requests are not retried.
type HTTPSource struct {
	httpClient *resty.Client
	endpoint   string
	format     Format
	logger     *zap.Logger
}

func NewHTTPSource(endpoint string, format Format, timeout time.Duration, logger *zap.Logger) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &HTTPSource{
		httpClient: client,
		endpoint:   endpoint,
		format:     format,
		logger:     logger,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) (models.Reading, error) {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		Get(s.endpoint)
	if err != nil {
		return models.Reading{}, unavailable("request failed: %v", err)
	}

	if !resp.IsSuccess() {
		return models.Reading{}, unavailable("unexpected status %d", resp.StatusCode())
	}

	reading, err := Decode(resp.Body(), s.format)
	if err != nil {
		return models.Reading{}, err
	}

	s.logger.Debug("Fetched sample",
		zap.String("endpoint", s.endpoint),
		zap.Int("channels", len(reading.Values)),
		zap.Duration("latency", resp.Time()),
	)
	return reading, nil
}
