package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"emotion-monitor/internal/analytics"
	"emotion-monitor/internal/buffer"
	"emotion-monitor/internal/metrics"
	"emotion-monitor/internal/models"
	"emotion-monitor/internal/source"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// Sink receives every emitted result.
type Sink interface {
	Publish(ctx context.Context, result models.Result) error
}

type Options struct {
	MaxPoints        int
	SmoothingWindow  int
	EmotionWindow    int
	Alpha            float64
	OutlierThreshold float64
	Interval         time.Duration
	HistorySize      int
}

// Status is a point-in-time view of the loop for health reporting.
type Status struct {
	Cycles    int64             `json:"cycles"`
	Emitted   int64             `json:"emitted"`
	LastState models.CycleState `json:"-"`
	State     string            `json:"last_state"`
	Buffers   map[string]int    `json:"buffers"`
}

// Monitor runs the fetch, ingest, condition, score cycle. Its buffers belong to
// the loop goroutine; only the latest result, history and status are shared.
type Monitor struct {
	source        source.SampleSource
	analyzer      *analytics.Analyzer
	interval      time.Duration
	sinks         []Sink
	metrics       *metrics.Metrics
	logger        *zap.Logger

	raw       map[models.Channel]*buffer.Ring[float64]
	processed map[models.ProcessedChannel]*buffer.Ring[float64]

	now   func() time.Time
	newID func() string

	mu      sync.RWMutex
	latest  *models.Result
	history *buffer.Ring[models.Result]
	state   models.CycleState
	cycles  int64
	emitted int64
	lengths map[string]int
}

func New(opts Options, src source.SampleSource, m *metrics.Metrics, logger *zap.Logger, sinks ...Sink) *Monitor {
	mon := &Monitor{
		source:        src,
		analyzer:      analytics.NewAnalyzer(opts.SmoothingWindow, opts.Alpha, opts.OutlierThreshold),
		interval:      opts.Interval,
		sinks:         sinks,
		metrics:       m,
		logger:        logger,
		raw:           make(map[models.Channel]*buffer.Ring[float64], len(models.Channels)),
		processed:     make(map[models.ProcessedChannel]*buffer.Ring[float64], len(models.ProcessedChannels)),
		now:           time.Now,
		newID:         uuid.NewString,
		history:       buffer.NewRing[models.Result](opts.HistorySize),
		lengths:       make(map[string]int),
	}

	for _, ch := range models.Channels {
		mon.raw[ch] = buffer.NewRing[float64](opts.MaxPoints)
	}
	for _, pc := range models.ProcessedChannels {
		mon.processed[pc] = buffer.NewRing[float64](opts.EmotionWindow)
	}

	return mon
}

// Run cycles until ctx is cancelled. Cancellation interrupts both the wait
// between cycles and an in-flight fetch.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("Starting emotion monitoring", zap.Duration("interval", m.interval))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Stopping emotion monitoring")
			return nil
		case <-timer.C:
		}

		m.Step(ctx)
		timer.Reset(m.interval)
	}
}

// Step runs one cycle. It reports false when the cycle was skipped: the fetch
// failed, or there is not yet enough processed data to extract features.
func (m *Monitor) Step(ctx context.Context) (models.Result, bool) {
	m.mu.Lock()
	m.cycles++
	m.mu.Unlock()

	m.setState(models.StateFetching)
	start := time.Now()
	reading, err := m.source.Fetch(ctx)
	m.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		m.skip("fetch_failed")
		if errors.Is(err, source.ErrUnavailable) {
			m.logger.Warn("Error fetching data", zap.Error(err))
		} else {
			m.logger.Warn("Unexpected fetch error", zap.Error(err))
		}
		return models.Result{}, false
	}
	if len(reading.Values) == 0 && len(reading.Raw) == 0 {
		m.skip("no_data")
		m.logger.Debug("Fetch returned no data")
		return models.Result{}, false
	}

	m.setState(models.StateIngesting)
	m.ingest(reading)

	m.setState(models.StateConditioning)
	m.condition()
	m.recordLengths()

	m.setState(models.StateScoring)
	result, ok := m.predict()
	if !ok {
		m.skip("insufficient_data")
		m.logger.Debug("Not enough processed data for features",
			zap.Int("processed_heart_rate", m.processed[models.HeartRate].Len()),
		)
		return models.Result{}, false
	}
	result.RawData = reading.Raw

	m.emit(ctx, result)
	m.setState(models.StateIdle)
	return result, true
}

// ingest appends each channel present in the reading. Absent channels are left
// unadvanced, so buffer lengths may drift apart across channels.
func (m *Monitor) ingest(reading models.Reading) {
	for _, ch := range models.Channels {
		v, ok := reading.Values[ch]
		if !ok {
			m.metrics.MissingChannels.WithLabelValues(ch.String()).Inc()
			m.logger.Debug("Channel missing from payload", zap.Stringer("channel", ch))
			continue
		}
		m.raw[ch].Push(v)
	}
}

func (m *Monitor) condition() {
	for _, pc := range models.ProcessedChannels {
		src := pc.Source()
		c, ok := m.analyzer.Condition(m.raw[src].Values())
		if !ok {
			continue
		}
		if c.Replaced > 0 {
			m.metrics.OutliersReplaced.WithLabelValues(src.String()).Add(float64(c.Replaced))
		}
		m.processed[pc].Push(c.Value)
	}
}

// predict scores the current processed buffers without mutating them. Only the
// loop goroutine may call it.
func (m *Monitor) predict() (models.Result, bool) {
	windows := make(map[models.ProcessedChannel][]float64, len(m.processed))
	for pc, ring := range m.processed {
		windows[pc] = ring.Values()
	}

	features, ok := analytics.ExtractFeatures(windows, m.processed[models.HeartRate].Full())
	if !ok {
		return models.Result{}, false
	}

	scores := analytics.ScoreEmotions(features)
	emotion, confidence := scores.Best()

	return models.Result{
		ID:               m.newID(),
		Timestamp:        m.now(),
		PredictedEmotion: emotion,
		Confidence:       confidence,
		AllScores:        scores.Map(),
		Features:         features,
	}, true
}

func (m *Monitor) emit(ctx context.Context, result models.Result) {
	m.mu.Lock()
	m.latest = &result
	m.history.Push(result)
	m.emitted++
	m.mu.Unlock()

	m.metrics.CyclesTotal.WithLabelValues("emitted").Inc()
	m.metrics.PredictionsTotal.WithLabelValues(result.PredictedEmotion.String()).Inc()
	m.metrics.Confidence.Set(result.Confidence)
	for e, score := range result.AllScores {
		m.metrics.EmotionScore.WithLabelValues(e.String()).Set(score)
	}

	m.logger.Info("Predicted emotion",
		zap.String("result_id", result.ID),
		zap.Stringer("emotion", result.PredictedEmotion),
		zap.Float64("confidence", result.Confidence),
	)

	// A stop signal after a successful fetch must not abort publishing.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	for _, sink := range m.sinks {
		if err := sink.Publish(publishCtx, result); err != nil {
			m.metrics.SinkErrorsTotal.Inc()
			m.logger.Error("Failed to publish result", zap.String("result_id", result.ID), zap.Error(err))
		}
	}
}

func (m *Monitor) skip(reason string) {
	m.setState(models.StateSkipped)
	m.metrics.CyclesTotal.WithLabelValues("skipped_" + reason).Inc()
	m.setState(models.StateIdle)
}

func (m *Monitor) setState(s models.CycleState) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Monitor) recordLengths() {
	lengths := make(map[string]int, len(m.raw)+len(m.processed))
	for ch, ring := range m.raw {
		lengths["raw_"+ch.String()] = ring.Len()
	}
	for pc, ring := range m.processed {
		lengths["processed_"+pc.String()] = ring.Len()
	}

	for name, n := range lengths {
		m.metrics.BufferLength.WithLabelValues(name).Set(float64(n))
	}

	m.mu.Lock()
	m.lengths = lengths
	m.mu.Unlock()
}

func (m *Monitor) Latest() (models.Result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.latest == nil {
		return models.Result{}, false
	}
	return *m.latest, true
}

// Recent returns up to limit results, oldest first.
func (m *Monitor) Recent(limit int) []models.Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.history.Last(limit)
}

func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	buffers := make(map[string]int, len(m.lengths))
	for k, v := range m.lengths {
		buffers[k] = v
	}
	return Status{
		Cycles:    m.cycles,
		Emitted:   m.emitted,
		LastState: m.state,
		State:     m.state.String(),
		Buffers:   buffers,
	}
}
