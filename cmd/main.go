package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"emotion-monitor/internal/api"
	"emotion-monitor/internal/cache"
	"emotion-monitor/internal/config"
	"emotion-monitor/internal/logger"
	"emotion-monitor/internal/metrics"
	"emotion-monitor/internal/models"
	"emotion-monitor/internal/monitor"
	"emotion-monitor/internal/source"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const serviceName = "emotion-monitor"

// consoleReporter prints each emitted result in a human-readable block.
type consoleReporter struct {
	out io.Writer
}

func (c consoleReporter) Publish(_ context.Context, result models.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nTimestamp: %s\n", result.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Predicted Emotion: %s\n", result.PredictedEmotion)
	fmt.Fprintf(&b, "Confidence: %.2f\n", result.Confidence)
	b.WriteString("\nEmotion Scores:\n")
	for _, e := range models.Emotions {
		fmt.Fprintf(&b, "%s: %.2f\n", e, result.AllScores[e])
	}
	b.WriteString(strings.Repeat("-", 50) + "\n")

	_, err := io.WriteString(c.out, b.String())
	return err
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)

	format, err := source.ParseFormat(cfg.SourceFormat)
	if err != nil {
		return err
	}
	src := source.NewHTTPSource(cfg.Endpoint, format, cfg.FetchTimeout, log)

	sinks := []monitor.Sink{consoleReporter{out: os.Stdout}}

	var history api.HistoryStore
	if cfg.RedisAddr != "" {
		store, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.ResultTTL, cfg.HistorySize)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer store.Close()

		sinks = append(sinks, store)
		history = store
	}

	mon := monitor.New(monitor.Options{
		MaxPoints:        cfg.MaxPoints,
		SmoothingWindow:  cfg.SmoothingWindow,
		EmotionWindow:    cfg.EmotionWindow,
		Alpha:            cfg.Alpha,
		OutlierThreshold: cfg.OutlierThreshold,
		Interval:         cfg.Interval,
		HistorySize:      cfg.HistorySize,
	}, src, m, log, sinks...)

	var wg sync.WaitGroup
	if cfg.HTTPAddr != "" {
		server := api.NewServer(mon, history, m, prometheus.DefaultGatherer, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := server.Run(ctx, cfg.HTTPAddr); err != nil {
				log.Error("HTTP server failed", zap.Error(err))
			}
		}()
	}

	log.Info("Monitoring sensor endpoint",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("format", string(format)),
		zap.Int("max_points", cfg.MaxPoints),
		zap.Int("smoothing_window", cfg.SmoothingWindow),
		zap.Int("emotion_window", cfg.EmotionWindow),
	)

	err = mon.Run(ctx)
	stop()
	wg.Wait()
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
