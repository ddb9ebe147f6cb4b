package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"emotion-monitor/internal/source"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is fixed at startup and never mutated afterwards.
type Config struct {
	Endpoint         string        `yaml:"endpoint"`
	SourceFormat     string        `yaml:"source_format"`
	MaxPoints        int           `yaml:"max_points"`
	SmoothingWindow  int           `yaml:"smoothing_window"`
	EmotionWindow    int           `yaml:"emotion_window"`
	Alpha            float64       `yaml:"alpha"`
	OutlierThreshold float64       `yaml:"outlier_threshold"`
	FetchTimeout     time.Duration `yaml:"fetch_timeout"`
	Interval         time.Duration `yaml:"interval"`

	HTTPAddr    string        `yaml:"http_addr"`
	RedisAddr   string        `yaml:"redis_addr"`
	ResultTTL   time.Duration `yaml:"result_ttl"`
	HistorySize int           `yaml:"history_size"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func Default() Config {
	return Config{
		Endpoint:         "http://192.168.156.142/get_all_data",
		SourceFormat:     string(source.FormatFlat),
		MaxPoints:        100,
		SmoothingWindow:  5,
		EmotionWindow:    30,
		Alpha:            0.3,
		OutlierThreshold: 3,
		FetchTimeout:     5 * time.Second,
		Interval:         time.Second,
		HTTPAddr:         ":8080",
		ResultTTL:        time.Hour,
		HistorySize:      100,
		LogLevel:         "info",
		LogFormat:        "json",
	}
}

// Load resolves defaults, then the YAML file named by CONFIG_FILE, then a .env
// file if present, then the process environment.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv overrides fields whose environment variable is set.
func (c *Config) LoadFromEnv() error {
	c.Endpoint = envString("SENSOR_ENDPOINT", c.Endpoint)
	c.SourceFormat = envString("SOURCE_FORMAT", c.SourceFormat)
	c.HTTPAddr = envStringAllowEmpty("HTTP_ADDR", c.HTTPAddr)
	c.RedisAddr = envString("REDIS_ADDR", c.RedisAddr)
	c.LogLevel = envString("LOG_LEVEL", c.LogLevel)
	c.LogFormat = envString("LOG_FORMAT", c.LogFormat)

	var err error
	if c.MaxPoints, err = envInt("MAX_POINTS", c.MaxPoints); err != nil {
		return err
	}
	if c.SmoothingWindow, err = envInt("SMOOTHING_WINDOW", c.SmoothingWindow); err != nil {
		return err
	}
	if c.EmotionWindow, err = envInt("EMOTION_WINDOW", c.EmotionWindow); err != nil {
		return err
	}
	if c.HistorySize, err = envInt("HISTORY_SIZE", c.HistorySize); err != nil {
		return err
	}
	if c.Alpha, err = envFloat("EMA_ALPHA", c.Alpha); err != nil {
		return err
	}
	if c.OutlierThreshold, err = envFloat("OUTLIER_THRESHOLD", c.OutlierThreshold); err != nil {
		return err
	}
	if c.FetchTimeout, err = envDuration("FETCH_TIMEOUT", c.FetchTimeout); err != nil {
		return err
	}
	if c.Interval, err = envDuration("CYCLE_INTERVAL", c.Interval); err != nil {
		return err
	}
	if c.ResultTTL, err = envDuration("RESULT_TTL", c.ResultTTL); err != nil {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	if _, err := source.ParseFormat(c.SourceFormat); err != nil {
		return err
	}
	if c.MaxPoints <= 0 || c.SmoothingWindow <= 0 || c.EmotionWindow <= 0 || c.HistorySize <= 0 {
		return fmt.Errorf("max_points, smoothing_window, emotion_window and history_size must be positive")
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1], got %v", c.Alpha)
	}
	if c.OutlierThreshold <= 0 {
		return fmt.Errorf("outlier_threshold must be positive, got %v", c.OutlierThreshold)
	}
	if c.FetchTimeout <= 0 || c.Interval <= 0 || c.ResultTTL <= 0 {
		return errors.New("fetch_timeout, interval and result_ttl must be positive")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envStringAllowEmpty(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
