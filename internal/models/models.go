package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Channel is a raw sensor stream delivered by the sample source.
type Channel int

const (
	MagX Channel = iota
	MagY
	MagZ
	Heading
	SCL
	SCR
	HeartBPM
	RespBPM
)

// Channels lists every raw channel in payload order.
var Channels = []Channel{MagX, MagY, MagZ, Heading, SCL, SCR, HeartBPM, RespBPM}

var channelNames = [...]string{"mag_x", "mag_y", "mag_z", "heading", "scl", "scr", "heart_bpm", "resp_bpm"}

func (c Channel) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// ProcessedChannel is a conditioned physiological stream feeding the feature extractor.
type ProcessedChannel int

const (
	HeartRate ProcessedChannel = iota
	RespRate
	ProcessedSCL
	ProcessedSCR
)

var ProcessedChannels = []ProcessedChannel{HeartRate, RespRate, ProcessedSCL, ProcessedSCR}

var processedNames = [...]string{"heart_rate", "resp_rate", "scl", "scr"}

func (p ProcessedChannel) String() string {
	if p < 0 || int(p) >= len(processedNames) {
		return fmt.Sprintf("processed(%d)", int(p))
	}
	return processedNames[p]
}

// Source returns the raw channel a processed channel is conditioned from.
func (p ProcessedChannel) Source() Channel {
	switch p {
	case HeartRate:
		return HeartBPM
	case RespRate:
		return RespBPM
	case ProcessedSCL:
		return SCL
	case ProcessedSCR:
		return SCR
	}
	panic(fmt.Sprintf("models: unknown processed channel %d", int(p)))
}

// Dimension is one of the physiological axes an emotion pattern is defined over.
type Dimension int

const (
	DimHeartRate Dimension = iota
	DimHeartRateVariability
	DimRespRate
	DimSCL
	DimSCR
	DimensionCount
)

var dimensionNames = [...]string{"heart_rate", "heart_rate_variability", "resp_rate", "scl", "scr"}

func (d Dimension) String() string {
	if d < 0 || d >= DimensionCount {
		return fmt.Sprintf("dimension(%d)", int(d))
	}
	return dimensionNames[d]
}

// Level is an ordered qualitative bucket; the zero value is VeryLow.
type Level int

const (
	VeryLow Level = iota
	Low
	LowMedium
	Medium
	MediumHigh
	High
	VeryHigh
)

var levelNames = [...]string{"very_low", "low", "low_medium", "medium", "medium_high", "high", "very_high"}

func (l Level) String() string {
	if l < VeryLow || l > VeryHigh {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Emotion is a target emotional state. Declaration order is the tie-break order.
type Emotion int

const (
	Amusing Emotion = iota
	Boring
	Relaxed
	Scary
	EmotionCount
)

var Emotions = []Emotion{Amusing, Boring, Relaxed, Scary}

var emotionNames = [...]string{"amusing", "boring", "relaxed", "scary"}

func (e Emotion) String() string {
	if e < 0 || e >= EmotionCount {
		return fmt.Sprintf("emotion(%d)", int(e))
	}
	return emotionNames[e]
}

func (e Emotion) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Emotion) UnmarshalText(b []byte) error {
	for i, name := range emotionNames {
		if name == string(b) {
			*e = Emotion(i)
			return nil
		}
	}
	return fmt.Errorf("unknown emotion %q", string(b))
}

// CycleState tracks where the monitor loop is within one cycle.
type CycleState int

const (
	StateIdle CycleState = iota
	StateFetching
	StateIngesting
	StateSkipped
	StateConditioning
	StateScoring
)

var stateNames = [...]string{"idle", "fetching", "ingesting", "skipped", "conditioning", "scoring"}

func (s CycleState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Reading is one successful fetch: the channel values present in the payload
// plus the decoded body as received.
type Reading struct {
	Values map[Channel]float64
	Raw    map[string]any
}

// Feature is an optional scalar; Valid is false when its window was too short.
type Feature struct {
	Value float64
	Valid bool
}

func Some(v float64) Feature { return Feature{Value: v, Valid: true} }

func (f Feature) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f *Feature) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = Feature{}
		return nil
	}
	if err := json.Unmarshal(b, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

type FeatureVector struct {
	HeartRateMean Feature `json:"heart_rate_mean"`
	HeartRateStd  Feature `json:"heart_rate_std"`
	RespRateMean  Feature `json:"resp_rate_mean"`
	RespRateStd   Feature `json:"resp_rate_std"`
	SCLMean       Feature `json:"scl_mean"`
	SCLStd        Feature `json:"scl_std"`
	SCRMean       Feature `json:"scr_mean"`
	SCRSlope      Feature `json:"scr_slope"`
}

// Dimension returns the feature scored for a pattern dimension.
func (fv FeatureVector) Dimension(d Dimension) Feature {
	switch d {
	case DimHeartRate:
		return fv.HeartRateMean
	case DimHeartRateVariability:
		return fv.HeartRateStd
	case DimRespRate:
		return fv.RespRateMean
	case DimSCL:
		return fv.SCLMean
	case DimSCR:
		return fv.SCRMean
	}
	return Feature{}
}

type Result struct {
	ID               string              `json:"id"`
	Timestamp        time.Time           `json:"timestamp"`
	PredictedEmotion Emotion             `json:"predicted_emotion"`
	Confidence       float64             `json:"confidence"`
	AllScores        map[Emotion]float64 `json:"all_scores"`
	Features         FeatureVector       `json:"features"`
	RawData          map[string]any      `json:"raw_data"`
}
