package source

import (
	"encoding/json"
	"fmt"

	"emotion-monitor/internal/models"
)

// Format selects the payload shape the endpoint serves.
type Format string

const (
	// FormatFlat is {"mag_x": .., "heart_bpm": .., ...}.
	FormatFlat Format = "flat"
	// FormatNested is {"mag": {"data": {...}}, "gsr": {"data": {...}}}.
	FormatNested Format = "nested"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatFlat, FormatNested:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown source format %q", s)
}

var nestedPaths = map[models.Channel][]string{
	models.MagX:     {"mag", "data", "X"},
	models.MagY:     {"mag", "data", "Y"},
	models.MagZ:     {"mag", "data", "Z"},
	models.Heading:  {"mag", "data", "Heading (degrees)"},
	models.SCL:      {"gsr", "data", "SkinConductance", "SCL"},
	models.SCR:      {"gsr", "data", "SkinConductance", "SCR"},
	models.HeartBPM: {"gsr", "data", "HeartBeat", "BPM"},
	models.RespBPM:  {"gsr", "data", "Respiration", "BPM"},
}

// Decode parses a payload body. Channels missing from the body are left out of
// the reading; a present channel with a non-numeric value fails the decode.
func Decode(body []byte, format Format) (models.Reading, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return models.Reading{}, unavailable("malformed body: %v", err)
	}
	if len(raw) == 0 {
		return models.Reading{}, unavailable("empty payload")
	}

	values := make(map[models.Channel]float64, len(models.Channels))
	for _, ch := range models.Channels {
		v, ok := lookup(raw, ch, format)
		if !ok {
			continue
		}
		f, ok := v.(float64)
		if !ok {
			return models.Reading{}, unavailable("channel %s: non-numeric value %v", ch, v)
		}
		values[ch] = f
	}

	return models.Reading{Values: values, Raw: raw}, nil
}

func lookup(raw map[string]any, ch models.Channel, format Format) (any, bool) {
	if format != FormatNested {
		v, ok := raw[ch.String()]
		return v, ok
	}

	var cur any = raw
	for _, key := range nestedPaths[ch] {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return cur, true
}
