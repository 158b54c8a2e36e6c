package filter

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Kind discriminates the filter variants.
type Kind string

const (
	KindRange    Kind = "range"
	KindPeriodic Kind = "periodic"
)

// Event types of the default filter set.
const (
	EventAlreadyExpired     = "ALREADY_EXPIRED"
	EventExpireAt5Minutes   = "EXPIRE_AT_5_MINUTES"
	EventExpireAt10Minutes  = "EXPIRE_AT_10_MINUTES"
	EventExpireAt15Minutes  = "EXPIRE_AT_15_MINUTES"
	defaultIntervalSeconds  = 600
	defaultDeviationSeconds = 30
)

var (
	errUnknownKind      = errors.New("unknown filter kind")
	errEmptyEventType   = errors.New("filter event_type is empty")
	errInvertedRange    = errors.New("range filter requires low_seconds <= high_seconds")
	errNonPositiveCycle = errors.New("periodic filter requires interval_seconds > 0")
	errNegativeJitter   = errors.New("periodic filter requires deviation_seconds >= 0")
)

// Spec is one filter. Only the fields of its Kind are meaningful:
//   - range:    LowSeconds <= x <= HighSeconds
//   - periodic: x near a multiple of IntervalSeconds, within DeviationSeconds
type Spec struct {
	Kind             Kind    `mapstructure:"kind" json:"kind" yaml:"kind"`
	EventType        string  `mapstructure:"event_type" json:"event_type" yaml:"event_type"`
	LowSeconds       float64 `mapstructure:"low_seconds" json:"low_seconds,omitempty" yaml:"low_seconds,omitempty"`
	HighSeconds      float64 `mapstructure:"high_seconds" json:"high_seconds,omitempty" yaml:"high_seconds,omitempty"`
	IntervalSeconds  float64 `mapstructure:"interval_seconds" json:"interval_seconds,omitempty" yaml:"interval_seconds,omitempty"`
	DeviationSeconds float64 `mapstructure:"deviation_seconds" json:"deviation_seconds,omitempty" yaml:"deviation_seconds,omitempty"`
}

// Range builds a window filter.
func Range(eventType string, low, high float64) Spec {
	return Spec{Kind: KindRange, EventType: eventType, LowSeconds: low, HighSeconds: high}
}

// Periodic builds an interval-with-deviation filter.
func Periodic(eventType string, interval, deviation float64) Spec {
	return Spec{Kind: KindPeriodic, EventType: eventType, IntervalSeconds: interval, DeviationSeconds: deviation}
}

// Defaults returns the canonical filter set.
func Defaults() []Spec {
	return []Spec{
		Periodic(EventAlreadyExpired, defaultIntervalSeconds, defaultDeviationSeconds),
		Range(EventExpireAt5Minutes, 270, 330),
		Range(EventExpireAt10Minutes, 570, 630),
		Range(EventExpireAt15Minutes, 870, 930),
	}
}

// IsSatisfied reports whether x seconds until expiry matches the filter.
// x is negative once the deadline has passed.
func (s Spec) IsSatisfied(x float64) bool {
	switch s.Kind {
	case KindRange:
		return s.LowSeconds <= x && x <= s.HighSeconds
	case KindPeriodic:
		return s.periodicMatch(x)
	default:
		return false
	}
}

// periodicMatch fires when x lies within DeviationSeconds of the nearest
// multiple of IntervalSeconds. Anything later than +DeviationSeconds is
// rejected up front, so future deadlines never match beyond the first tolerance.
func (s Spec) periodicMatch(x float64) bool {
	if x > s.DeviationSeconds {
		return false
	}
	if s.IntervalSeconds <= 0 {
		return false
	}
	// math.Round rounds half away from zero
	multiplier := math.Round(x / s.IntervalSeconds)
	threshold := multiplier * s.IntervalSeconds
	return threshold-s.DeviationSeconds <= x && x <= threshold+s.DeviationSeconds
}

// Validate checks the fields its Kind requires.
func (s Spec) Validate() error {
	if strings.TrimSpace(s.EventType) == "" {
		return errEmptyEventType
	}
	switch s.Kind {
	case KindRange:
		if s.LowSeconds > s.HighSeconds {
			return fmt.Errorf("%s: %w", s.EventType, errInvertedRange)
		}
	case KindPeriodic:
		if s.IntervalSeconds <= 0 {
			return fmt.Errorf("%s: %w", s.EventType, errNonPositiveCycle)
		}
		if s.DeviationSeconds < 0 {
			return fmt.Errorf("%s: %w", s.EventType, errNegativeJitter)
		}
	default:
		return fmt.Errorf("%s: %w %q", s.EventType, errUnknownKind, s.Kind)
	}
	return nil
}

// ValidateAll validates every spec and normalizes Kind casing in place.
func ValidateAll(specs []Spec) error {
	for i := range specs {
		specs[i].Kind = Kind(strings.ToLower(strings.TrimSpace(string(specs[i].Kind))))
		if err := specs[i].Validate(); err != nil {
			return fmt.Errorf("filter %d: %w", i, err)
		}
	}
	return nil
}
