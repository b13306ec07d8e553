package vitals

import (
	"fmt"
	"math"
	"strings"
)

// Rating is the web-vitals verdict for a measurement.
type Rating string

const (
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs-improvement"
	RatingPoor             Rating = "poor"
)

// Metric is one measurement reported by the browser.
type Metric struct {
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
	Delta          float64 `json:"delta,omitempty"`
	ID             string  `json:"id,omitempty"`
	Rating         Rating  `json:"rating,omitempty"`
	NavigationType string  `json:"navigationType,omitempty"`
	Page           string  `json:"page,omitempty"`
}

type thresholds struct {
	good, poor float64
}

// Thresholds per metric, in milliseconds except CLS which is unitless.
var metricThresholds = map[string]thresholds{
	"LCP":  {good: 2500, poor: 4000},
	"INP":  {good: 200, poor: 500},
	"FID":  {good: 100, poor: 300},
	"CLS":  {good: 0.1, poor: 0.25},
	"FCP":  {good: 1800, poor: 3000},
	"TTFB": {good: 800, poor: 1800},
}

// Known reports whether name is a supported metric.
func Known(name string) bool {
	_, ok := metricThresholds[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

// Rate classifies value for the named metric.
func Rate(name string, value float64) Rating {
	limits, ok := metricThresholds[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return ""
	}
	switch {
	case value <= limits.good:
		return RatingGood
	case value <= limits.poor:
		return RatingNeedsImprovement
	default:
		return RatingPoor
	}
}

// Normalize validates m, upper-cases its name and fills in the rating.
func Normalize(m Metric) (Metric, error) {
	m.Name = strings.ToUpper(strings.TrimSpace(m.Name))
	if !Known(m.Name) {
		return Metric{}, fmt.Errorf("vitals: unknown metric %q", m.Name)
	}
	if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) || m.Value < 0 {
		return Metric{}, fmt.Errorf("vitals: invalid %s value", m.Name)
	}
	m.Rating = Rate(m.Name, m.Value)
	m.Page = strings.TrimSpace(m.Page)
	if len(m.Page) > 512 {
		m.Page = m.Page[:512]
	}
	return m, nil
}
