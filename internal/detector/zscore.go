package detector

import (
	"math"

	"github.com/pratik-mahalle/cloudspend/internal/domain/anomaly"
)

// Rolling window length used for the baseline statistics
const WindowSize = 14

// Windows with a population std-dev below this are considered flat; scoring
// against them would amplify noise, so those indexes are skipped.
const minStdDev = 0.001

const minThreshold = 1.5

// AnomalyDetector flags days whose spend deviates from the preceding
// rolling window by more than a z-score threshold.
type AnomalyDetector struct {
	windowSize int
	threshold  float64
}

// Detected is a single flagged point in a series
type Detected struct {
	Index        int
	Value        float64
	Expected     float64
	Deviation    float64
	DeviationPct float64
	Score        float64
	Severity     string
}

// NewAnomalyDetector maps a sensitivity in [0,1] to a z-score threshold.
// Higher sensitivity means a lower threshold and more anomalies flagged:
// sensitivity 0 gives 3.0, sensitivity 1 gives 1.5, linear in between and
// clamped to never drop below 1.5.
func NewAnomalyDetector(sensitivity float64) *AnomalyDetector {
	var threshold float64
	switch {
	case sensitivity <= 0:
		threshold = 3.0
	case sensitivity >= 1:
		threshold = minThreshold
	default:
		threshold = 3.0 - sensitivity*3.0
	}

	return &AnomalyDetector{
		windowSize: WindowSize,
		threshold:  math.Max(threshold, minThreshold),
	}
}

// Threshold returns the effective z-score threshold
func (d *AnomalyDetector) Threshold() float64 {
	return d.threshold
}

// Detect scans a chronologically ordered series and returns flagged points
// in ascending index order. Series no longer than the window produce an
// empty result, not an error.
func (d *AnomalyDetector) Detect(data []float64) []Detected {
	if len(data) < d.windowSize+1 {
		return nil
	}

	var anomalies []Detected

	for i := d.windowSize; i < len(data); i++ {
		window := data[i-d.windowSize : i]

		var sum float64
		for _, v := range window {
			sum += v
		}
		mean := sum / float64(len(window))

		var variance float64
		for _, v := range window {
			variance += (v - mean) * (v - mean)
		}
		variance /= float64(len(window))
		stdDev := math.Sqrt(variance)

		if stdDev < minStdDev {
			continue
		}

		zScore := (data[i] - mean) / stdDev
		if math.Abs(zScore) <= d.threshold {
			continue
		}

		deviation := data[i] - mean
		deviationPct := 0.0
		if math.Abs(mean) > 0.001 {
			deviationPct = deviation / mean * 100
		}

		anomalies = append(anomalies, Detected{
			Index:        i,
			Value:        data[i],
			Expected:     mean,
			Deviation:    deviation,
			DeviationPct: deviationPct,
			Score:        math.Min(math.Abs(zScore)/5.0, 1.0),
			Severity:     classifySeverity(math.Abs(deviationPct)),
		})
	}

	return anomalies
}

// classifySeverity maps an absolute deviation percentage to a severity band
func classifySeverity(deviationPct float64) string {
	switch {
	case deviationPct >= 100:
		return anomaly.SeverityCritical
	case deviationPct >= 50:
		return anomaly.SeverityHigh
	case deviationPct >= 25:
		return anomaly.SeverityMedium
	default:
		return anomaly.SeverityLow
	}
}
