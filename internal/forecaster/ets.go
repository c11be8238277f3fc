// Package forecaster fits exponential-smoothing models to daily spend
// series and produces point predictions with interval bounds.
package forecaster

import (
	"math"

	"github.com/pratik-mahalle/cloudspend/internal/pkg/errors"
)

// MinObservations is the minimum series length a model can be fit on
const MinObservations = 7

// ModelVersion identifies the fitting procedure stored with each forecast
const ModelVersion = "ets-go-1.0"

// z-value for the 95% interval produced alongside point predictions
const intervalZ = 1.96

// Result holds horizon-length prediction arrays and a confidence score
type Result struct {
	Predicted  []float64
	Lower      []float64
	Upper      []float64
	Confidence float64
}

// model is a fitted Holt linear-trend smoothing state. beta = 0 degrades to
// simple exponential smoothing.
type model struct {
	alpha, beta   float64
	level, trend  float64
	residualSigma float64
}

// Generate fits an auto-tuned non-seasonal smoothing model to data and
// predicts horizon future points with a 95% interval. Series shorter than
// MinObservations fail with an InsufficientData error so callers can skip
// the tenant instead of aborting the run.
func Generate(data []float64, horizon int) (*Result, error) {
	if len(data) < MinObservations {
		return nil, errors.InsufficientData("need at least 7 data points for forecasting")
	}
	if horizon <= 0 {
		return nil, errors.BadRequest("forecast horizon must be positive")
	}

	m := fitAuto(data)

	predicted := make([]float64, horizon)
	lower := make([]float64, horizon)
	upper := make([]float64, horizon)

	for h := 0; h < horizon; h++ {
		predicted[h] = m.level + float64(h+1)*m.trend
	}

	if m.residualSigma > 0 {
		for h := 0; h < horizon; h++ {
			// Interval widens with lead time, as residual variance
			// accumulates step over step.
			margin := intervalZ * m.residualSigma * math.Sqrt(float64(h+1))
			lower[h] = predicted[h] - margin
			upper[h] = predicted[h] + margin
		}
	} else {
		// Degenerate fit yields no usable interval; fall back to +/- 15%.
		for h := 0; h < horizon; h++ {
			lower[h] = predicted[h] * 0.85
			upper[h] = predicted[h] * 1.15
		}
	}

	// Confidence grows with sample size only. It is a fixed heuristic, not
	// a function of fit error.
	confidence := math.Min(0.95, 0.5+0.01*float64(len(data)))

	return &Result{
		Predicted:  predicted,
		Lower:      lower,
		Upper:      upper,
		Confidence: confidence,
	}, nil
}

// fitAuto grid-searches smoothing parameters and returns the model with the
// lowest one-step-ahead squared error over the series.
func fitAuto(data []float64) model {
	best := model{}
	bestSSE := math.Inf(1)

	for alpha := 0.05; alpha < 1.0; alpha += 0.05 {
		for beta := 0.0; beta <= 0.5; beta += 0.05 {
			m, sse := fit(data, alpha, beta)
			if sse < bestSSE {
				bestSSE = sse
				best = m
			}
		}
	}

	return best
}

func fit(data []float64, alpha, beta float64) (model, float64) {
	level := data[0]
	trend := 0.0
	if beta > 0 && len(data) > 1 {
		trend = data[1] - data[0]
	}

	var sse float64
	residuals := make([]float64, 0, len(data)-1)

	for t := 1; t < len(data); t++ {
		predicted := level + trend
		err := data[t] - predicted
		sse += err * err
		residuals = append(residuals, err)

		prevLevel := level
		level = alpha*data[t] + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
	}

	var variance float64
	for _, r := range residuals {
		variance += r * r
	}
	if len(residuals) > 0 {
		variance /= float64(len(residuals))
	}

	return model{
		alpha:         alpha,
		beta:          beta,
		level:         level,
		trend:         trend,
		residualSigma: math.Sqrt(variance),
	}, sse
}
