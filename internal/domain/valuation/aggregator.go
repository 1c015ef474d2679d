package valuation

import (
	"gonum.org/v1/gonum/stat"
)

// Baseline is the aggregated pre-modifier valuation.
type Baseline struct {
	AAV        float64            `json:"aav"`
	Confidence float64            `json:"confidence"`
	Weights    map[string]float64 `json:"weights"`
}

// Aggregator blends factor results by confidence.
type Aggregator struct{}

// Aggregate returns the confidence-weighted mean of the raw values. Combined
// confidence is the plain mean of the component confidences. When every
// confidence is zero the raw values are averaged unweighted and the combined
// confidence is zero.
func (Aggregator) Aggregate(results []FactorResult) (Baseline, error) {
	if len(results) == 0 {
		return Baseline{}, ErrNoFactors
	}
	values := make([]float64, len(results))
	confidences := make([]float64, len(results))
	var total float64
	for i, r := range results {
		values[i] = r.RawValue
		confidences[i] = r.Confidence
		total += r.Confidence
	}

	weights := make(map[string]float64, len(results))
	if total == 0 {
		for _, r := range results {
			weights[r.Name] += 1 / float64(len(results))
		}
		return Baseline{AAV: stat.Mean(values, nil), Weights: weights}, nil
	}
	for _, r := range results {
		weights[r.Name] += r.Confidence / total
	}
	return Baseline{
		AAV:        stat.Mean(values, confidences),
		Confidence: stat.Mean(confidences, nil),
		Weights:    weights,
	}, nil
}
