package results

import (
	"github.com/montanaflynn/stats"

	"github.com/cellvision/trainctl/internal/errors"
	"github.com/cellvision/trainctl/internal/metrics"
)

// AUCStats describes the spread of the per-class AUC scores.
type AUCStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary aggregates the evaluation metrics of one result set.
type Summary struct {
	Samples     int       `json:"samples"`
	Classes     int       `json:"classes"`
	Accuracy    float64   `json:"accuracy"`
	PerClassAUC []float64 `json:"per_class_auc,omitempty"`
	AUC         AUCStats  `json:"auc"`
}

// Summarize computes accuracy and AUC statistics for a result set. When
// perClass is false the per-class AUC list is dropped from the summary
// but still feeds the aggregate statistics.
func Summarize(rs *ResultSet, perClass bool) (*Summary, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}

	aucs := metrics.PerClassAUC(rs.Predictions, rs.Targets)

	mean, err := stats.Mean(aucs)
	if err != nil {
		return nil, errors.ResultsError("failed to summarize AUC scores", err)
	}
	median, _ := stats.Median(aucs)
	stddev, _ := stats.StandardDeviation(aucs)
	min, _ := stats.Min(aucs)
	max, _ := stats.Max(aucs)

	s := &Summary{
		Samples:  len(rs.IDs),
		Classes:  rs.Classes(),
		Accuracy: metrics.Accuracy(rs.Predictions, rs.Targets),
		AUC: AUCStats{
			Mean:   mean,
			Median: median,
			StdDev: stddev,
			Min:    min,
			Max:    max,
		},
	}
	if perClass {
		s.PerClassAUC = aucs
	}
	return s, nil
}
