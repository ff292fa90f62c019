package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cellvision/trainctl/internal/errors"
	"github.com/cellvision/trainctl/internal/metrics"
)

// ResultSet holds the per-sample predictions a trainer exports after
// evaluating a split. Rows of Predictions and Targets align with IDs.
type ResultSet struct {
	IDs         []string    `json:"ids"`
	Predictions [][]float64 `json:"predictions"`
	Targets     [][]float64 `json:"targets"`
}

// Validate checks that the rows line up and share one class dimension.
func (r *ResultSet) Validate() error {
	if len(r.Predictions) != len(r.IDs) || len(r.Targets) != len(r.IDs) {
		return errors.ResultsError(
			fmt.Sprintf("row count mismatch: %d ids, %d predictions, %d targets",
				len(r.IDs), len(r.Predictions), len(r.Targets)), nil)
	}
	if len(r.IDs) == 0 {
		return errors.ResultsError("result set is empty", nil)
	}
	classes := len(r.Predictions[0])
	for i := range r.Predictions {
		if len(r.Predictions[i]) != classes || len(r.Targets[i]) != classes {
			return errors.ResultsError(
				fmt.Sprintf("row %d: expected %d classes", i, classes), nil)
		}
	}
	return nil
}

// Classes returns the class dimension of the result set.
func (r *ResultSet) Classes() int {
	if len(r.Predictions) == 0 {
		return 0
	}
	return len(r.Predictions[0])
}

// Load reads and validates a result set from a JSON file.
func Load(path string) (*ResultSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ResultsError("failed to read results file", err)
	}

	var rs ResultSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, errors.ResultsError("failed to parse results file", err)
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Save writes the result set as indented JSON, creating parent
// directories as needed.
func (r *ResultSet) Save(path string) error {
	if err := r.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.ResultsError("failed to create results directory", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.ResultsError("failed to marshal results", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ResultsError("failed to write results file", err)
	}
	return nil
}

// Grouped collapses the per-view rows into per-well rows, averaging
// predictions over the views that share a well key.
func (r *ResultSet) Grouped() *ResultSet {
	ids, preds, targets := metrics.GroupViews(r.IDs, r.Predictions, r.Targets)
	return &ResultSet{IDs: ids, Predictions: preds, Targets: targets}
}
