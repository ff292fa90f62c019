package metrics

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// WellKey reduces a view sample ID to its well key: the first two
// "-"-separated segments. IDs with fewer segments are their own key.
func WellKey(id string) string {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) < 3 {
		return id
	}
	return parts[0] + "-" + parts[1]
}

// GroupViews collapses per-view rows into per-well rows: predictions are
// averaged over the views of a well, the target of the first view stands in
// for the well (all views of a well share a label). Output rows are sorted
// by well key.
func GroupViews(ids []string, preds, targets [][]float64) (wellIDs []string, wellPreds, wellTargets [][]float64) {
	type group struct {
		sum    []float64
		target []float64
		n      int
	}

	groups := make(map[string]*group)
	for i, id := range ids {
		key := WellKey(id)
		g, ok := groups[key]
		if !ok {
			g = &group{
				sum:    make([]float64, len(preds[i])),
				target: append([]float64(nil), targets[i]...),
			}
			groups[key] = g
		}
		floats.Add(g.sum, preds[i])
		g.n++
	}

	wellIDs = make([]string, 0, len(groups))
	for key := range groups {
		wellIDs = append(wellIDs, key)
	}
	sort.Strings(wellIDs)

	wellPreds = make([][]float64, len(wellIDs))
	wellTargets = make([][]float64, len(wellIDs))
	for i, key := range wellIDs {
		g := groups[key]
		mean := g.sum
		floats.Scale(1/float64(g.n), mean)
		wellPreds[i] = mean
		wellTargets[i] = g.target
	}
	return wellIDs, wellPreds, wellTargets
}
