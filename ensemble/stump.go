package ensemble

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/parallel"
)

// stumpParallelThreshold is the dimension count above which the per-dimension
// threshold search runs on multiple cores.
const stumpParallelThreshold = 16

// DecisionStump is a one-split weak learner: it thresholds a single
// dimension and predicts the weighted-majority class of each side.
// Fields are exported for gob.
type DecisionStump struct {
	NumClasses int
	Dimension  int
	Threshold  float64
	LeftLabel  int // predicted when x[Dimension] <= Threshold
	RightLabel int
}

// NewDecisionStump creates an untrained stump for the given class count.
func NewDecisionStump(numClasses int) *DecisionStump {
	return &DecisionStump{NumClasses: numClasses}
}

// stumpSplit is the best split found for one dimension.
type stumpSplit struct {
	err       float64
	threshold float64
	left      int
	right     int
}

// FitWeighted searches every (dimension, threshold) pair for the split with
// the lowest weighted misclassification. Candidate thresholds are midpoints
// of consecutive distinct values.
func (s *DecisionStump) FitWeighted(X *mat.Dense, labels []int, weights []float64) error {
	if err := validateTrainingInput("DecisionStump.FitWeighted", X, labels, weights, s.NumClasses); err != nil {
		return err
	}
	dims, points := X.Dims()

	totals := make([]float64, s.NumClasses)
	var totalSum float64
	for i, label := range labels {
		totals[label] += weights[i]
		totalSum += weights[i]
	}

	best := make([]stumpSplit, dims)
	parallel.ParallelizeWithThreshold(dims, stumpParallelThreshold, func(start, end int) {
		order := make([]int, points)
		left := make([]float64, s.NumClasses)
		for d := start; d < end; d++ {
			best[d] = bestSplitForDimension(X, d, labels, weights, totals, totalSum, order, left)
		}
	})

	// Sequential reduction keeps tie-breaking deterministic regardless of
	// the parallel schedule.
	choice := best[0]
	s.Dimension = 0
	for d := 1; d < dims; d++ {
		if best[d].err < choice.err {
			choice = best[d]
			s.Dimension = d
		}
	}
	s.Threshold = choice.threshold
	s.LeftLabel = choice.left
	s.RightLabel = choice.right
	return nil
}

// bestSplitForDimension scans one dimension. order and left are scratch
// buffers owned by the calling goroutine.
func bestSplitForDimension(X *mat.Dense, d int, labels []int, weights, totals []float64, totalSum float64, order []int, left []float64) stumpSplit {
	points := len(labels)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return X.At(d, order[a]) < X.At(d, order[b])
	})

	for k := range left {
		left[k] = 0
	}

	// No-split baseline: everything on the right, majority class wins.
	majority, majorityWeight := argmaxWeight(totals)
	best := stumpSplit{
		err:       totalSum - majorityWeight,
		threshold: math.Inf(-1),
		left:      majority,
		right:     majority,
	}

	var leftSum float64
	for i := 0; i < points-1; i++ {
		idx := order[i]
		left[labels[idx]] += weights[idx]
		leftSum += weights[idx]

		v, next := X.At(d, idx), X.At(d, order[i+1])
		if v == next {
			continue
		}

		leftMajority, leftWeight := argmaxWeight(left)
		rightMajority, rightWeight := argmaxWeightDiff(totals, left)
		splitErr := (leftSum - leftWeight) + (totalSum - leftSum - rightWeight)
		if splitErr < best.err {
			best = stumpSplit{
				err:       splitErr,
				threshold: (v + next) / 2,
				left:      leftMajority,
				right:     rightMajority,
			}
		}
	}
	return best
}

// Predict returns one label per column of X.
func (s *DecisionStump) Predict(X *mat.Dense) []int {
	_, points := X.Dims()
	preds := make([]int, points)
	for j := 0; j < points; j++ {
		if X.At(s.Dimension, j) <= s.Threshold {
			preds[j] = s.LeftLabel
		} else {
			preds[j] = s.RightLabel
		}
	}
	return preds
}

func argmaxWeight(w []float64) (int, float64) {
	bestIdx, bestW := 0, w[0]
	for k := 1; k < len(w); k++ {
		if w[k] > bestW {
			bestIdx, bestW = k, w[k]
		}
	}
	return bestIdx, bestW
}

// argmaxWeightDiff is argmaxWeight over totals[k]-left[k] without allocating.
func argmaxWeightDiff(totals, left []float64) (int, float64) {
	bestIdx, bestW := 0, totals[0]-left[0]
	for k := 1; k < len(totals); k++ {
		if d := totals[k] - left[k]; d > bestW {
			bestIdx, bestW = k, d
		}
	}
	return bestIdx, bestW
}

var _ WeakLearner = (*DecisionStump)(nil)
