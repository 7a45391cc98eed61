// Package preprocessing prepares datasets for training: train/test splitting
// and label encoding.
package preprocessing

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// Splitter partitions a dataset into train and test subsets by a ratio.
//
// Columns are points. Each call draws one uniform permutation of the column
// indices; the first N-testCount permuted columns form the training set and
// the remaining testCount form the test set, where testCount =
// round(ratio*N). When labels are supplied the same permutation is applied
// to them, so point-to-label correspondence is preserved. Subset order is
// permutation order, not sorted, and the input is never modified.
//
// The Splitter owns its RNG. Two Splitters built with the same nonzero seed
// produce identical partitions.
type Splitter struct {
	testRatio float64
	seed      int64
	rng       *rand.Rand
}

// NewSplitter validates testRatio and creates a Splitter. A zero seed is
// replaced by the current time, so runs are reproducible exactly when a
// nonzero seed is supplied.
func NewSplitter(testRatio float64, seed int64) (*Splitter, error) {
	if testRatio < 0.0 || testRatio > 1.0 {
		return nil, errors.NewValidationError("test_ratio", "must be between 0.0 and 1.0", testRatio)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Splitter{
		testRatio: testRatio,
		seed:      seed,
		rng:       rand.New(rand.NewSource(seed)),
	}, nil
}

// TestRatio returns the configured test ratio.
func (s *Splitter) TestRatio() float64 { return s.testRatio }

// Seed returns the seed in effect, after any zero-seed substitution.
func (s *Splitter) Seed() int64 { return s.seed }

// Split partitions X into train and test subsets. An empty subset is
// returned as a nil matrix.
func (s *Splitter) Split(X *mat.Dense) (train, test *mat.Dense, err error) {
	train, test, _, _, err = s.split(X, nil)
	return train, test, err
}

// SplitLabeled partitions X and its aligned labels with one shared
// permutation.
func (s *Splitter) SplitLabeled(X *mat.Dense, labels []int) (train, test *mat.Dense, trainLabels, testLabels []int, err error) {
	if labels == nil {
		return nil, nil, nil, nil, errors.NewValueError("Splitter.SplitLabeled", "labels must not be nil")
	}
	return s.split(X, labels)
}

func (s *Splitter) split(X *mat.Dense, labels []int) (*mat.Dense, *mat.Dense, []int, []int, error) {
	if X == nil {
		return nil, nil, nil, nil, errors.NewValueError("Splitter.Split", "dataset must not be nil")
	}
	dims, points := X.Dims()
	if dims == 0 || points == 0 {
		return nil, nil, nil, nil, errors.Wrap(errors.ErrEmptyData, "Splitter.Split")
	}
	if labels != nil && len(labels) != points {
		return nil, nil, nil, nil, errors.NewDimensionError("Splitter.Split", points, len(labels), 1)
	}

	testCount := int(math.Round(s.testRatio * float64(points)))
	trainCount := points - testCount

	perm := s.rng.Perm(points)
	trainIdx := perm[:trainCount]
	testIdx := perm[trainCount:]

	train := subsetColumns(X, trainIdx)
	test := subsetColumns(X, testIdx)
	if labels == nil {
		return train, test, nil, nil, nil
	}

	trainLabels := subsetLabels(labels, trainIdx)
	testLabels := subsetLabels(labels, testIdx)
	return train, test, trainLabels, testLabels, nil
}

// subsetColumns copies the selected columns of X, in the given order, into a
// fresh matrix. gonum forbids zero-sized matrices, so an empty selection
// yields nil.
func subsetColumns(X *mat.Dense, indices []int) *mat.Dense {
	if len(indices) == 0 {
		return nil
	}
	dims, _ := X.Dims()
	out := mat.NewDense(dims, len(indices), nil)
	col := make([]float64, dims)
	for j, idx := range indices {
		mat.Col(col, idx, X)
		out.SetCol(j, col)
	}
	return out
}

func subsetLabels(labels []int, indices []int) []int {
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[i] = labels[idx]
	}
	return out
}
