// Package ensemble implements AdaBoost over interchangeable weak learners
// (decision stumps and perceptrons), plus the serializable model that
// dispatches between them.
package ensemble

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// WeakLearner is the contract AdaBoost requires of its base classifiers.
// Data is column-major: rows are dimensions, columns are points. Labels
// passed to FitWeighted are already normalized to 0..K-1.
type WeakLearner interface {
	// FitWeighted trains the learner on X under the given per-point sample
	// weights. Weights are non-negative and sum to 1.
	FitWeighted(X *mat.Dense, labels []int, weights []float64) error

	// Predict returns one label per column of X.
	Predict(X *mat.Dense) []int
}

// WeakLearnerType tags which weak-learner variant backs an AdaBoostModel.
type WeakLearnerType int

const (
	// DecisionStumpLearner selects single-split decision stumps.
	DecisionStumpLearner WeakLearnerType = iota
	// PerceptronLearner selects multiclass perceptrons.
	PerceptronLearner
)

const (
	weakLearnerNameStump      = "decision_stump"
	weakLearnerNamePerceptron = "perceptron"
)

// String returns the configuration name of the learner type.
func (t WeakLearnerType) String() string {
	switch t {
	case DecisionStumpLearner:
		return weakLearnerNameStump
	case PerceptronLearner:
		return weakLearnerNamePerceptron
	default:
		return "unknown"
	}
}

// ParseWeakLearnerType converts a configuration name into a learner type.
func ParseWeakLearnerType(name string) (WeakLearnerType, error) {
	switch name {
	case weakLearnerNameStump:
		return DecisionStumpLearner, nil
	case weakLearnerNamePerceptron:
		return PerceptronLearner, nil
	default:
		return 0, errors.NewValidationError("weak_learner",
			"must be 'decision_stump' or 'perceptron'", name)
	}
}

// validateTrainingInput checks the shared preconditions of FitWeighted
// implementations.
func validateTrainingInput(op string, X *mat.Dense, labels []int, weights []float64, numClasses int) error {
	if X == nil {
		return errors.NewValueError(op, "dataset must not be nil")
	}
	dims, points := X.Dims()
	if dims == 0 || points == 0 {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	if len(labels) != points {
		return errors.NewDimensionError(op, points, len(labels), 1)
	}
	if len(weights) != points {
		return errors.NewDimensionError(op, points, len(weights), 1)
	}
	for _, label := range labels {
		if label < 0 || label >= numClasses {
			return errors.NewValueError(op, "labels must be normalized to 0..K-1")
		}
	}
	return nil
}
