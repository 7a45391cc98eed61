package ensemble

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// epsFloor keeps the coefficient of a perfect weak learner finite.
const epsFloor = 1e-10

// AdaBoost is a trained SAMME-style boosted ensemble over weak learners of
// type W. Fields are exported for gob.
type AdaBoost[W WeakLearner] struct {
	Learners   []W
	Alphas     []float64
	NumClasses int
	// Converged records whether training stopped because the change in
	// weighted error fell below the tolerance (or a perfect learner was
	// found) rather than by exhausting the round limit.
	Converged bool
}

// TrainAdaBoost runs boosting for up to maxIterations rounds; zero means run
// until convergence. Each round trains a fresh learner from newLearner on
// the current sample weights, then multiplies the weights of misclassified
// points by e^alpha, alpha = log((1-eps)/eps) + log(K-1). Training stops
// early when the change in weighted error between rounds drops below
// tolerance, when a round is perfect, or when a learner is no better than
// chance. Labels must be normalized to 0..numClasses-1.
func TrainAdaBoost[W WeakLearner](X *mat.Dense, labels []int, numClasses int, newLearner func() W, maxIterations int, tolerance float64) (*AdaBoost[W], error) {
	const op = "AdaBoost.Train"
	if maxIterations < 0 {
		return nil, errors.NewValidationError("iterations", "must be non-negative", maxIterations)
	}
	if numClasses < 2 {
		return nil, errors.NewValueError(op, "need at least two classes")
	}
	if X == nil {
		return nil, errors.NewValueError(op, "dataset must not be nil")
	}
	_, points := X.Dims()
	if points == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, op)
	}
	if len(labels) != points {
		return nil, errors.NewDimensionError(op, points, len(labels), 1)
	}

	boost := &AdaBoost[W]{NumClasses: numClasses}

	weights := make([]float64, points)
	for i := range weights {
		weights[i] = 1.0 / float64(points)
	}

	chanceErr := 1.0 - 1.0/float64(numClasses)
	prevEps := math.Inf(1)

	for round := 0; maxIterations == 0 || round < maxIterations; round++ {
		learner := newLearner()
		if err := learner.FitWeighted(X, labels, weights); err != nil {
			return nil, err
		}
		preds := learner.Predict(X)

		var eps float64
		for i := range preds {
			if preds[i] != labels[i] {
				eps += weights[i]
			}
		}

		if eps >= chanceErr {
			// No better than chance; boosting cannot improve further.
			break
		}

		if eps < epsFloor {
			// A perfect learner dominates the vote; keep it and stop.
			alpha := math.Log((1-epsFloor)/epsFloor) + math.Log(float64(numClasses)-1)
			boost.Learners = append(boost.Learners, learner)
			boost.Alphas = append(boost.Alphas, alpha)
			boost.Converged = true
			break
		}

		alpha := math.Log((1-eps)/eps) + math.Log(float64(numClasses)-1)
		boost.Learners = append(boost.Learners, learner)
		boost.Alphas = append(boost.Alphas, alpha)

		scale := math.Exp(alpha)
		var sum float64
		for i := range weights {
			if preds[i] != labels[i] {
				weights[i] *= scale
			}
			sum += weights[i]
		}
		for i := range weights {
			weights[i] /= sum
		}

		if math.Abs(prevEps-eps) < tolerance {
			boost.Converged = true
			break
		}
		prevEps = eps
	}

	if len(boost.Learners) == 0 {
		return nil, errors.NewModelError(op, "no weak learner performed better than chance", nil)
	}
	if !boost.Converged && maxIterations > 0 {
		errors.Warn(errors.NewConvergenceWarning("AdaBoost", maxIterations, ""))
	}
	return boost, nil
}

// Predict returns one label per column of X: the class with the highest
// coefficient-weighted vote across the ensemble.
func (a *AdaBoost[W]) Predict(X *mat.Dense) []int {
	_, points := X.Dims()
	scores := make([]float64, points*a.NumClasses)
	for i, learner := range a.Learners {
		preds := learner.Predict(X)
		for j, pred := range preds {
			scores[j*a.NumClasses+pred] += a.Alphas[i]
		}
	}

	out := make([]int, points)
	for j := 0; j < points; j++ {
		row := scores[j*a.NumClasses : (j+1)*a.NumClasses]
		best := 0
		for k := 1; k < a.NumClasses; k++ {
			if row[k] > row[best] {
				best = k
			}
		}
		out[j] = best
	}
	return out
}

// NumRounds returns the number of weak learners kept by training.
func (a *AdaBoost[W]) NumRounds() int {
	return len(a.Learners)
}

// Classes returns the class count the ensemble was trained with.
func (a *AdaBoost[W]) Classes() int {
	return a.NumClasses
}
