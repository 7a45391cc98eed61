package ensemble

import (
	"gonum.org/v1/gonum/mat"
)

// DefaultPerceptronEpochs bounds the passes a perceptron weak learner makes
// over the training set. A weak learner does not need to fully converge.
const DefaultPerceptronEpochs = 50

// Perceptron is a multiclass perceptron weak learner: one weight vector per
// class plus a bias term, trained with weighted error-driven updates.
// Updates are applied in a fixed point order so training is deterministic.
// Fields are exported for gob.
type Perceptron struct {
	NumClasses int
	Epochs     int
	// Weights has NumClasses rows of dims+1 values; the last entry of each
	// row is the bias.
	Weights [][]float64
}

// NewPerceptron creates an untrained perceptron for the given class count.
func NewPerceptron(numClasses int) *Perceptron {
	return &Perceptron{NumClasses: numClasses, Epochs: DefaultPerceptronEpochs}
}

// FitWeighted trains the perceptron under per-point sample weights. A
// misclassified point pulls the weight vector of its true class toward it
// and pushes the predicted class away, both scaled by the point's weight.
func (p *Perceptron) FitWeighted(X *mat.Dense, labels []int, weights []float64) error {
	if err := validateTrainingInput("Perceptron.FitWeighted", X, labels, weights, p.NumClasses); err != nil {
		return err
	}
	dims, points := X.Dims()

	p.Weights = make([][]float64, p.NumClasses)
	for k := range p.Weights {
		p.Weights[k] = make([]float64, dims+1)
	}

	epochs := p.Epochs
	if epochs <= 0 {
		epochs = DefaultPerceptronEpochs
	}

	for epoch := 0; epoch < epochs; epoch++ {
		mistakes := 0
		for j := 0; j < points; j++ {
			pred := p.classifyColumn(X, j)
			truth := labels[j]
			if pred == truth {
				continue
			}
			mistakes++
			w := weights[j]
			for i := 0; i < dims; i++ {
				v := X.At(i, j)
				p.Weights[truth][i] += w * v
				p.Weights[pred][i] -= w * v
			}
			p.Weights[truth][dims] += w
			p.Weights[pred][dims] -= w
		}
		if mistakes == 0 {
			break
		}
	}
	return nil
}

// Predict returns one label per column of X.
func (p *Perceptron) Predict(X *mat.Dense) []int {
	_, points := X.Dims()
	preds := make([]int, points)
	for j := 0; j < points; j++ {
		preds[j] = p.classifyColumn(X, j)
	}
	return preds
}

// classifyColumn scores column j against every class; ties go to the lower
// class index.
func (p *Perceptron) classifyColumn(X *mat.Dense, j int) int {
	dims, _ := X.Dims()
	best, bestScore := 0, 0.0
	for k := 0; k < p.NumClasses; k++ {
		score := p.Weights[k][dims]
		for i := 0; i < dims; i++ {
			score += p.Weights[k][i] * X.At(i, j)
		}
		if k == 0 || score > bestScore {
			best, bestScore = k, score
		}
	}
	return best
}

var _ WeakLearner = (*Perceptron)(nil)
