package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPerceptron_SeparableBinary(t *testing.T) {
	X := mat.NewDense(2, 6, []float64{
		0, 1, 0, 5, 6, 5,
		0, 0, 1, 5, 5, 6,
	})
	labels := []int{0, 0, 0, 1, 1, 1}

	p := NewPerceptron(2)
	require.NoError(t, p.FitWeighted(X, labels, uniformWeights(6)))
	assert.Equal(t, labels, p.Predict(X))
}

func TestPerceptron_SeparableMulticlass(t *testing.T) {
	// Three well-separated clusters.
	X := mat.NewDense(2, 9, []float64{
		0, 1, 0, 20, 21, 20, 0, 1, 0,
		0, 0, 1, 0, 0, 1, 20, 20, 21,
	})
	labels := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}

	p := NewPerceptron(3)
	require.NoError(t, p.FitWeighted(X, labels, uniformWeights(9)))
	assert.Equal(t, labels, p.Predict(X))
}

func TestPerceptron_ZeroWeightPointIgnored(t *testing.T) {
	// The mislabeled middle point carries no weight, so it cannot perturb
	// the decision boundary learned from the other four points.
	X := mat.NewDense(1, 5, []float64{0, 1, 0.5, 10, 11})
	labels := []int{0, 0, 1, 1, 1}
	weights := []float64{0.25, 0.25, 0, 0.25, 0.25}

	p := NewPerceptron(2)
	require.NoError(t, p.FitWeighted(X, labels, weights))

	preds := p.Predict(X)
	assert.Equal(t, 0, preds[0])
	assert.Equal(t, 0, preds[1])
	assert.Equal(t, 1, preds[3])
	assert.Equal(t, 1, preds[4])
}

func TestPerceptron_Deterministic(t *testing.T) {
	X := mat.NewDense(2, 6, []float64{
		0, 1, 0, 5, 6, 5,
		0, 0, 1, 5, 5, 6,
	})
	labels := []int{0, 0, 0, 1, 1, 1}

	a := NewPerceptron(2)
	require.NoError(t, a.FitWeighted(X, labels, uniformWeights(6)))
	b := NewPerceptron(2)
	require.NoError(t, b.FitWeighted(X, labels, uniformWeights(6)))
	assert.Equal(t, a.Weights, b.Weights)
}

func TestPerceptron_InvalidInput(t *testing.T) {
	X := mat.NewDense(1, 2, []float64{0, 1})

	p := NewPerceptron(2)
	assert.Error(t, p.FitWeighted(nil, []int{0, 1}, uniformWeights(2)))
	assert.Error(t, p.FitWeighted(X, []int{0, 1, 0}, uniformWeights(2)))
	assert.Error(t, p.FitWeighted(X, []int{0, 5}, uniformWeights(2)))
}
