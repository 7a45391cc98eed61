package ensemble

import (
	"bytes"
	"encoding/gob"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/model"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// trainingSet returns a small separable two-dimensional problem with a
// sparse label vocabulary.
func trainingSet() (*mat.Dense, []int) {
	X := mat.NewDense(2, 6, []float64{
		0, 1, 0, 5, 6, 5,
		0, 0, 1, 5, 5, 6,
	})
	return X, []int{2, 2, 2, 9, 9, 9}
}

func TestAdaBoostModel_TrainAndClassify(t *testing.T) {
	captureWarnings(t)
	X, labels := trainingSet()

	for _, learnerType := range []WeakLearnerType{DecisionStumpLearner, PerceptronLearner} {
		t.Run(learnerType.String(), func(t *testing.T) {
			m := NewAdaBoostModel(learnerType)
			require.NoError(t, m.Train(X, labels, 50, 1e-10))

			assert.True(t, m.IsFitted())
			assert.Equal(t, 2, m.Dimensionality())
			assert.Equal(t, []int{2, 9}, m.Mappings())
			assert.Greater(t, m.NumRounds(), 0)

			preds, err := m.Classify(X)
			require.NoError(t, err)
			assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, preds, "predictions are normalized")

			reverted, err := m.RevertLabels(preds)
			require.NoError(t, err)
			assert.Equal(t, labels, reverted)
		})
	}
}

func TestAdaBoostModel_SparseMulticlassRevert(t *testing.T) {
	captureWarnings(t)

	X := mat.NewDense(1, 6, []float64{0, 1, 5, 6, 10, 11})
	labels := []int{2, 2, 5, 5, 9, 9}

	m := NewAdaBoostModel(DecisionStumpLearner)
	require.NoError(t, m.Train(X, labels, 3, 0))
	assert.Equal(t, []int{2, 5, 9}, m.Mappings())

	preds, err := m.Classify(X)
	require.NoError(t, err)
	reverted, err := m.RevertLabels(preds)
	require.NoError(t, err)
	assert.Equal(t, labels, reverted)
}

func TestAdaBoostModel_NotFitted(t *testing.T) {
	m := NewAdaBoostModel(DecisionStumpLearner)
	X, _ := trainingSet()

	_, err := m.Classify(X)
	require.Error(t, err)
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(err, &nfErr))

	_, err = m.GobEncode()
	assert.Error(t, err, "an empty model cannot be serialized")
}

func TestAdaBoostModel_DimensionMismatch(t *testing.T) {
	captureWarnings(t)
	X, labels := trainingSet()

	m := NewAdaBoostModel(DecisionStumpLearner)
	require.NoError(t, m.Train(X, labels, 50, 1e-10))

	wrong := mat.NewDense(3, 2, []float64{
		0, 5,
		0, 5,
		0, 5,
	})
	_, err := m.Classify(wrong)
	require.Error(t, err)
	var dErr *errors.DimensionError
	assert.True(t, errors.As(err, &dErr))
}

func TestAdaBoostModel_RetrainReplacesEnsemble(t *testing.T) {
	captureWarnings(t)
	X, labels := trainingSet()

	m := NewAdaBoostModel(DecisionStumpLearner)
	require.NoError(t, m.Train(X, labels, 50, 1e-10))
	require.Equal(t, 2, m.Dimensionality())

	// Retraining on data of a different shape must fully replace the old
	// ensemble, mapping and dimensionality.
	X2 := mat.NewDense(1, 4, []float64{0, 1, 10, 11})
	require.NoError(t, m.Train(X2, []int{0, 0, 1, 1}, 50, 1e-10))
	assert.Equal(t, 1, m.Dimensionality())
	assert.Equal(t, []int{0, 1}, m.Mappings())

	preds, err := m.Classify(X2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, preds)
}

func TestAdaBoostModel_SaveLoadRoundTrip(t *testing.T) {
	captureWarnings(t)
	X, labels := trainingSet()

	for _, learnerType := range []WeakLearnerType{DecisionStumpLearner, PerceptronLearner} {
		t.Run(learnerType.String(), func(t *testing.T) {
			trained := NewAdaBoostModel(learnerType)
			require.NoError(t, trained.Train(X, labels, 50, 1e-10))
			wantPreds, err := trained.Classify(X)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "model.bin")
			require.NoError(t, model.SaveModel(trained, path))

			loaded := &AdaBoostModel{}
			require.NoError(t, model.LoadModel(loaded, path))

			assert.True(t, loaded.IsFitted())
			assert.Equal(t, learnerType, loaded.LearnerType())
			assert.Equal(t, trained.Dimensionality(), loaded.Dimensionality())
			assert.Equal(t, trained.Mappings(), loaded.Mappings())
			assert.Equal(t, trained.NumRounds(), loaded.NumRounds())

			gotPreds, err := loaded.Classify(X)
			require.NoError(t, err)
			assert.Equal(t, wantPreds, gotPreds)

			reverted, err := loaded.RevertLabels(gotPreds)
			require.NoError(t, err)
			assert.Equal(t, labels, reverted)
		})
	}
}

func TestAdaBoostModel_LoadedTagWins(t *testing.T) {
	captureWarnings(t)
	X, labels := trainingSet()

	stump := NewAdaBoostModel(DecisionStumpLearner)
	require.NoError(t, stump.Train(X, labels, 50, 1e-10))
	path := filepath.Join(t.TempDir(), "stump.bin")
	require.NoError(t, model.SaveModel(stump, path))

	// A model that currently holds a perceptron ensemble loads a stump
	// file: the stored tag replaces the in-memory one and classification
	// runs through the stump ensemble.
	m := NewAdaBoostModel(PerceptronLearner)
	require.NoError(t, m.Train(X, labels, 50, 1e-10))
	require.NoError(t, model.LoadModel(m, path))

	assert.Equal(t, DecisionStumpLearner, m.LearnerType())
	wantPreds, err := stump.Classify(X)
	require.NoError(t, err)
	gotPreds, err := m.Classify(X)
	require.NoError(t, err)
	assert.Equal(t, wantPreds, gotPreds)
}

func TestAdaBoostModel_UnknownTagRejected(t *testing.T) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	require.NoError(t, enc.Encode(modelHeader{
		Mappings:       []int{0, 1},
		LearnerType:    WeakLearnerType(42),
		Dimensionality: 2,
	}))

	m := &AdaBoostModel{}
	err := m.GobDecode(buf.Bytes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized weak learner tag")
	assert.False(t, m.IsFitted())
}

func TestAdaBoostModel_NegativeIterations(t *testing.T) {
	X, labels := trainingSet()
	m := NewAdaBoostModel(DecisionStumpLearner)
	err := m.Train(X, labels, -1, 1e-10)
	require.Error(t, err)
	var vErr *errors.ValidationError
	assert.True(t, errors.As(err, &vErr))
}
