package ensemble

import (
	"bytes"
	"encoding/gob"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/core/model"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/preprocessing"
)

// boostedEnsemble is what the model needs from a trained ensemble,
// independent of the weak-learner type backing it.
type boostedEnsemble interface {
	Predict(X *mat.Dense) []int
	NumRounds() int
	Classes() int
}

// AdaBoostModel owns one boosted ensemble, selected by a weak-learner tag,
// together with the label mapping and input dimensionality recorded at
// training time. The ensemble lives in a single interface-typed field whose
// concrete type is determined by the tag, so the model can never hold two
// ensembles at once.
//
// A model starts empty; Train or loading from disk populates it. Training a
// populated model drops the previous ensemble first.
type AdaBoostModel struct {
	model.BaseEstimator

	learnerType    WeakLearnerType
	encoder        *preprocessing.LabelEncoder
	dimensionality int
	boost          boostedEnsemble
}

// NewAdaBoostModel creates an empty model configured for the given
// weak-learner type.
func NewAdaBoostModel(learnerType WeakLearnerType) *AdaBoostModel {
	return &AdaBoostModel{learnerType: learnerType}
}

// LearnerType returns the current weak-learner tag. Loading a model replaces
// the tag with the one stored on disk.
func (m *AdaBoostModel) LearnerType() WeakLearnerType {
	return m.learnerType
}

// Dimensionality returns the number of input dimensions recorded at training
// time, or 0 for an empty model.
func (m *AdaBoostModel) Dimensionality() int {
	return m.dimensionality
}

// Mappings returns the label mapping table: entry i is the original label
// for normalized index i.
func (m *AdaBoostModel) Mappings() []int {
	if m.encoder == nil {
		return nil
	}
	return append([]int(nil), m.encoder.Classes...)
}

// NumRounds returns the number of boosting rounds kept by training, or 0 for
// an empty model.
func (m *AdaBoostModel) NumRounds() int {
	if m.boost == nil {
		return 0
	}
	return m.boost.NumRounds()
}

// Train fits a fresh ensemble of the configured type on X. Labels may use
// any non-negative vocabulary; they are normalized internally and the
// mapping is recorded on the model. iterations caps the boosting rounds
// (zero means run until convergence) and tolerance stops training early once
// the change in weighted error between rounds drops below it.
func (m *AdaBoostModel) Train(X *mat.Dense, labels []int, iterations int, tolerance float64) (err error) {
	defer errors.Recover(&err, "AdaBoostModel.Train")

	if iterations < 0 {
		return errors.NewValidationError("iterations", "must be non-negative", iterations)
	}
	if X == nil {
		return errors.NewValueError("AdaBoostModel.Train", "dataset must not be nil")
	}
	dims, points := X.Dims()
	if dims == 0 || points == 0 {
		return errors.Wrap(errors.ErrEmptyData, "AdaBoostModel.Train")
	}
	if len(labels) != points {
		return errors.NewDimensionError("AdaBoostModel.Train", points, len(labels), 1)
	}

	// Release any prior ensemble before building the replacement.
	m.boost = nil
	m.encoder = nil
	m.Reset()

	encoder := preprocessing.NewLabelEncoder()
	normalized, err := encoder.FitTransform(labels)
	if err != nil {
		return err
	}
	numClasses := encoder.NumClasses()

	var boost boostedEnsemble
	switch m.learnerType {
	case DecisionStumpLearner:
		boost, err = TrainAdaBoost(X, normalized, numClasses,
			func() *DecisionStump { return NewDecisionStump(numClasses) },
			iterations, tolerance)
	case PerceptronLearner:
		boost, err = TrainAdaBoost(X, normalized, numClasses,
			func() *Perceptron { return NewPerceptron(numClasses) },
			iterations, tolerance)
	default:
		return errors.NewValidationError("weak_learner", "unknown weak learner type", int(m.learnerType))
	}
	if err != nil {
		return err
	}

	m.boost = boost
	m.encoder = encoder
	m.dimensionality = dims
	m.SetFitted()
	return nil
}

// Classify returns one normalized (0..K-1) prediction per column of X.
// Use RevertLabels to translate predictions back to the training vocabulary.
func (m *AdaBoostModel) Classify(X *mat.Dense) ([]int, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("AdaBoostModel", "Classify")
	}
	if X == nil {
		return nil, errors.NewValueError("AdaBoostModel.Classify", "dataset must not be nil")
	}
	dims, _ := X.Dims()
	if dims != m.dimensionality {
		return nil, errors.NewDimensionError("AdaBoostModel.Classify", m.dimensionality, dims, 0)
	}
	return m.boost.Predict(X), nil
}

// RevertLabels maps normalized predictions back to the original label
// vocabulary through the mapping recorded at training time.
func (m *AdaBoostModel) RevertLabels(normalized []int) ([]int, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("AdaBoostModel", "RevertLabels")
	}
	return m.encoder.InverseTransform(normalized)
}

// modelHeader is the tag-independent part of the serialized model.
type modelHeader struct {
	Mappings       []int
	LearnerType    WeakLearnerType
	Dimensionality int
}

// GobEncode serializes the model: the header first, then the single
// ensemble payload selected by the tag.
func (m *AdaBoostModel) GobEncode() ([]byte, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("AdaBoostModel", "GobEncode")
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	header := modelHeader{
		Mappings:       m.encoder.Classes,
		LearnerType:    m.learnerType,
		Dimensionality: m.dimensionality,
	}
	if err := enc.Encode(header); err != nil {
		return nil, errors.Wrap(err, "AdaBoostModel.GobEncode: header")
	}

	switch m.learnerType {
	case DecisionStumpLearner:
		if err := enc.Encode(m.boost.(*AdaBoost[*DecisionStump])); err != nil {
			return nil, errors.Wrap(err, "AdaBoostModel.GobEncode: stump ensemble")
		}
	case PerceptronLearner:
		if err := enc.Encode(m.boost.(*AdaBoost[*Perceptron])); err != nil {
			return nil, errors.Wrap(err, "AdaBoostModel.GobEncode: perceptron ensemble")
		}
	default:
		return nil, errors.Newf("mlkit: AdaBoostModel.GobEncode: unknown weak learner tag %d", m.learnerType)
	}
	return buf.Bytes(), nil
}

// GobDecode replaces the model's state with the serialized one. Any owned
// ensemble is discarded before decoding, and the stored tag selects which
// ensemble payload is read. An unrecognized tag is an error.
func (m *AdaBoostModel) GobDecode(data []byte) error {
	m.boost = nil
	m.encoder = nil
	m.dimensionality = 0
	m.Reset()

	dec := gob.NewDecoder(bytes.NewReader(data))
	var header modelHeader
	if err := dec.Decode(&header); err != nil {
		return errors.Wrap(err, "AdaBoostModel.GobDecode: header")
	}

	switch header.LearnerType {
	case DecisionStumpLearner:
		var boost AdaBoost[*DecisionStump]
		if err := dec.Decode(&boost); err != nil {
			return errors.Wrap(err, "AdaBoostModel.GobDecode: stump ensemble")
		}
		m.boost = &boost
	case PerceptronLearner:
		var boost AdaBoost[*Perceptron]
		if err := dec.Decode(&boost); err != nil {
			return errors.Wrap(err, "AdaBoostModel.GobDecode: perceptron ensemble")
		}
		m.boost = &boost
	default:
		return errors.Newf("mlkit: AdaBoostModel.GobDecode: unrecognized weak learner tag %d", header.LearnerType)
	}

	m.learnerType = header.LearnerType
	m.encoder = preprocessing.NewLabelEncoderFromClasses(header.Mappings)
	m.dimensionality = header.Dimensionality
	m.SetFitted()
	return nil
}

var (
	_ model.Classifier = (*AdaBoostModel)(nil)
	_ model.Trainer    = (*AdaBoostModel)(nil)
	_ gob.GobEncoder   = (*AdaBoostModel)(nil)
	_ gob.GobDecoder   = (*AdaBoostModel)(nil)
)
