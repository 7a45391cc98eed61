package preprocessing

import (
	"sort"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// LabelEncoder maps an arbitrary non-negative label vocabulary onto the
// contiguous range 0..K-1 and back. The mapping is stable: classes are
// ordered by their original value, so the same vocabulary always produces
// the same encoding regardless of sample order.
type LabelEncoder struct {
	// Classes holds the original label for each normalized index.
	Classes []int

	index map[int]int
}

// NewLabelEncoder creates an empty LabelEncoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{}
}

// NewLabelEncoderFromClasses rebuilds an encoder from a previously recorded
// mapping table, as stored in a serialized model.
func NewLabelEncoderFromClasses(classes []int) *LabelEncoder {
	enc := &LabelEncoder{Classes: append([]int(nil), classes...)}
	enc.buildIndex()
	return enc
}

// Fit records the vocabulary of labels.
func (enc *LabelEncoder) Fit(labels []int) error {
	if len(labels) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "LabelEncoder.Fit")
	}
	seen := make(map[int]struct{}, len(labels))
	classes := make([]int, 0, len(labels))
	for _, label := range labels {
		if label < 0 {
			return errors.NewValueError("LabelEncoder.Fit", "labels must be non-negative")
		}
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			classes = append(classes, label)
		}
	}
	sort.Ints(classes)
	enc.Classes = classes
	enc.buildIndex()
	return nil
}

// Transform maps labels to their normalized 0..K-1 indices. Labels not seen
// during Fit are an error.
func (enc *LabelEncoder) Transform(labels []int) ([]int, error) {
	if enc.index == nil {
		if len(enc.Classes) == 0 {
			return nil, errors.NewNotFittedError("LabelEncoder", "Transform")
		}
		enc.buildIndex()
	}
	out := make([]int, len(labels))
	for i, label := range labels {
		idx, ok := enc.index[label]
		if !ok {
			return nil, errors.NewValueError("LabelEncoder.Transform", "label not seen during Fit")
		}
		out[i] = idx
	}
	return out, nil
}

// FitTransform fits the vocabulary and returns the normalized labels.
func (enc *LabelEncoder) FitTransform(labels []int) ([]int, error) {
	if err := enc.Fit(labels); err != nil {
		return nil, err
	}
	return enc.Transform(labels)
}

// InverseTransform maps normalized indices back to the original vocabulary.
func (enc *LabelEncoder) InverseTransform(normalized []int) ([]int, error) {
	if len(enc.Classes) == 0 {
		return nil, errors.NewNotFittedError("LabelEncoder", "InverseTransform")
	}
	out := make([]int, len(normalized))
	for i, idx := range normalized {
		if idx < 0 || idx >= len(enc.Classes) {
			return nil, errors.Newf("mlkit: LabelEncoder.InverseTransform: index %d outside 0..%d", idx, len(enc.Classes)-1)
		}
		out[i] = enc.Classes[idx]
	}
	return out, nil
}

// NumClasses returns the vocabulary size K.
func (enc *LabelEncoder) NumClasses() int {
	return len(enc.Classes)
}

func (enc *LabelEncoder) buildIndex() {
	enc.index = make(map[int]int, len(enc.Classes))
	for i, class := range enc.Classes {
		enc.index[class] = i
	}
}
