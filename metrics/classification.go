// Package metrics computes evaluation metrics for classifiers.
package metrics

import (
	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// AccuracyScore returns the fraction of predictions matching the true labels.
func AccuracyScore(yTrue, yPred []int) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewValueError("AccuracyScore", "empty label slice")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("AccuracyScore", n, len(yPred), 1)
	}

	var correct int
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ErrorRate returns 1 - accuracy.
func ErrorRate(yTrue, yPred []int) (float64, error) {
	acc, err := AccuracyScore(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// ConfusionMatrix returns a numClasses×numClasses matrix where entry [i][j]
// counts points with true label i predicted as j. Labels must already be
// normalized to 0..numClasses-1.
func ConfusionMatrix(yTrue, yPred []int, numClasses int) ([][]int, error) {
	n := len(yTrue)
	if n == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "empty label slice")
	}
	if len(yPred) != n {
		return nil, errors.NewDimensionError("ConfusionMatrix", n, len(yPred), 1)
	}

	cm := make([][]int, numClasses)
	for i := range cm {
		cm[i] = make([]int, numClasses)
	}
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t < 0 || t >= numClasses || p < 0 || p >= numClasses {
			return nil, errors.Newf("mlkit: ConfusionMatrix: label outside 0..%d at index %d", numClasses-1, i)
		}
		cm[t][p]++
	}
	return cm, nil
}
