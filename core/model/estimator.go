package model

import "gonum.org/v1/gonum/mat"

// Classifier is the interface of a trained multiclass classifier over
// column-major data (rows are dimensions, columns are points).
type Classifier interface {
	// Classify returns one predicted label per column of X.
	Classify(X *mat.Dense) ([]int, error)
}

// Trainer is the interface of a model trained from a labeled dataset.
type Trainer interface {
	// Train fits the model on X with one label per column.
	Train(X *mat.Dense, labels []int, iterations int, tolerance float64) error
}
