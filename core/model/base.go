// Package model provides the shared plumbing estimators are built on:
// fitted-state tracking and gob persistence of trained models.
package model

// EstimatorState tracks whether a model has been trained.
type EstimatorState int

const (
	// NotFitted is the state of a freshly constructed model.
	NotFitted EstimatorState = iota
	// Fitted means the model has been trained or loaded from disk.
	Fitted
)

// BaseEstimator is embedded by every trainable model.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been trained.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as trained.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to the untrained state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
