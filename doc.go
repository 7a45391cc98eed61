// Package mlkit provides a small machine-learning toolkit for Go: dataset
// splitting and AdaBoost classification over interchangeable weak learners,
// usable both as a library and through the mlkit command.
//
// # Quick Start
//
// Training an AdaBoost classifier:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/mlkit/ensemble"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // Columns are points, rows are dimensions.
//	    X := mat.NewDense(1, 6, []float64{0, 1, 2, 10, 11, 12})
//	    labels := []int{0, 0, 0, 1, 1, 1}
//
//	    model := ensemble.NewAdaBoostModel(ensemble.DecisionStumpLearner)
//	    if err := model.Train(X, labels, 100, 1e-10); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    preds, err := model.Classify(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predictions:", preds)
//	}
//
// # Packages
//
//   - preprocessing: train/test splitting and label encoding
//   - ensemble: AdaBoost over decision stumps and perceptrons
//   - dataset: CSV dataset and label file I/O
//   - metrics: classification metrics
//   - core/model: estimator base types and gob persistence
//   - core/parallel: parallel processing utilities
//
// # Command Line
//
// The mlkit command wraps the library:
//
//	mlkit split -i data.csv -t train.csv -T test.csv -r 0.2
//	mlkit adaboost -t train.csv -l labels.csv -M model.bin
//	mlkit adaboost -m model.bin -T test.csv -o predictions.csv
package mlkit
