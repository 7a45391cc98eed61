package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/dataset"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
	"github.com/YuminosukeSato/mlkit/preprocessing"
)

type splitConfig struct {
	inputFile          string
	inputLabelsFile    string
	trainingFile       string
	testFile           string
	trainingLabelsFile string
	testLabelsFile     string
	testRatio          float64
	seed               int64
}

func newSplitCommand() *cobra.Command {
	cfg := &splitConfig{}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a dataset and optional labels into training and test sets",
		Long: `Split takes a dataset and optionally labels and partitions them into a
training set and a test set. Points are randomly reordered before the split;
the fraction of the dataset used as the test set is set with --test_ratio
(default 0.2). The input files are not modified. When --input_labels_file is
given, the labels are split with the same permutation as the data, so
point-to-label correspondence is preserved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.inputFile, "input_file", "i", "", "file containing the data to split")
	flags.StringVarP(&cfg.inputLabelsFile, "input_labels_file", "I", "", "file containing labels aligned with the data")
	flags.StringVarP(&cfg.trainingFile, "training_file", "t", "", "file to save the training data to")
	flags.StringVarP(&cfg.testFile, "test_file", "T", "", "file to save the test data to")
	flags.StringVarP(&cfg.trainingLabelsFile, "training_labels_file", "l", "", "file to save the training labels to")
	flags.StringVarP(&cfg.testLabelsFile, "test_labels_file", "L", "", "file to save the test labels to")
	flags.Float64VarP(&cfg.testRatio, "test_ratio", "r", 0.2, "fraction of the dataset used as the test set")
	flags.Int64VarP(&cfg.seed, "seed", "s", 0, "random seed (0 uses the current time)")
	_ = cmd.MarkFlagRequired("input_file")
	return cmd
}

func runSplit(cmd *cobra.Command, cfg *splitConfig) error {
	flags := cmd.Flags()

	if cfg.trainingFile == "" {
		slog.Warn("--training_file is not specified; no training set will be saved")
	}
	if cfg.testFile == "" {
		slog.Warn("--test_file is not specified; no test set will be saved")
	}

	hasLabels := flags.Changed("input_labels_file")
	if hasLabels {
		if !flags.Changed("training_labels_file") {
			slog.Warn("--training_labels_file is not specified; no training labels will be saved")
		}
		if !flags.Changed("test_labels_file") {
			slog.Warn("--test_labels_file is not specified; no test labels will be saved")
		}
	} else {
		if flags.Changed("training_labels_file") {
			errors.Warn(errors.NewIgnoredOptionWarning("training_labels_file", "--input_labels_file is not specified"))
		}
		if flags.Changed("test_labels_file") {
			errors.Warn(errors.NewIgnoredOptionWarning("test_labels_file", "--input_labels_file is not specified"))
		}
	}

	if !flags.Changed("test_ratio") {
		slog.Warn("--test_ratio not specified; defaulting to 0.2")
	}

	// Ratio and seed are validated before any data is read.
	splitter, err := preprocessing.NewSplitter(cfg.testRatio, cfg.seed)
	if err != nil {
		return err
	}
	slog.Debug("splitter ready",
		slog.Float64("test_ratio", splitter.TestRatio()),
		slog.Int64(log.SeedKey, splitter.Seed()))

	X, err := dataset.LoadMatrix(cfg.inputFile)
	if err != nil {
		return err
	}

	if hasLabels {
		labels, err := dataset.LoadLabels(cfg.inputLabelsFile)
		if err != nil {
			return err
		}
		train, test, trainLabels, testLabels, err := splitter.SplitLabeled(X, labels)
		if err != nil {
			return err
		}
		logSplitSizes(train, test)

		if cfg.trainingFile != "" {
			if err := dataset.SaveMatrix(cfg.trainingFile, train); err != nil {
				return err
			}
		}
		if cfg.testFile != "" {
			if err := dataset.SaveMatrix(cfg.testFile, test); err != nil {
				return err
			}
		}
		if cfg.trainingLabelsFile != "" {
			if err := dataset.SaveLabels(cfg.trainingLabelsFile, trainLabels); err != nil {
				return err
			}
		}
		if cfg.testLabelsFile != "" {
			if err := dataset.SaveLabels(cfg.testLabelsFile, testLabels); err != nil {
				return err
			}
		}
		return nil
	}

	train, test, err := splitter.Split(X)
	if err != nil {
		return err
	}
	logSplitSizes(train, test)

	if cfg.trainingFile != "" {
		if err := dataset.SaveMatrix(cfg.trainingFile, train); err != nil {
			return err
		}
	}
	if cfg.testFile != "" {
		if err := dataset.SaveMatrix(cfg.testFile, test); err != nil {
			return err
		}
	}
	return nil
}

func logSplitSizes(train, test *mat.Dense) {
	slog.Info("training data", slog.Int(log.SamplesKey, numPoints(train)))
	slog.Info("test data", slog.Int(log.SamplesKey, numPoints(test)))
}

func numPoints(X *mat.Dense) int {
	if X == nil {
		return 0
	}
	_, points := X.Dims()
	return points
}
