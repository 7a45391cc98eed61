package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/mlkit/core/model"
	"github.com/YuminosukeSato/mlkit/dataset"
	"github.com/YuminosukeSato/mlkit/ensemble"
	"github.com/YuminosukeSato/mlkit/metrics"
	"github.com/YuminosukeSato/mlkit/pkg/errors"
	"github.com/YuminosukeSato/mlkit/pkg/log"
)

type adaboostConfig struct {
	trainingFile    string
	labelsFile      string
	inputModelFile  string
	outputModelFile string
	testFile        string
	outputFile      string
	iterations      int
	tolerance       float64
	weakLearner     string
}

func newAdaBoostCommand() *cobra.Command {
	cfg := &adaboostConfig{}
	cmd := &cobra.Command{
		Use:   "adaboost",
		Short: "Train an AdaBoost model or classify with a saved one",
		Long: `Adaboost trains an AdaBoost.MH-style ensemble of weak learners, either
decision stumps or perceptrons, and applies it to a test dataset.

To train, pass a dataset with --training_file. Labels can be given with
--labels_file; without it the last dimension of the training data is taken
as labels. Alternately a saved model can be loaded with --input_model_file.
Once trained or loaded, the model classifies --test_file; predictions go to
--output_file and the model itself can be saved with --output_model_file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdaBoost(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.trainingFile, "training_file", "t", "", "file containing the training set")
	flags.StringVarP(&cfg.labelsFile, "labels_file", "l", "", "file containing labels for the training set")
	flags.StringVarP(&cfg.inputModelFile, "input_model_file", "m", "", "file containing a saved AdaBoost model")
	flags.StringVarP(&cfg.outputModelFile, "output_model_file", "M", "", "file to save the trained model to")
	flags.StringVarP(&cfg.testFile, "test_file", "T", "", "file containing the test set")
	flags.StringVarP(&cfg.outputFile, "output_file", "o", "", "file to save predicted labels to")
	flags.IntVarP(&cfg.iterations, "iterations", "n", 1000, "maximum boosting rounds (0 runs until convergence)")
	flags.Float64VarP(&cfg.tolerance, "tolerance", "e", 1e-10, "tolerance for change in the weighted training error")
	flags.StringVarP(&cfg.weakLearner, "weak_learner", "w", "decision_stump", "weak learner: 'decision_stump' or 'perceptron'")
	return cmd
}

func runAdaBoost(cmd *cobra.Command, cfg *adaboostConfig) error {
	flags := cmd.Flags()
	hasTraining := flags.Changed("training_file")
	hasInputModel := flags.Changed("input_model_file")

	// Configuration is validated before any data is touched.
	if hasTraining && hasInputModel {
		return errors.New("only one of --training_file or --input_model_file may be specified")
	}
	if !hasTraining && !hasInputModel {
		return errors.New("either --training_file or --input_model_file must be specified")
	}
	learnerType, err := ensemble.ParseWeakLearnerType(cfg.weakLearner)
	if err != nil {
		return err
	}
	if cfg.iterations < 0 {
		return errors.NewValidationError("iterations", "must be non-negative", cfg.iterations)
	}

	if !hasTraining {
		if flags.Changed("labels_file") {
			errors.Warn(errors.NewIgnoredOptionWarning("labels_file", "--training_file is not specified"))
		}
		if flags.Changed("tolerance") {
			errors.Warn(errors.NewIgnoredOptionWarning("tolerance", "--training_file is not specified"))
		}
		if flags.Changed("iterations") {
			errors.Warn(errors.NewIgnoredOptionWarning("iterations", "--training_file is not specified"))
		}
	}
	if hasInputModel && flags.Changed("weak_learner") {
		errors.Warn(errors.NewIgnoredOptionWarning("weak_learner", "--input_model_file is specified"))
	}
	if cfg.outputModelFile == "" && cfg.outputFile == "" {
		slog.Warn("neither --output_model_file nor --output_file is specified; no results will be saved")
	}
	if flags.Changed("output_file") && !flags.Changed("test_file") {
		errors.Warn(errors.NewIgnoredOptionWarning("output_file", "--test_file is not specified"))
	}

	var m *ensemble.AdaBoostModel
	if hasTraining {
		m, err = trainAdaBoost(cfg, learnerType)
	} else {
		m = &ensemble.AdaBoostModel{}
		err = model.LoadModel(m, cfg.inputModelFile)
	}
	if err != nil {
		return err
	}

	if flags.Changed("test_file") {
		if err := classifyTestSet(cfg, m); err != nil {
			return err
		}
	}

	if cfg.outputModelFile != "" {
		if err := model.SaveModel(m, cfg.outputModelFile); err != nil {
			return err
		}
	}
	return nil
}

func trainAdaBoost(cfg *adaboostConfig, learnerType ensemble.WeakLearnerType) (*ensemble.AdaBoostModel, error) {
	X, err := dataset.LoadMatrix(cfg.trainingFile)
	if err != nil {
		return nil, err
	}

	var labels []int
	if cfg.labelsFile != "" {
		labels, err = dataset.LoadLabels(cfg.labelsFile)
		if err != nil {
			return nil, err
		}
	} else {
		slog.Info("using the last dimension of the training set as labels")
		X, labels, err = dataset.SplitLastRowLabels(X)
		if err != nil {
			return nil, err
		}
	}

	m := ensemble.NewAdaBoostModel(learnerType)
	start := time.Now()
	if err := m.Train(X, labels, cfg.iterations, cfg.tolerance); err != nil {
		return nil, err
	}

	logAttrs := []any{
		slog.String(log.ModelNameKey, "AdaBoostModel"),
		slog.String("weak_learner", learnerType.String()),
		slog.Int(log.IterationsKey, m.NumRounds()),
		slog.Duration("elapsed", time.Since(start)),
	}
	// Training accuracy is informational only; failures here never abort a
	// run that has already produced a model.
	if preds, err := m.Classify(X); err == nil {
		if reverted, err := m.RevertLabels(preds); err == nil {
			if acc, err := metrics.AccuracyScore(labels, reverted); err == nil {
				logAttrs = append(logAttrs, slog.Float64(log.AccuracyKey, acc))
			}
		}
	}
	slog.Info("training complete", logAttrs...)
	return m, nil
}

func classifyTestSet(cfg *adaboostConfig, m *ensemble.AdaBoostModel) error {
	T, err := dataset.LoadMatrix(cfg.testFile)
	if err != nil {
		return err
	}
	dims, points := T.Dims()
	if dims != m.Dimensionality() {
		return errors.NewDimensionError("adaboost", m.Dimensionality(), dims, 0)
	}

	preds, err := m.Classify(T)
	if err != nil {
		return err
	}
	results, err := m.RevertLabels(preds)
	if err != nil {
		return err
	}
	slog.Info("classified test data",
		slog.Int(log.SamplesKey, points),
		slog.String(log.OperationKey, "classify"))

	if cfg.outputFile != "" {
		return dataset.SaveLabels(cfg.outputFile, results)
	}
	return nil
}
