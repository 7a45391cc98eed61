package log

// Standard attribute keys for mlkit log records. Using the same keys across
// commands keeps the JSON output filterable.

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "AdaBoostModel".
	ModelNameKey = "model.name"

	// OperationKey names the operation being performed.
	// Standard values: "train", "classify", "split", "load", "save"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of points (columns) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of dimensions (rows) in the dataset.
	FeaturesKey = "data.features"

	// ClassesKey is the number of distinct class labels.
	ClassesKey = "data.classes"

	// PathKey is the file a dataset or model was read from or written to.
	PathKey = "data.path"
)

// Training parameters and outcomes.
const (
	// IterationsKey is the number of boosting rounds run.
	IterationsKey = "train.iterations"

	// SeedKey is the random seed in effect for an operation.
	SeedKey = "train.seed"

	// AccuracyKey is a classification accuracy in [0, 1].
	AccuracyKey = "train.accuracy"
)
