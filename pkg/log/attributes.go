// Package log defines standard attribute keys for clustering operations.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so that logs from Fit and Predict can be filtered and
// aggregated consistently.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model.
	// Examples: "KMeans"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_predict"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	// Important for debugging dimension mismatches at predict time.
	FeaturesKey = "data.features"
)

// Training progress and results
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// IterationKey records the current Lloyd iteration.
	IterationKey = "training.iteration"

	// MaxIterKey records the iteration budget.
	MaxIterKey = "training.max_iter"

	// InertiaKey records the within-cluster sum of squared distances.
	InertiaKey = "metrics.inertia"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Clustering
const (
	// ClusterCountKey is the configured number of clusters.
	ClusterCountKey = "cluster.count"

	// ActiveClustersKey is the number of centroid rows after an update step.
	// It can be lower than ClusterCountKey when empty clusters are dropped.
	ActiveClustersKey = "cluster.active"

	// ChangedLabelsKey is the number of rows whose label changed in an iteration.
	ChangedLabelsKey = "cluster.changed"

	// ConvergedKey reports whether the label assignment reached a fixed point.
	ConvergedKey = "cluster.converged"

	// EmptyClusterPolicyKey names the policy applied to clusters without members.
	EmptyClusterPolicyKey = "cluster.empty_policy"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit        = "fit"
	OperationPredict    = "predict"
	OperationTransform  = "transform"
	OperationFitPredict = "fit_predict"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorShapeMismatch     = "SHAPE_MISMATCH"
	ErrorInvalidParameter  = "INVALID_PARAMETER"
	ErrorEmptyData         = "EMPTY_DATA"
)
