// Package scigocluster provides K-means clustering for Go,
// designed for backend services and real-time inference applications.
//
// It offers a scikit-learn-like API (Fit, Predict, ClusterCenters) built on
// gonum matrices, with structured errors and logging.
//
// # Features
//
//   - Lloyd's algorithm with a pure, reusable fitting engine
//   - Deterministic results with an explicit random seed
//   - Pluggable initial labels (random, k-means++)
//   - Explicit empty-cluster policy (drop or reseed)
//   - Optional data-parallel distance and centroid computation
//   - Structured errors with stack traces (cockroachdb/errors)
//
// # Installation
//
//	go get github.com/YuminosukeSato/scigo-cluster
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scigo-cluster/sklearn/cluster"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 2, []float64{
//	        0, 0,
//	        0, 1,
//	        10, 10,
//	        10, 11,
//	    })
//
//	    km := cluster.NewKMeans(2, 50, cluster.WithKMeansRandomState(42))
//	    labels, err := km.Fit(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := km.Predict(mat.NewDense(1, 2, []float64{9, 9}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(labels, pred, km.ClusterCenters())
//	}
//
// # Packages
//
//   - sklearn/cluster: KMeans and the Lloyd fitting engine (FitClusters)
//   - metrics: Inertia, SilhouetteScore, AdjustedRandIndex
//   - preprocessing: StandardScaler
//   - datasets: Gaussian blob generation
//   - core/model: Core interfaces and fitted-state bookkeeping
//   - core/parallel: Parallel processing utilities
//   - pkg/errors: Error types and warnings
//   - pkg/log: Logger interface with slog and zerolog backends
//
// # Performance
//
// With WithKMeansParallel(true), datasets with more than 1000 rows are split
// across CPU cores. Parallel and sequential runs produce identical results.
//
// # License
//
// scigo-cluster is released under the MIT License.
package scigocluster
