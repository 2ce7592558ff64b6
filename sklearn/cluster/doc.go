// Package cluster はLloydのアルゴリズム（K-means）によるクラスタリングを提供する
//
// 反復エンジン（FitClusters, ComputeCentroids, Distances, AssignLabels）は状態を持たない関数で、
// KMeansはその上に学習済みのクラスタ中心と次元数を保持するラッパーである。
//
//	km := cluster.NewKMeans(4, 50, cluster.WithKMeansRandomState(42))
//	labels, err := km.Fit(X)
//	if err != nil {
//	    return err
//	}
//	pred, err := km.Predict(Xnew)
//
// 初期ラベルの生成はmodel.LabelInitializerで差し替えられる（RandomLabels, PlusPlusLabels）。
package cluster
