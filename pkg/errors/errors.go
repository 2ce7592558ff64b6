// Package errors はクラスタリングで使うエラー型と警告の通知先をまとめる。
// エラーはcockroachdb/errorsでスタックトレースを持ち、zerologに構造化して埋め込める。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

const prefix = "cluster"

// 警告の通知先。zerologWarnFuncが設定されていればそちらを優先する
var (
	warningMutex    sync.Mutex
	warningHandler  = defaultWarningHandler
	zerologWarnFunc func(warning error)
)

func defaultWarningHandler(w error) {
	log.Printf("%s warning: %v\n", prefix, w)
}

// SetWarningHandler はConvergenceWarningとEmptyClusterWarningの通知先を差し替える。
// nilを渡すと警告は捨てられる。
//
//	errors.SetWarningHandler(func(error) {})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerologへの出力関数を登録する（pkg/logからの循環importを避けるため関数で受け取る）。
// nilで解除。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を通知する。処理は止めない
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	switch {
	case zerologWarnFunc != nil:
		zerologWarnFunc(w)
	case warningHandler != nil:
		warningHandler(w)
	}
}

// ConvergenceWarning はmax_iter回の再割り当てでラベルが固定点に達しなかったことを示す。
// 学習結果はそのまま使える。
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	msg := w.Message
	if msg == "" {
		msg = "labels still changing, increase max_iter"
	}
	return fmt.Sprintf("%s: not converged after %d iterations: %s", w.Algorithm, w.Iterations, msg)
}

func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("type", "ConvergenceWarning").
		Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("detail", w.Message)
}

func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// EmptyClusterWarning はあるイテレーションでクラスタが空になったことを示す。
// Policy は "drop" か "reseed"。
type EmptyClusterWarning struct {
	Cluster   int
	Iteration int
	Policy    string
}

func (w *EmptyClusterWarning) Error() string {
	return fmt.Sprintf("cluster %d empty at iteration %d, applied %s", w.Cluster, w.Iteration, w.Policy)
}

func (w *EmptyClusterWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("type", "EmptyClusterWarning").
		Int("cluster", w.Cluster).
		Int("iteration", w.Iteration).
		Str("policy", w.Policy)
}

func NewEmptyClusterWarning(cluster, iteration int, policy string) *EmptyClusterWarning {
	return &EmptyClusterWarning{Cluster: cluster, Iteration: iteration, Policy: policy}
}

// ShapeMismatchError は中心行列や距離行列を組み立てる途中で行数・列数が食い違ったときのエラー。
// 正しい入力では起きない。Expected/Gotは分かる範囲で埋める（gonumのpanic由来ならnil）。
type ShapeMismatchError struct {
	Op       string
	Expected []int
	Got      []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s: inconsistent matrix shape, want %v, have %v", prefix, e.Op, e.Expected, e.Got)
}

func (e *ShapeMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "ShapeMismatchError").
		Str("operation", e.Op).
		Ints("expected", e.Expected).
		Ints("got", e.Got)
}

// NewShapeMismatchError はスタックトレース付きのShapeMismatchErrorを返す
func NewShapeMismatchError(op string, expected, got []int) error {
	return errors.WithStack(&ShapeMismatchError{Op: op, Expected: expected, Got: got})
}

// DimensionMismatchError は推論入力の列数が学習時の次元と違うときのエラー。
// Gotが入力の列数。未学習のモデルではExpectedは0。
type DimensionMismatchError struct {
	Op       string
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: %s: dimension mismatch, model has %d features, input has %d", prefix, e.Op, e.Expected, e.Got)
}

func (e *DimensionMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "DimensionMismatchError").
		Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got)
}

// NewDimensionMismatchError はスタックトレース付きのDimensionMismatchErrorを返す
func NewDimensionMismatchError(op string, expected, got int) error {
	return errors.WithStack(&DimensionMismatchError{Op: op, Expected: expected, Got: got})
}

// NotFittedError は学習結果が必要なメソッドをFit前に呼んだときのエラー
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: %s.%s called before Fit", prefix, e.ModelName, e.Method)
}

func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "NotFittedError").
		Str("model_name", e.ModelName).
		Str("method", e.Method)
}

func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// ValidationError はハイパーパラメータ・設定・初期ラベルの検証エラー
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s (got %v)", prefix, e.ParamName, e.Reason, e.Value)
}

func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "ValidationError").
		Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value)
}

func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// cockroachdb/errorsの関数をそのまま公開する。呼び出し側はこのパッケージだけをimportすればよい
var (
	Is        = errors.Is
	As        = errors.As
	New       = errors.New
	Newf      = errors.Newf
	Wrap      = errors.Wrap
	Wrapf     = errors.Wrapf
	WithStack = errors.WithStack
)

// ErrEmptyData は行数または列数が0の入力を表す
var ErrEmptyData = New("empty data")
