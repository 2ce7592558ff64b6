// gonumのmatは形状の不整合をpanicで知らせる。ここの関数はそれをerrorに変換し、
// FitやPredictが呼び出し元をクラッシュさせないようにする。

package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError は回復したpanicを保持する
type PanicError struct {
	Operation  string
	PanicValue interface{}
	StackTrace string
	// Cause はpanic前に関数が既に返そうとしていたエラー
	Cause error
}

func (e *PanicError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("panic in %s: %v (original error: %v)", e.Operation, e.PanicValue, e.Cause)
	}
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

func (e *PanicError) Unwrap() error { return e.Cause }

// String はスタックトレースを含めて返す
func (e *PanicError) String() string {
	return e.Error() + "\n" + e.StackTrace
}

func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		Operation:  operation,
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
	}
}

// Recover はdeferで使い、panicを*errに入れる。
// *errが既にnilでなければCauseとして残す。
//
//	func (km *KMeans) step() (err error) {
//		defer errors.Recover(&err, "KMeans.step")
//		...
//	}
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	pe := NewPanicError(operation, r)
	pe.Cause = *err
	*err = pe
}

// SafeExecute はfnを実行し、panicしたらPanicErrorを返す
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}

// AsPanic はerrの中のPanicErrorを取り出す
func AsPanic(err error) (*PanicError, bool) {
	var pe *PanicError
	if As(err, &pe) {
		return pe, true
	}
	return nil, false
}
