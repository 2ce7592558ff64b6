package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		panic("test panic message")
	}

	err := testFunc()
	require.Error(t, err)

	panicErr, ok := AsPanic(err)
	require.True(t, ok)
	assert.Equal(t, "TestOperation", panicErr.Operation)
	assert.Equal(t, "test panic message", panicErr.PanicValue)
	assert.NotEmpty(t, panicErr.StackTrace)
	assert.Equal(t, "panic in TestOperation: test panic message", panicErr.Error())
}

func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		return nil
	}

	assert.NoError(t, testFunc())
}

func TestRecover_WithExistingError(t *testing.T) {
	originalErr := fmt.Errorf("original error")

	testFunc := func() (err error) {
		defer Recover(&err, "TestOperation")
		err = originalErr
		panic("panic after error")
	}

	err := testFunc()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in TestOperation")
	assert.ErrorIs(t, err, originalErr)
}

func TestSafeExecute(t *testing.T) {
	err := SafeExecute("ok", func() error { return nil })
	assert.NoError(t, err)

	sentinel := New("boom")
	err = SafeExecute("returns error", func() error { return sentinel })
	assert.True(t, Is(err, sentinel))

	err = SafeExecute("panics", func() error {
		var s []int
		_ = s[3]
		return nil
	})
	_, ok := AsPanic(err)
	assert.True(t, ok)
}

func TestAsPanic_NotPanic(t *testing.T) {
	_, ok := AsPanic(New("plain"))
	assert.False(t, ok)
}
