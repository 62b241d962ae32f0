package panicerr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafe(t *testing.T) {
	assert.NoError(t, Safe(func() error { return nil })())

	want := errors.New("boom")
	assert.ErrorIs(t, Safe(func() error { return want })(), want)

	err := Safe(func() error { panic("kaboom") })()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestSafeContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	err := SafeContext(func(ctx context.Context) error {
		if ctx.Value(key{}) != "v" {
			return errors.New("context not passed")
		}
		return nil
	})(ctx)
	assert.NoError(t, err)
}

func TestValue(t *testing.T) {
	v, err := Value(func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = Value(func() (int, error) {
		var m map[string]int
		m["x"] = 1
		return 1, nil
	})
	assert.Error(t, err)
	assert.Zero(t, v)
}
