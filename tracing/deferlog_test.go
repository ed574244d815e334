package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverToError(t *testing.T) {
	run := func(fn func()) (err error) {
		defer RecoverToError(context.Background(), "test", &err)
		fn()
		return nil
	}

	t.Run("panic becomes error", func(t *testing.T) {
		err := run(func() { panic("boom") })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unhandled panic in test: boom")
	})

	t.Run("no panic keeps result", func(t *testing.T) {
		assert.NoError(t, run(func() {}))
	})

	t.Run("error value", func(t *testing.T) {
		err := run(func() { panic(errors.New("bad state")) })
		assert.ErrorContains(t, err, "bad state")
	})
}
