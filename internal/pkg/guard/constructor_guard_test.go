package guard_test

import (
	"errors"
	"testing"

	"docflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command not constructed")

	t.Run("constructed guard accepts any error argument", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	type sweepRequest struct {
		guard guard.ConstructorGuard
		tag   string
	}
	errSweepNotConstructed := errors.New("sweepRequest must be created via newSweepRequest")
	newSweepRequest := func(tag string) sweepRequest {
		return sweepRequest{guard: guard.NewConstructorGuard(), tag: tag}
	}

	t.Run("should pass when built by constructor", func(t *testing.T) {
		req := newSweepRequest("nightly")
		require.NoError(t, req.guard.Validate(errSweepNotConstructed))
		assert.Equal(t, "nightly", req.tag)
	})

	t.Run("should fail for struct literal", func(t *testing.T) {
		req := sweepRequest{tag: "nightly"}
		assert.Equal(t, errSweepNotConstructed, req.guard.Validate(errSweepNotConstructed))
	})
}
