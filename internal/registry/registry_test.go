package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopHandler() *Handler {
	return &Handler{
		Construct: func(_ context.Context, raw any) (any, error) { return raw, nil },
	}
}

func TestRegister(t *testing.T) {
	t.Run("lookup after registration", func(t *testing.T) {
		r := New()
		r.Register("!constant", noopHandler())

		h, ok := r.Handler("!constant")
		require.True(t, ok)
		assert.NotNil(t, h.Construct)

		_, ok = r.Handler("!missing")
		assert.False(t, ok)
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		r := New()
		r.Register("!constant", noopHandler())
		assert.Panics(t, func() { r.Register("!constant", noopHandler()) })
	})

	t.Run("missing constructor panics", func(t *testing.T) {
		r := New()
		assert.Panics(t, func() { r.Register("!broken", &Handler{}) })
	})
}

func TestTags(t *testing.T) {
	r := New()
	r.Register("!table", noopHandler())
	r.Register("!constant", noopHandler())

	assert.Equal(t, []string{"!constant", "!table"}, r.Tags())
}
