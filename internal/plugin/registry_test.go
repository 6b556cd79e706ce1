package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/hatch/internal/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	t.Run("register and get", func(t *testing.T) {
		require.NoError(t, r.Register(preset.BabelPluginID, generator.Noop))
		gen, ok := r.Get(preset.BabelPluginID)
		assert.True(t, ok)
		assert.NotNil(t, gen)
		assert.True(t, r.Has(preset.BabelPluginID))
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		err := r.Register(preset.BabelPluginID, generator.Noop)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("rejects nil and empty", func(t *testing.T) {
		assert.Error(t, r.Register("x", nil))
		assert.Error(t, r.Register("", generator.Noop))
	})

	t.Run("list is sorted", func(t *testing.T) {
		require.NoError(t, r.Register(preset.CoreServiceID, generator.Noop))
		assert.Equal(t, []string{preset.BabelPluginID, preset.CoreServiceID}, r.List())
		assert.False(t, r.Has(preset.RouterPluginID))
	})
}
