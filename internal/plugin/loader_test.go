package plugin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/hatch/internal/generator"
	"github.com/simonhull/firebird-suite/hatch/internal/logger"
	"github.com/simonhull/firebird-suite/hatch/internal/preset"
)

func ids(plugins []generator.Plugin) []string {
	out := make([]string, len(plugins))
	for i, p := range plugins {
		out[i] = p.ID
	}
	return out
}

func TestLoader_PinsCoreFirst(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{preset.CoreServiceID, preset.BabelPluginID, preset.ESLintPluginID} {
		require.NoError(t, r.Register(id, generator.Noop))
	}
	l := NewLoader(r, logger.NewSilentLogger())

	plugins := preset.NewPlugins(
		preset.Entry{ID: preset.BabelPluginID},
		preset.Entry{ID: preset.CoreServiceID, Options: preset.Options{"projectName": "x"}},
		preset.Entry{ID: preset.ESLintPluginID, Options: preset.Options{"config": "base"}},
	)

	resolved := l.Resolve(plugins)
	assert.Equal(t, []string{preset.CoreServiceID, preset.BabelPluginID, preset.ESLintPluginID}, ids(resolved))
	assert.Equal(t, preset.Options{"projectName": "x"}, resolved[0].Options)
	assert.Equal(t, preset.Options{"config": "base"}, resolved[2].Options)
	assert.Empty(t, l.Warnings())
}

func TestLoader_MissingGeneratorIsNoop(t *testing.T) {
	var logs bytes.Buffer
	r := NewRegistry()
	require.NoError(t, r.Register(preset.CoreServiceID, generator.Noop))
	l := NewLoader(r, logger.NewLogger(logger.LevelWarn, &logs))

	resolved := l.Resolve(preset.NewPlugins(
		preset.Entry{ID: preset.CoreServiceID},
		preset.Entry{ID: "vue-cli-plugin-unknown"},
	))

	require.Len(t, resolved, 2)
	assert.Equal(t, "vue-cli-plugin-unknown", resolved[1].ID)
	assert.NotNil(t, resolved[1].Generator)

	warnings := l.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "vue-cli-plugin-unknown", warnings[0].ID)
	assert.Contains(t, warnings[0].Error(), "no generator found")
	assert.Contains(t, logs.String(), "plugin=vue-cli-plugin-unknown")
}

func TestLoader_DuplicateIDsKeepFirstPositionLastOptions(t *testing.T) {
	r := NewRegistry()
	l := NewLoader(r, logger.NewSilentLogger())

	var plugins preset.Plugins
	plugins.Set("a", preset.Options{"v": 1})
	plugins.Set("b", nil)
	plugins.Set("a", preset.Options{"v": 2})

	resolved := l.Resolve(plugins)
	assert.Equal(t, []string{"a", "b"}, ids(resolved))
	assert.Equal(t, 2, resolved[0].Options["v"])
}

func TestLoader_Stable(t *testing.T) {
	l := NewLoader(NewRegistry(), logger.NewSilentLogger())
	plugins := preset.NewPlugins(
		preset.Entry{ID: "z"},
		preset.Entry{ID: "y"},
		preset.Entry{ID: preset.CoreServiceID},
		preset.Entry{ID: "x"},
	)
	assert.Equal(t, []string{preset.CoreServiceID, "z", "y", "x"}, ids(l.Resolve(plugins)))
}
