package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeep(t *testing.T) {
	tests := []struct {
		name string
		dst  map[string]any
		src  map[string]any
		want map[string]any
	}{
		{
			name: "disjoint keys form a union",
			dst:  map[string]any{"name": "app"},
			src:  map[string]any{"scripts": map[string]any{"serve": "vue-cli-service serve"}},
			want: map[string]any{
				"name":    "app",
				"scripts": map[string]any{"serve": "vue-cli-service serve"},
			},
		},
		{
			name: "nested objects merge recursively",
			dst:  map[string]any{"scripts": map[string]any{"serve": "a"}},
			src:  map[string]any{"scripts": map[string]any{"lint": "b"}},
			want: map[string]any{"scripts": map[string]any{"serve": "a", "lint": "b"}},
		},
		{
			name: "later scalar wins",
			dst:  map[string]any{"version": "0.1.0"},
			src:  map[string]any{"version": "1.0.0"},
			want: map[string]any{"version": "1.0.0"},
		},
		{
			name: "arrays are replaced, not concatenated",
			dst:  map[string]any{"lintOn": []any{"save"}},
			src:  map[string]any{"lintOn": []any{"commit"}},
			want: map[string]any{"lintOn": []any{"commit"}},
		},
		{
			name: "object replaces scalar",
			dst:  map[string]any{"babel": "babel.config.js"},
			src:  map[string]any{"babel": map[string]any{"presets": []any{"x"}}},
			want: map[string]any{"babel": map[string]any{"presets": []any{"x"}}},
		},
		{
			name: "string maps merge with generic maps",
			dst:  map[string]any{"devDependencies": map[string]string{"a": "latest"}},
			src:  map[string]any{"devDependencies": map[string]any{"b": "^1.0.0"}},
			want: map[string]any{"devDependencies": map[string]any{"a": "latest", "b": "^1.0.0"}},
		},
		{
			name: "nil destination is allocated",
			dst:  nil,
			src:  map[string]any{"private": true},
			want: map[string]any{"private": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deep(tt.dst, tt.src)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeep_DoesNotAliasSource(t *testing.T) {
	src := map[string]any{"eslintConfig": map[string]any{"extends": []any{"eslint:recommended"}}}
	dst := Deep(nil, src)

	dst["eslintConfig"].(map[string]any)["extends"].([]any)[0] = "changed"

	got := src["eslintConfig"].(map[string]any)["extends"].([]any)[0]
	assert.Equal(t, "eslint:recommended", got)
}

func TestClone(t *testing.T) {
	original := map[string]any{
		"config": "base",
		"lintOn": []string{"save"},
		"nested": map[string]any{"list": []any{1, 2}},
	}

	cloned := CloneMap(original)
	require.Equal(t, original, cloned)

	cloned["lintOn"].([]string)[0] = "commit"
	cloned["nested"].(map[string]any)["list"].([]any)[0] = 99

	assert.Equal(t, []string{"save"}, original["lintOn"])
	assert.Equal(t, []any{1, 2}, original["nested"].(map[string]any)["list"])
	assert.Nil(t, CloneMap(nil))
}

type options map[string]any

type labels map[string]string

func TestDeep_NamedMaps(t *testing.T) {
	t.Run("named map merges into existing object", func(t *testing.T) {
		dst := Deep(nil, map[string]any{"vue": options{"lintOnSave": false}})
		dst = Deep(dst, map[string]any{"vue": map[string]any{"publicPath": "/"}})

		assert.Equal(t, map[string]any{
			"vue": map[string]any{"lintOnSave": false, "publicPath": "/"},
		}, dst)
	})

	t.Run("existing object absorbs named map", func(t *testing.T) {
		dst := map[string]any{"vue": map[string]any{"publicPath": "/"}}
		dst = Deep(dst, map[string]any{"vue": labels{"outputDir": "dist"}})

		assert.Equal(t, map[string]any{
			"vue": map[string]any{"publicPath": "/", "outputDir": "dist"},
		}, dst)
	})

	t.Run("named map is copied not aliased", func(t *testing.T) {
		cfg := options{"a": 1}
		dst := Deep(nil, map[string]any{"cfg": cfg})

		cfg["a"] = 99

		assert.Equal(t, map[string]any{"cfg": map[string]any{"a": 1}}, dst)
	})
}

func TestClone_NamedTypes(t *testing.T) {
	type ids []string

	original := options{"plugins": ids{"babel"}, "nested": labels{"k": "v"}}
	cloned, ok := Clone(original).(map[string]any)
	require.True(t, ok)

	cloned["plugins"].([]any)[0] = "eslint"
	cloned["nested"].(map[string]any)["k"] = "changed"

	assert.Equal(t, ids{"babel"}, original["plugins"])
	assert.Equal(t, labels{"k": "v"}, original["nested"])
	assert.Nil(t, Clone(nil))
}
