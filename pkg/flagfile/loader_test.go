package flagfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flagkit/pkg/environment"
	"github.com/dmitrymomot/flagkit/pkg/feature"
	"github.com/dmitrymomot/flagkit/pkg/flagfile"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "flags.json", `{
		"features": {
			"voice_agent": {
				"enabled": true,
				"environments": {"production": true, "staging": false},
				"user_groups": ["sales", "admin"],
				"rollout_percentage": 50
			},
			"apollo_leads": {
				"enabled": true,
				"environments": {"development": true}
			},
			"linkedin_integration": {
				"enabled": false
			}
		}
	}`)

	reg, err := flagfile.Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, reg.Len())

	t.Run("preserves document order", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"voice_agent", "apollo_leads", "linkedin_integration"}, reg.Names())
	})

	t.Run("decodes all fields", func(t *testing.T) {
		t.Parallel()
		flag, ok := reg.Get("voice_agent")
		require.True(t, ok)
		assert.True(t, flag.Enabled)
		assert.True(t, flag.Environments[environment.Production])
		assert.False(t, flag.Environments[environment.Staging])
		assert.Equal(t, []string{"sales", "admin"}, flag.Groups)
		assert.Equal(t, 50, flag.RolloutPercentage)
	})

	t.Run("absent rollout defaults to 100", func(t *testing.T) {
		t.Parallel()
		flag, ok := reg.Get("apollo_leads")
		require.True(t, ok)
		assert.Equal(t, 100, flag.RolloutPercentage)
	})

	t.Run("feeds the evaluator", func(t *testing.T) {
		t.Parallel()
		eval := feature.New(reg, environment.Development)
		assert.True(t, eval.IsEnabled("apollo_leads", feature.Anonymous))
		assert.False(t, eval.IsEnabled("voice_agent", feature.Anonymous))
		assert.False(t, eval.IsEnabled("linkedin_integration", feature.Anonymous))
	})
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "flags.yaml", `
features:
  new_dashboard:
    enabled: true
    environments:
      staging: true
    user_groups:
      - beta
  old_export:
    enabled: true
    environments:
      staging: true
    rollout_percentage: 0
`)

	reg, err := flagfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"new_dashboard", "old_export"}, reg.Names())

	dashboard, ok := reg.Get("new_dashboard")
	require.True(t, ok)
	assert.Equal(t, []string{"beta"}, dashboard.Groups)
	assert.Equal(t, 100, dashboard.RolloutPercentage)

	export, ok := reg.Get("old_export")
	require.True(t, ok)
	assert.Equal(t, 0, export.RolloutPercentage)
}

func TestLoad_ClampsRollout(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "flags.json", `{
		"features": {
			"over": {"enabled": true, "rollout_percentage": 250},
			"under": {"enabled": true, "rollout_percentage": -10}
		}
	}`)

	reg, err := flagfile.Load(path)
	require.NoError(t, err)

	over, _ := reg.Get("over")
	under, _ := reg.Get("under")
	assert.Equal(t, 100, over.RolloutPercentage)
	assert.Equal(t, 0, under.RolloutPercentage)
}

func TestLoad_IgnoresUnrelatedSections(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "flags.json", `{
		"version": 3,
		"metadata": {"owner": "platform"},
		"features": {
			"only": {"enabled": true}
		}
	}`)

	reg, err := flagfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, reg.Names())
}

func TestLoad_Degraded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.json")
			},
			wantErr: flagfile.ErrReadFile,
		},
		{
			name: "malformed json",
			path: func(t *testing.T) string {
				return writeFile(t, "flags.json", `{"features": {"x": `)
			},
			wantErr: flagfile.ErrMalformedDocument,
		},
		{
			name: "top-level array",
			path: func(t *testing.T) string {
				return writeFile(t, "flags.json", `[1, 2, 3]`)
			},
			wantErr: flagfile.ErrMalformedDocument,
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string {
				return writeFile(t, "flags.yaml", "features:\n  x: [unclosed")
			},
			wantErr: flagfile.ErrMalformedDocument,
		},
		{
			name: "yaml scalar root",
			path: func(t *testing.T) string {
				return writeFile(t, "flags.yml", "just a string")
			},
			wantErr: flagfile.ErrMalformedDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg, err := flagfile.Load(tt.path(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			// The degraded registry is empty but fully usable: every
			// flag uniformly reads as disabled.
			require.NotNil(t, reg)
			assert.Equal(t, 0, reg.Len())
			eval := feature.New(reg, environment.Production)
			assert.False(t, eval.IsEnabled("anything", feature.Anonymous))
		})
	}
}

func TestLoad_EmptyFeatures(t *testing.T) {
	t.Parallel()

	t.Run("empty features object", func(t *testing.T) {
		t.Parallel()
		reg, err := flagfile.Load(writeFile(t, "flags.json", `{"features": {}}`))
		require.NoError(t, err)
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("no features key", func(t *testing.T) {
		t.Parallel()
		reg, err := flagfile.Load(writeFile(t, "flags.json", `{"other": true}`))
		require.NoError(t, err)
		assert.Equal(t, 0, reg.Len())
	})
}
