package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// writeAppData writes body to App_Data/<rel> under root and returns root.
func writeAppData(t *testing.T, root, rel, body string) string {
	t.Helper()
	p := filepath.Join(root, "App_Data", rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return root
}

func newContentRoot(t *testing.T, base string) string {
	t.Helper()
	return writeAppData(t, t.TempDir(), "appsettings.json", base)
}

func buildAll(root string, args, environ []string) (*Configuration, error) {
	return newConfigBuilder(root, args, environ).
		withBaseFile().
		withOverlay().
		withEnv().
		withCommandLine().
		build()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and no sources.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder("", nil, nil)
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.sources)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no sources returns an
// empty configuration.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder("", nil, nil).build()
	require.NoError(t, err)
	assert.Zero(t, cfg.Len())
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder("", nil, nil)
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// ── fluent interface ──────────────────────────────────────────────────────────

func TestBuilder_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder(t.TempDir(), nil, nil)
	assert.Same(t, b, b.withBaseFile())
	assert.Same(t, b, b.withOverlay())
	assert.Same(t, b, b.withEnv())
	assert.Same(t, b, b.withCommandLine())
}

// ── base file ─────────────────────────────────────────────────────────────────

func TestBuild_BaseFileMissing_IsFatal(t *testing.T) {
	cfg, err := buildAll(t.TempDir(), nil, nil)

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequiredFileMissing)
}

func TestBuild_BaseFileMalformed_IsFatal(t *testing.T) {
	root := newContentRoot(t, `{"Application": `)

	cfg, err := buildAll(root, nil, nil)

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfigFile)
}

// ── precedence ────────────────────────────────────────────────────────────────

// TestBuild_EnvironmentOverridesBaseFile pins the documented scenario: the
// base file sets 1000, the environment sets 2000, nothing on the command line.
func TestBuild_EnvironmentOverridesBaseFile(t *testing.T) {
	root := newContentRoot(t, `{"Application": {"MaxRequestBodySize": 1000}}`)

	cfg, err := buildAll(root, nil, []string{"Application__MaxRequestBodySize=2000"})

	require.NoError(t, err)
	assert.Equal(t, "2000", cfg.Value("Application:MaxRequestBodySize"))
}

func TestBuild_Precedence(t *testing.T) {
	root := newContentRoot(t, `{
		"A": "base", "B": "base", "C": "base", "D": "base", "OnlyBase": "base"
	}`)
	writeAppData(t, root, "prod/appsettings.json", `{
		"B": "overlay", "C": "overlay", "D": "overlay", "OnlyOverlay": "overlay"
	}`)

	environ := []string{"C=env", "D=env", "Directory=prod"}
	args := []string{"--D=cli", "--appsettings=1"}

	cfg, err := buildAll(root, args, environ)
	require.NoError(t, err)

	assert.Equal(t, "base", cfg.Value("A"))
	assert.Equal(t, "overlay", cfg.Value("B"))
	assert.Equal(t, "env", cfg.Value("C"))
	assert.Equal(t, "cli", cfg.Value("D"))
	assert.Equal(t, "base", cfg.Value("OnlyBase"))
	assert.Equal(t, "overlay", cfg.Value("OnlyOverlay"))
}

// TestBuild_OverlayCannotOverrideEnvOrCommandLine verifies that the values
// used to locate the overlay are applied again above it.
func TestBuild_OverlayCannotOverrideEnvOrCommandLine(t *testing.T) {
	root := newContentRoot(t, `{}`)
	writeAppData(t, root, "stage/appsettings.json", `{"Directory": "elsewhere", "appsettings": "off"}`)

	cfg, err := buildAll(root, []string{"--Directory=stage", "--appsettings=on"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "stage", cfg.Value("Directory"))
	assert.Equal(t, "on", cfg.Value("appsettings"))
}

func TestBuild_KeysAreCaseInsensitive(t *testing.T) {
	root := newContentRoot(t, `{"Logging": {"Level": "info"}}`)

	cfg, err := buildAll(root, []string{"--logging:level=error"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Value("LOGGING:LEVEL"))
	assert.Equal(t, 1, cfg.Len())
	assert.Equal(t, []string{"Logging:Level"}, cfg.Keys())
}

// TestBuild_CaseCollisionIsDeterministic verifies that keys differing only by
// case within one source always resolve the same way.
func TestBuild_CaseCollisionIsDeterministic(t *testing.T) {
	root := newContentRoot(t, `{}`)
	environ := []string{"foo=lower", "FOO=upper", "Foo=mixed"}

	for i := 0; i < 50; i++ {
		cfg, err := buildAll(root, nil, environ)
		require.NoError(t, err)

		assert.Equal(t, "lower", cfg.Value("FOO"))
		assert.Equal(t, []string{"FOO"}, cfg.Keys())
	}
}

// ── overlay activation ───────────────────────────────────────────────────────

func TestWithOverlay(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		environ     []string
		wantOverlay bool
	}{
		{name: "both on command line", args: []string{"--appsettings=true", "--Directory=prod"}, wantOverlay: true},
		{name: "both in environment", environ: []string{"appsettings=1", "Directory=prod"}, wantOverlay: true},
		{name: "split between sources", args: []string{"--Directory=prod"}, environ: []string{"appsettings=1"}, wantOverlay: true},
		{name: "only directory", args: []string{"--Directory=prod"}},
		{name: "only flag", args: []string{"--appsettings=1"}},
		{name: "empty directory", args: []string{"--appsettings=1", "--Directory="}},
		{name: "neither"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			b := newConfigBuilder(root, tt.args, tt.environ)
			b.withOverlay()

			require.NoError(t, b.err)
			if !tt.wantOverlay {
				assert.Empty(t, b.sources)
				return
			}
			require.Len(t, b.sources, 1)
			info := b.sources[0].Info()
			assert.Equal(t, RankOverlayFile, info.Rank)
			assert.True(t, info.Required)
			assert.Equal(t, filepath.Join(root, "App_Data", "prod", "appsettings.json"), info.Path)
		})
	}
}

func TestBuild_RequestedOverlayMissing_IsFatal(t *testing.T) {
	root := newContentRoot(t, `{}`)

	cfg, err := buildAll(root, []string{"--appsettings=1", "--Directory=missing"}, nil)

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrRequiredFileMissing)
}

func TestBuild_SourcesAreRankOrdered(t *testing.T) {
	root := newContentRoot(t, `{}`)
	writeAppData(t, root, "prod/appsettings.json", `{}`)

	cfg, err := newConfigBuilder(root, []string{"--appsettings=1", "--Directory=prod"}, nil).
		withCommandLine().
		withEnv().
		withOverlay().
		withBaseFile().
		build()
	require.NoError(t, err)

	var ranks []int
	for _, s := range cfg.Sources() {
		ranks = append(ranks, s.Info().Rank)
	}
	assert.Equal(t, []int{RankBaseFile, RankOverlayFile, RankEnvironment, RankCommandLine}, ranks)
}

// ── Reload ────────────────────────────────────────────────────────────────────

func TestConfiguration_Reload(t *testing.T) {
	root := newContentRoot(t, `{"Logging": {"Level": "info"}}`)

	cfg, err := buildAll(root, nil, nil)
	require.NoError(t, err)

	writeAppData(t, root, "appsettings.json", `{"Logging": {"Level": "warn"}}`)

	next, err := cfg.Reload()
	require.NoError(t, err)
	assert.Equal(t, "warn", next.Value("Logging:Level"))
	assert.Equal(t, "info", cfg.Value("Logging:Level"), "snapshot must not change")
}
