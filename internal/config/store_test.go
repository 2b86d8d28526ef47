package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awsshellrc")

	s, err := Load(path)
	require.NoError(t, err)

	sec := s.Section("aws-shell")
	sec.SetBool("match_fuzzy", true)
	sec.SetBool("show_help", false)
	sec.SetString("theme", "dark")
	require.NoError(t, s.Write())

	reloaded, err := Load(path)
	require.NoError(t, err)
	got := reloaded.Section("aws-shell")
	assert.True(t, got.Bool("match_fuzzy"))
	assert.False(t, got.Bool("show_help"))
	assert.Equal(t, "dark", got.String("theme"))
}

func TestSectionBoolCoercion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awsshellrc")
	body := "aws-shell:\n  match_fuzzy: \"True\"\n  show_help: \"false\"\n  enable_vi_bindings: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	sec := s.Section("aws-shell")
	assert.True(t, sec.Bool("match_fuzzy"), "hand-edited string True must read as true")
	assert.False(t, sec.Bool("show_help"))
	assert.True(t, sec.Bool("enable_vi_bindings"))
	assert.False(t, sec.Bool("missing"))
}

func TestEnsureDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "awsshellrc"))
	require.NoError(t, err)

	sec := s.Section("aws-shell")
	sec.SetBool("show_help", false)
	sec.EnsureDefaults(map[string]any{
		"show_help": true,
		"theme":     "auto",
	})

	assert.False(t, sec.Bool("show_help"), "existing value must survive defaults")
	assert.Equal(t, "auto", sec.String("theme"))
	assert.Equal(t, []string{"show_help", "theme"}, sec.Keys())
}

func TestReloadUpdatesSectionInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awsshellrc")
	require.NoError(t, os.WriteFile(path, []byte("aws-shell:\n  theme: light\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	sec := s.Section("aws-shell")
	require.Equal(t, "light", sec.String("theme"))

	require.NoError(t, os.WriteFile(path, []byte("aws-shell:\n  theme: dark\n"), 0o644))
	require.NoError(t, s.Reload())

	// Same pointer, new value.
	assert.Equal(t, "dark", sec.String("theme"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, s.Section("aws-shell").Keys())
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awsshellrc")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultPathHonorsEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom/awsshellrc")

	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom/awsshellrc", p)

	dir, err := DataDir()
	require.NoError(t, err)
	if diff := cmp.Diff("/tmp/custom", dir); diff != "" {
		t.Fatalf("data dir mismatch (-want +got):\n%s", diff)
	}
}
