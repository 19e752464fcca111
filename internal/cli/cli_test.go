package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag in the tree to its default so commands can
// be executed repeatedly within one test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("REFFIX_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags(rootCmd)
	// viper.Reset drops the bindings made in init.
	bindFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeProfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootRewritesProfiles(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "home/main.yaml", "component: consumo_energia.json\ncomponent: autoconsumo.json\n")
	writeProfile(t, dir, "other.yaml", "component: energy_consumption.json\n")

	out, err := run(t, "--dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "component: energy_consumption.json\ncomponent: self_consumption.json\n", string(data))
	assert.Contains(t, out, "Found 2 description files")
	assert.Contains(t, out, "Done: 2 files scanned, 1 file updated")
}

func TestRootDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "a.yaml", "component: bateria.json\n")

	out, err := run(t, "--dir", dir, "--dry-run")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "component: bateria.json\n", string(data))
	assert.Contains(t, out, "Would update")
}

func TestRootMissingDirectoryIsNotAnError(t *testing.T) {
	out, err := run(t, "--dir", filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Contains(t, out, "does not exist")
}

func TestRootTargetDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeProfile(t, dir, "a.yaml", "component: excedentes.json\n")
	t.Setenv("REFFIX_TARGET_DIR", dir)

	_, err := run(t)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "component: grid_export.json\n", string(data))
}

func TestRootCustomExtension(t *testing.T) {
	dir := t.TempDir()
	yml := writeProfile(t, dir, "a.yml", "component: excedentes.json\n")
	yaml := writeProfile(t, dir, "b.yaml", "component: excedentes.json\n")

	_, err := run(t, "--dir", dir, "--ext", ".yml")
	require.NoError(t, err)

	data, _ := os.ReadFile(yml)
	assert.Equal(t, "component: grid_export.json\n", string(data))
	data, _ = os.ReadFile(yaml)
	assert.Equal(t, "component: excedentes.json\n", string(data))
}

func TestRootRejectsArgs(t *testing.T) {
	_, err := run(t, "profiles")
	assert.Error(t, err)
}

func TestRootInvalidColor(t *testing.T) {
	_, err := run(t, "--dir", t.TempDir(), "--color", "sometimes")
	assert.ErrorContains(t, err, "invalid color mode")
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "Mapping table OK: 6 pairs (format 1.0.0)")
	assert.NotContains(t, out, "warning")
}

func TestMappingCommand(t *testing.T) {
	out, err := run(t, "mapping")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, " 1. consumo_energia.json → energy_consumption.json", lines[0])
}

func TestMappingCommandJSON(t *testing.T) {
	out, err := run(t, "mapping", "--json")
	require.NoError(t, err)

	var pairs []struct {
		Old string `json:"old"`
		New string `json:"new"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &pairs))
	require.Len(t, pairs, 6)
	assert.Equal(t, "autoconsumo.json", pairs[1].Old)
	assert.Equal(t, "self_consumption.json", pairs[1].New)
}

func TestVersionCommand(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "abc123", info["commit"])
}

func TestConfigSetAndGet(t *testing.T) {
	home := t.TempDir()

	t.Setenv("REFFIX_HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "set", "extension", ".yml"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Set extension = .yml")

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "extension: .yml")

	viper.Reset()
	out.Reset()
	rootCmd.SetArgs([]string{"config", "get", "extension"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, ".yml\n", out.String())
}

func TestConfigSetUnknownKey(t *testing.T) {
	_, err := run(t, "config", "set", "mapping", "x")
	assert.ErrorContains(t, err, "unknown config key")
}

func TestRootRunsOnInjectedFilesystem(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/data/profiles", 0755))
	require.NoError(t, afero.WriteFile(mem, "/data/profiles/a.yaml", []byte("component: consumo_red.json\n"), 0644))

	orig := newFS
	newFS = func() afero.Fs { return mem }
	t.Cleanup(func() { newFS = orig })

	out, err := run(t, "--dir", "/data/profiles")
	require.NoError(t, err)
	assert.Contains(t, out, "Done: 1 file scanned, 1 file updated")

	data, err := afero.ReadFile(mem, "/data/profiles/a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "component: grid_import.json\n", string(data))
}

func TestRootHelpMentionsConfigurableExtension(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "default *.yaml, see --ext")
	assert.NotContains(t, rootCmd.Long, "Every *.yaml file")
}
