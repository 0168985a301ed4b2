package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Changelog.md", cfg.Files.Changelog)
	assert.Equal(t, "README.md", cfg.Files.Readme)
	assert.Equal(t, "index.html", cfg.Files.Template)
	assert.Equal(t, "index_deploy.html", cfg.Files.TemplateOut)
	assert.Equal(t, "sw.js", cfg.Files.ServiceWorker)
	assert.Equal(t, "sw_deploy.js", cfg.Files.ServiceWorkerOut)
	assert.Equal(t, "_deploy", cfg.Deploy.Target)
	assert.Equal(t, "icons", cfg.Deploy.IconsDir)
	assert.Contains(t, cfg.Deploy.Files, "manual.html")
	assert.Empty(t, cfg.Build.Command, "data build disabled by default")
}

func TestLoadNoFileReturnsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	content := strings.Join([]string{
		"files:",
		"  template: astrohopper.html",
		"  templateOut: astrohopper_deploy.html",
		"build:",
		"  command: [python3, create_data.py]",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "astrohopper.html", cfg.Files.Template)
	assert.Equal(t, "astrohopper_deploy.html", cfg.Files.TemplateOut)
	assert.Equal(t, []string{"python3", "create_data.py"}, cfg.Build.Command)

	// Unset keys keep their defaults.
	assert.Equal(t, "Changelog.md", cfg.Files.Changelog)
	assert.Equal(t, "_deploy", cfg.Deploy.Target)
}

func TestLoadDefaultFileNamePickedUp(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(DefaultFileName, []byte("deploy:\n  target: public\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.Deploy.Target)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("files:\n  tempalte: typo.html\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfigParse)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrConfigParse)
}
