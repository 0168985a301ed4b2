// Package config holds the build configuration: the names of the input and
// output files, the deploy file list, and the optional data build command.
// The compiled-in defaults describe a conventional project layout; a
// sitedeploy.yml in the working directory overrides individual keys.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-sitedeploy/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigTooLarge = errors.New("config exceeds maximum size")
)

// DefaultFileName is the config file looked up in the working directory when
// no explicit path is given.
const DefaultFileName = "sitedeploy.yml"

// MaxConfigSize limits config input to prevent memory exhaustion (1MB).
const MaxConfigSize = 1 << 20

// Config holds all configuration for a build-and-deploy run.
type Config struct {
	Files  FilesConfig  `yaml:"files"`
	Deploy DeployConfig `yaml:"deploy"`
	Build  BuildConfig  `yaml:"build"`
}

// FilesConfig names the pipeline's input and output files.
type FilesConfig struct {
	Changelog        string `yaml:"changelog"`        // First line carries the release version
	Readme           string `yaml:"readme"`           // Markdown source of the manual
	Header           string `yaml:"header"`           // Opaque HTML fragment prepended to the manual
	Footer           string `yaml:"footer"`           // Opaque HTML fragment spliced after the header
	Manual           string `yaml:"manual"`           // Generated manual HTML
	Template         string `yaml:"template"`         // HTML template with inline markers
	TemplateOut      string `yaml:"templateOut"`      // Self-contained deploy artifact
	ServiceWorker    string `yaml:"serviceWorker"`    // Script carrying the VERSION placeholder
	ServiceWorkerOut string `yaml:"serviceWorkerOut"` // Stamped service worker
}

// DeployConfig defines what gets copied where.
type DeployConfig struct {
	Target   string   `yaml:"target"`   // Default target directory
	Files    []string `yaml:"files"`    // Files copied verbatim into the target
	IconsDir string   `yaml:"iconsDir"` // Directory copied recursively into the target
}

// BuildConfig defines the external data build step.
type BuildConfig struct {
	Command []string `yaml:"command"` // Argv of the data build command; empty = skip
}

// Default returns the compiled-in configuration. The names match the
// conventional project layout, so a project without a sitedeploy.yml builds
// with fixed file names.
func Default() *Config {
	return &Config{
		Files: FilesConfig{
			Changelog:        "Changelog.md",
			Readme:           "README.md",
			Header:           "header.html",
			Footer:           "footer.html",
			Manual:           "manual.html",
			Template:         "index.html",
			TemplateOut:      "index_deploy.html",
			ServiceWorker:    "sw.js",
			ServiceWorkerOut: "sw_deploy.js",
		},
		Deploy: DeployConfig{
			Target: "_deploy",
			Files: []string{
				"index_deploy.html",
				"sw_deploy.js",
				"LICENSE",
				"COPYING.md",
				"manual.html",
				"manifest.json",
			},
			IconsDir: "icons",
		},
		Build: BuildConfig{},
	}
}

// Load reads configuration from path. An empty path falls back to
// DefaultFileName in the working directory; if that file is also absent the
// defaults are returned unchanged. An explicit path must exist. Keys not set
// in the file keep their default values; unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if !fileutil.FileExists(DefaultFileName) {
			return cfg, nil
		}
		path = DefaultFileName
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is operator-supplied configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if len(data) > MaxConfigSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}

	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}
