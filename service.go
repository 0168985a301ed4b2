package sitedeploy

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-sitedeploy/internal/config"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ versionReader    = changelogVersion{}
	_ manualBuilder    = (*goldmarkManual)(nil)
	_ templateEmbedder = (*lineEmbedder)(nil)
	_ workerStamper    = serviceWorkerStamp{}
	_ deployer         = (*fileDeployer)(nil)
	_ dataBuilder      = (*execDataBuilder)(nil)
)

// Service orchestrates the build-and-deploy pipeline.
type Service struct {
	cfg *config.Config
	log io.Writer

	data     dataBuilder
	versions versionReader
	manual   manualBuilder
	embedder templateEmbedder
	stamper  workerStamper
	deployer deployer
}

// Option customizes a Service.
type Option func(*Service)

// WithConfig sets the build configuration. Nil is ignored.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogWriter redirects the pipeline's progress and error messages.
// The default is os.Stdout.
func WithLogWriter(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.log = w
		}
	}
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithConfig).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: config.Default(),
		log: os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Wire pipeline stages from the resolved config if not injected (e.g., by tests)
	files := s.cfg.Files
	if s.data == nil {
		s.data = &execDataBuilder{command: s.cfg.Build.Command, log: s.log}
	}
	if s.versions == nil {
		s.versions = changelogVersion{}
	}
	if s.manual == nil {
		s.manual = newGoldmarkManual(files.Readme, files.Header, files.Footer, files.Manual)
	}
	if s.embedder == nil {
		s.embedder = &lineEmbedder{
			templatePath: files.Template,
			outPath:      files.TemplateOut,
			log:          s.log,
		}
	}
	if s.stamper == nil {
		s.stamper = serviceWorkerStamp{srcPath: files.ServiceWorker, outPath: files.ServiceWorkerOut}
	}
	if s.deployer == nil {
		s.deployer = &fileDeployer{
			files:    s.cfg.Deploy.Files,
			iconsDir: s.cfg.Deploy.IconsDir,
			log:      s.log,
		}
	}

	return s
}

// Run executes the full pipeline: data build, version extraction, manual
// generation, template embedding, service worker stamping, deployment.
//
// Every stage after the data build degrades on failure: the error is printed
// and the run continues with an empty result for that stage. The one abort
// condition is an undetermined version, which stops the run before any
// artifact is produced. An empty target falls back to the configured default.
func (s *Service) Run(ctx context.Context, target string) error {
	if err := s.data.BuildData(ctx); err != nil {
		return err
	}

	version, err := s.versions.ReadVersion(s.cfg.Files.Changelog)
	if err != nil {
		fmt.Fprintf(s.log, "Error reading version: %v\n", err)
		version = ""
	}
	if version == "" {
		fmt.Fprintln(s.log, "Version could not be determined.")
		return nil
	}

	manual, err := s.manual.BuildManual(ctx)
	if err != nil {
		fmt.Fprintf(s.log, "Error creating manual: %v\n", err)
		manual = ""
	}

	if err := s.embedder.Embed(manual, version); err != nil {
		fmt.Fprintf(s.log, "Error embedding: %v\n", err)
	}

	if err := s.stamper.Stamp(version); err != nil {
		fmt.Fprintf(s.log, "Error embedding service worker: %v\n", err)
	}

	if target == "" {
		target = s.cfg.Deploy.Target
	}
	if err := s.deployer.Deploy(target); err != nil {
		fmt.Fprintf(s.log, "Error deploying files: %v\n", err)
	}

	return nil
}
