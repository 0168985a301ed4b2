// Package sitedeploy builds and deploys a self-contained static web app.
//
// # Quick Start
//
// Create a service and run the pipeline:
//
//	svc := sitedeploy.New()
//	if err := svc.Run(ctx, "_deploy"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Build Pipeline
//
// A run performs these stages in order:
//
//  1. Data build (optional external command, e.g. a database generator)
//  2. Version extraction from the changelog's first line
//  3. Manual generation (README Markdown to HTML via Goldmark)
//  4. Template embedding (scripts and PNGs inlined, version stamped,
//     manual spliced in) producing one self-contained HTML artifact
//  5. Service worker stamping (VERSION placeholder replaced)
//  6. Deployment (artifact files and the icons directory copied to the
//     target directory)
//
// The pipeline is strictly sequential. Every stage except the data build
// degrades on failure: the error is printed to the log writer and the run
// continues with an empty result for that stage. A missing version is the
// one condition that stops the run before any artifact is produced.
//
// # Configuration
//
// File names, the deploy list, and the data build command come from an
// optional sitedeploy.yml; absent keys keep their compiled-in defaults.
// Use functional options to customize the service:
//
//	cfg, err := config.Load("sitedeploy.yml")
//	svc := sitedeploy.New(
//	    sitedeploy.WithConfig(cfg),
//	    sitedeploy.WithLogWriter(os.Stderr),
//	)
package sitedeploy
