package sitedeploy

import "errors"

// Sentinel errors for pipeline operations.
var (
	ErrVersionRead   = errors.New("failed to read changelog")
	ErrManualBuild   = errors.New("manual build failed")
	ErrTemplateEmbed = errors.New("template embedding failed")
	ErrScriptInline  = errors.New("script inlining failed")
	ErrWorkerStamp   = errors.New("service worker stamping failed")
	ErrDeployTarget  = errors.New("failed to create deploy target")
	ErrDataBuild     = errors.New("data build command failed")
)
