package sitedeploy

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// dataBuilder abstracts the external data build step that runs before the
// pipeline (e.g. regenerating a bundled database from source data).
type dataBuilder interface {
	BuildData(ctx context.Context) error
}

// execDataBuilder runs a configured external command. An empty command
// disables the step.
type execDataBuilder struct {
	command []string
	log     io.Writer
}

// BuildData runs the command with the pipeline context. Unlike the degraded
// stages, a failing data build stops the run: without fresh data there is
// nothing worth deploying.
func (b *execDataBuilder) BuildData(ctx context.Context) error {
	if len(b.command) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, b.command[0], b.command[1:]...) // #nosec G204 -- command comes from the build configuration
	cmd.Stdout = b.log
	cmd.Stderr = b.log
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrDataBuild, err)
	}
	return nil
}
