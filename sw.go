package sitedeploy

import (
	"fmt"
	"os"
	"strings"
)

// versionPlaceholder is the literal token replaced in the service worker.
// This is a whole-word textual replace, not a templating language.
const versionPlaceholder = "VERSION"

// workerStamper abstracts service worker version stamping.
type workerStamper interface {
	Stamp(version string) error
}

// serviceWorkerStamp copies the service worker script, substituting the
// version placeholder, so deployed clients see a fresh cache name per release.
type serviceWorkerStamp struct {
	srcPath string
	outPath string
}

// Stamp writes the stamped script to the output path. On a read failure no
// output is written.
func (s serviceWorkerStamp) Stamp(version string) error {
	content, err := os.ReadFile(s.srcPath) // #nosec G304 -- path comes from the build configuration
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWorkerStamp, err)
	}

	stamped := strings.ReplaceAll(string(content), versionPlaceholder, version)
	if err := os.WriteFile(s.outPath, []byte(stamped), 0o644); err != nil { // #nosec G306 -- deploy artifact, world-readable
		return fmt.Errorf("%w: %v", ErrWorkerStamp, err)
	}
	return nil
}
