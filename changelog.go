package sitedeploy

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// versionSeparator splits the changelog headline from the version token.
// A first line of "Release notes: v2.3.1" yields "2.3.1".
const versionSeparator = ": v"

// versionReader abstracts version extraction from the changelog.
type versionReader interface {
	ReadVersion(path string) (string, error)
}

// changelogVersion reads the version from the first line of a changelog file.
type changelogVersion struct{}

// ReadVersion returns the substring after the last ": v" on the trimmed
// first line. A line without the separator is returned whole; an empty first
// line yields an empty version, which the caller treats as absent.
func (changelogVersion) ReadVersion(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the build configuration
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrVersionRead, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if scanErr := sc.Err(); scanErr != nil {
			return "", fmt.Errorf("%w: %v", ErrVersionRead, scanErr)
		}
		// Empty file: no first line, no version.
		return "", nil
	}

	first := strings.TrimSpace(sc.Text())
	parts := strings.Split(first, versionSeparator)
	return parts[len(parts)-1], nil
}
