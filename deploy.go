package sitedeploy

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/alnah/go-sitedeploy/internal/fileutil"
)

// deployer abstracts copying the build artifacts into the target directory.
type deployer interface {
	Deploy(target string) error
}

// fileDeployer copies a fixed list of files plus the icons directory into
// the target. Each item fails independently: a missing source or an already
// existing icons destination is logged and the remaining items still ship.
type fileDeployer struct {
	files    []string
	iconsDir string
	log      io.Writer
}

// Deploy ensures the target directory exists and copies every artifact into
// it. Destination basenames equal source basenames; renaming is not
// supported. Only target creation can fail the whole deployment.
func (d *fileDeployer) Deploy(target string) error {
	if err := fileutil.EnsureDir(target); err != nil {
		return fmt.Errorf("%w: %v", ErrDeployTarget, err)
	}

	for _, name := range d.files {
		dst := filepath.Join(target, filepath.Base(name))
		fmt.Fprintf(d.log, "Copying %s -> %s\n", name, dst)
		if err := fileutil.CopyFile(name, dst); err != nil {
			fmt.Fprintf(d.log, "Error copying %s: %v\n", name, err)
		}
	}

	dst := filepath.Join(target, filepath.Base(d.iconsDir))
	fmt.Fprintf(d.log, "Copying directory %s -> %s\n", d.iconsDir, dst)
	if err := fileutil.CopyDir(d.iconsDir, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			fmt.Fprintf(d.log, "Directory %s already exists: %v\n", dst, err)
		} else {
			fmt.Fprintf(d.log, "Error copying directory %s: %v\n", d.iconsDir, err)
		}
	}

	return nil
}
