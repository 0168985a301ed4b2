// Package fileutil provides file and directory copy utilities.
package fileutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyFile copies a regular file from src to dst, overwriting dst if it
// already exists. Permissions of the source file are preserved.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("copy source %s: %w", src, fs.ErrInvalid)
	}

	in, err := os.Open(src) // #nosec G304 -- both paths come from the deploy configuration
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()) // #nosec G304
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, copyErr := io.Copy(out, in); copyErr != nil {
		_ = out.Close()
		return fmt.Errorf("copying content: %w", copyErr)
	}
	if closeErr := out.Close(); closeErr != nil {
		return fmt.Errorf("closing destination: %w", closeErr)
	}
	return nil
}

// CopyDir recursively copies the directory src to dst. The destination must
// not already exist; a pre-existing dst returns an error wrapping
// fs.ErrExist so callers can distinguish it from other failures.
// Non-regular entries (symlinks, devices) are skipped.
func CopyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("copy source %s: %w", src, fs.ErrInvalid)
	}

	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("destination %s: %w", dst, fs.ErrExist)
	}

	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := copySubDir(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// copySubDir copies a nested directory without re-checking dst existence;
// the parent CopyDir already created a fresh tree.
func copySubDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		switch {
		case entry.IsDir():
			if err := copySubDir(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// EnsureDir creates dir (and parents) if absent.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
