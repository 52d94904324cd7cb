package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// EnvOutcome reports what happened to the environment file.
type EnvOutcome int

const (
	// EnvCreated means the file was copied fresh from the template.
	EnvCreated EnvOutcome = iota
	// EnvExists means a file was already present and was left untouched.
	EnvExists
	// EnvTemplateMissing means neither the file nor the template exist;
	// the step is skipped rather than failed.
	EnvTemplateMissing
)

func (o EnvOutcome) String() string {
	switch o {
	case EnvCreated:
		return "created"
	case EnvExists:
		return "exists"
	case EnvTemplateMissing:
		return "template missing"
	default:
		return "unknown"
	}
}

// MaterializeEnv copies the checked-in template to the local environment file
// unless one already exists. An existing file is never overwritten or
// truncated, regardless of its contents.
func MaterializeEnv(root, envFile, template string) (EnvOutcome, error) {
	dst := filepath.Join(root, envFile)
	src := filepath.Join(root, template)

	if _, err := os.Stat(dst); err == nil {
		return EnvExists, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return EnvExists, fmt.Errorf("stat %s: %w", envFile, err)
	}

	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return EnvTemplateMissing, nil
	} else if err != nil {
		return EnvTemplateMissing, fmt.Errorf("stat %s: %w", template, err)
	}

	if err := copyFile(src, dst, 0o644); err != nil {
		return EnvTemplateMissing, fmt.Errorf("copy %s to %s: %w", template, envFile, err)
	}

	return EnvCreated, nil
}

// copyFile copies src to dst, creating parent directories as needed.
// O_EXCL guards the never-overwrite guarantee at the syscall level too.
func copyFile(src, dst string, mode os.FileMode) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	if err := destFile.Sync(); err != nil {
		return err
	}

	return destFile.Close()
}
