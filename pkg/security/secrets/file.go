package secrets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileProvider loads secrets from individual files in a directory, the
// layout used by Docker and Kubernetes secret mounts. The secret name is
// the file name.
//
// Files are read on every lookup so a configuration reload picks up a
// replaced secret.
type FileProvider struct {
	BasePath string
}

// NewFileProvider creates a file-based secret provider rooted at basePath.
func NewFileProvider(basePath string) (*FileProvider, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat base path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base path is not a directory: %s", basePath)
	}

	return &FileProvider{BasePath: basePath}, nil
}

// GetSecret reads the secret stored in <BasePath>/<name>. Surrounding
// whitespace, including the trailing newline most tools write, is removed.
//
// Files writable by group or others are rejected.
func (p *FileProvider) GetSecret(ctx context.Context, name string) (string, error) {
	path, err := p.secretPath(name)
	if err != nil {
		return "", err
	}

	// Stat follows symlinks, so the ..data links of a Kubernetes mount resolve
	// to the regular file behind them.
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: no file for %s", ErrSecretNotFound, name)
		}
		return "", fmt.Errorf("failed to stat secret file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("secret path is not a regular file: %s", name)
	}

	if mode := info.Mode().Perm(); mode&0o022 != 0 {
		return "", fmt.Errorf("insecure permissions on %s: %o (must not be group or world writable)", path, mode)
	}

	// #nosec G304 - path is confined to BasePath by secretPath
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Provider returns the provider name.
func (p *FileProvider) Provider() string {
	return "file"
}

// Supports reports whether a regular file named name exists in the base
// directory.
func (p *FileProvider) Supports(name string) bool {
	path, err := p.secretPath(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// secretPath joins name to the base path and rejects names that escape it.
func (p *FileProvider) secretPath(name string) (string, error) {
	absBase, err := filepath.Abs(p.BasePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(p.BasePath, name))
	if err != nil {
		return "", fmt.Errorf("failed to resolve secret path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", errors.New("invalid secret path: directory traversal detected")
	}
	return absPath, nil
}
