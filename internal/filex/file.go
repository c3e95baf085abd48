// Package filex writes files that should only be readable by the current user.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureSubdDir creates dirName with owner-only permissions and returns its
// absolute path. A relative dirName is resolved against the working directory.
func EnsureSubdDir(dirName string) (string, error) {
	dir := dirName
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dirName)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// WritePrivateFile stores data as dir/name with mode 0600. Only the base of
// name is used, so a crafted name cannot escape dir.
func WritePrivateFile(dir, name string, data []byte) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	path := filepath.Join(dir, base)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
