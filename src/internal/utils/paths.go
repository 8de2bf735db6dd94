package utils

import "path/filepath"

// GetAbsolutePath returns path if it was absolute, otherwise joins it with baseDir
func GetAbsolutePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(baseDir, path))
}

// DefaultHostsFilePath returns the hosts file location of the running platform.
func DefaultHostsFilePath() string {
	return defaultHostsFilePath()
}
