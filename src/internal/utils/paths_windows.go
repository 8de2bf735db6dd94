//go:build windows

package utils

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
)

func defaultHostsFilePath() string {
	systemDir, err := windows.GetSystemDirectory()
	if err != nil || systemDir == "" {
		systemDir = filepath.Join(os.Getenv("SystemRoot"), "System32")
	}
	return filepath.Join(systemDir, "drivers", "etc", "hosts")
}
