//go:build windows

package utils

import (
	"os"

	"golang.org/x/sys/windows"
)

func isWritable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	if info.IsDir() {
		probe, err := os.CreateTemp(path, ".hostfile-probe-*")
		if err != nil {
			return false
		}
		name := probe.Name()
		_ = probe.Close()
		_ = os.Remove(name)
		return true
	}

	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_READONLY == 0
}

func copyOwnership(os.FileInfo, string) error {
	return nil
}
