package utils

import (
	"io"
	"os"

	"github.com/maksimkurb/hostfile/src/internal/log"
)

// CloseOrWarn closes file and logs a warning on failure.
func CloseOrWarn(file io.Closer) {
	if err := file.Close(); err != nil {
		log.Warnf("Failed to close file: %v", err)
	}
}

// IsWritable reports whether the current process may write to path.
// For a directory this means creating and renaming files inside it.
func IsWritable(path string) bool {
	return isWritable(path)
}

// CopyOwnership gives path the owner and group of src where the platform supports it.
func CopyOwnership(src os.FileInfo, path string) error {
	return copyOwnership(src, path)
}
