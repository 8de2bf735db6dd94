package hostsfile

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/maksimkurb/hostfile/src/internal/errors"
	"github.com/maksimkurb/hostfile/src/internal/log"
	"github.com/maksimkurb/hostfile/src/internal/utils"
)

// LineSource yields the lines of a file in order. A final line without a
// terminator is still returned; line terminators are not.
type LineSource interface {
	ReadLines(ctx context.Context, path string) ([]string, error)
}

// LineSink replaces the whole content of a file with lines.
type LineSink interface {
	WriteLines(ctx context.Context, path string, lines []string) error
}

// PathResolver supplies the hosts file location.
type PathResolver func() string

// DefaultPathResolver resolves the platform hosts file.
var DefaultPathResolver PathResolver = utils.DefaultHostsFilePath

// PlatformEOL is the line terminator of the running platform.
func PlatformEOL() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// FileLineSource reads lines from the local filesystem.
type FileLineSource struct{}

func (FileLineSource) ReadLines(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewReadError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer utils.CloseOrWarn(f)

	// No length limit: an overlong line is kept as an invalid record.
	reader := bufio.NewReader(f)

	var lines []string
	for {
		if len(lines)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewReadError(fmt.Sprintf("failed to read %s", path), err)
		}
	}

	log.Debugf("Read %d line(s) from %s", len(lines), path)
	return lines, nil
}

// AtomicFileSink writes a temporary file next to the target and renames it
// into place, so readers see either the old or the new content. When the
// directory cannot hold the temporary file, or the target cannot be replaced
// (a bind-mounted /etc/hosts in a container), the content is written in place.
type AtomicFileSink struct {
	// EOL joins the lines. Empty means PlatformEOL.
	EOL string
}

func (s AtomicFileSink) WriteLines(ctx context.Context, path string, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	eol := s.EOL
	if eol == "" {
		eol = PlatformEOL()
	}
	content := []byte(strings.Join(lines, eol))

	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	mode := os.FileMode(0644)
	info, statErr := os.Stat(target)
	if statErr == nil {
		mode = info.Mode().Perm()
	}

	if utils.IsWritable(filepath.Dir(target)) {
		err := writeAtomic(target, content, mode, info)
		if err == nil {
			log.Debugf("Wrote %d line(s) to %s", len(lines), target)
			return nil
		}
		log.Debugf("Atomic replace of %s failed, writing in place: %v", target, err)
	}

	if err := os.WriteFile(target, content, mode); err != nil {
		return errors.NewWriteError(fmt.Sprintf("failed to write %s", path), err)
	}
	log.Debugf("Wrote %d line(s) to %s in place", len(lines), target)
	return nil
}

func writeAtomic(target string, content []byte, mode os.FileMode, original os.FileInfo) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return err
	}
	if original != nil {
		if cerr := utils.CopyOwnership(original, tmpName); cerr != nil {
			log.Debugf("Could not keep ownership of %s: %v", target, cerr)
		}
	}

	return os.Rename(tmpName, target)
}
