package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
	"os"
)

type ChecksumProvider interface {
	GetChecksum() (string, error)
}

// ChecksumReaderProxy calculates the MD5 checksum of data as it's read.
type ChecksumReaderProxy struct {
	reader   io.Reader
	checksum hash.Hash
	err      error
}

// NewMD5ReaderProxy creates a new instance of ChecksumReaderProxy.
func NewMD5ReaderProxy(reader io.Reader) *ChecksumReaderProxy {
	return &ChecksumReaderProxy{
		reader:   reader,
		checksum: md5.New(),
	}
}

// Read reads from the underlying reader and feeds the bytes into the checksum.
func (p *ChecksumReaderProxy) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		if _, werr := p.checksum.Write(buf[:n]); werr != nil {
			p.err = werr
			return n, werr
		}
	}
	return n, err
}

// GetChecksum returns the MD5 checksum of everything read so far as a hex string.
func (p *ChecksumReaderProxy) GetChecksum() (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return hex.EncodeToString(p.checksum.Sum(nil)), nil
}

// ChecksumStringSetProxy collects unique strings and checksums them in insertion order.
// Duplicates are skipped entirely, so the checksum only depends on first occurrences.
type ChecksumStringSetProxy struct {
	set      map[string]struct{}
	checksum hash.Hash
	err      error
}

func NewChecksumStringSet() *ChecksumStringSetProxy {
	return &ChecksumStringSetProxy{
		set:      make(map[string]struct{}),
		checksum: md5.New(),
	}
}

func (p *ChecksumStringSetProxy) Put(str string) error {
	if _, ok := p.set[str]; ok {
		return nil
	}
	if _, err := p.checksum.Write([]byte(str + "\n")); err != nil {
		p.err = err
		return err
	}
	p.set[str] = struct{}{}
	return nil
}

func (p *ChecksumStringSetProxy) Has(str string) bool {
	_, ok := p.set[str]
	return ok
}

func (p *ChecksumStringSetProxy) Size() int {
	return len(p.set)
}

func (p *ChecksumStringSetProxy) GetChecksum() (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return hex.EncodeToString(p.checksum.Sum(nil)), nil
}

// FileChecksum returns the MD5 checksum of the file at path.
func FileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	proxy := NewMD5ReaderProxy(f)
	if _, err := io.Copy(io.Discard, proxy); err != nil {
		return "", err
	}
	return proxy.GetChecksum()
}
