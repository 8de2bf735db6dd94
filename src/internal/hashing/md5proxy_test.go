package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type errorReader struct {
	err error
}

func (e *errorReader) Read(p []byte) (n int, err error) {
	return 0, e.err
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestChecksumReaderProxy(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"single line", "127.0.0.1 localhost"},
		{"multi line", "127.0.0.1 localhost\n::1 localhost\n# comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proxy := NewMD5ReaderProxy(strings.NewReader(tt.data))

			data, err := io.ReadAll(proxy)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if string(data) != tt.data {
				t.Errorf("Expected '%s', got '%s'", tt.data, string(data))
			}

			checksum, err := proxy.GetChecksum()
			if err != nil {
				t.Fatalf("Unexpected error getting checksum: %v", err)
			}
			if expected := md5Hex(tt.data); checksum != expected {
				t.Errorf("Expected checksum %s, got %s", expected, checksum)
			}
		})
	}
}

func TestChecksumReaderProxy_ReadError(t *testing.T) {
	expectedErr := errors.New("read error")
	proxy := NewMD5ReaderProxy(&errorReader{err: expectedErr})

	buf := make([]byte, 10)
	if _, err := proxy.Read(buf); err != expectedErr {
		t.Errorf("Expected error %v, got %v", expectedErr, err)
	}
}

func TestChecksumStringSetProxy(t *testing.T) {
	set := NewChecksumStringSet()
	for _, s := range []string{"127.0.0.1 a.com", "127.0.0.1 b.com", "127.0.0.1 a.com"} {
		if err := set.Put(s); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	if set.Size() != 2 {
		t.Errorf("Expected size 2 after duplicate, got %d", set.Size())
	}
	if !set.Has("127.0.0.1 b.com") || set.Has("127.0.0.1 c.com") {
		t.Errorf("Unexpected membership")
	}

	checksum, err := set.GetChecksum()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if expected := md5Hex("127.0.0.1 a.com\n127.0.0.1 b.com\n"); checksum != expected {
		t.Errorf("Expected checksum %s, got %s", expected, checksum)
	}
}

func TestChecksumStringSetProxy_OrderMatters(t *testing.T) {
	a := NewChecksumStringSet()
	a.Put("x")
	a.Put("y")

	b := NewChecksumStringSet()
	b.Put("y")
	b.Put("x")

	sumA, _ := a.GetChecksum()
	sumB, _ := b.GetChecksum()
	if sumA == sumB {
		t.Errorf("Expected different checksums for different insertion order")
	}
}

func TestFileChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hosts")
	content := "127.0.0.1 localhost\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	checksum, err := FileChecksum(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if checksum != md5Hex(content) {
		t.Errorf("Expected checksum %s, got %s", md5Hex(content), checksum)
	}

	if _, err := FileChecksum(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

var _ ChecksumProvider = (*ChecksumReaderProxy)(nil)
var _ ChecksumProvider = (*ChecksumStringSetProxy)(nil)
