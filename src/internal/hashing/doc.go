// Package hashing provides MD5 checksum calculation utilities.
//
// The watcher uses checksums to tell real content changes from the extra
// events editors and atomic renames produce, and the check command uses
// them to fingerprint the set of active mappings.
//
// # Components
//
//   - ChecksumReaderProxy: Calculates MD5 while reading from an io.Reader
//   - ChecksumStringSetProxy: Calculates MD5 of a set of unique strings
//   - FileChecksum: MD5 of a file's content
//
// # Example Usage
//
//	sum, err := hashing.FileChecksum("/etc/hosts")
//	if err != nil {
//	    return err
//	}
//	if sum != previous {
//	    // content changed
//	}
//
// Fingerprinting mappings:
//
//	set := hashing.NewChecksumStringSet()
//	set.Put("127.0.0.1 example.com")
//	set.Put("::1 localhost")
//	checksum, _ := set.GetChecksum()
//
// Checksums are computed incrementally as data is read, so large inputs are
// never held in memory.
package hashing
