// Package utils provides small platform helpers for hostfile.
//
//   - Path utilities: resolve paths relative to the config directory and
//     locate the platform hosts file
//   - File utilities: close with a logged warning, check writability
//
// # Example Usage
//
//	absPath := utils.GetAbsolutePath("hosts", "/etc/hostfile")
//	// Returns: /etc/hostfile/hosts
//
//	path := utils.DefaultHostsFilePath()
//	// /etc/hosts, or C:\Windows\System32\drivers\etc\hosts on Windows
//
// IsWritable uses access(2) on Unix, so it honours the effective user and
// read-only mounts without touching the file.
package utils
