// Package hostsfile gives serialized, file-backed access to a hosts file.
//
// A HostWriter owns one path. Reads and rewrites go through a FIFO Gate, so
// concurrent callers in the same process observe each other's changes in
// the order they asked. Rewrites replace the file atomically where the
// directory allows it and keep the original mode and ownership.
//
//	w := hostsfile.NewHostWriter("") // platform hosts file
//	if err := w.Assign(ctx, []hosts.Request{{Host: "example.com", Address: "127.0.0.1"}}); err != nil {
//	    return err
//	}
//
// Watch reports external edits to the file.
package hostsfile
