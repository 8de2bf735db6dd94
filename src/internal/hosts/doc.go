// Package hosts parses, merges and formats hosts file content.
//
// Every line of a hosts file becomes exactly one Record. The variants are
// ActiveEntry (a live address to hosts mapping), DisabledEntry (the same
// mapping commented out), CommentLine, BlankLine and InvalidLine. The last
// three are carried through verbatim so that rewriting a file never loses
// text it did not understand.
//
// # Pipeline
//
//	records := hosts.ParseLines(lines)
//	result := hosts.Merge(records, []hosts.Request{
//	    {Host: "example.com", Address: "127.0.0.1"},
//	    {Host: "old.example.com"}, // empty address removes the host
//	})
//	if result.Changed {
//	    output := hosts.FormatLines(result.Records)
//	    // persist output
//	}
//
// Merge performs the smallest edit that satisfies the requests: entries that
// already point where they should are left alone, conflicting active entries
// are commented out rather than deleted, a disabled single-host entry with the
// right address is uncommented, and only when nothing can be reused is a new
// entry inserted right after the last line that mentioned the host.
//
// # Queries
//
// Query selects active entries either by host pattern (exact or with `*`
// wildcards, case-insensitive) or by address (semantic IP equality).
//
// Nothing in this package performs I/O. See package hostsfile for reading,
// writing and serializing access to a file on disk.
package hosts
