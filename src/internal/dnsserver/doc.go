// Package dnsserver answers A and AAAA queries from the active entries of a
// hosts file, so that machines without access to the file can still see its
// mappings.
//
// Every query reads the file through the HostWriter gate; there is no cache
// to invalidate when the file changes. Names are matched case-insensitively
// and punycode labels also match their Unicode spelling. A name with no
// active entry gets NXDOMAIN; a name that only has addresses of the other
// family gets an empty NOERROR answer.
package dnsserver
