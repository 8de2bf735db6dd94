package hosts

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Record is one line of a hosts file. The set of implementations is closed:
// *ActiveEntry, *DisabledEntry, *CommentLine, *BlankLine and *InvalidLine.
type Record interface {
	// Format renders the record using the shared column widths of the file.
	Format(addressWidth, hostsWidth int) string
	// MatchesAddress reports whether the record maps to the given address.
	MatchesAddress(address string) bool

	record()
}

// Kind names a record variant.
type Kind string

const (
	KindActive   Kind = "active"
	KindDisabled Kind = "disabled"
	KindComment  Kind = "comment"
	KindBlank    Kind = "blank"
	KindInvalid  Kind = "invalid"
)

// Entry is the address to hosts mapping shared by active and disabled entries.
type Entry struct {
	Address string
	Hosts   []string
	// Comment is the trailing comment including its leading '#', or empty.
	Comment string
}

// ReferencesHost reports whether host is one of the entry's hosts, ignoring case.
func (e *Entry) ReferencesHost(host string) bool {
	for _, h := range e.Hosts {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// ReferencesOnlyHost reports whether host is the entry's single host.
func (e *Entry) ReferencesOnlyHost(host string) bool {
	return len(e.Hosts) == 1 && strings.EqualFold(e.Hosts[0], host)
}

// MatchesAddress reports whether the entry's address equals address.
func (e *Entry) MatchesAddress(address string) bool {
	return AddressesEqual(e.Address, address)
}

// HostsField returns the hosts joined by single spaces.
func (e *Entry) HostsField() string {
	return strings.Join(e.Hosts, " ")
}

func (e *Entry) clone() Entry {
	return Entry{Address: e.Address, Hosts: slices.Clone(e.Hosts), Comment: e.Comment}
}

// ActiveEntry is a mapping currently in effect.
type ActiveEntry struct {
	Entry
}

// NewActiveEntry builds an active entry without a trailing comment.
func NewActiveEntry(address string, hosts ...string) *ActiveEntry {
	return &ActiveEntry{Entry{Address: address, Hosts: hosts}}
}

// Disable returns the commented-out form of the entry.
func (e *ActiveEntry) Disable() *DisabledEntry {
	return &DisabledEntry{e.clone()}
}

// Format renders the entry. The address column is one wider than for
// disabled entries so that the host columns line up.
func (e *ActiveEntry) Format(addressWidth, hostsWidth int) string {
	return formatEntry("", e.Address, addressWidth+1, e.HostsField(), hostsWidth, e.Comment)
}

func (*ActiveEntry) record() {}

// DisabledEntry is a valid mapping that has been commented out.
type DisabledEntry struct {
	Entry
}

// Enable returns the uncommented form of the entry.
func (e *DisabledEntry) Enable() *ActiveEntry {
	return &ActiveEntry{e.clone()}
}

// Format renders the entry prefixed with '#'.
func (e *DisabledEntry) Format(addressWidth, hostsWidth int) string {
	return formatEntry("#", e.Address, addressWidth, e.HostsField(), hostsWidth, e.Comment)
}

func (*DisabledEntry) record() {}

// CommentLine is a comment that does not decode to a disabled entry.
type CommentLine struct {
	Raw string
}

func (l *CommentLine) Format(int, int) string { return l.Raw }
func (*CommentLine) MatchesAddress(string) bool { return false }
func (*CommentLine) record() {}

// BlankLine is an empty or whitespace-only line.
type BlankLine struct {
	Raw string
}

func (l *BlankLine) Format(int, int) string { return l.Raw }
func (*BlankLine) MatchesAddress(string) bool { return false }
func (*BlankLine) record() {}

// InvalidLine has content that is not an address followed by hosts.
// It keeps the whole line, trailing comment included.
type InvalidLine struct {
	Raw string
}

func (l *InvalidLine) Format(int, int) string { return l.Raw }
func (*InvalidLine) MatchesAddress(string) bool { return false }
func (*InvalidLine) record() {}

// KindOf returns the variant name of r.
func KindOf(r Record) Kind {
	switch r.(type) {
	case *ActiveEntry:
		return KindActive
	case *DisabledEntry:
		return KindDisabled
	case *CommentLine:
		return KindComment
	case *BlankLine:
		return KindBlank
	case *InvalidLine:
		return KindInvalid
	default:
		panic(unknownRecord(r))
	}
}

// entryOf returns the mapping carried by active and disabled entries.
func entryOf(r Record) (*Entry, bool) {
	switch rec := r.(type) {
	case *ActiveEntry:
		return &rec.Entry, true
	case *DisabledEntry:
		return &rec.Entry, true
	case *CommentLine, *BlankLine, *InvalidLine:
		return nil, false
	default:
		panic(unknownRecord(r))
	}
}

func unknownRecord(r Record) string {
	return fmt.Sprintf("hosts: unknown record type %T", r)
}

func formatEntry(prefix, address string, addressWidth int, hosts string, hostsWidth int, comment string) string {
	line := prefix + padRight(address, addressWidth) + " " + padRight(hosts, hostsWidth) + " " + comment
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
