package hosts

import "fmt"

// QueryKind selects what query items are compared against.
type QueryKind int

const (
	// QueryByHost treats items as host patterns.
	QueryByHost QueryKind = iota
	// QueryByAddress treats items as address literals.
	QueryByAddress
)

func (k QueryKind) String() string {
	switch k {
	case QueryByHost:
		return "host"
	case QueryByAddress:
		return "address"
	default:
		return fmt.Sprintf("QueryKind(%d)", int(k))
	}
}

// ParseQueryKind maps "host" and "address" to their QueryKind.
func ParseQueryKind(s string) (QueryKind, error) {
	switch s {
	case "host":
		return QueryByHost, nil
	case "address":
		return QueryByAddress, nil
	default:
		return 0, fmt.Errorf("unknown query subject %q", s)
	}
}

// ActiveEntries returns the active entries in file order.
func ActiveEntries(records []Record) []*ActiveEntry {
	var entries []*ActiveEntry
	for _, r := range records {
		if entry, ok := r.(*ActiveEntry); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Query returns the active entries matching any of items.
func Query(records []Record, kind QueryKind, items []string) []*ActiveEntry {
	var match func(*ActiveEntry) bool

	switch kind {
	case QueryByHost:
		patterns := make([]Pattern, len(items))
		for i, item := range items {
			patterns[i] = CompilePattern(item)
		}
		match = func(entry *ActiveEntry) bool {
			for _, p := range patterns {
				for _, h := range entry.Hosts {
					if p.Match(h) {
						return true
					}
				}
			}
			return false
		}
	case QueryByAddress:
		match = func(entry *ActiveEntry) bool {
			for _, item := range items {
				if entry.MatchesAddress(item) {
					return true
				}
			}
			return false
		}
	default:
		panic(fmt.Sprintf("hosts: unknown query kind %v", kind))
	}

	var result []*ActiveEntry
	for _, entry := range ActiveEntries(records) {
		if match(entry) {
			result = append(result, entry)
		}
	}
	return result
}

// IsLocal reports whether an active entry maps host to a loopback or unspecified address.
func IsLocal(records []Record, host string) bool {
	for _, entry := range ActiveEntries(records) {
		if entry.ReferencesHost(host) && IsLocalAddress(entry.Address) {
			return true
		}
	}
	return false
}

// Lookup returns the addresses of active entries referencing host, in file order.
func Lookup(records []Record, host string) []string {
	var addresses []string
	for _, entry := range ActiveEntries(records) {
		if entry.ReferencesHost(host) {
			addresses = append(addresses, entry.Address)
		}
	}
	return addresses
}
