package hosts

import "net/netip"

// parseLiteral parses a plain IPv4 or IPv6 literal. Zones and prefixes are rejected.
func parseLiteral(token string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(token)
	if err != nil || addr.Zone() != "" {
		return netip.Addr{}, false
	}
	return addr, true
}

// IsAddressLiteral reports whether token is a dotted-decimal IPv4 or a colon-separated IPv6 address.
func IsAddressLiteral(token string) bool {
	_, ok := parseLiteral(token)
	return ok
}

// AddressesEqual compares two address literals semantically, so "::1" equals
// "0:0:0:0:0:0:0:1". An IPv4-mapped IPv6 address does not equal its IPv4 form.
func AddressesEqual(a, b string) bool {
	addrA, ok := parseLiteral(a)
	if !ok {
		return false
	}
	addrB, ok := parseLiteral(b)
	if !ok {
		return false
	}
	return addrA == addrB
}

// linkLocalLoopback is the fe80::1 address some systems bind to lo0.
var linkLocalLoopback = netip.MustParseAddr("fe80::1")

// IsLocalAddress reports whether address is a loopback or unspecified address:
// 127.0.0.0/8 (also IPv4-mapped), ::1, fe80::1, 0.0.0.0 or ::.
func IsLocalAddress(address string) bool {
	addr, ok := parseLiteral(address)
	if !ok {
		return false
	}
	return addr.Unmap().IsLoopback() || addr.IsUnspecified() || addr == linkLocalLoopback
}
