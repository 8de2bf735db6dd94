package hosts

import (
	"strings"
	"unicode/utf8"
)

// ColumnWidths returns the widest address and the widest joined hosts field
// over all active and disabled entries.
func ColumnWidths(records []Record) (addressWidth, hostsWidth int) {
	for _, r := range records {
		entry, ok := entryOf(r)
		if !ok {
			continue
		}
		addressWidth = max(addressWidth, utf8.RuneCountInString(entry.Address))
		hostsWidth = max(hostsWidth, utf8.RuneCountInString(entry.HostsField()))
	}
	return addressWidth, hostsWidth
}

// FormatLines renders records as aligned lines, one per record.
func FormatLines(records []Record) []string {
	addressWidth, hostsWidth := ColumnWidths(records)

	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Format(addressWidth, hostsWidth)
	}
	return lines
}

// Render joins the formatted records with eol. There is no terminator after the last line.
func Render(records []Record, eol string) string {
	return strings.Join(FormatLines(records), eol)
}
