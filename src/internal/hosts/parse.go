package hosts

import "strings"

// ParseLine classifies a single line. It never fails: anything that is not a
// well-formed entry ends up as a CommentLine, BlankLine or InvalidLine.
func ParseLine(line string) Record {
	content, comment := line, ""
	if i := strings.IndexByte(line, '#'); i >= 0 {
		content, comment = line[:i], line[i:]
	}

	if strings.TrimSpace(content) != "" {
		fields := strings.Fields(content)
		if len(fields) < 2 || !IsAddressLiteral(fields[0]) {
			return &InvalidLine{Raw: line}
		}
		return &ActiveEntry{Entry{Address: fields[0], Hosts: fields[1:], Comment: comment}}
	}

	if strings.TrimSpace(comment) != "" {
		if entry, ok := ParseLine(strings.TrimLeft(comment, "#")).(*ActiveEntry); ok {
			return &DisabledEntry{entry.Entry}
		}
		return &CommentLine{Raw: line}
	}

	return &BlankLine{Raw: line}
}

// ParseLines classifies lines in order, one record per line.
func ParseLines(lines []string) []Record {
	records := make([]Record, len(lines))
	for i, line := range lines {
		records[i] = ParseLine(line)
	}
	return records
}
