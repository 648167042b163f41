package roster

import "strings"

const updatedPrefix = "last updated:"

// RawRow maps a header name to the field value of one data row.
type RawRow map[string]string

// Get returns the value for header, or "" when the column is absent.
func (r RawRow) Get(header string) string {
	return r[header]
}

// Feed is the parsed form of a roster export.
type Feed struct {
	UpdatedAt    string
	HasUpdatedAt bool
	Headers      []string
	Rows         []RawRow
}

// ParseFeed splits a delimited roster export into header-keyed rows.
//
// Blank lines and lines made only of commas are skipped. A leading
// "Last Updated:" line is captured as metadata. Short rows are padded with
// empty values and extra fields are ignored; parsing never fails.
func ParseFeed(raw string) Feed {
	var feed Feed
	raw = strings.TrimPrefix(raw, "\ufeff")
	if strings.TrimSpace(raw) == "" {
		return feed
	}

	lines := make([]string, 0, strings.Count(raw, "\n")+1)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if isBlankLine(line) {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) > 0 && hasPrefixFold(lines[0], updatedPrefix) {
		marker := strings.TrimRight(lines[0][len(updatedPrefix):], ", \t")
		feed.UpdatedAt = strings.TrimSpace(marker)
		feed.HasUpdatedAt = true
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return feed
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	feed.Headers = headers

	feed.Rows = make([]RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := SplitFields(line)
		row := make(RawRow, len(headers))
		for i, h := range headers {
			value := ""
			if i < len(fields) {
				value = fields[i]
			}
			row[h] = value
		}
		feed.Rows = append(feed.Rows, row)
	}
	return feed
}

// SplitFields tokenizes one data line.
//
// Grammar: fields are separated by commas; a double quote toggles a quoted
// span in which commas are literal. Each field is trimmed, then exactly one
// leading and one trailing quote are removed when both are present, and the
// result is trimmed again.
func SplitFields(line string) []string {
	var (
		fields   []string
		start    int
		inQuotes bool
	)
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields = append(fields, unwrapField(line[start:i]))
				start = i + 1
			}
		}
	}
	return append(fields, unwrapField(line[start:]))
}

func unwrapField(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		field = strings.TrimSpace(field[1 : len(field)-1])
	}
	return field
}

func isBlankLine(line string) bool {
	return strings.Trim(line, ",") == ""
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
