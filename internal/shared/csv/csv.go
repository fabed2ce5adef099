// Package csv implements the line-oriented CSV dialect used by the product
// import/export endpoints. Reading is header-driven: the first non-empty line
// names the columns and every following line is mapped positionally onto those
// names. Writing always emits the configured header order.
package csv

import (
	"strings"
)

// Row maps a header name to the raw cell value of one data line.
type Row map[string]string

// Parse converts CSV text into rows keyed by the header line.
// Blank lines are skipped. A file with only a header (or nothing at all)
// yields no rows; deciding whether that is an error is left to the caller.
// Lines are split on newline before quote scanning, so a quoted field
// cannot span lines even though Serialize quotes embedded newlines.
func Parse(text string) []Row {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil
	}

	headers := splitLine(lines[0])
	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitLine(line)
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(fields) {
				row[header] = fields[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// splitLine scans one line character by character, honouring double quotes.
// A doubled quote inside a quoted field emits one literal quote. An
// unterminated quote extends the field to the end of the line.
func splitLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i += 2
			} else {
				inQuotes = !inQuotes
				i++
			}
		case ch == ',' && !inQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
			i++
		default:
			current.WriteRune(ch)
			i++
		}
	}
	result = append(result, strings.TrimSpace(current.String()))
	return result
}

// Serialize renders rows using the given header order, header line first.
// Values containing a comma, quote, or newline are wrapped in quotes with
// inner quotes doubled; everything else is emitted as-is.
func Serialize(rows []Row, headers []string) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))

	for _, row := range rows {
		b.WriteString("\n")
		for i, header := range headers {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(escapeField(row[header]))
		}
	}
	return b.String()
}

func escapeField(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
