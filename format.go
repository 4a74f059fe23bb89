package main

import (
	"fmt"
	"strings"
)

// markdownTable renders a header row, a separator row sized to the headers,
// and one row per record.
func markdownTable(headers []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	b.WriteString("|")
	for _, h := range headers {
		b.WriteString(strings.Repeat("-", len(h)+2))
		b.WriteString("|")
	}
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	return b.String()
}

// numberedList renders items 1-indexed, one per line, with an optional
// per-item annotation.
func numberedList(items []string, annotate func(string) string) string {
	var b strings.Builder
	for i, item := range items {
		suffix := ""
		if annotate != nil {
			suffix = annotate(item)
		}
		fmt.Fprintf(&b, "%d. %s%s\n", i+1, item, suffix)
	}
	return b.String()
}

// formatValue stringifies a scanned SQL value for table output. NULLs render
// as the literal "NULL"; drivers without type metadata hand back []byte.
func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
