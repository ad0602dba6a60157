/* text.go
 * Contains the plain text form of a table, used by the Discord bot and the print mode of the CLI
 */

package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

// Text renders a table as aligned plain text.
// Preconditions: Receives a table and a character budget counted in runes, maxChars <= 0 means no limit
// Postconditions: Returns the title line, the badges and as many rows as fit the budget. Rows that did not fit are
// summarised by a trailing "…and N more" line
func Text(table Table, maxChars int) string {
	var head strings.Builder
	head.WriteString(strings.TrimSpace(table.Icon + " " + table.Title))
	head.WriteString("\n")
	if len(table.Badges) > 0 {
		labels := make([]string, 0, len(table.Badges))
		for _, badge := range table.Badges {
			labels = append(labels, "["+badge.Label+"]")
		}
		head.WriteString(strings.Join(labels, " "))
		head.WriteString("\n")
	}
	head.WriteString("\n")

	full := head.String() + grid(table.Headers, table.Rows)
	if maxChars <= 0 || utf8.RuneCountInString(full) <= maxChars {
		return full
	}

	for shown := len(table.Rows) - 1; shown >= 0; shown-- {
		footer := fmt.Sprintf("…and %d more\n", len(table.Rows)-shown)
		out := head.String() + grid(table.Headers, table.Rows[:shown]) + footer
		if utf8.RuneCountInString(out) <= maxChars {
			return out
		}
	}
	// Not even the header fits, fall back to the summary lines
	return head.String()
}

func grid(headers []string, rows [][]Cell) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		values := make([]string, 0, len(row))
		for _, cell := range row {
			values = append(values, sanitize(cell.Display()))
		}
		fmt.Fprintln(w, strings.Join(values, "\t"))
	}
	w.Flush()
	return buf.String()
}

// sanitize keeps a value on one line and out of the tab grid
func sanitize(value string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(value)
}
