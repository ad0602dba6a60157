/* text_test.go
 * Contains unit tests for the plain text table output
 */

package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func sampleTable(rows int) Table {
	table := Table{
		Title:   "Teams",
		Icon:    "🤝",
		Badges:  []Badge{{Label: "Total Teams: 2", Tone: TonePrimary}},
		Headers: []string{"#", "Team Name"},
	}
	for i := 0; i < rows; i++ {
		table.Rows = append(table.Rows, []Cell{{Text: string(rune('1' + i))}, {Text: "Team\tName", Icon: "⭐"}})
	}
	return table
}

func TestText_Unlimited(t *testing.T) {
	out := Text(sampleTable(2), 0)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "🤝 Teams", lines[0])
	assert.Equal(t, "[Total Teams: 2]", lines[1])
	assert.Equal(t, "", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "#"))
	assert.Contains(t, lines[3], "Team Name")
	assert.Contains(t, lines[4], "⭐ Team Name")
	assert.Len(t, lines, 6)
	assert.NotContains(t, out, "more")
}

func TestText_TruncatesRows(t *testing.T) {
	full := Text(sampleTable(8), 0)

	budget := utf8.RuneCountInString(full) - 1

	out := Text(sampleTable(8), budget)

	assert.LessOrEqual(t, utf8.RuneCountInString(out), budget)
	assert.Contains(t, out, "…and 1 more")
}

func TestText_BudgetCountsRunesNotBytes(t *testing.T) {
	full := Text(sampleTable(8), 0)
	runes := utf8.RuneCountInString(full)
	assert.Greater(t, len(full), runes)

	out := Text(sampleTable(8), runes)

	assert.Equal(t, full, out)
}

func TestText_HeaderOnlyWhenNothingFits(t *testing.T) {
	out := Text(sampleTable(3), 10)

	assert.Equal(t, "🤝 Teams\n[Total Teams: 2]\n\n", out)
}

func TestCell_Display(t *testing.T) {
	assert.Equal(t, "🏃 Run", Cell{Text: "Run", Icon: "🏃"}.Display())
	assert.Equal(t, "Run", Cell{Text: "Run"}.Display())
	assert.Equal(t, "🏃", Cell{Icon: "🏃"}.Display())
}
