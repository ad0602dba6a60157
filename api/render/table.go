/* table.go
 * Contains the generic table renderer. A Spec describes the columns and aggregate badges for one entity type,
 * Render turns a list of records into an entity agnostic Table that the web and text surfaces draw
 */

package render

// Tone is the colour class of a badge
type Tone string

const (
	TonePrimary Tone = "primary"
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneNeutral Tone = "secondary"
	ToneGold    Tone = "gold"
	ToneSilver  Tone = "silver"
	ToneBronze  Tone = "bronze"
)

// Badge is a summary label shown above a table, e.g. "Total Users: 3"
type Badge struct {
	Label string
	Tone  Tone
}

// Cell is one rendered value. A cell with a Tone is drawn as a badge
type Cell struct {
	Text   string
	Icon   string
	Tone   Tone
	Muted  bool
	Strong bool
}

// Display returns the icon and text joined for plain-text output
func (c Cell) Display() string {
	if c.Icon == "" {
		return c.Text
	}
	if c.Text == "" {
		return c.Icon
	}
	return c.Icon + " " + c.Text
}

// Table is the display form of one screen
type Table struct {
	Title   string
	Icon    string
	Badges  []Badge
	Headers []string
	Rows    [][]Cell
}

// Column renders one field. index is the record's position in the received list
type Column[T any] struct {
	Header string
	Cell   func(index int, item T) Cell
}

// Spec describes how to render a list of T
type Spec[T any] struct {
	Title      string
	Icon       string
	Columns    []Column[T]
	Aggregates func(items []T) []Badge
}

// Render maps records to display rows, in received order.
// Preconditions: Receives a spec and the records to render, which may be empty
// Postconditions: Returns a Table with one row per record and one cell per column
func Render[T any](spec Spec[T], items []T) Table {
	headers := make([]string, 0, len(spec.Columns))
	for _, column := range spec.Columns {
		headers = append(headers, column.Header)
	}

	rows := make([][]Cell, 0, len(items))
	for i, item := range items {
		row := make([]Cell, 0, len(spec.Columns))
		for _, column := range spec.Columns {
			row = append(row, column.Cell(i, item))
		}
		rows = append(rows, row)
	}

	var badges []Badge
	if spec.Aggregates != nil {
		badges = spec.Aggregates(items)
	}

	return Table{
		Title:   spec.Title,
		Icon:    spec.Icon,
		Badges:  badges,
		Headers: headers,
		Rows:    rows,
	}
}
