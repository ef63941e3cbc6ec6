package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/trackerview/internal/view"
)

// csvHeader is the column order of the CSV format.
var csvHeader = []string{
	"name", "new_status", "use_case", "technology", "architecture",
	"infrastructure", "access", "corporate_partnership", "crossborder_partnerships",
}

// tableHeader is the column order of the table format.
var tableHeader = []string{
	"NAME", "STATUS", "USE CASE", "TECHNOLOGY", "ARCHITECTURE",
	"INFRASTRUCTURE", "ACCESS", "CORPORATE", "CROSSBORDER",
}

func visible(rows []view.Row, opts Options) []view.Row {
	if opts.All {
		return rows
	}

	return view.Shown(rows)
}

// FormatJSON renders rows as an indented JSON array.
func FormatJSON(rows []view.Row, opts Options) ([]byte, error) {
	out, err := json.MarshalIndent(nonNil(visible(rows, opts)), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing JSON: %w", err)
	}

	return append(out, '\n'), nil
}

// FormatYAML renders rows as a YAML sequence.
func FormatYAML(rows []view.Row, opts Options) ([]byte, error) {
	out, err := sigsyaml.Marshal(nonNil(visible(rows, opts)))
	if err != nil {
		return nil, fmt.Errorf("serializing YAML: %w", err)
	}

	return out, nil
}

// FormatCSV renders rows as CSV with a header. Colors are not included.
func FormatCSV(rows []view.Row, opts Options) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	header := csvHeader
	if opts.All {
		header = append(append([]string(nil), csvHeader...), "show")
	}

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, r := range visible(rows, opts) {
		record := recordOf(r)

		if opts.All {
			record = append(record, strconv.FormatBool(r.Show))
		}

		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing CSV record: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing CSV: %w", err)
	}

	return buf.Bytes(), nil
}

// recordOf returns the plain values of r in column order.
func recordOf(r view.Row) []string {
	c := r.Categories

	return []string{
		r.Name.Name, c.NewStatus.Name, c.UseCase.Name, c.Technology.Name, c.Architecture.Name,
		c.Infrastructure.Name, c.Access.Name, c.CorporatePartnership, c.CrossborderPartnerships,
	}
}

// cell is one table cell. Annotated cells get a color swatch.
type cell struct {
	text      string
	color     string
	annotated bool
}

// FormatTable renders rows as an aligned text table.
func FormatTable(rows []view.Row, opts Options) ([]byte, error) {
	header := tableHeader
	if opts.All {
		header = append(append([]string(nil), tableHeader...), "SHOW")
	}

	table := [][]cell{make([]cell, len(header))}
	for i, h := range header {
		table[0][i] = cell{text: h}
	}

	for _, r := range visible(rows, opts) {
		c := r.Categories
		line := []cell{
			annotatedCell(r.Name), annotatedCell(c.NewStatus), annotatedCell(c.UseCase),
			annotatedCell(c.Technology), annotatedCell(c.Architecture),
			annotatedCell(c.Infrastructure), annotatedCell(c.Access),
			{text: c.CorporatePartnership}, {text: c.CrossborderPartnerships},
		}

		if opts.All {
			line = append(line, cell{text: strconv.FormatBool(r.Show)})
		}

		table = append(table, line)
	}

	return renderTable(table, !opts.NoColor), nil
}

func annotatedCell(a view.Annotated) cell {
	return cell{text: a.Name, color: a.Color, annotated: true}
}

// renderTable pads cells to their column width. With color enabled every
// annotated cell is prefixed by a two-column swatch.
func renderTable(table [][]cell, color bool) []byte {
	if len(table) == 0 {
		return nil
	}

	widths := make([]int, len(table[0]))

	for _, line := range table {
		for i, c := range line {
			w := utf8.RuneCountInString(c.text)
			if color && c.annotated {
				w += 2
			}

			widths[i] = max(widths[i], w)
		}
	}

	var b strings.Builder

	for _, line := range table {
		for i, c := range line {
			w := utf8.RuneCountInString(c.text)

			if color && c.annotated {
				b.WriteString(swatch(c.color))
				w += 2
			}

			b.WriteString(c.text)

			if i < len(line)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-w+2))
			}
		}

		b.WriteByte('\n')
	}

	return []byte(b.String())
}

// swatch returns a colored block followed by a space, or two spaces when
// color cannot be parsed.
func swatch(color string) string {
	r, g, bl, ok := parseHex(color)
	if !ok {
		return "  "
	}

	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm■\x1b[0m ", r, g, bl)
}

// parseHex parses #rgb and #rrggbb colors.
func parseHex(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(s, "#")

	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}

	if len(s) != 6 {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

func nonNil(rows []view.Row) []view.Row {
	if rows == nil {
		return []view.Row{}
	}

	return rows
}
