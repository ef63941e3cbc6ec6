package output

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/hupe1980/trackerview/internal/view"
)

// reportTitle heads the markdown and HTML reports.
const reportTitle = "Tracker"

// FormatMarkdown renders rows as a Markdown table.
func FormatMarkdown(rows []view.Row, opts Options) ([]byte, error) {
	var b strings.Builder

	header := append([]string(nil), tableHeader...)
	if opts.All {
		header = append(header, "SHOW")
	}

	shown := visible(rows, opts)

	fmt.Fprintf(&b, "# %s\n\n", reportTitle)
	fmt.Fprintf(&b, "%d of %d rows shown.\n\n", len(view.Shown(rows)), len(rows))

	fmt.Fprintf(&b, "| %s |\n", strings.Join(header, " | "))
	fmt.Fprintf(&b, "|%s\n", strings.Repeat("---|", len(header)))

	for _, r := range shown {
		cells := recordOf(r)
		for i, c := range cells {
			cells[i] = escapeMarkdown(c)
		}

		if opts.All {
			cells = append(cells, fmt.Sprint(r.Show))
		}

		fmt.Fprintf(&b, "| %s |\n", strings.Join(cells, " | "))
	}

	return []byte(b.String()), nil
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

var htmlTpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body{font-family:sans-serif;margin:2em;line-height:1.6}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ddd;padding:6px;text-align:left}
th{background:#f5f5f5}
tr.hidden{color:#999}
.swatch{display:inline-block;width:.8em;height:.8em;margin-right:.4em;border-radius:2px}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Shown}} of {{.Total}} rows shown.</p>
<table>
<tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr{{if not .Show}} class="hidden"{{end}}>{{range .Cells}}<td>{{if .Color}}<span class="swatch" style="background:{{.Color}}"></span>{{end}}{{.Text}}</td>{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

type htmlCell struct {
	Text  string
	Color string
}

type htmlRow struct {
	Show  bool
	Cells []htmlCell
}

type htmlModel struct {
	Title  string
	Shown  int
	Total  int
	Header []string
	Rows   []htmlRow
}

// FormatHTML renders rows as a standalone HTML page with color swatches.
// Colors are always included.
func FormatHTML(rows []view.Row, opts Options) ([]byte, error) {
	m := htmlModel{
		Title:  reportTitle,
		Shown:  len(view.Shown(rows)),
		Total:  len(rows),
		Header: tableHeader,
	}

	for _, r := range visible(rows, opts) {
		c := r.Categories
		m.Rows = append(m.Rows, htmlRow{
			Show: r.Show,
			Cells: []htmlCell{
				{r.Name.Name, r.Name.Color},
				{c.NewStatus.Name, c.NewStatus.Color},
				{c.UseCase.Name, c.UseCase.Color},
				{c.Technology.Name, c.Technology.Color},
				{c.Architecture.Name, c.Architecture.Color},
				{c.Infrastructure.Name, c.Infrastructure.Color},
				{c.Access.Name, c.Access.Color},
				{Text: c.CorporatePartnership},
				{Text: c.CrossborderPartnerships},
			},
		})
	}

	var buf bytes.Buffer
	if err := htmlTpl.Execute(&buf, m); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}

	return buf.Bytes(), nil
}
