package httpapi

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Tonypepproni/Tidal-Estuary/internal/normalize"
	"github.com/Tonypepproni/Tidal-Estuary/internal/surface"
	"github.com/Tonypepproni/Tidal-Estuary/internal/timeline"
)

var funcMap = template.FuncMap{
	"text": func(texts map[timeline.Region]string, region string) string {
		return texts[timeline.Region(region)]
	},
	"selected": func(value, filter string) bool { return value == filter },
}

var (
	tmplViewer = template.Must(template.New("viewer").Funcs(funcMap).Parse(tmplBase + tmplViewerBody))
	tmplTable  = template.Must(template.New("table").Funcs(funcMap).Parse(tmplBase + tmplTableBody))
)

type viewerPage struct {
	View    timeline.ViewModel
	Surface surface.Snapshot
}

type tableView struct {
	Table normalize.Table
	Error string
}

func (h *Handler) render(c *fiber.Ctx, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		h.log.Error("template error", "template", t.Name(), "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (h *Handler) page(c *fiber.Ctx) error {
	return h.render(c, tmplViewer, viewerPage{View: h.viewer.ViewModel(), Surface: h.surface.Snapshot()})
}

// tablePage renders the table view. Fetch and format errors are shown in the page.
func (h *Handler) tablePage(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 15*time.Second)
	defer cancel()

	table, err := h.loadTable(ctx)
	if err != nil {
		c.Status(fiber.StatusBadGateway)
		return h.render(c, tmplTable, tableView{Error: err.Error()})
	}
	return h.render(c, tmplTable, tableView{Table: table})
}

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Tidal Estuary Water Quality</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:sans-serif;background:#f5f7fa;color:#263238;font-size:14px;line-height:1.5}
nav{background:#01579b;padding:10px 16px;display:flex;gap:16px;align-items:center}
nav .brand{color:#fff;font-weight:700;font-size:16px;margin-right:8px}
nav a{color:#b3e5fc;text-decoration:none}
main{padding:16px}
.controls{display:flex;gap:8px;align-items:center;flex-wrap:wrap;margin-bottom:12px}
.controls form{display:inline-flex;gap:4px;align-items:center}
.meta{color:#607d8b;margin-bottom:12px}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#fff;border-radius:6px;padding:12px 16px;min-width:150px;border-top:4px solid #90a4ae}
.card .val{font-size:22px;font-weight:700}
.card .lbl{font-size:12px;color:#607d8b}
.error{background:#ffebee;color:#b71c1c;border-radius:6px;padding:12px 16px;margin-bottom:16px}
.charts{display:grid;grid-template-columns:repeat(auto-fit,minmax(480px,1fr));gap:12px}
.charts img{width:100%;background:#fff;border-radius:6px}
table{width:100%;border-collapse:collapse;background:#fff;font-size:13px}
th{text-align:left;padding:6px 10px;border-bottom:2px solid #cfd8dc}
td{padding:5px 10px;border-bottom:1px solid #eceff1}
.placeholder{text-align:center;color:#90a4ae}
</style>
</head>
<body>
<nav><span class="brand">Tidal Estuary</span><a href="/">Timeline</a><a href="/table">Table</a></nav>
<main>{{template "content" .}}</main>
</body>
</html>{{end}}
`

const tmplViewerBody = `
{{define "content"}}
<div class="controls">
  <form method="post" action="/api/v1/viewer/site">
    <input type="hidden" name="redirect" value="/">
    <select name="site">
      {{range .Surface.Options}}<option value="{{.Value}}"{{if selected .Value $.View.Filter}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
    <button type="submit">Filter</button>
  </form>
  <form method="post" action="/api/v1/viewer/step-back"><input type="hidden" name="redirect" value="/"><button>&#9664;</button></form>
  <form method="post" action="/api/v1/viewer/scrub">
    <input type="hidden" name="redirect" value="/">
    <input type="range" name="index" min="{{.Surface.SliderMin}}" max="{{.Surface.SliderMax}}" value="{{.Surface.SliderValue}}">
    <button type="submit">Go</button>
  </form>
  <form method="post" action="/api/v1/viewer/step-forward"><input type="hidden" name="redirect" value="/"><button>&#9654;</button></form>
  <form method="post" action="/api/v1/viewer/latest"><input type="hidden" name="redirect" value="/"><button>Latest</button></form>
  <form method="post" action="/api/v1/viewer/play"><input type="hidden" name="redirect" value="/"><button>{{text .Surface.Texts "play-btn"}}</button></form>
</div>
<div class="meta">
  <div>Records: {{text .Surface.Texts "record-count"}}</div>
  <div>Current: {{text .Surface.Texts "current-time"}}</div>
  <div>Last update: {{text .Surface.Texts "last-update"}}</div>
</div>
{{if .Surface.Error}}
<div class="error">{{.Surface.Error}}</div>
{{else}}
<div class="cards">
  {{range .Surface.Cards}}
  <div class="card" style="border-top-color:{{.Color}}">
    <div class="val">{{.Value}} {{.Unit}}</div>
    <div class="lbl">{{.Label}}</div>
  </div>
  {{end}}
</div>
{{end}}
<div class="charts">
  {{range .Surface.ChartOrder}}<img src="/api/v1/charts/{{.}}" alt="{{.}}">{{end}}
</div>
{{end}}
`

const tmplTableBody = `
{{define "content"}}
{{if .Error}}
<div class="error">{{.Error}}</div>
{{else}}
<table>
  <thead><tr>{{range .Table.Columns}}<th>{{.Label}}</th>{{end}}</tr></thead>
  <tbody>
  {{with .Table.Placeholder}}
    <tr><td class="placeholder" colspan="{{.Colspan}}">{{.Text}}</td></tr>
  {{else}}
    {{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}
  {{end}}
  </tbody>
</table>
{{end}}
{{end}}
`
