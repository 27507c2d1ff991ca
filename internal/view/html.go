package view

import (
	"html/template"
	"io"
)

// TemplateName is the name gin's HTML renderer looks the page up by.
const TemplateName = "page"

const pageTemplate = `{{define "page"}}<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if .IsLoading}}
<meta http-equiv="refresh" content="1">
{{- end}}
<title>NASA EPIC — Live Earth Image</title>
<style>
body{margin:0;min-height:100vh;background:linear-gradient(180deg,#0b1020,#0f1b3d 60%,#0b1020);color:#eef2ff;font-family:system-ui,Segoe UI,Roboto}
.center{min-height:100vh;display:grid;place-items:center}
.wrap{max-width:960px;margin:0 auto;padding:24px}
.card{background:#111827;padding:12px;border-radius:12px;box-shadow:0 10px 30px rgba(0,0,0,.35)}
button{padding:8px 12px;border-radius:8px;border:1px solid #374151;background:#1f2937;color:#e5e7eb;margin-bottom:10px;cursor:pointer}
img{width:100%;border-radius:8px;transition:transform .4s ease}
img:hover{transform:scale(1.01)}
a{color:#a5b4fc}
</style>
</head>
<body>
{{- if .IsLoading}}
<div class="center" data-state="loading"><div style="opacity:.8">⏳ {{.Loading}}</div></div>
{{- else if .IsFailed}}
<div class="center" data-state="error"><div>
<div>❌ {{.Error}}</div>
{{template "refresh"}}
</div></div>
{{- else}}
<div class="wrap" data-state="ready">
<h1 style="margin:0 0 8px">🌎 {{.Content.Title}}</h1>
<p style="margin:0 0 16px;opacity:.85"><b>Date:</b> <span id="date">{{.Content.DateLine}}</span></p>
<div class="card">
{{template "refresh"}}
<img src="{{.Content.ImageSrc}}" alt="{{.Content.ImageAlt}}">
</div>
<p style="margin-top:12px"><a href="{{.Content.LinkHref}}" target="_blank" rel="noreferrer">{{.Content.LinkText}}</a></p>
</div>
{{- end}}
</body>
</html>
{{end}}
{{define "refresh"}}<form method="post" action="refresh"><button type="submit">🔄 Refresh</button></form>{{end}}`

var tmpl = template.Must(template.New("epicview").Parse(pageTemplate))

// Template returns the parsed page template for use with gin's
// SetHTMLTemplate.
func Template() *template.Template {
	return tmpl
}

// RenderHTML writes page as a complete HTML document.
func RenderHTML(w io.Writer, page Page) error {
	return tmpl.ExecuteTemplate(w, TemplateName, page)
}
