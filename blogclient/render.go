package blogclient

import (
	"io"
	"strings"
	"text/template"
	"time"

	"blog-server/dto"
)

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	},
	"join": strings.Join,
	"oneline": func(s string) string {
		return strings.Join(strings.Fields(s), " ")
	},
}

var listingTmpl = template.Must(template.New("listing").Funcs(funcs).Parse(
	`{{- if not .Items}}No posts found.
{{else}}{{range .Items}}[{{.ID}}] {{.Title}}
    {{.Author}} | {{.Category}} | {{.Status}} | {{date .CreatedAt}} | {{.ViewCount}} views
{{- if .Tags}}
    tags: {{join .Tags ", "}}{{end}}
{{- if .Excerpt}}
    {{oneline .Excerpt}}{{end}}

{{end}}{{end -}}
Page {{.Pagination.Current}} of {{.Pagination.Pages}} ({{.Pagination.Total}} posts, {{.Pagination.Limit}} per page)
`))

var postTmpl = template.Must(template.New("post").Funcs(funcs).Parse(
	`{{.Title}}
{{.Author}} | {{.Category}} | {{.Status}} | {{date .CreatedAt}} | {{.ViewCount}} views
{{- if .Tags}}
tags: {{join .Tags ", "}}{{end}}

{{.Content}}
`))

// RenderListing writes a page of posts followed by its pagination summary.
func RenderListing(w io.Writer, page PostPage) error {
	return listingTmpl.Execute(w, page)
}

// RenderPost writes a single post with its full content.
func RenderPost(w io.Writer, p dto.PostDTO) error {
	return postTmpl.Execute(w, p)
}
