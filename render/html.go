package render

import (
	"html/template"
	"io"
)

// Page is everything the HTML page shows besides the table.
type Page struct {
	Query       string
	Dialog      string
	PendingName string
	Rows        []Row
}

const PAGE_TEMPLATE = "page"

var pageTemplate = template.Must(template.New(PAGE_TEMPLATE).Parse(`<!DOCTYPE html>
<html>
<head><title>Bookshelf</title></head>
<body>
<input class="action__search" type="search" value="{{.Query}}">
<table class="books">
<thead><tr><th>Name</th><th>Author</th><th>Topic</th><th></th></tr></thead>
<tbody class="books__content">
{{- range .Rows}}
<tr class="books__book"><td>{{.Name}}</td><td>{{.Author}}</td><td>{{.Topic}}</td><td><span class="books__delete" data-id="{{.Delete.BookId}}">{{.Delete.Label}}</span></td></tr>
{{- end}}
</tbody>
</table>
{{- if eq .Dialog "add"}}
<div class="add-modal">Add book</div>
{{- else if eq .Dialog "delete"}}
<div class="delete-modal">Delete <span class="delete-modal__name">{{.PendingName}}</span>?</div>
{{- end}}
</body>
</html>
`))

// PageTemplate returns the page template for gin's HTML renderer. It expects
// a Page.
func PageTemplate() *template.Template {
	return pageTemplate
}

// WriteHTML writes page with every field HTML-escaped.
func WriteHTML(w io.Writer, page Page) error {
	return pageTemplate.Execute(w, page)
}
