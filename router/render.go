package router

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// renderBytes executes a template into a buffer so a template fault
// never leaks a half-written page, and so cacheable pages come out as
// storable bytes.
func renderBytes(name string, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func render(w http.ResponseWriter, status int, name string, data interface{}) error {
	b, err := renderBytes(name, data)
	if err != nil {
		return err
	}
	writeHTML(w, status, b)
	return nil
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// renderPage renders a view and converts template faults into 500s.
func renderPage(w http.ResponseWriter, status int, name string, data interface{}) *HTTPError {
	if err := render(w, status, name, data); err != nil {
		return internal(err)
	}
	return nil
}
