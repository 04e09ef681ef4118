package apidocs

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
)

var uiTemplate = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
  <style>.swagger-ui .topbar { display: none }</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({
        url: {{.DocURL}},
        dom_id: "#swagger-ui",
        docExpansion: "list",
        filter: true,
        persistAuthorization: true,
        displayRequestDuration: true
      });
    };
  </script>
</body>
</html>
`))

// Handler serves the documentation UI and the raw document.
type Handler struct {
	raw    []byte
	title  string
	docURL string
}

// NewHandler renders doc once. docURL is where the UI fetches the document.
func NewHandler(doc *Document, docURL string) (*Handler, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("apidocs: marshal document: %w", err)
	}
	return &Handler{raw: raw, title: doc.Info.Title + " Documentation", docURL: docURL}, nil
}

// MountRoutes registers the UI at "/" and the document at "/openapi.json".
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ui)
	r.Get("/openapi.json", h.document)
}

func (h *Handler) ui(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Title  string
		DocURL string
	}{h.title, h.docURL}
	if err := uiTemplate.Execute(w, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) document(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(h.raw)
}

// JSON returns the rendered document.
func (h *Handler) JSON() []byte {
	return h.raw
}
