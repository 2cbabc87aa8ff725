package httpapi

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"strconv"
	"sync"
)

//go:embed openapi.yaml
var openAPISpec []byte

const (
	openAPIPath        = "/openapi.yaml"
	swaggerUIVersion   = "5"
	swaggerPageTitle   = "Team Growth API Docs"
	docsCacheMaxAgeSec = 300
)

var swaggerPage = template.Must(template.New("swagger").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui.css" />
  </head>
  <body style="margin:0">
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: {{.SpecURL}},
        dom_id: '#swagger-ui',
        deepLinking: true,
        docExpansion: 'list',
        presets: [SwaggerUIBundle.presets.apis],
      });
    </script>
  </body>
</html>`))

var renderSwaggerPage = sync.OnceValues(func() ([]byte, error) {
	var buf bytes.Buffer
	err := swaggerPage.Execute(&buf, struct {
		Title   string
		Version string
		SpecURL string
	}{
		Title:   swaggerPageTitle,
		Version: swaggerUIVersion,
		SpecURL: openAPIPath,
	})
	return buf.Bytes(), err
})

// OpenAPI serves the embedded API description.
func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.OpenAPI")
	defer span.End()

	writeDocument(w, "application/yaml; charset=utf-8", openAPISpec)
}

// SwaggerUI serves a Swagger UI page pointed at OpenAPI.
func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwaggerUI")
	defer span.End()

	page, err := renderSwaggerPage()
	if err != nil {
		h.logger.ErrorContext(ctx, "render swagger page failed", "error", err)
		writeInternalError(ctx, w)
		return
	}
	writeDocument(w, "text/html; charset=utf-8", page)
}

func writeDocument(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(docsCacheMaxAgeSec))
	_, _ = w.Write(body)
}
