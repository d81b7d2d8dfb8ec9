package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hpungsan/lexis/internal/errors"
)

// renderError writes err as a JSON error body. Details are omitted for
// INTERNAL errors so causes never leak to clients.
func renderError(w http.ResponseWriter, err error) {
	lErr := errors.As(err)

	body := map[string]any{
		"code":    string(lErr.Code),
		"message": lErr.Message,
		"status":  lErr.Status,
	}
	if lErr.Code != errors.ErrInternal && len(lErr.Details) > 0 {
		body["details"] = lErr.Details
	}

	renderJSON(w, lErr.Status, map[string]any{"error": body})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// markdown converts GitHub-flavoured markdown (tables included).
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md []byte) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert(md, &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(string(md)) + "</pre>")
	}
	return template.HTML(buf.String())
}

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Lexis {{.Version}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; text-align: left; }
pre { background: #f5f5f5; padding: 0.75rem; overflow-x: auto; }
</style>
</head>
<body>
{{.Body}}
<footer><small>lexis {{.Version}}</small></footer>
</body>
</html>
`))

// docsPageData is the template data for the API guide.
type docsPageData struct {
	Version string
	Body    template.HTML
}

// renderDocs renders the embedded API guide as a full HTML page.
func renderDocs(version string, md []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := docsPage.Execute(&buf, docsPageData{
		Version: version,
		Body:    renderMarkdown(md),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
