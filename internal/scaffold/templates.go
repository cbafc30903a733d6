package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed templates
var templateFS embed.FS

// Template names, relative to the embedded templates directory.
const (
	TailwindConfig  = "tailwind.config.js.tmpl"
	PostCSSConfig   = "postcss.config.js.tmpl"
	ViteConfig      = "vite.config.js.tmpl"
	ChatWorker      = "worker/chat.js.tmpl"
	ContactWorker   = "worker/contact.js.tmpl"
	ChatApp         = "components/ChatApp.jsx"
	CardComponent   = "components/ui/card.jsx"
	ButtonComponent = "components/ui/button.jsx"
)

// TemplateData holds the values available to the templates.
type TemplateData struct {
	WorkerName   string
	ContentGlobs []string
	Port         int
	ChatPort     int
	ContactPort  int
}

var funcs = template.FuncMap{
	"jsString": jsString,
}

// jsString quotes s as a JSON string, which is also a valid JavaScript
// string literal.
func jsString(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Render executes the named .tmpl template with data.
func Render(name string, data TemplateData) ([]byte, error) {
	if !strings.HasSuffix(name, ".tmpl") {
		return nil, fmt.Errorf("%s is not a template", name)
	}

	src, err := fs.ReadFile(templateFS, path.Join("templates", name))
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(path.Base(name)).
		Funcs(funcs).
		Option("missingkey=error").
		Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Asset returns an embedded file verbatim. JSX sources use braces that
// collide with template syntax, so they are never executed.
func Asset(name string) ([]byte, error) {
	data, err := fs.ReadFile(templateFS, path.Join("templates", name))
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", name, err)
	}
	return data, nil
}
