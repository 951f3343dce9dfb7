// Package codegen turns a project's component snapshot into static site
// artifacts. Generation is a pure mapping: identical input produces
// byte-identical output, and nothing here touches the store.
//
// Component content and properties are emitted verbatim, without escaping.
// The output is trusted template text for the project owner, not sanitized
// for embedding in a different trust context.
package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/buildforge/buildforge/internal/component"
	"github.com/buildforge/buildforge/internal/project"
)

//go:embed templates/static/*
var staticFS embed.FS

//go:embed templates/server.go.tmpl
var serverTmplFS embed.FS

const (
	pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Generated Website</title>
    <link rel="stylesheet" href="styles.css">
</head>
<body>
`
	pageFoot = `    <script src="script.js"></script>
</body>
</html>`
)

// Default hero properties, used when the component does not set them.
const (
	defaultHeroTitle    = "Hero Title"
	defaultHeroSubtitle = "Hero subtitle"
	defaultHeroButton   = "Get Started"
)

// Result is the full set of generated artifacts for one project.
type Result struct {
	Frontend Frontend `json:"frontend"`
	Backend  Backend  `json:"backend"`
	Database Database `json:"database"`
}

type Frontend struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	JS   string `json:"js"`
}

type Backend struct {
	Go string `json:"go"`
}

type Database struct {
	Schema string `json:"schema"`
}

// Generator renders projects into site artifacts. The stylesheet, script and
// schema artifacts are constant text independent of the component list; the
// server stub is parameterized only by the project name.
type Generator struct {
	css        string
	js         string
	schema     string
	serverTmpl *template.Template
}

func NewGenerator() (*Generator, error) {
	css, err := staticFS.ReadFile("templates/static/styles.css")
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet template: %w", err)
	}
	js, err := staticFS.ReadFile("templates/static/script.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read script template: %w", err)
	}
	schema, err := staticFS.ReadFile("templates/static/schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema template: %w", err)
	}
	serverTmpl, err := template.ParseFS(serverTmplFS, "templates/server.go.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse server template: %w", err)
	}

	return &Generator{
		css:        string(css),
		js:         string(js),
		schema:     string(schema),
		serverTmpl: serverTmpl,
	}, nil
}

// Generate produces all artifacts for the project. Components render in the
// project's component-list order; components absent from that list are not
// rendered (the store keeps list and rows in sync, so this only matters if
// the invariant is violated out-of-band).
func (g *Generator) Generate(p *project.Project, components []component.Component) (*Result, error) {
	serverCode, err := g.renderServer(p.Name)
	if err != nil {
		return nil, err
	}

	return &Result{
		Frontend: Frontend{
			HTML: g.renderHTML(orderByProjectList(p, components)),
			CSS:  g.css,
			JS:   g.js,
		},
		Backend:  Backend{Go: serverCode},
		Database: Database{Schema: g.schema},
	}, nil
}

func (g *Generator) renderHTML(components []component.Component) string {
	var b strings.Builder
	b.WriteString(pageHead)

	for i := range components {
		writeFragment(&b, &components[i])
	}

	b.WriteString(pageFoot)
	return b.String()
}

// writeFragment emits the markup for one component, dispatching on its kind.
func writeFragment(b *strings.Builder, c *component.Component) {
	switch ParseKind(c.Type) {
	case KindHeader:
		fmt.Fprintf(b, "    <header>\n        <h1>%s</h1>\n    </header>\n", c.Content)
	case KindHero:
		fmt.Fprintf(b, "    <section class=\"hero\">\n        <h2>%s</h2>\n        <p>%s</p>\n        <button>%s</button>\n    </section>\n",
			propString(c.Properties, "title", defaultHeroTitle),
			propString(c.Properties, "subtitle", defaultHeroSubtitle),
			propString(c.Properties, "buttonText", defaultHeroButton),
		)
	case KindText:
		fmt.Fprintf(b, "    <section>\n        <p>%s</p>\n    </section>\n", c.Content)
	case KindForm:
		// Fixed 3-field contact form; properties are ignored.
		b.WriteString("    <form>\n        <input type=\"text\" placeholder=\"Your Name\">\n        <input type=\"email\" placeholder=\"Your Email\">\n        <textarea placeholder=\"Your Message\"></textarea>\n        <button type=\"submit\">Submit</button>\n    </form>\n")
	case KindUnknown:
		// Unrecognized types contribute nothing to the markup.
	}
}

func (g *Generator) renderServer(projectName string) (string, error) {
	var buf bytes.Buffer
	err := g.serverTmpl.Execute(&buf, struct{ ProjectName string }{ProjectName: projectName})
	if err != nil {
		return "", fmt.Errorf("failed to render server stub: %w", err)
	}
	return buf.String(), nil
}

// propString reads a named property, stringifying non-string values the way
// they would print. The default applies only when the key is absent.
func propString(properties map[string]any, key, defaultValue string) string {
	v, ok := properties[key]
	if !ok {
		return defaultValue
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// orderByProjectList arranges components in the project's component-id order.
func orderByProjectList(p *project.Project, components []component.Component) []component.Component {
	byID := make(map[string]*component.Component, len(components))
	for i := range components {
		byID[components[i].ID.String()] = &components[i]
	}

	ordered := make([]component.Component, 0, len(components))
	for _, id := range p.Components {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, *c)
		}
	}
	return ordered
}
