package render

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/prscribe/prscribe/internal/logging"
)

// Template is a named markdown document with placeholder tokens.
type Template struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

const defaultTemplateName = "default"

var builtinTemplates = map[string]Template{
	"default": {
		Name:        "default",
		Description: "General-purpose pull request description",
		Body: `# {{.Title}}

## Overview

{{.Description}}
{{.BreakingNotice}}
## Type of Change

- **Category**: {{.ChangeType}}
- **Confidence**: {{.Confidence}}

## Description

{{.Summary}}

## Checklist

- [ ] Code follows project conventions
- [ ] Tests added or updated
- [ ] Documentation updated where needed

## Testing

Describe how these changes were verified.
{{.ScreenshotsSection}}
## Notes

Generated by prscribe on {{.GeneratedAt}}.
`,
	},
	"feature": {
		Name:        "feature",
		Description: "New functionality",
		Body: `# {{.Title}}

## Overview

{{.Description}}
{{.BreakingNotice}}
## Type of Change

- **Category**: {{.ChangeType}}
- **Confidence**: {{.Confidence}}

## Description

### Motivation

Why is this feature needed?

{{.Summary}}

## Checklist

- [ ] Feature works as described
- [ ] Tests cover the new behavior
- [ ] Documentation updated

## Testing

Describe how the new functionality was verified.
{{.ScreenshotsSection}}
## Notes

Generated by prscribe on {{.GeneratedAt}}.
`,
	},
	"bugfix": {
		Name:        "bugfix",
		Description: "Bug fix with root cause analysis",
		Body: `# {{.Title}}

## Overview

{{.Description}}
{{.BreakingNotice}}
## Type of Change

- **Category**: {{.ChangeType}}
- **Confidence**: {{.Confidence}}

## Description

### Root Cause

What caused the bug?

### Fix

{{.Summary}}

## Checklist

- [ ] Root cause identified
- [ ] Regression test added
- [ ] Related code paths checked

## Testing

Describe how the fix was verified and the regression reproduced.
{{.ScreenshotsSection}}
## Notes

Generated by prscribe on {{.GeneratedAt}}.
`,
	},
	"refactor": {
		Name:        "refactor",
		Description: "Behavior-preserving restructuring",
		Body: `# {{.Title}}

## Overview

{{.Description}}
{{.BreakingNotice}}
## Type of Change

- **Category**: {{.ChangeType}}
- **Confidence**: {{.Confidence}}

## Description

### Before / After

What structure changed and why?

{{.Summary}}

## Checklist

- [ ] No behavior changes intended
- [ ] Existing tests still pass
- [ ] Public interfaces unchanged

## Testing

Describe how behavior preservation was verified.
{{.ScreenshotsSection}}
## Notes

Generated by prscribe on {{.GeneratedAt}}.
`,
	},
}

// Registry resolves template names, merging user-supplied templates over the
// built-ins. Unknown names fall back to the default template.
type Registry struct {
	templates map[string]Template
	log       logging.Logger
}

func NewRegistry(log logging.Logger) *Registry {
	templates := make(map[string]Template, len(builtinTemplates))
	for name, tpl := range builtinTemplates {
		templates[name] = tpl
	}
	return &Registry{templates: templates, log: log.WithName("templates")}
}

type templateFile struct {
	Description string `json:"description"`
	Body        string `json:"body"`
}

// LoadFile merges templates from a YAML file (name -> {description, body})
// over the built-in set. A missing or unreadable file is an error; the
// built-ins stay intact either way.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read templates file: %w", err)
	}
	var parsed map[string]templateFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse templates file: %w", err)
	}
	for name, tf := range parsed {
		if strings.TrimSpace(tf.Body) == "" {
			r.log.Info("skipping template with empty body", "name", name)
			continue
		}
		r.templates[name] = Template{Name: name, Description: tf.Description, Body: tf.Body}
	}
	r.log.Info("loaded user templates", "path", path, "count", len(parsed))
	return nil
}

// Get returns the named template, falling back to default for unknown names.
func (r *Registry) Get(name string) Template {
	if tpl, ok := r.templates[name]; ok {
		return tpl
	}
	if name != "" {
		r.log.Debug("unknown template, using default", "name", name)
	}
	return r.templates[defaultTemplateName]
}

// Names lists the registered template names, sorted.
func (r *Registry) Names() []Template {
	out := make([]Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Input carries the values substituted into a template.
type Input struct {
	Title       string
	Description string
	Summary     string
	ChangeType  string
	Confidence  float64
	Breaking    bool
	Screenshots []string
	GeneratedAt time.Time
}

// Render substitutes the input into the template body. The summary's own
// top-level headers are demoted one level so they nest under the section
// structure the size governor splits on.
func Render(tpl Template, in Input) string {
	summary := demoteHeaders(strings.TrimSpace(in.Summary))

	breakingNotice := ""
	if in.Breaking {
		breakingNotice = "\n> **Warning**: this change set contains breaking changes.\n"
	}

	screenshots := ""
	if len(in.Screenshots) > 0 {
		var b strings.Builder
		b.WriteString("\n## Screenshots\n\n")
		for _, url := range in.Screenshots {
			fmt.Fprintf(&b, "- %s\n", url)
		}
		screenshots = b.String()
	}

	doc := tpl.Body
	doc = strings.ReplaceAll(doc, "{{.Title}}", strings.TrimSpace(in.Title))
	doc = strings.ReplaceAll(doc, "{{.Description}}", strings.TrimSpace(in.Description))
	doc = strings.ReplaceAll(doc, "{{.Summary}}", summary)
	doc = strings.ReplaceAll(doc, "{{.ChangeType}}", in.ChangeType)
	doc = strings.ReplaceAll(doc, "{{.Confidence}}", fmt.Sprintf("%.0f%%", in.Confidence*100))
	doc = strings.ReplaceAll(doc, "{{.BreakingNotice}}", breakingNotice)
	doc = strings.ReplaceAll(doc, "{{.ScreenshotsSection}}", screenshots)
	doc = strings.ReplaceAll(doc, "{{.GeneratedAt}}", in.GeneratedAt.Format(time.RFC3339))
	return doc
}

func demoteHeaders(markdown string) string {
	if strings.HasPrefix(markdown, "## ") {
		markdown = "#" + markdown
	}
	return strings.ReplaceAll(markdown, "\n## ", "\n### ")
}
