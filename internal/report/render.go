package report

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// Formats accepted by Render
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatYAML     = "yaml"
)

//go:embed templates
var templates embed.FS

// Render renders the inventory in the given format
func Render(inv *Inventory, format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatMarkdown, "md":
		return Markdown(inv)
	case FormatHTML:
		return HTML(inv)
	case FormatYAML, "yml":
		return YAML(inv)
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}
}

// Markdown renders the inventory as a Markdown table
func Markdown(inv *Inventory) (string, error) {
	layout, err := templates.ReadFile("templates/inventory.md.hbs")
	if err != nil {
		return "", fmt.Errorf("failed to read inventory.md.hbs: %w", err)
	}

	tpl, err := raymond.Parse(string(layout))
	if err != nil {
		return "", fmt.Errorf("failed to parse inventory.md.hbs: %w", err)
	}
	tpl.RegisterHelper("join", func(files []string) raymond.SafeString {
		quoted := make([]string, len(files))
		for i, f := range files {
			quoted[i] = "`" + f + "`"
		}
		return raymond.SafeString(strings.Join(quoted, ", "))
	})

	out, err := tpl.Exec(templateData(inv))
	if err != nil {
		return "", fmt.Errorf("failed to render inventory.md.hbs: %w", err)
	}
	return out, nil
}

// HTML renders the Markdown inventory to an HTML fragment
func HTML(inv *Inventory) (string, error) {
	md, err := Markdown(inv)
	if err != nil {
		return "", err
	}

	converter := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(ghtml.WithXHTML()),
	)

	var buf bytes.Buffer
	if err := converter.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("failed to convert inventory to HTML: %w", err)
	}
	return buf.String(), nil
}

// YAML renders the inventory as YAML
func YAML(inv *Inventory) (string, error) {
	out, err := yaml.Marshal(inv)
	if err != nil {
		return "", fmt.Errorf("failed to marshal inventory: %w", err)
	}
	return string(out), nil
}

func templateData(inv *Inventory) map[string]interface{} {
	locations := make([]map[string]interface{}, 0, len(inv.Locations))
	var conflicts, errs []string
	for _, loc := range inv.Locations {
		locations = append(locations, map[string]interface{}{
			"name":  loc.Name,
			"kind":  loc.Kind,
			"path":  loc.Path,
			"files": loc.Files,
		})
		for _, c := range loc.Conflicts {
			conflicts = append(conflicts, loc.Path+": "+c)
		}
		if loc.Error != "" {
			errs = append(errs, loc.Path+": "+loc.Error)
		}
	}

	return map[string]interface{}{
		"root":      inv.Root,
		"assets":    inv.AssetsDirectory,
		"global":    inv.GlobalDirectory,
		"locations": locations,
		"conflicts": conflicts,
		"errors":    errs,
	}
}
