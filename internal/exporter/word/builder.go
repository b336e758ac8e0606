// Package word fills an embedded .docx template with a plain-text rendering
// of the catalog.
package word

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"rest-recon/internal/config"
	"rest-recon/internal/exporter/common"
	"rest-recon/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

// lineBreak is the only sequence the docx library turns into <w:br/>
const lineBreak = "\r\n"

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Name() string {
	return "word"
}

func (e *WordExporter) Export(catalog *model.Catalog, cfg *config.Config) (string, error) {
	// 1. Extract embedded template to temp file
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "rest-recon-template-*.docx")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()
	summary := catalog.Summary()

	// 2. Replace Summary Placeholders
	replacements := []struct{ placeholder, value string }{
		{"{{Title}}", cfg.DocumentTitle()},
		{"{{Date}}", summary.GeneratedAt},
		{"{{TotalClasses}}", fmt.Sprintf("%d", summary.TotalClasses)},
		{"{{TotalEndpoints}}", fmt.Sprintf("%d", summary.TotalEndpoints)},
		{"{{Content}}", BuildContent(catalog)},
	}
	for _, rep := range replacements {
		if err := doc.Replace(rep.placeholder, rep.value, -1); err != nil {
			return "", fmt.Errorf("failed to fill %s: %w", rep.placeholder, err)
		}
	}

	outFile := cfg.OutputPath("docx")
	if err := doc.WriteToFile(outFile); err != nil {
		return "", fmt.Errorf("failed to write Word document: %w", err)
	}
	return outFile, nil
}

// BuildContent renders every class and endpoint as plain text
func BuildContent(catalog *model.Catalog) string {
	var sb strings.Builder

	for i, cls := range catalog.Classes {
		if i > 0 {
			sb.WriteString(lineBreak + strings.Repeat("=", 80) + lineBreak + lineBreak)
		}
		writeLine(&sb, cls.Name)
		if cls.ContextPath != "" {
			writeLine(&sb, "Context path: "+cls.ContextPath)
		}
		if cls.Description != "" {
			for _, line := range strings.Split(cls.Description, "\n") {
				writeLine(&sb, line)
			}
		}
		sb.WriteString(lineBreak)

		endpoints := cls.SortedEndpoints()
		for j, ep := range endpoints {
			buildEndpointText(&sb, ep)
			if j < len(endpoints)-1 {
				sb.WriteString(strings.Repeat("-", 80) + lineBreak + lineBreak)
			}
		}
	}
	return sb.String()
}

// buildEndpointText builds plain text documentation for a single endpoint
func buildEndpointText(sb *strings.Builder, ep model.Endpoint) {
	writeLine(sb, fmt.Sprintf("[%s] %s", ep.HTTPMethod, ep.Path))
	if ep.Summary != "" {
		writeLine(sb, "Summary: "+ep.Summary)
	}
	if len(ep.Consumes) > 0 {
		writeLine(sb, "Consumes: "+common.MediaTypes(ep.Consumes))
	}
	if len(ep.Produces) > 0 {
		writeLine(sb, "Produces: "+common.MediaTypes(ep.Produces))
	}
	sb.WriteString(lineBreak)

	if len(ep.PathVars) > 0 || len(ep.QueryParams) > 0 || ep.RequestBody != nil {
		writeLine(sb, "REQUEST PARAMETERS:")
		writeLine(sb, fmt.Sprintf("%-25s %-20s %-10s %-10s %s", "Name", "Type", "In", "Required", "Description"))
		writeLine(sb, strings.Repeat("-", 100))

		for _, v := range ep.PathVars {
			writeParam(sb, v.Name, v.Type, "path", true, v.Description)
		}
		for _, q := range ep.QueryParams {
			writeParam(sb, q.Name, q.Type, "query", q.Required, q.Description)
		}
		if body := ep.RequestBody; body != nil {
			writeParam(sb, body.ParameterName, body.Type, "body", true, body.Description)
		}
		sb.WriteString(lineBreak)
	}

	writeLine(sb, "RESPONSE: "+common.ReturnLine(ep))
	sb.WriteString(lineBreak)
}

func writeParam(sb *strings.Builder, name string, typ model.TypeRef, in string, required bool, description string) {
	req := "No"
	if required {
		req = "Yes"
	}
	writeLine(sb, fmt.Sprintf("%-25s %-20s %-10s %-10s %s",
		common.Truncate(name, 25),
		common.Truncate(typ.SimpleName(), 20),
		in,
		req,
		description))
}

func writeLine(sb *strings.Builder, s string) {
	sb.WriteString(s)
	sb.WriteString(lineBreak)
}
