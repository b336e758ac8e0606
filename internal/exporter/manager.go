package exporter

import (
	"strings"

	"rest-recon/internal/exporter/html"
	"rest-recon/internal/exporter/openapi"
	"rest-recon/internal/exporter/word"
	"rest-recon/internal/logger"
)

// GetExporters returns a list of Exporters based on requested formats.
// Aliases of one format produce a single exporter; unknown formats are
// logged and ignored.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if fmtStr == "" {
			continue
		}

		var key string
		var build func() Exporter
		switch fmtStr {
		case "legacy", "html":
			key, build = "html", func() Exporter { return html.NewHTMLExporter() }
		case "swagger", "openapi", "json":
			key, build = "openapi", func() Exporter { return openapi.NewOpenAPIExporter(openapi.JSON) }
		case "yaml", "yml":
			key, build = "yaml", func() Exporter { return openapi.NewOpenAPIExporter(openapi.YAML) }
		case "excel", "xlsx":
			key, build = "excel", func() Exporter { return NewExcelExporter() }
		case "word", "docx":
			key, build = "word", func() Exporter { return word.NewWordExporter() }
		default:
			logger.Warn("Unknown output format %q ignored", fmtStr)
			continue
		}

		if seen[key] {
			continue
		}
		seen[key] = true
		exporters = append(exporters, build())
	}

	return exporters
}
