// Package html renders the catalog as a single self-contained HTML page.
package html

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"rest-recon/internal/config"
	"rest-recon/internal/exporter/common"
	"rest-recon/internal/model"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

func (e *HTMLExporter) Name() string {
	return "html"
}

// PageData is the template input
type PageData struct {
	Title          string
	Stylesheet     string
	CSS            template.CSS
	GeneratedAt    string
	TotalClasses   int
	TotalEndpoints int
	Methods        []MethodCount
	Classes        []ClassSection
}

type MethodCount struct {
	Method string
	Count  int
}

// ClassSection is a class with its endpoints sorted by path
type ClassSection struct {
	Name        string
	ContextPath string
	Description string
	Endpoints   []model.Endpoint
}

var pageTemplate = template.Must(template.New("rest-report").Funcs(template.FuncMap{
	"methodColor": getMethodColor,
	"methodBadge": getMethodBadge,
	"typeName": func(t model.TypeRef) string {
		return t.SimpleName()
	},
	"returnType": common.ReturnLine,
	"join":       common.MediaTypes,
}).Parse(PageTemplate))

// BuildPageData prepares the template input from a catalog
func BuildPageData(catalog *model.Catalog, cfg *config.Config) PageData {
	summary := catalog.Summary()

	data := PageData{
		Title:          cfg.DocumentTitle(),
		Stylesheet:     strings.TrimSpace(cfg.Output.Stylesheet),
		GeneratedAt:    catalog.GeneratedAt,
		TotalClasses:   summary.TotalClasses,
		TotalEndpoints: summary.TotalEndpoints,
	}
	if data.Stylesheet == "" {
		data.CSS = template.CSS(DefaultStylesheet)
	}
	for _, m := range summary.Methods() {
		data.Methods = append(data.Methods, MethodCount{Method: m, Count: summary.ByMethod[m]})
	}
	for _, cls := range catalog.Classes {
		data.Classes = append(data.Classes, ClassSection{
			Name:        cls.Name,
			ContextPath: cls.ContextPath,
			Description: cls.Description,
			Endpoints:   cls.SortedEndpoints(),
		})
	}
	return data
}

func (e *HTMLExporter) Export(catalog *model.Catalog, cfg *config.Config) (string, error) {
	outputFile := cfg.OutputPath("html")
	f, err := os.Create(outputFile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := pageTemplate.Execute(f, BuildPageData(catalog, cfg)); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return outputFile, f.Close()
}

// getMethodColor returns CSS color class for HTTP method
func getMethodColor(method string) string {
	switch strings.ToUpper(method) {
	case "GET":
		return "method-get"
	case "POST":
		return "method-post"
	case "PUT":
		return "method-put"
	case "DELETE":
		return "method-delete"
	case "PATCH":
		return "method-patch"
	default:
		return "method-default"
	}
}

// getMethodBadge returns badge text for HTTP method
func getMethodBadge(method string) string {
	return strings.ToUpper(method)
}
