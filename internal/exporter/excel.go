package exporter

import (
	"fmt"
	"strings"

	"rest-recon/internal/config"
	"rest-recon/internal/exporter/common"
	"rest-recon/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	overviewSheet  = "Overview"
	endpointsSheet = "Endpoints"
)

// ExcelExporter handles the Excel generation
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Name() string {
	return "excel"
}

// Export generates the workbook
func (e *ExcelExporter) Export(catalog *model.Catalog, cfg *config.Config) (string, error) {
	outputFile := cfg.OutputPath("xlsx")
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return "", err
	}

	// 1. Create Overview Sheet
	if err := e.writeOverview(f, styler, catalog); err != nil {
		return "", err
	}

	// 2. Create Endpoints Sheet
	if err := e.writeEndpoints(f, styler, catalog); err != nil {
		return "", err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return "", err
		}
	}
	if idx, err := f.GetSheetIndex(overviewSheet); err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(outputFile); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return outputFile, nil
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, catalog *model.Catalog) error {
	sheet := overviewSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	summary := catalog.Summary()

	// Section A: Catalog Summary
	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Count"}, s.HeaderStyle)
	row++

	type metric struct {
		Key string
		Val any
	}
	metrics := []metric{
		{"Routable Classes", summary.TotalClasses},
		{"Total Endpoints", summary.TotalEndpoints},
	}
	for _, method := range summary.Methods() {
		metrics = append(metrics, metric{method + " Endpoints", summary.ByMethod[method]})
	}
	if summary.GeneratedAt != "" {
		metrics = append(metrics, metric{"Generated At", summary.GeneratedAt})
	}

	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	row += 2 // Spacer

	// Section B: Classes in catalog order
	e.writeRow(f, sheet, row, []string{"No", "Class", "Context Path", "Endpoints", "Description"}, s.HeaderStyle)
	row++

	for i, cls := range catalog.Classes {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), cls.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), cls.ContextPath)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), len(cls.Endpoints))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), firstLine(cls.Description))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), s.DefaultStyle)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 45)
	f.SetColWidth(sheet, "C", "D", 16)
	f.SetColWidth(sheet, "E", "E", 60)
	return nil
}

// --- Endpoints Sheet Logic ---

var endpointHeaders = []string{
	"Method", "Path", "Path Variables", "Query Parameters", "Request Body",
	"Consumes", "Produces", "Returns", "Summary",
}

func (e *ExcelExporter) writeEndpoints(f *excelize.File, s *Styler, catalog *model.Catalog) error {
	sheet := endpointsSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	e.writeRow(f, sheet, 1, endpointHeaders, s.HeaderStyle)
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	lastCol, _ := excelize.ColumnNumberToName(len(endpointHeaders))

	row := 2
	for _, cls := range catalog.Classes {
		// 1. Class row
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "[Class]")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), cls.Name)
		if cls.ContextPath != "" {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "context: "+cls.ContextPath)
		}
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), firstLine(cls.Description))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), s.ClassStyle)
		row++

		// 2. Endpoint rows
		for _, ep := range cls.SortedEndpoints() {
			e.writeEndpointRow(f, sheet, row, ep, s)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "E", 35)
	f.SetColWidth(sheet, "F", "G", 22)
	f.SetColWidth(sheet, "H", "H", 25)
	f.SetColWidth(sheet, "I", "I", 50)
	return nil
}

func (e *ExcelExporter) writeEndpointRow(f *excelize.File, sheet string, row int, ep model.Endpoint, s *Styler) {
	values := []string{
		ep.HTTPMethod,
		ep.Path,
		strings.Join(common.PathVarLines(ep), "\n"),
		strings.Join(common.QueryParamLines(ep), "\n"),
		common.RequestBodyLine(ep),
		common.MediaTypes(ep.Consumes),
		common.MediaTypes(ep.Produces),
		common.ReturnLine(ep),
		ep.Summary,
	}
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
	}

	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), s.MethodStyle(ep.HTTPMethod))
	f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
	f.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("I%d", row), s.WrapStyle)
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		return s[:idx]
	}
	return s
}
