package exporter

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// methodColors tints the HTTP method cell like the HTML badges
var methodColors = map[string]string{
	"GET":    "#1F6FB2",
	"POST":   "#2E8B57",
	"PUT":    "#C77700",
	"PATCH":  "#00897B",
	"DELETE": "#D32F2F",
}

// Styler handles Excel styling
type Styler struct {
	File *excelize.File

	// Pre-defined styles
	HeaderStyle  int
	ClassStyle   int
	DefaultStyle int
	WrapStyle    int

	methodStyles map[string]int
}

// NewStyler creates a new Styler and explicitly registers styles
func NewStyler(f *excelize.File) (*Styler, error) {
	s := &Styler{File: f, methodStyles: make(map[string]int)}
	var err error

	// Header Style: Bold, Gray Background, Center Aligned
	s.HeaderStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#000000"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Class Style: Blue Text (one row per routable class)
	s.ClassStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#0000FF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F3F6FB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	s.DefaultStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Wrap Style: multi-line parameter lists and descriptions
	s.WrapStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	for method, color := range methodColors {
		s.methodStyles[method], err = f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: color},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    createBorder(),
		})
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// MethodStyle returns the style of an HTTP method cell
func (s *Styler) MethodStyle(method string) int {
	if style, ok := s.methodStyles[strings.ToUpper(method)]; ok {
		return style
	}
	return s.DefaultStyle
}

func createBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "D4D4D4", Style: 1},
		{Type: "top", Color: "D4D4D4", Style: 1},
		{Type: "bottom", Color: "D4D4D4", Style: 1},
		{Type: "right", Color: "D4D4D4", Style: 1},
	}
}
