package exporter

import (
	"os"
	"strings"
	"testing"

	"rest-recon/internal/config"
	"rest-recon/internal/model"

	"github.com/xuri/excelize/v2"
)

func sampleCatalog() *model.Catalog {
	return &model.Catalog{
		GeneratedAt: "2024-05-01 10:00:00",
		Classes: []model.ClassDescriptor{
			{
				Name:        "Users",
				ContextPath: "/api",
				Description: "User management.\nSecond line.",
				Endpoints: []model.Endpoint{
					{
						Path:       "/api/users",
						HTTPMethod: "POST",
						RequestBody: &model.RequestBody{
							ParameterName: "user",
							Type:          model.TypeRef{Name: "com.example.UserDTO"},
						},
						Consumes: []string{"application/json"},
						Summary:  "Creates a user.",
					},
					{
						Path:       "/api/users/{id}",
						HTTPMethod: "GET",
						PathVars:   []model.PathVar{{Name: "id", Type: model.TypeRef{Name: "java.lang.Long"}}},
						ReturnType: model.TypeRef{Name: "com.example.UserDTO"},
					},
				},
			},
			{
				Name: "com.example.Orders",
				Endpoints: []model.Endpoint{
					{
						Path:        "/orders",
						HTTPMethod:  "GET",
						QueryParams: []model.QueryParam{{Name: "status", Type: model.TypeRef{Name: "java.lang.String"}}},
					},
				},
			},
		},
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Output: config.OutputConfig{
			Dir:      t.TempDir(),
			FileName: "report",
		},
	}
}

func TestExcelExport(t *testing.T) {
	cfg := testConfig(t)

	path, err := NewExcelExporter().Export(sampleCatalog(), cfg)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if path != cfg.OutputPath("xlsx") {
		t.Errorf("path = %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Output file was not created: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open generated Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if strings.Join(sheets, ",") != "Overview,Endpoints" {
		t.Errorf("sheets = %v", sheets)
	}

	overview, err := f.GetRows(overviewSheet)
	if err != nil {
		t.Fatal(err)
	}
	if overview[1][0] != "Routable Classes" || overview[1][1] != "2" {
		t.Errorf("overview row = %v", overview[1])
	}
	if overview[2][1] != "3" {
		t.Errorf("total endpoints = %v", overview[2])
	}

	rows, err := f.GetRows(endpointsSheet)
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	// header, class, 2 endpoints, class, 1 endpoint
	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d: %v", len(rows), rows)
	}
	if rows[1][0] != "[Class]" || rows[1][1] != "Users" {
		t.Errorf("class row = %v", rows[1])
	}
	// endpoints of a class are sorted by path
	if rows[2][0] != "POST" || rows[2][1] != "/api/users" || rows[2][4] != "user (UserDTO)" {
		t.Errorf("first endpoint row = %v", rows[2])
	}
	if rows[3][1] != "/api/users/{id}" || rows[3][2] != "id (Long)" {
		t.Errorf("second endpoint row = %v", rows[3])
	}
	if rows[5][3] != "status (String), optional" {
		t.Errorf("query params cell = %q", rows[5][3])
	}
}

func TestGetExporters(t *testing.T) {
	got := GetExporters([]string{"legacy", "HTML", "swagger", "json", "yaml", "xlsx", "docx", "pdf", ""})

	var names []string
	for _, e := range got {
		names = append(names, e.Name())
	}
	if strings.Join(names, ",") != "html,openapi,yaml,excel,word" {
		t.Errorf("exporters = %v", names)
	}

	if len(GetExporters(nil)) != 0 {
		t.Error("no formats should select no exporter")
	}
}
