// Package openapi renders the catalog as an OpenAPI 3 document.
package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"rest-recon/internal/config"
	"rest-recon/internal/model"
)

// Format selects the document encoding
type Format int

const (
	JSON Format = iota
	YAML
)

// OpenAPIExporter constructs an OpenAPI document
type OpenAPIExporter struct {
	format Format
}

func NewOpenAPIExporter(format Format) *OpenAPIExporter {
	return &OpenAPIExporter{format: format}
}

func (b *OpenAPIExporter) Name() string {
	if b.format == YAML {
		return "yaml"
	}
	return "openapi"
}

// Export writes openapi.json or openapi.yaml into the output directory
func (b *OpenAPIExporter) Export(catalog *model.Catalog, cfg *config.Config) (string, error) {
	doc := BuildDocument(catalog, cfg)

	var (
		data []byte
		err  error
		name = "openapi.json"
	)
	if b.format == YAML {
		name = "openapi.yaml"
		data, err = marshalYAML(doc)
	} else {
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}

	outputFile := filepath.Join(cfg.Output.Dir, name)
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return "", err
	}
	return outputFile, nil
}

// CallableExtension marks whether consoles rendering the document may
// send live requests ("try it out")
const CallableExtension = "x-callable"

// BuildDocument converts the catalog. Every class becomes a tag; endpoints
// sharing a path share one path item.
func BuildDocument(catalog *model.Catalog, cfg *config.Config) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   cfg.DocumentTitle(),
			Version: apiVersion(cfg),
		},
		Servers: openapi3.Servers{{URL: cfg.ServerBasePath()}},
		Paths:   openapi3.NewPaths(),
		Extensions: map[string]any{
			CallableExtension: cfg.Output.Callable,
		},
	}

	operationIDs := make(map[string]int)
	for _, cls := range catalog.Classes {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: cls.Name, Description: cls.Description})

		for _, ep := range cls.SortedEndpoints() {
			item := doc.Paths.Value(ep.Path)
			if item == nil {
				item = &openapi3.PathItem{}
				doc.Paths.Set(ep.Path, item)
			}
			op := buildOperation(cls, ep)
			op.OperationID = uniqueID(operationIDs, operationID(ep))
			item.SetOperation(strings.ToUpper(ep.HTTPMethod), op)
		}
	}
	return doc
}

func buildOperation(cls model.ClassDescriptor, ep model.Endpoint) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.Tags = []string{cls.Name}
	op.Summary = ep.Summary
	if ep.Description != ep.Summary {
		op.Description = ep.Description
	}

	for _, v := range ep.PathVars {
		op.AddParameter(openapi3.NewPathParameter(v.Name).
			WithDescription(v.Description).
			WithSchema(schemaFor(v.Type)))
	}
	for _, q := range ep.QueryParams {
		op.AddParameter(openapi3.NewQueryParameter(q.Name).
			WithDescription(q.Description).
			WithRequired(q.Required).
			WithSchema(schemaFor(q.Type)))
	}

	if ep.RequestBody != nil {
		body := openapi3.NewRequestBody().
			WithDescription(ep.RequestBody.Description).
			WithRequired(true).
			WithContent(openapi3.NewContentWithSchema(schemaFor(ep.RequestBody.Type), mediaTypes(ep.Consumes)))
		op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	response := openapi3.NewResponse().WithDescription("Successful response")
	if !ep.ReturnType.IsVoid() {
		response = response.WithContent(openapi3.NewContentWithSchema(schemaFor(ep.ReturnType), mediaTypes(ep.Produces)))
	}
	op.Responses = openapi3.NewResponsesWithCapacity(1)
	op.Responses.Set("200", &openapi3.ResponseRef{Value: response})

	return op
}

func apiVersion(cfg *config.Config) string {
	if v := strings.TrimSpace(cfg.Output.APIVersion); v != "" {
		return v
	}
	return "1.0.0"
}

func mediaTypes(types []string) []string {
	if len(types) == 0 {
		return []string{"application/json"}
	}
	return types
}

// operationID is "get_users_id" for GET /users/{id}
func operationID(ep model.Endpoint) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(ep.HTTPMethod))
	for _, seg := range strings.Split(ep.Path, "/") {
		seg = strings.Trim(seg, "{}")
		if seg == "" {
			continue
		}
		sb.WriteByte('_')
		sb.WriteString(seg)
	}
	return sb.String()
}

func uniqueID(seen map[string]int, id string) string {
	seen[id]++
	if n := seen[id]; n > 1 {
		return fmt.Sprintf("%s_%d", id, n)
	}
	return id
}

// schemaFor maps a Java type to a JSON schema
func schemaFor(t model.TypeRef) *openapi3.Schema {
	name := strings.TrimSpace(t.Name)

	if strings.HasSuffix(name, "[]") || strings.HasSuffix(name, "...") {
		elem := strings.TrimSuffix(strings.TrimSuffix(name, "[]"), "...")
		if elem == "byte" {
			return openapi3.NewBytesSchema()
		}
		return openapi3.NewArraySchema().WithItems(schemaFor(model.TypeRef{Name: elem}))
	}

	base, args := splitGeneric(name)
	simple := base
	if idx := strings.LastIndex(base, "."); idx != -1 {
		simple = base[idx+1:]
	}

	switch simple {
	case "String", "char", "Character", "CharSequence", "UUID":
		return openapi3.NewStringSchema()
	case "int", "Integer", "short", "Short", "byte", "Byte":
		return openapi3.NewInt32Schema()
	case "long", "Long", "BigInteger":
		return openapi3.NewInt64Schema()
	case "float", "Float", "double", "Double", "BigDecimal":
		return openapi3.NewFloat64Schema()
	case "boolean", "Boolean":
		return openapi3.NewBoolSchema()
	case "Date", "LocalDate":
		return openapi3.NewStringSchema().WithFormat("date")
	case "LocalDateTime", "ZonedDateTime", "OffsetDateTime", "Instant":
		return openapi3.NewDateTimeSchema()
	case "List", "Set", "Collection", "Iterable", "ArrayList", "LinkedList", "HashSet":
		items := openapi3.NewObjectSchema()
		if len(args) > 0 {
			items = schemaFor(model.TypeRef{Name: args[0]})
		}
		return openapi3.NewArraySchema().WithItems(items)
	case "Map", "HashMap", "LinkedHashMap":
		s := openapi3.NewObjectSchema()
		if len(args) == 2 {
			s = s.WithAdditionalProperties(schemaFor(model.TypeRef{Name: args[1]}))
		}
		return s
	case "Optional", "ResponseEntity", "Mono", "CompletableFuture":
		if len(args) > 0 {
			return schemaFor(model.TypeRef{Name: args[0]})
		}
		return openapi3.NewObjectSchema()
	}

	s := openapi3.NewObjectSchema()
	s.Title = t.SimpleName()
	return s
}

// splitGeneric splits "Map<String, List<X>>" into "Map" and its top-level arguments
func splitGeneric(name string) (string, []string) {
	open := strings.Index(name, "<")
	if open == -1 || !strings.HasSuffix(name, ">") {
		return name, nil
	}
	base, inner := name[:open], name[open+1:len(name)-1]

	var args []string
	depth, start := 0, 0
	for i, ch := range inner {
		switch ch {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return base, args
}

// marshalYAML re-encodes the JSON form so key order and omitempty rules match
func marshalYAML(doc *openapi3.T) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

// blockStyle drops the flow style inherited from JSON input
func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" {
		n.Style = 0
	} else {
		n.Style &^= yaml.FlowStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}
