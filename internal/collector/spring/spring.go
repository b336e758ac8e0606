// Package spring implements the Spring MVC routing dialect: a single
// @RequestMapping style annotation on classes and methods, with explicit
// parameter binding annotations.
package spring

import (
	"strings"

	"rest-recon/internal/codemodel"
	"rest-recon/internal/collector"
	"rest-recon/internal/model"
)

const (
	annotationPackage = "org.springframework.web.bind.annotation."

	MappingAnnotation     = annotationPackage + "RequestMapping"
	PathVarAnnotation     = annotationPackage + "PathVariable"
	ParamAnnotation       = annotationPackage + "RequestParam"
	RequestBodyAnnotation = annotationPackage + "RequestBody"
)

// ControllerAnnotations mark a class as a Spring controller
var ControllerAnnotations = []string{
	"org.springframework.stereotype.Controller",
	annotationPackage + "RestController",
}

// composedMappings are shortcut mappings with an implied verb
var composedMappings = map[string]string{
	annotationPackage + "GetMapping":    "GET",
	annotationPackage + "PostMapping":   "POST",
	annotationPackage + "PutMapping":    "PUT",
	annotationPackage + "DeleteMapping": "DELETE",
	annotationPackage + "PatchMapping":  "PATCH",
}

// DefaultHTTPMethods apply when neither the method nor the class names a verb
var DefaultHTTPMethods = []string{"GET"}

// Dialect is the Spring collector dialect
type Dialect struct{}

// New creates the Spring dialect
func New() *Dialect {
	return &Dialect{}
}

func (d *Dialect) Name() string {
	return "spring"
}

// ClassQualifies requires a controller stereotype
func (d *Dialect) ClassQualifies(c *codemodel.Class) bool {
	for _, name := range ControllerAnnotations {
		if _, ok := c.Annotations.Find(name); ok {
			return true
		}
	}
	return false
}

// MethodQualifies requires a request mapping
func (d *Dialect) MethodQualifies(m *codemodel.Method) bool {
	return m.Annotations.Any(isMapping)
}

// ExtractMapping reads the first request mapping found
func (d *Dialect) ExtractMapping(annotations codemodel.Annotations) model.EndpointMapping {
	for _, a := range annotations {
		if !isMapping(a) {
			continue
		}

		var mapping model.EndpointMapping
		mapping.Paths.Add(a.Get("value")...)
		mapping.Paths.Add(a.Get("path")...)

		if verb, ok := composedMappings[a.Name]; ok {
			mapping.HTTPMethods.Add(verb)
		}
		for _, value := range a.Get("method") {
			mapping.HTTPMethods.Add(constantName(value))
		}

		mapping.Consumes.Add(a.Get("consumes")...)
		mapping.Produces.Add(a.Get("produces")...)
		return mapping
	}

	// Simply return an empty mapping if no request mapping was found
	return model.EndpointMapping{}
}

// HTTPMethods falls back from method to class, then to GET
func (d *Dialect) HTTPMethods(classMapping, methodMapping model.EndpointMapping) []string {
	if verbs := model.FirstNonEmpty(methodMapping.HTTPMethods, classMapping.HTTPMethods); len(verbs) > 0 {
		return verbs
	}
	return append([]string(nil), DefaultHTTPMethods...)
}

func (d *Dialect) ExtractPathVars(m *codemodel.Method, docs collector.ParamDocs) []model.PathVar {
	var vars []model.PathVar
	for _, p := range m.Params {
		a, ok := p.Annotations.Find(PathVarAnnotation)
		if !ok {
			continue
		}
		name := bindingName(a, p.Name)
		vars = append(vars, model.PathVar{
			Name:        name,
			Description: docs.PathVar(name, p.Name),
			Type:        p.Type,
		})
	}
	return vars
}

// ExtractQueryParams treats query params as required unless
// required=false is written or a default value is present
func (d *Dialect) ExtractQueryParams(m *codemodel.Method, docs collector.ParamDocs) []model.QueryParam {
	var params []model.QueryParam
	for _, p := range m.Params {
		a, ok := p.Annotations.Find(ParamAnnotation)
		if !ok {
			continue
		}
		name := bindingName(a, p.Name)

		required := true
		if v, ok := a.First("required"); ok {
			required = strings.EqualFold(strings.TrimSpace(v), "true")
		}
		// A default value makes the parameter optional whatever "required" says
		if a.Has("defaultValue") {
			required = false
		}

		params = append(params, model.QueryParam{
			Name:        name,
			Required:    required,
			Description: docs.QueryParam(name, p.Name),
			Type:        p.Type,
		})
	}
	return params
}

// ExtractRequestBody returns the @RequestBody parameter
func (d *Dialect) ExtractRequestBody(m *codemodel.Method, docs collector.ParamDocs) *model.RequestBody {
	for _, p := range m.Params {
		if _, ok := p.Annotations.Find(RequestBodyAnnotation); !ok {
			continue
		}
		return &model.RequestBody{
			ParameterName: p.Name,
			Description:   docs.RequestBody(p.Name),
			Type:          p.Type,
		}
	}
	return nil
}

func isMapping(a codemodel.Annotation) bool {
	if a.Name == MappingAnnotation {
		return true
	}
	_, ok := composedMappings[a.Name]
	return ok
}

// bindingName is the explicit binding name, else the Java parameter name
func bindingName(a codemodel.Annotation, paramName string) string {
	if name, ok := a.First("value", "name"); ok && name != "" {
		return name
	}
	return paramName
}

// constantName turns "RequestMethod.POST" into "POST"
func constantName(value string) string {
	value = strings.TrimSpace(value)
	if idx := strings.LastIndex(value, "."); idx != -1 {
		value = value[idx+1:]
	}
	return strings.ToUpper(value)
}
