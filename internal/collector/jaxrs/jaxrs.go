// Package jaxrs implements the JAX-RS routing dialect: one annotation per
// HTTP verb, a separate @Path, and a request body inferred from the first
// unannotated parameter.
package jaxrs

import (
	"strings"

	"rest-recon/internal/codemodel"
	"rest-recon/internal/collector"
	"rest-recon/internal/model"
)

// Namespaces holds the annotation packages of the dialect
var Namespaces = []string{"javax.ws.rs.", "jakarta.ws.rs."}

// Verbs recognised as method annotations, by simple name
var Verbs = []string{"GET", "POST", "PUT", "DELETE", "HEAD"}

// Dialect is the JAX-RS collector dialect
type Dialect struct{}

// New creates the JAX-RS dialect
func New() *Dialect {
	return &Dialect{}
}

func (d *Dialect) Name() string {
	return "jaxrs"
}

// ClassQualifies looks for any dialect annotation on the class or its methods
func (d *Dialect) ClassQualifies(c *codemodel.Class) bool {
	if c.Annotations.Any(func(a codemodel.Annotation) bool { return inNamespace(a.Name) }) {
		return true
	}
	for i := range c.Methods {
		if d.MethodQualifies(&c.Methods[i]) {
			return true
		}
	}
	return false
}

// MethodQualifies needs a verb annotation; there is no implicit verb
func (d *Dialect) MethodQualifies(m *codemodel.Method) bool {
	return m.Annotations.Any(func(a codemodel.Annotation) bool {
		_, ok := verbOf(a.Name)
		return ok
	})
}

// ExtractMapping merges verb, @Path, @Consumes and @Produces annotations
func (d *Dialect) ExtractMapping(annotations codemodel.Annotations) model.EndpointMapping {
	var mapping model.EndpointMapping

	for _, a := range annotations {
		if verb, ok := verbOf(a.Name); ok {
			mapping.HTTPMethods.Add(verb)
			continue
		}
		switch localName(a.Name) {
		case "Path":
			mapping.Paths.Add(a.Get("value")...)
		case "Consumes":
			mapping.Consumes.Add(a.Get("value")...)
		case "Produces":
			mapping.Produces.Add(a.Get("value")...)
		}
	}
	return mapping
}

// HTTPMethods only considers the method: classes never carry verbs
func (d *Dialect) HTTPMethods(_, methodMapping model.EndpointMapping) []string {
	return methodMapping.HTTPMethods.Values()
}

func (d *Dialect) ExtractPathVars(m *codemodel.Method, docs collector.ParamDocs) []model.PathVar {
	var vars []model.PathVar
	for _, p := range m.Params {
		a, ok := findLocal(p.Annotations, "PathParam")
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

// ExtractQueryParams reports every query parameter as optional
func (d *Dialect) ExtractQueryParams(m *codemodel.Method, docs collector.ParamDocs) []model.QueryParam {
	var params []model.QueryParam
	for _, p := range m.Params {
		a, ok := findLocal(p.Annotations, "QueryParam")
		if !ok {
			continue
		}
		name := bindingName(a, p.Name)
		params = append(params, model.QueryParam{
			Name:        name,
			Required:    false,
			Description: docs.QueryParam(name, p.Name),
			Type:        p.Type,
		})
	}
	return params
}

// ExtractRequestBody takes the first parameter without annotations whose
// type is not a framework type. Only the first candidate is kept.
func (d *Dialect) ExtractRequestBody(m *codemodel.Method, docs collector.ParamDocs) *model.RequestBody {
	for _, p := range m.Params {
		if len(p.Annotations) > 0 || isFrameworkType(p.Type) {
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

func inNamespace(name string) bool {
	for _, ns := range Namespaces {
		if strings.HasPrefix(name, ns) {
			return true
		}
	}
	return false
}

// localName strips the dialect namespace, "" for foreign annotations
func localName(name string) string {
	for _, ns := range Namespaces {
		if strings.HasPrefix(name, ns) {
			return strings.TrimPrefix(name, ns)
		}
	}
	return ""
}

func verbOf(name string) (string, bool) {
	local := localName(name)
	for _, v := range Verbs {
		if local == v {
			return v, true
		}
	}
	return "", false
}

func findLocal(annotations codemodel.Annotations, local string) (codemodel.Annotation, bool) {
	for _, a := range annotations {
		if localName(a.Name) == local {
			return a, true
		}
	}
	return codemodel.Annotation{}, false
}

// isFrameworkType matches types from the javax / jakarta namespaces
func isFrameworkType(t model.TypeRef) bool {
	return strings.HasPrefix(t.Name, "javax.") || strings.HasPrefix(t.Name, "jakarta.")
}

func bindingName(a codemodel.Annotation, paramName string) string {
	if name, ok := a.First("value"); ok && name != "" {
		return name
	}
	return paramName
}
