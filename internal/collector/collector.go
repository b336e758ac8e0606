package collector

import (
	"errors"
	"fmt"

	"rest-recon/internal/codemodel"
	"rest-recon/internal/logger"
	"rest-recon/internal/model"
)

// ErrInheritanceCycle reports a class hierarchy that loops back on itself
var ErrInheritanceCycle = errors.New("inheritance cycle")

// Collect resolves every class of the model under one dialect, in model order.
// Classes that fail are left out and their errors joined; the returned
// descriptors stay valid.
func Collect(d Dialect, m codemodel.Model) ([]model.ClassDescriptor, error) {
	var descriptors []model.ClassDescriptor
	var errs []error

	for _, c := range m.Classes() {
		desc, err := DescribeClass(d, m, c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if desc != nil {
			descriptors = append(descriptors, *desc)
		}
	}
	return descriptors, errors.Join(errs...)
}

// DescribeClass builds the descriptor of a single class.
// It returns nil without error when the class is ignored, does not qualify
// under the dialect, or resolves to no endpoint.
func DescribeClass(d Dialect, m codemodel.Model, c *codemodel.Class) (*model.ClassDescriptor, error) {
	if c.Doc.HasTag(TagIgnore) {
		logger.Skip("class", c.QualifiedName, "@"+TagIgnore)
		return nil, nil
	}
	if !d.ClassQualifies(c) {
		return nil, nil
	}

	contextPath := firstOf(firstTag(c.Doc, TagContextPath))
	classMapping := d.ExtractMapping(c.Annotations)

	endpoints, err := collectEndpoints(d, m, c, contextPath, classMapping)
	if err != nil {
		return nil, fmt.Errorf("%s [%s]: %w", c.QualifiedName, d.Name(), err)
	}
	if len(endpoints) == 0 {
		logger.Skip("class", c.QualifiedName, "no endpoints under "+d.Name())
		return nil, nil
	}

	name := firstOf(firstTag(c.Doc, TagName))
	if name == "" {
		name = c.QualifiedName
	}

	return &model.ClassDescriptor{
		Name:        name,
		ContextPath: contextPath,
		Endpoints:   endpoints,
		Description: c.Doc.Text(),
	}, nil
}

// collectEndpoints walks c and its superclass chain. Every level uses the
// context path and class mapping of c. The first endpoint produced for a
// (method, path) pair wins, so declarations in c shadow inherited ones.
func collectEndpoints(d Dialect, m codemodel.Model, c *codemodel.Class, contextPath string, classMapping model.EndpointMapping) ([]model.Endpoint, error) {
	var endpoints []model.Endpoint
	visited := make(map[string]bool)
	produced := make(map[string]bool)

	for cur := c; cur != nil; {
		if visited[cur.QualifiedName] {
			return nil, fmt.Errorf("%w: %s reached twice", ErrInheritanceCycle, cur.QualifiedName)
		}
		visited[cur.QualifiedName] = true

		for i := range cur.Methods {
			for _, ep := range methodEndpoints(d, &cur.Methods[i], cur, contextPath, classMapping) {
				if produced[ep.Key()] {
					continue
				}
				produced[ep.Key()] = true
				endpoints = append(endpoints, ep)
			}
		}

		next, ok := m.Superclass(cur)
		if !ok {
			break
		}
		cur = next
	}
	return endpoints, nil
}

// methodEndpoints expands one handler method into an endpoint per (verb, path)
func methodEndpoints(d Dialect, method *codemodel.Method, owner *codemodel.Class, contextPath string, classMapping model.EndpointMapping) []model.Endpoint {
	if method.Doc.HasTag(TagIgnore) {
		logger.Skip("method", owner.QualifiedName+"."+method.Name, "@"+TagIgnore)
		return nil
	}
	if !d.MethodQualifies(method) {
		return nil
	}

	methodMapping := d.ExtractMapping(method.Annotations)
	paths := ResolvePaths(contextPath, classMapping, methodMapping)
	verbs := d.HTTPMethods(classMapping, methodMapping)
	if len(verbs) == 0 {
		logger.Skip("method", owner.QualifiedName+"."+method.Name, "no HTTP method")
		return nil
	}

	docs := NewParamDocs(method.Doc)
	template := model.Endpoint{
		QueryParams: d.ExtractQueryParams(method, docs),
		PathVars:    d.ExtractPathVars(method, docs),
		RequestBody: d.ExtractRequestBody(method, docs),
		Consumes:    model.FirstNonEmpty(methodMapping.Consumes, classMapping.Consumes),
		Produces:    model.FirstNonEmpty(methodMapping.Produces, classMapping.Produces),
		Summary:     method.Doc.Summary(),
		Description: method.Doc.Text(),
		ReturnType:  method.ReturnType,
	}

	endpoints := make([]model.Endpoint, 0, len(verbs)*len(paths))
	for _, verb := range verbs {
		for _, path := range paths {
			endpoints = append(endpoints, model.NewEndpoint(template, verb, path))
		}
	}
	return endpoints
}
