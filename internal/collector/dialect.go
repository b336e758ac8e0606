// Package collector resolves routing annotations found in a code model into
// a catalog of HTTP endpoints. The annotation grammar itself is supplied by a
// Dialect; the merge rules (paths, verbs, media types, inheritance, override
// tags) live here and are shared by every dialect.
package collector

import (
	"rest-recon/internal/codemodel"
	"rest-recon/internal/model"
)

// Dialect is one routing annotation grammar
type Dialect interface {
	// Name identifies the dialect in configuration and logs ("spring", "jaxrs")
	Name() string

	// ClassQualifies reports whether the class can hold endpoints under this dialect
	ClassQualifies(c *codemodel.Class) bool

	// MethodQualifies reports whether the method declares an endpoint
	MethodQualifies(m *codemodel.Method) bool

	// ExtractMapping reads the routing facts of a class or method
	ExtractMapping(annotations codemodel.Annotations) model.EndpointMapping

	ExtractPathVars(m *codemodel.Method, docs ParamDocs) []model.PathVar
	ExtractQueryParams(m *codemodel.Method, docs ParamDocs) []model.QueryParam

	// ExtractRequestBody returns the payload parameter, nil if there is none
	ExtractRequestBody(m *codemodel.Method, docs ParamDocs) *model.RequestBody

	// HTTPMethods resolves the verbs of a method from both mapping levels,
	// applying the dialect default when neither declares one
	HTTPMethods(classMapping, methodMapping model.EndpointMapping) []string
}
