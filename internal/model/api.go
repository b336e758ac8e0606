package model

import "strings"

// TypeRef is a declared type as it appears in the code model
// (e.g. "java.lang.String", "List<UserDTO>", "int")
type TypeRef struct {
	Name string
}

// SimpleName returns the type name without its package qualifier.
// Generic arguments are kept: "java.util.List<Foo>" -> "List<Foo>"
func (t TypeRef) SimpleName() string {
	base := t.Name
	generic := ""
	if idx := strings.Index(base, "<"); idx != -1 {
		base, generic = base[:idx], base[idx:]
	}
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[idx+1:]
	}
	return base + generic
}

// IsVoid reports whether the type denotes no value
func (t TypeRef) IsVoid() bool {
	return t.Name == "" || t.Name == "void" || t.Name == "java.lang.Void" || t.Name == "Void"
}

func (t TypeRef) String() string {
	return t.Name
}

// ClassDescriptor represents one routable class and every endpoint resolved for it
type ClassDescriptor struct {
	// Display name (@name tag) or fully-qualified class name
	Name string

	// Context path from the @contextPath tag, empty if absent
	ContextPath string

	// Resolved endpoints, never empty for an emitted descriptor
	Endpoints []Endpoint

	// Class javadoc body
	Description string
}

// Endpoint is one resolved (path, HTTP method) combination of a handler method
type Endpoint struct {
	// Normalized path (e.g., "/api/users/{id}")
	Path string

	// HTTP Method (GET, POST, PUT, DELETE, etc.)
	HTTPMethod string

	QueryParams []QueryParam
	PathVars    []PathVar

	// Request payload, nil when the method has none
	RequestBody *RequestBody

	// Media types
	Consumes []string
	Produces []string

	// First sentence of the method javadoc
	Summary string

	// Full javadoc body
	Description string

	ReturnType TypeRef
}

// PathVar is a path-template variable bound to a method parameter
type PathVar struct {
	Name        string
	Description string
	Type        TypeRef
}

// QueryParam is a query-string parameter bound to a method parameter
type QueryParam struct {
	Name        string
	Required    bool
	Description string
	Type        TypeRef
}

// RequestBody is the parameter deserialized from the request payload
type RequestBody struct {
	ParameterName string
	Description   string
	Type          TypeRef
}

// clone returns a deep copy so endpoints sharing one method never share slices
func (e Endpoint) clone() Endpoint {
	out := e
	out.QueryParams = append([]QueryParam(nil), e.QueryParams...)
	out.PathVars = append([]PathVar(nil), e.PathVars...)
	out.Consumes = append([]string(nil), e.Consumes...)
	out.Produces = append([]string(nil), e.Produces...)
	if e.RequestBody != nil {
		body := *e.RequestBody
		out.RequestBody = &body
	}
	return out
}

// Key identifies an endpoint within a class: "GET /users"
func (e Endpoint) Key() string {
	return e.HTTPMethod + " " + e.Path
}

// NewEndpoint builds an endpoint for one (method, path) pair from a template
// holding the data shared by every pair of the same handler method
func NewEndpoint(template Endpoint, httpMethod, path string) Endpoint {
	ep := template.clone()
	ep.HTTPMethod = httpMethod
	ep.Path = path
	return ep
}
