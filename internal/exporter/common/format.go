// Package common holds text formatting shared by the document exporters.
package common

import (
	"fmt"
	"strings"

	"rest-recon/internal/model"
)

// PathVarLines renders "name (Type): description" per path variable
func PathVarLines(ep model.Endpoint) []string {
	lines := make([]string, 0, len(ep.PathVars))
	for _, v := range ep.PathVars {
		lines = append(lines, describe(v.Name, v.Type, v.Description, ""))
	}
	return lines
}

// QueryParamLines renders query parameters, marking required ones
func QueryParamLines(ep model.Endpoint) []string {
	lines := make([]string, 0, len(ep.QueryParams))
	for _, q := range ep.QueryParams {
		flag := "optional"
		if q.Required {
			flag = "required"
		}
		lines = append(lines, describe(q.Name, q.Type, q.Description, flag))
	}
	return lines
}

// RequestBodyLine renders the payload, "" when there is none
func RequestBodyLine(ep model.Endpoint) string {
	if ep.RequestBody == nil {
		return ""
	}
	return describe(ep.RequestBody.ParameterName, ep.RequestBody.Type, ep.RequestBody.Description, "")
}

// ReturnLine renders the declared return type, "void" when absent
func ReturnLine(ep model.Endpoint) string {
	if ep.ReturnType.IsVoid() {
		return "void"
	}
	return ep.ReturnType.SimpleName()
}

// MediaTypes joins media types with ", "
func MediaTypes(types []string) string {
	return strings.Join(types, ", ")
}

// Truncate shortens s to at most maxLen runes, marking the cut with "..."
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func describe(name string, typ model.TypeRef, description, flag string) string {
	s := name
	if typ.Name != "" {
		s = fmt.Sprintf("%s (%s)", name, typ.SimpleName())
	}
	if flag != "" {
		s += ", " + flag
	}
	if description != "" {
		s += ": " + description
	}
	return s
}
