package collector

import (
	"strings"

	"rest-recon/internal/codemodel"
)

// Javadoc override tags, written without the leading "@"
const (
	TagIgnore      = "ignore"
	TagContextPath = "contextPath"
	TagName        = "name"
	TagPathVar     = "pathVar"
	TagQueryParam  = "queryParam"
	TagRequestBody = "requestBody"
)

// lookup is one documentation source; ok is false when it has nothing to say
type lookup func() (text string, ok bool)

// firstOf evaluates lookups in order and returns the first hit, "" otherwise
func firstOf(lookups ...lookup) string {
	for _, l := range lookups {
		if text, ok := l(); ok {
			return text
		}
	}
	return ""
}

// namedTag finds "<name> <text>" among the arguments of a block tag
func namedTag(doc *codemodel.DocComment, tag, name string) lookup {
	return func() (string, bool) {
		for _, arg := range doc.Tags(tag) {
			fields := strings.Fields(arg)
			if len(fields) == 0 || fields[0] != name {
				continue
			}
			rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(arg), fields[0]))
			return rest, true
		}
		return "", false
	}
}

// firstTag returns the first argument of a block tag
func firstTag(doc *codemodel.DocComment, tag string) lookup {
	return func() (string, bool) {
		args := doc.Tags(tag)
		if len(args) == 0 {
			return "", false
		}
		return strings.TrimSpace(args[0]), true
	}
}

// paramText returns the standard @param text of a parameter
func paramText(doc *codemodel.DocComment, paramName string) lookup {
	return func() (string, bool) {
		return doc.ParamText(paramName)
	}
}

// ParamDocs resolves parameter documentation of one method with a fixed
// precedence: override tag, then @param text, then empty
type ParamDocs struct {
	doc *codemodel.DocComment
}

// NewParamDocs wraps the javadoc of a method; doc may be nil
func NewParamDocs(doc *codemodel.DocComment) ParamDocs {
	return ParamDocs{doc: doc}
}

// PathVar documents the path variable name bound to the Java parameter paramName
func (p ParamDocs) PathVar(name, paramName string) string {
	return firstOf(namedTag(p.doc, TagPathVar, name), paramText(p.doc, paramName))
}

// QueryParam documents the query parameter name bound to the Java parameter paramName
func (p ParamDocs) QueryParam(name, paramName string) string {
	return firstOf(namedTag(p.doc, TagQueryParam, name), paramText(p.doc, paramName))
}

// RequestBody documents the payload parameter
func (p ParamDocs) RequestBody(paramName string) string {
	return firstOf(firstTag(p.doc, TagRequestBody), paramText(p.doc, paramName))
}
