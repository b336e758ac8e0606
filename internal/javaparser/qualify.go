package javaparser

import (
	"strings"
	"unicode"
)

// qualifier turns simple names into fully-qualified ones using the imports
// of one compilation unit
type qualifier struct {
	pkg       string
	explicit  map[string]string // simple name -> FQN
	wildcards []string          // package names of "import x.y.*"
}

func newQualifier(pkg string, imports []string) *qualifier {
	q := &qualifier{pkg: pkg, explicit: make(map[string]string)}
	for _, imp := range imports {
		if strings.HasSuffix(imp, ".*") {
			q.wildcards = append(q.wildcards, strings.TrimSuffix(imp, ".*"))
			continue
		}
		q.explicit[lastSegment(imp)] = imp
	}
	return q
}

// name qualifies an annotation or type name without generics.
// Order: already qualified, explicit import, java.lang, known names under a
// wildcard import, then the class package.
func (q *qualifier) name(name string) string {
	if name == "" || primitives[name] || isQualified(name) {
		return name
	}

	// Outer.Inner: qualify the outer part only
	head, tail := name, ""
	if idx := strings.IndexByte(name, '.'); idx != -1 {
		head, tail = name[:idx], name[idx:]
	}

	if fqn, ok := q.explicit[head]; ok {
		return fqn + tail
	}
	if javaLang[head] {
		return "java.lang." + head + tail
	}
	for _, pkg := range q.wildcards {
		if knownNames[pkg+"."+head] {
			return pkg + "." + head + tail
		}
	}
	if isTypeVariable(head) || q.pkg == "" {
		return name
	}
	return q.pkg + "." + name
}

// typeName qualifies the base of a type, keeping generic arguments and
// array dimensions as written: "List<UserDTO>" -> "java.util.List<UserDTO>"
func (q *qualifier) typeName(t string) string {
	cut := len(t)
	for _, marker := range []string{"<", "[", "..."} {
		if idx := strings.Index(t, marker); idx != -1 && idx < cut {
			cut = idx
		}
	}
	return q.name(t[:cut]) + t[cut:]
}

// isQualified reports names that start with a lower-case package segment
func isQualified(name string) bool {
	idx := strings.IndexByte(name, '.')
	if idx <= 0 {
		return false
	}
	return unicode.IsLower(rune(name[0]))
}

// isTypeVariable matches the conventional single-letter generic parameters
func isTypeVariable(name string) bool {
	return len(name) == 1 && unicode.IsUpper(rune(name[0]))
}

func lastSegment(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx != -1 {
		return name[idx+1:]
	}
	return name
}
