package codemodel

import (
	"strings"
	"unicode"
)

// Graph stores all parsed classes for quick lookup.
// It implements Model; it is not safe for concurrent mutation, but
// concurrent reads after construction are fine.
type Graph struct {
	// classes in insertion order
	classes []*Class

	// ClassMap: FullClassName -> Class
	classMap map[string]*Class

	// simpleNames: SimpleName -> FullClassNames, for unresolved extends clauses
	simpleNames map[string][]string
}

// NewGraph creates a new empty graph
func NewGraph() *Graph {
	return &Graph{
		classMap:    make(map[string]*Class),
		simpleNames: make(map[string][]string),
	}
}

// NewGraphOf creates a graph holding the given classes in order
func NewGraphOf(classes ...*Class) *Graph {
	g := NewGraph()
	for _, c := range classes {
		g.AddClass(c)
	}
	return g
}

// AddClass adds a class to the graph. A class with an already known
// qualified name replaces the previous one in place.
func (g *Graph) AddClass(c *Class) {
	if c == nil || c.QualifiedName == "" {
		return
	}
	if prev, ok := g.classMap[c.QualifiedName]; ok {
		for i, existing := range g.classes {
			if existing == prev {
				g.classes[i] = c
			}
		}
		g.classMap[c.QualifiedName] = c
		return
	}
	g.classes = append(g.classes, c)
	g.classMap[c.QualifiedName] = c

	simple := c.SimpleName()
	g.simpleNames[simple] = append(g.simpleNames[simple], c.QualifiedName)
}

// Classes returns every class in insertion order
func (g *Graph) Classes() []*Class {
	out := make([]*Class, len(g.classes))
	copy(out, g.classes)
	return out
}

// Len returns the number of classes
func (g *Graph) Len() int {
	return len(g.classes)
}

// GetClass retrieves a class by full class name
func (g *Graph) GetClass(fullClassName string) *Class {
	return g.classMap[fullClassName]
}

// Superclass resolves the extends clause of c.
// A package-qualified name must match exactly; a class outside the model
// ends the chain. Bare names try the same package, then a unique simple-name
// match. A class is never its own superclass.
func (g *Graph) Superclass(c *Class) (*Class, bool) {
	if c == nil || c.Superclass == "" {
		return nil, false
	}
	sc := g.lookupSuperclass(c, stripGenerics(c.Superclass))
	if sc == nil || sc == c {
		return nil, false
	}
	return sc, true
}

func (g *Graph) lookupSuperclass(c *Class, name string) *Class {
	if sc := g.classMap[name]; sc != nil {
		return sc
	}
	if isPackageQualified(name) {
		return nil
	}

	if pkg := c.Package(); pkg != "" {
		if sc := g.classMap[pkg+"."+name]; sc != nil {
			return sc
		}
	}

	if candidates := g.simpleNames[name]; len(candidates) == 1 {
		return g.classMap[candidates[0]]
	}
	return nil
}

// isPackageQualified reports names with a leading lower-case package segment
func isPackageQualified(name string) bool {
	idx := strings.IndexByte(name, '.')
	return idx > 0 && unicode.IsLower(rune(name[0]))
}

func stripGenerics(name string) string {
	if idx := strings.Index(name, "<"); idx != -1 {
		return strings.TrimSpace(name[:idx])
	}
	return strings.TrimSpace(name)
}
