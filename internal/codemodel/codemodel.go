// Package codemodel describes the read-only declaration graph consumed by the
// endpoint collectors: classes, methods, parameters, annotations and javadoc.
package codemodel

import (
	"strings"

	"rest-recon/internal/model"
)

// Model is the code model provider
type Model interface {
	// Classes returns every declared class in a stable order
	Classes() []*Class

	// Superclass returns the resolved superclass of c, or false when
	// c has none or it is not part of the model
	Superclass(c *Class) (*Class, bool)
}

// Annotation is an annotation usage with its attribute values.
// Name is fully qualified (e.g. "org.springframework.web.bind.annotation.RequestMapping").
type Annotation struct {
	Name   string
	Values map[string][]string
}

// Get returns the values of an attribute, nil if absent
func (a Annotation) Get(key string) []string {
	return a.Values[key]
}

// First returns the first value of the first attribute present among keys
func (a Annotation) First(keys ...string) (string, bool) {
	for _, key := range keys {
		if vals := a.Values[key]; len(vals) > 0 {
			return vals[0], true
		}
	}
	return "", false
}

// Has reports whether the attribute was written on the annotation
func (a Annotation) Has(key string) bool {
	_, ok := a.Values[key]
	return ok
}

// SimpleName returns the annotation name without its package
func (a Annotation) SimpleName() string {
	if idx := strings.LastIndex(a.Name, "."); idx != -1 {
		return a.Name[idx+1:]
	}
	return a.Name
}

// Annotations is an ordered list of annotation usages
type Annotations []Annotation

// Find returns the first annotation with the given qualified name
func (as Annotations) Find(name string) (Annotation, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}

// Any reports whether an annotation matches the predicate
func (as Annotations) Any(match func(Annotation) bool) bool {
	for _, a := range as {
		if match(a) {
			return true
		}
	}
	return false
}

// DocComment is a parsed javadoc comment
type DocComment struct {
	// Text up to the end of the first sentence
	FirstSentence string

	// Full body text, before any block tag
	Body string

	// Custom block tags by name (without "@"), arguments in declaration order
	BlockTags map[string][]string

	// Standard @param text keyed by parameter name
	Params map[string][]string
}

// Tags returns the arguments of every occurrence of a block tag.
// A nil comment has no tags.
func (d *DocComment) Tags(name string) []string {
	if d == nil {
		return nil
	}
	return d.BlockTags[name]
}

// HasTag reports whether the block tag occurs at least once
func (d *DocComment) HasTag(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.BlockTags[name]
	return ok
}

// ParamText returns the first @param text documented for a parameter
func (d *DocComment) ParamText(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	texts := d.Params[name]
	if len(texts) == 0 {
		return "", false
	}
	return texts[0], true
}

// Summary returns the first sentence, empty for a nil comment
func (d *DocComment) Summary() string {
	if d == nil {
		return ""
	}
	return d.FirstSentence
}

// Text returns the full body, empty for a nil comment
func (d *DocComment) Text() string {
	if d == nil {
		return ""
	}
	return d.Body
}

// Parameter is a method parameter
type Parameter struct {
	Name        string
	Type        model.TypeRef
	Annotations Annotations
}

// Method is a declared method
type Method struct {
	Name        string
	Annotations Annotations
	Doc         *DocComment
	Params      []Parameter
	ReturnType  model.TypeRef
}

// Class is a declared class or interface
type Class struct {
	// Fully-qualified name: "com.company.api.UserController"
	QualifiedName string

	Annotations Annotations
	Doc         *DocComment
	Methods     []Method

	// Qualified superclass name as written in the extends clause, empty if none
	Superclass string
}

// Package returns the package part of the qualified name
func (c *Class) Package() string {
	if idx := strings.LastIndex(c.QualifiedName, "."); idx != -1 {
		return c.QualifiedName[:idx]
	}
	return ""
}

// SimpleName returns the class name without its package
func (c *Class) SimpleName() string {
	if idx := strings.LastIndex(c.QualifiedName, "."); idx != -1 {
		return c.QualifiedName[idx+1:]
	}
	return c.QualifiedName
}
