// Package javaparser reads Java compilation units into the code model.
// It understands declarations only: package, imports, the first top-level
// class or interface, its annotations, javadoc, superclass and methods.
// Method bodies and field initializers are skipped.
package javaparser

import (
	"errors"
	"fmt"
	"strings"

	"rest-recon/internal/codemodel"
	"rest-recon/internal/logger"
	"rest-recon/internal/model"
)

// ErrNoTypeDeclaration is returned for files without a class or interface
// (package-info.java, enums, annotation types)
var ErrNoTypeDeclaration = errors.New("no class or interface declaration")

// JavaFile is the outcome of parsing one compilation unit
type JavaFile struct {
	Package string   // e.g., "com.example.web"
	Imports []string // e.g., ["org.springframework.web.bind.annotation.*"]

	// Class has every annotation, type and superclass name qualified
	Class *codemodel.Class
}

// rawAnnotation, rawMethod and rawClass hold names as written in the source
type rawAnnotation struct {
	name   string
	values map[string][]string
}

type rawParam struct {
	name        string
	typ         string
	annotations []rawAnnotation
}

type rawMethod struct {
	name        string
	annotations []rawAnnotation
	doc         string
	params      []rawParam
	returnType  string
}

type rawClass struct {
	name        string
	annotations []rawAnnotation
	doc         string
	superclass  string
	methods     []rawMethod
}

// ParseJavaFile parses a Java source file
func ParseJavaFile(content string) (*JavaFile, error) {
	tokens, docs, err := lex(content)
	if err != nil {
		return nil, err
	}

	p := &parser{src: content, toks: tokens, docs: docs}
	pkg, imports, raw, err := p.compilationUnit()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNoTypeDeclaration
	}

	q := newQualifier(pkg, imports)
	return &JavaFile{
		Package: pkg,
		Imports: imports,
		Class:   raw.resolve(pkg, q),
	}, nil
}

type parser struct {
	src  string
	toks []token
	docs map[int]string
	pos  int
}

func (p *parser) peek() token {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.peek()
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) is(text string) bool {
	return p.peek().is(text)
}

func (p *parser) accept(text string) bool {
	if p.is(text) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) atEOF() bool {
	return p.peek().kind == tokEOF
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", lineOf(p.src, p.peek().pos), fmt.Sprintf(format, args...))
}

func (p *parser) expect(text string) error {
	if !p.accept(text) {
		return p.errorf("expected %q, found %q", text, p.peek().text)
	}
	return nil
}

func (p *parser) ident() (string, error) {
	t := p.peek()
	if t.kind != tokIdent || IsNoise(t.text) {
		return "", p.errorf("expected identifier, found %q", t.text)
	}
	p.pos++
	return t.text, nil
}

// qualifiedName reads Ident(.Ident)*
func (p *parser) qualifiedName() (string, error) {
	first, err := p.ident()
	if err != nil {
		return "", err
	}
	parts := []string{first}
	for p.is(".") && p.peekAt(1).kind == tokIdent {
		p.next()
		parts = append(parts, p.next().text)
	}
	return strings.Join(parts, "."), nil
}

// skipBalanced consumes from the current open token to its matching close
func (p *parser) skipBalanced(open, close string) error {
	if err := p.expect(open); err != nil {
		return err
	}
	for depth := 1; depth > 0; {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			return p.errorf("unbalanced %q", open)
		case t.is(open):
			depth++
		case t.is(close):
			depth--
		}
	}
	return nil
}

// skipStatement consumes up to and including the next ';' at nesting depth 0
func (p *parser) skipStatement() error {
	depth := 0
	for {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			return p.errorf("unexpected end of file")
		case t.isAny("(", "{", "["):
			depth++
		case t.isAny(")", "}", "]"):
			depth--
		case t.is(";") && depth <= 0:
			return nil
		}
	}
}

// compilationUnit returns the first class or interface; later type
// declarations are not read
func (p *parser) compilationUnit() (string, []string, *rawClass, error) {
	var pkg string
	var imports []string

	for !p.atEOF() {
		switch {
		case p.is(";"):
			p.next()
		case p.is("package"):
			p.next()
			name, err := p.qualifiedName()
			if err != nil {
				return "", nil, nil, err
			}
			pkg = name
			p.accept(";")
		case p.is("import"):
			p.next()
			static := p.accept("static")
			name, err := p.qualifiedName()
			if err != nil {
				return "", nil, nil, err
			}
			if p.is(".") && p.peekAt(1).is("*") {
				p.next()
				p.next()
				name += ".*"
			}
			if err := p.expect(";"); err != nil {
				return "", nil, nil, err
			}
			if !static {
				imports = append(imports, name)
			}
		default:
			cls, err := p.typeDeclaration()
			if err != nil {
				return "", nil, nil, err
			}
			if cls != nil {
				return pkg, imports, cls, nil
			}
		}
	}
	return pkg, imports, nil, nil
}

// typeDeclaration parses a class or interface; other kinds are skipped and
// reported as nil
func (p *parser) typeDeclaration() (*rawClass, error) {
	start := p.pos
	annotations, err := p.annotationsAndModifiers()
	if err != nil {
		return nil, err
	}

	if p.is("@") && p.peekAt(1).is("interface") {
		return nil, p.skipTypeDeclaration()
	}
	if p.is("package") {
		// annotated package declaration (package-info.java)
		return nil, nil
	}

	kind := p.next()
	if !kind.isAny("class", "interface", "enum", "record") {
		return nil, fmt.Errorf("line %d: unexpected %q", lineOf(p.src, kind.pos), kind.text)
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}

	cls := &rawClass{name: name, annotations: annotations, doc: p.docs[start]}

	for !p.is("{") {
		switch {
		case p.atEOF():
			return nil, p.errorf("missing body of %s", name)
		case p.is("<"):
			if err := p.skipBalanced("<", ">"); err != nil {
				return nil, err
			}
		case p.is("("):
			if err := p.skipBalanced("(", ")"); err != nil {
				return nil, err
			}
		case p.is("extends") && kind.is("class"):
			p.next()
			super, err := p.typeText()
			if err != nil {
				return nil, err
			}
			cls.superclass = super
		default:
			p.next()
		}
	}

	if !kind.isAny("class", "interface") {
		return nil, p.skipBalanced("{", "}")
	}
	if err := p.classBody(cls); err != nil {
		return nil, err
	}
	return cls, nil
}

// skipTypeDeclaration skips a nested or unsupported type including its body
func (p *parser) skipTypeDeclaration() error {
	for !p.is("{") {
		if p.atEOF() {
			return p.errorf("missing type body")
		}
		p.next()
	}
	return p.skipBalanced("{", "}")
}

// annotationsAndModifiers reads annotations interleaved with modifiers
func (p *parser) annotationsAndModifiers() ([]rawAnnotation, error) {
	var annotations []rawAnnotation
	for {
		switch {
		case p.is("@") && !p.peekAt(1).is("interface"):
			a, err := p.annotation()
			if err != nil {
				return nil, err
			}
			annotations = append(annotations, a)
		case p.is("non") && p.peekAt(1).is("-") && p.peekAt(2).is("sealed"):
			p.pos += 3
		case p.peek().kind == tokIdent && modifiers[p.peek().text]:
			p.next()
		default:
			return annotations, nil
		}
	}
}

func (p *parser) annotation() (rawAnnotation, error) {
	if err := p.expect("@"); err != nil {
		return rawAnnotation{}, err
	}
	name, err := p.qualifiedName()
	if err != nil {
		return rawAnnotation{}, err
	}

	a := rawAnnotation{name: name, values: make(map[string][]string)}
	if !p.accept("(") {
		return a, nil
	}
	if p.accept(")") {
		return a, nil
	}

	// Single element: @Path("/users")
	if !(p.peek().kind == tokIdent && p.peekAt(1).is("=")) {
		vals, err := p.elementValue()
		if err != nil {
			return rawAnnotation{}, err
		}
		a.values["value"] = vals
		return a, p.expect(")")
	}

	for {
		key, err := p.ident()
		if err != nil {
			return rawAnnotation{}, err
		}
		if err := p.expect("="); err != nil {
			return rawAnnotation{}, err
		}
		vals, err := p.elementValue()
		if err != nil {
			return rawAnnotation{}, err
		}
		a.values[key] = vals
		if !p.accept(",") {
			break
		}
	}
	return a, p.expect(")")
}

// elementValue reads a literal, constant reference, array or nested annotation
func (p *parser) elementValue() ([]string, error) {
	switch {
	case p.is("{"):
		p.next()
		vals := []string{}
		for !p.is("}") {
			v, err := p.elementValue()
			if err != nil {
				return nil, err
			}
			vals = append(vals, v...)
			if !p.accept(",") {
				break
			}
		}
		return vals, p.expect("}")
	case p.is("@"):
		a, err := p.annotation()
		if err != nil {
			return nil, err
		}
		return []string{"@" + a.name}, nil
	default:
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		return []string{v}, nil
	}
}

// expression reads tokens up to ',' ')' or '}' at depth 0.
// String concatenations fold into one literal; other expressions are kept
// as written, resolving well-known media type constants.
func (p *parser) expression() (string, error) {
	var toks []token
	depth := 0
	for {
		t := p.peek()
		if t.kind == tokEOF {
			return "", p.errorf("unexpected end of file in annotation")
		}
		if depth == 0 && t.isAny(",", ")", "}") {
			break
		}
		if t.is("(") {
			depth++
		} else if t.is(")") {
			depth--
		}
		toks = append(toks, p.next())
	}

	allStrings := len(toks) > 0
	var sb strings.Builder
	for _, t := range toks {
		switch {
		case t.kind == tokString:
			sb.WriteString(t.text)
		case t.is("+"):
		default:
			allStrings = false
		}
	}
	if allStrings {
		return sb.String(), nil
	}

	expr := joinTokens(toks)
	if v, ok := resolveConstant(expr); ok {
		return v, nil
	}
	return expr, nil
}

// joinTokens renders tokens back to text, spacing adjacent words only
func joinTokens(toks []token) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 && (isWord(toks[i-1]) || toks[i-1].is("?")) && isWord(t) {
			sb.WriteByte(' ')
		}
		switch t.kind {
		case tokString:
			sb.WriteString(`"` + t.text + `"`)
		case tokChar:
			sb.WriteString("'" + t.text + "'")
		default:
			sb.WriteString(t.text)
		}
	}
	return sb.String()
}

func isWord(t token) bool {
	return t.kind == tokIdent || t.kind == tokNumber
}

// typeText reads a type as written, without spaces: "Map<String,List<Long>>", "byte[]"
func (p *parser) typeText() (string, error) {
	// Type-use annotations are dropped
	for p.is("@") && !p.peekAt(1).is("interface") {
		if _, err := p.annotation(); err != nil {
			return "", err
		}
	}

	name, err := p.qualifiedName()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(name)

	if p.is("<") {
		generic, err := p.genericText()
		if err != nil {
			return "", err
		}
		sb.WriteString(generic)
	}
	for p.is("[") && p.peekAt(1).is("]") {
		p.pos += 2
		sb.WriteString("[]")
	}
	if p.is(".") && p.peekAt(1).is(".") && p.peekAt(2).is(".") {
		p.pos += 3
		sb.WriteString("...")
	}
	return sb.String(), nil
}

func (p *parser) genericText() (string, error) {
	start := p.pos
	if err := p.skipBalanced("<", ">"); err != nil {
		return "", err
	}
	return joinTokens(p.toks[start:p.pos]), nil
}

func (p *parser) classBody(cls *rawClass) error {
	if err := p.expect("{"); err != nil {
		return err
	}

	for {
		switch {
		case p.atEOF():
			return p.errorf("unbalanced braces in %s", cls.name)
		case p.accept("}"):
			return nil
		case p.accept(";"):
			continue
		}

		start := p.pos
		annotations, err := p.annotationsAndModifiers()
		if err != nil {
			return err
		}

		switch {
		case p.is("{"):
			// initializer block
			err = p.skipBalanced("{", "}")
		case p.is("@") && p.peekAt(1).is("interface"), p.peek().isAny("class", "interface", "enum", "record"):
			err = p.skipTypeDeclaration()
		default:
			err = p.member(cls, start, annotations)
		}
		if err != nil {
			return err
		}
	}
}

// member parses a method, constructor or field starting at token index start
func (p *parser) member(cls *rawClass, start int, annotations []rawAnnotation) error {
	if p.is("<") {
		if err := p.skipBalanced("<", ">"); err != nil {
			return err
		}
	}

	typ, err := p.typeText()
	if err != nil {
		return err
	}

	// Constructor: the "type" is the class name
	if p.is("(") {
		if err := p.skipBalanced("(", ")"); err != nil {
			return err
		}
		return p.methodRest()
	}

	nameTok := p.next()
	if nameTok.kind != tokIdent {
		return fmt.Errorf("line %d: expected member name, found %q", lineOf(p.src, nameTok.pos), nameTok.text)
	}
	name := nameTok.text

	if !p.is("(") {
		// field, possibly with an initializer
		return p.skipStatement()
	}

	params, err := p.parameters()
	if err != nil {
		return err
	}
	if err := p.methodRest(); err != nil {
		return err
	}

	if IsNoise(name) {
		logger.Debug("[PARSER] Ignoring member %q at line %d", name, lineOf(p.src, nameTok.pos))
		return nil
	}

	cls.methods = append(cls.methods, rawMethod{
		name:        name,
		annotations: annotations,
		doc:         p.docs[start],
		params:      params,
		returnType:  typ,
	})
	return nil
}

// methodRest skips array dims, throws clause, default value and body
func (p *parser) methodRest() error {
	for {
		switch {
		case p.atEOF():
			return p.errorf("unexpected end of file in method declaration")
		case p.accept(";"):
			return nil
		case p.is("{"):
			return p.skipBalanced("{", "}")
		case p.is("default"):
			return p.skipStatement()
		default:
			p.next()
		}
	}
}

func (p *parser) parameters() ([]rawParam, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	if p.accept(")") {
		return nil, nil
	}

	var params []rawParam
	for {
		annotations, err := p.annotationsAndModifiers()
		if err != nil {
			return nil, err
		}
		typ, err := p.typeText()
		if err != nil {
			return nil, err
		}
		name, err := p.ident()
		if err != nil {
			// receiver parameter "Foo this"
			if p.accept("this") {
				name = "this"
			} else {
				return nil, err
			}
		}
		for p.is("[") && p.peekAt(1).is("]") {
			p.pos += 2
			typ += "[]"
		}

		params = append(params, rawParam{name: name, typ: typ, annotations: annotations})
		if !p.accept(",") {
			break
		}
	}
	return params, p.expect(")")
}

// resolve builds the code model class, qualifying every name
func (c *rawClass) resolve(pkg string, q *qualifier) *codemodel.Class {
	qualified := c.name
	if pkg != "" {
		qualified = pkg + "." + c.name
	}

	cls := &codemodel.Class{
		QualifiedName: qualified,
		Annotations:   resolveAnnotations(c.annotations, q),
		Doc:           parseDoc(c.doc),
	}
	if c.superclass != "" {
		cls.Superclass = q.typeName(c.superclass)
	}

	for _, m := range c.methods {
		method := codemodel.Method{
			Name:        m.name,
			Annotations: resolveAnnotations(m.annotations, q),
			Doc:         parseDoc(m.doc),
			ReturnType:  model.TypeRef{Name: q.typeName(m.returnType)},
		}
		for _, param := range m.params {
			method.Params = append(method.Params, codemodel.Parameter{
				Name:        param.name,
				Type:        model.TypeRef{Name: q.typeName(param.typ)},
				Annotations: resolveAnnotations(param.annotations, q),
			})
		}
		cls.Methods = append(cls.Methods, method)
	}
	return cls
}

func resolveAnnotations(raw []rawAnnotation, q *qualifier) codemodel.Annotations {
	if len(raw) == 0 {
		return nil
	}
	out := make(codemodel.Annotations, 0, len(raw))
	for _, a := range raw {
		out = append(out, codemodel.Annotation{Name: q.name(a.name), Values: a.values})
	}
	return out
}

func parseDoc(raw string) *codemodel.DocComment {
	if raw == "" {
		return nil
	}
	return ParseDocComment(raw)
}
