package javaparser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokChar
	tokNumber
	tokPunct
)

// token is one lexical unit. For string literals text holds the decoded content.
type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) is(text string) bool {
	return t.kind != tokString && t.kind != tokChar && t.text == text
}

func (t token) isAny(texts ...string) bool {
	for _, s := range texts {
		if t.is(s) {
			return true
		}
	}
	return false
}

// lexer splits Java source into tokens, dropping comments.
// Javadoc blocks are kept, keyed by the index of the token that follows them.
type lexer struct {
	src    string
	pos    int
	tokens []token
	docs   map[int]string
}

func lex(src string) ([]token, map[int]string, error) {
	l := &lexer{src: src, docs: make(map[int]string)}
	if err := l.run(); err != nil {
		return nil, nil, err
	}
	l.tokens = append(l.tokens, token{kind: tokEOF, pos: len(src)})
	return l.tokens, l.docs, nil
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			l.pos++
		case strings.HasPrefix(l.src[l.pos:], "//"):
			if end := strings.IndexByte(l.src[l.pos:], '\n'); end != -1 {
				l.pos += end + 1
			} else {
				l.pos = len(l.src)
			}
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			if err := l.blockComment(); err != nil {
				return err
			}
		case strings.HasPrefix(l.src[l.pos:], `"""`):
			if err := l.textBlock(); err != nil {
				return err
			}
		case c == '"':
			if err := l.quoted('"', tokString); err != nil {
				return err
			}
		case c == '\'':
			if err := l.quoted('\'', tokChar); err != nil {
				return err
			}
		case c >= '0' && c <= '9':
			l.number()
		case isIdentStart(c):
			l.ident()
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if unicode.IsLetter(r) {
				l.ident()
			} else {
				l.emit(tokPunct, l.src[l.pos:l.pos+size], l.pos)
				l.pos += size
			}
		default:
			l.emit(tokPunct, string(c), l.pos)
			l.pos++
		}
	}
	return nil
}

func (l *lexer) emit(kind tokenKind, text string, pos int) {
	l.tokens = append(l.tokens, token{kind: kind, text: text, pos: pos})
}

func (l *lexer) blockComment() error {
	start := l.pos
	end := strings.Index(l.src[start+2:], "*/")
	if end == -1 {
		return fmt.Errorf("line %d: unterminated comment", lineOf(l.src, start))
	}
	end += start + 2 + 2
	text := l.src[start:end]

	// "/**/" is an empty block comment, not javadoc
	if strings.HasPrefix(text, "/**") && text != "/**/" {
		l.docs[len(l.tokens)] = text
	}
	l.pos = end
	return nil
}

func (l *lexer) textBlock() error {
	start := l.pos
	end := strings.Index(l.src[start+3:], `"""`)
	if end == -1 {
		return fmt.Errorf("line %d: unterminated text block", lineOf(l.src, start))
	}
	content := l.src[start+3 : start+3+end]
	if nl := strings.IndexByte(content, '\n'); nl != -1 {
		content = content[nl+1:]
	}
	l.emit(tokString, content, start)
	l.pos = start + 3 + end + 3
	return nil
}

func (l *lexer) quoted(quote byte, kind tokenKind) error {
	start := l.pos
	var sb strings.Builder

	for i := start + 1; i < len(l.src); i++ {
		c := l.src[i]
		switch {
		case c == '\\' && i+1 < len(l.src):
			i++
			sb.WriteString(unescape(l.src[i]))
		case c == quote:
			l.emit(kind, sb.String(), start)
			l.pos = i + 1
			return nil
		case c == '\n':
			return fmt.Errorf("line %d: unterminated literal", lineOf(l.src, start))
		default:
			sb.WriteByte(c)
		}
	}
	return fmt.Errorf("line %d: unterminated literal", lineOf(l.src, start))
}

func unescape(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	default:
		return string(c)
	}
}

func (l *lexer) number() {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isIdentPart(c) || c == '.' {
			l.pos++
			continue
		}
		break
	}
	l.emit(tokNumber, l.src[start:l.pos], start)
}

func (l *lexer) ident() {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isIdentPart(c) {
			l.pos++
			continue
		}
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				l.pos += size
				continue
			}
		}
		break
	}
	l.emit(tokIdent, l.src[start:l.pos], start)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// lineOf returns the 1-based line of a byte offset
func lineOf(src string, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	return strings.Count(src[:pos], "\n") + 1
}
