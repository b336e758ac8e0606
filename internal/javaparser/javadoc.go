package javaparser

import (
	"regexp"
	"strings"
	"unicode"

	"rest-recon/internal/codemodel"
)

// inlineTagRegex matches {@code x}, {@link Foo#bar label} and friends
var inlineTagRegex = regexp.MustCompile(`\{@\w+\s*([^}]*)\}`)

// ParseDocComment parses a raw "/** ... */" block
func ParseDocComment(raw string) *codemodel.DocComment {
	doc := &codemodel.DocComment{
		BlockTags: make(map[string][]string),
		Params:    make(map[string][]string),
	}

	var body []string
	var tagName string
	var tagText []string

	flush := func() {
		if tagName == "" {
			return
		}
		text := strings.TrimSpace(strings.Join(tagText, " "))
		if tagName == "param" {
			name, rest := splitFirstWord(text)
			if name != "" {
				doc.Params[name] = append(doc.Params[name], rest)
			}
		} else {
			doc.BlockTags[tagName] = append(doc.BlockTags[tagName], text)
		}
		tagName, tagText = "", nil
	}

	for _, line := range docLines(raw) {
		trimmed := strings.TrimSpace(line)
		if name, rest, ok := blockTag(trimmed); ok {
			flush()
			tagName = name
			tagText = []string{rest}
			continue
		}
		if tagName != "" {
			tagText = append(tagText, trimmed)
			continue
		}
		body = append(body, trimmed)
	}
	flush()

	doc.Body = expandInlineTags(strings.TrimSpace(strings.Join(body, "\n")))
	doc.FirstSentence = firstSentence(doc.Body)
	return doc
}

// docLines strips the comment delimiters and leading asterisks
func docLines(raw string) []string {
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(raw, "*/")

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
		for strings.HasPrefix(line, "*") {
			line = strings.TrimPrefix(line, "*")
		}
		lines[i] = line
	}
	return lines
}

// blockTag recognises "@name text" at the start of a line
func blockTag(line string) (name, rest string, ok bool) {
	if len(line) < 2 || line[0] != '@' || !unicode.IsLetter(rune(line[1])) {
		return "", "", false
	}
	name, rest = splitFirstWord(line[1:])
	return name, rest, true
}

func splitFirstWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx == -1 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx:])
}

func expandInlineTags(s string) string {
	return inlineTagRegex.ReplaceAllStringFunc(s, func(m string) string {
		sub := inlineTagRegex.FindStringSubmatch(m)
		return strings.TrimSpace(sub[1])
	})
}

// firstSentence ends at the first period followed by whitespace or end of text
func firstSentence(body string) string {
	text := strings.Join(strings.Fields(body), " ")
	for i := 0; i < len(text); i++ {
		if text[i] != '.' {
			continue
		}
		if i+1 == len(text) || text[i+1] == ' ' {
			return text[:i+1]
		}
	}
	return text
}
