package javaparser

import "strings"

// keywords can never name a member or a type
var keywords = map[string]bool{
	"abstract": true, "assert": true, "break": true, "case": true,
	"catch": true, "class": true, "const": true, "continue": true,
	"default": true, "do": true, "else": true, "enum": true,
	"extends": true, "finally": true, "for": true, "goto": true,
	"if": true, "implements": true, "import": true, "instanceof": true,
	"interface": true, "native": true, "new": true, "package": true,
	"return": true, "super": true, "switch": true, "synchronized": true,
	"this": true, "throw": true, "throws": true, "try": true,
	"while": true, "true": true, "false": true, "null": true,
}

// IsNoise reports whether an identifier picked up as a member name is
// really a keyword or blank, which happens on malformed sources
func IsNoise(name string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return true
	}
	return keywords[trimmed]
}

// modifiers may precede a declaration in any order
var modifiers = map[string]bool{
	"public": true, "protected": true, "private": true, "static": true,
	"final": true, "abstract": true, "synchronized": true, "native": true,
	"transient": true, "volatile": true, "strictfp": true, "default": true,
	"sealed": true,
}
