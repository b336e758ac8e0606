package analyzer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// DefaultEncodings is used when no encoding hint is configured
var DefaultEncodings = []string{"utf-8", "euc-kr"}

// ScanDirectory walks root and returns every .java file in lexical order.
// exclude receives slash-separated paths relative to root; a matching
// directory is not descended into. exclude may be nil.
func ScanDirectory(root string, exclude func(relPath string) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(root, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == ".svn" {
				return filepath.SkipDir
			}
			if relPath != "." && exclude != nil && exclude(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsJavaFile(path) {
			return nil
		}
		if exclude != nil && exclude(relPath) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return files, nil
}

// ReadFile reads a source file, decoding it with the first encoding hint
// that fits. UTF-8 only fits valid UTF-8 input.
func ReadFile(path string, encodings []string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return Decode(raw, encodings)
}

// Decode converts raw bytes to a string using the encoding hints in order.
// Hints are WHATWG labels ("utf-8", "euc-kr", "windows-1252", ...); "ms949"
// and "cp949" map to the Korean code page.
func Decode(raw []byte, encodings []string) (string, error) {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}

	var lastErr error
	for _, hint := range encodings {
		name := strings.ToLower(strings.TrimSpace(hint))
		if name == "utf-8" || name == "utf8" {
			if utf8.Valid(raw) {
				return strings.TrimPrefix(string(raw), "\ufeff"), nil
			}
			continue
		}

		enc, err := lookupEncoding(name)
		if err != nil {
			lastErr = err
			continue
		}
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err != nil {
			lastErr = fmt.Errorf("decode as %s: %w", name, err)
			continue
		}
		return string(decoded), nil
	}

	if lastErr != nil {
		return "", lastErr
	}
	return "", fmt.Errorf("content matches none of the encodings %v", encodings)
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch name {
	case "ms949", "cp949", "uhc":
		return korean.EUCKR, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

// IsJavaFile checks if a file is a Java source file
func IsJavaFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".java")
}
