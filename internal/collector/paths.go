package collector

import (
	"strings"

	"rest-recon/internal/model"
)

// NormalizePath ensures exactly one leading slash and collapses repeated slashes
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)

	var sb strings.Builder
	sb.Grow(len(path) + 1)
	sb.WriteByte('/')
	prevSlash := true
	for i := 0; i < len(path); i++ {
		ch := path[i]
		if ch == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

// ResolvePaths builds every path of a method: the context path, followed by
// one of the class paths, then one of the method paths. An empty side is
// left out; with both sides empty the context path alone remains.
func ResolvePaths(contextPath string, classMapping, methodMapping model.EndpointMapping) []string {
	var paths model.OrderedSet

	classPaths := classMapping.Paths.Values()
	methodPaths := methodMapping.Paths.Values()

	switch {
	case len(classPaths) == 0 && len(methodPaths) == 0:
		paths.Add(NormalizePath(contextPath))
	case len(classPaths) == 0:
		for _, p := range methodPaths {
			paths.Add(joinPath(contextPath, p))
		}
	case len(methodPaths) == 0:
		for _, p := range classPaths {
			paths.Add(joinPath(contextPath, p))
		}
	default:
		for _, base := range classPaths {
			for _, p := range methodPaths {
				paths.Add(joinPath(contextPath, base, p))
			}
		}
	}
	return paths.Values()
}

// joinPath concatenates segments with a slash at every join point
func joinPath(segments ...string) string {
	return NormalizePath(strings.Join(segments, "/"))
}
