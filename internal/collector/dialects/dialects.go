// Package dialects maps configured dialect names to implementations.
package dialects

import (
	"fmt"
	"strings"

	"rest-recon/internal/collector"
	"rest-recon/internal/collector/jaxrs"
	"rest-recon/internal/collector/spring"
)

// Names lists every known dialect in default order
var Names = []string{"spring", "jaxrs"}

// ByName returns the dialects for the given names, in order, duplicates removed
func ByName(names []string) ([]collector.Dialect, error) {
	var out []collector.Dialect
	seen := make(map[string]bool)

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "jax-rs" {
			name = "jaxrs"
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case "spring":
			out = append(out, spring.New())
		case "jaxrs":
			out = append(out, jaxrs.New())
		default:
			return nil, fmt.Errorf("unknown dialect %q", raw)
		}
	}
	return out, nil
}
