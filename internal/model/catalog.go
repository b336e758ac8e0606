package model

import (
	"sort"
	"strings"
)

// Catalog is the resolved set of routable classes handed to the exporters
type Catalog struct {
	Classes     []ClassDescriptor
	GeneratedAt string
}

// Summary represents catalog-level statistics for overview sections
type Summary struct {
	TotalClasses   int
	TotalEndpoints int
	ByMethod       map[string]int
	GeneratedAt    string
}

// CatalogEntry is an endpoint together with the display name of its class
type CatalogEntry struct {
	Class string
	Endpoint
}

// Summary computes the statistics of the catalog
func (c *Catalog) Summary() Summary {
	s := Summary{
		TotalClasses: len(c.Classes),
		ByMethod:     make(map[string]int),
		GeneratedAt:  c.GeneratedAt,
	}
	for _, cls := range c.Classes {
		s.TotalEndpoints += len(cls.Endpoints)
		for _, ep := range cls.Endpoints {
			s.ByMethod[strings.ToUpper(ep.HTTPMethod)]++
		}
	}
	return s
}

// Methods returns the HTTP methods present in the summary, sorted
func (s Summary) Methods() []string {
	methods := make([]string, 0, len(s.ByMethod))
	for m := range s.ByMethod {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// Endpoints flattens the catalog, sorted by path then HTTP method.
// Ties keep catalog order.
func (c *Catalog) Endpoints() []CatalogEntry {
	var entries []CatalogEntry
	for _, cls := range c.Classes {
		for _, ep := range cls.Endpoints {
			entries = append(entries, CatalogEntry{Class: cls.Name, Endpoint: ep})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Path != entries[j].Path {
			return entries[i].Path < entries[j].Path
		}
		return methodRank(entries[i].HTTPMethod) < methodRank(entries[j].HTTPMethod)
	})
	return entries
}

var methodOrder = map[string]int{
	"GET": 0, "POST": 1, "PUT": 2, "PATCH": 3, "DELETE": 4, "HEAD": 5, "OPTIONS": 6,
}

func methodRank(method string) int {
	if r, ok := methodOrder[strings.ToUpper(method)]; ok {
		return r
	}
	return len(methodOrder)
}

// SortedEndpoints returns the endpoints of the class sorted by path then
// HTTP method, leaving the descriptor untouched
func (d ClassDescriptor) SortedEndpoints() []Endpoint {
	out := append([]Endpoint(nil), d.Endpoints...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return methodRank(out[i].HTTPMethod) < methodRank(out[j].HTTPMethod)
	})
	return out
}
