package model

// OrderedSet is a string set that remembers insertion order.
// The zero value is ready to use.
type OrderedSet struct {
	items []string
	index map[string]struct{}
}

// NewOrderedSet creates a set holding values in order, duplicates collapsed
func NewOrderedSet(values ...string) OrderedSet {
	var s OrderedSet
	s.Add(values...)
	return s
}

// Add appends values not already present
func (s *OrderedSet) Add(values ...string) {
	for _, v := range values {
		if s.index == nil {
			s.index = make(map[string]struct{})
		}
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = struct{}{}
		s.items = append(s.items, v)
	}
}

// Contains reports whether v is in the set
func (s OrderedSet) Contains(v string) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of distinct values
func (s OrderedSet) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no values
func (s OrderedSet) IsEmpty() bool {
	return len(s.items) == 0
}

// Values returns a copy of the values in insertion order
func (s OrderedSet) Values() []string {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// EndpointMapping holds the routing facts found on one class or one method,
// before class and method levels are merged
type EndpointMapping struct {
	Paths       OrderedSet
	HTTPMethods OrderedSet
	Consumes    OrderedSet
	Produces    OrderedSet
}

// IsEmpty reports whether no routing fact was found
func (m EndpointMapping) IsEmpty() bool {
	return m.Paths.IsEmpty() && m.HTTPMethods.IsEmpty() && m.Consumes.IsEmpty() && m.Produces.IsEmpty()
}

// FirstNonEmpty returns the values of the first non-empty set
func FirstNonEmpty(sets ...OrderedSet) []string {
	for _, s := range sets {
		if !s.IsEmpty() {
			return s.Values()
		}
	}
	return nil
}
