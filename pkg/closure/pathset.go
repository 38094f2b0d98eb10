// Package closure collects the transitive production dependency closure of
// parsed workspace entries as an ordered set of on-disk paths.
package closure

// PathSet is an insertion-ordered set of path strings. A path is inserted at
// most once regardless of how many tree positions reference it; first
// discovery wins the position.
type PathSet struct {
	seen  map[string]struct{}
	order []string
}

// NewPathSet creates an empty PathSet.
func NewPathSet() *PathSet {
	return &PathSet{seen: make(map[string]struct{})}
}

// Add inserts path and reports whether it was newly added.
func (s *PathSet) Add(path string) bool {
	if _, ok := s.seen[path]; ok {
		return false
	}
	s.seen[path] = struct{}{}
	s.order = append(s.order, path)
	return true
}

// Contains reports whether path is in the set.
func (s *PathSet) Contains(path string) bool {
	_, ok := s.seen[path]
	return ok
}

// Len returns the number of distinct paths.
func (s *PathSet) Len() int { return len(s.order) }

// Paths returns the paths in insertion order. The returned slice is a copy.
func (s *PathSet) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
