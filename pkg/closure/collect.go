package closure

import (
	"maps"
	"slices"

	"github.com/depclose/depclose/pkg/npmtree"
)

// Collect walks every entry's dependency mapping depth-first and returns the
// ordered set of distinct dependency paths reachable from any entry.
//
// Children are visited in sorted name order so output order is stable across
// runs. Before recursing into a node's children the node's path is inserted
// into the set; if it was already present the subtree is skipped: its
// children were expanded when the path was first discovered. That check is
// also what terminates traversal on cyclic trees, where the listing reaches
// the same store path again through a peer dependency. Nodes without a path
// are placeholders and are neither inserted nor recursed into.
func Collect(entries []npmtree.Entry) *PathSet {
	set := NewPathSet()
	for _, e := range entries {
		walk(e.Dependencies, set)
	}
	return set
}

func walk(deps map[string]npmtree.Node, set *PathSet) {
	for _, name := range slices.Sorted(maps.Keys(deps)) {
		node := deps[name]
		if node.Path == "" {
			continue
		}
		if !set.Add(node.Path) {
			continue
		}
		walk(node.Dependencies, set)
	}
}
