package closure

import (
	"reflect"
	"testing"

	"github.com/depclose/depclose/pkg/npmtree"
)

func TestCollect_Transitive(t *testing.T) {
	entries := []npmtree.Entry{{
		Name: "app",
		Dependencies: map[string]npmtree.Node{
			"a": {Path: "/s/a", Dependencies: map[string]npmtree.Node{
				"c": {Path: "/s/c"},
			}},
			"b": {Path: "/s/b"},
		},
	}}

	got := Collect(entries).Paths()
	want := []string{"/s/a", "/s/c", "/s/b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestCollect_DeduplicatesSharedPath(t *testing.T) {
	// The same physical package appears under two parents.
	shared := npmtree.Node{Path: "/s/shared"}
	entries := []npmtree.Entry{{
		Dependencies: map[string]npmtree.Node{
			"a": {Path: "/s/a", Dependencies: map[string]npmtree.Node{"shared": shared}},
			"b": {Path: "/s/b", Dependencies: map[string]npmtree.Node{"shared": shared}},
		},
	}}

	set := Collect(entries)
	if set.Len() != 3 {
		t.Fatalf("Len = %d, want 3: %v", set.Len(), set.Paths())
	}
	count := 0
	for _, p := range set.Paths() {
		if p == "/s/shared" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("shared path occurs %d times, want 1", count)
	}
}

func TestCollect_CycleTerminates(t *testing.T) {
	// A and B reference each other; the serialized tree repeats the same
	// paths under alternating parents.
	entries := []npmtree.Entry{{
		Dependencies: map[string]npmtree.Node{
			"a": {Path: "/s/a", Dependencies: map[string]npmtree.Node{
				"b": {Path: "/s/b", Dependencies: map[string]npmtree.Node{
					"a": {Path: "/s/a", Dependencies: map[string]npmtree.Node{
						"b": {Path: "/s/b"},
					}},
				}},
			}},
		},
	}}

	got := Collect(entries).Paths()
	want := []string{"/s/a", "/s/b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestCollect_SkipsNodesWithoutPath(t *testing.T) {
	entries := []npmtree.Entry{{
		Dependencies: map[string]npmtree.Node{
			"placeholder": {Version: "1.0.0", Dependencies: map[string]npmtree.Node{
				// Unreachable: the placeholder has no path, so its
				// subtree is not expanded.
				"hidden": {Path: "/s/hidden"},
			}},
			"real": {Path: "/s/real"},
		},
	}}

	got := Collect(entries).Paths()
	want := []string{"/s/real"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestCollect_MultipleEntries(t *testing.T) {
	entries := []npmtree.Entry{
		{Dependencies: map[string]npmtree.Node{"a": {Path: "/s/a"}}},
		{Dependencies: map[string]npmtree.Node{"a": {Path: "/s/a"}, "b": {Path: "/s/b"}}},
	}

	got := Collect(entries).Paths()
	want := []string{"/s/a", "/s/b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestPathSet_Order(t *testing.T) {
	set := NewPathSet()
	for _, p := range []string{"/z", "/a", "/z", "/m"} {
		set.Add(p)
	}

	want := []string{"/z", "/a", "/m"}
	if got := set.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	if set.Add("/a") {
		t.Error("Add returned true for duplicate")
	}
	if !set.Contains("/m") {
		t.Error("Contains(/m) = false")
	}
}
