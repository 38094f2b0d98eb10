package render

import (
	"strings"
	"testing"

	"github.com/depclose/depclose/pkg/npmtree"
)

func TestToDOT_NodesAndEdges(t *testing.T) {
	entries := []npmtree.Entry{{
		Name: "app",
		Dependencies: map[string]npmtree.Node{
			"left-pad": {Version: "1.3.0", Path: "/s/left-pad", Dependencies: map[string]npmtree.Node{
				"core": {Version: "2.0.0", Path: "/s/core"},
			}},
		},
	}}

	dot := ToDOT(entries, Options{})

	for _, want := range []string{
		`"app" -> "left-pad@1.3.0";`,
		`"left-pad@1.3.0" -> "core@2.0.0";`,
		`"core@2.0.0" [label="core@2.0.0"];`,
		"digraph deps {",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_SharedPackageExpandsOnce(t *testing.T) {
	shared := npmtree.Node{Version: "1.0.0", Path: "/s/shared"}
	entries := []npmtree.Entry{{
		Name: "app",
		Dependencies: map[string]npmtree.Node{
			"a": {Version: "1.0.0", Path: "/s/a", Dependencies: map[string]npmtree.Node{"shared": shared}},
			"b": {Version: "1.0.0", Path: "/s/b", Dependencies: map[string]npmtree.Node{"shared": shared}},
		},
	}}

	dot := ToDOT(entries, Options{})

	if got := strings.Count(dot, `"shared@1.0.0" [label=`); got != 1 {
		t.Errorf("shared node declared %d times, want 1:\n%s", got, dot)
	}
	if got := strings.Count(dot, `-> "shared@1.0.0";`); got != 2 {
		t.Errorf("shared node has %d incoming edges, want 2:\n%s", got, dot)
	}
}

func TestToDOT_DetailedLabels(t *testing.T) {
	entries := []npmtree.Entry{{
		Name: "app",
		Dependencies: map[string]npmtree.Node{
			"a": {Version: "1.0.0", Path: "/s/a"},
		},
	}}

	dot := ToDOT(entries, Options{Detailed: true})
	if !strings.Contains(dot, `/s/a`) {
		t.Errorf("detailed DOT should include store paths:\n%s", dot)
	}
}

func TestToDOT_UnnamedEntry(t *testing.T) {
	entries := []npmtree.Entry{{
		Dependencies: map[string]npmtree.Node{"a": {Path: "/s/a"}},
	}}

	dot := ToDOT(entries, Options{})
	if !strings.Contains(dot, `"workspace"`) {
		t.Errorf("unnamed entry should render as workspace:\n%s", dot)
	}
}
