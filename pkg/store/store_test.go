package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func storePath(ws, id, name string) string {
	return filepath.Join(ws, "node_modules", ".pnpm", id, "node_modules", filepath.FromSlash(name))
}

func TestPackageName(t *testing.T) {
	r := &Resolver{}

	tests := []struct {
		name string
		path string
		want string
		ok   bool
	}{
		{
			"plain package",
			"/ws/node_modules/.pnpm/left-pad@1.3.0/node_modules/left-pad",
			"left-pad", true,
		},
		{
			"scoped package keeps separator",
			"/ws/node_modules/.pnpm/@types+node@20.1.0/node_modules/@types/node",
			"@types/node", true,
		},
		{
			"nested store resolves innermost",
			"/ws/node_modules/.pnpm/a@1/node_modules/a/node_modules/.pnpm/b@2/node_modules/b",
			"b", true,
		},
		{"hoisted path", "/ws/node_modules/left-pad", "", false},
		{"unrelated path", "/ws/packages/app", "", false},
		{"marker without package", "/ws/node_modules/.pnpm/left-pad@1.3.0", "", false},
		{"marker without second link dir", "/ws/node_modules/.pnpm/a@1/lib/a", "", false},
		{"marker without preceding link dir", "/ws/.pnpm/a@1/node_modules/a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.PackageName(tt.path)
			if got != tt.want || ok != tt.ok {
				t.Errorf("PackageName(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResolve_HoistsWhenLinkExists(t *testing.T) {
	ws := t.TempDir()
	hoisted := filepath.Join(ws, "node_modules", "left-pad")
	if err := os.MkdirAll(hoisted, 0755); err != nil {
		t.Fatal(err)
	}

	r := &Resolver{}
	got := r.Resolve(ws, []string{storePath(ws, "left-pad@1.3.0", "left-pad")})

	if !reflect.DeepEqual(got, []string{hoisted}) {
		t.Errorf("Resolve = %v, want [%s]", got, hoisted)
	}
}

func TestResolve_ScopedPackage(t *testing.T) {
	ws := t.TempDir()
	hoisted := filepath.Join(ws, "node_modules", "@types", "node")
	if err := os.MkdirAll(hoisted, 0755); err != nil {
		t.Fatal(err)
	}

	r := &Resolver{}
	got := r.Resolve(ws, []string{storePath(ws, "@types+node@20.1.0", "@types/node")})

	if !reflect.DeepEqual(got, []string{hoisted}) {
		t.Errorf("Resolve = %v, want [%s]", got, hoisted)
	}
}

func TestResolve_FallsBackWhenLinkAbsent(t *testing.T) {
	ws := t.TempDir()
	orig := storePath(ws, "left-pad@1.3.0", "left-pad")

	r := &Resolver{}
	got := r.Resolve(ws, []string{orig})

	if !reflect.DeepEqual(got, []string{orig}) {
		t.Errorf("Resolve = %v, want original store path %s", got, orig)
	}
}

func TestResolve_NonStorePathsPassThrough(t *testing.T) {
	ws := t.TempDir()
	paths := []string{
		filepath.Join(ws, "packages", "app"),
		filepath.Join(ws, "node_modules", "plain"),
	}

	r := &Resolver{}
	got := r.Resolve(ws, paths)

	if !reflect.DeepEqual(got, paths) {
		t.Errorf("Resolve = %v, want identity %v", got, paths)
	}
}

func TestResolve_PreservesOrder(t *testing.T) {
	ws := t.TempDir()
	for _, name := range []string{"b", "a"} {
		if err := os.MkdirAll(filepath.Join(ws, "node_modules", name), 0755); err != nil {
			t.Fatal(err)
		}
	}

	r := &Resolver{}
	got := r.Resolve(ws, []string{
		storePath(ws, "b@1.0.0", "b"),
		filepath.Join(ws, "packages", "lib"),
		storePath(ws, "a@1.0.0", "a"),
	})

	want := []string{
		filepath.Join(ws, "node_modules", "b"),
		filepath.Join(ws, "packages", "lib"),
		filepath.Join(ws, "node_modules", "a"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolve_CustomStatIsReadOnly(t *testing.T) {
	var checked []string
	r := &Resolver{Stat: func(p string) (os.FileInfo, error) {
		checked = append(checked, p)
		return nil, os.ErrNotExist
	}}

	r.Resolve("/ws", []string{storePath("/ws", "a@1", "a")})

	want := filepath.Join("/ws", "node_modules", "a")
	if len(checked) != 1 || checked[0] != want {
		t.Errorf("stat calls = %v, want [%s]", checked, want)
	}
}
