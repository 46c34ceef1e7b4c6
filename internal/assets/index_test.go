package assets

import (
	"os"
	"path/filepath"
	"testing"

	"arcademedia/internal/logging"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func paths(cands []Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Name)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScanKeysAndOrdering(t *testing.T) {
	box := t.TempDir()
	cabinet := t.TempDir()
	touch(t, filepath.Join(box, "Time Crisis 5-02.png"))
	touch(t, filepath.Join(box, "Time Crisis 5-01.jpg"))
	touch(t, filepath.Join(box, "readme.txt"))
	touch(t, filepath.Join(cabinet, "Time Crisis 5-01.png"))
	touch(t, filepath.Join(cabinet, "Time Crisis 5.PNG"))

	idx := Scanner{Extensions: ImageExtensions(), Logger: logging.NewNop()}.Scan([]Root{{Path: box}, {Path: cabinet}})

	if idx.Len() != 4 {
		t.Fatalf("expected 4 candidates, got %d", idx.Len())
	}
	got := paths(idx.Prefix("timecrisis5"))
	want := []string{"Time Crisis 5-01.jpg", "Time Crisis 5-02.png", "Time Crisis 5-01.png", "Time Crisis 5.PNG"}
	if !equal(got, want) {
		t.Fatalf("Prefix() = %v, want %v", got, want)
	}
	exact := idx.Exact("timecrisis5")
	if len(exact) != 1 || exact[0].Name != "Time Crisis 5.PNG" || exact[0].Ext != ".png" {
		t.Fatalf("Exact() = %+v", exact)
	}
	if got := paths(idx.Exact("timecrisis501")); !equal(got, []string{"Time Crisis 5-01.jpg", "Time Crisis 5-01.png"}) {
		t.Fatalf("Exact(-01) = %v", got)
	}
	if !equal(paths(idx.All()), want) {
		t.Fatalf("All() = %v, want %v", paths(idx.All()), want)
	}
}

func TestScanMissingRootIsEmpty(t *testing.T) {
	good := t.TempDir()
	touch(t, filepath.Join(good, "a.mp4"))
	missing := filepath.Join(good, "missing")

	roots := []Root{{Path: missing}, {Path: good}}
	idx := Scanner{Extensions: VideoExtensions()}.Scan(roots)
	if idx.Len() != 1 {
		t.Fatalf("expected 1 candidate, got %d", idx.Len())
	}
	if len(idx.Missing) != 1 || idx.Missing[0] != missing {
		t.Fatalf("Missing = %v", idx.Missing)
	}
	if idx.AllMissing(roots) {
		t.Fatal("one readable root should not count as all missing")
	}
	if !(Scanner{}).Scan([]Root{{Path: missing}}).AllMissing([]Root{{Path: missing}}) {
		t.Fatal("expected all roots missing")
	}
}

func TestScanRecursiveHonoursExclude(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.png"))
	touch(t, filepath.Join(root, "nested", "b.png"))
	touch(t, filepath.Join(root, "Media", "Covers", "TC5.png"))

	flat := Scanner{}.Scan([]Root{{Path: root}})
	if flat.Len() != 1 {
		t.Fatalf("non-recursive scan should see 1 file, got %d", flat.Len())
	}

	deep := Scanner{Exclude: []string{filepath.Join(root, "Media")}}.Scan([]Root{{Path: root, Recursive: true}})
	if got := paths(deep.All()); !equal(got, []string{"a.png", "b.png"}) {
		t.Fatalf("recursive scan = %v", got)
	}
}

func TestSymbolOnlyNamesAreNotIndexedByKey(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "!!!.png"))

	idx := Scanner{}.Scan([]Root{{Path: root}})
	if idx.Len() != 1 {
		t.Fatalf("expected candidate to be listed, got %d", idx.Len())
	}
	if len(idx.Exact("")) != 0 || len(idx.Prefix("")) != 0 {
		t.Fatal("empty keys must never match")
	}
}

func TestExtensionSet(t *testing.T) {
	set := NewExtensionSet("PNG", ".Jpg", " ")
	if !set.Has(".png") || !set.Has(".JPG") || set.Has(".gif") {
		t.Fatalf("unexpected set %v", set)
	}
	if _, err := ParseKind("Video"); err != nil {
		t.Fatalf("ParseKind: %v", err)
	}
	if _, err := ParseKind("audio"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
