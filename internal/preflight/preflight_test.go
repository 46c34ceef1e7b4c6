package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"arcademedia/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, true)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), false)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f, false); result.Passed {
		t.Fatal("expected failure for file path")
	}
	if result := CheckFileAccess("test", f); !result.Passed {
		t.Fatalf("expected file check to pass, got: %s", result.Detail)
	}
	if result := CheckPathAccess("test", f); !result.Passed {
		t.Fatalf("expected path check to pass, got: %s", result.Detail)
	}
}

func TestCheckDestinationWillBeCreated(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "Media", "Covers")
	result := CheckDestination("dest", dest)
	if !result.Passed {
		t.Fatalf("expected pass for creatable destination, got: %s", result.Detail)
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDestination("dest", filepath.Join(blocker, "sub")); result.Passed {
		t.Fatal("expected failure when an ancestor is a file")
	}
}

func TestRunAll(t *testing.T) {
	base := t.TempDir()
	db := filepath.Join(base, "Teknoparrot.xml")
	if err := os.WriteFile(db, []byte("<LaunchBox/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := filepath.Join(base, "covers")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Paths: config.Paths{
			LaunchBoxDB:  db,
			ScriptsDir:   filepath.Join(base, "bat"),
			ProfilesDirs: []string{filepath.Join(base, "UserProfiles")},
		},
		Jobs: []config.Job{{
			Name:    "covers",
			Catalog: config.CatalogLaunchBox,
			Roots:   []string{root},
			Dest:    filepath.Join(base, "Media", "Covers"),
			Mode:    "copy",
		}},
	}
	results := RunAll(cfg)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %+v", len(results), results)
	}
	if Failed(results) {
		t.Fatalf("missing optional scripts/profiles must not fail: %+v", results)
	}

	cfg.Jobs[0].Roots = append(cfg.Jobs[0].Roots, filepath.Join(base, "missing"))
	if !Failed(RunAll(cfg)) {
		t.Fatal("expected failure for missing root")
	}
}
