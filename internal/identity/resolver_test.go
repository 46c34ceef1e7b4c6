package identity

import (
	"os"
	"path/filepath"
	"testing"

	"arcademedia/internal/launchscript"
)

type lookupMap map[string][]string

func (m lookupMap) LookupTitle(key string) []string { return m[key] }

func TestResolveHintMarker(t *testing.T) {
	r := &Resolver{}
	got := r.Resolve(NewSourceRecord("太鼓達人 紅版", "--profile=TAIKO.xml", ""))
	if !got.Resolved() || got.ID != "TAIKO" || got.Source != SourceHint {
		t.Fatalf("Resolve() = %+v", got)
	}
}

func TestResolveBareHint(t *testing.T) {
	r := &Resolver{}
	if got := r.Resolve(NewSourceRecord("Time Crisis 5", " TC5 ", "")); got.ID != "TC5" {
		t.Fatalf("Resolve() = %+v", got)
	}
	if got := r.Resolve(NewSourceRecord("Time Crisis 5", "--profile=TC5", "")); got.Resolved() {
		t.Fatalf("malformed marker hint must fall through, got %+v", got)
	}
	if got := r.Resolve(NewSourceRecord("Time Crisis 5", "START game.exe", "")); got.Resolved() {
		t.Fatalf("command line hint must fall through, got %+v", got)
	}
}

func TestResolvePrecedence(t *testing.T) {
	scripts := t.TempDir()
	if err := os.WriteFile(filepath.Join(scripts, "TC5.bat"), []byte("START TeknoParrotUi.exe --profile=TC5.xml\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(scripts, "Bad.bat"), []byte("echo\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &Resolver{
		Scripts:  launchscript.Dir{Path: scripts, Marker: launchscript.DefaultMarkerSpec()},
		Sidecar:  lookupMap{"timecrisis5": {"SIDECAR"}, "tekken": {"TK"}},
		Profiles: lookupMap{"timecrisis5": {"PROFILE"}, "tekken": {"TKP"}, "daytona": {"DAY"}},
	}

	tests := []struct {
		name   string
		rec    SourceRecord
		id     string
		source Source
		err    bool
	}{
		{"script beats sidecar", NewSourceRecord("Time Crisis 5", "", `..\bat\TC5.bat`), "TC5", SourceLaunchScript, false},
		{"missing script falls to sidecar", NewSourceRecord("Time Crisis 5", "", "Missing.bat"), "SIDECAR", SourceSidecar, false},
		{"broken script falls to sidecar", NewSourceRecord("TEKKEN", "", "Bad.bat"), "TK", SourceSidecar, true},
		{"profile step", NewSourceRecord("Daytona", "", ""), "DAY", SourceProfile, false},
		{"unresolved", NewSourceRecord("Unknown", "", ""), "", SourceNone, false},
		{"symbol title unresolved", NewSourceRecord("!!!", "", ""), "", SourceNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.rec)
			if got.ID != tt.id || got.Source != tt.source {
				t.Fatalf("Resolve() = %+v, want id=%q source=%s", got, tt.id, tt.source)
			}
			if (got.Err != nil) != tt.err {
				t.Fatalf("Resolve() err = %v, want err=%v", got.Err, tt.err)
			}
		})
	}
}

func TestResolveAmbiguous(t *testing.T) {
	r := &Resolver{Sidecar: lookupMap{"timecrisis5": {"TC5", "TC5DX", "TC5"}}}
	got := r.Resolve(NewSourceRecord("Time Crisis 5", "", ""))
	if got.Resolved() || got.Source != SourceAmbiguous {
		t.Fatalf("expected ambiguous, got %+v", got)
	}
	if len(got.Candidates) != 2 {
		t.Fatalf("expected 2 distinct candidates, got %v", got.Candidates)
	}

	single := &Resolver{Sidecar: lookupMap{"timecrisis5": {"TC5", "TC5"}}}
	if got := single.Resolve(NewSourceRecord("Time Crisis 5", "", "")); got.ID != "TC5" {
		t.Fatalf("duplicate entries of one id are not ambiguous, got %+v", got)
	}
}
