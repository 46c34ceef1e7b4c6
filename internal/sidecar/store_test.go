package sidecar_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"arcademedia/internal/faults"
	"arcademedia/internal/sidecar"
)

func TestLoadFileReverseLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "descriptions.json")
	body := "\xEF\xBB\xBF" + `{
  "TC5": {"profile_id": "TC5", "title": "Time Crisis 5"},
  "TC5DX": {"title": "TIME-CRISIS 5"},
  "WMMT6RR": {"game_name": "Wangan Midnight 6RR"},
  "BAD": "not an object",
  "EMPTY": {"title": ""}
}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := sidecar.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", store.Len())
	}
	if store.Failures != 1 {
		t.Fatalf("expected 1 failure, got %d", store.Failures)
	}
	ids := store.LookupTitle("timecrisis5")
	if len(ids) != 2 || ids[0] != "TC5" || ids[1] != "TC5DX" {
		t.Fatalf("LookupTitle() = %v", ids)
	}
	if ids := store.LookupTitle("wanganmidnight6rr"); len(ids) != 1 || ids[0] != "WMMT6RR" {
		t.Fatalf("LookupTitle(wangan) = %v", ids)
	}
}

func TestLoadDirectory(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "shooter", "TC5.json"), `{"game_name": "Time Crisis 5"}`)
	write(t, filepath.Join(root, "TAIKO.json"), `{"title": "太鼓達人 紅版"}`)
	write(t, filepath.Join(root, "broken.json"), `{`)
	write(t, filepath.Join(root, "notes.txt"), `ignored`)

	store, err := sidecar.Load(root, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Len() != 2 || store.Failures != 1 {
		t.Fatalf("len=%d failures=%d", store.Len(), store.Failures)
	}
	if ids := store.LookupTitle("太鼓達人紅版"); len(ids) != 1 || ids[0] != "TAIKO" {
		t.Fatalf("LookupTitle() = %v", ids)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := sidecar.Load(filepath.Join(t.TempDir(), "none.json"), nil)
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestWriteDescriptionsRoundTripsAsStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "descriptions.json")
	err := sidecar.WriteDescriptions(path, map[string]sidecar.Description{
		"WMMT6RR": {ProfileID: "WMMT6RR", BatName: "Wangan", Title: "灣岸午夜極速6RR", Genre: "Racing"},
	})
	if err != nil {
		t.Fatalf("WriteDescriptions: %v", err)
	}
	store, err := sidecar.Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ids := store.LookupTitle("灣岸午夜極速6rr"); len(ids) != 1 || ids[0] != "WMMT6RR" {
		t.Fatalf("LookupTitle() = %v", ids)
	}
	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".descriptions-*"))
	if len(matches) != 0 {
		t.Fatalf("temp files left behind: %v", matches)
	}
}

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}
