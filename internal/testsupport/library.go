package testsupport

import (
	"encoding/xml"
	"path/filepath"
	"strings"
	"testing"

	"arcademedia/internal/config"
	"arcademedia/internal/launchbox"
)

// Library is a throwaway LaunchBox/TeknoParrot tree rooted at a temp dir.
type Library struct {
	t    testing.TB
	Base string
}

// NewLibrary creates an empty library and clears the environment overrides
// the config loader honours.
func NewLibrary(t testing.TB) *Library {
	t.Helper()
	t.Setenv("ARCADEMEDIA_BASE_DIR", "")
	t.Setenv("ARCADEMEDIA_LOG_LEVEL", "")
	return &Library{t: t, Base: t.TempDir()}
}

// Path joins rel onto the library base.
func (l *Library) Path(rel ...string) string {
	return filepath.Join(append([]string{l.Base}, rel...)...)
}

// File writes body at rel and returns the absolute path.
func (l *Library) File(rel, body string) string {
	l.t.Helper()
	path := l.Path(filepath.FromSlash(rel))
	WriteFile(l.t, path, body)
	return path
}

// Games writes the LaunchBox database to Teknoparrot.xml.
func (l *Library) Games(games ...launchbox.Game) string {
	l.t.Helper()
	doc := struct {
		XMLName xml.Name         `xml:"LaunchBox"`
		Games   []launchbox.Game `xml:"Game"`
	}{Games: games}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		l.t.Fatalf("marshal launchbox: %v", err)
	}
	return l.File("Teknoparrot.xml", xml.Header+string(data)+"\n")
}

// Script writes bat/<name>.bat launching the given profile id. An empty id
// writes a script without a profile marker.
func (l *Library) Script(name, profileID string) string {
	l.t.Helper()
	line := "echo nothing here"
	if profileID != "" {
		line = `START ..\TeknoParrotUi.exe --profile=` + profileID + ".xml"
	}
	return l.File("bat/"+name+".bat", line+"\r\n")
}

// Assets writes placeholder asset files, each containing its own base name.
func (l *Library) Assets(dir string, names ...string) {
	l.t.Helper()
	for _, name := range names {
		l.File(dir+"/"+name, name)
	}
}

// Config writes arcademedia.toml with base_dir pointing at the library,
// followed by extra TOML, and loads it.
func (l *Library) Config(extra ...string) (*config.Config, string) {
	l.t.Helper()
	body := "[paths]\nbase_dir = '" + l.Base + "'\n" + strings.Join(extra, "\n")
	path := l.File("arcademedia.toml", body)
	cfg, _, _, err := config.Load(path)
	if err != nil {
		l.t.Fatalf("config.Load: %v", err)
	}
	return cfg, path
}
