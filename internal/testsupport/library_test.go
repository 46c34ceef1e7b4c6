package testsupport

import (
	"os"
	"strings"
	"testing"

	"arcademedia/internal/launchbox"
)

func TestLibraryRoundTripsThroughLoaders(t *testing.T) {
	lib := NewLibrary(t)
	db := lib.Games(launchbox.Game{Title: "太鼓達人 紅版", ApplicationPath: `..\bat\taiko.bat`}, launchbox.Game{Title: "R&D"})
	script := lib.Script("taiko", "TAIKO")

	games, err := launchbox.Load(db)
	if err != nil {
		t.Fatalf("launchbox.Load: %v", err)
	}
	if len(games) != 2 || games[1].Title != "R&D" || games[0].ScriptName() != "taiko.bat" {
		t.Fatalf("games = %+v", games)
	}
	data, err := os.ReadFile(script)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "--profile=TAIKO.xml") {
		t.Fatalf("script = %q", data)
	}

	cfg, _ := lib.Config("[logging]\nlevel = 'warn'\n")
	if cfg.Paths.BaseDir != lib.Base || cfg.Logging.Level != "warn" {
		t.Fatalf("config = %+v", cfg.Paths)
	}
}
