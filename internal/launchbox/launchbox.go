// Package launchbox reads LaunchBox platform databases (one XML file per
// platform, a <LaunchBox> root holding <Game> entries).
package launchbox

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"arcademedia/internal/faults"
	"arcademedia/internal/launchscript"
	"arcademedia/internal/textutil"
)

// Game is one <Game> entry. Only the fields the pipeline passes through are kept.
type Game struct {
	Title           string `xml:"Title" json:"title"`
	ApplicationPath string `xml:"ApplicationPath" json:"application_path"`
	Notes           string `xml:"Notes" json:"notes"`
	Genre           string `xml:"Genre" json:"genre"`
	Developer       string `xml:"Developer" json:"developer"`
	Publisher       string `xml:"Publisher" json:"publisher"`
	ReleaseDate     string `xml:"ReleaseDate" json:"release_date"`
}

// ScriptName returns the base name of the game's launch script.
func (g Game) ScriptName() string {
	return launchscript.BaseName(g.ApplicationPath)
}

type document struct {
	XMLName xml.Name `xml:"LaunchBox"`
	Games   []Game   `xml:"Game"`
}

// Load reads the database at path. A missing file is a configuration error.
func Load(path string) ([]Game, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, faults.Wrap(faults.ErrConfiguration, "launchbox", "open", fmt.Sprintf("database %s not found", path), err)
		}
		return nil, faults.Wrap(faults.ErrConfiguration, "launchbox", "open", path, err)
	}
	defer f.Close()

	games, err := Decode(f)
	if err != nil {
		return nil, faults.Wrap(faults.ErrParse, "launchbox", "decode", path, err)
	}
	return games, nil
}

// Decode parses a database document. Entries without a title are dropped and
// string fields other than Notes are trimmed.
func Decode(r io.Reader) ([]Game, error) {
	var doc document
	decoder := xml.NewDecoder(textutil.NewUTF8Reader(r))
	decoder.CharsetReader = textutil.PassthroughCharsetReader
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	games := make([]Game, 0, len(doc.Games))
	for _, g := range doc.Games {
		g.Title = strings.TrimSpace(g.Title)
		if g.Title == "" {
			continue
		}
		g.ApplicationPath = strings.TrimSpace(g.ApplicationPath)
		g.Genre = strings.TrimSpace(g.Genre)
		g.Developer = strings.TrimSpace(g.Developer)
		g.Publisher = strings.TrimSpace(g.Publisher)
		g.ReleaseDate = strings.TrimSpace(g.ReleaseDate)
		games = append(games, g)
	}
	return games, nil
}
