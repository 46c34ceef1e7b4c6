// Package identity derives canonical game ids from source records.
//
// Sources are tried in order: an explicit marker in the record hint or its
// launch script, the sidecar metadata store (reverse lookup by normalized
// title), then the profile directory (profile whose game folder normalizes to
// the same title). A lookup that yields several ids is reported as ambiguous
// rather than resolved to any of them.
package identity

import (
	"strings"
	"unicode"

	"arcademedia/internal/launchscript"
	"arcademedia/internal/textutil"
)

// SourceRecord is one game entry read from a catalog.
type SourceRecord struct {
	Title           string `json:"title"`
	Hint            string `json:"hint,omitempty"`
	ApplicationPath string `json:"application_path,omitempty"`
}

// NewSourceRecord trims every field of a record.
func NewSourceRecord(title, hint, applicationPath string) SourceRecord {
	return SourceRecord{
		Title:           strings.TrimSpace(title),
		Hint:            strings.TrimSpace(hint),
		ApplicationPath: strings.TrimSpace(applicationPath),
	}
}

// Source names the step that produced a resolution.
type Source string

const (
	SourceHint         Source = "hint"
	SourceLaunchScript Source = "launch_script"
	SourceSidecar      Source = "sidecar"
	SourceProfile      Source = "profile"
	SourceNone         Source = "none"
	SourceAmbiguous    Source = "ambiguous"
)

// Resolution is the outcome for one record. ID is set only for resolved
// sources. Candidates lists the competing ids of an ambiguous lookup. Err
// carries the first artifact failure met on the way, which never prevents a
// later step from succeeding.
type Resolution struct {
	ID         string   `json:"id,omitempty"`
	Source     Source   `json:"source"`
	Candidates []string `json:"candidates,omitempty"`
	Err        error    `json:"-"`
}

// Resolved reports whether an id was derived.
func (r Resolution) Resolved() bool {
	return r.ID != "" && r.Source != SourceNone && r.Source != SourceAmbiguous
}

// TitleLookup maps a normalized title to the canonical ids recorded for it.
type TitleLookup interface {
	LookupTitle(key string) []string
}

// Resolver holds the optional context each step consults. Any field may be
// left zero to skip its step.
type Resolver struct {
	Scripts  launchscript.Dir
	Sidecar  TitleLookup
	Profiles TitleLookup
}

// Resolve runs the precedence chain for rec.
func (r *Resolver) Resolve(rec SourceRecord) Resolution {
	var firstErr error
	note := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if id, ok := r.fromHint(rec.Hint); ok {
		return Resolution{ID: id, Source: SourceHint}
	}

	if rec.ApplicationPath != "" {
		id, found, err := r.Scripts.Identifier(rec.ApplicationPath)
		note(err)
		if found && err == nil {
			return Resolution{ID: id, Source: SourceLaunchScript}
		}
	}

	key := textutil.NormalizeKey(rec.Title)
	for _, step := range []struct {
		lookup TitleLookup
		source Source
	}{
		{r.Sidecar, SourceSidecar},
		{r.Profiles, SourceProfile},
	} {
		if step.lookup == nil || key == "" {
			continue
		}
		ids := distinct(step.lookup.LookupTitle(key))
		switch len(ids) {
		case 0:
			continue
		case 1:
			return Resolution{ID: ids[0], Source: step.source, Err: firstErr}
		default:
			return Resolution{Source: SourceAmbiguous, Candidates: ids, Err: firstErr}
		}
	}

	return Resolution{Source: SourceNone, Err: firstErr}
}

// fromHint accepts a marker line ("--profile=ID.xml") or a bare id token.
// A hint that carries the marker but no parsable id is not a bare id.
func (r *Resolver) fromHint(hint string) (string, bool) {
	if hint == "" {
		return "", false
	}
	if id, ok := r.Scripts.Marker.Extract(hint); ok {
		return id, true
	}
	token := r.Scripts.Marker.Token
	if token == "" {
		token = launchscript.DefaultMarker
	}
	if strings.Contains(strings.ToLower(hint), strings.ToLower(token)) {
		return "", false
	}
	if strings.IndexFunc(hint, unicode.IsSpace) >= 0 {
		return "", false
	}
	return hint, true
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
