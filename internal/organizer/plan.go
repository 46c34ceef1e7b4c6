package organizer

import (
	"fmt"
	"path/filepath"
	"strings"

	"arcademedia/internal/assets"
	"arcademedia/internal/fileutil"
	"arcademedia/internal/matching"
	"arcademedia/internal/textutil"
)

// Mode selects the file operation.
type Mode string

const (
	ModeCopy   Mode = "copy"
	ModeMove   Mode = "move"
	ModeRename Mode = "rename"
)

// ParseMode validates a configured mode name.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeCopy:
		return ModeCopy, nil
	case ModeMove:
		return ModeMove, nil
	case ModeRename:
		return ModeRename, nil
	default:
		return "", fmt.Errorf("unknown organize mode %q", value)
	}
}

// DefaultVideoExtension is the container every video is renamed to.
const DefaultVideoExtension = ".mp4"

// Options configures planning and applying.
type Options struct {
	// Dest is the output directory; ignored in rename mode.
	Dest           string
	Mode           Mode
	Kind           assets.Kind
	VideoExtension string
	Overwrite      bool
}

// Status is the state of one action.
type Status string

const (
	StatusPlanned       Status = "planned"
	StatusDone          Status = "done"
	StatusInPlace       Status = "in_place"
	StatusSourceMissing Status = "source_missing"
	StatusTargetExists  Status = "target_exists"
	StatusFailed        Status = "failed"
	StatusInvalidID     Status = "invalid_id"
)

// Action is one planned file operation.
type Action struct {
	ID          string `json:"id" yaml:"id"`
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Mode        Mode   `json:"mode" yaml:"mode"`
	Status      Status `json:"status" yaml:"status"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Plan builds one action per matched result, in result order. When two ids
// sanitize to the same destination the later action is marked target_exists
// so it never overwrites the earlier one.
func Plan(results []matching.Result, opts Options) []Action {
	mode := opts.Mode
	if mode == "" {
		mode = ModeCopy
	}
	actions := make([]Action, 0, len(results))
	// Folded so collisions are caught on case-insensitive filesystems too.
	planned := make(map[string]string, len(results))
	for _, res := range results {
		if !res.Matched() {
			continue
		}
		action := Action{ID: res.ID, Source: res.AssetPath, Mode: mode, Status: StatusPlanned}
		stem := textutil.SanitizeFileName(res.ID)
		if stem == "" {
			action.Status = StatusInvalidID
			actions = append(actions, action)
			continue
		}
		dir := opts.Dest
		if mode == ModeRename {
			dir = filepath.Dir(res.AssetPath)
		}
		action.Destination = filepath.Join(dir, stem+TargetExtension(res.AssetPath, opts))
		key := strings.ToLower(filepath.Clean(action.Destination))
		if owner, taken := planned[key]; taken {
			action.Status = StatusTargetExists
			action.Error = fmt.Sprintf("destination already planned for %s", owner)
			actions = append(actions, action)
			continue
		}
		planned[key] = res.ID
		if fileutil.SamePath(action.Destination, action.Source) {
			action.Status = StatusInPlace
		}
		actions = append(actions, action)
	}
	return actions
}

// TargetExtension returns the output extension for an asset: its own
// lowercased extension for images, the configured container for videos.
func TargetExtension(assetPath string, opts Options) string {
	if opts.Kind == assets.KindVideo {
		ext := strings.ToLower(strings.TrimSpace(opts.VideoExtension))
		if ext == "" {
			return DefaultVideoExtension
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return ext
	}
	ext := strings.ToLower(filepath.Ext(assetPath))
	if !assets.ImageExtensions().Has(ext) {
		return ".png"
	}
	return ext
}
