package organizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"

	"arcademedia/internal/faults"
	"arcademedia/internal/fileutil"
	"arcademedia/internal/logging"
)

const lockFileName = ".arcademedia.lock"

// Summary counts applied actions by status.
type Summary struct {
	Done          int `json:"done" yaml:"done"`
	InPlace       int `json:"in_place" yaml:"in_place"`
	SourceMissing int `json:"source_missing" yaml:"source_missing"`
	TargetExists  int `json:"target_exists" yaml:"target_exists"`
	Failed        int `json:"failed" yaml:"failed"`
	InvalidID     int `json:"invalid_id" yaml:"invalid_id"`
}

// Summarize counts actions by status.
func Summarize(actions []Action) Summary {
	var s Summary
	for _, a := range actions {
		switch a.Status {
		case StatusDone:
			s.Done++
		case StatusInPlace:
			s.InPlace++
		case StatusSourceMissing:
			s.SourceMissing++
		case StatusTargetExists:
			s.TargetExists++
		case StatusFailed:
			s.Failed++
		case StatusInvalidID:
			s.InvalidID++
		}
	}
	return s
}

// Organizer applies planned actions.
type Organizer struct {
	opts   Options
	logger *slog.Logger
}

// New constructs an organizer.
func New(opts Options, logger *slog.Logger) *Organizer {
	return &Organizer{opts: opts, logger: logging.NewComponentLogger(logger, "organizer")}
}

// Apply runs every planned action and returns them with final statuses.
// Per-action failures are logged and recorded; the returned error is set
// only when a destination cannot be prepared or locked.
func (o *Organizer) Apply(ctx context.Context, actions []Action) ([]Action, error) {
	logger := logging.WithContext(ctx, o.logger)
	out := append([]Action(nil), actions...)

	release, err := o.lockDestinations(out)
	if err != nil {
		return out, err
	}
	defer release()

	for i := range out {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		o.applyOne(&out[i], logger)
	}

	s := Summarize(out)
	logger.Info("organize complete",
		logging.Int("done", s.Done),
		logging.Int("in_place", s.InPlace),
		logging.Int("source_missing", s.SourceMissing),
		logging.Int("target_exists", s.TargetExists),
		logging.Int("failed", s.Failed),
	)
	return out, nil
}

func (o *Organizer) applyOne(a *Action, logger *slog.Logger) {
	if a.Status != StatusPlanned {
		return
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldCanonicalID, a.ID),
		logging.String(logging.FieldAsset, a.Source),
		logging.String(logging.FieldDestination, a.Destination),
	}

	if _, err := os.Stat(a.Source); errors.Is(err, fs.ErrNotExist) {
		a.Status = StatusSourceMissing
		logger.Info("source already gone, skipping", logging.Args(attrs...)...)
		return
	}
	if !o.opts.Overwrite && fileutil.Exists(a.Destination) {
		a.Status = StatusTargetExists
		logger.Warn("destination exists, skipping", logging.Args(attrs...)...)
		return
	}

	var err error
	switch a.Mode {
	case ModeMove, ModeRename:
		err = fileutil.MoveFile(a.Source, a.Destination)
	default:
		err = fileutil.CopyFile(a.Source, a.Destination)
	}
	if err != nil {
		wrapped := faults.Wrap(faults.ErrFileOperation, "organize", string(a.Mode), a.ID, err)
		a.Status = StatusFailed
		a.Error = wrapped.Error()
		logger.Error("file operation failed", logging.Args(append(attrs, logging.Error(wrapped))...)...)
		return
	}
	a.Status = StatusDone
	logger.Debug("asset organized", logging.Args(attrs...)...)
}

func (o *Organizer) lockDestinations(actions []Action) (func(), error) {
	dirs := map[string]struct{}{}
	for _, a := range actions {
		if a.Status == StatusPlanned && a.Destination != "" {
			dirs[filepath.Dir(a.Destination)] = struct{}{}
		}
	}
	ordered := make([]string, 0, len(dirs))
	for dir := range dirs {
		ordered = append(ordered, dir)
	}
	sort.Strings(ordered)

	var held []*flock.Flock
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			if err := held[i].Unlock(); err != nil {
				o.logger.Warn("failed to release destination lock", logging.String("lock", held[i].Path()), logging.Error(err))
			}
			_ = os.Remove(held[i].Path())
		}
	}
	for _, dir := range ordered {
		if err := fileutil.EnsureDir(dir); err != nil {
			release()
			return nil, faults.Wrap(faults.ErrConfiguration, "organize", "prepare", dir, err)
		}
		lock := flock.New(filepath.Join(dir, lockFileName))
		ok, err := lock.TryLock()
		if err != nil {
			release()
			return nil, faults.Wrap(faults.ErrFileOperation, "organize", "lock", dir, err)
		}
		if !ok {
			release()
			return nil, faults.Wrap(faults.ErrFileOperation, "organize", "lock", fmt.Sprintf("%s is locked by another run", dir), nil)
		}
		held = append(held, lock)
	}
	return release, nil
}
