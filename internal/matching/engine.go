// Package matching assigns at most one asset to each canonical id using the
// layered exact, prefix and fuzzy strategies.
package matching

import (
	"log/slog"
	"sort"
	"unicode/utf8"

	"arcademedia/internal/assets"
	"arcademedia/internal/logging"
	"arcademedia/internal/textutil"
)

// DefaultMinScore is the fuzzy threshold; a score must exceed it to match.
const DefaultMinScore = 0.25

// Target is one canonical id to find an asset for.
type Target struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Result is the outcome for one target. AssetPath is empty when Strategy is
// StrategyNone.
type Result struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	AssetPath string   `json:"asset_path,omitempty"`
	Strategy  Strategy `json:"strategy"`
	Score     float64  `json:"score"`
}

// Matched reports whether an asset was selected.
func (r Result) Matched() bool {
	return r.Strategy != StrategyNone && r.AssetPath != ""
}

// Scorer rates the similarity of two comparison keys in [0, 1].
type Scorer interface {
	Score(a, b string) float64
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(a, b string) float64

func (f ScorerFunc) Score(a, b string) float64 { return f(a, b) }

// RatioScorer scores with the matching-block sequence ratio.
var RatioScorer Scorer = ScorerFunc(textutil.SequenceRatio)

// Consumed is the run-scoped set of asset paths already assigned. Create one
// per run with NewConsumed.
type Consumed struct {
	paths map[string]struct{}
}

// NewConsumed returns an empty set.
func NewConsumed() *Consumed {
	return &Consumed{paths: map[string]struct{}{}}
}

// Has reports whether path was assigned.
func (c *Consumed) Has(path string) bool {
	_, ok := c.paths[path]
	return ok
}

// Add marks path as assigned.
func (c *Consumed) Add(path string) {
	c.paths[path] = struct{}{}
}

// Len returns the number of assigned paths.
func (c *Consumed) Len() int {
	return len(c.paths)
}

// Engine runs the layered match.
type Engine struct {
	MinScore     float64
	Scorer       Scorer
	LongestFirst bool
	Logger       *slog.Logger
}

// NewEngine returns an engine with the default threshold, the ratio scorer
// and longest-title-first ordering.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		MinScore:     DefaultMinScore,
		Scorer:       RatioScorer,
		LongestFirst: true,
		Logger:       logger,
	}
}

// Order returns targets in processing order: when longestFirst is set, by
// descending rune length of the normalized title, keeping input order for
// equal lengths.
func Order(targets []Target, longestFirst bool) []Target {
	ordered := append([]Target(nil), targets...)
	if !longestFirst {
		return ordered
	}
	lengths := make([]int, len(ordered))
	for i, t := range ordered {
		lengths[i] = utf8.RuneCountInString(textutil.NormalizeKey(t.Title))
	}
	positions := make([]int, len(ordered))
	for i := range positions {
		positions[i] = i
	}
	sort.SliceStable(positions, func(a, b int) bool {
		return lengths[positions[a]] > lengths[positions[b]]
	})
	out := make([]Target, len(ordered))
	for i, pos := range positions {
		out[i] = ordered[pos]
	}
	return out
}

// MatchAll produces one result per target in processing order. Each selected
// asset is added to consumed before the next target is considered.
func (e *Engine) MatchAll(targets []Target, idx *assets.Index, consumed *Consumed) []Result {
	logger := logging.NewComponentLogger(e.Logger, "matching")
	if consumed == nil {
		consumed = NewConsumed()
	}
	ordered := Order(targets, e.LongestFirst)
	results := make([]Result, 0, len(ordered))
	for _, target := range ordered {
		result := e.match(target, idx, consumed)
		if result.Matched() {
			consumed.Add(result.AssetPath)
		}
		logger.Debug("target matched",
			logging.String(logging.FieldCanonicalID, result.ID),
			logging.String(logging.FieldTitle, result.Title),
			logging.String(logging.FieldStrategy, result.Strategy.String()),
			logging.String(logging.FieldAsset, result.AssetPath),
			logging.Float64("score", result.Score),
		)
		results = append(results, result)
	}
	return results
}

func (e *Engine) match(target Target, idx *assets.Index, consumed *Consumed) Result {
	result := Result{ID: target.ID, Title: target.Title, Strategy: StrategyNone}

	titleKey := textutil.NormalizeKey(target.Title)
	for _, key := range []string{titleKey, textutil.NormalizeKey(target.ID)} {
		if c, ok := firstUnconsumed(idx.Exact(key), consumed); ok {
			result.AssetPath, result.Strategy, result.Score = c.Path, StrategyExact, 1
			return result
		}
	}

	prefixKey := textutil.NormalizeKey(textutil.StripTitleSuffix(target.Title))
	if c, ok := firstUnconsumed(idx.Prefix(prefixKey), consumed); ok {
		result.AssetPath, result.Strategy, result.Score = c.Path, StrategyPrefix, 1
		return result
	}

	if c, score, ok := e.bestFuzzy(titleKey, idx, consumed); ok {
		result.AssetPath, result.Strategy, result.Score = c.Path, StrategyFuzzy, score
	}
	return result
}

// bestFuzzy returns the highest-scoring unconsumed candidate whose score is
// strictly above MinScore. Earlier candidates win ties.
func (e *Engine) bestFuzzy(key string, idx *assets.Index, consumed *Consumed) (assets.Candidate, float64, bool) {
	if key == "" {
		return assets.Candidate{}, 0, false
	}
	scorer := e.Scorer
	if scorer == nil {
		scorer = RatioScorer
	}
	var (
		best  assets.Candidate
		found bool
	)
	bestScore := e.MinScore
	for _, c := range idx.All() {
		if c.Key == "" || consumed.Has(c.Path) {
			continue
		}
		if score := scorer.Score(key, c.Key); score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, bestScore, found
}

func firstUnconsumed(cands []assets.Candidate, consumed *Consumed) (assets.Candidate, bool) {
	for _, c := range cands {
		if !consumed.Has(c.Path) {
			return c, true
		}
	}
	return assets.Candidate{}, false
}
