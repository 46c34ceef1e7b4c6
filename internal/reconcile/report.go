package reconcile

import (
	"time"

	"arcademedia/internal/identity"
	"arcademedia/internal/matching"
)

// Status classifies the outcome of one source record.
type Status string

const (
	StatusMatched    Status = "matched"
	StatusUnresolved Status = "unresolved"
	StatusNoAsset    Status = "no_asset"
	StatusAmbiguous  Status = "ambiguous"
	StatusDuplicate  Status = "duplicate"
)

// Outcome is the per-record line of a report.
type Outcome struct {
	Title      string            `json:"title" yaml:"title"`
	// Key is the normalized title with separators kept as '-', for display.
	Key        string            `json:"key" yaml:"key"`
	ID         string            `json:"id,omitempty" yaml:"id,omitempty"`
	Source     identity.Source   `json:"source" yaml:"source"`
	Status     Status            `json:"status" yaml:"status"`
	Candidates []string          `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	AssetPath  string            `json:"asset_path,omitempty" yaml:"asset_path,omitempty"`
	Strategy   matching.Strategy `json:"strategy" yaml:"strategy"`
	Score      float64           `json:"score" yaml:"score"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// Counts summarizes a report.
type Counts struct {
	Records       int `json:"records" yaml:"records"`
	Matched       int `json:"matched" yaml:"matched"`
	Unresolved    int `json:"unresolved" yaml:"unresolved"`
	NoAsset       int `json:"no_asset" yaml:"no_asset"`
	Ambiguous     int `json:"ambiguous" yaml:"ambiguous"`
	Duplicate     int `json:"duplicate" yaml:"duplicate"`
	ParseFailures int `json:"parse_failures" yaml:"parse_failures"`
	Assets        int `json:"assets" yaml:"assets"`
	Unconsumed    int `json:"unconsumed" yaml:"unconsumed"`
}

// Report is the result of one reconciliation. Results keeps the engine's
// processing order; Outcomes keeps record order.
type Report struct {
	RunID      string            `json:"run_id" yaml:"run_id"`
	Job        string            `json:"job,omitempty" yaml:"job,omitempty"`
	StartedAt  time.Time         `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time         `json:"finished_at" yaml:"finished_at"`
	Counts     Counts            `json:"counts" yaml:"counts"`
	Outcomes   []Outcome         `json:"outcomes" yaml:"outcomes"`
	Results    []matching.Result `json:"results" yaml:"-"`
	Unconsumed []string          `json:"unconsumed" yaml:"unconsumed"`
}

// Matches returns the matched results in processing order.
func (r *Report) Matches() []matching.Result {
	out := make([]matching.Result, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Matched() {
			out = append(out, res)
		}
	}
	return out
}

// Mapping returns canonical id to asset path for every match.
func (r *Report) Mapping() map[string]string {
	out := make(map[string]string, len(r.Results))
	for _, res := range r.Matches() {
		out[res.ID] = res.AssetPath
	}
	return out
}

func (r *Report) finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()
	c := &r.Counts
	c.Records = len(r.Outcomes)
	c.Unconsumed = len(r.Unconsumed)
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusMatched:
			c.Matched++
		case StatusUnresolved:
			c.Unresolved++
		case StatusNoAsset:
			c.NoAsset++
		case StatusAmbiguous:
			c.Ambiguous++
		case StatusDuplicate:
			c.Duplicate++
		}
	}
}
