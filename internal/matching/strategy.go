package matching

import "fmt"

// Strategy records how a result was produced.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyExact
	StrategyPrefix
	StrategyFuzzy
)

func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyExact:
		return "exact"
	case StrategyPrefix:
		return "prefix"
	case StrategyFuzzy:
		return "fuzzy"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// MarshalText renders the strategy name for JSON and YAML reports.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a strategy name.
func (s *Strategy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "":
		*s = StrategyNone
	case "exact":
		*s = StrategyExact
	case "prefix":
		*s = StrategyPrefix
	case "fuzzy":
		*s = StrategyFuzzy
	default:
		return fmt.Errorf("unknown strategy %q", text)
	}
	return nil
}
