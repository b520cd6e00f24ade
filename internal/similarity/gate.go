// Package similarity detects near-duplicate questions.
package similarity

import (
	"fmt"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Supported metric names.
const (
	MetricDice        = "dice"
	MetricLevenshtein = "levenshtein"
	MetricJaroWinkler = "jaro-winkler"
)

// Match is the most similar existing string for a candidate.
// Index is -1 when there was nothing to compare against.
type Match struct {
	Text  string
	Score float64
	Index int
}

// Found reports whether the match refers to an existing string.
func (m Match) Found() bool {
	return m.Index >= 0
}

// Gate scores candidates against existing questions and decides whether
// they are too similar to accept.
type Gate struct {
	threshold float64
	metric    strutil.StringMetric
	name      string
}

// NewGate creates a gate that rejects scores strictly above threshold.
func NewGate(threshold float64, metricName string) (*Gate, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("threshold must be between 0 and 1, got %v", threshold)
	}

	metric, err := newMetric(metricName)
	if err != nil {
		return nil, err
	}

	if metricName == "" {
		metricName = MetricDice
	}
	return &Gate{threshold: threshold, metric: metric, name: metricName}, nil
}

func newMetric(name string) (strutil.StringMetric, error) {
	switch name {
	case "", MetricDice:
		m := metrics.NewSorensenDice()
		m.CaseSensitive = false
		m.NgramSize = 2
		return m, nil
	case MetricLevenshtein:
		m := metrics.NewLevenshtein()
		m.CaseSensitive = false
		return m, nil
	case MetricJaroWinkler:
		m := metrics.NewJaroWinkler()
		m.CaseSensitive = false
		return m, nil
	default:
		return nil, fmt.Errorf("unknown similarity metric %q", name)
	}
}

// Threshold returns the configured rejection threshold.
func (g *Gate) Threshold() float64 {
	return g.threshold
}

// Metric returns the configured metric name.
func (g *Gate) Metric() string {
	return g.name
}

// Score returns the normalized similarity of a and b in [0,1].
func (g *Gate) Score(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if a == "" || b == "" {
		return 0
	}
	// Metrics such as bigram Dice cannot score single characters.
	if strings.EqualFold(a, b) {
		return 1
	}

	score := strutil.Similarity(a, b, g.metric)
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	}
	return score
}

// Evaluate finds the existing string most similar to candidate.
// Ties resolve to the earliest entry.
func (g *Gate) Evaluate(candidate string, existing []string) Match {
	best := Match{Index: -1}
	for i, text := range existing {
		score := g.Score(candidate, text)
		if !best.Found() || score > best.Score {
			best = Match{Text: text, Score: score, Index: i}
		}
	}
	return best
}

// Exceeds reports whether match is too similar to accept.
// A score equal to the threshold is accepted.
func (g *Gate) Exceeds(match Match) bool {
	return match.Found() && match.Score > g.threshold
}

// Normalize trims s and collapses internal whitespace runs to one space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
