// Package extract pulls structured fact candidates out of noisy page text
// using ranked pattern rules gated by a rule-table validator.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pitchside/playerfacts/internal/model"
	"github.com/pitchside/playerfacts/internal/normalize"
)

var (
	wsRe   = regexp.MustCompile(`\s+`)
	edgeRe = regexp.MustCompile(`^\W+|\W+$`)
)

// Engine runs ranked extraction rules for a fact type and returns the first
// validator-accepted candidate.
type Engine struct {
	rules     map[model.FactType][]Rule
	validator *Validator
}

// NewEngine creates an engine with the default rule tables and validator.
func NewEngine() *Engine {
	return &Engine{rules: defaultRules, validator: NewValidator()}
}

// NewEngineWith creates an engine with explicit rule tables, for tests and
// tuning runs.
func NewEngineWith(rules map[model.FactType][]Rule, v *Validator) *Engine {
	return &Engine{rules: rules, validator: v}
}

// Validator exposes the engine's validator for callers that pre-screen.
func (e *Engine) Validator() *Validator {
	return e.validator
}

// Extract returns the first accepted candidate for the fact type in text,
// or nil when nothing matches. A nil result is a normal outcome, not an
// error. City and State are populated when a location appears near the
// candidate in the same text.
func (e *Engine) Extract(text string, ft model.FactType) *model.Candidate {
	rules := append([]Rule(nil), e.rules[ft]...)
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Rank < rules[j].Rank })

	for _, rule := range rules {
		for _, m := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			value := cleanCapture(m[1], ft)
			if !e.validator.Acceptable(value, ft) {
				continue
			}

			c := &model.Candidate{Value: value}
			if ft == model.FactSchool {
				c.City, c.State = locateNear(text, value)
			}
			return c
		}
	}
	return nil
}

// cleanCapture truncates label-layout spillover, collapses whitespace,
// trims junk at the edges, and strips leading narrative fragments.
// Truncators run first; they key on runs of spaces the collapse would
// destroy.
func cleanCapture(raw string, ft model.FactType) string {
	s := strings.TrimSpace(raw)
	for _, t := range truncators[ft] {
		s = t.ReplaceAllString(s, "")
	}
	s = wsRe.ReplaceAllString(s, " ")
	s = edgeRe.ReplaceAllString(s, "")
	for _, p := range cleanupPrefixes {
		s = p.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// locateNear searches for "<value>, [in] City, ST" in the same text and
// returns the city and two-letter state when present. Full state names,
// including two-word ones like New Jersey, map to their codes.
func locateNear(text, value string) (city, state string) {
	p, err := regexp.Compile(regexp.QuoteMeta(value) + `[,\s]+(?i:in\s+)?([A-Z][A-Za-z\s]*?),\s*([A-Z]{2}\b|[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	if err != nil {
		return "", ""
	}
	m := p.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	city = strings.TrimSpace(m[1])
	state = strings.TrimSpace(m[2])
	if len(state) == 2 {
		return city, strings.ToUpper(state)
	}
	if code := normalize.StateCode(state); code != state {
		return city, code
	}
	// The optional second word can overshoot ("Illinois Before"); retry
	// on the first word alone before passing the capture through.
	if i := strings.IndexByte(state, ' '); i > 0 {
		if code := normalize.StateCode(state[:i]); code != state[:i] {
			return city, code
		}
	}
	return city, state
}
