// Package normalizer recovers a JSON value from free-form generator output.
package normalizer

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Tier records which fallback produced the value.
type Tier string

const (
	TierNone   Tier = "none"
	TierDirect Tier = "direct"
	TierFence  Tier = "fence"
	TierBraces Tier = "braces"
)

// InvalidJSON is the error marker carried by a failure payload.
const InvalidJSON = "invalid_json"

var fencePattern = regexp.MustCompile("(?i)```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// Result is the outcome of Normalize. On failure Value is nil and Raw holds
// the input verbatim.
type Result struct {
	Value any
	Tier  Tier
	Raw   string
}

// OK reports whether any tier produced a value.
func (r Result) OK() bool {
	return r.Tier != TierNone
}

// Failure is the diagnostic payload returned to callers when nothing parsed.
type Failure struct {
	RawOutput string `json:"raw_output"`
	Error     string `json:"error"`
}

// Failure returns the diagnostic payload for r.
func (r Result) Failure() Failure {
	return Failure{RawOutput: r.Raw, Error: InvalidJSON}
}

// Payload returns the parsed value, or the failure payload when nothing parsed.
func (r Result) Payload() any {
	if r.OK() {
		return r.Value
	}
	return r.Failure()
}

// Normalize attempts, in order: the whole text, the first fenced block that
// parses, and the span from the first '{' to the last '}'. The fence and brace
// tiers run on the text as given, then once more with reasoning blocks removed.
// It never fails; an unparseable input yields a Result with TierNone.
func Normalize(text string) Result {
	if v, ok := parse(text); ok {
		return Result{Value: v, Tier: TierDirect, Raw: text}
	}

	if v, tier := extract(text); tier != TierNone {
		return Result{Value: v, Tier: tier, Raw: text}
	}
	if cleaned := stripThink(text); cleaned != text {
		if v, tier := extract(cleaned); tier != TierNone {
			return Result{Value: v, Tier: tier, Raw: text}
		}
	}

	return Result{Tier: TierNone, Raw: text}
}

func extract(s string) (any, Tier) {
	for _, m := range fencePattern.FindAllStringSubmatch(s, -1) {
		if v, ok := parse(m[1]); ok {
			return v, TierFence
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end != -1 && end > start {
		if v, ok := parse(s[start : end+1]); ok {
			return v, TierBraces
		}
	}
	return nil, TierNone
}

// parse accepts only JSON objects and arrays. Bare scalars such as a quoted
// apology are not a recovered quiz.
func parse(s string) (any, bool) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// stripThink removes reasoning blocks some local models emit before answering.
func stripThink(s string) string {
	for {
		start := strings.Index(s, "<think>")
		if start == -1 {
			return s
		}
		end := strings.Index(s[start:], "</think>")
		if end == -1 {
			return s
		}
		s = s[:start] + s[start+end+len("</think>"):]
	}
}
