package matching

import (
	"sort"
	"strings"

	"github.com/simwire/simwire/pkg/simulation"
)

// FieldResult records the outcome of one declared field check.
type FieldResult struct {
	// Field names the checked constraint, e.g. "method", "query.page",
	// "headers.Authorization", "requiresState.key".
	Field   string
	Matched bool
	// Err carries matcher parse failures for this field, distinguishing
	// "matcher is invalid" from an ordinary mismatch.
	Err error
}

// Outcome is the result of matching one request pattern against one live
// request. Diagnostics get a result for every declared field, not just the
// first failure.
type Outcome struct {
	Matched bool
	Fields  []FieldResult
}

// Err returns the first parse error recorded across field results, if any.
func (o Outcome) Err() error {
	for _, f := range o.Fields {
		if f.Err != nil {
			return f.Err
		}
	}
	return nil
}

// MatchRequest evaluates a request pattern against a live request and the
// session's known state. The overall match is the logical AND of all
// declared field, query, header, and state checks; a pattern with zero
// declared fields matches unconditionally.
func MatchRequest(p *simulation.RequestPattern, req simulation.Request, state map[string]string) Outcome {
	if p == nil {
		return Outcome{Matched: true}
	}

	out := Outcome{Matched: true}
	check := func(field string, list simulation.FieldMatcherList, candidate string) {
		if list == nil {
			return
		}
		ok, err := EvaluateList(list, candidate)
		out.Fields = append(out.Fields, FieldResult{Field: field, Matched: ok, Err: err})
		if !ok {
			out.Matched = false
		}
	}

	check("scheme", p.Scheme, req.Scheme)
	check("method", p.Method, req.Method)
	check("destination", p.Destination, req.Destination)
	check("path", p.Path, req.Path)
	check("body", p.Body, req.Body)

	// Query constraints are subset constraints: names the pattern does not
	// mention are ignored.
	for _, name := range sortedKeys(p.Query) {
		values := req.Query[name]
		ok, err := EvaluateListAny(p.Query[name], values)
		out.Fields = append(out.Fields, FieldResult{Field: "query." + name, Matched: ok, Err: err})
		if !ok {
			out.Matched = false
		}
	}

	// Header names are case-insensitive, regardless of how the recorded
	// request spells its keys.
	for _, name := range sortedKeys(p.Headers) {
		values := headerValues(req.Headers, name)
		ok, err := EvaluateListAny(p.Headers[name], values)
		out.Fields = append(out.Fields, FieldResult{Field: "headers." + name, Matched: ok, Err: err})
		if !ok {
			out.Matched = false
		}
	}

	// Every required state entry must be present and exactly equal. Absent
	// state is an ordinary non-match, never an error.
	for _, key := range sortedStringKeys(p.RequiresState) {
		actual, present := state[key]
		ok := present && actual == p.RequiresState[key]
		out.Fields = append(out.Fields, FieldResult{Field: "requiresState." + key, Matched: ok})
		if !ok {
			out.Matched = false
		}
	}

	return out
}

func headerValues(headers map[string][]string, name string) []string {
	var out []string
	for key, values := range headers {
		if strings.EqualFold(key, name) {
			out = append(out, values...)
		}
	}
	return out
}

func sortedKeys(m map[string]simulation.FieldMatcherList) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
