package matching

import (
	"encoding/json"
	"reflect"

	"github.com/ohler55/ojg/jp"
	"github.com/simwire/simwire/pkg/simulation"
)

// matchJSON compares candidate and pattern as parsed JSON documents.
// Full structural equality: identical field sets and values, array order
// significant. An unparseable pattern is a ParseError; an unparseable
// candidate is an ordinary non-match.
func matchJSON(pattern, candidate string) (bool, error) {
	var want any
	if err := json.Unmarshal([]byte(pattern), &want); err != nil {
		return false, &ParseError{Kind: simulation.MatcherJSON, Value: pattern, Err: err}
	}
	var got any
	if err := json.Unmarshal([]byte(candidate), &got); err != nil {
		return false, nil
	}
	return reflect.DeepEqual(want, got), nil
}

// matchJSONPartial requires the pattern document to be structurally
// contained in the candidate: extra fields in the candidate are ignored.
func matchJSONPartial(pattern, candidate string) (bool, error) {
	var want any
	if err := json.Unmarshal([]byte(pattern), &want); err != nil {
		return false, &ParseError{Kind: simulation.MatcherJSONPartial, Value: pattern, Err: err}
	}
	var got any
	if err := json.Unmarshal([]byte(candidate), &got); err != nil {
		return false, nil
	}
	return containsJSON(want, got), nil
}

// containsJSON reports whether want is structurally contained in got.
// Objects: every key in want must be present in got with a contained
// value. Arrays: every element of want must be contained in at least one
// element of got. Scalars: equality with float64 number semantics.
func containsJSON(want, got any) bool {
	switch w := want.(type) {
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok {
			return false
		}
		for k, wv := range w {
			gv, present := g[k]
			if !present || !containsJSON(wv, gv) {
				return false
			}
		}
		return true
	case []any:
		g, ok := got.([]any)
		if !ok {
			return false
		}
		for _, wv := range w {
			found := false
			for _, gv := range g {
				if containsJSON(wv, gv) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(want, got)
	}
}

// matchJSONPath evaluates a JSONPath expression against the candidate
// parsed as JSON; the field matches when the expression yields at least
// one non-null result.
func matchJSONPath(pattern, candidate string) (bool, error) {
	expr, err := jp.ParseString(pattern)
	if err != nil {
		return false, &ParseError{Kind: simulation.MatcherJSONPath, Value: pattern, Err: err}
	}
	var data any
	if err := json.Unmarshal([]byte(candidate), &data); err != nil {
		return false, nil
	}
	for _, result := range expr.Get(data) {
		if result != nil {
			return true, nil
		}
	}
	return false, nil
}
