package matching

import (
	"errors"
	"regexp"
	"strings"

	"github.com/simwire/simwire/pkg/simulation"
)

// Evaluate reports whether candidate satisfies a single field matcher.
// An ordinary mismatch is (false, nil); a malformed pattern is a
// *ParseError.
func Evaluate(m simulation.FieldMatcher, candidate string) (bool, error) {
	switch m.Matcher {
	case simulation.MatcherExact:
		return candidate == m.Value, nil
	case simulation.MatcherGlob:
		return matchGlob(m.Value, candidate)
	case simulation.MatcherRegex:
		return matchRegex(m.Value, candidate)
	case simulation.MatcherJSON:
		return matchJSON(m.Value, candidate)
	case simulation.MatcherJSONPartial:
		return matchJSONPartial(m.Value, candidate)
	case simulation.MatcherJSONPath:
		return matchJSONPath(m.Value, candidate)
	case simulation.MatcherXML:
		return matchXML(m.Value, candidate)
	case simulation.MatcherXPath:
		return matchXPath(m.Value, candidate)
	default:
		return false, &ParseError{Kind: m.Matcher, Value: m.Value, Err: errors.New("unknown matcher kind")}
	}
}

// EvaluateList applies OR semantics over a matcher list: the field matches
// when any member matches. An explicitly present but empty list matches
// nothing; callers treat a nil list as an unconstrained field and must not
// call this at all. Parse errors from individual matchers are joined and
// returned alongside the boolean so diagnostics can surface them.
func EvaluateList(list simulation.FieldMatcherList, candidate string) (bool, error) {
	var errs []error
	for _, m := range list {
		ok, err := Evaluate(m, candidate)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			return true, nil
		}
	}
	return false, errors.Join(errs...)
}

// EvaluateListAny reports whether the list matches any of the candidate
// values, used for multi-valued fields such as query parameters and
// headers. The joined representation is tried first so matchers written
// against the combined value keep working.
func EvaluateListAny(list simulation.FieldMatcherList, values []string) (bool, error) {
	candidates := values
	if len(values) > 1 {
		candidates = append([]string{strings.Join(values, ";")}, values...)
	}
	if len(candidates) == 0 {
		candidates = []string{""}
	}
	var errs []error
	for _, c := range candidates {
		ok, err := EvaluateList(list, c)
		if err != nil {
			errs = append(errs, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, errors.Join(errs...)
}

// matchGlob anchors the glob to the full candidate by translating it to an
// anchored regular expression: * matches any run of characters, ? matches
// exactly one.
func matchGlob(pattern, candidate string) (bool, error) {
	re, err := regexp.Compile(globToRegex(pattern))
	if err != nil {
		return false, &ParseError{Kind: simulation.MatcherGlob, Value: pattern, Err: err}
	}
	return re.MatchString(candidate), nil
}

func globToRegex(glob string) string {
	var sb strings.Builder
	sb.WriteString(`\A`)
	for _, r := range glob {
		switch r {
		case '*':
			sb.WriteString(`.*`)
		case '?':
			sb.WriteString(`.`)
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString(`\z`)
	return sb.String()
}

// matchRegex requires the expression to match the entire candidate, not
// merely contain a match.
func matchRegex(pattern, candidate string) (bool, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return false, &ParseError{Kind: simulation.MatcherRegex, Value: pattern, Err: err}
	}
	return re.MatchString(candidate), nil
}
