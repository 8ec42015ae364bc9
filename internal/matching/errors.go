package matching

import (
	"fmt"

	"github.com/simwire/simwire/pkg/simulation"
)

// ParseError reports a malformed matcher pattern: a regex that does not
// compile, an invalid JSONPath or XPath expression, or a json/xml pattern
// that is not itself parseable. It is never downgraded to a silent
// non-match.
type ParseError struct {
	Kind  simulation.MatcherKind
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s matcher %q: %v", e.Kind, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
