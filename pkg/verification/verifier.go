// Package verification counts journal entries matching request patterns
// and raises diagnostic failures when a count expectation is not met.
//
// Verification re-evaluates patterns against the raw recorded requests,
// independent of which simulation pattern originally served them, so the
// same pattern vocabulary works for declaring traffic and asserting on it.
package verification

import (
	"errors"
	"fmt"

	"github.com/simwire/simwire/internal/matching"
	"github.com/simwire/simwire/pkg/journal"
	"github.com/simwire/simwire/pkg/simulation"
)

// Error is the assertion-style failure raised when a count expectation is
// not satisfied. Its message renders the offending pattern field by field
// in the same structured form used for serialization, so failures are
// self-explanatory.
type Error struct {
	Expected Expectation
	Actual   int
	Pattern  *simulation.RequestPattern
}

func (e *Error) Error() string {
	return fmt.Sprintf("Expected %s:\n%s\n\nBut actual number of requests is %d.",
		e.Expected, e.Pattern.Render(), e.Actual)
}

// Verifier checks count expectations against a journal, optionally scoped
// to an active simulation for VerifyAll.
type Verifier struct {
	journal *journal.Journal
	sim     *simulation.Simulation
}

// New creates a verifier over the given journal. sim may be nil when
// VerifyAll is not needed.
func New(j *journal.Journal, sim *simulation.Simulation) *Verifier {
	return &Verifier{journal: j, sim: sim}
}

// CountMatching returns the number of journal entries whose recorded
// request satisfies the pattern. Malformed matchers in the pattern surface
// as an error rather than being silently counted as non-matches.
//
// Only request fields are evaluated: requiresState constrains serving, and
// a recorded request carries no state to check against.
func (v *Verifier) CountMatching(pattern *simulation.RequestPattern) (int, error) {
	if err := matching.ValidatePattern(pattern); err != nil {
		return 0, err
	}
	checked := pattern
	if pattern != nil && len(pattern.RequiresState) > 0 {
		stateless := *pattern
		stateless.RequiresState = nil
		checked = &stateless
	}
	count := 0
	for _, entry := range v.journal.Snapshot() {
		outcome := matching.MatchRequest(checked, entry.Request, nil)
		if outcome.Matched {
			count++
		}
	}
	return count, nil
}

// Verify checks the expectation against the pattern's match count and
// returns a diagnostic *Error when unsatisfied.
func (v *Verifier) Verify(pattern *simulation.RequestPattern, expectation Expectation) error {
	actual, err := v.CountMatching(pattern)
	if err != nil {
		return err
	}
	if !expectation.Satisfied(actual) {
		return &Error{Expected: expectation, Actual: actual, Pattern: pattern}
	}
	return nil
}

// VerifyOnce checks the default expectation of exactly one matching request.
func (v *Verifier) VerifyOnce(pattern *simulation.RequestPattern) error {
	return v.Verify(pattern, Once())
}

// VerifyAll checks that every request pattern declared by the active
// simulation matched at least one journal entry. Failures are aggregated
// so each unmet pattern is reported with its full diagnostic text.
func (v *Verifier) VerifyAll() error {
	if v.sim == nil {
		return errors.New("verification: no active simulation")
	}
	var errs []error
	for _, pair := range v.sim.Pairs() {
		if err := v.Verify(pair.Request, AtLeast(1)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// VerifyZeroRequestsTo checks that no journal entry's destination matches
// the given matcher list, independent of all other request fields.
func (v *Verifier) VerifyZeroRequestsTo(destination simulation.FieldMatcherList) error {
	pattern := &simulation.RequestPattern{Destination: destination}
	return v.Verify(pattern, Never())
}
