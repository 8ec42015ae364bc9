package matching

import (
	"errors"

	"github.com/simwire/simwire/pkg/simulation"
)

// ValidateMatcher compile-checks a single matcher's pattern without
// evaluating it, so malformed patterns surface at construction time
// instead of first use.
func ValidateMatcher(m simulation.FieldMatcher) error {
	_, err := Evaluate(m, "")
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr
	}
	return nil
}

// ValidatePattern compile-checks every matcher declared by the pattern.
func ValidatePattern(p *simulation.RequestPattern) error {
	if p == nil {
		return nil
	}
	var errs []error
	validateList := func(list simulation.FieldMatcherList) {
		for _, m := range list {
			if err := ValidateMatcher(m); err != nil {
				errs = append(errs, err)
			}
		}
	}
	validateList(p.Scheme)
	validateList(p.Method)
	validateList(p.Destination)
	validateList(p.Path)
	validateList(p.Body)
	for _, list := range p.Query {
		validateList(list)
	}
	for _, list := range p.Headers {
		validateList(list)
	}
	return errors.Join(errs...)
}

// ValidateSimulation compile-checks every pattern in the simulation.
func ValidateSimulation(sim *simulation.Simulation) error {
	if sim == nil {
		return nil
	}
	var errs []error
	for _, pair := range sim.Pairs() {
		if err := ValidatePattern(pair.Request); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
