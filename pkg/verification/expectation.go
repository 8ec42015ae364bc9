package verification

import "fmt"

// Expectation is a count predicate applied to the number of journal
// entries matching a pattern.
type Expectation struct {
	describe string
	check    func(actual int) bool
}

// Satisfied reports whether the actual count meets the expectation.
func (e Expectation) Satisfied(actual int) bool {
	return e.check(actual)
}

// String describes the expectation for diagnostics, e.g. "exactly 2 requests".
func (e Expectation) String() string {
	return e.describe
}

// Times expects exactly n matching requests.
func Times(n int) Expectation {
	return Expectation{
		describe: fmt.Sprintf("exactly %d %s", n, plural(n)),
		check:    func(actual int) bool { return actual == n },
	}
}

// AtLeast expects n or more matching requests.
func AtLeast(n int) Expectation {
	return Expectation{
		describe: fmt.Sprintf("at least %d %s", n, plural(n)),
		check:    func(actual int) bool { return actual >= n },
	}
}

// AtMost expects n or fewer matching requests.
func AtMost(n int) Expectation {
	return Expectation{
		describe: fmt.Sprintf("at most %d %s", n, plural(n)),
		check:    func(actual int) bool { return actual <= n },
	}
}

// Never expects no matching requests at all. Equivalent to Times(0).
func Never() Expectation {
	return Times(0)
}

// Once expects exactly one matching request, the default expectation.
func Once() Expectation {
	return Times(1)
}

func plural(n int) string {
	if n == 1 {
		return "request"
	}
	return "requests"
}
