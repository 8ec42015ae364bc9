// Package matching evaluates request patterns against live requests.
//
// It implements the per-kind field matchers (exact, glob, regex, json,
// jsonpartial, jsonpath, xml, xpath), OR-evaluation over matcher lists,
// and the full pattern matching algorithm covering scheme, method,
// destination, path, body, query parameters, headers, and required state.
//
// A match is a plain boolean outcome with per-field results for
// diagnostics; an ordinary mismatch never surfaces as an error. Malformed
// matcher patterns (bad regex, bad JSONPath, bad XPath, unparseable
// JSON/XML pattern) surface as *ParseError so that callers can tell
// "did not match" apart from "matcher is invalid".
package matching
