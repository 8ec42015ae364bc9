package simulation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MatcherKind identifies the comparison strategy applied to one field.
type MatcherKind string

const (
	MatcherExact       MatcherKind = "exact"
	MatcherGlob        MatcherKind = "glob"
	MatcherRegex       MatcherKind = "regex"
	MatcherJSON        MatcherKind = "json"
	MatcherJSONPartial MatcherKind = "jsonpartial"
	MatcherJSONPath    MatcherKind = "jsonpath"
	MatcherXML         MatcherKind = "xml"
	MatcherXPath       MatcherKind = "xpath"
)

// ParseMatcherKind parses a matcher kind string case-insensitively.
func ParseMatcherKind(s string) (MatcherKind, error) {
	switch k := MatcherKind(strings.ToLower(s)); k {
	case MatcherExact, MatcherGlob, MatcherRegex, MatcherJSON,
		MatcherJSONPartial, MatcherJSONPath, MatcherXML, MatcherXPath:
		return k, nil
	default:
		return "", fmt.Errorf("unknown matcher kind %q", s)
	}
}

// UnmarshalJSON accepts matcher kinds case-insensitively.
func (k *MatcherKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMatcherKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalJSON emits the canonical lower-case form.
func (k MatcherKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(k))
}

// FieldMatcher is one matching rule for a single scalar field.
// It is immutable once constructed; equality is structural (kind + value).
type FieldMatcher struct {
	Matcher MatcherKind `json:"matcher"`
	Value   string      `json:"value"`
}

// Equal reports structural equality with another matcher.
func (m FieldMatcher) Equal(other FieldMatcher) bool {
	return m.Matcher == other.Matcher && m.Value == other.Value
}

// Convenience constructors mirroring the matcher kinds.

func NewExactMatcher(value string) FieldMatcher {
	return FieldMatcher{Matcher: MatcherExact, Value: value}
}

func NewGlobMatcher(value string) FieldMatcher {
	return FieldMatcher{Matcher: MatcherGlob, Value: value}
}

func NewRegexMatcher(value string) FieldMatcher {
	return FieldMatcher{Matcher: MatcherRegex, Value: value}
}

func NewJSONMatcher(value string) FieldMatcher {
	return FieldMatcher{Matcher: MatcherJSON, Value: value}
}

func NewJSONPartialMatcher(value string) FieldMatcher {
	return FieldMatcher{Matcher: MatcherJSONPartial, Value: value}
}

func NewJSONPathMatcher(value string) FieldMatcher {
	return FieldMatcher{Matcher: MatcherJSONPath, Value: value}
}

func NewXMLMatcher(value string) FieldMatcher {
	return FieldMatcher{Matcher: MatcherXML, Value: value}
}

func NewXPathMatcher(value string) FieldMatcher {
	return FieldMatcher{Matcher: MatcherXPath, Value: value}
}

// FieldMatcherList is an ordered sequence of matchers attached to one field.
// The field matches when ANY member matches. A nil list means the field is
// unconstrained; an explicitly present but empty list matches nothing and
// round-trips as [] rather than being dropped.
type FieldMatcherList []FieldMatcher

// Equal reports element-wise structural equality. A nil list and an empty
// list are not equal: they have different matching semantics.
func (l FieldMatcherList) Equal(other FieldMatcherList) bool {
	if (l == nil) != (other == nil) {
		return false
	}
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !l[i].Equal(other[i]) {
			return false
		}
	}
	return true
}
