package simulation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMatcherKindCaseInsensitive(t *testing.T) {
	tests := []struct {
		in   string
		want MatcherKind
	}{
		{"exact", MatcherExact},
		{"Exact", MatcherExact},
		{"EXACT", MatcherExact},
		{"GlOb", MatcherGlob},
		{"REGEX", MatcherRegex},
		{"JsonPartial", MatcherJSONPartial},
		{"jsonpath", MatcherJSONPath},
		{"XML", MatcherXML},
		{"XPath", MatcherXPath},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMatcherKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMatcherKindUnknown(t *testing.T) {
	_, err := ParseMatcherKind("fuzzy")
	assert.Error(t, err)
}

func TestMatcherKindJSONRoundTrip(t *testing.T) {
	var m FieldMatcher
	require.NoError(t, json.Unmarshal([]byte(`{"matcher":"ReGeX","value":".*"}`), &m))
	assert.Equal(t, MatcherRegex, m.Matcher)

	// Canonical serialized form is lower-case.
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"matcher":"regex","value":".*"}`, string(out))
}

func TestFieldMatcherEqual(t *testing.T) {
	assert.True(t, NewExactMatcher("a").Equal(NewExactMatcher("a")))
	assert.False(t, NewExactMatcher("a").Equal(NewExactMatcher("b")))
	assert.False(t, NewExactMatcher("a").Equal(NewGlobMatcher("a")))
}

func TestFieldMatcherListEqual(t *testing.T) {
	a := FieldMatcherList{NewExactMatcher("x"), NewGlobMatcher("y*")}
	b := FieldMatcherList{NewExactMatcher("x"), NewGlobMatcher("y*")}
	assert.True(t, a.Equal(b))

	// Order matters.
	c := FieldMatcherList{NewGlobMatcher("y*"), NewExactMatcher("x")}
	assert.False(t, a.Equal(c))

	// Nil and empty have different matching semantics.
	assert.False(t, FieldMatcherList(nil).Equal(FieldMatcherList{}))
	assert.True(t, FieldMatcherList(nil).Equal(nil))
	assert.True(t, FieldMatcherList{}.Equal(FieldMatcherList{}))
}
