package matching

import (
	"testing"

	"github.com/simwire/simwire/pkg/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateExact(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{name: "identical", pattern: "/api/bookings", candidate: "/api/bookings", want: true},
		{name: "different", pattern: "/api/bookings", candidate: "/api/flights", want: false},
		{name: "case sensitive", pattern: "GET", candidate: "get", want: false},
		{name: "empty matches empty", pattern: "", candidate: "", want: true},
		{name: "empty vs non-empty", pattern: "", candidate: "x", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(simulation.NewExactMatcher(tt.pattern), tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateGlob(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{name: "star in middle", pattern: "api*.flight.com", candidate: "api-sandbox.flight.com", want: true},
		{name: "star matches empty run", pattern: "api*.flight.com", candidate: "api.flight.com", want: true},
		{name: "anchored at start", pattern: "*.flight.com", candidate: "www.my-test.com", want: false},
		{name: "anchored at end", pattern: "/api/*", candidate: "/api/bookings/extra", want: true},
		{name: "no partial match", pattern: "flight", candidate: "api.flight.com", want: false},
		{name: "question mark single char", pattern: "v?", candidate: "v5", want: true},
		{name: "question mark needs a char", pattern: "v?", candidate: "v", want: false},
		{name: "literal self-match", pattern: "plain-value", candidate: "plain-value", want: true},
		{name: "regex metachars are literal", pattern: "a.b", candidate: "axb", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(simulation.NewGlobMatcher(tt.pattern), tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateRegex(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{name: "full string match", pattern: `.*Pacific.*`, candidate: "Pacific Air", want: true},
		{name: "implicit anchoring", pattern: `Pacific`, candidate: "Pacific Air", want: false},
		{name: "anchored success", pattern: `Pacific.*`, candidate: "Pacific Air", want: true},
		{name: "alternation", pattern: `GET|POST`, candidate: "POST", want: true},
		{name: "alternation is grouped", pattern: `GET|POST`, candidate: "GETX", want: false},
		{name: "literal self-match", pattern: `simple`, candidate: "simple", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(simulation.NewRegexMatcher(tt.pattern), tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateRegexParseError(t *testing.T) {
	got, err := Evaluate(simulation.NewRegexMatcher(`[invalid`), "anything")
	assert.False(t, got)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, simulation.MatcherRegex, parseErr.Kind)
	assert.Contains(t, parseErr.Error(), "invalid regex matcher")
}

func TestEvaluateUnknownKind(t *testing.T) {
	_, err := Evaluate(simulation.FieldMatcher{Matcher: "nonsense", Value: "x"}, "x")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestEvaluateList(t *testing.T) {
	t.Run("any member matching suffices", func(t *testing.T) {
		list := simulation.FieldMatcherList{
			simulation.NewExactMatcher("PUT"),
			simulation.NewExactMatcher("POST"),
		}
		got, err := EvaluateList(list, "POST")
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("no member matching fails", func(t *testing.T) {
		list := simulation.FieldMatcherList{
			simulation.NewExactMatcher("PUT"),
			simulation.NewExactMatcher("POST"),
		}
		got, err := EvaluateList(list, "GET")
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("explicitly empty list matches nothing", func(t *testing.T) {
		got, err := EvaluateList(simulation.FieldMatcherList{}, "")
		require.NoError(t, err)
		assert.False(t, got)

		got, err = EvaluateList(simulation.FieldMatcherList{}, "anything")
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("parse error does not mask a later match", func(t *testing.T) {
		list := simulation.FieldMatcherList{
			simulation.NewRegexMatcher(`[broken`),
			simulation.NewExactMatcher("GET"),
		}
		got, err := EvaluateList(list, "GET")
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("parse error surfaces when nothing matches", func(t *testing.T) {
		list := simulation.FieldMatcherList{
			simulation.NewRegexMatcher(`[broken`),
			simulation.NewExactMatcher("GET"),
		}
		got, err := EvaluateList(list, "POST")
		assert.False(t, got)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

func TestEvaluateListAny(t *testing.T) {
	list := simulation.FieldMatcherList{simulation.NewExactMatcher("2")}

	t.Run("matches individual value", func(t *testing.T) {
		got, err := EvaluateListAny(list, []string{"1", "2"})
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("matches joined value", func(t *testing.T) {
		joined := simulation.FieldMatcherList{simulation.NewExactMatcher("1;2")}
		got, err := EvaluateListAny(joined, []string{"1", "2"})
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("absent field evaluates against empty string", func(t *testing.T) {
		empty := simulation.FieldMatcherList{simulation.NewExactMatcher("")}
		got, err := EvaluateListAny(empty, nil)
		require.NoError(t, err)
		assert.True(t, got)
	})
}

func TestGlobToRegex(t *testing.T) {
	assert.Equal(t, `\Aapi.*\.flight\.com\z`, globToRegex("api*.flight.com"))
	assert.Equal(t, `\Av.\z`, globToRegex("v?"))
}
