package matching

import (
	"testing"

	"github.com/simwire/simwire/pkg/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchJSON(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{
			name:      "identical documents",
			pattern:   `{"id": 1, "city": "London"}`,
			candidate: `{"id": 1, "city": "London"}`,
			want:      true,
		},
		{
			name:      "key order irrelevant",
			pattern:   `{"city": "London", "id": 1}`,
			candidate: `{"id": 1, "city": "London"}`,
			want:      true,
		},
		{
			name:      "whitespace irrelevant",
			pattern:   `{ "id" : 1 }`,
			candidate: `{"id":1}`,
			want:      true,
		},
		{
			name:      "extra candidate field fails full equality",
			pattern:   `{"id": 1}`,
			candidate: `{"id": 1, "city": "London"}`,
			want:      false,
		},
		{
			name:      "array order significant",
			pattern:   `[1, 2, 3]`,
			candidate: `[3, 2, 1]`,
			want:      false,
		},
		{
			name:      "candidate not json",
			pattern:   `{"id": 1}`,
			candidate: `not json`,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(simulation.NewJSONMatcher(tt.pattern), tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchJSONParseError(t *testing.T) {
	_, err := Evaluate(simulation.NewJSONMatcher(`{broken`), `{}`)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, simulation.MatcherJSON, parseErr.Kind)
}

func TestMatchJSONPartial(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{
			name:      "subset of fields",
			pattern:   `{"id": 1}`,
			candidate: `{"id": 1, "city": "London", "extra": true}`,
			want:      true,
		},
		{
			name:      "nested subset",
			pattern:   `{"booking": {"city": "London"}}`,
			candidate: `{"booking": {"city": "London", "date": "2017-06-29"}, "status": "ok"}`,
			want:      true,
		},
		{
			name:      "value mismatch",
			pattern:   `{"id": 2}`,
			candidate: `{"id": 1, "city": "London"}`,
			want:      false,
		},
		{
			name:      "missing key",
			pattern:   `{"airline": "Pacific"}`,
			candidate: `{"id": 1}`,
			want:      false,
		},
		{
			name:      "array element containment",
			pattern:   `{"tags": ["a"]}`,
			candidate: `{"tags": ["b", "a", "c"]}`,
			want:      true,
		},
		{
			name:      "array element absent",
			pattern:   `{"tags": ["z"]}`,
			candidate: `{"tags": ["a", "b"]}`,
			want:      false,
		},
		{
			name:      "scalar equality",
			pattern:   `42`,
			candidate: `42`,
			want:      true,
		},
		{
			name:      "candidate not json",
			pattern:   `{}`,
			candidate: `<xml/>`,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(simulation.NewJSONPartialMatcher(tt.pattern), tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchJSONPath(t *testing.T) {
	body := `{"flightId": "1", "class": "PREMIUM", "legs": [{"from": "LHR"}, {"from": "HKG"}]}`

	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{name: "existing field", pattern: `$.flightId`, candidate: body, want: true},
		{name: "nested array field", pattern: `$.legs[1].from`, candidate: body, want: true},
		{name: "filter expression", pattern: `$.legs[?(@.from == 'LHR')]`, candidate: body, want: true},
		{name: "absent field", pattern: `$.bookingId`, candidate: body, want: false},
		{name: "candidate not json", pattern: `$.flightId`, candidate: `nope`, want: false},
		{name: "null result is no match", pattern: `$.missing`, candidate: `{"missing": null}`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(simulation.NewJSONPathMatcher(tt.pattern), tt.candidate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchJSONPathParseError(t *testing.T) {
	_, err := Evaluate(simulation.NewJSONPathMatcher(`$[((`), `{}`)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, simulation.MatcherJSONPath, parseErr.Kind)
}
