package simulation

import (
	"encoding/base64"
	"fmt"
	"time"
)

// SchemaVersion is the simulation document schema emitted by this library.
const SchemaVersion = "v5"

// RequestPattern aggregates the matching criteria side of a pair.
// Every field is optional; a pattern with all fields absent matches every
// request (the wildcard pattern used by "verify any").
type RequestPattern struct {
	Path        FieldMatcherList            `json:"path,omitempty"`
	Method      FieldMatcherList            `json:"method,omitempty"`
	Destination FieldMatcherList            `json:"destination,omitempty"`
	Scheme      FieldMatcherList            `json:"scheme,omitempty"`
	Body        FieldMatcherList            `json:"body,omitempty"`
	Query       map[string]FieldMatcherList `json:"query,omitempty"`
	Headers     map[string]FieldMatcherList `json:"headers,omitempty"`

	// RequiresState constrains matching to requests arriving while the
	// session state holds every listed key with an exactly equal value.
	RequiresState map[string]string `json:"requiresState,omitempty"`
}

// IsWildcard reports whether the pattern declares no constraints at all.
func (p *RequestPattern) IsWildcard() bool {
	return p.Path == nil && p.Method == nil && p.Destination == nil &&
		p.Scheme == nil && p.Body == nil &&
		len(p.Query) == 0 && len(p.Headers) == 0 && len(p.RequiresState) == 0
}

// Equal reports structural equality with another pattern.
func (p *RequestPattern) Equal(other *RequestPattern) bool {
	if p == nil || other == nil {
		return p == other
	}
	if !p.Path.Equal(other.Path) || !p.Method.Equal(other.Method) ||
		!p.Destination.Equal(other.Destination) || !p.Scheme.Equal(other.Scheme) ||
		!p.Body.Equal(other.Body) {
		return false
	}
	if !matcherMapsEqual(p.Query, other.Query) || !matcherMapsEqual(p.Headers, other.Headers) {
		return false
	}
	return stringMapsEqual(p.RequiresState, other.RequiresState)
}

func matcherMapsEqual(a, b map[string]FieldMatcherList) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !va.Equal(vb) {
			return false
		}
	}
	return true
}

func stringMapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		if vb, ok := b[k]; !ok || va != vb {
			return false
		}
	}
	return true
}

// ResponsePattern is the templated response emitted when a pattern matches.
type ResponsePattern struct {
	Status      int                 `json:"status"`
	Body        string              `json:"body"`
	EncodedBody bool                `json:"encodedBody"`
	Headers     map[string][]string `json:"headers,omitempty"`

	// FixedDelay is an artificial response delay in milliseconds.
	FixedDelay int `json:"fixedDelay,omitempty"`
	// LogNormalDelay draws the delay from a log-normal distribution.
	LogNormalDelay *LogNormalDelay `json:"logNormalDelay,omitempty"`

	// TransitionsState sets session state entries after serving.
	TransitionsState map[string]string `json:"transitionsState,omitempty"`
	// RemovesState clears session state entries after serving.
	RemovesState []string `json:"removesState,omitempty"`
}

// BodyBytes returns the response body, decoding base64 when EncodedBody is set.
func (r *ResponsePattern) BodyBytes() ([]byte, error) {
	if !r.EncodedBody {
		return []byte(r.Body), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(r.Body)
	if err != nil {
		return nil, &SchemaError{Path: "response.body", Reason: fmt.Sprintf("invalid base64 body: %v", err)}
	}
	return decoded, nil
}

// Equal reports structural equality with another response pattern.
func (r *ResponsePattern) Equal(other *ResponsePattern) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.Status != other.Status || r.Body != other.Body || r.EncodedBody != other.EncodedBody ||
		r.FixedDelay != other.FixedDelay {
		return false
	}
	if (r.LogNormalDelay == nil) != (other.LogNormalDelay == nil) {
		return false
	}
	if r.LogNormalDelay != nil && *r.LogNormalDelay != *other.LogNormalDelay {
		return false
	}
	if len(r.Headers) != len(other.Headers) {
		return false
	}
	for k, va := range r.Headers {
		vb, ok := other.Headers[k]
		if !ok || !stringSlicesEqual(va, vb) {
			return false
		}
	}
	if !stringMapsEqual(r.TransitionsState, other.TransitionsState) {
		return false
	}
	return stringSlicesEqual(r.RemovesState, other.RemovesState)
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RequestResponsePair owns exactly one request pattern and one response
// pattern. Identity is structural equality of both halves; two pairs with
// identical halves are indistinguishable and collapse when owned by a
// Simulation.
type RequestResponsePair struct {
	Request  *RequestPattern  `json:"request"`
	Response *ResponsePattern `json:"response"`
}

// Equal reports structural equality of both halves.
func (p RequestResponsePair) Equal(other RequestResponsePair) bool {
	return p.Request.Equal(other.Request) && p.Response.Equal(other.Response)
}

// Delay is one global fixed-delay rule.
type Delay struct {
	// URLPattern is a regular expression matched against destination + path.
	URLPattern string `json:"urlPattern"`
	// HTTPMethod restricts the rule to one method; empty matches any.
	HTTPMethod string `json:"httpMethod,omitempty"`
	// DelayMs is the delay to apply, in milliseconds.
	DelayMs int `json:"delay"`
}

// LogNormalDelay parameterizes a log-normal delay distribution.
// All values are milliseconds. Min and Max clamp the sampled value;
// zero means unbounded.
type LogNormalDelay struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	Mean   int `json:"mean"`
	Median int `json:"median"`
}

// DelayLogNormal is one global log-normal delay rule.
type DelayLogNormal struct {
	URLPattern string `json:"urlPattern"`
	HTTPMethod string `json:"httpMethod,omitempty"`
	LogNormalDelay
}

// GlobalActions holds delay rules that apply when no pair-level delay exists.
// Rules are ordered; the first matching rule wins.
type GlobalActions struct {
	Delays          []Delay          `json:"delays,omitempty"`
	DelaysLogNormal []DelayLogNormal `json:"delaysLogNormal,omitempty"`
}

// IsEmpty reports whether the actions carry no delay rules at all.
// Empty global actions are omitted from serialized output.
func (g *GlobalActions) IsEmpty() bool {
	return g == nil || (len(g.Delays) == 0 && len(g.DelaysLogNormal) == 0)
}

// Equal reports structural equality, treating nil and empty as equal.
func (g *GlobalActions) Equal(other *GlobalActions) bool {
	if g.IsEmpty() && other.IsEmpty() {
		return true
	}
	if g.IsEmpty() != other.IsEmpty() {
		return false
	}
	if len(g.Delays) != len(other.Delays) || len(g.DelaysLogNormal) != len(other.DelaysLogNormal) {
		return false
	}
	for i := range g.Delays {
		if g.Delays[i] != other.Delays[i] {
			return false
		}
	}
	for i := range g.DelaysLogNormal {
		if g.DelaysLogNormal[i] != other.DelaysLogNormal[i] {
			return false
		}
	}
	return true
}

// Data is the payload half of a simulation document.
type Data struct {
	Pairs         []RequestResponsePair `json:"pairs"`
	GlobalActions *GlobalActions        `json:"globalActions,omitempty"`
}

// Meta is the document metadata half.
type Meta struct {
	SchemaVersion   string `json:"schemaVersion"`
	HoverflyVersion string `json:"hoverflyVersion,omitempty"`
	TimeExported    string `json:"timeExported,omitempty"`
}

// Simulation owns a set of request/response pairs plus global actions and
// metadata. Pairs are held in insertion order for serialization, but
// equality treats them as a set: duplicates collapse and ordering is
// irrelevant. Simulations are never mutated by the matching engine.
type Simulation struct {
	Data Data `json:"data"`
	Meta Meta `json:"meta"`
}

// NewSimulation constructs a simulation from pairs and optional global
// actions, collapsing duplicate pairs while preserving first-seen order.
func NewSimulation(pairs []RequestResponsePair, actions *GlobalActions) *Simulation {
	sim := &Simulation{
		Data: Data{
			Pairs:         dedupPairs(pairs),
			GlobalActions: actions,
		},
		Meta: Meta{
			SchemaVersion: SchemaVersion,
			TimeExported:  time.Now().UTC().Format(time.RFC3339),
		},
	}
	return sim
}

func dedupPairs(pairs []RequestResponsePair) []RequestResponsePair {
	out := make([]RequestResponsePair, 0, len(pairs))
	for _, p := range pairs {
		dup := false
		for _, seen := range out {
			if seen.Equal(p) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// Pairs returns the owned pairs in insertion order.
func (s *Simulation) Pairs() []RequestResponsePair {
	return s.Data.Pairs
}

// Equal reports whether two simulations declare the same pairs (as a set)
// and the same global actions. Metadata is compared on schema version only;
// export timestamps are incidental.
func (s *Simulation) Equal(other *Simulation) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Meta.SchemaVersion != other.Meta.SchemaVersion {
		return false
	}
	if !s.Data.GlobalActions.Equal(other.Data.GlobalActions) {
		return false
	}
	if len(s.Data.Pairs) != len(other.Data.Pairs) {
		return false
	}
	for _, p := range s.Data.Pairs {
		found := false
		for _, q := range other.Data.Pairs {
			if p.Equal(q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
