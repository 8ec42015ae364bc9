package simulation

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SchemaError reports a structurally invalid simulation document.
type SchemaError struct {
	// Path locates the fault within the document, e.g. "data.pairs[2]".
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("simulation schema: %s", e.Reason)
	}
	return fmt.Sprintf("simulation schema: %s: %s", e.Path, e.Reason)
}

// ParseSimulation deserializes a simulation document, validates its
// structure, and collapses duplicate pairs. Unknown fields at any nesting
// level are ignored; matcher kinds are accepted case-insensitively.
func ParseSimulation(data []byte) (*Simulation, error) {
	var sim Simulation
	if err := json.Unmarshal(data, &sim); err != nil {
		return nil, &SchemaError{Reason: err.Error()}
	}
	if err := sim.Validate(); err != nil {
		return nil, err
	}
	sim.Data.Pairs = dedupPairs(sim.Data.Pairs)
	return &sim, nil
}

// Validate checks the structural invariants the matching engine relies on:
// every pair carries both a request and a response.
func (s *Simulation) Validate() error {
	for i, pair := range s.Data.Pairs {
		if pair.Request == nil {
			return &SchemaError{Path: fmt.Sprintf("data.pairs[%d]", i), Reason: "pair has no request"}
		}
		if pair.Response == nil {
			return &SchemaError{Path: fmt.Sprintf("data.pairs[%d]", i), Reason: "pair has no response"}
		}
	}
	return nil
}

// MarshalJSON omits globalActions entirely when it carries no delay rules,
// rather than emitting null or an empty object.
func (d Data) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"pairs":`)
	pairs := d.Pairs
	if pairs == nil {
		pairs = []RequestResponsePair{}
	}
	encoded, err := json.Marshal(pairs)
	if err != nil {
		return nil, err
	}
	buf.Write(encoded)
	if !d.GlobalActions.IsEmpty() {
		buf.WriteString(`,"globalActions":`)
		encoded, err := json.Marshal(d.GlobalActions)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON writes pattern fields in a stable order, omitting absent
// (nil) fields while faithfully preserving explicitly empty matcher lists.
// Struct tags with omitempty cannot express that distinction: they would
// drop a present-but-empty list, which has different matching semantics
// from an absent one.
func (p RequestPattern) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeField := func(name string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", name)
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(encoded)
		return nil
	}

	lists := []struct {
		name string
		list FieldMatcherList
	}{
		{"path", p.Path},
		{"method", p.Method},
		{"destination", p.Destination},
		{"scheme", p.Scheme},
		{"body", p.Body},
	}
	for _, f := range lists {
		if f.list == nil {
			continue
		}
		if err := writeField(f.name, f.list); err != nil {
			return nil, err
		}
	}
	if p.Query != nil {
		if err := writeField("query", p.Query); err != nil {
			return nil, err
		}
	}
	if p.Headers != nil {
		if err := writeField("headers", p.Headers); err != nil {
			return nil, err
		}
	}
	if len(p.RequiresState) > 0 {
		if err := writeField("requiresState", p.RequiresState); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Render returns the pattern as indented JSON, the same structured form
// used for serialization. Verification diagnostics embed this text so that
// failures are readable without inspecting source.
func (p *RequestPattern) Render() string {
	if p == nil {
		return "{}"
	}
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Sprintf("<unrenderable pattern: %v>", err)
	}
	return string(out)
}
