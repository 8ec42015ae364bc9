// Package simulation defines the data model for declared HTTP traffic:
// field matchers, request/response patterns, global delay actions, and the
// versioned document that carries them.
//
// A Simulation is the persisted unit exchanged with the proxy runtime. It is
// immutable after construction and safe to share across goroutines; the
// journal of observed traffic lives separately in pkg/journal.
//
// The JSON wire format is schema v5:
//
//	{
//	  "data": {
//	    "pairs": [ { "request": {...}, "response": {...} }, ... ],
//	    "globalActions": { "delays": [ ... ] }
//	  },
//	  "meta": { "schemaVersion": "v5", ... }
//	}
//
// Deserialization ignores unknown fields at any nesting level and accepts
// matcher kinds case-insensitively. Serialization always emits lower-case
// matcher kinds and omits globalActions entirely when it carries no delays.
package simulation
