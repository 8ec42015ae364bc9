// Package engine ties the matching core together into one session object:
// an active simulation, a journal of observed traffic, and the session
// state, with an explicit create/reset lifecycle instead of process-wide
// singletons.
package engine

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/simwire/simwire/internal/matching"
	"github.com/simwire/simwire/pkg/journal"
	"github.com/simwire/simwire/pkg/logging"
	"github.com/simwire/simwire/pkg/simulation"
	"github.com/simwire/simwire/pkg/state"
	"github.com/simwire/simwire/pkg/verification"
)

// Result reports how a live request was served.
type Result struct {
	// Matched is false when no declared pattern accepted the request.
	Matched bool
	// Pair is the winning pair; zero value when unmatched.
	Pair simulation.RequestResponsePair
	// Response is the response pattern to emit; nil when unmatched.
	Response *simulation.ResponsePattern
	// Delay is the artificial delay resolved from the pair or the
	// simulation's global actions. The caller decides whether to sleep.
	Delay time.Duration
}

// Engine is one simulation session. Simulations are replaced atomically
// and never mutated in place; the journal and state have their own reset
// lifecycle so a simulation can be reused across tests.
type Engine struct {
	mu      sync.RWMutex
	sim     *simulation.Simulation
	journal *journal.Journal
	state   *state.Store
	logger  *slog.Logger
	rng     *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithRand sets the random source used for log-normal delay sampling,
// letting tests make delays deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// New creates an engine with an empty simulation, journal, and state.
func New(opts ...Option) *Engine {
	e := &Engine{
		sim:     simulation.NewSimulation(nil, nil),
		journal: journal.New(),
		state:   state.NewStore(),
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ImportSimulation validates and activates a simulation, replacing any
// previous one. Matcher parse errors and schema faults are reported here,
// at construction time, never during matching.
func (e *Engine) ImportSimulation(sim *simulation.Simulation) error {
	if err := sim.Validate(); err != nil {
		return err
	}
	if err := matching.ValidateSimulation(sim); err != nil {
		return err
	}
	e.mu.Lock()
	e.sim = sim
	e.mu.Unlock()
	e.logger.Debug("simulation imported", "pairs", len(sim.Pairs()))
	return nil
}

// Simulation returns the active simulation.
func (e *Engine) Simulation() *simulation.Simulation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sim
}

// ProcessRequest matches a live request against the active simulation in
// declaration order, records a journal entry either way, and applies the
// winning response's state transitions. The first matching pair wins.
func (e *Engine) ProcessRequest(req simulation.Request) Result {
	e.mu.RLock()
	sim := e.sim
	e.mu.RUnlock()

	known := e.state.Snapshot()
	entry := &journal.Entry{Request: req}
	var result Result

	for _, pair := range sim.Pairs() {
		outcome := matching.MatchRequest(pair.Request, req, known)
		if !outcome.Matched {
			continue
		}
		result = Result{
			Matched:  true,
			Pair:     pair,
			Response: pair.Response,
			Delay:    sim.DelayFor(req, pair, e.rng),
		}
		entry.MatchedPattern = pair.Request
		entry.ResponseStatus = pair.Response.Status
		entry.ResponseBody = pair.Response.Body
		entry.Latency = result.Delay
		e.state.Apply(pair.Response.TransitionsState, pair.Response.RemovesState)
		break
	}

	e.journal.Record(entry)
	e.logger.Debug("request processed",
		"method", req.Method,
		"destination", req.Destination,
		"path", req.Path,
		"matched", result.Matched,
	)
	return result
}

// Journal returns the session journal.
func (e *Engine) Journal() *journal.Journal {
	return e.journal
}

// State returns the session state store.
func (e *Engine) State() *state.Store {
	return e.state
}

// ResetJournal clears the journal between tests.
func (e *Engine) ResetJournal() {
	e.journal.Reset()
}

// ResetState clears the session state between tests.
func (e *Engine) ResetState() {
	e.state.Reset()
}

// Verifier returns a verifier over the session journal scoped to the
// active simulation.
func (e *Engine) Verifier() *verification.Verifier {
	return verification.New(e.journal, e.Simulation())
}

// Verify checks a count expectation against the journal.
func (e *Engine) Verify(pattern *simulation.RequestPattern, expectation verification.Expectation) error {
	return e.Verifier().Verify(pattern, expectation)
}

// VerifyAll checks that every declared pattern was requested at least once.
func (e *Engine) VerifyAll() error {
	return e.Verifier().VerifyAll()
}

// VerifyZeroRequestsTo checks that no observed request's destination
// matches the given matchers.
func (e *Engine) VerifyZeroRequestsTo(destination simulation.FieldMatcherList) error {
	return e.Verifier().VerifyZeroRequestsTo(destination)
}
