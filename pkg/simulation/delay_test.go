package simulation

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func delayPair(resp *ResponsePattern) RequestResponsePair {
	return RequestResponsePair{Request: &RequestPattern{}, Response: resp}
}

func TestDelayForPairLevel(t *testing.T) {
	sim := NewSimulation(nil, &GlobalActions{
		Delays: []Delay{{URLPattern: ".*", DelayMs: 999}},
	})
	req := Request{Method: "GET", Destination: "svc", Path: "/x"}

	t.Run("fixed delay wins over global", func(t *testing.T) {
		d := sim.DelayFor(req, delayPair(&ResponsePattern{FixedDelay: 3000}), nil)
		assert.Equal(t, 3*time.Second, d)
	})

	t.Run("log-normal delay wins over global", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		d := sim.DelayFor(req, delayPair(&ResponsePattern{
			LogNormalDelay: &LogNormalDelay{Min: 10, Max: 50, Mean: 30, Median: 25},
		}), rng)
		assert.GreaterOrEqual(t, d, 10*time.Millisecond)
		assert.LessOrEqual(t, d, 50*time.Millisecond)
	})

	t.Run("no pair delay falls back to global", func(t *testing.T) {
		d := sim.DelayFor(req, delayPair(&ResponsePattern{Status: 200}), nil)
		assert.Equal(t, 999*time.Millisecond, d)
	})
}

func TestDelayForGlobalRules(t *testing.T) {
	sim := NewSimulation(nil, &GlobalActions{
		Delays: []Delay{
			{URLPattern: `slow\.example\.com/.*`, HTTPMethod: "POST", DelayMs: 500},
			{URLPattern: `slow\.example\.com/.*`, DelayMs: 100},
		},
	})
	pair := delayPair(&ResponsePattern{Status: 200})

	t.Run("method-specific rule matches first", func(t *testing.T) {
		req := Request{Method: "POST", Destination: "slow.example.com", Path: "/api"}
		assert.Equal(t, 500*time.Millisecond, sim.DelayFor(req, pair, nil))
	})

	t.Run("method falls through to any-method rule", func(t *testing.T) {
		req := Request{Method: "GET", Destination: "slow.example.com", Path: "/api"}
		assert.Equal(t, 100*time.Millisecond, sim.DelayFor(req, pair, nil))
	})

	t.Run("no rule applies", func(t *testing.T) {
		req := Request{Method: "GET", Destination: "fast.example.com", Path: "/api"}
		assert.Equal(t, time.Duration(0), sim.DelayFor(req, pair, nil))
	})
}

func TestLogNormalSample(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	t.Run("clamped to bounds", func(t *testing.T) {
		d := &LogNormalDelay{Min: 100, Max: 200, Mean: 150, Median: 130}
		for i := 0; i < 200; i++ {
			sample := d.Sample(rng)
			assert.GreaterOrEqual(t, sample, 100*time.Millisecond)
			assert.LessOrEqual(t, sample, 200*time.Millisecond)
		}
	})

	t.Run("degenerate when mean at or below median", func(t *testing.T) {
		d := &LogNormalDelay{Mean: 100, Median: 100}
		assert.Equal(t, 100*time.Millisecond, d.Sample(rng))
	})

	t.Run("nil delay samples zero", func(t *testing.T) {
		var d *LogNormalDelay
		assert.Equal(t, time.Duration(0), d.Sample(rng))
	})
}
