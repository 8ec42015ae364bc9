package simulation

import (
	"math"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// Sample draws one delay from the distribution, clamped to [Min, Max].
// A nil or zero random source falls back to the package-level generator.
// When mean <= median the distribution degenerates to the median.
func (d *LogNormalDelay) Sample(rng *rand.Rand) time.Duration {
	if d == nil {
		return 0
	}
	median := float64(d.Median)
	mean := float64(d.Mean)
	if median <= 0 {
		return clampMs(0, d.Min, d.Max)
	}
	if mean <= median {
		return clampMs(d.Median, d.Min, d.Max)
	}

	mu := math.Log(median)
	sigma := math.Sqrt(2 * math.Log(mean/median))

	var norm float64
	if rng != nil {
		norm = rng.NormFloat64()
	} else {
		norm = rand.NormFloat64()
	}
	sampled := math.Exp(mu + sigma*norm)
	return clampMs(int(sampled), d.Min, d.Max)
}

func clampMs(v, min, max int) time.Duration {
	if min > 0 && v < min {
		v = min
	}
	if max > 0 && v > max {
		v = max
	}
	return time.Duration(v) * time.Millisecond
}

// DelayFor resolves the artificial delay to apply when the given pair
// serves the given request. A pair-level delay always wins; otherwise the
// first global rule whose urlPattern matches destination+path (and whose
// method matches, empty meaning any) applies.
func (s *Simulation) DelayFor(req Request, pair RequestResponsePair, rng *rand.Rand) time.Duration {
	if resp := pair.Response; resp != nil {
		if resp.FixedDelay > 0 {
			return time.Duration(resp.FixedDelay) * time.Millisecond
		}
		if resp.LogNormalDelay != nil {
			return resp.LogNormalDelay.Sample(rng)
		}
	}
	if s == nil || s.Data.GlobalActions.IsEmpty() {
		return 0
	}
	target := req.Destination + req.Path
	for _, rule := range s.Data.GlobalActions.Delays {
		if globalRuleApplies(rule.URLPattern, rule.HTTPMethod, target, req.Method) {
			return time.Duration(rule.DelayMs) * time.Millisecond
		}
	}
	for _, rule := range s.Data.GlobalActions.DelaysLogNormal {
		if globalRuleApplies(rule.URLPattern, rule.HTTPMethod, target, req.Method) {
			return rule.LogNormalDelay.Sample(rng)
		}
	}
	return 0
}

func globalRuleApplies(urlPattern, method, target, reqMethod string) bool {
	if method != "" && !strings.EqualFold(method, reqMethod) {
		return false
	}
	if urlPattern == "" {
		return true
	}
	matched, err := regexp.MatchString(urlPattern, target)
	return err == nil && matched
}
