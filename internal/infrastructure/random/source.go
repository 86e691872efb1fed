package random

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// Source wraps a seeded PRNG together with the distribution samplers the
// activity generators draw from. A Source is not safe for concurrent use;
// derive an independent substream per goroutine with Derive.
type Source struct {
	seed int64
	rng  *rand.Rand
}

// New returns a Source seeded with the given value. Equal seeds produce
// equal draw sequences.
func New(seed int64) *Source {
	return &Source{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Derive returns an independent Source whose seed is keyed by label, so
// parallel consumers stay reproducible regardless of scheduling order.
func (s *Source) Derive(label string) *Source {
	h := fnv.New64a()
	h.Write([]byte(label))
	return New(s.seed ^ int64(h.Sum64()))
}

// Seed returns the seed this Source was created with.
func (s *Source) Seed() int64 { return s.seed }

// Float64 returns a uniform draw in [0, 1).
func (s *Source) Float64() float64 { return s.rng.Float64() }

// Intn returns a uniform draw in [0, n).
func (s *Source) Intn(n int) int { return s.rng.Intn(n) }

// Perm returns a random permutation of [0, n).
func (s *Source) Perm(n int) []int { return s.rng.Perm(n) }

// Uniform returns a draw in [min, max).
func (s *Source) Uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// IntBetween returns a draw in [min, max], both ends inclusive.
func (s *Source) IntBetween(min, max int) int {
	return min + s.rng.Intn(max-min+1)
}

// Bernoulli reports a success draw with probability p.
func (s *Source) Bernoulli(p float64) bool {
	return s.rng.Float64() < p
}

// Normal returns a draw from N(mean, stddev).
func (s *Source) Normal(mean, stddev float64) float64 {
	return s.rng.NormFloat64()*stddev + mean
}

// LogNormal returns a draw whose logarithm is N(mu, sigma).
func (s *Source) LogNormal(mu, sigma float64) float64 {
	return math.Exp(s.Normal(mu, sigma))
}

// Poisson returns a draw from a Poisson distribution with the given mean,
// using Knuth's multiplication method. The rates used here are small
// enough that the linear-time loop is not a concern.
func (s *Source) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for p > l {
		k++
		p *= s.rng.Float64()
	}
	return k - 1
}

// Gamma returns a draw from a Gamma distribution with the given shape and
// scale, using the Marsaglia-Tsang squeeze method.
func (s *Source) Gamma(shape, scale float64) float64 {
	if shape < 1 {
		// Boost a shape+1 draw back down.
		u := s.rng.Float64()
		return s.Gamma(shape+1, scale) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := s.rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := s.rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// WeightedIndex returns an index drawn proportionally to weights. Weights
// need not sum to one. A draw from all-zero weights returns the last index.
func (s *Source) WeightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := s.rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if r < cum {
			return i
		}
	}
	return len(weights) - 1
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](s *Source, items []T) T {
	return items[s.rng.Intn(len(items))]
}

// PickWeighted returns an element of items chosen proportionally to weights.
func PickWeighted[T any](s *Source, items []T, weights []float64) T {
	return items[s.WeightedIndex(weights)]
}

// SampleIDs returns k elements of ids drawn without replacement.
func SampleIDs(s *Source, ids []string, k int) []string {
	if k > len(ids) {
		k = len(ids)
	}
	out := make([]string, 0, k)
	for _, idx := range s.rng.Perm(len(ids))[:k] {
		out = append(out, ids[idx])
	}
	return out
}
