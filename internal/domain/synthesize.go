package domain

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// RandSource supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// NewRandSource returns a PCG-backed source safe for concurrent use. A zero
// seed pulls one from the runtime.
func NewRandSource(seed uint64) RandSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Regime selects which bounds a synthesis run samples from.
type Regime int

const (
	// MixedPerQuantity flips an independent coin per quantity between A and B.
	MixedPerQuantity Regime = iota
	RegimeA
	RegimeB
)

func (r Regime) String() string {
	switch r {
	case MixedPerQuantity:
		return "mixed"
	case RegimeA:
		return "el_nino"
	case RegimeB:
		return "la_nina"
	default:
		return fmt.Sprintf("regime(%d)", int(r))
	}
}

// regimeFor maps a uniform draw onto the 60/20/20 regime split.
func regimeFor(r float64) Regime {
	switch {
	case r < 0.6:
		return MixedPerQuantity
	case r < 0.8:
		return RegimeA
	default:
		return RegimeB
	}
}

// Synthesizer draws feature vectors from the range table.
type Synthesizer struct {
	ranges RangeTable
	rng    RandSource
}

// NewSynthesizer creates a Synthesizer over the package range table.
func NewSynthesizer(rng RandSource) *Synthesizer {
	return &Synthesizer{ranges: featureRanges, rng: rng}
}

// Synthesize picks a regime and samples every quantity under it.
func (s *Synthesizer) Synthesize() FeatureVector {
	v, _ := s.SynthesizeWithRegime()
	return v
}

// SynthesizeWithRegime is Synthesize that also reports the regime it drew.
func (s *Synthesizer) SynthesizeWithRegime() (FeatureVector, Regime) {
	regime := regimeFor(s.rng.Float64())
	return s.SampleRegime(regime), regime
}

// SampleRegime samples every quantity under a fixed regime.
func (s *Synthesizer) SampleRegime(regime Regime) FeatureVector {
	var v FeatureVector
	for i, bounds := range s.ranges {
		v[i] = s.uniform(s.pick(regime, bounds))
	}
	return v
}

func (s *Synthesizer) pick(regime Regime, bounds RegimeBounds) Interval {
	switch regime {
	case RegimeA:
		return bounds.A
	case RegimeB:
		return bounds.B
	default:
		if s.rng.Float64() < 0.5 {
			return bounds.A
		}
		return bounds.B
	}
}

func (s *Synthesizer) uniform(iv Interval) float64 {
	return s.rng.Float64()*(iv.Max-iv.Min) + iv.Min
}
