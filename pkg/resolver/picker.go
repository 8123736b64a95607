package resolver

import (
	"math/rand/v2"
	"sync"

	"github.com/teslashibe/moodcam/pkg/emotions"
)

// Picker draws labels uniformly at random. It is seeded once and safe for
// concurrent use.
type Picker struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed uint64
}

// NewPicker creates a picker. A zero seed picks one at random.
func NewPicker(seed uint64) *Picker {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	return &Picker{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Label returns a uniformly random label.
func (p *Picker) Label() emotions.Label {
	p.mu.Lock()
	i := p.rng.IntN(emotions.Count)
	p.mu.Unlock()
	return emotions.Labels[i]
}

// Seed returns the seed in use.
func (p *Picker) Seed() uint64 {
	return p.seed
}
