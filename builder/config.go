// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand/v2"

	"github.com/katalvlaran/csrkit/tensor"
)

// seedStream is the PCG stream constant paired with WithSeed's seed.
const seedStream uint64 = 0x9e3779b97f4a7c15

// config aggregates every knob a constructor may read. Passed by value.
type config struct {
	rng        *rand.Rand // nil ⇒ no randomness available
	dtype      tensor.DType
	undirected bool
	loops      bool
}

// newConfig applies opts over the deterministic defaults.
func newConfig(opts []Option) config {
	cfg := config{dtype: tensor.Int64}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
