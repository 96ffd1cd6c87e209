// SPDX-License-Identifier: MIT

// Package csr: functional configuration.
// This file defines:
//   - Option (construction), QueryOption (lookups), SampleOption (sampling);
//   - documented defaults (constants);
//   - WithX constructors that panic on nonsensical values (programmer error).
//
// Design goals:
//   - No global state: every call resolves its own config.
//   - No dead switches: each flag changes behavior and is covered by tests.
package csr

import "github.com/katalvlaran/csrkit/tensor"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultWorkers bounds concurrent row blocks; 0 ⇒ runtime.GOMAXPROCS(0).
	DefaultWorkers = 0

	// DefaultBlockRows is the number of rows per sampling block. Each block owns
	// one derived random stream, so results depend on this value but never on
	// the worker count.
	DefaultBlockRows = 256

	// DefaultRedundancy is the oversampling factor suggested for negative sampling.
	DefaultRedundancy = 1.3
)

const (
	panicWorkersInvalid   = "csr: WithWorkers: n must be >= 0"
	panicBlockRowsInvalid = "csr: WithBlockRows: n must be >= 1"
)

// ---------- Construction ----------

// Option configures New.
type Option func(*buildConfig)

type buildConfig struct {
	data   DataField
	sorted bool
}

// WithData attaches an explicit entry id array (same dtype/device as indptr).
func WithData(ids tensor.Array) Option {
	return func(c *buildConfig) { c.data = ExplicitData(ids) }
}

// WithSorted sets the cached sorted hint. New does not verify it; call
// IsSorted for an authoritative answer.
func WithSorted(sorted bool) Option {
	return func(c *buildConfig) { c.sorted = sorted }
}

func gatherBuild(opts []Option) buildConfig {
	var c buildConfig
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// ---------- Queries ----------

// QueryOption configures lookups (IsNonZero, GetData, ...).
type QueryOption func(*queryConfig)

type queryConfig struct {
	trustSorted bool
}

// WithTrustSorted lets lookups binary-search rows when the matrix's cached
// sorted flag is set. Without it rows are scanned linearly, which is always
// correct. Opt in only when the flag is known to be accurate (e.g. right after
// Sort).
func WithTrustSorted() QueryOption {
	return func(c *queryConfig) { c.trustSorted = true }
}

func gatherQuery(opts []QueryOption) queryConfig {
	var c queryConfig
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// ---------- Sampling ----------

// SampleOption configures the sampling engine.
type SampleOption func(*sampleConfig)

type sampleConfig struct {
	workers   int
	blockRows int
}

// WithWorkers bounds the number of concurrently processed row blocks.
// n == 0 selects runtime.GOMAXPROCS(0); n < 0 panics.
func WithWorkers(n int) SampleOption {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(c *sampleConfig) { c.workers = n }
}

// WithBlockRows sets the rows-per-block granularity; n < 1 panics.
func WithBlockRows(n int) SampleOption {
	if n < 1 {
		panic(panicBlockRowsInvalid)
	}

	return func(c *sampleConfig) { c.blockRows = n }
}

func gatherSample(opts []SampleOption) sampleConfig {
	c := sampleConfig{workers: DefaultWorkers, blockRows: DefaultBlockRows}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}
