// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cache memoizes the last NiPoPoW suffix proof emitted for the
// current chain tip. The single-slot, mutex-guarded shape follows the
// teacher's txscript.SigCache: a small guarded map (here, a single
// optional entry) checked under a read lock and replaced under a write
// lock, rather than an off-the-shelf eviction policy, since the contract
// here is "at most one live entry", not "bounded size with eviction".
package cache

import (
	"sync"

	"github.com/decred/slog"
	"github.com/ergolabs/nipopow-core/chainhash"
	"github.com/ergolabs/nipopow-core/pow"
	"github.com/ergolabs/nipopow-core/popow"
)

// log is the package-level logger, following the same disabled-by-default
// convention as popow.UseLogger.
var log = slog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger slog.Logger) {
	log = logger
}

// ProofCache is a single-slot memoization of the suffix proof generated for
// the current chain tip. It is safe for concurrent use: readers never see
// a torn entry, and at most one prover mutates the slot at a time.
//
// NOTE: this matches sync.RWMutex usage in the teacher's SigCache, but
// with one entry instead of a map, since the contract here is a single
// live fact (the proof for "the" tip), not a bounded multi-entry set.
type ProofCache struct {
	mu       sync.RWMutex
	hasEntry bool
	tipID    chainhash.Hash
	proof    *popow.Proof
}

// NewProofCache returns an empty ProofCache.
func NewProofCache() *ProofCache {
	return &ProofCache{}
}

// ProveSuffix returns the proof for the current best header, reusing the
// cached value if the tip has not moved since it was generated. It fails
// with popow.ErrEmptyChain if the history has no best header yet.
func (c *ProofCache) ProveSuffix(reader popow.HistoryReader, params popow.Params, hit pow.HitFunc) (*popow.Proof, error) {
	best, ok := reader.BestHeader()
	if !ok {
		return nil, popow.RuleError{ErrorCode: popow.ErrEmptyChain, Description: "history has no best header"}
	}
	tipID := best.ID()

	c.mu.RLock()
	if c.hasEntry && c.tipID == tipID {
		proof := c.proof
		c.mu.RUnlock()
		log.Debugf("proof cache hit for tip %s", tipID)
		return proof, nil
	}
	c.mu.RUnlock()

	proof, err := popow.ProveFromReader(reader, nil, params, hit)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.hasEntry = true
	c.tipID = tipID
	c.proof = proof
	c.mu.Unlock()

	log.Debugf("proof cache regenerated for tip %s", tipID)
	return proof, nil
}

// ProveInfix always regenerates a proof for the given header id; the cache
// is reserved for the tip case and is neither consulted nor updated here.
func (c *ProofCache) ProveInfix(reader popow.HistoryReader, headerID chainhash.Hash, params popow.Params, hit pow.HitFunc) (*popow.Proof, error) {
	return popow.ProveFromReader(reader, &headerID, params, hit)
}
