// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// nipopowtool builds a synthetic header history, proves a NiPoPoW suffix
// over it, round-trips the proof through its wire encoding, and reports
// whether the decoded proof validates. It exists to exercise the core
// end-to-end outside of the test suite; the header type and its codec come
// from testutils, standing in for a real node's header database and wire
// codec.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/decred/slog"
	"github.com/jessevdk/go-flags"

	"github.com/ergolabs/nipopow-core/cache"
	"github.com/ergolabs/nipopow-core/popow"
	"github.com/ergolabs/nipopow-core/testutils"
	"github.com/ergolabs/nipopow-core/wire"
)

// options are nipopowtool's command-line flags, parsed with go-flags the
// same way the teacher's own config layer is built.
type options struct {
	ChainLength uint32 `short:"n" long:"length" description:"number of headers to generate after genesis" default:"200"`
	LevelEvery  uint32 `long:"level-every" description:"force a level-1 superblock every N headers" default:"16"`
	M           uint32 `short:"m" long:"security-m" description:"minimum superblocks per level" default:"15"`
	K           uint32 `short:"k" long:"security-k" description:"suffix length" default:"20"`
	Debug       bool   `long:"debug" description:"enable debug logging"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	backend := slog.NewBackend(os.Stdout)
	log := backend.Logger("TOOL")
	log.SetLevel(slog.LevelInfo)
	if opts.Debug {
		log.SetLevel(slog.LevelDebug)
	}
	popow.UseLogger(backend.Logger("POPOW"))
	cache.UseLogger(backend.Logger("CACHE"))

	g := testutils.NewChainGen()
	for i := uint32(1); i <= opts.ChainLength; i++ {
		level := 0
		if opts.LevelEvery > 0 && i%opts.LevelEvery == 0 {
			level = 1
		}
		g.Next(level)
	}
	log.Infof("generated %d headers", len(g.Chain()))

	reader := testutils.NewMockHistoryReader(g.Chain())
	params := popow.Params{M: opts.M, K: opts.K}

	proofCache := cache.NewProofCache()
	proof, err := proofCache.ProveSuffix(reader, params, g.HitFunc())
	if err != nil {
		return fmt.Errorf("proving suffix: %w", err)
	}
	log.Infof("proof covers %d prefix headers, %d suffix headers",
		len(proof.Prefix), 1+len(proof.SuffixTail))

	var buf bytes.Buffer
	if err := wire.EncodeProof(&buf, proof); err != nil {
		return fmt.Errorf("encoding proof: %w", err)
	}
	log.Infof("encoded proof is %d bytes", buf.Len())

	decoded, err := wire.DecodeProof(&buf, testutils.HeaderCodec{})
	if err != nil {
		return fmt.Errorf("decoding proof: %w", err)
	}

	if !decoded.IsValid() {
		return fmt.Errorf("decoded proof failed validation")
	}
	log.Infof("decoded proof is valid, suffix head height %d", decoded.SuffixHead.Header.Height())

	return nil
}
