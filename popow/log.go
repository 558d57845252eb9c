// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package popow

import "github.com/decred/slog"

// log is the package-level logger used by prover operations. It
// defaults to disabled output, following the same convention dcrd's
// subsystem packages use so a standalone build never writes to stdout
// unprompted.
var log = slog.Disabled

// UseLogger sets the package-wide logger. A host binary wires its own
// backend in (e.g. a slog.Backend writing to a rotated file) by calling
// this once during startup, the same way dcrd's blockchain.UseLogger works.
func UseLogger(logger slog.Logger) {
	log = logger
}
