// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package popow

import "fmt"

// ErrorKind identifies a kind of error produced by this package. It
// supports errors.Is/errors.As the same way the teacher's blockchain
// package's ErrorKind does, so callers can branch on kind without string
// matching.
type ErrorKind string

// Error satisfies the error interface.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error kinds for the NiPoPoW core. Comparator and validator results are
// deliberately not represented here — they return bool per the design.
const (
	// ErrEmptyChain indicates a proof was requested but the history has
	// no best header yet.
	ErrEmptyChain = ErrorKind("history has no best header")

	// ErrInsufficientChain indicates chain.len() < k + m.
	ErrInsufficientChain = ErrorKind("chain is shorter than k + m")

	// ErrNotAnchored indicates the first header of the input chain is
	// not the genesis header.
	ErrNotAnchored = ErrorKind("chain is not anchored at genesis")

	// ErrInvalidParams indicates k < 1 or m < 1.
	ErrInvalidParams = ErrorKind("m and k must both be at least 1")

	// ErrMalformedInterlinks indicates an interlink vector is empty where
	// at least one entry is required. The first entry is not checked.
	ErrMalformedInterlinks = ErrorKind("malformed interlink vector")

	// ErrMalformedProof indicates a length-prefixed field in a proof
	// exceeded the remaining buffer, or an inner header failed to parse.
	ErrMalformedProof = ErrorKind("malformed proof encoding")
)

// RuleError identifies an error, along with a human-readable description,
// that occurred while building or parsing a NiPoPoW value. It wraps an
// ErrorKind so errors.Is(err, ErrInsufficientChain) works on the returned
// error, mirroring blockchain.RuleError from the teacher.
type RuleError struct {
	ErrorCode   ErrorKind
	Description string
}

// Error satisfies the error interface.
func (e RuleError) Error() string {
	return e.Description
}

// Unwrap returns the underlying error kind so errors.Is/As can match it.
func (e RuleError) Unwrap() error {
	return e.ErrorCode
}

func ruleError(kind ErrorKind, desc string) error {
	return RuleError{ErrorCode: kind, Description: desc}
}

func ruleErrorf(kind ErrorKind, format string, args ...interface{}) error {
	return RuleError{ErrorCode: kind, Description: fmt.Sprintf(format, args...)}
}
