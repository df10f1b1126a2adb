// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3, see LICENCE file for details.

package directory

import "context"

// Canceller is checked once per echo loop iteration. Once Cancelled
// returns true the session stops.
type Canceller interface {
	Cancelled() bool
}

// CancellerFunc adapts a function to the Canceller interface.
type CancellerFunc func() bool

// Cancelled implements Canceller.
func (f CancellerFunc) Cancelled() bool {
	return f()
}

// Never is a Canceller that is never cancelled.
var Never Canceller = CancellerFunc(func() bool { return false })

// ContextCanceller is cancelled once the context is done.
func ContextCanceller(ctx context.Context) Canceller {
	return CancellerFunc(func() bool {
		return ctx.Err() != nil
	})
}

// AnyCanceller is cancelled as soon as one of the cancellers is.
func AnyCanceller(cancellers ...Canceller) Canceller {
	return CancellerFunc(func() bool {
		for _, c := range cancellers {
			if c.Cancelled() {
				return true
			}
		}
		return false
	})
}
