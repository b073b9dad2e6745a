// SPDX-License-Identifier: GPL-3.0-only

package lifecycle

import (
	"errors"
	"fmt"
)

// RevisionTerms is the pricing state of a milestone at rejection time.
type RevisionTerms struct {
	PriceCents      int64
	UsedRevisions   uint
	FreeRevisions   uint
	RevisionRatePct uint
}

// RevisionQuote is the outcome of pricing one rejection.
type RevisionQuote struct {
	Free          bool
	ChargeCents   int64
	NewPriceCents int64
}

// QuoteRevision prices a single rejection. Revisions are free while the
// per-milestone allowance lasts; after that each rejection charges
// RevisionRatePct of the milestone's current price, truncated to whole
// cents. The surcharge compounds: later revisions are priced off the
// already-increased amount, not the original.
func QuoteRevision(t RevisionTerms) RevisionQuote {
	if t.UsedRevisions < t.FreeRevisions {
		return RevisionQuote{Free: true, NewPriceCents: t.PriceCents}
	}
	if t.RevisionRatePct == 0 {
		return RevisionQuote{NewPriceCents: t.PriceCents}
	}
	charge := t.PriceCents * int64(t.RevisionRatePct) / 100
	return RevisionQuote{
		ChargeCents:   charge,
		NewPriceCents: t.PriceCents + charge,
	}
}

const (
	RevisionNotesMinLen = 1
	RevisionNotesMaxLen = 1000
)

// ValidateRevisionNotes enforces the 1-1000 character bound on the notes a
// client must attach to a rejection.
func ValidateRevisionNotes(notes string) error {
	n := len([]rune(notes))
	if n < RevisionNotesMinLen {
		return errors.New("revision notes are required")
	}
	if n > RevisionNotesMaxLen {
		return fmt.Errorf("revision notes must be at most %d characters, got %d", RevisionNotesMaxLen, n)
	}
	return nil
}

// ValidateRevisionRate rejects surcharge rates above 100 percent.
func ValidateRevisionRate(ratePct uint) error {
	if ratePct > 100 {
		return fmt.Errorf("revision rate must be between 0 and 100 percent, got %d", ratePct)
	}
	return nil
}
