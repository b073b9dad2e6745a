// SPDX-License-Identifier: GPL-3.0-only

package lifecycle

import (
	"strings"
	"testing"
)

func TestQuoteRevisionCompounds(t *testing.T) {
	// free_revisions=1, revision_rate=10%, price=100.00: the first
	// rejection is free, the second charges 10.00, the third charges
	// 11.00 because it is priced off the already-increased 110.00.
	terms := RevisionTerms{
		PriceCents:      10000,
		UsedRevisions:   0,
		FreeRevisions:   1,
		RevisionRatePct: 10,
	}

	first := QuoteRevision(terms)
	if !first.Free {
		t.Fatal("first rejection should be free")
	}
	if first.ChargeCents != 0 || first.NewPriceCents != 10000 {
		t.Fatalf("free rejection: charge=%d newPrice=%d, want 0 and 10000", first.ChargeCents, first.NewPriceCents)
	}

	terms.UsedRevisions = 1
	second := QuoteRevision(terms)
	if second.Free {
		t.Fatal("second rejection should be charged")
	}
	if second.ChargeCents != 1000 {
		t.Errorf("second rejection charge = %d, want 1000", second.ChargeCents)
	}
	if second.NewPriceCents != 11000 {
		t.Errorf("second rejection new price = %d, want 11000", second.NewPriceCents)
	}

	terms.UsedRevisions = 2
	terms.PriceCents = second.NewPriceCents
	third := QuoteRevision(terms)
	if third.ChargeCents != 1100 {
		t.Errorf("third rejection charge = %d, want 1100 (10%% of 11000, not of 10000)", third.ChargeCents)
	}
	if third.NewPriceCents != 12100 {
		t.Errorf("third rejection new price = %d, want 12100", third.NewPriceCents)
	}
}

func TestQuoteRevisionZeroRate(t *testing.T) {
	quote := QuoteRevision(RevisionTerms{
		PriceCents:      5000,
		UsedRevisions:   3,
		FreeRevisions:   0,
		RevisionRatePct: 0,
	})
	if quote.Free {
		t.Error("exhausted allowance with zero rate is not a free revision")
	}
	if quote.ChargeCents != 0 {
		t.Errorf("zero rate charge = %d, want 0", quote.ChargeCents)
	}
	if quote.NewPriceCents != 5000 {
		t.Errorf("zero rate new price = %d, want unchanged 5000", quote.NewPriceCents)
	}
}

func TestQuoteRevisionAllowanceBoundary(t *testing.T) {
	terms := RevisionTerms{PriceCents: 10000, FreeRevisions: 2, RevisionRatePct: 25}

	terms.UsedRevisions = 1
	if quote := QuoteRevision(terms); !quote.Free {
		t.Error("used=1 free=2 should still be free")
	}

	terms.UsedRevisions = 2
	quote := QuoteRevision(terms)
	if quote.Free {
		t.Error("used=2 free=2 should be charged")
	}
	if quote.ChargeCents != 2500 {
		t.Errorf("charge = %d, want 2500", quote.ChargeCents)
	}
}

func TestQuoteRevisionTruncatesToWholeCents(t *testing.T) {
	quote := QuoteRevision(RevisionTerms{PriceCents: 9999, RevisionRatePct: 10})
	if quote.ChargeCents != 999 {
		t.Errorf("charge = %d, want 999 (truncating division)", quote.ChargeCents)
	}
	if quote.NewPriceCents != 10998 {
		t.Errorf("new price = %d, want 10998", quote.NewPriceCents)
	}
}

func TestValidateRevisionNotes(t *testing.T) {
	if err := ValidateRevisionNotes(""); err == nil {
		t.Error("empty notes should be rejected")
	}
	if err := ValidateRevisionNotes("a"); err != nil {
		t.Errorf("single character notes should be accepted: %v", err)
	}
	if err := ValidateRevisionNotes(strings.Repeat("x", 1000)); err != nil {
		t.Errorf("1000 character notes should be accepted: %v", err)
	}
	if err := ValidateRevisionNotes(strings.Repeat("x", 1001)); err == nil {
		t.Error("1001 character notes should be rejected")
	}
}

func TestValidateRevisionRate(t *testing.T) {
	if err := ValidateRevisionRate(100); err != nil {
		t.Errorf("100%% should be accepted: %v", err)
	}
	if err := ValidateRevisionRate(101); err == nil {
		t.Error("101% should be rejected")
	}
}
