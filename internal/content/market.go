package content

import (
	"github.com/tatianab/scout-career/internal/models"
	"github.com/tatianab/scout-career/internal/rng"
)

// ResolveNegotiationStep decides whether a club accepts an offer for a listed
// report. Hot markets make buyers less price sensitive.
func (Default) ResolveNegotiationStep(r *rng.Stream, listing models.Listing, offer float64, market models.MarketState) NegotiationOutcome {
	if listing.AskingPrice <= 0 {
		return NegotiationOutcome{Accepted: true, Price: offer}
	}
	ratio := offer / listing.AskingPrice
	p := 0.15 + 0.5*ratio + 0.2*market.Temperature
	if market.Event != nil {
		p += market.Event.Modifier
	}
	if r.Chance(models.Clamp(p, 0, 0.95)) {
		return NegotiationOutcome{Accepted: true, Price: offer}
	}
	return NegotiationOutcome{Price: offer}
}

// FinanceTick books the entries and returns the updated finances.
func (Default) FinanceTick(f models.Finances, in LedgerInput) models.Finances {
	out := f
	out.Ledger = append([]models.LedgerEntry(nil), f.Ledger...)
	for _, e := range in.Entries {
		if e.Amount == 0 {
			continue
		}
		e.Week, e.Season = in.Week, in.Season
		out.Balance += e.Amount
		out.Ledger = append(out.Ledger, e)
	}
	return out
}
