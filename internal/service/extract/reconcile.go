package extract

import (
	"errors"
	"strings"

	"github.com/mekedron/swiggy-audit/internal/domain"
)

// ErrNoOffersScraped reports an empty scraped collection. It is distinct
// from a comparison that simply found no mismatches.
var ErrNoOffersScraped = errors.New("no offers scraped")

// Reconcile returns the scraped offers whose (title, code) pair, after
// trimming surrounding whitespace, matches no offer in the reference
// collection. Comparison is otherwise case-sensitive and scraped order is
// preserved.
func Reconcile(reference, scraped []domain.Offer) ([]domain.Offer, error) {
	if len(scraped) == 0 {
		return nil, ErrNoOffersScraped
	}

	mismatches := []domain.Offer{}
	for _, offer := range scraped {
		title := strings.TrimSpace(offer.Title)
		code := strings.TrimSpace(offer.Code)
		matched := false
		for _, ref := range reference {
			if strings.TrimSpace(ref.Title) == title && strings.TrimSpace(ref.Code) == code {
				matched = true
				break
			}
		}
		if !matched {
			mismatches = append(mismatches, offer)
		}
	}
	return mismatches, nil
}
