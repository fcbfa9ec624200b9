// Package pricing derives age-based markdowns for listed artworks. Everything here
// is a pure function of its arguments so tier boundaries stay testable without a
// clock or a database.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing-age thresholds, in days. Evaluated highest first.
const (
	TierOneAfterDays   = 30
	TierTwoAfterDays   = 90
	TierThreeAfterDays = 180
)

var (
	tierOneFraction   = decimal.New(1, -1) // 0.1
	tierTwoFraction   = decimal.New(2, -1) // 0.2
	tierThreeFraction = decimal.New(3, -1) // 0.3
	one               = decimal.NewFromInt(1)
)

type Quote struct {
	Price            decimal.Decimal
	DiscountedPrice  decimal.Decimal
	DiscountFraction decimal.Decimal
	HasDiscount      bool
}

// AgeDays counts whole days between listing time and now.
func AgeDays(listedAt, now time.Time) int {
	return int(now.Sub(listedAt).Hours() / 24)
}

// Fraction returns the markdown for a listing age: >180d 30%, >90d 20%, >30d 10%.
func Fraction(listedAt, now time.Time) decimal.Decimal {
	days := AgeDays(listedAt, now)
	switch {
	case days > TierThreeAfterDays:
		return tierThreeFraction
	case days > TierTwoAfterDays:
		return tierTwoFraction
	case days > TierOneAfterDays:
		return tierOneFraction
	default:
		return decimal.Zero
	}
}

// QuoteFor computes the display and snapshot price for an artwork. The result is
// rounded to two fractional digits, matching the currency columns.
func QuoteFor(price decimal.Decimal, listedAt, now time.Time) Quote {
	fraction := Fraction(listedAt, now)
	return Quote{
		Price:            price,
		DiscountedPrice:  price.Mul(one.Sub(fraction)).Round(2),
		DiscountFraction: fraction,
		HasDiscount:      fraction.IsPositive(),
	}
}
