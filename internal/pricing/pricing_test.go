package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFraction(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		days int
		want string
	}{
		{"fresh listing", 0, "0"},
		{"exactly 30 days", 30, "0"},
		{"just past first tier", 31, "0.1"},
		{"exactly 90 days", 90, "0.1"},
		{"second tier", 91, "0.2"},
		{"exactly 180 days", 180, "0.2"},
		{"third tier", 181, "0.3"},
		{"very old", 400, "0.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listedAt := now.AddDate(0, 0, -tt.days)
			got := Fraction(listedAt, now)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestQuoteFor(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("1000 at 100 days is 800.00", func(t *testing.T) {
		price := decimal.RequireFromString("1000")
		q := QuoteFor(price, now.AddDate(0, 0, -100), now)
		assert.Equal(t, "800", q.DiscountedPrice.String())
		assert.True(t, q.HasDiscount)
		assert.True(t, q.DiscountFraction.Equal(decimal.RequireFromString("0.2")))
	})

	t.Run("no discount within 30 days", func(t *testing.T) {
		price := decimal.RequireFromString("149.99")
		q := QuoteFor(price, now.AddDate(0, 0, -29), now)
		assert.True(t, q.DiscountedPrice.Equal(price))
		assert.False(t, q.HasDiscount)
	})

	t.Run("discounted never exceeds list price", func(t *testing.T) {
		price := decimal.RequireFromString("1234.56")
		for days := 0; days <= 365; days += 7 {
			q := QuoteFor(price, now.AddDate(0, 0, -days), now)
			assert.True(t, q.DiscountedPrice.LessThanOrEqual(price), "days=%d", days)
			if days <= TierOneAfterDays {
				assert.True(t, q.DiscountedPrice.Equal(price), "days=%d", days)
			} else {
				assert.True(t, q.DiscountedPrice.LessThan(price), "days=%d", days)
			}
		}
	})

	t.Run("rounds to two digits", func(t *testing.T) {
		price := decimal.RequireFromString("99.99")
		q := QuoteFor(price, now.AddDate(0, 0, -40), now)
		assert.Equal(t, "89.99", q.DiscountedPrice.StringFixed(2))
	})
}

func TestAgeDays(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, AgeDays(now.Add(-23*time.Hour), now))
	assert.Equal(t, 1, AgeDays(now.Add(-25*time.Hour), now))
	assert.Equal(t, 100, AgeDays(now.AddDate(0, 0, -100), now))
}
