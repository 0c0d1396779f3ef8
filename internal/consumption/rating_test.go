package consumption

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRating_Tiers(t *testing.T) {
	c := newTestCalculator(t)

	tests := []struct {
		bill int64
		want Rating
	}{
		{0, VeryEfficient},
		{50_000, VeryEfficient},
		{50_001, Efficient},
		{100_000, Efficient},
		{150_000, Moderate},
		{350_000, Wasteful},
		{350_001, VeryWasteful},
		{5_000_000, VeryWasteful},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Rating(decimal.NewFromInt(tt.bill)), "bill %d", tt.bill)
	}
}

func TestRating_Monotonic(t *testing.T) {
	c := newTestCalculator(t)

	prev := c.Rating(decimal.Zero)
	for bill := int64(0); bill <= 600_000; bill += 2_500 {
		r := c.Rating(decimal.NewFromInt(bill))
		if prev.Worse(r) {
			t.Fatalf("bill %d rated %q, better than a lower bill's %q", bill, r, prev)
		}
		prev = r
	}
}

func TestRating_Worse(t *testing.T) {
	assert.True(t, VeryWasteful.Worse(Wasteful))
	assert.False(t, Efficient.Worse(Efficient))
	assert.False(t, VeryEfficient.Worse(Moderate))
}
