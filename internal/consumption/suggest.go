package consumption

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// SuggestConfig tunes the suggestion heuristic.
type SuggestConfig struct {
	// PowerThresholdWatts flags appliances drawing more than this.
	PowerThresholdWatts float64
	// HoursThreshold flags appliances running longer than this per day.
	HoursThreshold float64
	// ComparisonHours is the reduced daily usage a suggestion is priced at.
	ComparisonHours float64
}

// DefaultSuggestConfig returns the standard thresholds.
func DefaultSuggestConfig() SuggestConfig {
	return SuggestConfig{
		PowerThresholdWatts: 300,
		HoursThreshold:      6,
		ComparisonHours:     2,
	}
}

// Suggestion proposes running an appliance for fewer hours.
type Suggestion struct {
	Appliance       string
	CurrentHours    float64
	SuggestedHours  float64
	SavedMonthlyKwh float64
	PotentialSaving decimal.Decimal
}

// Suggestions flags non-essential appliances that are on and exceed the power
// or duration threshold. Each saving is the bill difference between the
// actual set and the same set with that one appliance cut to
// ComparisonHours. Essential appliances are never suggested. Results are
// sorted by saving, largest first.
func (c *Calculator) Suggestions(appliances []Appliance) ([]Suggestion, error) {
	base, err := c.bill(appliances)
	if err != nil {
		return nil, err
	}

	sc := c.cfg.Suggest
	var out []Suggestion
	for i, a := range appliances {
		if a.Essential || !a.IsOn {
			continue
		}
		if a.PowerWatts <= sc.PowerThresholdWatts && a.HoursPerDay <= sc.HoursThreshold {
			continue
		}
		if a.HoursPerDay <= sc.ComparisonHours {
			continue
		}

		reduced := slices.Clone(appliances)
		reduced[i].HoursPerDay = sc.ComparisonHours
		alt, err := c.bill(reduced)
		if err != nil {
			return nil, err
		}
		saving := base.Sub(alt)
		if !saving.IsPositive() {
			continue
		}
		out = append(out, Suggestion{
			Appliance:       a.Name,
			CurrentHours:    a.HoursPerDay,
			SuggestedHours:  sc.ComparisonHours,
			SavedMonthlyKwh: c.MonthlyKwh(a.PowerWatts * (a.HoursPerDay - sc.ComparisonHours) / 1000),
			PotentialSaving: saving,
		})
	}

	slices.SortStableFunc(out, func(x, y Suggestion) int {
		if d := y.PotentialSaving.Cmp(x.PotentialSaving); d != 0 {
			return d
		}
		return strings.Compare(x.Appliance, y.Appliance)
	})
	return out, nil
}
