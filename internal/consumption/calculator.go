package consumption

import (
	"github.com/shopspring/decimal"

	"github.com/abhisek/voltquest/internal/gameerr"
)

// DefaultTariffPerKwh is the household tariff in rupiah per kWh.
var DefaultTariffPerKwh = decimal.RequireFromString("1467.28")

// DefaultDaysPerMonth is the monthly projection factor.
const DefaultDaysPerMonth = 30

// Config holds the calculator's injected constants.
type Config struct {
	// TariffPerKwh is the price of one kWh in rupiah.
	TariffPerKwh decimal.Decimal

	// DaysPerMonth multiplies daily energy into a monthly projection.
	DaysPerMonth int

	// Tiers must be strictly ascending by MaxBill with non-decreasing severity.
	Tiers []Tier

	// Overflow is the rating for bills above the last tier.
	Overflow Rating

	Suggest SuggestConfig
}

// DefaultConfig returns the standard tariff, tiers and suggestion thresholds.
func DefaultConfig() Config {
	return Config{
		TariffPerKwh: DefaultTariffPerKwh,
		DaysPerMonth: DefaultDaysPerMonth,
		Tiers:        DefaultTiers(),
		Overflow:     VeryWasteful,
		Suggest:      DefaultSuggestConfig(),
	}
}

// Calculator performs the energy and billing arithmetic.
type Calculator struct {
	cfg Config
}

// NewCalculator validates cfg and returns a Calculator.
func NewCalculator(cfg Config) (*Calculator, error) {
	const op = "consumption.NewCalculator"

	if !cfg.TariffPerKwh.IsPositive() {
		return nil, gameerr.InvalidArgument(op, "tariff %s must be positive", cfg.TariffPerKwh)
	}
	if cfg.DaysPerMonth <= 0 {
		return nil, gameerr.InvalidArgument(op, "days per month %d must be positive", cfg.DaysPerMonth)
	}
	for i := 1; i < len(cfg.Tiers); i++ {
		prev, cur := cfg.Tiers[i-1], cfg.Tiers[i]
		if !cur.MaxBill.GreaterThan(prev.MaxBill) {
			return nil, gameerr.InvalidArgument(op, "tier %d threshold %s not above %s", i, cur.MaxBill, prev.MaxBill)
		}
		if cur.Rating.Severity < prev.Rating.Severity {
			return nil, gameerr.InvalidArgument(op, "tier %d rating %q is better than a cheaper tier", i, cur.Rating.Label)
		}
	}
	if n := len(cfg.Tiers); n > 0 && cfg.Overflow.Severity < cfg.Tiers[n-1].Rating.Severity {
		return nil, gameerr.InvalidArgument(op, "overflow rating %q is better than the last tier", cfg.Overflow.Label)
	}
	if cfg.Suggest.ComparisonHours < 0 || cfg.Suggest.ComparisonHours > MaxHoursPerDay {
		return nil, gameerr.InvalidArgument(op, "comparison hours %v outside [0,%d]", cfg.Suggest.ComparisonHours, MaxHoursPerDay)
	}
	return &Calculator{cfg: cfg}, nil
}

// Tariff returns the configured price per kWh.
func (c *Calculator) Tariff() decimal.Decimal { return c.cfg.TariffPerKwh }

// MonthlyKwh projects daily energy over a month.
func (c *Calculator) MonthlyKwh(dailyKwh float64) float64 {
	return dailyKwh * float64(c.cfg.DaysPerMonth)
}

// MonthlyBill prices monthly energy at the tariff, rounded to whole rupiah.
func (c *Calculator) MonthlyBill(monthlyKwh float64) (decimal.Decimal, error) {
	if err := checkKwh("consumption.MonthlyBill", monthlyKwh); err != nil {
		return decimal.Zero, err
	}
	return c.price(monthlyKwh), nil
}

// price needs finite kwh; decimal.NewFromFloat panics on NaN and Inf.
func (c *Calculator) price(kwh float64) decimal.Decimal {
	return decimal.NewFromFloat(kwh).Mul(c.cfg.TariffPerKwh).Round(0)
}

// Rating grades a monthly bill. Ratings are monotonic: a higher bill never
// gets a better tier.
func (c *Calculator) Rating(monthlyBill decimal.Decimal) Rating {
	return rate(c.cfg.Tiers, c.cfg.Overflow, monthlyBill)
}

// Usage is one appliance's line in a report. Off appliances keep their
// would-be figures for display but contribute nothing to the totals.
type Usage struct {
	Name        string
	IsOn        bool
	Essential   bool
	DailyKwh    float64
	MonthlyKwh  float64
	MonthlyCost decimal.Decimal
	// Share is this appliance's fraction of the total monthly energy (0 when off).
	Share float64
}

// Totals is the result of summing a set of appliances.
type Totals struct {
	DailyKwh   float64
	MonthlyKwh float64
	Breakdown  []Usage
}

// TotalConsumption sums energy over appliances that are on. Every appliance
// is validated, including those that are off.
func (c *Calculator) TotalConsumption(appliances []Appliance) (*Totals, error) {
	const op = "consumption.TotalConsumption"
	t := &Totals{Breakdown: make([]Usage, 0, len(appliances))}
	for _, a := range appliances {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		daily := a.DailyKwh()
		monthly := c.MonthlyKwh(daily)
		if err := checkKwh(op, monthly); err != nil {
			return nil, err
		}
		t.Breakdown = append(t.Breakdown, Usage{
			Name:        a.Name,
			IsOn:        a.IsOn,
			Essential:   a.Essential,
			DailyKwh:    daily,
			MonthlyKwh:  monthly,
			MonthlyCost: c.price(monthly),
		})
		if a.IsOn {
			t.DailyKwh += daily
		}
	}
	t.MonthlyKwh = c.MonthlyKwh(t.DailyKwh)
	if err := checkKwh(op, t.MonthlyKwh); err != nil {
		return nil, err
	}
	if t.MonthlyKwh > 0 {
		for i := range t.Breakdown {
			if t.Breakdown[i].IsOn {
				t.Breakdown[i].Share = t.Breakdown[i].MonthlyKwh / t.MonthlyKwh
			}
		}
	}
	return t, nil
}

// Report is the full derived view of an appliance set against a target bill.
type Report struct {
	TotalDailyKwh    float64
	TotalMonthlyKwh  float64
	TotalMonthlyBill decimal.Decimal
	TargetBill       decimal.Decimal
	Breakdown        []Usage
	Rating           Rating
	WithinTarget     bool
}

// Report computes totals, bill, rating and the target check in one pass.
// WithinTarget is true when the bill does not exceed targetBill.
func (c *Calculator) Report(appliances []Appliance, targetBill decimal.Decimal) (*Report, error) {
	if targetBill.IsNegative() {
		return nil, gameerr.InvalidArgument("consumption.Report", "target bill %s must be >= 0", targetBill)
	}
	t, err := c.TotalConsumption(appliances)
	if err != nil {
		return nil, err
	}
	bill := c.price(t.MonthlyKwh)
	return &Report{
		TotalDailyKwh:    t.DailyKwh,
		TotalMonthlyKwh:  t.MonthlyKwh,
		TotalMonthlyBill: bill,
		TargetBill:       targetBill,
		Breakdown:        t.Breakdown,
		Rating:           c.Rating(bill),
		WithinTarget:     bill.LessThanOrEqual(targetBill),
	}, nil
}

// bill is the monthly bill for appliances, used by the suggestion heuristic.
func (c *Calculator) bill(appliances []Appliance) (decimal.Decimal, error) {
	t, err := c.TotalConsumption(appliances)
	if err != nil {
		return decimal.Zero, err
	}
	return c.price(t.MonthlyKwh), nil
}
