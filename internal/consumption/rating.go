package consumption

import "github.com/shopspring/decimal"

// Rating is a qualitative efficiency tier. Higher Severity is worse.
type Rating struct {
	Label    string `json:"label"`
	Severity int    `json:"severity"`
}

// Worse reports whether r is a strictly worse tier than other.
func (r Rating) Worse(other Rating) bool {
	return r.Severity > other.Severity
}

func (r Rating) String() string { return r.Label }

var (
	VeryEfficient = Rating{Label: "very efficient", Severity: 0}
	Efficient     = Rating{Label: "efficient", Severity: 1}
	Moderate      = Rating{Label: "moderate", Severity: 2}
	Wasteful      = Rating{Label: "wasteful", Severity: 3}
	VeryWasteful  = Rating{Label: "very wasteful", Severity: 4}
)

// Tier maps every bill up to and including MaxBill to Rating.
type Tier struct {
	MaxBill decimal.Decimal
	Rating  Rating
}

// DefaultTiers grades a monthly bill in rupiah.
func DefaultTiers() []Tier {
	return []Tier{
		{MaxBill: decimal.NewFromInt(50_000), Rating: VeryEfficient},
		{MaxBill: decimal.NewFromInt(100_000), Rating: Efficient},
		{MaxBill: decimal.NewFromInt(200_000), Rating: Moderate},
		{MaxBill: decimal.NewFromInt(350_000), Rating: Wasteful},
	}
}

// rate walks the ascending tiers; bills above the last tier get overflow.
func rate(tiers []Tier, overflow Rating, bill decimal.Decimal) Rating {
	for _, t := range tiers {
		if bill.LessThanOrEqual(t.MaxBill) {
			return t.Rating
		}
	}
	return overflow
}
