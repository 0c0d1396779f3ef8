// Package consumption turns appliance usage into energy, rupiah cost and an
// efficiency grade. Every function is pure: reports are recomputed from the
// appliance set on each call and never cached.
package consumption

import (
	"math"

	"github.com/abhisek/voltquest/internal/gameerr"
)

// MaxHoursPerDay bounds HoursPerDay.
const MaxHoursPerDay = 24

// Appliance is one electrical device in a room.
//
// Essential appliances must never be switched off by optimisation logic.
// The calculator only honours this in its own suggestions; callers that
// toggle appliances must check it themselves.
type Appliance struct {
	Name        string  `json:"name"`
	PowerWatts  float64 `json:"power_watts"`
	HoursPerDay float64 `json:"hours_per_day"`
	IsOn        bool    `json:"is_on"`
	Essential   bool    `json:"essential"`
}

// Validate checks power and hours bounds. Power must be finite and small
// enough that its daily energy is finite too.
func (a Appliance) Validate() error {
	const op = "consumption.Appliance"
	if !isFinite(a.PowerWatts) || a.PowerWatts < 0 {
		return gameerr.InvalidArgument(op, "%q power %v W must be finite and >= 0", a.Name, a.PowerWatts)
	}
	if !isFinite(a.HoursPerDay) || a.HoursPerDay < 0 || a.HoursPerDay > MaxHoursPerDay {
		return gameerr.InvalidArgument(op, "%q hours %v outside [0,%d]", a.Name, a.HoursPerDay, MaxHoursPerDay)
	}
	if !isFinite(a.DailyKwh()) {
		return gameerr.InvalidArgument(op, "%q power %v W overflows daily energy", a.Name, a.PowerWatts)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// checkKwh rejects energy that is negative or not representable as a
// decimal amount.
func checkKwh(op string, kwh float64) error {
	if !isFinite(kwh) || kwh < 0 {
		return gameerr.InvalidArgument(op, "energy %v kWh must be finite and >= 0", kwh)
	}
	return nil
}

// DailyKwh returns the appliance's daily energy if it were on.
func (a Appliance) DailyKwh() float64 {
	return a.PowerWatts * a.HoursPerDay / 1000
}

// EnergyKwh converts a power rating and a duration into kilowatt-hours:
// (watts x hours) / 1000.
func EnergyKwh(powerWatts, hours float64) (float64, error) {
	a := Appliance{PowerWatts: powerWatts, HoursPerDay: hours}
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return a.DailyKwh(), nil
}
