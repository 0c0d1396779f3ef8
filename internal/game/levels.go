package game

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/abhisek/voltquest/internal/consumption"
	"github.com/abhisek/voltquest/internal/fsm"
)

// State ids of the game flow.
const (
	StateMenu     fsm.StateID = "menu"
	StateLiving   fsm.StateID = "room-living"
	StateKitchen  fsm.StateID = "room-kitchen"
	StateBedroom  fsm.StateID = "room-bedroom"
	StateBathroom fsm.StateID = "room-bathroom"
	StateQuiz     fsm.StateID = "quiz"
	StateFinished fsm.StateID = "finished"
)

// Level is a room puzzle: bring the room's monthly bill down to TargetBill.
type Level struct {
	State      fsm.StateID
	Title      string
	Hint       string
	TargetBill decimal.Decimal
	Appliances []consumption.Appliance
}

func (l Level) clone() Level {
	l.Appliances = slices.Clone(l.Appliances)
	return l
}

func on(name string, watts, hours float64, essential bool) consumption.Appliance {
	return consumption.Appliance{Name: name, PowerWatts: watts, HoursPerDay: hours, IsOn: true, Essential: essential}
}

// DefaultLevels returns the four rooms in play order. Every target is
// reachable at the default tariff without touching essential appliances.
func DefaultLevels() []Level {
	return []Level{
		{
			State:      StateLiving,
			Title:      "Living Room",
			Hint:       "The air conditioner runs all evening.",
			TargetBill: decimal.NewFromInt(150_000),
			Appliances: []consumption.Appliance{
				on("Air Conditioner", 900, 8, false),
				on("Television", 100, 8, false),
				on("Standing Fan", 50, 8, false),
				on("Ceiling Lamp", 20, 6, false),
				on("Wi-Fi Router", 10, 24, true),
			},
		},
		{
			State:      StateKitchen,
			Title:      "Kitchen",
			Hint:       "Some appliances keep water or rice warm all day.",
			TargetBill: decimal.NewFromInt(300_000),
			Appliances: []consumption.Appliance{
				on("Refrigerator", 150, 24, true),
				on("Water Dispenser", 350, 24, false),
				on("Rice Cooker", 400, 10, false),
				on("Microwave", 1000, 1, false),
				on("Electric Kettle", 1500, 0.5, false),
			},
		},
		{
			State:      StateBedroom,
			Title:      "Bedroom",
			Hint:       "Nobody needs the AC at full blast all night.",
			TargetBill: decimal.NewFromInt(120_000),
			Appliances: []consumption.Appliance{
				on("Air Conditioner", 750, 10, false),
				on("Television", 80, 6, false),
				on("Laptop Charger", 65, 6, false),
				on("Desk Lamp", 15, 8, false),
				on("Phone Charger", 10, 8, false),
			},
		},
		{
			State:      StateBathroom,
			Title:      "Bathroom",
			Hint:       "Heating water is the most expensive thing in this room.",
			TargetBill: decimal.NewFromInt(100_000),
			Appliances: []consumption.Appliance{
				on("Water Heater", 2000, 2, false),
				on("Water Pump", 250, 3, true),
				on("Exhaust Fan", 30, 24, false),
				on("Hair Dryer", 1200, 0.5, false),
				on("Mirror Light", 10, 4, false),
			},
		},
	}
}
