package room

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/voltquest/internal/ui/layout"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Hours  key.Binding
	Check  key.Binding
	Tips   key.Binding
	Back   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Select")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Toggle: key.NewBinding(key.WithKeys("space", " "), key.WithHelp("Space", "On/Off")),
		Hours:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "Hours")),
		Check:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Check bill")),
		Tips:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Tips")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Menu")),
	}
}

// hints turns the bindings that carry help text into footer hints.
func (k keyMap) hints() []layout.KeyHint {
	var out []layout.KeyHint
	for _, b := range []key.Binding{k.Up, k.Toggle, k.Hours, k.Check, k.Tips, k.Back} {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
