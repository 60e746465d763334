//go:build script

package main

import (
	"fmt"

	"gump"
)

const scriptName = "Spell Picker"
const scriptAuthor = "Examples"
const scriptAPIVersion = 1

var spells = []string{
	"Clumsy", "Create Food", "Feeblemind", "Heal", "Magic Arrow",
	"Night Sight", "Reactive Armor", "Weaken", "Agility", "Cunning",
}

// Init shows the first circle and reports the pick.
func Init() {
	b := gump.NewBuilder().AddBackground(0, 0, 220, 300, 9270)
	b.AddLabel(20, 15, 1153, "First circle")
	for i, name := range spells {
		y := int16(40 + i*24)
		b.AddButton(20, y, 4005, 4007, i+1)
		b.AddLabel(55, y, 0, name)
	}
	out, err := gump.Present("spells", b.Layout())
	switch {
	case err != nil:
		gump.Print("spell picker: " + err.Error())
	case out.Expired:
		gump.Print("spell picker timed out")
	case out.Response.Closed():
		gump.Print("no spell picked")
	default:
		pick := spells[out.Response.ButtonID-1]
		gump.Print(fmt.Sprintf("casting %s (%s button)", pick, gump.Ordinal(out.Response.ButtonID)))
		gump.Notify("Spell Picker", pick)
	}
}
