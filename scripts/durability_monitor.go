//go:build script

package main

import (
	"fmt"
	"time"

	"gump"
)

const scriptName = "Durability Monitor"
const scriptAuthor = "Examples"
const scriptAPIVersion = 1

// warnAt is the fraction of max durability that triggers a notification.
const warnAt = 0.25

type slot struct {
	Layer    string
	Cur, Max int
}

// equipment stands in for the host's layer query.
var equipment = []slot{
	{"RightHand", 50, 50},
	{"Head", 40, 80},
	{"Torso", 70, 70},
}

var (
	passes int
	warned = map[string]bool{}
)

func collect() any {
	passes++
	// Simulated wear: the weapon loses a point every ten passes.
	if passes%10 == 0 && equipment[0].Cur > 0 {
		equipment[0].Cur--
	}
	out := make([]slot, len(equipment))
	copy(out, equipment)
	for _, s := range out {
		if float64(s.Cur) < warnAt*float64(s.Max) && !warned[s.Layer] {
			warned[s.Layer] = true
			gump.Notify("Durability", s.Layer+" is about to break")
		}
	}
	return out
}

func build(model any) (gump.Layout, error) {
	slots := model.([]slot)
	b := gump.NewBuilder().Closable(false).AddBackground(0, 0, 260, uint16(60+20*len(slots)), 9270)
	for i, s := range slots {
		hue := uint16(0)
		if float64(s.Cur) < warnAt*float64(s.Max) {
			hue = 33
		}
		b.AddLabel(15, int16(15+20*i), hue, fmt.Sprintf("%-10s %d/%d", s.Layer, s.Cur, s.Max))
	}
	b.AddButton(15, int16(25+20*len(slots)), 4017, 4019, 1)
	if err := b.AddTooltip("Stop monitoring"); err != nil {
		return gump.Layout{}, err
	}
	return b.Layout(), nil
}

func react(model any, r gump.Response) bool {
	return r.ButtonID == 1
}

func Init() {
	if err := gump.Live("durability", collect, build, react); err != nil {
		gump.Print("durability monitor: " + err.Error())
	}
	gump.Print("monitored for " + gump.Duration(time.Duration(passes)*gump.Refresh()))
}
