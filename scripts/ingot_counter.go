//go:build script

package main

import (
	"sort"

	"gump"
)

const scriptName = "Ingot Counter"
const scriptAuthor = "Examples"
const scriptAPIVersion = 1

const (
	buttonSmelt = 1
	buttonReset = 2
	buttonQuit  = 3
)

// ingots maps ore hue name to count. A real script fills it from the
// backpack; this one smelts on demand.
var ingots = map[string]int{"iron": 0, "dull copper": 0, "shadow iron": 0}

func collect() any {
	m := make(map[string]int, len(ingots))
	for k, v := range ingots {
		m[k] = v
	}
	return m
}

func build(model any) (gump.Layout, error) {
	m := model.(map[string]int)
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	b := gump.NewBuilder().AddBackground(0, 0, 240, uint16(80+20*len(names)), 9270)
	for i, name := range names {
		y := int16(15 + 20*i)
		b.AddLabel(15, y, 0, name)
		b.AddLabel(150, y, 1153, gump.Comma(int64(m[name])))
	}
	y := int16(25 + 20*len(names))
	b.AddButton(15, y, 4005, 4007, buttonSmelt)
	b.AddButton(85, y, 4017, 4019, buttonReset)
	b.AddButton(155, y, 4020, 4022, buttonQuit)
	return b.Layout(), nil
}

func react(model any, r gump.Response) bool {
	switch r.ButtonID {
	case buttonSmelt:
		ingots["iron"] += 100
	case buttonReset:
		for k := range ingots {
			ingots[k] = 0
		}
	case buttonQuit, 0:
		return true
	}
	return false
}

func Init() {
	if err := gump.Live("ingots", collect, build, react); err != nil {
		gump.Print("ingot counter: " + err.Error())
	}
}
