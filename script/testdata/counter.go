//go:build script

package main

import "gump"

const scriptName = "Counter"
const scriptAuthor = "Tests"
const scriptAPIVersion = 1

func collect() any { return 3 }

func build(m any) (gump.Layout, error) {
	b := gump.NewBuilder().AddLabel(10, 10, 0, gump.Comma(int64(m.(int))*1000))
	b.AddButton(10, 40, 4005, 4007, 1)
	return b.Layout(), nil
}

func react(m any, r gump.Response) bool {
	return r.ButtonID == 1
}

func Init() {
	if err := gump.Live("counter", collect, build, react); err != nil {
		gump.Print("error: " + err.Error())
		return
	}
	gump.Print("done")
}
