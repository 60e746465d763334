//go:build script

package main

import (
	"strconv"

	"gump"
)

const scriptName = "Picker"
const scriptAuthor = "Tests"
const scriptAPIVersion = 1

func Init() {
	b := gump.NewBuilder()
	for i := 1; i <= 3; i++ {
		b.AddButton(10, int16(i*20), 4005, 4007, i)
	}
	out, err := gump.Present("picker", b.Layout())
	if err != nil {
		gump.Print("error: " + err.Error())
		return
	}
	gump.Print("picked " + strconv.Itoa(out.Response.ButtonID))
}

func Terminate() {
	gump.Print("bye")
}
