// Package response turns what the host reports about a closed dialog into
// a Response checked against the layout that was sent.
package response

import (
	"slices"

	"gumpkit/layout"
)

// Raw is the host's report for a closed dialog.
type Raw struct {
	ButtonID  int
	SwitchIDs []int
	Texts     map[int]string
}

// Response is the outcome of one user interaction. ButtonID 0 means the
// dialog was closed without pressing a reply button.
type Response struct {
	ButtonID int
	Switches []int
	Texts    map[int]string
}

func (r Response) Closed() bool { return r.ButtonID == 0 }

// Has reports whether switch id was checked.
func (r Response) Has(id int) bool {
	_, ok := slices.BinarySearch(r.Switches, id)
	return ok
}

// Text returns the text of entry id.
func (r Response) Text(id int) (string, bool) {
	s, ok := r.Texts[id]
	return s, ok
}

// Parse builds a Response for raw against l. With a nil l (a dialog the
// server opened) raw is taken as is, minus duplicate switches.
//
// Otherwise switches are limited to checkbox and radio ids present in l,
// keeping at most one radio per group (the last one reported), and every
// text entry in l gets a value: the reported text or its initial text.
func Parse(l *layout.Layout, raw Raw) Response {
	resp := Response{ButtonID: raw.ButtonID, Texts: map[int]string{}}

	if l == nil {
		resp.Switches = append(resp.Switches, raw.SwitchIDs...)
		for id, s := range raw.Texts {
			resp.Texts[id] = s
		}
		resp.Switches = normalize(resp.Switches)
		return resp
	}

	known := l.Switches()
	radios := map[uint16]int{}
	for _, id := range raw.SwitchIDs {
		sw, ok := known[id]
		if !ok {
			continue
		}
		if sw.Radio {
			radios[sw.Group] = id
			continue
		}
		resp.Switches = append(resp.Switches, id)
	}
	for _, id := range radios {
		resp.Switches = append(resp.Switches, id)
	}
	resp.Switches = normalize(resp.Switches)

	for _, te := range l.TextEntries() {
		if s, ok := raw.Texts[te.ID]; ok {
			resp.Texts[te.ID] = s
		} else {
			resp.Texts[te.ID] = te.Initial
		}
	}
	return resp
}

// Cancel is the response recorded when a dialog went away without the
// host reporting a result: button 0 and every text entry at its initial
// value.
func Cancel(l *layout.Layout) Response {
	return Parse(l, Raw{})
}

func normalize(ids []int) []int {
	if len(ids) == 0 {
		return []int{}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}
