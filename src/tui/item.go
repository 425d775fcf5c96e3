package tui

import (
	"fmt"

	"gbpcli/src/gbp"
	"gbpcli/src/render"
)

// row is implemented by the item types the delegate knows how to draw.
type row interface {
	Row(width int) string
}

// machineItem wraps a Machine for the machines list.
type machineItem struct {
	machine gbp.Machine
}

// FilterValue is the value used for fuzzy filtering.
func (i machineItem) FilterValue() string { return i.machine.Name }

func (i machineItem) Row(width int) string {
	count := fmt.Sprintf("%6d", i.machine.BuildCount)
	name := TruncateAndPad(i.machine.Name, width-len(count)-3, true)
	return fmt.Sprintf("%s  %s", name, count)
}

// buildItem wraps a Build for the builds list.
type buildItem struct {
	build gbp.Build
}

func (i buildItem) FilterValue() string { return fmt.Sprintf("%d", i.build.Number) }

func (i buildItem) Row(width int) string {
	line := render.BuildFlags(i.build) + fmt.Sprintf(" %5d", i.build.Number)
	if i.build.Info != nil {
		line += "  " + i.build.Info.Submitted.Local().Format("01/02/06 15:04:05")
	}
	return Truncate(line, width, true)
}
