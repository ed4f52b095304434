package gioui

import (
	"fmt"

	"gioui.org/widget"
)

// decodedIcons is keyed by the address of the first byte of the IconVG data;
// the shiny icons are package level slices so the address is stable.
var decodedIcons = map[*byte]*widget.Icon{}

func iconWidget(data []byte) *widget.Icon {
	key := &data[0]
	ic, ok := decodedIcons[key]
	if !ok {
		var err error
		if ic, err = widget.NewIcon(data); err != nil {
			panic(fmt.Sprintf("invalid icon data: %v", err))
		}
		decodedIcons[key] = ic
	}
	return ic
}
