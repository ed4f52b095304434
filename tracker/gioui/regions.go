package gioui

import (
	"image/color"

	"github.com/wavetag/wavetag"
	"github.com/wavetag/wavetag/tracker"
)

type (
	// RegionPalette hands out the colors of the regions drawn on the waveform,
	// cycling through regionColors in the order the regions are added.
	RegionPalette struct {
		next int
		live int
	}

	regionHandle struct {
		palette  *RegionPalette
		color    color.NRGBA
		released bool
	}
)

func (p *RegionPalette) NewHandle(a wavetag.Annotation) tracker.Handle {
	h := &regionHandle{palette: p, color: regionColors[p.next%len(regionColors)]}
	p.next++
	p.live++
	return h
}

// Live returns the number of handles not yet released.
func (p *RegionPalette) Live() int { return p.live }

func (h *regionHandle) Release() {
	if h.released {
		return
	}
	h.released = true
	h.palette.live--
}

// regionColor returns the fill color of a region, brighter when hovered.
func regionColor(h tracker.Handle, hovered bool) color.NRGBA {
	c := regionColors[0]
	if rh, ok := h.(*regionHandle); ok {
		c = rh.color
	}
	if hovered {
		c.A = regionHoverAlpha
	}
	return c
}
