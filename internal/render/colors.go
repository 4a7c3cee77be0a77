// Package render turns the current grouping and dataset into the two SVG
// views: the trend line chart and the latitude-strip world map.
package render

import (
	"image/color"

	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
)

// Group colors follow the Category10 palette, so group 1 is always the
// same blue wherever it appears.
var groupColors = map[domain.GroupID]color.RGBA{
	1: {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	2: {R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	3: {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
}

// unassignedColor fills strips that belong to no group.
var unassignedColor = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}

// GroupColor returns the fixed color for a group; unassigned gets gray.
func GroupColor(id domain.GroupID) color.RGBA {
	if c, ok := groupColors[id]; ok {
		return c
	}
	return unassignedColor
}

// GroupColorHex returns the color as "#rrggbb" for SVG attributes.
func GroupColorHex(id domain.GroupID) string {
	c := GroupColor(id)
	const hexdigits = "0123456789abcdef"
	out := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		out[1+2*i] = hexdigits[v>>4]
		out[2+2*i] = hexdigits[v&0xf]
	}
	return string(out)
}
