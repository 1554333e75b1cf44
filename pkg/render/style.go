package render

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// palette holds the fill colors assigned to top-level subtrees. The
// assignment hashes the subtree path, so a directory keeps its color
// across rescans and window resizes.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
	"#9c755f", "#bab0ac", "#1f77b4", "#ff7f0e",
	"#2ca02c", "#d62728", "#9467bd", "#8c564b",
	"#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	"#aec7e8", "#ffbb78", "#98df8a", "#c5b0d5",
}

// dirFill is the neutral background painted behind directory cells.
const dirFill = "#2b2b33"

// ColorFor returns the palette color for a subtree path.
func ColorFor(path string) string {
	return palette[xxhash.Sum64String(path)%uint64(len(palette))]
}

// topSegment returns the path prefix covering the root and its first
// child, which is the unit cells are colored by. Deeper cells inherit
// their top-level subtree's color.
func topSegment(path string) string {
	first := strings.IndexByte(path, '/')
	if first < 0 {
		return path
	}
	second := strings.IndexByte(path[first+1:], '/')
	if second < 0 {
		return path
	}
	return path[:first+1+second]
}

// Shade darkens a #rrggbb color by depth, 12% per level below the
// colored top-level subtree, floored so deep cells stay visible.
func Shade(hex string, depth int) string {
	if len(hex) != 7 || hex[0] != '#' || depth <= 0 {
		return hex
	}

	factor := 1.0 - 0.12*float64(depth)
	if factor < 0.4 {
		factor = 0.4
	}

	var r, g, b int
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return hex
	}
	return fmt.Sprintf("#%02x%02x%02x",
		int(float64(r)*factor), int(float64(g)*factor), int(float64(b)*factor))
}

// cellFill picks the paint for one cell: directories get the neutral
// background, leaves get their top-level subtree's color, optionally
// shaded by depth.
func cellFill(path string, dir bool, depth int, depthShading bool) string {
	if dir {
		return dirFill
	}
	c := ColorFor(topSegment(path))
	if depthShading && depth > 2 {
		c = Shade(c, depth-2)
	}
	return c
}
