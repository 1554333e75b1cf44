package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/duviz/duviz/pkg/treemap"
)

// Labels need this much room before they are drawn.
const (
	minLabelWidth  = 48
	minLabelHeight = 14
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title        string
	labels       bool
	depthShading bool
}

// WithTitle sets the document title shown above the treemap.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithLabels draws file and directory names inside cells large enough
// to hold them.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithDepthShading darkens leaf cells by nesting depth so deep files
// read as deep.
func WithDepthShading() SVGOption { return func(r *svgRenderer) { r.depthShading = true } }

// RenderSVG writes the index as a standalone SVG document. Cells are
// painted in index order, parents under children, and every cell
// carries a <title> tooltip with its path and human-readable size.
func RenderSVG(ix *treemap.Index, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	b := ix.Bounds()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		b.X, b.Y, b.W, b.H, b.W, b.H)

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}

	for _, c := range ix.Cells() {
		renderCell(&buf, c, r.depthShading)
	}
	if r.labels {
		for _, c := range ix.Cells() {
			renderLabel(&buf, c)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCell(buf *bytes.Buffer, c treemap.Cell, depthShading bool) {
	fill := cellFill(c.Path, c.Dir, c.Depth, depthShading)
	fmt.Fprintf(buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#1a1a1f" stroke-width="0.5">`,
		c.X, c.Y, c.W, c.H, fill)
	fmt.Fprintf(buf, "<title>%s (%s)</title></rect>\n",
		escapeXML(c.Path), humanize.IBytes(uint64(c.Size)))
}

func renderLabel(buf *bytes.Buffer, c treemap.Cell) {
	if c.W < minLabelWidth || c.H < minLabelHeight {
		return
	}
	// Directory labels sit in the top padding band, leaf labels are
	// centered in the cell.
	x := c.X + 3
	y := c.Y + 11.0
	if !c.Dir {
		y = c.Y + c.H/2 + 3
	}
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="10" fill="#f0f0f0">%s</text>`+"\n",
		x, y, escapeXML(c.Name))
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
