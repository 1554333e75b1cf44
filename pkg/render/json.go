package render

import (
	"encoding/json"

	"github.com/dustin/go-humanize"

	"github.com/duviz/duviz/pkg/treemap"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title string
}

// WithJSONTitle records a document title in the JSON output.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

type jsonOutput struct {
	Title  string     `json:"title,omitempty"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Cells  []jsonCell `json:"cells"`
}

type jsonCell struct {
	Path      string  `json:"path"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Size      int64   `json:"size"`
	SizeHuman string  `json:"size_human"`
	Dir       bool    `json:"dir,omitempty"`
	Depth     int     `json:"depth"`
	Parent    int     `json:"parent"`
	Color     string  `json:"color,omitempty"`
}

// RenderJSON exports the index as a pretty-printed JSON document. Cells
// appear in index order with their parent indices, so external tools
// can rebuild the hierarchy without re-walking a tree.
//
// RenderJSON returns an error only if marshaling fails. It does not
// modify the index and is safe to call concurrently.
func RenderJSON(ix *treemap.Index, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	b := ix.Bounds()
	out := jsonOutput{
		Title:  r.title,
		Width:  b.W,
		Height: b.H,
		Cells:  buildJSONCells(ix),
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONCells(ix *treemap.Index) []jsonCell {
	cells := make([]jsonCell, 0, ix.Len())
	for _, c := range ix.Cells() {
		jc := jsonCell{
			Path:      c.Path,
			Name:      c.Name,
			X:         c.X,
			Y:         c.Y,
			Width:     c.W,
			Height:    c.H,
			Size:      c.Size,
			SizeHuman: humanize.IBytes(uint64(c.Size)),
			Dir:       c.Dir,
			Depth:     c.Depth,
			Parent:    c.Parent,
		}
		if !c.Dir {
			jc.Color = ColorFor(topSegment(c.Path))
		}
		cells = append(cells, jc)
	}
	return cells
}
