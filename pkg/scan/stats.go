package scan

import (
	"path/filepath"
	"sort"

	"github.com/duviz/duviz/pkg/treemap"
)

// TypeStat aggregates the files sharing one extension.
type TypeStat struct {
	// Ext is the extension including the dot, or "(none)" for files
	// without one.
	Ext   string `json:"ext"`
	Files int64  `json:"files"`
	Bytes int64  `json:"bytes"`
}

// FileTypes walks the tree's leaves and returns per-extension totals
// sorted by descending byte count, largest first. topN > 0 trims the
// result.
func FileTypes(root *treemap.Node, topN int) []TypeStat {
	byExt := make(map[string]*TypeStat)
	collectTypes(root, byExt)

	out := make([]TypeStat, 0, len(byExt))
	for _, s := range byExt {
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Bytes != out[j].Bytes {
			return out[i].Bytes > out[j].Bytes
		}
		return out[i].Ext < out[j].Ext
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func collectTypes(n *treemap.Node, byExt map[string]*TypeStat) {
	if n.Leaf() {
		if n.Size == 0 {
			// Zero-size leaves include registered empty directories;
			// neither belongs in the type breakdown.
			return
		}
		ext := filepath.Ext(n.Name)
		if ext == "" {
			ext = "(none)"
		}
		s := byExt[ext]
		if s == nil {
			s = &TypeStat{Ext: ext}
			byExt[ext] = s
		}
		s.Files++
		s.Bytes += n.Size
		return
	}
	for _, c := range n.Children {
		collectTypes(c, byExt)
	}
}
