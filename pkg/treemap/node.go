package treemap

import (
	"sort"
	"strings"

	"github.com/duviz/duviz/pkg/errors"
)

// Node is one entry in the weighted tree: a file or directory with a
// display name, an identifying path, and a size in bytes.
//
// Children are exclusively owned by their parent; the tree carries no
// back-references and no sharing. Leaves hold their measured size,
// internal nodes hold the sum computed by [Node.Aggregate].
type Node struct {
	Name     string
	Path     string
	Size     int64
	Children []*Node
}

// NewNode constructs a node with no children.
func NewNode(name, path string, size int64) *Node {
	return &Node{Name: name, Path: path, Size: size}
}

// Leaf reports whether the node has no children.
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}

// InsertRelative inserts a leaf at the slash-separated relative path,
// creating intermediate directory nodes as needed. Empty and "."
// segments are skipped. Inserting an existing path updates its size.
func (n *Node) InsertRelative(relPath string, size int64) {
	segments := strings.Split(relPath, "/")
	cur := n
	last := -1
	for i, seg := range segments {
		if seg != "" && seg != "." {
			last = i
		}
	}
	if last < 0 {
		return
	}

	for i, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}

		var child *Node
		for _, c := range cur.Children {
			if c.Name == seg {
				child = c
				break
			}
		}
		if child == nil {
			childPath := cur.Path
			if childPath == "" {
				childPath = seg
			} else {
				childPath = strings.TrimSuffix(childPath, "/") + "/" + seg
			}
			child = NewNode(seg, childPath, 0)
			cur.Children = append(cur.Children, child)
		}

		if i == last {
			child.Size = size
			return
		}
		cur = child
	}
}

// Aggregate computes every internal node's size bottom-up as the sum of
// its children's sizes and returns the root total. Leaf sizes are kept
// as measured. It fails with INVALID_INPUT if any leaf size is negative;
// the tree is assumed finite and acyclic (the data source guarantees
// this).
func (n *Node) Aggregate() (int64, error) {
	if len(n.Children) == 0 {
		if n.Size < 0 {
			return 0, errors.New(errors.ErrCodeInvalidInput, "negative size %d for %q", n.Size, n.Path)
		}
		return n.Size, nil
	}

	var total int64
	for _, c := range n.Children {
		sum, err := c.Aggregate()
		if err != nil {
			return 0, err
		}
		total += sum
	}
	n.Size = total
	return total, nil
}

// SortBySize recursively sorts children by descending size. The sort is
// stable: equal sizes keep their insertion order, so layout output is
// reproducible across runs with identical input.
func (n *Node) SortBySize() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].Size > n.Children[j].Size
	})
	for _, c := range n.Children {
		c.SortBySize()
	}
}

// Find returns the descendant whose path equals path, or nil.
// The receiver itself is considered.
func (n *Node) Find(path string) *Node {
	if n.Path == path {
		return n
	}
	for _, c := range n.Children {
		if path == c.Path || strings.HasPrefix(path, c.Path+"/") {
			return c.Find(path)
		}
	}
	return nil
}
