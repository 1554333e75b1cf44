// Package treemap implements the squarified treemap layout for weighted
// filesystem trees.
//
// The package has three parts:
//
//   - [Node], the weighted tree of named, sized entries. Internal node
//     sizes are derived from their children by [Node.Aggregate].
//   - [Layout], the squarified layout engine. Given a tree and a bounding
//     rectangle it partitions space so that every cell's area is
//     proportional to its node's share of the parent, while keeping
//     aspect ratios close to square (Bruls, Huizing, van Wijk).
//   - [Index], the flattened result. It supports point-containment
//     queries for hover and cursor interaction via [Index.At].
//
// The layout engine is pure: identical inputs always produce identical
// output, and no call mutates the tree. An Index holds path keys and
// copied display fields rather than node pointers, so it never extends
// the lifetime of the tree it was computed from; discard the Index when
// the tree is replaced by a new scan.
package treemap
