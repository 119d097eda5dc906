// Package inherit merges a definition tree over the tree it extends.
//
// A merge matches the direct children of the override against the base by
// element name, one level deep:
//
//   - a child only present in the override is appended as a whole
//   - a matching child gets the override's attributes patched in and the
//     override's children appended after its own (never merged)
//   - an override child carrying a "type" attribute first wipes the matched
//     base child: a different type invalidates everything configured for it
//
// Chains (A extends B extends C) are handled by merging repeatedly in
// dependency order; see package definition.
package inherit

import (
	"github.com/km-arc/configy/framework/tree"
)

// TypeAttr is the attribute whose presence on an override resets the base.
const TypeAttr = "type"

// Engine merges an override tree over a base tree.
type Engine interface {
	Merge(source, target *tree.Node) *tree.Node
}

// Merger is the standard Engine.
type Merger struct{}

// Merge returns a new tree: a deep copy of source with target applied.
// Neither input is modified. Only the first same-named child of the result
// is considered a match when names repeat at one level.
func (Merger) Merge(source, target *tree.Node) *tree.Node {
	result := source.Clone()

	for _, targetChild := range target.Elements() {
		resultChild := result.FirstElement(targetChild.Name)

		if resultChild == nil {
			result.AppendChild(targetChild.Clone())
			continue
		}

		if _, ok := targetChild.Attr(TypeAttr); ok {
			resultChild.Reset()
		}

		for _, a := range targetChild.Attrs {
			resultChild.SetAttr(a.Name, a.Value)
		}

		for _, c := range targetChild.Children {
			resultChild.AppendChild(c.Clone())
		}
	}

	return result
}

// Merge merges with the standard Merger.
func Merge(source, target *tree.Node) *tree.Node {
	return Merger{}.Merge(source, target)
}
