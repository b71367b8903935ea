package boundary

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// PassthroughComponent is the reserved component whose body is prose the TSX
// grammar must not police.
const PassthroughComponent = "Markdown"

// scriptElement is the literal tag name whose body carries raw script.
const scriptElement = "script"

// Region is a half-open [Start, End) span of the virtual document.
type Region struct {
	Start int
	End   int
}

// Set holds the classified regions of one virtual document. Regions are a flat
// collection; nested occurrences are recorded independently.
type Set struct {
	Script            []Region
	OpaquePassthrough []Region
}

// Extract walks the virtual syntax tree and collects script and pass-through
// element spans. A nil root yields an empty set, which callers must treat as
// "no diagnostics were filtered for boundary reasons", never as an error.
func Extract(root *sitter.Node, src []byte) Set {
	if root == nil {
		return Set{}
	}
	return visit(root, src)
}

// visit folds the subtree rooted at node into a Set, merging child results.
func visit(node *sitter.Node, src []byte) Set {
	var set Set
	switch node.Type() {
	case "jsx_element", "jsx_self_closing_element":
		region := Region{Start: int(node.StartByte()), End: int(node.EndByte())}
		switch elementName(node, src) {
		case scriptElement:
			set.Script = append(set.Script, region)
		case PassthroughComponent:
			set.OpaquePassthrough = append(set.OpaquePassthrough, region)
		}
	}
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := visit(node.NamedChild(int(i)), src)
		set.Script = append(set.Script, child.Script...)
		set.OpaquePassthrough = append(set.OpaquePassthrough, child.OpaquePassthrough...)
	}
	return set
}

// elementName resolves the tag name of a JSX element node.
func elementName(node *sitter.Node, src []byte) string {
	target := node
	if node.Type() == "jsx_element" {
		target = nil
		for i := uint32(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(int(i))
			if child.Type() == "jsx_opening_element" {
				target = child
				break
			}
		}
		if target == nil {
			return ""
		}
	}
	nameNode := target.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return nameNode.Content(src)
}

// InScript reports whether offset lies strictly inside a script region.
func (s Set) InScript(offset int) bool {
	return inside(s.Script, offset)
}

// InOpaquePassthrough reports whether offset lies strictly inside a
// pass-through region.
func (s Set) InOpaquePassthrough(offset int) bool {
	return inside(s.OpaquePassthrough, offset)
}

func inside(regions []Region, offset int) bool {
	for _, region := range regions {
		if offset > region.Start && offset < region.End {
			return true
		}
	}
	return false
}
