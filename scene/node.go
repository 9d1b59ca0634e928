// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides a minimal 3D scenegraph for driving GPU resource
// lifetime tracking: a [Node] tree of transform [Group]s and renderable
// [Solid]s, and the three disposable resource kinds that solids own
// ([Geometry], [Material], [Texture]).
package scene

import "strings"

// Continue and Break are return values for tree walking functions,
// making the semantics of the bool return value clear at call sites.
const (
	Continue = true
	Break    = false
)

// Node is the interface that all scenegraph nodes satisfy. The core tree
// functionality is implemented on [NodeBase], which all node types embed.
type Node interface {

	// AsNodeBase returns the [NodeBase] of this Node,
	// which provides the core tree functionality.
	AsNodeBase() *NodeBase

	// AsSolid returns the [Solid] for this node if it is one,
	// and nil otherwise. Transform-only nodes return nil.
	AsSolid() *Solid
}

// NodeBase implements the core scenegraph node functionality: naming,
// parent and child links, and traversal. Node classification is fixed at
// construction time by the concrete type ([Group] or [Solid]) rather than
// re-derived from capability flags on every visit.
type NodeBase struct {

	// Name is the name of this node, used in paths and diagnostic reports.
	// It is typically unique relative to other children of the same parent.
	Name string

	// This is the value of this node as its true underlying type, which
	// allows methods defined on NodeBase to dispatch to the concrete type.
	// It is set by the New* constructors.
	This Node

	// Parent is the parent of this node, set automatically when the node
	// is added as a child. Nodes have at most one parent.
	Parent Node

	// Children is the list of children of this node.
	Children []Node
}

func (nb *NodeBase) AsNodeBase() *NodeBase { return nb }

// AsSolid returns nil: a base node is not renderable.
// [Solid] overrides this.
func (nb *NodeBase) AsSolid() *Solid { return nil }

// HasChildren returns whether this node has any children.
func (nb *NodeBase) HasChildren() bool { return len(nb.Children) > 0 }

// NumChildren returns the number of children of this node.
func (nb *NodeBase) NumChildren() int { return len(nb.Children) }

// Child returns the child of this node at the given index,
// or nil if the index is out of range.
func (nb *NodeBase) Child(i int) Node {
	if i < 0 || i >= len(nb.Children) {
		return nil
	}
	return nb.Children[i]
}

// AddChild adds the given child at the end of the children list,
// setting its parent to this node. The child is assumed to not
// already be on another tree.
func (nb *NodeBase) AddChild(kid Node) {
	nb.Children = append(nb.Children, kid)
	kid.AsNodeBase().Parent = nb.This
}

// Path returns the path to this node from the tree root, using node
// names separated by / delimiters. Any / characters in names are
// escaped to \\.
func (nb *NodeBase) Path() string {
	if nb.Parent != nil {
		return nb.Parent.AsNodeBase().Path() + "/" + EscapePathName(nb.Name)
	}
	return "/" + EscapePathName(nb.Name)
}

// EscapePathName returns a name with / replaced by \\,
// for inclusion in a path.
func EscapePathName(name string) string {
	return strings.ReplaceAll(name, "/", `\\`)
}

func (nb *NodeBase) String() string {
	if nb == nil {
		return "nil"
	}
	return nb.Path()
}

// WalkDown calls the given function on this node and all of its children
// in a depth-first pre-order manner, sequentially in the current goroutine.
// It stops walking the current branch of the tree if the function returns
// [Break] and keeps walking if it returns [Continue]. It is non-recursive,
// so subtree depth is not bounded by the goroutine stack.
func (nb *NodeBase) WalkDown(fun func(n Node) bool) {
	if nb.This == nil {
		return
	}
	tm := map[Node]int{} // traversal map: last child index visited per node
	start := nb.This
	cur := start
	tm[cur] = -1
outer:
	for {
		cb := cur.AsNodeBase()
		if fun(cur) && cb.HasChildren() {
			tm[cur] = 0
			cur = cb.Child(0)
			tm[cur] = -1
			continue
		}
		tm[cur] = cb.NumChildren()
		// ascent: move right, then up
		for {
			cb := cur.AsNodeBase() // may have changed, so must get again
			curChild := tm[cur]
			if curChild+1 < cb.NumChildren() {
				curChild++
				tm[cur] = curChild
				cur = cb.Child(curChild)
				tm[cur] = -1
				continue outer
			}
			delete(tm, cur)
			if cur == start {
				break outer // done!
			}
			parent := cb.Parent
			if parent == nil || parent == cur { // prevent loops
				break outer
			}
			cur = parent
		}
	}
}

// Group collects individual elements in a scene but does not have
// geometry or materials of its own; it is walked but never produces
// resource callbacks.
type Group struct {
	NodeBase
}

// NewGroup returns a new [Group] with the given name, added as a
// child of the given parent if it is non-nil.
func NewGroup(parent Node, name string) *Group {
	gp := &Group{}
	initNode(gp, parent, name)
	return gp
}

// initNode sets the This pointer and name of the given node,
// and adds it to the given parent if non-nil.
func initNode(n Node, parent Node, name string) {
	nb := n.AsNodeBase()
	nb.This = n
	nb.Name = name
	if parent != nil {
		parent.AsNodeBase().AddChild(n)
	}
}
