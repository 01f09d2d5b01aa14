/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package data contains the basic data structures of the property graph:
node definitions, nodes and edges.
*/
package data

import "strconv"

/*
AttrID is the internal attribute holding a node's unique identifier.
*/
const AttrID = "$id"

/*
AttrName is the internal attribute holding a node's type name.
*/
const AttrName = "$name"

/*
AttrEdges is the internal attribute holding the stringified outgoing-edge count.
*/
const AttrEdges = "$edges"

/*
AttrFrom, AttrTo and AttrWeight only ever appear in result records produced
by edge operations; they are never stored on a node.
*/
const (
	AttrFrom   = "$from"
	AttrTo     = "$to"
	AttrWeight = "$weight"
)

/*
Definition is a node-type definition: the ordered list of user-defined
attribute names permitted on instances of this type. Created once, never
removed or changed.
*/
type Definition struct {
	Name  string
	Attrs []string
}

/*
HasAttr returns true if attr is part of this definition's attribute list.
*/
func (d *Definition) HasAttr(attr string) bool {
	for _, a := range d.Attrs {
		if a == attr {
			return true
		}
	}
	return false
}

/*
Node is a single instance of a node type. Attrs always carries the three
reserved internal attributes $id, $name and $edges in addition to whatever
user-defined attributes the instance was created or updated with.
*/
type Node struct {
	Attrs []AttrKV
	Edges []*Edge
}

/*
AttrKV is a single attribute/value pair. Nodes keep attributes in a
slice; its order follows map iteration in SetAttrs and is not the order
of the command's attrs list. Result records are plain maps (see Map).
*/
type AttrKV struct {
	Key string
	Val string
}

/*
NewNode creates a Node from an attribute map.
*/
func NewNode(attrs map[string]string) *Node {
	n := &Node{}
	n.SetAttrs(attrs)
	return n
}

/*
Attr returns the value of a single attribute and whether it was present.
*/
func (n *Node) Attr(key string) (string, bool) {
	for _, kv := range n.Attrs {
		if kv.Key == key {
			return kv.Val, true
		}
	}
	return "", false
}

/*
SetAttr sets or overwrites a single attribute.
*/
func (n *Node) SetAttr(key string, val string) {
	for i, kv := range n.Attrs {
		if kv.Key == key {
			n.Attrs[i].Val = val
			return
		}
	}
	n.Attrs = append(n.Attrs, AttrKV{key, val})
}

/*
SetAttrs replaces all attributes with the given map. Go map iteration order
is randomised, so callers that care about deterministic output order
(definitions, round-trip tests) should not rely on the resulting slice
order beyond "all keys from attrs are present".
*/
func (n *Node) SetAttrs(attrs map[string]string) {
	n.Attrs = make([]AttrKV, 0, len(attrs))
	for k, v := range attrs {
		n.Attrs = append(n.Attrs, AttrKV{k, v})
	}
}

/*
Map returns the node's attributes as a plain map, the shape every graph
operation returns to callers.
*/
func (n *Node) Map() map[string]string {
	m := make(map[string]string, len(n.Attrs))
	for _, kv := range n.Attrs {
		m[kv.Key] = kv.Val
	}
	return m
}

/*
ID returns the node's $id attribute.
*/
func (n *Node) ID() string {
	v, _ := n.Attr(AttrID)
	return v
}

/*
Name returns the node's $name attribute.
*/
func (n *Node) Name() string {
	v, _ := n.Attr(AttrName)
	return v
}

/*
Key returns the composite map key "{$id}:{$name}" for this node.
*/
func (n *Node) Key() string {
	return n.ID() + ":" + n.Name()
}

/*
SetEdgeCount refreshes the $edges internal attribute to match len(n.Edges).
Must be called after every edge mutation on this node.
*/
func (n *Node) SetEdgeCount() {
	n.SetAttr(AttrEdges, strconv.Itoa(len(n.Edges)))
}

/*
FindEdge returns the outgoing edge with the given target node id, or nil.
Edge identity is the target node id alone.
*/
func (n *Node) FindEdge(toNodeID string) (*Edge, int) {
	for i, e := range n.Edges {
		if e.ToNodeID == toNodeID {
			return e, i
		}
	}
	return nil, -1
}

/*
RemoveEdgeAt removes the edge at index i using swap-with-last. The order of
the remaining edges is not preserved.
*/
func (n *Node) RemoveEdgeAt(i int) *Edge {
	removed := n.Edges[i]
	last := len(n.Edges) - 1
	n.Edges[i] = n.Edges[last]
	n.Edges = n.Edges[:last]
	return removed
}

