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
Package graph implements the in-memory typed property graph: node-type
definitions, nodes, weighted directed edges and the attribute validation
discipline that guards all of them.

The package is split the way EliasDB splits its graph manager: manager.go
holds the shared state and definitions, manager_nodes.go the node CRUD
operations, manager_edges.go the edge CRUD operations and
manager_search.go the single-hop join search.
*/
package graph

import (
	"strings"
	"sync"

	"devt.de/krotik/weightgraph/graph/data"
	"devt.de/krotik/weightgraph/identifier"
)

/*
Manager owns the node map exclusively. It is safe for concurrent use.
*/
type Manager struct {
	mutex       sync.RWMutex
	definitions map[string]*data.Definition
	nodes       map[string]*data.Node
	idgen       *identifier.Generator
}

/*
NewManager creates an empty graph manager.
*/
func NewManager() *Manager {
	return &Manager{
		definitions: make(map[string]*data.Definition),
		nodes:       make(map[string]*data.Node),
		idgen:       identifier.NewGenerator(),
	}
}

/*
Define creates a new node-type definition. Fails with ErrNodeAlreadyExists
if name is already defined. On success it returns one record mapping each
declared attribute to "*".
*/
func (gm *Manager) Define(name string, attrs []string) ([]map[string]string, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	if _, ok := gm.definitions[name]; ok {
		return nil, newGraphError(errNodeAlreadyExists, name)
	}

	gm.definitions[name] = &data.Definition{Name: name, Attrs: append([]string(nil), attrs...)}

	result := make(map[string]string, len(attrs))
	for _, a := range attrs {
		result[a] = "*"
	}

	return []map[string]string{result}, nil
}

/*
definition returns the definition for name, or nil if it does not exist.
Callers must hold gm.mutex.
*/
func (gm *Manager) definition(name string) *data.Definition {
	return gm.definitions[name]
}

/*
InsertRawNode inserts a node directly, bypassing define/add_node attribute
validation. This mirrors the bootstrap path's direct user insertion
(spec.md design note, §9): it exists purely so bootstrap can pre-seed
accounts for --usernameN/--keyN without having first called Define/AddNode.
*/
func (gm *Manager) InsertRawNode(name string, attrs map[string]string) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	n := data.NewNode(attrs)
	gm.nodes[n.Key()] = n
}

/*
NodeCount returns the number of nodes currently stored. Mostly useful for
tests and diagnostics.
*/
func (gm *Manager) NodeCount() int {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()
	return len(gm.nodes)
}

/*
AnyNodeID returns the $id of an arbitrary node of the given type, or ""
if none exists. Go map iteration order is randomised, so this is only
meaningful when exactly one node of that type is known to exist - tests
use it to recover a generated id without threading it through a prior
command's result.
*/
func (gm *Manager) AnyNodeID(name string) string {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	suffix := ":" + name
	for key, n := range gm.nodes {
		if strings.HasSuffix(key, suffix) {
			return n.ID()
		}
	}
	return ""
}

/*
FindNode returns a copy of the attribute map of the node "{id}:{name}", or
ErrNodeNotFound. Used by the agent registry to look up candidate accounts.
*/
func (gm *Manager) FindNode(name, id string) (map[string]string, error) {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	n, ok := gm.nodes[id+":"+name]
	if !ok {
		return nil, newGraphError(errNodeNotFound, name+":"+id)
	}

	return n.Map(), nil
}

/*
EdgeCountOf returns the outgoing edge count of node "{id}:{name}", or 0 if
the node does not exist. Used by the agent registry to compute stake.
*/
func (gm *Manager) EdgeCountOf(name, id string) int {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	n, ok := gm.nodes[id+":"+name]
	if !ok {
		return 0
	}
	return len(n.Edges)
}
