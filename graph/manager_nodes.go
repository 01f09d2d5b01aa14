/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package graph

import "devt.de/krotik/weightgraph/graph/data"

/*
AddNode validates attrs (no internal attributes required), generates $id,
injects $name and $edges="0", inserts the node under "{$id}:{name}" and
returns the stored attribute map.
*/
func (gm *Manager) AddNode(name string, attrs map[string]string) ([]map[string]string, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	if err := gm.validateAttrs(name, attrs, nil); err != nil {
		return nil, err
	}

	id := gm.idgen.Generate()

	stored := make(map[string]string, len(attrs)+3)
	for k, v := range attrs {
		stored[k] = v
	}
	stored[data.AttrID] = id
	stored[data.AttrName] = name
	stored[data.AttrEdges] = "0"

	n := data.NewNode(stored)
	gm.nodes[n.Key()] = n

	return []map[string]string{n.Map()}, nil
}

/*
UpdateNode validates attrs with $id required, fetches the existing node by
"{$id}:{name}" and overwrites its attributes with attrs plus re-injected
$name and the node's current $edges. User-defined attributes present on
the old node but absent from attrs are dropped (replace semantics).
*/
func (gm *Manager) UpdateNode(name string, attrs map[string]string) ([]map[string]string, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	if err := gm.validateAttrs(name, attrs, []string{data.AttrID}); err != nil {
		return nil, err
	}

	id := attrs[data.AttrID]
	key := id + ":" + name

	n, ok := gm.nodes[key]
	if !ok {
		return nil, newGraphError(errNodeNotFound, key)
	}

	stored := make(map[string]string, len(attrs)+2)
	for k, v := range attrs {
		stored[k] = v
	}
	stored[data.AttrName] = name
	stored[data.AttrEdges] = edgesAttr(n)

	edges := n.Edges
	n.SetAttrs(stored)
	n.Edges = edges

	return []map[string]string{n.Map()}, nil
}

/*
DeleteNode validates attrs with $id required, removes the node and returns
the removed attribute map.
*/
func (gm *Manager) DeleteNode(name string, attrs map[string]string) ([]map[string]string, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	if err := gm.validateAttrs(name, attrs, []string{data.AttrID}); err != nil {
		return nil, err
	}

	id := attrs[data.AttrID]
	key := id + ":" + name

	n, ok := gm.nodes[key]
	if !ok {
		return nil, newGraphError(errNodeNotFound, key)
	}

	delete(gm.nodes, key)

	return []map[string]string{n.Map()}, nil
}

func edgesAttr(n *data.Node) string {
	v, _ := n.Attr(data.AttrEdges)
	return v
}
