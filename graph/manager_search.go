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
Join describes one "join NAME($weight>"N")" clause: the required type of
the joined node at the far end of an outgoing edge, and the minimum weight
that edge must carry.
*/
type Join struct {
	NodeType  string
	MinWeight int8
}

/*
Search fetches the node identified by (name, attrs) - ErrNodeNotFound if
missing - and, for every join, looks for one outgoing edge whose target
type matches join.NodeType. If none exists, or its weight is strictly less
than join.MinWeight, Search returns an empty (not error) result. Otherwise
the joined node's attributes are merged into the result under prefixed
keys "{join_type}.{attr}". All joins must succeed for a combined record to
be returned.
*/
func (gm *Manager) Search(name string, attrs map[string]string, joins []Join) ([]map[string]string, error) {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	if err := gm.validateAttrs(name, attrs, []string{data.AttrID}); err != nil {
		return nil, err
	}

	key := attrs[data.AttrID] + ":" + name
	n, ok := gm.nodes[key]
	if !ok {
		return nil, newGraphError(errNodeNotFound, key)
	}

	result := n.Map()

	for _, j := range joins {
		edge := findEdgeByType(n, j.NodeType)
		if edge == nil || edge.Weight < j.MinWeight {
			return []map[string]string{}, nil
		}

		joined, ok := gm.nodes[edge.ToNodeID+":"+edge.ToNodeType]
		if !ok {
			return []map[string]string{}, nil
		}

		for k, v := range joined.Map() {
			result[j.NodeType+"."+k] = v
		}
	}

	return []map[string]string{result}, nil
}

func findEdgeByType(n *data.Node, nodeType string) *data.Edge {
	for _, e := range n.Edges {
		if e.ToNodeType == nodeType {
			return e
		}
	}
	return nil
}
