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
EndPoint identifies one side of an edge operation: a node type plus the
attribute map used to locate (or create) it, exactly as the query grammar
hands it over.
*/
type EndPoint struct {
	Name  string
	Attrs map[string]string
}

/*
AddEdge validates both endpoints (​$id required on each), rejects
ErrEdgeAlreadyExists if an edge to the same target id already exists,
appends the edge, refreshes $edges on the source node and returns a record
{$from, $to, $weight}.
*/
func (gm *Manager) AddEdge(from, to EndPoint, weight int8) ([]map[string]string, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	fromNode, toID, err := gm.resolveEdgeEndpoints(from, to)
	if err != nil {
		return nil, err
	}

	if e, _ := fromNode.FindEdge(toID); e != nil {
		return nil, newGraphError(errEdgeAlreadyExists, from.Name+"->"+to.Name)
	}

	fromNode.Edges = append(fromNode.Edges, data.NewEdge(to.Name, toID, weight))
	fromNode.SetEdgeCount()

	return edgeResult(from.Name, to.Name, weight), nil
}

/*
UpdateEdge locates the edge by target id (ErrEdgeNotFound if absent) and
overwrites its weight.
*/
func (gm *Manager) UpdateEdge(from, to EndPoint, weight int8) ([]map[string]string, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	fromNode, toID, err := gm.resolveEdgeEndpoints(from, to)
	if err != nil {
		return nil, err
	}

	e, _ := fromNode.FindEdge(toID)
	if e == nil {
		return nil, newGraphError(errEdgeNotFound, from.Name+"->"+to.Name)
	}
	e.Weight = weight

	return edgeResult(from.Name, to.Name, weight), nil
}

/*
DeleteEdge locates the edge by target id, removes it via swap-with-last
(the order of the remaining edges is not preserved), refreshes $edges and
returns the removed weight in the result record.
*/
func (gm *Manager) DeleteEdge(from, to EndPoint) ([]map[string]string, error) {
	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	fromNode, toID, err := gm.resolveEdgeEndpoints(from, to)
	if err != nil {
		return nil, err
	}

	_, idx := fromNode.FindEdge(toID)
	if idx < 0 {
		return nil, newGraphError(errEdgeNotFound, from.Name+"->"+to.Name)
	}
	removed := fromNode.RemoveEdgeAt(idx)
	fromNode.SetEdgeCount()

	return edgeResult(from.Name, to.Name, removed.Weight), nil
}

/*
resolveEdgeEndpoints validates both endpoints' attributes ($id required)
and fetches the source node. Callers must hold gm.mutex.
*/
func (gm *Manager) resolveEdgeEndpoints(from, to EndPoint) (*data.Node, string, error) {
	if err := gm.validateAttrs(from.Name, from.Attrs, []string{data.AttrID}); err != nil {
		return nil, "", err
	}
	if err := gm.validateAttrs(to.Name, to.Attrs, []string{data.AttrID}); err != nil {
		return nil, "", err
	}

	fromID := from.Attrs[data.AttrID]
	toID := to.Attrs[data.AttrID]

	fromKey := fromID + ":" + from.Name
	fromNode, ok := gm.nodes[fromKey]
	if !ok {
		return nil, "", newGraphError(errNodeNotFound, fromKey)
	}

	toKey := toID + ":" + to.Name
	if _, ok := gm.nodes[toKey]; !ok {
		return nil, "", newGraphError(errNodeNotFound, toKey)
	}

	return fromNode, toID, nil
}

func edgeResult(fromName, toName string, weight int8) []map[string]string {
	return []map[string]string{{
		data.AttrFrom:   fromName,
		data.AttrTo:     toName,
		data.AttrWeight: weightStr(weight),
	}}
}
