/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package query

import (
	"strconv"

	"devt.de/krotik/common/logutil"
	"devt.de/krotik/weightgraph/agent"
	"devt.de/krotik/weightgraph/chain"
	"devt.de/krotik/weightgraph/graph"
	"devt.de/krotik/weightgraph/graph/data"
)

/*
Executor holds the handles every dispatched Command needs: the graph
store, the agent registry and the block chain. It never owns these -
the main loop constructs one set, wraps it in one Executor, and runs
every parsed command through its Execute, per the "explicit function
arguments, never global state" design note.
*/
type Executor struct {
	Graph    *graph.Manager
	Registry *agent.Registry
	Chain    *chain.Chain
}

var execLog = logutil.GetLogger("query")

/*
NewExecutor creates an Executor over the given components.
*/
func NewExecutor(gm *graph.Manager, reg *agent.Registry, ch *chain.Chain) *Executor {
	return &Executor{Graph: gm, Registry: reg, Chain: ch}
}

/*
Execute dispatches cmd against the Executor's components and returns the
result records the command produces. Chain side-effect errors are
logged but never roll back the graph mutation that triggered them - the
dispatch table in §4.4 is explicit that these two outcomes are
independent.
*/
func (ex *Executor) Execute(cmd Command) ([]map[string]string, error) {
	switch c := cmd.(type) {

	case DefineNode:
		result, err := ex.Graph.Define(c.Name, c.Attrs)
		if err != nil {
			return nil, err
		}
		if c.HasAgent {
			ex.Registry.DefineAgent(c.Name, c.Conditions)
		}
		return result, nil

	case FetchNode:
		return ex.Graph.Search(c.Name, c.Attrs, c.Joins)

	case FetchConnectionChain:
		return chainRecords(ex.Chain.Blocks()), nil

	case AddNode:
		result, err := ex.Graph.AddNode(c.Name, c.Attrs)
		if err != nil {
			return nil, err
		}
		if len(c.Attrs) > 0 {
			ex.sideEffect(func() error {
				return ex.Chain.AddOrUpdateAgent(ex.Graph, c.Name, result[0][data.AttrID])
			})
		}
		return result, nil

	case UpdateNode:
		result, err := ex.Graph.UpdateNode(c.Name, c.Attrs)
		if err != nil {
			return nil, err
		}
		ex.sideEffect(func() error {
			return ex.Chain.AddOrUpdateAgent(ex.Graph, c.Name, result[0][data.AttrID])
		})
		return result, nil

	case DeleteNode:
		result, err := ex.Graph.DeleteNode(c.Name, c.Attrs)
		if err != nil {
			return nil, err
		}
		ex.Registry.RemoveAgent(result[0][data.AttrID])
		return result, nil

	case AddEdge:
		result, err := ex.Graph.AddEdge(c.From, c.To, c.Weight)
		if err != nil {
			return nil, err
		}
		ex.sideEffect(func() error {
			return ex.Chain.AddEdgeChange(c.From.Attrs[data.AttrID], c.To.Attrs[data.AttrID], c.Weight)
		})
		return result, nil

	case UpdateEdge:
		result, err := ex.Graph.UpdateEdge(c.From, c.To, c.Weight)
		if err != nil {
			return nil, err
		}
		ex.sideEffect(func() error {
			return ex.Chain.AddEdgeChange(c.From.Attrs[data.AttrID], c.To.Attrs[data.AttrID], c.Weight)
		})
		return result, nil

	case DeleteEdge:
		result, err := ex.Graph.DeleteEdge(c.From, c.To)
		if err != nil {
			return nil, err
		}
		ex.sideEffect(func() error {
			return ex.Chain.AddEdgeChange(c.From.Attrs[data.AttrID], c.To.Attrs[data.AttrID], 0)
		})
		return result, nil
	}

	panic("unreachable command type")
}

/*
sideEffect runs a chain mutation and logs, rather than propagates, any
failure.
*/
func (ex *Executor) sideEffect(f func() error) {
	if err := f(); err != nil {
		execLog.Error(err)
	}
}

func chainRecords(blocks []chain.Block) []map[string]string {
	records := make([]map[string]string, 0, len(blocks))
	for _, b := range blocks {
		records = append(records, map[string]string{
			"id":            strconv.FormatUint(b.ID, 10),
			"hash":          b.Hash,
			"previous_hash": b.PreviousHash,
			"validator":     b.Validator,
			"tag":           string(b.Data.Tag),
		})
	}
	return records
}
