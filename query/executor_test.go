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
	"testing"

	"devt.de/krotik/weightgraph/agent"
	"devt.de/krotik/weightgraph/chain"
	"devt.de/krotik/weightgraph/graph"
)

func newTestExecutor() *Executor {
	gm := graph.NewManager()
	registry := agent.NewRegistry()
	ch := chain.New(registry)
	return NewExecutor(gm, registry, ch)
}

func run(t *testing.T, ex *Executor, line string) []map[string]string {
	t.Helper()
	cmd, err := Parse(line)
	if err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	result, err := ex.Execute(cmd)
	if err != nil {
		t.Fatalf("execute %q: %v", line, err)
	}
	return result
}

func TestExecutorDefineThenAddNode(t *testing.T) {
	ex := newTestExecutor()

	run(t, ex, `define node Person(name, premium)`)
	result := run(t, ex, `add node Person(name="Janne", premium="false")`)

	if result[0]["name"] != "Janne" || result[0]["$name"] != "Person" {
		t.Error("unexpected add result:", result)
	}
}

func TestExecutorAddNodeBeforeDefineFails(t *testing.T) {
	ex := newTestExecutor()

	cmd, err := Parse(`add node Person(name="Janne")`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ex.Execute(cmd); err == nil {
		t.Error("expected an error adding a node of an undefined type")
	}
}

func TestExecutorAgentRegistrationMintsValidatorBlock(t *testing.T) {
	ex := newTestExecutor()

	run(t, ex, `define node User(premium, key) with agent(premium="true")`)
	result := run(t, ex, `add node User(premium="true", key="`+ex.Chain.PublicKey()+`")`)

	if result[0]["premium"] != "true" {
		t.Error("unexpected add result:", result)
	}
	if ex.Chain.Len() != 2 {
		t.Error("expected a validator block to have been minted, chain length:", ex.Chain.Len())
	}
}

func TestExecutorAddEdgeThenFetchJoin(t *testing.T) {
	ex := newTestExecutor()

	run(t, ex, `define node Person(name)`)
	run(t, ex, `define node Playlist(name)`)

	fromResult := run(t, ex, `add node Person(name="Janne")`)
	toResult := run(t, ex, `add node Playlist(name="Party Mix")`)

	fromID := fromResult[0]["$id"]
	toID := toResult[0]["$id"]

	edgeResult := run(t, ex, `add connection from Person($id="`+fromID+`") to Playlist($id="`+toID+`") with weight 50`)
	if edgeResult[0]["$weight"] != "50" {
		t.Error("unexpected edge result:", edgeResult)
	}

	if ex.Chain.Len() != 2 {
		t.Error("expected an edge-change block to have been minted, chain length:", ex.Chain.Len())
	}

	search := run(t, ex, `fetch node Person($id="`+fromID+`") join Playlist($weight>"10")`)
	if search[0]["Playlist.$name"] != "Playlist" {
		t.Error("unexpected joined record:", search)
	}
}

func TestExecutorDeleteNodeRemovesAgentAccount(t *testing.T) {
	ex := newTestExecutor()

	run(t, ex, `define node User(key) with agent(key="present")`)
	added := run(t, ex, `add node User(key="present")`)
	id := added[0]["$id"]

	if _, ok := ex.Registry.PublicKeyOf(id); !ok {
		t.Fatal("expected the node to have registered as an agent")
	}

	run(t, ex, `delete node User($id="`+id+`")`)

	if _, ok := ex.Registry.PublicKeyOf(id); ok {
		t.Error("expected the agent account to be retracted on node deletion")
	}
}

func TestExecutorFetchConnectionChainReturnsBlockRecords(t *testing.T) {
	ex := newTestExecutor()

	records := run(t, ex, `fetch connection chain`)
	if len(records) != 1 || records[0]["tag"] != string(chain.TagRootNode) {
		t.Error("unexpected chain records:", records)
	}
}
