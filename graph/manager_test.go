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

import (
	"errors"
	"testing"

	"devt.de/krotik/weightgraph/graph/util"
)

func TestDefine(t *testing.T) {
	gm := NewManager()

	result, err := gm.Define("Person", []string{"name", "premium"})
	if err != nil {
		t.Error(err)
		return
	}

	if len(result) != 1 || result[0]["name"] != "*" || result[0]["premium"] != "*" {
		t.Error("Unexpected result:", result)
	}

	if _, err := gm.Define("Person", []string{"name"}); !errors.Is(err, util.ErrNodeAlreadyExists) {
		t.Error("Expected ErrNodeAlreadyExists, got:", err)
	}
}

func TestAddNodeRequiresDefinition(t *testing.T) {
	gm := NewManager()

	if _, err := gm.AddNode("Person", map[string]string{"name": "Janne"}); !errors.Is(err, util.ErrNodeNotDefined) {
		t.Error("Expected ErrNodeNotDefined, got:", err)
	}
}

func TestAddNode(t *testing.T) {
	gm := NewManager()
	gm.Define("Person", []string{"name"})

	result, err := gm.AddNode("Person", map[string]string{"name": "Janne"})
	if err != nil {
		t.Error(err)
		return
	}

	rec := result[0]
	if rec["$name"] != "Person" || rec["name"] != "Janne" || rec["$edges"] != "0" || rec["$id"] == "" {
		t.Error("Unexpected result:", rec)
	}
}

func TestUpdateNodeRequiresID(t *testing.T) {
	gm := NewManager()
	gm.Define("Person", []string{"name"})
	gm.AddNode("Person", map[string]string{"name": "Janne"})

	if _, err := gm.UpdateNode("Person", map[string]string{"name": "Jim"}); !errors.Is(err, util.ErrAttributeIsRequired) {
		t.Error("Expected ErrAttributeIsRequired, got:", err)
	}

	if _, err := gm.UpdateNode("Person", map[string]string{"$id": "doesnotexist", "name": "Jim"}); !errors.Is(err, util.ErrNodeNotFound) {
		t.Error("Expected ErrNodeNotFound, got:", err)
	}
}

func TestAddEdgeAndSearchJoin(t *testing.T) {
	gm := NewManager()
	gm.Define("From", nil)
	gm.Define("To", nil)

	fromResult, _ := gm.AddNode("From", map[string]string{})
	toResult, _ := gm.AddNode("To", map[string]string{})

	fromID := fromResult[0]["$id"]
	toID := toResult[0]["$id"]

	rec, err := gm.AddEdge(
		EndPoint{Name: "From", Attrs: map[string]string{"$id": fromID}},
		EndPoint{Name: "To", Attrs: map[string]string{"$id": toID}},
		50)
	if err != nil {
		t.Error(err)
		return
	}

	if rec[0]["$from"] != "From" || rec[0]["$to"] != "To" || rec[0]["$weight"] != "50" {
		t.Error("Unexpected edge result:", rec)
	}

	if _, err := gm.AddEdge(
		EndPoint{Name: "From", Attrs: map[string]string{"$id": fromID}},
		EndPoint{Name: "To", Attrs: map[string]string{"$id": toID}},
		1); !errors.Is(err, util.ErrEdgeAlreadyExists) {
		t.Error("Expected ErrEdgeAlreadyExists, got:", err)
	}

	search, err := gm.Search("From", map[string]string{"$id": fromID}, []Join{{NodeType: "To", MinWeight: 0}})
	if err != nil {
		t.Error(err)
		return
	}
	if len(search) != 1 || search[0]["$edges"] != "1" || search[0]["To.$name"] != "To" || search[0]["To.$edges"] != "0" {
		t.Error("Unexpected join result:", search)
	}

	below, err := gm.Search("From", map[string]string{"$id": fromID}, []Join{{NodeType: "To", MinWeight: 51}})
	if err != nil {
		t.Error(err)
		return
	}
	if len(below) != 0 {
		t.Error("Expected an empty (not error) result below the weight threshold, got:", below)
	}
}

func TestDeleteEdgeRoundTrip(t *testing.T) {
	gm := NewManager()
	gm.Define("From", nil)
	gm.Define("To", nil)

	fromResult, _ := gm.AddNode("From", map[string]string{})
	toResult, _ := gm.AddNode("To", map[string]string{})
	fromID := fromResult[0]["$id"]
	toID := toResult[0]["$id"]

	from := EndPoint{Name: "From", Attrs: map[string]string{"$id": fromID}}
	to := EndPoint{Name: "To", Attrs: map[string]string{"$id": toID}}

	gm.AddEdge(from, to, 10)
	if _, err := gm.DeleteEdge(from, to); err != nil {
		t.Error(err)
		return
	}

	search, _ := gm.Search("From", map[string]string{"$id": fromID}, nil)
	if search[0]["$edges"] != "0" {
		t.Error("Expected $edges to be back to 0, got:", search[0]["$edges"])
	}

	if gm.EdgeCountOf("From", fromID) != 0 {
		t.Error("Expected edge count 0")
	}
}
