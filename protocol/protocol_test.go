/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devt.de/krotik/weightgraph/agent"
	"devt.de/krotik/weightgraph/chain"
)

func TestProtocolTickPublishesGrowthAndAdvancesWatermark(t *testing.T) {
	registry := agent.NewRegistry()
	ch := chain.New(registry)
	hub := NewHub(60)

	p := New(PeerID("local"), hub, ch)
	assert.Equal(t, 1, p.watermark)

	require.NoError(t, ch.AddEdgeChange("a", "b", 5))

	p.Tick()
	assert.Equal(t, 2, p.watermark)

	p.Tick()
	assert.Equal(t, 2, p.watermark, "a second Tick with no further growth should not republish")
}

func TestProtocolHandleEventIgnoresPeerLifecycleEvents(t *testing.T) {
	registry := agent.NewRegistry()
	ch := chain.New(registry)
	hub := NewHub(60)
	p := New(PeerID("local"), hub, ch)

	assert.NotPanics(t, func() {
		p.HandleEvent(NetworkEvent{Kind: PeerDiscovered, Peer: "x"})
		p.HandleEvent(NetworkEvent{Kind: PeerExpired, Peer: "x"})
	})
}

func TestProtocolHandleEventDropsInvalidBlock(t *testing.T) {
	registry := agent.NewRegistry()
	ch := chain.New(registry)
	hub := NewHub(60)
	p := New(PeerID("local"), hub, ch)

	bogus := chain.Genesis()
	bogus.ID = 1
	bogus.Hash = "not-a-real-hash"

	raw, err := json.Marshal(bogus)
	require.NoError(t, err)

	p.HandleEvent(NetworkEvent{Kind: MessageReceived, Message: raw})

	assert.Equal(t, 1, ch.Len(), "an invalid block must not be appended")
}

func TestProtocolHandleEventReplacesChainFromAddressedResponse(t *testing.T) {
	registry := agent.NewRegistry()
	ch := chain.New(registry)
	hub := NewHub(60)
	p := New(PeerID("local"), hub, ch)

	donor := chain.New(agent.NewRegistry())
	require.NoError(t, donor.AddEdgeChange("a", "b", 1))

	resp := ChainResponse{Chain: donor.Blocks(), ToPeer: "local"}
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	p.HandleEvent(NetworkEvent{Kind: MessageReceived, Message: raw})

	assert.Equal(t, 2, ch.Len())
}

func TestProtocolHandleEventIgnoresResponseAddressedToSomeoneElse(t *testing.T) {
	registry := agent.NewRegistry()
	ch := chain.New(registry)
	hub := NewHub(60)
	p := New(PeerID("local"), hub, ch)

	donor := chain.New(agent.NewRegistry())
	require.NoError(t, donor.AddEdgeChange("a", "b", 1))

	resp := ChainResponse{Chain: donor.Blocks(), ToPeer: "someone-else"}
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	p.HandleEvent(NetworkEvent{Kind: MessageReceived, Message: raw})

	assert.Equal(t, 1, ch.Len())
}

func TestProtocolHandleEventRespondsToMatchingRequest(t *testing.T) {
	registry := agent.NewRegistry()
	ch := chain.New(registry)
	hub := NewHub(60)
	p := New(PeerID("local"), hub, ch)

	req := ChainRequest{FromPeer: "local"}
	raw, err := json.Marshal(req)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		p.HandleEvent(NetworkEvent{Kind: MessageReceived, Message: raw})
	})
}
