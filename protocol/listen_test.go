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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAndDialWirePeerIntoHub(t *testing.T) {
	serverHub := NewHub(60)

	addr, err := Listen(":0", serverHub)
	require.NoError(t, err)

	clientHub := NewHub(60)
	require.NoError(t, Dial(addr, PeerID("client-1"), clientHub))

	ev := waitForEvent(t, serverHub.Out)
	assert.Equal(t, PeerDiscovered, ev.Kind)

	clientHub.mutex.RLock()
	_, connected := clientHub.peers[PeerID(addr)]
	clientHub.mutex.RUnlock()
	assert.True(t, connected, "Dial should register the server address as a peer")

	clientHub.Broadcast([]byte(`{"from_peer":"client-1"}`))

	ev = waitForEvent(t, serverHub.Out)
	assert.Equal(t, MessageReceived, ev.Kind)
	assert.Equal(t, []byte(`{"from_peer":"client-1"}`), ev.Message)
}

func waitForEvent(t *testing.T, out chan NetworkEvent) NetworkEvent {
	t.Helper()
	select {
	case ev := <-out:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for network event")
		return NetworkEvent{}
	}
}
