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
	"sync"

	"github.com/gorilla/websocket"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/common/stringutil"
)

/*
peerConn wraps one peer's websocket connection. Modelled on ecal's
WebsocketConnection: one reader mutex and one writer mutex, since a
gorilla/websocket connection supports exactly one concurrent reader and
one concurrent writer.
*/
type peerConn struct {
	Peer   PeerID
	Conn   *websocket.Conn
	RMutex sync.Mutex
	WMutex sync.Mutex
}

func newPeerConn(peer PeerID, conn *websocket.Conn) *peerConn {
	return &peerConn{Peer: peer, Conn: conn}
}

func (pc *peerConn) write(msg []byte) error {
	pc.WMutex.Lock()
	defer pc.WMutex.Unlock()
	return pc.Conn.WriteMessage(websocket.TextMessage, msg)
}

func (pc *peerConn) read() ([]byte, error) {
	pc.RMutex.Lock()
	defer pc.RMutex.Unlock()
	_, msg, err := pc.Conn.ReadMessage()
	return msg, err
}

/*
Hub is the gossip channel: an explicit set of peer connections plus a
coalescing cache so identical
retransmissions of the same message are only ever surfaced once, the
way a gossipsub message-id function deduplicates by message hash.
Messages carry no topic: every broadcast goes to every connected peer,
and the GossipTopic config value is not consulted.
*/
type Hub struct {
	mutex sync.RWMutex
	peers map[PeerID]*peerConn
	seen  *datautil.MapCache
	Out   chan NetworkEvent
}

/*
NewHub creates an empty gossip Hub. seenTTL bounds, in seconds, how long
a message hash is remembered for deduplication; 0 means no expiry.
*/
func NewHub(seenTTL int64) *Hub {
	return &Hub{
		peers: make(map[PeerID]*peerConn),
		seen:  datautil.NewMapCache(1024, seenTTL),
		Out:   make(chan NetworkEvent, 64),
	}
}

/*
AddPeer registers peer's connection in the explicit-peer set, emits a
PeerDiscovered event, and starts reading inbound messages from it.
*/
func (h *Hub) AddPeer(peer PeerID, conn *websocket.Conn) {
	pc := newPeerConn(peer, conn)

	h.mutex.Lock()
	h.peers[peer] = pc
	h.mutex.Unlock()

	h.Out <- NetworkEvent{Kind: PeerDiscovered, Peer: peer}

	go h.readLoop(pc)
}

/*
RemovePeer drops peer from the explicit-peer set and emits a
PeerExpired event.
*/
func (h *Hub) RemovePeer(peer PeerID) {
	h.mutex.Lock()
	delete(h.peers, peer)
	h.mutex.Unlock()

	h.Out <- NetworkEvent{Kind: PeerExpired, Peer: peer}
}

func (h *Hub) readLoop(pc *peerConn) {
	for {
		msg, err := pc.read()
		if err != nil {
			h.RemovePeer(pc.Peer)
			return
		}

		if h.markSeen(msg) {
			continue
		}

		h.Out <- NetworkEvent{Kind: MessageReceived, Peer: pc.Peer, Message: msg}
	}
}

/*
Broadcast publishes msg to every connected peer. Write errors on
individual peers are not propagated; a peer that cannot be written to
will surface its own expiry through readLoop.
*/
func (h *Hub) Broadcast(msg []byte) {
	h.markSeen(msg)

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, pc := range h.peers {
		pc.write(msg)
	}
}

/*
markSeen reports whether msg's hash has already been broadcast or
received, and records it if not - the coalescing behaviour §6 asks for.
The message-id itself is EliasDB's own stringutil.MD5HexString, the
same hash EliasDB uses to key its edge import cache.
*/
func (h *Hub) markSeen(msg []byte) bool {
	id := stringutil.MD5HexString(string(msg))

	if _, ok := h.seen.Get(id); ok {
		return true
	}
	h.seen.Put(id, struct{}{})
	return false
}
