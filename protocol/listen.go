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
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"devt.de/krotik/common/logutil"
)

var transportLog = logutil.GetLogger("protocol/transport")

/*
upgrader upgrades an incoming gossip connection, the same
Upgrade/ReadBufferSize/WriteBufferSize shape EliasDB's own websocket
endpoints use.
*/
var upgrader = websocket.Upgrader{
	Subprotocols:    []string{"weightgraph-gossip"},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

/*
Listen binds addr and serves the gossip endpoint: every inbound
connection is upgraded to a websocket and wired into hub as a new
peer, identified by the "peer" query parameter the dialer supplies.
Listen returns the actual bound address (useful when addr's port is
":0") once the listener is bound; serving runs on a background
goroutine.
*/
func Listen(addr string, hub *Hub) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/gossip", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			transportLog.Error(err)
			return
		}

		remote := PeerID(r.URL.Query().Get("peer"))
		if remote == "" {
			remote = PeerID(r.RemoteAddr)
		}
		hub.AddPeer(remote, conn)
	})

	go func() {
		if err := http.Serve(ln, mux); err != nil {
			transportLog.Error(err)
		}
	}()

	return ln.Addr().String(), nil
}

/*
Dial connects out to a peer's gossip listener at addr, announces
localPeer on the "peer" query parameter, and wires the resulting
connection into hub under addr's own identity.
*/
func Dial(addr string, localPeer PeerID, hub *Hub) error {
	target := strings.TrimPrefix(strings.TrimPrefix(addr, "ws://"), "http://")
	url := fmt.Sprintf("ws://%s/gossip?peer=%s", target, localPeer)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return err
	}

	hub.AddPeer(PeerID(addr), conn)
	return nil
}
