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
	"fmt"

	"devt.de/krotik/common/logutil"
	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/weightgraph/chain"
)

var protoLog = logutil.GetLogger("protocol")

/*
Protocol owns the gossip channel, peer discovery handling and the
high-watermark of the chain length it has last published. It holds no
goroutine of its own: the main select loop feeds it events and calls
Tick after every iteration, per §5's single-threaded cooperative model.
*/
type Protocol struct {
	LocalPeer PeerID
	hub       *Hub
	chain     *chain.Chain
	watermark int
}

/*
New creates a Protocol bound to hub and ch, identified on the wire as
localPeer.
*/
func New(localPeer PeerID, hub *Hub, ch *chain.Chain) *Protocol {
	return &Protocol{LocalPeer: localPeer, hub: hub, chain: ch, watermark: ch.Len()}
}

/*
HandleEvent processes one NetworkEvent: peer discovery updates the
explicit-peer set (already done by Hub itself before the event reaches
here); inbound messages are tried as ChainResponse, then ChainRequest,
then a bare Block, in that order. Errors from inbound gossip are never
returned: unparseable messages and rejected blocks are dropped, and a
rejected ChainResponse is only logged.
*/
func (p *Protocol) HandleEvent(ev NetworkEvent) {
	switch ev.Kind {
	case PeerDiscovered, PeerExpired:
		// Hub already maintains the explicit-peer set; nothing further to do.
		return
	case MessageReceived:
		p.handleMessage(ev.Message)
	}
}

func (p *Protocol) handleMessage(raw []byte) {
	msg, ok := parseMessage(raw)
	if !ok {
		return
	}

	switch {
	case msg.Response != nil:
		if PeerID(msg.Response.ToPeer) != p.LocalPeer {
			return
		}
		if err := p.chain.ReplaceChain(msg.Response.Chain); err != nil {
			protoLog.Error(err)
		}

	case msg.Request != nil:
		if PeerID(msg.Request.FromPeer) != p.LocalPeer {
			return
		}
		p.publishChain()

	case msg.Block != nil:
		if err := p.chain.AddNewBlock(*msg.Block); err == nil {
			p.republish(*msg.Block)
		}
	}
}

/*
Tick is called after every event-loop iteration. If the local chain has
grown since the last publish, it publishes the new tail block and
advances the watermark.
*/
func (p *Protocol) Tick() {
	blocks := p.chain.Blocks()
	if len(blocks) <= p.watermark {
		return
	}

	grown := len(blocks) - p.watermark
	protoLog.Info(fmt.Sprintf("publishing %d new block%v", grown, stringutil.Plural(grown)))

	p.republish(blocks[len(blocks)-1])
	p.watermark = len(blocks)
}

func (p *Protocol) publishChain() {
	raw, err := json.Marshal(p.chain.Blocks())
	if err != nil {
		protoLog.Error(err)
		return
	}
	p.hub.Broadcast(raw)
}

func (p *Protocol) republish(b chain.Block) {
	raw, err := json.Marshal(b)
	if err != nil {
		protoLog.Error(err)
		return
	}
	p.hub.Broadcast(raw)
}
