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

	"devt.de/krotik/weightgraph/chain"
)

/*
ChainResponse carries a candidate chain addressed at a specific peer, in
reply to a ChainRequest.
*/
type ChainResponse struct {
	Chain      []chain.Block `json:"chain"`
	Candidates []string      `json:"candidates"`
	ToPeer     string        `json:"to_peer"`
}

/*
ChainRequest asks the addressed peer to publish its local chain.
*/
type ChainRequest struct {
	FromPeer string `json:"from_peer"`
}

/*
parsedMessage is the result of polymorphically decoding one inbound
gossip message: exactly one of its fields is non-nil.
*/
type parsedMessage struct {
	Response *ChainResponse
	Request  *ChainRequest
	Block    *chain.Block
}

/*
parseMessage tries, in order, ChainResponse, then ChainRequest, then a
bare Block - the first successful parse wins, per §6's wire format.
Unmarshalling into Go structs happily accepts objects missing fields
that a stricter schema would reject, so each candidate additionally
checks the one field that distinguishes it from the others.
*/
func parseMessage(raw []byte) (parsedMessage, bool) {
	var resp ChainResponse
	if err := json.Unmarshal(raw, &resp); err == nil && resp.ToPeer != "" {
		return parsedMessage{Response: &resp}, true
	}

	var req ChainRequest
	if err := json.Unmarshal(raw, &req); err == nil && req.FromPeer != "" {
		return parsedMessage{Request: &req}, true
	}

	var b chain.Block
	if err := json.Unmarshal(raw, &b); err == nil && b.Hash != "" {
		return parsedMessage{Block: &b}, true
	}

	return parsedMessage{}, false
}
