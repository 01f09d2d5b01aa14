/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package chain

/*
Block is one entry in the replicated block log. Hash and signature cover
every field except themselves; see CanonicalHash.
*/
type Block struct {
	ID           uint64   `json:"id"`
	Hash         string   `json:"hash"`
	PreviousHash string   `json:"previous_hash"`
	Timestamp    int64    `json:"timestamp"`
	Data         BlockData `json:"data"`
	Validator    string   `json:"validator"`
	Signature    string   `json:"signature"`
	Difficulty   int      `json:"difficulty"`
}

/*
BlockDataTag identifies which payload of BlockData is populated.
*/
type BlockDataTag string

const (
	TagEdgeData      BlockDataTag = "EdgeData"
	TagValidatorData BlockDataTag = "ValidatorData"
	TagRootNode      BlockDataTag = "RootNode"
)

/*
EdgeData is logged on every successful edge create, update or delete;
delete is encoded as Weight 0.
*/
type EdgeData struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Weight int8   `json:"weight"`
}

/*
ValidatorData is logged when a local node registers itself as a
validator.
*/
type ValidatorData struct {
	PublicKey string `json:"public_key"`
	AccountID string `json:"account_id"`
}

/*
BlockData is the tagged union carried by every block: exactly one of
Edge, Validator is populated, selected by Tag, except for the genesis
block where Tag is TagRootNode and neither is set. This is the "proper
sum type with one payload per tag" reimplementation the field's own
design notes call for, in place of two always-present optional slots.
*/
type BlockData struct {
	Tag       BlockDataTag   `json:"tag"`
	Edge      *EdgeData      `json:"edge,omitempty"`
	Validator *ValidatorData `json:"validator,omitempty"`
}

/*
NewEdgeBlockData wraps an EdgeData payload.
*/
func NewEdgeBlockData(fromID, toID string, weight int8) BlockData {
	return BlockData{Tag: TagEdgeData, Edge: &EdgeData{FromID: fromID, ToID: toID, Weight: weight}}
}

/*
NewValidatorBlockData wraps a ValidatorData payload.
*/
func NewValidatorBlockData(publicKey, accountID string) BlockData {
	return BlockData{Tag: TagValidatorData, Validator: &ValidatorData{PublicKey: publicKey, AccountID: accountID}}
}

/*
rootBlockData is the payload carried only by the genesis block.
*/
func rootBlockData() BlockData {
	return BlockData{Tag: TagRootNode}
}

/*
GenesisHash is the bit-exact hash every chain's index-0 block must carry.
*/
const GenesisHash = "0000494d137e1631bba301d5acab6e7bb7aa74ce1185d456565ef51d737677b2"

/*
Genesis returns the fixed, shared genesis block. Every peer's chain
starts with a block that bit-equals this one.
*/
func Genesis() Block {
	return Block{
		ID:           0,
		Hash:         GenesisHash,
		PreviousHash: "",
		Timestamp:    genesisTimestamp,
		Data:         rootBlockData(),
		Validator:    "",
		Signature:    "",
		Difficulty:   0,
	}
}

/*
genesisTimestamp is the creation instant baked into the shared genesis
constant; it is not recomputed, only reproduced, so every peer's
genesis block bit-equals every other peer's.
*/
const genesisTimestamp int64 = 1600000000
