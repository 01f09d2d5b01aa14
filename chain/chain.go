/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package chain implements the replicated block log: a genesis-anchored
sequence of signed blocks, stake-gated validation, and the
longest-valid-chain replacement rule. A Chain owns its block vector, a
Wallet to sign the blocks it mints, and a reference to the agent
registry it consults for validator stake.
*/
package chain

import (
	"sync"
	"time"

	"devt.de/krotik/common/logutil"
	"devt.de/krotik/weightgraph/agent"
	"devt.de/krotik/weightgraph/chain/wallet"
	"devt.de/krotik/weightgraph/graph"
)

var chainLog = logutil.GetLogger("chain")

/*
Chain is the local block log.
*/
type Chain struct {
	mutex    sync.RWMutex
	blocks   []Block
	wallet   *wallet.Wallet
	registry *agent.Registry
}

/*
New creates a Chain seeded with the shared genesis block, a fresh wallet
and the given agent registry.
*/
func New(registry *agent.Registry) *Chain {
	return &Chain{
		blocks:   []Block{Genesis()},
		wallet:   wallet.New(),
		registry: registry,
	}
}

/*
PublicKey returns this node's wallet public key, hex-encoded.
*/
func (c *Chain) PublicKey() string {
	return c.wallet.PublicKey()
}

/*
Blocks returns a copy of the local chain.
*/
func (c *Chain) Blocks() []Block {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

/*
Len returns the number of blocks in the local chain.
*/
func (c *Chain) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.blocks)
}

/*
AddNewBlock validates b against the current tip and, on success, appends
it to the local chain.
*/
func (c *Chain) AddNewBlock(b Block) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	prev := c.blocks[len(c.blocks)-1]
	if err := c.validateBlock(b, prev); err != nil {
		chainLog.Warning("rejected block ", b.ID, ": ", err)
		return err
	}

	c.blocks = append(c.blocks, b)
	chainLog.Info("accepted block ", b.ID, " from validator ", b.Validator)
	return nil
}

/*
validateBlock enforces, in order: previous-hash linkage, sequential id,
recomputed hash, signature (distinguishing a validator decode failure
from a signature mismatch), and stake-gated difficulty. Callers must
hold c.mutex.
*/
func (c *Chain) validateBlock(b, prev Block) error {
	detail := blockIDDetail(b.ID)

	if b.PreviousHash != prev.Hash {
		return newChainError(ErrBlockHasWrongPreviousHashValue, detail)
	}

	if b.ID != prev.ID+1 {
		return newChainError(ErrBlockIsNotNextBlockInSequence, detail)
	}

	if CanonicalHash(b) != b.Hash {
		return newChainError(ErrBlockHasWrongHashValue, detail)
	}

	decodeErr, valid := wallet.Verify(b.Validator, b.Hash, b.Signature)
	if decodeErr != nil {
		return newChainError(ErrBlockHasWrongValidatorValue, detail)
	}
	if !valid {
		return newChainError(ErrBlockHasWrongSignatureValue, detail)
	}

	if c.registry.ValidatorStake(b.Validator) < b.Difficulty {
		return newChainError(ErrBlockHasWrongDifficultyValue, detail)
	}

	return nil
}

/*
ValidateChain checks that candidate starts with the exact genesis
constant and that every subsequent block links to its predecessor by
hash and sequential id. Per-block hash/signature/stake re-validation is
deliberately not performed here; see ReplaceChain's doc comment.
*/
func ValidateChain(candidate []Block) error {
	if len(candidate) == 0 || candidate[0] != Genesis() {
		return newChainError(ErrChainHasInvalidGenesisBlock, "")
	}

	for i := 1; i < len(candidate); i++ {
		b, prev := candidate[i], candidate[i-1]
		detail := blockIDDetail(b.ID)

		if b.PreviousHash != prev.Hash {
			return newChainError(ErrBlockHasWrongPreviousHashValue, detail)
		}
		if b.ID != prev.ID+1 {
			return newChainError(ErrBlockIsNotNextBlockInSequence, detail)
		}
	}

	return nil
}

/*
ReplaceChain validates candidate and, only if it is strictly longer than
the local chain, replaces the local chain with it.

Design note: validate_chain here checks only link/sequence, not
per-block hash/signature/stake - candidate blocks may reference
validators whose stake this peer cannot independently confirm. A strict
implementation SHOULD re-validate each block end-to-end; this is left
as specified (an open question, not resolved in either direction) so a
longer, structurally-valid chain from a peer is not rejected purely
because this peer lacks visibility into that peer's registrations.
*/
func (c *Chain) ReplaceChain(candidate []Block) error {
	if err := ValidateChain(candidate); err != nil {
		chainLog.Warning("rejected replacement chain: ", err)
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if len(candidate) <= len(c.blocks) {
		chainLog.Warning("rejected replacement chain of length ", len(candidate),
			": not longer than local chain of length ", len(c.blocks))
		return newChainError(ErrChainSizeIsNotLongerThanLocalChain, "")
	}

	chainLog.Info("replaced local chain (", len(c.blocks), " blocks) with replicated chain (",
		len(candidate), " blocks)")
	c.blocks = append([]Block(nil), candidate...)
	return nil
}

/*
AddEdgeChange mints a block recording an edge create, update or delete
(delete is encoded as weight 0), signs it with this node's wallet at a
difficulty equal to fromID's current stake, and appends it.
*/
func (c *Chain) AddEdgeChange(fromID, toID string, weight int8) error {
	return c.mintAndAppend(NewEdgeBlockData(fromID, toID, weight), c.registry.StakeOf(fromID))
}

/*
AddOrUpdateAgent delegates to the agent registry. If the node now
qualifies as an agent and its registered public key equals this node's
own wallet public key, a ValidatorData block recording the registration
is minted and appended at the freshly computed stake.
*/
func (c *Chain) AddOrUpdateAgent(gm *graph.Manager, nodeType, id string) error {
	if err := c.registry.AddOrUpdateAgent(gm, nodeType, id); err != nil {
		return wrapAgentError(err, id, nodeType)
	}

	publicKey, ok := c.registry.PublicKeyOf(id)
	if !ok || publicKey != c.wallet.PublicKey() {
		return nil
	}

	stake := c.registry.StakeOf(id)
	return c.mintAndAppend(NewValidatorBlockData(c.wallet.PublicKey(), id), stake)
}

/*
mintAndAppend builds a block over data at the given difficulty, signs it
with this node's wallet, and appends it to the local chain.
*/
func (c *Chain) mintAndAppend(data BlockData, difficulty int) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	prev := c.blocks[len(c.blocks)-1]

	b := Block{
		ID:           prev.ID + 1,
		PreviousHash: prev.Hash,
		Timestamp:    time.Now().Unix(),
		Data:         data,
		Validator:    c.wallet.PublicKey(),
		Difficulty:   difficulty,
	}
	b.Hash = CanonicalHash(b)
	b.Signature = c.wallet.Sign(b.Hash)

	if err := c.validateBlock(b, prev); err != nil {
		return err
	}

	c.blocks = append(c.blocks, b)
	return nil
}
