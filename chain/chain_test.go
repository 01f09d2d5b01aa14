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

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devt.de/krotik/weightgraph/agent"
	"devt.de/krotik/weightgraph/chain/wallet"
	"devt.de/krotik/weightgraph/graph"
)

func newTestChain() (*Chain, *agent.Registry) {
	registry := agent.NewRegistry()
	return New(registry), registry
}

func mintBlock(t *testing.T, c *Chain, w *wallet.Wallet, prev Block, data BlockData, difficulty int) Block {
	t.Helper()

	b := Block{
		ID:           prev.ID + 1,
		PreviousHash: prev.Hash,
		Timestamp:    time.Now().Unix(),
		Data:         data,
		Validator:    w.PublicKey(),
		Difficulty:   difficulty,
	}
	b.Hash = CanonicalHash(b)
	b.Signature = w.Sign(b.Hash)
	return b
}

func TestAddNewBlockAcceptsValidBlock(t *testing.T) {
	c, _ := newTestChain()
	gen := Genesis()

	b := mintBlock(t, c, walletOf(c), gen, NewEdgeBlockData("a", "b", 10), 0)

	require.NoError(t, c.AddNewBlock(b))
	assert.Equal(t, 2, c.Len())
}

func TestAddNewBlockRejectsWrongPreviousHash(t *testing.T) {
	c, _ := newTestChain()
	gen := Genesis()
	gen.Hash = "tampered"

	b := mintBlock(t, c, walletOf(c), gen, NewEdgeBlockData("a", "b", 10), 0)

	err := c.AddNewBlock(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBlockHasWrongPreviousHashValue)
}

func TestAddNewBlockRejectsWrongSequence(t *testing.T) {
	c, _ := newTestChain()
	gen := Genesis()

	b := mintBlock(t, c, walletOf(c), gen, NewEdgeBlockData("a", "b", 10), 0)
	b.ID = 5
	b.Hash = CanonicalHash(b)
	b.Signature = walletOf(c).Sign(b.Hash)

	err := c.AddNewBlock(b)
	assert.ErrorIs(t, err, ErrBlockIsNotNextBlockInSequence)
}

func TestAddNewBlockRejectsWrongHash(t *testing.T) {
	c, _ := newTestChain()
	gen := Genesis()

	b := mintBlock(t, c, walletOf(c), gen, NewEdgeBlockData("a", "b", 10), 0)
	b.Hash = "0000000000000000000000000000000000000000000000000000000000000"

	err := c.AddNewBlock(b)
	assert.ErrorIs(t, err, ErrBlockHasWrongHashValue)
}

func TestAddNewBlockRejectsWrongSignature(t *testing.T) {
	c, _ := newTestChain()
	gen := Genesis()

	b := mintBlock(t, c, walletOf(c), gen, NewEdgeBlockData("a", "b", 10), 0)
	other := wallet.New()
	b.Signature = other.Sign(b.Hash)

	err := c.AddNewBlock(b)
	assert.ErrorIs(t, err, ErrBlockHasWrongSignatureValue)
}

func TestAddNewBlockRejectsUndecodableValidator(t *testing.T) {
	c, _ := newTestChain()
	gen := Genesis()

	b := mintBlock(t, c, walletOf(c), gen, NewEdgeBlockData("a", "b", 10), 0)
	b.Validator = "not-hex-at-all!!"
	b.Hash = CanonicalHash(b)

	err := c.AddNewBlock(b)
	assert.ErrorIs(t, err, ErrBlockHasWrongValidatorValue)
}

func TestAddNewBlockRejectsInsufficientStake(t *testing.T) {
	c, _ := newTestChain()
	gen := Genesis()

	b := mintBlock(t, c, walletOf(c), gen, NewEdgeBlockData("a", "b", 10), 5)

	err := c.AddNewBlock(b)
	assert.ErrorIs(t, err, ErrBlockHasWrongDifficultyValue)
}

func TestValidateChainRejectsTamperedGenesis(t *testing.T) {
	candidate := []Block{Genesis()}
	candidate[0].Difficulty = 1

	err := ValidateChain(candidate)
	assert.ErrorIs(t, err, ErrChainHasInvalidGenesisBlock)
}

func TestValidateChainAcceptsLinkedSequence(t *testing.T) {
	c, _ := newTestChain()
	gen := Genesis()
	b1 := mintBlock(t, c, walletOf(c), gen, NewEdgeBlockData("a", "b", 10), 0)

	assert.NoError(t, ValidateChain([]Block{gen, b1}))
}

func TestReplaceChainRejectsNonLonger(t *testing.T) {
	c, _ := newTestChain()
	candidate := []Block{Genesis()}

	err := c.ReplaceChain(candidate)
	assert.ErrorIs(t, err, ErrChainSizeIsNotLongerThanLocalChain)
}

func TestReplaceChainAcceptsLongerValidChain(t *testing.T) {
	c, _ := newTestChain()
	gen := Genesis()
	b1 := mintBlock(t, c, walletOf(c), gen, NewEdgeBlockData("a", "b", 10), 0)

	require.NoError(t, c.ReplaceChain([]Block{gen, b1}))
	assert.Equal(t, 2, c.Len())
}

func TestAddEdgeChangeMintsBlock(t *testing.T) {
	c, registry := newTestChain()
	registry.DefineAgent("Person", map[string]string{})

	require.NoError(t, c.AddEdgeChange("from-id", "to-id", 25))

	blocks := c.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, TagEdgeData, blocks[1].Data.Tag)
	assert.Equal(t, "from-id", blocks[1].Data.Edge.FromID)
	assert.EqualValues(t, 25, blocks[1].Data.Edge.Weight)
}

func TestAddOrUpdateAgentMintsValidatorBlockForSelf(t *testing.T) {
	gm := graph.NewManager()
	gm.Define("User", []string{"key"})
	added, err := gm.AddNode("User", map[string]string{"key": "will-be-overwritten"})
	require.NoError(t, err)
	id := added[0]["$id"]

	c, registry := newTestChain()
	registry.DefineAgent("User", map[string]string{})

	gm.UpdateNode("User", map[string]string{"$id": id, "key": c.PublicKey()})

	require.NoError(t, c.AddOrUpdateAgent(gm, "User", id))

	blocks := c.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, TagValidatorData, blocks[1].Data.Tag)
	assert.Equal(t, c.PublicKey(), blocks[1].Data.Validator.PublicKey)
	assert.Equal(t, id, blocks[1].Data.Validator.AccountID)
}

func TestAddOrUpdateAgentDoesNotMintForOtherValidator(t *testing.T) {
	gm := graph.NewManager()
	gm.Define("User", []string{"key"})
	added, err := gm.AddNode("User", map[string]string{"key": "someone-elses-public-key"})
	require.NoError(t, err)
	id := added[0]["$id"]

	c, registry := newTestChain()
	registry.DefineAgent("User", map[string]string{})

	require.NoError(t, c.AddOrUpdateAgent(gm, "User", id))
	assert.Equal(t, 1, c.Len())
}

func TestAddOrUpdateAgentSurfacesRegistryErrors(t *testing.T) {
	gm := graph.NewManager()
	c, registry := newTestChain()
	registry.DefineAgent("User", map[string]string{})

	err := c.AddOrUpdateAgent(gm, "User", "does-not-exist")
	assert.ErrorIs(t, err, ErrWrongAgentIdentifier)
}

func walletOf(c *Chain) *wallet.Wallet {
	return c.wallet
}
