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
	"errors"
	"fmt"
	"strconv"

	"devt.de/krotik/weightgraph/agent"
)

/*
ChainError is a chain-level error: one of the sentinel Types below
paired with a detail string (a block id or agent identifier).
*/
type ChainError struct {
	Type   error
	Detail string
}

func (ce *ChainError) Error() string {
	if ce.Detail == "" {
		return ce.Type.Error()
	}
	return fmt.Sprintf("%s (%s)", ce.Type.Error(), ce.Detail)
}

func (ce *ChainError) Unwrap() error {
	return ce.Type
}

func newChainError(t error, detail string) *ChainError {
	return &ChainError{Type: t, Detail: detail}
}

/*
blockIDDetail formats a block id for use as a ChainError detail string.
*/
func blockIDDetail(id uint64) string {
	return strconv.FormatUint(id, 10)
}

/*
wrapAgentError translates an agent.Registry error into the matching
ChainError, attaching id or nodeType as the detail depending on which
the original_source variant names.
*/
func wrapAgentError(err error, id, nodeType string) error {
	switch {
	case errors.Is(err, agent.ErrNotQualifiedForAgent):
		return newChainError(ErrNotQualifiedForAgent, id)
	case errors.Is(err, agent.ErrWrongAgentIdentifier):
		return newChainError(ErrWrongAgentIdentifier, id)
	case errors.Is(err, agent.ErrWrongAgentKey):
		return newChainError(ErrWrongAgentKey, nodeType)
	default:
		return err
	}
}

/*
Sentinel chain error types, named after original_source's ChainError
variants.
*/
var (
	ErrBlockHasWrongDifficultyValue    = errors.New("Block has invalid difficulty")
	ErrBlockHasWrongHashValue          = errors.New("Block has invalid hash")
	ErrBlockHasWrongPreviousHashValue  = errors.New("Block has invalid previous hash")
	ErrBlockHasWrongSignatureValue     = errors.New("Block has invalid signature")
	ErrBlockHasWrongValidatorValue     = errors.New("Block has invalid validator")
	ErrBlockIsNotNextBlockInSequence   = errors.New("Block is not the next block in the sequence")
	ErrChainHasInvalidGenesisBlock     = errors.New("Chain has invalid genesis block")
	ErrChainSizeIsNotLongerThanLocalChain = errors.New("Chain size is not longer than local chain")
	ErrNotQualifiedForAgent            = errors.New("Item is not qualified to be an agent")
	ErrWrongAgentIdentifier            = errors.New("Agent with identifier does not exist or is not valid")
	ErrWrongAgentKey                   = errors.New("Agent must have key attribute defined")
)
