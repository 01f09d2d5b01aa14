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
Package agent tracks which graph nodes qualify as agents (validators)
and the stake each carries. A node of a defined agent type qualifies
once every required attribute matches its condition value and it
carries a "key" attribute holding a hex-encoded public key; its stake
is the node's outgoing-edge count at the moment it (re-)qualifies.
*/
package agent

import (
	"sync"

	"devt.de/krotik/weightgraph/graph"
)

/*
KeyAttr is the reserved user attribute an agent-qualifying node must
carry: its hex-encoded public key.
*/
const KeyAttr = "key"

/*
Account is one qualifying node's recorded public key and stake.
*/
type Account struct {
	NodeType  string
	PublicKey string
	Stake     int
}

/*
Registry holds agent definitions (required attribute/value pairs per
node type) and the accounts of nodes currently qualifying under them.
*/
type Registry struct {
	mutex       sync.RWMutex
	definitions map[string]map[string]string
	accounts    map[string]Account
}

/*
NewRegistry creates an empty agent Registry.
*/
func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]map[string]string),
		accounts:    make(map[string]Account),
	}
}

/*
DefineAgent records the agent conditions for a node type. Called when a
"define node ... with agent(...)" command carries an agent clause.
*/
func (r *Registry) DefineAgent(nodeType string, conditions map[string]string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	cp := make(map[string]string, len(conditions))
	for k, v := range conditions {
		cp[k] = v
	}
	r.definitions[nodeType] = cp
}

/*
AddOrUpdateAgent re-evaluates whether the node identified by (nodeType,
id) qualifies as an agent and, if so, (re)registers its account with a
stake equal to its current outgoing-edge count. It returns
ErrNotQualifiedForAgent if the node's attributes do not match the
type's conditions, or ErrWrongAgentKey if it has no "key" attribute.
On any failure the id's existing account, if any, is retracted: a node
that stops qualifying must lose its stake, not keep whatever it last
registered.
*/
func (r *Registry) AddOrUpdateAgent(gm *graph.Manager, nodeType, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	conditions, defined := r.definitions[nodeType]
	if !defined {
		delete(r.accounts, id)
		return ErrWrongAgentIdentifier
	}

	attrs, err := gm.FindNode(nodeType, id)
	if err != nil {
		delete(r.accounts, id)
		return ErrWrongAgentIdentifier
	}

	for attr, want := range conditions {
		if got, ok := attrs[attr]; !ok || got != want {
			delete(r.accounts, id)
			return ErrNotQualifiedForAgent
		}
	}

	key, ok := attrs[KeyAttr]
	if !ok || key == "" {
		delete(r.accounts, id)
		return ErrWrongAgentKey
	}

	r.accounts[id] = Account{
		NodeType:  nodeType,
		PublicKey: key,
		Stake:     gm.EdgeCountOf(nodeType, id),
	}

	return nil
}

/*
RemoveAgent retracts the account registered for id, if any.
*/
func (r *Registry) RemoveAgent(id string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.accounts, id)
}

/*
StakeOf returns the registered stake for id, or 0 if it has none.
*/
func (r *Registry) StakeOf(id string) int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.accounts[id].Stake
}

/*
PublicKeyOf returns the registered public key for id, and whether id has
a registered account at all.
*/
func (r *Registry) PublicKeyOf(id string) (string, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	acc, ok := r.accounts[id]
	return acc.PublicKey, ok
}

/*
ValidatorStake sums the stake of every account whose stored public key
equals publicKey - several node ids may share one key.
*/
func (r *Registry) ValidatorStake(publicKey string) int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	total := 0
	for _, acc := range r.accounts {
		if acc.PublicKey == publicKey {
			total += acc.Stake
		}
	}
	return total
}
