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
Package bootstrap seeds a fresh node with the baseline schema and
accounts every peer starts with: a User node type registered as an
agent, a Playlist node type with one seed playlist, and a locally
generated User account carrying this node's own wallet public key.
*/
package bootstrap

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/weightgraph/graph"
	"devt.de/krotik/weightgraph/query"
)

/*
seedCommands is the literal command sequence every node bootstraps
with, run through the same query.Parse/Executor path as stdin commands.
The account command is appended by Init once the local username and
wallet key are known.
*/
var seedCommands = []string{
	`define node User(name,premium,key) with agent(premium="true")`,
	`define node Playlist(name)`,
	`add node Playlist(name="Party Mix")`,
}

/*
Init runs the seed command sequence, followed by the local account
command, against ex. It panics if any of them fails. It does not handle
the --username{N}/--key{N} flags; ParseAccountFlags inserts those users.
*/
func Init(ex *query.Executor) {
	username := randomUsername()
	accountCmd := fmt.Sprintf(`add node User(name="%s",premium="true",key="%s")`, username, ex.Chain.PublicKey())

	for _, cmdText := range append(append([]string{}, seedCommands...), accountCmd) {
		cmd, err := query.Parse(cmdText)
		errorutil.AssertOk(err)

		if _, err := ex.Execute(cmd); err != nil {
			panic(fmt.Sprintf("bootstrap: failed to run seed command %q: %v", cmdText, err))
		}
	}
}

/*
InsertNode pre-seeds a User node identified by username, carrying key as
its public key attribute, inserted directly under "{username}:User" -
skipping both the User definition's attribute validation and the
add_node/add_or_update_agent path. This mirrors the original bootstrap's
insert_node: an intentional convenience for operator-supplied accounts,
not a bug to be "fixed" by routing them through AddNode.
*/
func InsertNode(gm *graph.Manager, username, key string) {
	gm.InsertRawNode("User", map[string]string{
		"$id":     username,
		"$name":   "User",
		"$edges":  "0",
		"premium": "true",
		"key":     key,
	})
}

/*
ParseAccountFlags pulls --username{N}/--key{N} (N in 1..3) pairs out of
the parsed flags and inserts one User node per pair where both values are
present and non-empty. lookup takes a long flag name (without "--") and
returns its value and whether it was set.
*/
func ParseAccountFlags(gm *graph.Manager, lookup func(name string) (string, bool)) {
	for n := 1; n <= 3; n++ {
		username, hasUsername := lookup(fmt.Sprintf("username%d", n))
		key, hasKey := lookup(fmt.Sprintf("key%d", n))

		if hasUsername && hasKey && username != "" && key != "" {
			InsertNode(gm, username, key)
		}
	}
}

func randomUsername() string {
	var b [4]byte
	_, err := rand.Read(b[:])
	errorutil.AssertOk(err)
	return hex.EncodeToString(b[:])
}
