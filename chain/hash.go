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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"devt.de/krotik/common/errorutil"
)

/*
CanonicalHash computes the block hash over id, timestamp, previous_hash,
data, validator and difficulty - explicitly excluding hash and signature.
Field order is pinned in canonicalBlockJSON; the data sub-object reproduces
the tagged-variant layout in the same fixed order. Two implementations
given identical field values MUST produce identical bytes here, or
cross-peer block validation breaks.
*/
func CanonicalHash(b Block) string {
	buf := canonicalBlockJSON(b)
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

func canonicalBlockJSON(b Block) []byte {
	var sb strings.Builder

	sb.WriteByte('{')
	sb.WriteString(`"id":`)
	fmt.Fprintf(&sb, "%d", b.ID)
	sb.WriteString(`,"timestamp":`)
	fmt.Fprintf(&sb, "%d", b.Timestamp)
	sb.WriteString(`,"previous_hash":`)
	sb.WriteString(jsonString(b.PreviousHash))
	sb.WriteString(`,"data":`)
	sb.WriteString(canonicalDataJSON(b.Data))
	sb.WriteString(`,"validator":`)
	sb.WriteString(jsonString(b.Validator))
	sb.WriteString(`,"difficulty":`)
	fmt.Fprintf(&sb, "%d", b.Difficulty)
	sb.WriteByte('}')

	return []byte(sb.String())
}

func canonicalDataJSON(d BlockData) string {
	var sb strings.Builder

	sb.WriteByte('{')
	sb.WriteString(`"tag":`)
	sb.WriteString(jsonString(string(d.Tag)))

	switch d.Tag {
	case TagEdgeData:
		sb.WriteString(`,"edge":{"from_id":`)
		sb.WriteString(jsonString(d.Edge.FromID))
		sb.WriteString(`,"to_id":`)
		sb.WriteString(jsonString(d.Edge.ToID))
		sb.WriteString(`,"weight":`)
		fmt.Fprintf(&sb, "%d", d.Edge.Weight)
		sb.WriteByte('}')
	case TagValidatorData:
		sb.WriteString(`,"validator":{"public_key":`)
		sb.WriteString(jsonString(d.Validator.PublicKey))
		sb.WriteString(`,"account_id":`)
		sb.WriteString(jsonString(d.Validator.AccountID))
		sb.WriteByte('}')
	}

	sb.WriteByte('}')
	return sb.String()
}

/*
jsonString quotes and escapes s the way encoding/json would, without
pulling in its map-ordering behaviour for the rest of the document.
*/
func jsonString(s string) string {
	out, err := json.Marshal(s)
	errorutil.AssertOk(err)
	return string(out)
}
