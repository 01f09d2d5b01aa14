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
Package wallet holds a node's ed25519 signing key and signs block hashes
on its behalf. Signing-key storage is a spec.md non-goal (§1); Wallet
keeps the key in memory only, generated fresh at process start the way
original_source's Wallet::default() does.
*/
package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"

	"devt.de/krotik/common/errorutil"
)

/*
Wallet holds a single ed25519 key pair.
*/
type Wallet struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

/*
New generates a fresh ed25519 key pair.
*/
func New() *Wallet {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	errorutil.AssertOk(err)

	return &Wallet{priv: priv, pub: pub}
}

/*
PublicKey returns the hex-encoded public key of this wallet.
*/
func (w *Wallet) PublicKey() string {
	return hex.EncodeToString(w.pub)
}

/*
Sign signs the UTF-8 bytes of hash and returns the hex-encoded signature.
*/
func (w *Wallet) Sign(hash string) string {
	sig := ed25519.Sign(w.priv, []byte(hash))
	return hex.EncodeToString(sig)
}

/*
Verify checks that signature is a valid ed25519 signature over the UTF-8
bytes of hash under the hex-encoded public key. It reports a decode
failure separately from a signature mismatch so callers can distinguish
BlockHasWrongValidatorValue from BlockHasWrongSignatureValue.
*/
func Verify(publicKeyHex, hash, signatureHex string) (decodeErr error, valid bool) {
	pub, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return errInvalidKey, false
	}

	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return nil, false
	}

	return nil, ed25519.Verify(ed25519.PublicKey(pub), []byte(hash), sig)
}
