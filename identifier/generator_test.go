/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package identifier

import "testing"

func TestGenerateIsUniqueAndWellFormed(t *testing.T) {
	g := NewGenerator()

	a := g.Generate()
	b := g.Generate()

	if a == b {
		t.Error("Expected two distinct identifiers")
	}

	if len(a) != 32 {
		t.Error("Expected a 32-character hex-encoded UUID, got length", len(a))
	}

	if a[12] != '4' {
		t.Error("Expected UUID version nibble 4, got", string(a[12]))
	}

	switch a[16] {
	case '8', '9', 'a', 'b':
	default:
		t.Error("Expected UUID variant nibble 8-b, got", string(a[16]))
	}
}
