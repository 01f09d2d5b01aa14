/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package graph

import "devt.de/krotik/weightgraph/graph/util"

var (
	errNodeNotDefined      = util.ErrNodeNotDefined
	errNodeAlreadyExists   = util.ErrNodeAlreadyExists
	errNodeNotFound        = util.ErrNodeNotFound
	errAttributeNotAllowed = util.ErrAttributeNotAllowed
	errAttributeIsRequired = util.ErrAttributeIsRequired
	errEdgeAlreadyExists   = util.ErrEdgeAlreadyExists
	errEdgeNotFound        = util.ErrEdgeNotFound
)

func newGraphError(t error, detail string) *util.GraphError {
	return &util.GraphError{Type: t, Detail: detail}
}
