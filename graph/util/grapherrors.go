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
Package util contains the graph store's error type and sentinel error
values.

GraphError

Models a graph related error. Errors returned by the graph package are
always wrapped in a GraphError so that callers can compare against the
sentinel Type with errors.Is while still getting a Detail string (the
offending node type, id or attribute name) for diagnostics.
*/
package util

import (
	"errors"
	"fmt"
)

/*
GraphError is a graph related error
*/
type GraphError struct {
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
}

/*
Error returns a human-readable string representation of this error.
*/
func (ge *GraphError) Error() string {
	if ge.Detail != "" {
		return fmt.Sprintf("GraphError: %v (%v)", ge.Type, ge.Detail)
	}

	return fmt.Sprintf("GraphError: %v", ge.Type)
}

/*
Unwrap lets errors.Is(err, util.ErrNodeNotFound) see through a *GraphError.
*/
func (ge *GraphError) Unwrap() error {
	return ge.Type
}

/*
Graph store related error types
*/
var (
	ErrNodeNotDefined      = errors.New("Node type is not defined")
	ErrNodeAlreadyExists   = errors.New("Node type already exists")
	ErrNodeNotFound        = errors.New("Node was not found")
	ErrAttributeNotAllowed = errors.New("Attribute is not allowed")
	ErrAttributeIsRequired = errors.New("Attribute is required")
	ErrEdgeAlreadyExists   = errors.New("Edge already exists")
	ErrEdgeNotFound        = errors.New("Edge was not found")
)
