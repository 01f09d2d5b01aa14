/*
 * weightgraph
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package agent

import "errors"

var (
	ErrNotQualifiedForAgent = errors.New("node does not qualify as an agent")
	ErrWrongAgentIdentifier = errors.New("agent does not exist or is not valid")
	ErrWrongAgentKey        = errors.New("agent node has no key attribute")
)
