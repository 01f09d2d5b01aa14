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

import "strings"

/*
validateAttrs checks a candidate attribute map against the definition for
name and a set of internal attributes explicitly permitted (e.g. $id on
update/delete). Callers must hold gm.mutex.

The rules, in order, follow spec.md §4.1.1:
  - the definition for name must exist,
  - every key starting with '$' must be in the internal set,
  - every key not starting with '$' must be declared on the definition,
  - every internal attribute in the permitted set must be present in attrs.
*/
func (gm *Manager) validateAttrs(name string, attrs map[string]string, internal []string) error {
	def := gm.definition(name)
	if def == nil {
		return newGraphError(errNodeNotDefined, name)
	}

	for k := range attrs {
		if strings.HasPrefix(k, "$") {
			if !containsStr(internal, k) {
				return newGraphError(errAttributeNotAllowed, k)
			}
			continue
		}
		if !def.HasAttr(k) {
			return newGraphError(errAttributeNotAllowed, k)
		}
	}

	for _, k := range internal {
		if _, ok := attrs[k]; !ok {
			return newGraphError(errAttributeIsRequired, k)
		}
	}

	return nil
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
