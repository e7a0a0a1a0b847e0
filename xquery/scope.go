// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xquery

import (
	"github.com/sdcio/xml-query/dom"
)

// scope is one variable binding in a lexical chain.  Lookup walks
// outwards, so inner bindings shadow outer ones of the same name.
type scope struct {
	parent *scope
	name   string
	value  dom.NodeSet
}

func (s *scope) bind(name string, value dom.NodeSet) *scope {
	return &scope{parent: s, name: name, value: value}
}

func (s *scope) lookup(name string) (dom.NodeSet, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.name == name {
			return sc.value, true
		}
	}
	return nil, false
}
