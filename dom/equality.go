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

// Deep structural equality over nodes.  This is deliberately NOT
// string-value comparison: two nodes are equal iff their subtrees
// coincide (tag, attribute set, children in order, text content).

package dom

// StructuralEqual reports deep value equality of two nodes.  Nodes of
// different kinds are never equal.  Attribute order is insignificant;
// child order is significant.
func StructuralEqual(a, b *Node) bool {
	switch {
	case a.char != nil:
		return b.char != nil && a.char.Data == b.char.Data

	case a.attr != nil:
		return b.attr != nil &&
			a.attr.Key == b.attr.Key && a.attr.Value == b.attr.Value

	default:
		if b.elem == nil {
			return false
		}
		return elementsEqual(a, b)
	}
}

func elementsEqual(a, b *Node) bool {
	if a.elem.Tag != b.elem.Tag {
		return false
	}

	if !attrsEqual(a, b) {
		return false
	}

	aKids, bKids := a.Children(), b.Children()
	if len(aKids) != len(bKids) {
		return false
	}
	for i := range aKids {
		if !StructuralEqual(aKids[i], bKids[i]) {
			return false
		}
	}

	return true
}

func attrsEqual(a, b *Node) bool {
	if len(a.elem.Attr) != len(b.elem.Attr) {
		return false
	}
	for _, attr := range a.elem.Attr {
		other := b.elem.SelectAttr(attr.Key)
		if other == nil || other.Value != attr.Value {
			return false
		}
	}
	return true
}
