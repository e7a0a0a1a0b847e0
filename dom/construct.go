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

// Synthetic element construction, used by the XQuery layer to build
// result elements from evaluated node-sets.

package dom

import (
	"fmt"

	"github.com/beevik/etree"
)

// BuildElement creates a fresh single-element document named tag whose
// content is a deep copy of the given nodes, and returns its root.
// Element children are copied as subtrees, text nodes as character
// data, attribute nodes as attributes on the new element.  The source
// documents are left untouched.
func BuildElement(tag string, content NodeSet) (*Node, error) {
	if tag == "" {
		return nil, fmt.Errorf("cannot construct element without a tag")
	}

	tree := etree.NewDocument()
	root := tree.CreateElement(tag)

	for _, node := range content {
		switch {
		case node.elem != nil:
			root.AddChild(node.elem.Copy())
		case node.char != nil:
			root.CreateText(node.char.Data)
		default:
			root.CreateAttr(node.attr.Key, node.attr.Value)
		}
	}

	doc := &Document{ref: fmt.Sprintf("constructed:%s", tag), tree: tree}
	return doc.Root(), nil
}
