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

// Node-set serialization: a result renders as a concatenation of
// per-node XML fragments, two-space indented, without an XML
// declaration.

package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

const indentSpaces = 2

var attrEscaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// WriteFragments serializes each node of the set to w, one fragment
// per line.  Elements render as indented subtrees, text nodes as their
// content, attribute nodes as name="value".
func WriteFragments(w io.Writer, ns NodeSet) error {
	for _, node := range ns {
		if err := writeFragment(w, node); err != nil {
			return err
		}
	}
	return nil
}

// Fragments returns the serialized node-set as a string.
func Fragments(ns NodeSet) (string, error) {
	var b bytes.Buffer
	if err := WriteFragments(&b, ns); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeFragment(w io.Writer, node *Node) error {
	switch {
	case node.elem != nil:
		// Copy into a scratch document so indentation cannot disturb
		// the source tree.
		scratch := etree.NewDocument()
		scratch.SetRoot(node.elem.Copy())
		scratch.Indent(indentSpaces)
		var b bytes.Buffer
		if _, err := scratch.WriteTo(&b); err != nil {
			return err
		}
		frag := b.String()
		if !strings.HasSuffix(frag, "\n") {
			frag += "\n"
		}
		_, err := io.WriteString(w, frag)
		return err

	case node.char != nil:
		_, err := fmt.Fprintf(w, "%s\n", node.char.Data)
		return err

	default:
		_, err := fmt.Fprintf(w, "%s=\"%s\"\n",
			node.attr.Key, attrEscaper.Replace(node.attr.Value))
		return err
	}
}
