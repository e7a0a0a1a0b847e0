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

// This file implements the Node handle, presenting a parsed XML document
// as a navigable immutable tree.  A handle wraps exactly one underlying
// etree token (element, character data or attribute) and stays valid for
// as long as the owning Document is held.

package dom

import (
	"fmt"

	"github.com/beevik/etree"
)

// Sentinel names returned by Tag() for non-element nodes.  '#' cannot
// start an XML Name, so these can never collide with a real tag.
const (
	TextTag = "#text"
	AttrTag = "#attr"
)

// Node is a non-owning handle to a node inside a Document.  Exactly one
// of elem, char and attr is set.
type Node struct {
	doc  *Document
	elem *etree.Element
	char *etree.CharData
	attr *etree.Attr

	// Owning element for attribute nodes.  etree stores attributes by
	// value inside their element, so the parent link is kept here.
	owner *etree.Element
}

func newElemNode(doc *Document, elem *etree.Element) *Node {
	return &Node{doc: doc, elem: elem}
}

func newTextNode(doc *Document, char *etree.CharData) *Node {
	return &Node{doc: doc, char: char}
}

func newAttrNode(doc *Document, attr *etree.Attr, owner *etree.Element) *Node {
	return &Node{doc: doc, attr: attr, owner: owner}
}

func (n *Node) IsElement() bool { return n.elem != nil }
func (n *Node) IsText() bool    { return n.char != nil }
func (n *Node) IsAttr() bool    { return n.attr != nil }

// Document returns the document that owns the node.
func (n *Node) Document() *Document { return n.doc }

// Tag returns the local element name, or a sentinel for non-element
// nodes.
func (n *Node) Tag() string {
	switch {
	case n.elem != nil:
		return n.elem.Tag
	case n.char != nil:
		return TextTag
	default:
		return AttrTag
	}
}

// Value returns the text content of a text node or the value of an
// attribute node.  Elements have no direct value.
func (n *Node) Value() string {
	switch {
	case n.char != nil:
		return n.char.Data
	case n.attr != nil:
		return n.attr.Value
	default:
		return ""
	}
}

// Children returns the element and character-data children in document
// order.  Non-element nodes have no children.  Comments, processing
// instructions and directives are not part of the data model and are
// skipped.
func (n *Node) Children() NodeSet {
	if n.elem == nil {
		return nil
	}

	var children NodeSet
	for _, tok := range n.elem.Child {
		switch c := tok.(type) {
		case *etree.Element:
			children = append(children, newElemNode(n.doc, c))
		case *etree.CharData:
			children = append(children, newTextNode(n.doc, c))
		}
	}
	return children
}

// Parent returns a one-element set holding the parent, or an empty set
// for the document root.  An attribute's parent is its owning element.
func (n *Node) Parent() NodeSet {
	switch {
	case n.attr != nil:
		return NodeSet{newElemNode(n.doc, n.owner)}

	case n.char != nil:
		if p := n.char.Parent(); p != nil && !n.doc.isDocElem(p) {
			return NodeSet{newElemNode(n.doc, p)}
		}
		return nil

	default:
		if p := n.elem.Parent(); p != nil && !n.doc.isDocElem(p) {
			return NodeSet{newElemNode(n.doc, p)}
		}
		return nil
	}
}

// Text returns the direct character-data children in document order.
func (n *Node) Text() NodeSet {
	if n.elem == nil {
		return nil
	}

	var texts NodeSet
	for _, tok := range n.elem.Child {
		if c, ok := tok.(*etree.CharData); ok {
			texts = append(texts, newTextNode(n.doc, c))
		}
	}
	return texts
}

// Attributes returns a single-element set containing the named
// attribute node if present; empty otherwise.
func (n *Node) Attributes(name string) NodeSet {
	if n.elem == nil {
		return nil
	}
	if attr := n.elem.SelectAttr(name); attr != nil {
		return NodeSet{newAttrNode(n.doc, attr, n.elem)}
	}
	return nil
}

// identity is the map key used for identity comparison and dedup.  The
// wrapped etree pointers are stable for the lifetime of the document,
// so pointer equality is node identity.
func (n *Node) identity() interface{} {
	switch {
	case n.elem != nil:
		return n.elem
	case n.char != nil:
		return n.char
	default:
		return n.attr
	}
}

// SameIdentity reports whether two handles refer to the same node in
// the same document.
func SameIdentity(a, b *Node) bool {
	return a.doc == b.doc && a.identity() == b.identity()
}

// Pretty-print a node for debug and trace output.
func (n *Node) String() string {
	switch {
	case n.elem != nil:
		return fmt.Sprintf("<%s>", n.elem.Tag)
	case n.char != nil:
		return fmt.Sprintf("%s(%q)", TextTag, n.char.Data)
	default:
		return fmt.Sprintf("@%s=%q", n.attr.Key, n.attr.Value)
	}
}
