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

// AST for the query dialect, as produced by the parser.  The three
// sorts (absolute path, relative path, filter) are sum types: each is
// an interface with one struct per production, and the evaluator
// dispatches by type switch.

package xpath

import (
	"fmt"
)

// AbsolutePath is a query rooted at a named document.
type AbsolutePath interface {
	absolutePath()
	String() string
}

// ApDoc selects the root element of a document: doc(F).
type ApDoc struct {
	File string
}

// ApChildren evaluates a relative path against the root: doc(F)/rp.
type ApChildren struct {
	File string
	Rel  RelativePath
}

// ApAll expands the root to descendants-or-self first: doc(F)//rp.
type ApAll struct {
	File string
	Rel  RelativePath
}

func (ApDoc) absolutePath()      {}
func (ApChildren) absolutePath() {}
func (ApAll) absolutePath()      {}

func (ap ApDoc) String() string { return fmt.Sprintf("doc(%q)", ap.File) }
func (ap ApChildren) String() string {
	return fmt.Sprintf("doc(%q)/%s", ap.File, ap.Rel)
}
func (ap ApAll) String() string {
	return fmt.Sprintf("doc(%q)//%s", ap.File, ap.Rel)
}

// RelativePath transforms a context node-set into a new one.
type RelativePath interface {
	relativePath()
	String() string
}

// RpTag selects children with the given element name.
type RpTag struct {
	Name string
}

// RpWildcard selects all children: '*'.
type RpWildcard struct{}

// RpCurrent is the identity step: '.'.
type RpCurrent struct{}

// RpParent steps to each node's parent: '..'.
type RpParent struct{}

// RpText selects direct text children: text().
type RpText struct{}

// RpAttribute selects the named attribute: '@name'.
type RpAttribute struct {
	Name string
}

// RpParen is an explicitly grouped sub-path: '(rp)'.
type RpParen struct {
	Rel RelativePath
}

// RpStep is the path step rp1/rp2.
type RpStep struct {
	First RelativePath
	Next  RelativePath
}

// RpStepAll is the descendant step rp1//rp2.
type RpStepAll struct {
	First RelativePath
	Next  RelativePath
}

// RpFilter keeps the nodes of Rel for which Cond holds: rp[f].
type RpFilter struct {
	Rel  RelativePath
	Cond Filter
}

// RpPair concatenates two evaluations of the same context: rp1,rp2.
type RpPair struct {
	Left  RelativePath
	Right RelativePath
}

func (RpTag) relativePath()       {}
func (RpWildcard) relativePath()  {}
func (RpCurrent) relativePath()   {}
func (RpParent) relativePath()    {}
func (RpText) relativePath()      {}
func (RpAttribute) relativePath() {}
func (RpParen) relativePath()     {}
func (RpStep) relativePath()      {}
func (RpStepAll) relativePath()   {}
func (RpFilter) relativePath()    {}
func (RpPair) relativePath()      {}

func (rp RpTag) String() string       { return rp.Name }
func (RpWildcard) String() string     { return "*" }
func (RpCurrent) String() string      { return "." }
func (RpParent) String() string       { return ".." }
func (RpText) String() string         { return "text()" }
func (rp RpAttribute) String() string { return "@" + rp.Name }
func (rp RpParen) String() string     { return "(" + rp.Rel.String() + ")" }
func (rp RpStep) String() string {
	return fmt.Sprintf("%s/%s", rp.First, rp.Next)
}
func (rp RpStepAll) String() string {
	return fmt.Sprintf("%s//%s", rp.First, rp.Next)
}
func (rp RpFilter) String() string {
	return fmt.Sprintf("%s[%s]", rp.Rel, rp.Cond)
}
func (rp RpPair) String() string {
	return fmt.Sprintf("%s,%s", rp.Left, rp.Right)
}

// Filter is a predicate over a single-element context.
type Filter interface {
	filter()
	String() string
}

// FltExists is truthy iff the path yields a non-empty set.
type FltExists struct {
	Rel RelativePath
}

// FltValueEq is the structural comparison rp1 = rp2 (alias 'eq').
type FltValueEq struct {
	Left  RelativePath
	Right RelativePath
}

// FltIdentityEq is the identity comparison rp1 == rp2 (alias 'is').
type FltIdentityEq struct {
	Left  RelativePath
	Right RelativePath
}

// FltParen is an explicitly grouped filter: '(f)'.
type FltParen struct {
	Cond Filter
}

// FltAnd is the conjunction f1 and f2.
type FltAnd struct {
	Left  Filter
	Right Filter
}

// FltOr is the disjunction f1 or f2.
type FltOr struct {
	Left  Filter
	Right Filter
}

// FltNot negates a filter.
type FltNot struct {
	Cond Filter
}

func (FltExists) filter()     {}
func (FltValueEq) filter()    {}
func (FltIdentityEq) filter() {}
func (FltParen) filter()      {}
func (FltAnd) filter()        {}
func (FltOr) filter()         {}
func (FltNot) filter()        {}

func (f FltExists) String() string { return f.Rel.String() }
func (f FltValueEq) String() string {
	return fmt.Sprintf("%s = %s", f.Left, f.Right)
}
func (f FltIdentityEq) String() string {
	return fmt.Sprintf("%s == %s", f.Left, f.Right)
}
func (f FltParen) String() string { return "(" + f.Cond.String() + ")" }
func (f FltAnd) String() string {
	return fmt.Sprintf("%s and %s", f.Left, f.Right)
}
func (f FltOr) String() string {
	return fmt.Sprintf("%s or %s", f.Left, f.Right)
}
func (f FltNot) String() string { return "not " + f.Cond.String() }
