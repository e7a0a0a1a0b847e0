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

// AST for the FLWR layer.  Like the core, this package consumes a
// validated tree; the FLWR parser belongs to the outer system.  The
// clause forms nest: each for/let/where wraps the expression evaluated
// under its binding, which keeps variable scoping lexical by
// construction.

package xquery

import (
	"fmt"

	"github.com/sdcio/xml-query/xpath"
)

// Expr is an XQuery expression evaluating to a node-set.
type Expr interface {
	expr()
	String() string
}

// Var references a bound variable: $name.
type Var struct {
	Name string
}

// Absolute evaluates an absolute path through the core evaluator.
type Absolute struct {
	Path xpath.AbsolutePath
}

// Relative applies a relative path to the result of a base expression:
// $x/rp.
type Relative struct {
	Base Expr
	Path xpath.RelativePath
}

// For binds Var to each node of In in turn and concatenates the Body
// evaluations in binding order.
type For struct {
	Var  string
	In   Expr
	Body Expr
}

// Let binds Var to the whole of Value and evaluates Body once.
type Let struct {
	Var   string
	Value Expr
	Body  Expr
}

// Where evaluates Body only when Cond holds; otherwise it is the empty
// sequence.
type Where struct {
	Cond Cond
	Body Expr
}

// Elem constructs a fresh element named Tag holding copies of the
// body's nodes: <tag>{body}</tag>.
type Elem struct {
	Tag  string
	Body Expr
}

// Sequence concatenates its items in order.  Not a dedup point, like
// the core's pair production.
type Sequence struct {
	Items []Expr
}

func (Var) expr()      {}
func (Absolute) expr() {}
func (Relative) expr() {}
func (For) expr()      {}
func (Let) expr()      {}
func (Where) expr()    {}
func (Elem) expr()     {}
func (Sequence) expr() {}

func (e Var) String() string      { return "$" + e.Name }
func (e Absolute) String() string { return e.Path.String() }
func (e Relative) String() string {
	return fmt.Sprintf("%s/%s", e.Base, e.Path)
}
func (e For) String() string {
	return fmt.Sprintf("for $%s in %s return %s", e.Var, e.In, e.Body)
}
func (e Let) String() string {
	return fmt.Sprintf("let $%s := %s return %s", e.Var, e.Value, e.Body)
}
func (e Where) String() string {
	return fmt.Sprintf("where %s return %s", e.Cond, e.Body)
}
func (e Elem) String() string {
	return fmt.Sprintf("<%s>{%s}</%s>", e.Tag, e.Body, e.Tag)
}
func (e Sequence) String() string {
	s := "("
	for i, item := range e.Items {
		if i > 0 {
			s += ", "
		}
		s += item.String()
	}
	return s + ")"
}

// Cond is a condition over expressions, mirroring the core's filter
// forms.
type Cond interface {
	cond()
	String() string
}

// Exists is truthy iff the expression yields a non-empty set.
type Exists struct {
	Of Expr
}

// ValueEq is the existential structural comparison.
type ValueEq struct {
	Left  Expr
	Right Expr
}

// IdentityEq is the existential identity comparison.
type IdentityEq struct {
	Left  Expr
	Right Expr
}

// And is the conjunction of two conditions.
type And struct {
	Left  Cond
	Right Cond
}

// Or is the disjunction of two conditions.
type Or struct {
	Left  Cond
	Right Cond
}

// Not negates a condition.
type Not struct {
	Cond Cond
}

func (Exists) cond()     {}
func (ValueEq) cond()    {}
func (IdentityEq) cond() {}
func (And) cond()        {}
func (Or) cond()         {}
func (Not) cond()        {}

func (c Exists) String() string { return c.Of.String() }
func (c ValueEq) String() string {
	return fmt.Sprintf("%s = %s", c.Left, c.Right)
}
func (c IdentityEq) String() string {
	return fmt.Sprintf("%s == %s", c.Left, c.Right)
}
func (c And) String() string {
	return fmt.Sprintf("%s and %s", c.Left, c.Right)
}
func (c Or) String() string {
	return fmt.Sprintf("%s or %s", c.Left, c.Right)
}
func (c Not) String() string { return "not " + c.Cond.String() }
