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

// The FLWR evaluator.  It owns variable binding and result
// concatenation and delegates all path navigation to the core
// relative-path evaluator, which is the composition contract between
// the two layers.

package xquery

import (
	"github.com/sdcio/xml-query/dom"
	"github.com/sdcio/xml-query/xpath"
)

// Evaluator runs FLWR expressions against documents resolved by the
// given loader.
type Evaluator struct {
	loader dom.Loader
}

func NewEvaluator(loader dom.Loader) *Evaluator {
	return &Evaluator{loader: loader}
}

// Evaluate runs an expression with no variables in scope.  The result
// is the expression's sequence in binding order; it is not a dedup
// point, so callers dedup if they need set semantics.
func (ev *Evaluator) Evaluate(e Expr) (dom.NodeSet, error) {
	return ev.eval(e, nil)
}

func (ev *Evaluator) eval(e Expr, sc *scope) (dom.NodeSet, error) {
	switch v := e.(type) {
	case Var:
		value, ok := sc.lookup(v.Name)
		if !ok {
			return nil, &xpath.EvalError{
				Expr: e.String(),
				Msg:  "variable $" + v.Name + " is not bound",
			}
		}
		return value, nil

	case Absolute:
		return xpath.EvaluateXPath(v.Path, ev.loader)

	case Relative:
		base, err := ev.eval(v.Base, sc)
		if err != nil {
			return nil, err
		}
		return xpath.EvaluateRelative(v.Path, base)

	case For:
		in, err := ev.eval(v.In, sc)
		if err != nil {
			return nil, err
		}
		var result dom.NodeSet
		for _, node := range in {
			bound, err := ev.eval(v.Body, sc.bind(v.Var, dom.NodeSet{node}))
			if err != nil {
				return nil, err
			}
			result = append(result, bound...)
		}
		return result, nil

	case Let:
		value, err := ev.eval(v.Value, sc)
		if err != nil {
			return nil, err
		}
		return ev.eval(v.Body, sc.bind(v.Var, value))

	case Where:
		ok, err := ev.test(v.Cond, sc)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return ev.eval(v.Body, sc)

	case Elem:
		body, err := ev.eval(v.Body, sc)
		if err != nil {
			return nil, err
		}
		node, err := dom.BuildElement(v.Tag, body)
		if err != nil {
			return nil, &xpath.EvalError{Expr: e.String(), Msg: err.Error()}
		}
		return dom.NodeSet{node}, nil

	case Sequence:
		var result dom.NodeSet
		for _, item := range v.Items {
			part, err := ev.eval(item, sc)
			if err != nil {
				return nil, err
			}
			result = append(result, part...)
		}
		return result, nil

	default:
		return nil, &xpath.EvalError{Msg: "unknown expression form"}
	}
}

func (ev *Evaluator) test(c Cond, sc *scope) (bool, error) {
	switch v := c.(type) {
	case Exists:
		set, err := ev.eval(v.Of, sc)
		return len(set) > 0, err

	case ValueEq:
		return ev.compare(v.Left, v.Right, sc, dom.StructuralEqual)

	case IdentityEq:
		return ev.compare(v.Left, v.Right, sc, dom.SameIdentity)

	case And:
		left, err := ev.test(v.Left, sc)
		if err != nil || !left {
			return false, err
		}
		return ev.test(v.Right, sc)

	case Or:
		left, err := ev.test(v.Left, sc)
		if err != nil || left {
			return left, err
		}
		return ev.test(v.Right, sc)

	case Not:
		inner, err := ev.test(v.Cond, sc)
		return !inner && err == nil, err

	default:
		return false, &xpath.EvalError{Msg: "unknown condition form"}
	}
}

// compare mirrors the core's existential comparison: truthy iff some
// pair drawn from the two operand sequences satisfies equalFn.
func (ev *Evaluator) compare(
	left, right Expr,
	sc *scope,
	equalFn func(a, b *dom.Node) bool,
) (bool, error) {
	leftSet, err := ev.eval(left, sc)
	if err != nil || len(leftSet) == 0 {
		return false, err
	}
	rightSet, err := ev.eval(right, sc)
	if err != nil {
		return false, err
	}

	for _, l := range leftSet {
		for _, r := range rightSet {
			if equalFn(l, r) {
				return true, nil
			}
		}
	}
	return false, nil
}
