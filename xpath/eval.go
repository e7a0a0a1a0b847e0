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

// The evaluator: a recursive function over the AST.  Each relative-path
// production maps a context set to a new set; each filter production
// tests a single-element context.  The functions are pure in the
// context set — a production never mutates the slice it was handed —
// so filter purity holds structurally.
//
// Deduplication points are the absolute-path productions and the '/'
// and '//' steps.  Everything else may emit duplicates; order is
// production order throughout, never a re-sort into document order.

package xpath

import (
	"github.com/sdcio/xml-query/dom"
)

// evalAbsolute establishes the initial context from a document and
// hands over to the relative-path rules.
func (ctx *Context) evalAbsolute(ap AbsolutePath) dom.NodeSet {
	switch v := ap.(type) {
	case ApDoc:
		return dom.NodeSet{ctx.loadRoot(v.File)}

	case ApChildren:
		context := dom.NodeSet{ctx.loadRoot(v.File)}
		return ctx.evalRelative(v.Rel, context).Unique()

	case ApAll:
		context := dom.NodeSet{ctx.loadRoot(v.File)}.DescendantsOrSelf()
		return ctx.evalRelative(v.Rel, context).Unique()

	default:
		ctx.execError("unknown absolute path production")
		return nil
	}
}

func (ctx *Context) loadRoot(file string) *dom.Node {
	if ctx.loader == nil {
		ctx.execError("no document loader configured")
	}

	doc, err := ctx.loader.Load(file)
	if err != nil {
		panic(evalAbort{err})
	}

	return doc.Root()
}

// evalRelative maps the context set through one relative-path
// production.
func (ctx *Context) evalRelative(
	rp RelativePath,
	context dom.NodeSet,
) dom.NodeSet {
	ctx.formatAndAddDebug("%sApply:\t%s\n", ctx.pfx, rp)

	result := ctx.applyRelative(rp, context)

	ctx.addDebugNodeset(result)
	return result
}

func (ctx *Context) applyRelative(
	rp RelativePath,
	context dom.NodeSet,
) dom.NodeSet {
	switch v := rp.(type) {
	case RpTag:
		if v.Name == "" {
			ctx.execError("tag step with empty name")
		}
		var result dom.NodeSet
		for _, node := range context {
			for _, child := range node.Children() {
				if child.Tag() == v.Name {
					result = append(result, child)
				}
			}
		}
		return result

	case RpWildcard:
		var result dom.NodeSet
		for _, node := range context {
			result = append(result, node.Children()...)
		}
		return result

	case RpCurrent:
		return context

	case RpParent:
		var result dom.NodeSet
		for _, node := range context {
			result = append(result, node.Parent()...)
		}
		return result

	case RpText:
		var result dom.NodeSet
		for _, node := range context {
			result = append(result, node.Text()...)
		}
		return result

	case RpAttribute:
		if v.Name == "" {
			ctx.execError("attribute step with empty name")
		}
		var result dom.NodeSet
		for _, node := range context {
			result = append(result, node.Attributes(v.Name)...)
		}
		return result

	case RpParen:
		return ctx.evalRelative(v.Rel, context)

	case RpStep:
		// Each node of the first path's result seeds its own
		// single-element context for the second path; production order
		// is first-path order, then per-visit second-path order.
		first := ctx.evalRelative(v.First, context)
		var result dom.NodeSet
		for _, node := range first {
			result = append(
				result, ctx.evalRelative(v.Next, dom.NodeSet{node})...)
		}
		return result.Unique()

	case RpStepAll:
		first := ctx.evalRelative(v.First, context)
		expanded := first.DescendantsOrSelf()
		return ctx.evalRelative(v.Next, expanded).Unique()

	case RpFilter:
		candidates := ctx.evalRelative(v.Rel, context)
		var result dom.NodeSet
		for _, node := range candidates {
			if ctx.evalFilter(v.Cond, dom.NodeSet{node}) {
				result = append(result, node)
			}
		}
		return result

	case RpPair:
		// Both branches see the original context; the result is plain
		// concatenation, not a dedup point.
		left := ctx.evalRelative(v.Left, context)
		right := ctx.evalRelative(v.Right, context)
		result := make(dom.NodeSet, 0, len(left)+len(right))
		result = append(result, left...)
		return append(result, right...)

	default:
		ctx.execError("unknown relative path production")
		return nil
	}
}

// evalFilter tests a filter against a (single-element) context.  The
// context is passed by value and never mutated, so the caller's view
// is untouched whatever the sub-paths do.
func (ctx *Context) evalFilter(f Filter, context dom.NodeSet) bool {
	ctx.formatAndAddDebug("%sTest:\t[%s]\n", ctx.pfx, f)
	ctx.enter()
	defer ctx.exit()

	switch v := f.(type) {
	case FltExists:
		return len(ctx.evalRelative(v.Rel, context)) > 0

	case FltValueEq:
		return ctx.compareSets(
			v.Left, v.Right, context, dom.StructuralEqual)

	case FltIdentityEq:
		return ctx.compareSets(
			v.Left, v.Right, context, dom.SameIdentity)

	case FltParen:
		return ctx.evalFilter(v.Cond, context)

	case FltAnd:
		return ctx.evalFilter(v.Left, context) &&
			ctx.evalFilter(v.Right, context)

	case FltOr:
		return ctx.evalFilter(v.Left, context) ||
			ctx.evalFilter(v.Right, context)

	case FltNot:
		return !ctx.evalFilter(v.Cond, context)

	default:
		ctx.execError("unknown filter production")
		return false
	}
}

// compareSets implements the existential comparison semantics shared
// by '=' and '==': truthy iff some pair drawn from the two operand
// sets satisfies the comparison.  An empty operand set therefore makes
// any comparison falsy.
func (ctx *Context) compareSets(
	left, right RelativePath,
	context dom.NodeSet,
	equalFn func(a, b *dom.Node) bool,
) bool {
	leftSet := ctx.evalRelative(left, context)
	if len(leftSet) == 0 {
		return false
	}
	rightSet := ctx.evalRelative(right, context)

	for _, l := range leftSet {
		for _, r := range rightSet {
			if equalFn(l, r) {
				return true
			}
		}
	}
	return false
}
