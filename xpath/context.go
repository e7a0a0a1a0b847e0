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

// This file contains the Context object an evaluation runs under: the
// document loader, the optional debug trace, and the recover point
// that turns internal faults into a Result error.

package xpath

import (
	"bytes"
	"fmt"

	"github.com/sdcio/xml-query/dom"
)

// EvalError reports an internal invariant violation, such as a
// malformed AST handed to the evaluator.  Absence of tags or
// attributes is never an EvalError; that is an empty node-set.
type EvalError struct {
	Expr string
	Msg  string
}

func (e *EvalError) Error() string {
	if e.Expr == "" {
		return fmt.Sprintf("evaluation error: %s", e.Msg)
	}
	return fmt.Sprintf("evaluation error in '%s': %s", e.Expr, e.Msg)
}

// evalAbort carries a loader failure (IOError / ParseError) up through
// the recursion so it surfaces to the caller unwrapped.
type evalAbort struct {
	err error
}

// CONTEXT
//
// One evaluation's run state.  A Context can be reused sequentially;
// the expression label and the debug trace then carry over from one
// evaluation to the next, as does the loader's document cache.
// Concurrent queries should each use their own.
type Context struct {
	loader dom.Loader
	expr   string // Expression under evaluation, for errors and trace.

	debug bool
	b     bytes.Buffer
	pfx   string // Prefix when printing nested evaluations.
	level int
}

func NewContext(loader dom.Loader) *Context {
	return &Context{loader: loader}
}

// These Enable / Set methods are designed to be chained together.
func (ctx *Context) EnableDebug() *Context {
	ctx.debug = true
	return ctx
}
func (ctx *Context) SetDebug(debug bool) *Context {
	ctx.debug = debug
	return ctx
}
func (ctx *Context) SetExpr(expr string) *Context {
	ctx.expr = expr
	return ctx
}

// panic() seems reasonable for malformed ASTs as they are programmer
// errors we shouldn't get; the alternative threads an error return
// through every production for a case that cannot legally arise.
// Evaluate recovers and reports via the Result.
func (ctx *Context) execError(desc string) {
	panic(&EvalError{Expr: ctx.expr, Msg: desc})
}

func (ctx *Context) addDebug(entry string) {
	if ctx.debug {
		ctx.b.WriteString(entry)
	}
}

func (ctx *Context) formatAndAddDebug(format string, params ...interface{}) {
	if ctx.debug {
		ctx.b.WriteString(fmt.Sprintf(format, params...))
	}
}

func (ctx *Context) addDebugNodeset(ns dom.NodeSet) {
	if ctx.debug {
		ctx.formatAndAddDebug("%s\t-> %s\n", ctx.pfx, ns)
	}
}

// enter/exit bracket nested evaluations so the trace indents per
// level.
func (ctx *Context) enter() {
	ctx.level++
	ctx.pfx += "\t"
}

func (ctx *Context) exit() {
	ctx.level--
	ctx.pfx = ctx.pfx[:len(ctx.pfx)-1]
}

// run wraps an evaluation step with the recover logic shared by the
// entry points below.
func (ctx *Context) run(evalFn func() dom.NodeSet) (res *Result) {
	res = NewResult()

	defer func() {
		if r := recover(); r != nil {
			switch fault := r.(type) {
			case *EvalError:
				res.runErr = fault
			case evalAbort:
				res.runErr = fault.err
			default:
				res.runErr = fmt.Errorf("%v", fault)
			}
		}
		res.output = ctx.b.String()
	}()

	res.save(evalFn())
	return res
}

// Evaluate runs an absolute path and returns the final, deduplicated
// result.
func (ctx *Context) Evaluate(ap AbsolutePath) *Result {
	if ctx.expr == "" {
		ctx.expr = ap.String()
	}
	ctx.formatAndAddDebug("Run\t'%s'\n----\n", ctx.expr)

	return ctx.run(func() dom.NodeSet {
		return ctx.evalAbsolute(ap)
	})
}

// EvaluateRelative runs a relative path against an already-established
// context set.  This is the composition hook for the XQuery layer; no
// deduplication is applied beyond what the path's own dedup points
// impose.
func (ctx *Context) EvaluateRelative(
	rp RelativePath,
	context dom.NodeSet,
) *Result {
	if ctx.expr == "" {
		ctx.expr = rp.String()
	}

	return ctx.run(func() dom.NodeSet {
		return ctx.evalRelative(rp, context)
	})
}

// EvaluateXPath parses nothing and loads everything: it runs a
// validated absolute-path AST using the given loader and returns the
// deduplicated node-set.
func EvaluateXPath(ap AbsolutePath, loader dom.Loader) (dom.NodeSet, error) {
	return NewContext(loader).Evaluate(ap).GetNodeSetResult()
}

// EvaluateRelative runs a relative path against a context set.
// Relative paths never load documents, so no loader is required.
func EvaluateRelative(
	rp RelativePath,
	context dom.NodeSet,
) (dom.NodeSet, error) {
	return NewContext(nil).EvaluateRelative(rp, context).GetNodeSetResult()
}
