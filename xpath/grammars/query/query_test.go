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

// End-to-end query tests: text in, node-set out, against in-memory
// documents.  The library fixture is the canonical two-book document:
// both books titled 'A', distinguished only by their id attribute.

package query

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sdcio/xml-query/dom"
	"github.com/sdcio/xml-query/xpath"
	"github.com/sdcio/xml-query/xpath/xpathtest"
)

const booksXML = `<library>` +
	`<book id="1"><title>A</title></book>` +
	`<book id="2"><title>A</title></book>` +
	`</library>`

const twinsXML = `<r><a><t>A</t></a><b><t>A</t></b></r>`

func newTestLoader() *xpathtest.MapLoader {
	return xpathtest.NewMapLoader(map[string]string{
		"books.xml": booksXML,
		"twins.xml": twinsXML,
	})
}

// Helper functions
func runQuery(t *testing.T, expr string) dom.NodeSet {
	t.Helper()

	ap, err := Parse(expr)
	if err != nil {
		t.Fatalf("Unexpected error parsing '%s': %s", expr, err.Error())
		return nil
	}

	nodes, err := xpath.NewContext(newTestLoader()).
		SetExpr(expr).
		Evaluate(ap).
		GetNodeSetResult()
	if err != nil {
		t.Fatalf("Unexpected error evaluating '%s': %s", expr, err.Error())
		return nil
	}

	return nodes
}

func checkTagsResult(t *testing.T, expr string, expTags []string) {
	t.Helper()

	nodes := runQuery(t, expr)
	if diff := cmp.Diff(expTags, xpathtest.TagNames(nodes)); diff != "" {
		t.Fatalf("Wrong result for '%s' (-want +got):\n%s", expr, diff)
	}
}

func checkValuesResult(t *testing.T, expr string, expVals []string) {
	t.Helper()

	nodes := runQuery(t, expr)
	if diff := cmp.Diff(expVals, xpathtest.Values(nodes)); diff != "" {
		t.Fatalf("Wrong result for '%s' (-want +got):\n%s", expr, diff)
	}
}

func checkEmptyResult(t *testing.T, expr string) {
	t.Helper()

	if nodes := runQuery(t, expr); len(nodes) != 0 {
		t.Fatalf("Expected empty result for '%s', got %s", expr, nodes)
	}
}

func TestQueryDocRoot(t *testing.T) {
	checkTagsResult(t, `doc("books.xml")`, []string{"library"})
}

func TestQueryChildSteps(t *testing.T) {
	checkTagsResult(t, `doc("books.xml")/library/book/title`,
		[]string{"title", "title"})
}

func TestQueryDescendants(t *testing.T) {
	checkTagsResult(t, `doc("books.xml")//title`,
		[]string{"title", "title"})
}

func TestQueryDescendantStep(t *testing.T) {
	checkTagsResult(t, `doc("books.xml")/library//title`,
		[]string{"title", "title"})
}

func TestQueryWildcard(t *testing.T) {
	checkTagsResult(t, `doc("books.xml")/library/*`,
		[]string{"book", "book"})
}

func TestQueryText(t *testing.T) {
	checkValuesResult(t, `doc("books.xml")/library/book/title/text()`,
		[]string{"A", "A"})
}

func TestQueryAttributeSelection(t *testing.T) {
	checkValuesResult(t, `doc("books.xml")/library/book/@id`,
		[]string{"1", "2"})
}

func TestQueryParentStep(t *testing.T) {
	checkTagsResult(t, `doc("books.xml")//title/..`,
		[]string{"book", "book"})
}

func TestQueryCurrentStep(t *testing.T) {
	checkTagsResult(t, `doc("books.xml")/library/./book`,
		[]string{"book", "book"})
}

func TestQueryAttributeExistsFilter(t *testing.T) {
	checkTagsResult(t, `doc("books.xml")/library/book[@id]/title`,
		[]string{"title", "title"})
	checkEmptyResult(t, `doc("books.xml")/library/book[@isbn]/title`)
}

func TestQuerySelfValueEquality(t *testing.T) {
	// Each book's title equals itself structurally.
	checkTagsResult(t, `doc("books.xml")/library/book[title eq title]`,
		[]string{"book", "book"})
}

func TestQueryPairConcatenation(t *testing.T) {
	// Pair keeps production order; all four nodes are distinct so the
	// absolute path's dedup removes nothing.
	checkTagsResult(t, `doc("books.xml")/library/(book, book/title)`,
		[]string{"book", "book", "title", "title"})
}

func TestQueryNotFilter(t *testing.T) {
	checkEmptyResult(t, `doc("books.xml")//book[not title]`)
	checkTagsResult(t, `doc("books.xml")//book[not price]`,
		[]string{"book", "book"})
}

func TestQueryBooleanFilters(t *testing.T) {
	checkTagsResult(t, `doc("books.xml")/library/book[@id and title]`,
		[]string{"book", "book"})
	checkEmptyResult(t, `doc("books.xml")/library/book[@id and price]`)
	checkTagsResult(t, `doc("books.xml")/library/book[price or title]`,
		[]string{"book", "book"})
}

func TestQueryValueEqualityAcrossNodes(t *testing.T) {
	// a's <t> and b's <t> are distinct but structurally equal: '='
	// matches, 'is' does not.
	checkTagsResult(t, `doc("twins.xml")/r/a[t = ../b/t]`,
		[]string{"a"})
	checkEmptyResult(t, `doc("twins.xml")/r/a[t is ../b/t]`)
}

func TestQueryIdentityEqualitySameNode(t *testing.T) {
	checkTagsResult(t, `doc("twins.xml")/r/a[t is t]`, []string{"a"})
}

func TestQueryFilterOnDescendants(t *testing.T) {
	// A text-only <t> has no element descendants named t.
	checkEmptyResult(t, `doc("twins.xml")//t[.//t]`)
	checkTagsResult(t, `doc("twins.xml")//a[t]`, []string{"a"})
}

func TestQueryNoMatchIsEmpty(t *testing.T) {
	checkEmptyResult(t, `doc("books.xml")/library/magazine`)
	checkEmptyResult(t, `doc("books.xml")//magazine`)
}

func TestQueryResultDeduplicated(t *testing.T) {
	// Both books' parent is the same library element; the absolute
	// path dedups it to one.
	checkTagsResult(t, `doc("books.xml")//book/..`, []string{"library"})
}

func TestQueryMissingDocument(t *testing.T) {
	ap, err := Parse(`doc("ghost.xml")/a`)
	if err != nil {
		t.Fatalf("Unexpected parse error: %s", err.Error())
	}

	_, err = xpath.EvaluateXPath(ap, newTestLoader())
	var ioErr *dom.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Expected *dom.IOError, got %v", err)
	}
}
