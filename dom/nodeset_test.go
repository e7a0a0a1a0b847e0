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

package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tags(ns NodeSet) []string {
	var out []string
	for _, n := range ns {
		out = append(out, n.Tag())
	}
	return out
}

func TestUniqueKeepsFirstOccurrence(t *testing.T) {
	doc := parseDoc(t, `<root><a/><b/></root>`)
	kids := doc.Root().Children()
	a, b := kids[0], kids[1]

	ns := NodeSet{a, b, a, b, a}

	unique := ns.Unique()
	require.Len(t, unique, 2)
	assert.True(t, SameIdentity(unique[0], a))
	assert.True(t, SameIdentity(unique[1], b))
}

func TestUniqueUsesIdentityNotStructure(t *testing.T) {
	doc := parseDoc(t, `<root><a/><a/></root>`)
	kids := doc.Root().Children()

	// Structurally equal siblings must NOT be folded.
	unique := NodeSet{kids[0], kids[1]}.Unique()
	assert.Len(t, unique, 2)
}

func TestUniqueSeesThroughDistinctHandles(t *testing.T) {
	doc := parseDoc(t, `<root><a/></root>`)

	// Two separately-built handles to the same node count as one.
	ns := NodeSet{doc.Root().Children()[0], doc.Root().Children()[0]}
	assert.Len(t, ns.Unique(), 1)
}

func TestUniqueOfEmptySet(t *testing.T) {
	assert.Empty(t, NodeSet{}.Unique())
}

func TestDescendantsOrSelfDocumentOrder(t *testing.T) {
	doc := parseDoc(t, `<a><b><c/>t</b><d/></a>`)

	expanded := NodeSet{doc.Root()}.DescendantsOrSelf()

	want := []string{"a", "b", "c", TextTag, "d"}
	if diff := cmp.Diff(want, tags(expanded)); diff != "" {
		t.Fatalf("Wrong expansion (-want +got):\n%s", diff)
	}
}

func TestDescendantsOrSelfKeepsDuplicates(t *testing.T) {
	doc := parseDoc(t, `<a><b/></a>`)
	b := doc.Root().Children()[0]

	// Self plus descendants of overlapping inputs: dedup is left to
	// the caller.
	expanded := NodeSet{doc.Root(), b}.DescendantsOrSelf()

	want := []string{"a", "b", "b"}
	if diff := cmp.Diff(want, tags(expanded)); diff != "" {
		t.Fatalf("Wrong expansion (-want +got):\n%s", diff)
	}
}

func TestContains(t *testing.T) {
	doc := parseDoc(t, `<root><a/><b/></root>`)
	kids := doc.Root().Children()

	ns := NodeSet{kids[0]}
	assert.True(t, ns.Contains(kids[0]))
	assert.False(t, ns.Contains(kids[1]))
}
