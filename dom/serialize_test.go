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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentsIndentElements(t *testing.T) {
	doc := parseDoc(t,
		`<library><book><title>A</title></book></library>`)

	books := doc.Root().Children()
	out, err := Fragments(books)
	require.NoError(t, err)

	assert.Equal(t, "<book>\n  <title>A</title>\n</book>\n", out)
}

func TestFragmentsConcatenate(t *testing.T) {
	doc := parseDoc(t, `<root><a/><b/></root>`)

	out, err := Fragments(doc.Root().Children())
	require.NoError(t, err)

	assert.Equal(t, "<a/>\n<b/>\n", out)
}

func TestFragmentsNoXMLDeclaration(t *testing.T) {
	doc := parseDoc(t, `<?xml version="1.0"?><root><a/></root>`)

	out, err := Fragments(NodeSet{doc.Root()})
	require.NoError(t, err)

	assert.NotContains(t, out, "<?xml")
}

func TestFragmentsTextNode(t *testing.T) {
	doc := parseDoc(t, `<root>hello</root>`)

	out, err := Fragments(doc.Root().Text())
	require.NoError(t, err)

	assert.Equal(t, "hello\n", out)
}

func TestFragmentsAttributeNode(t *testing.T) {
	doc := parseDoc(t, `<root id="a&amp;b"/>`)

	out, err := Fragments(doc.Root().Attributes("id"))
	require.NoError(t, err)

	assert.Equal(t, "id=\"a&amp;b\"\n", out)
}

func TestFragmentsLeaveSourceUntouched(t *testing.T) {
	doc := parseDoc(t, `<library><book><title>A</title></book></library>`)

	_, err := Fragments(doc.Root().Children())
	require.NoError(t, err)

	// Serialization copies before indenting; the source tree must not
	// have gained whitespace children.
	book := doc.Root().Children()[0]
	assert.Len(t, book.Children(), 1)
}
