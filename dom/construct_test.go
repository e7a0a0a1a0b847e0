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

func TestBuildElementCopiesContent(t *testing.T) {
	doc := parseDoc(t, `<library><book><title>A</title></book></library>`)
	book := doc.Root().Children()[0]

	result, err := BuildElement("result", NodeSet{book})
	require.NoError(t, err)

	assert.Equal(t, "result", result.Tag())
	require.Len(t, result.Children(), 1)
	copied := result.Children()[0]

	// Deep copy: structurally equal to the source, but a new node in a
	// new document.
	assert.True(t, StructuralEqual(copied, book))
	assert.False(t, SameIdentity(copied, book))
}

func TestBuildElementMixedContent(t *testing.T) {
	doc := parseDoc(t, `<root id="1">text<a/></root>`)
	root := doc.Root()

	content := NodeSet{root.Children()[1], root.Text()[0]}
	content = append(content, root.Attributes("id")...)

	result, err := BuildElement("out", content)
	require.NoError(t, err)

	kids := result.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, "a", kids[0].Tag())
	assert.Equal(t, "text", kids[1].Value())
	require.Len(t, result.Attributes("id"), 1)
	assert.Equal(t, "1", result.Attributes("id")[0].Value())
}

func TestBuildElementRequiresTag(t *testing.T) {
	_, err := BuildElement("", nil)
	assert.Error(t, err)
}
