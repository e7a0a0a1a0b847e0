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

// Lightweight(!) document loader used merely for testing: documents
// are supplied as in-memory XML source keyed by reference, parsed on
// first use and cached so identity-sensitive tests see stable handles.

package xpathtest

import (
	"fmt"
	"testing"

	"github.com/sdcio/xml-query/dom"
)

type MapLoader struct {
	sources map[string]string
	cache   map[string]*dom.Document
}

func NewMapLoader(sources map[string]string) *MapLoader {
	return &MapLoader{
		sources: sources,
		cache:   make(map[string]*dom.Document),
	}
}

func (l *MapLoader) Load(ref string) (*dom.Document, error) {
	if doc, ok := l.cache[ref]; ok {
		return doc, nil
	}

	src, ok := l.sources[ref]
	if !ok {
		return nil, &dom.IOError{
			File: ref, Err: fmt.Errorf("no such test document")}
	}

	doc, err := dom.Parse(ref, []byte(src))
	if err != nil {
		return nil, err
	}

	l.cache[ref] = doc
	return doc, nil
}

// MustLoad fetches a test document, failing the test on any error.
func (l *MapLoader) MustLoad(t *testing.T, ref string) *dom.Document {
	t.Helper()

	doc, err := l.Load(ref)
	if err != nil {
		t.Fatalf("Cannot load test document '%s': %s", ref, err.Error())
		return nil
	}
	return doc
}

// TagNames flattens a node-set to its tag names, the usual shape
// checked by query tests.
func TagNames(ns dom.NodeSet) []string {
	names := make([]string, 0, len(ns))
	for _, node := range ns {
		names = append(names, node.Tag())
	}
	return names
}

// Values flattens a node-set to text / attribute values.
func Values(ns dom.NodeSet) []string {
	vals := make([]string, 0, len(ns))
	for _, node := range ns {
		vals = append(vals, node.Value())
	}
	return vals
}
