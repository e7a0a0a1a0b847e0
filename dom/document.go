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

// Document loading.  Only Load touches the filesystem; everything else
// in this package is a pure read on the parsed tree.

package dom

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"
)

// Document owns a parsed XML tree.  Node handles into it remain valid
// for as long as the Document is held.
type Document struct {
	ref  string
	tree *etree.Document
}

// Ref returns the reference the document was loaded under.
func (d *Document) Ref() string { return d.ref }

// Root returns a handle to the document's root element.
func (d *Document) Root() *Node {
	return newElemNode(d, d.tree.Root())
}

// etree parents top-level tokens on the document's own embedded
// element; that pseudo-element must read as "no parent".
func (d *Document) isDocElem(elem *etree.Element) bool {
	return elem == &d.tree.Element
}

// IOError reports that a referenced document could not be read.
type IOError struct {
	File string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot read document '%s': %s", e.File, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports ill-formed XML, or an ill-formed query when
// returned by the query parser.
type ParseError struct {
	Source string // file reference or query expression
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse '%s': %s", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader resolves a document reference to its parsed tree.
type Loader interface {
	Load(ref string) (*Document, error)
}

// FileLoader resolves references against a base directory and caches
// each document for the lifetime of the loader, so every reference to
// the same file within a query sees the same node handles.
type FileLoader struct {
	dir   string
	cache map[string]*Document
}

func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{dir: dir, cache: make(map[string]*Document)}
}

func (l *FileLoader) Load(ref string) (*Document, error) {
	if doc, ok := l.cache[ref]; ok {
		return doc, nil
	}

	doc, err := loadFile(filepath.Join(l.dir, ref), ref)
	if err != nil {
		return nil, err
	}

	l.cache[ref] = doc
	return doc, nil
}

func loadFile(path, ref string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{File: ref, Err: err}
	}

	return Parse(ref, data)
}

// Parse builds a Document from raw XML bytes.  UTF-8 is the only
// encoding assumption.
func Parse(ref string, data []byte) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Source: ref, Err: err}
	}
	if tree.Root() == nil {
		return nil, &ParseError{
			Source: ref, Err: fmt.Errorf("no root element")}
	}

	log.Debugf("loaded document '%s'", ref)

	return &Document{ref: ref, tree: tree}, nil
}
