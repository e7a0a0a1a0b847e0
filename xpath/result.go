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

package xpath

import (
	"fmt"

	"github.com/sdcio/xml-query/dom"
)

// RESULT
//
// Wrapper around the raw result of an evaluation, so callers can pick
// up the node-set, any run error, and the debug trace in one place.
type Result struct {
	value  dom.NodeSet
	runErr error  // Error while evaluating
	output string // Debug output showing the evaluation trace.
}

func NewResult() *Result {
	return &Result{}
}

func (res *Result) save(ns dom.NodeSet) {
	res.value = ns
}

// GetNodeSetResult returns the evaluated node-set, or the run error if
// evaluation failed.
func (res *Result) GetNodeSetResult() (dom.NodeSet, error) {
	if res.runErr != nil {
		return nil, res.runErr
	}

	return res.value, nil
}

func (res *Result) GetError() error { return res.runErr }

func (res *Result) GetDebugOutput() string { return res.output }

func (res *Result) PrintResult() string {
	if res.runErr != nil {
		return fmt.Sprintf("Failed to run: %s\n", res.runErr.Error())
	}

	return fmt.Sprintf("NODESET: %s\n", res.value)
}
