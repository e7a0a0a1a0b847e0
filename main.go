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

package main

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sdcio/xml-query/dom"
	"github.com/sdcio/xml-query/xpath"
	"github.com/sdcio/xml-query/xpath/grammars/query"
)

var (
	debug  bool
	dir    string
	output string
)

var rootCmd = &cobra.Command{
	Use:   "xml-query <query>",
	Short: "Evaluate a path query against XML documents",
	Long: `Evaluate a path query against the XML documents it references
via doc(...), and print the matching nodes as XML fragments in
document order.`,
	Example: `  xml-query 'doc("books.xml")/library/book/title'
  xml-query --dir testdata 'doc("books.xml")//book[not price]'`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runQuery,
}

func init() {
	rootCmd.Flags().BoolVar(&debug, "debug", false,
		"trace evaluation steps")
	rootCmd.Flags().StringVar(&dir, "dir", ".",
		"base directory for document references")
	rootCmd.Flags().StringVarP(&output, "output", "o", "-",
		"write result to file instead of stdout")
}

func runQuery(cmd *cobra.Command, args []string) error {
	expr := args[0]

	if debug {
		log.SetLevel(log.DebugLevel)
	}

	ap, err := query.Parse(expr)
	if err != nil {
		return err
	}

	res := xpath.NewContext(dom.NewFileLoader(dir)).
		SetDebug(debug).
		SetExpr(expr).
		Evaluate(ap)

	if debug {
		log.Debug(res.GetDebugOutput())
	}

	nodes, err := res.GetNodeSetResult()
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return dom.WriteFragments(w, nodes)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
