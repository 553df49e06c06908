// Copyright 2020-2025 Buf Technologies, Inc.
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

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bufbuild/frontc/adapt"
	"github.com/bufbuild/frontc/lexer"
	"github.com/bufbuild/frontc/report"
	"github.com/bufbuild/frontc/source"
	"github.com/bufbuild/frontc/token"
)

var lexAdapt bool

var lexCmd = &cobra.Command{
	Use:   "lex FILE",
	Short: "Print the tokens of a file",
	Long: `Print the tokens of a file, one per line.

With --adapt, the tokens are printed as the parser sees them: without space
and comments, and with the statement separators, string parentheses, joins
and decorators the adapter pipeline inserts.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	lexCmd.Flags().BoolVar(&lexAdapt, "adapt", false, "run the adapter pipeline on the tokens")
}

func runLex(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts := options(config)(path)
	r := new(report.Report)
	lx := &lexer.Lexer{Language: opts.Language, SemilitParagraphs: opts.SemilitParagraphs}
	var src token.Source = lx.Lex(source.NewFile(path, string(text)), report.Tee(r, opts.Sink))
	if lexAdapt {
		src = adapt.Pipeline(src, nil, nil)
	}

	out := cmd.OutOrStdout()
	for tok := range token.All(src) {
		if _, err := fmt.Fprintln(out, tok); err != nil {
			return err
		}
	}

	errs, err := render(config, r, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if errs > 0 {
		return errFailed
	}
	return nil
}
