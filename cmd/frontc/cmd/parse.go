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
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bufbuild/frontc"
	"github.com/bufbuild/frontc/cst"
	"github.com/bufbuild/frontc/source"
)

var (
	parseRaw  bool
	parseEmit string
	parseOut  string
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE...",
	Short: "Print the syntax trees of files",
	Long: `Parse files and print their syntax trees as s-expressions.

With --emit=proto, each tree is instead encoded in protobuf wire format and
written next to its file with a .cst extension, or into the directory named
by --out.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	flags := parseCmd.Flags()
	flags.BoolVar(&parseRaw, "raw", false, "skip string normalization")
	flags.StringVar(&parseEmit, "emit", "sexpr", "output format: sexpr or proto")
	flags.StringVarP(&parseOut, "out", "o", "", "directory for --emit=proto output")
}

func runParse(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if parseEmit != "sexpr" && parseEmit != "proto" {
		return fmt.Errorf("unknown --emit format %q", parseEmit)
	}

	paths, err := expand(config, args)
	if err != nil {
		return err
	}
	optionsFor := options(config)

	limit := config.Jobs
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(limit)

	results := make([]*frontc.Result, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			opts := optionsFor(path)
			opts.Raw = parseRaw
			results[i] = frontc.Parse(source.NewFile(path, string(text)), opts)
			if parseEmit == "proto" {
				return writeTree(path, results[i].CST)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed bool
	out := cmd.OutOrStdout()
	for i, res := range results {
		if parseEmit == "sexpr" {
			if len(results) > 1 {
				if _, err := fmt.Fprintf(out, "%s:\n", paths[i]); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(out, res.CST); err != nil {
				return err
			}
		}

		errs, err := render(config, res.Report, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		failed = failed || errs > 0 || res.Unusable
	}
	if failed {
		return errFailed
	}
	return nil
}

func writeTree(path string, node cst.Node) error {
	out := path + ".cst"
	if parseOut != "" {
		if err := os.MkdirAll(parseOut, 0o755); err != nil {
			return err
		}
		out = filepath.Join(parseOut, filepath.Base(out))
	}
	if err := os.WriteFile(out, cst.Marshal(node), 0o644); err != nil {
		return fmt.Errorf("writing tree: %w", err)
	}
	logger().Debugf("wrote %s", out)
	return nil
}
