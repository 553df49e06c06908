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

	"github.com/spf13/cobra"

	"github.com/bufbuild/frontc"
)

var checkWerror bool

var checkCmd = &cobra.Command{
	Use:   "check [FILE|GLOB]...",
	Short: "Report diagnostics for files",
	Long: `Parse files and report their diagnostics, failing if there are any
errors. With no arguments, the files matched by the configuration's include
globs are checked.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkWerror, "werror", false, "treat warnings as errors")
}

func runCheck(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	paths, err := expand(config, args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		logger().Warningf("no files to check")
		return nil
	}

	compiler := frontc.Compiler{
		Resolver:       &frontc.SourceResolver{},
		MaxParallelism: config.Jobs,
		OptionsFor:     options(config),
	}
	results, err := compiler.Compile(cmd.Context(), paths...)
	if err != nil {
		return err
	}

	r := renderer(config)
	r.WarningsAreErrors = checkWerror

	var errs, warnings, failed int
	for _, res := range results {
		e, w, err := r.Render(res.Report, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		errs += e
		warnings += w
		if e > 0 || res.Unusable {
			failed++
		}
	}

	logger().Infof("checked %d files: %d errors, %d warnings", len(paths), errs, warnings)
	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files have errors\n", failed, len(paths))
		return errFailed
	}
	return nil
}
