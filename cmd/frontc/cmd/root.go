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

// Package cmd implements the frontc command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/bufbuild/frontc"
	"github.com/bufbuild/frontc/lexer"
	"github.com/bufbuild/frontc/report"
)

var (
	cfgFile  string
	verbose  int
	jobs     int
	language string
	color    bool
	compact  bool
)

// errFailed is returned by commands that already printed why they failed.
var errFailed = errors.New("frontc: failed")

var rootCmd = &cobra.Command{
	Use:   "frontc",
	Short: "Front end for a multi-target language",
	Long: `frontc turns source files into concrete syntax trees.

Files ending in .md are read as literate markdown, with code in fenced and
indented blocks. Everything else is read as plain source.

Settings are read from the nearest frontc.yaml or frontc.toml, and can be
overridden with flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFailed) {
		fmt.Fprintln(os.Stderr, "frontc:", err)
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: nearest frontc.yaml or frontc.toml)")
	flags.CountVarP(&verbose, "verbose", "v", "log diagnostics as they are found; repeat for more detail")
	flags.IntVarP(&jobs, "jobs", "j", 0, "files to process at once (default: one per CPU)")
	flags.StringVar(&language, "language", "", "host format: standalone or markdown (default: by extension)")
	flags.BoolVar(&color, "color", false, "colorize diagnostics")
	flags.BoolVar(&compact, "compact", false, "print one line per diagnostic")

	rootCmd.AddCommand(lexCmd, parseCmd, checkCmd)
}

// loadConfig finds the configuration and applies flag overrides to it.
func loadConfig(cmd *cobra.Command) (*frontc.Config, error) {
	config := new(frontc.Config)
	path := cfgFile
	if path == "" {
		path, _ = frontc.FindConfig(".")
	}
	if path != "" {
		var err error
		if config, err = frontc.LoadConfig(path); err != nil {
			return nil, err
		}
		logger().Infof("using configuration %s", path)
	}

	flags := cmd.Flags()
	if flags.Changed("jobs") {
		config.Jobs = jobs
	}
	if flags.Changed("language") {
		config.Language = language
	}
	if flags.Changed("color") {
		config.Color = color
	}
	if flags.Changed("compact") {
		config.Compact = compact
	}
	if config.Jobs < 0 {
		return nil, fmt.Errorf("--jobs must not be negative, got %d", config.Jobs)
	}
	if _, err := lexer.ParseLanguage(config.Language); err != nil {
		return nil, err
	}
	return config, nil
}

// options returns a function giving the parse options for each file.
func options(config *frontc.Config) func(string) frontc.Options {
	sink := logSink()
	if sink != nil {
		sink = report.Locked(sink)
	}
	return func(path string) frontc.Options {
		opts := config.Options(path)
		opts.Sink = sink
		return opts
	}
}

// expand turns command line arguments into paths. Arguments may be
// doublestar globs; with no arguments, the configuration's globs are used.
func expand(config *frontc.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		return config.Files(os.DirFS("."))
	}

	var out []string
	for _, arg := range args {
		if !doublestar.ValidatePattern(arg) {
			return nil, fmt.Errorf("invalid glob %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		if len(matches) == 0 {
			// Let the resolver report it as missing.
			out = append(out, arg)
			continue
		}
		out = append(out, matches...)
	}
	return out, nil
}

func renderer(config *frontc.Config) report.Renderer {
	return report.Renderer{
		Compact:  config.Compact,
		Colorize: config.Color,
	}
}

// render prints a report and returns the number of errors in it.
func render(config *frontc.Config, r *report.Report, out io.Writer) (int, error) {
	errs, _, err := renderer(config).Render(r, out)
	return errs, err
}
