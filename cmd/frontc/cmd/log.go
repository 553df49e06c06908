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
	"sync"

	"github.com/tliron/commonlog"

	"github.com/bufbuild/frontc/report"

	_ "github.com/tliron/commonlog/simple"
)

var configureLogging = sync.OnceFunc(func() {
	if verbose > 0 {
		commonlog.Configure(verbose, nil)
	}
})

func logger() commonlog.Logger {
	configureLogging()
	return commonlog.GetLogger("frontc")
}

// logSink returns a sink that traces every diagnostic to the log, or nil if
// logging is off.
func logSink() report.Sink {
	if verbose == 0 {
		return nil
	}
	log := logger()
	return report.SinkFunc(func(level report.Level, t report.Template, at report.Spanner, values ...any) {
		where := "<unknown>"
		if at != nil {
			if span := at.Span(); !span.IsZero() {
				where = span.String()
			}
		}
		msg := fmt.Sprintf(t.Format, values...)

		switch level {
		case report.ICE, report.Fatal:
			log.Criticalf("%s: %s [%s]", where, msg, t.Tag)
		case report.Error:
			log.Errorf("%s: %s [%s]", where, msg, t.Tag)
		case report.Warning:
			log.Warningf("%s: %s [%s]", where, msg, t.Tag)
		default:
			log.Infof("%s: %s [%s]", where, msg, t.Tag)
		}
	})
}
