// Copyright 2012 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package samurai

import "github.com/golang/glog"

// Explaining toggles EXPLAIN output, mirroring debug_flags.go's
// g_explaining. A build driver sets it from a -d explain flag.
var Explaining = false

// EXPLAIN logs a dirty-reason trace line when Explaining is set, at verbose
// level 1, with a "samurai explain: " prefix.
func EXPLAIN(f string, args ...interface{}) {
	if Explaining {
		glog.V(1).Infof("samurai explain: "+f, args...)
	}
}

// Warning logs a non-fatal diagnostic.
func Warning(f string, args ...interface{}) {
	glog.Warningf(f, args...)
}

// Errorf logs a fatal-but-recoverable diagnostic; the caller still decides
// whether to abort.
func Errorf(f string, args ...interface{}) {
	glog.Errorf(f, args...)
}

// Info logs a routine diagnostic.
func Info(f string, args ...interface{}) {
	glog.Infof(f, args...)
}
