// Copyright 2013 Google Inc. All Rights Reserved.
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

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the manifest-language version this package implements,
// checked against a manifest's ninja_required_version statement (spec.md
// §4.3).
const Version = "1.10.2"

// ParseVersion splits a "major.minor[.patch]" string into its major and
// minor components, ignoring anything after the second dot.
func ParseVersion(version string) (major, minor int) {
	end := strings.Index(version, ".")
	if end == -1 {
		end = len(version)
	}
	major, _ = strconv.Atoi(keepNumbers(version[:end]))
	if end == len(version) {
		return major, 0
	}
	start := end + 1
	end = strings.Index(version[start:], ".")
	if end == -1 {
		end = len(version)
	} else {
		end += start
	}
	minor, _ = strconv.Atoi(keepNumbers(version[start:end]))
	return major, minor
}

func keepNumbers(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if i != -1 {
		return s[:i]
	}
	return s
}

// CheckRequiredVersion validates a manifest's ninja_required_version
// binding against Version. A required version newer than what this
// package implements is fatal. A required version with an older major
// version only logs a warning; an older minor version within the same
// major is accepted silently.
func CheckRequiredVersion(required string) error {
	binMajor, binMinor := ParseVersion(Version)
	fileMajor, fileMinor := ParseVersion(required)
	if binMajor > fileMajor {
		Warning("samurai version (%s) newer than build file ninja_required_version (%s)", Version, required)
		return nil
	}
	if (binMajor == fileMajor && binMinor < fileMinor) || binMajor < fileMajor {
		return fmt.Errorf("samurai version (%s) incompatible with build file ninja_required_version (%s)", Version, required)
	}
	return nil
}
