// Copyright 2011 Google Inc. All Rights Reserved.
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
	"os"

	"github.com/pkg/errors"
)

// FileReader abstracts reading a manifest file, letting tests substitute an
// in-memory source for `include`/`subninja` without touching the
// filesystem.
type FileReader interface {
	ReadFile(path string) (string, error)
}

// osFileReader is the default FileReader, backed by the real filesystem.
type osFileReader struct{}

// DefaultFileReader reads manifests from disk.
var DefaultFileReader FileReader = osFileReader{}

func (osFileReader) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading manifest %q", path)
	}
	return string(b), nil
}
