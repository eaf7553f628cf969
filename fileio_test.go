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
	"path/filepath"
	"testing"
)

func TestDefaultFileReaderReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.ninja")
	if err := os.WriteFile(path, []byte("rule r\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	got, err := DefaultFileReader.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if got != "rule r\n" {
		t.Errorf("ReadFile() = %q, want %q", got, "rule r\n")
	}
}

func TestDefaultFileReaderMissingFileWrapsError(t *testing.T) {
	_, err := DefaultFileReader.ReadFile(filepath.Join(t.TempDir(), "missing.ninja"))
	if err == nil {
		t.Fatalf("ReadFile() on missing file = nil error, want error")
	}
}
