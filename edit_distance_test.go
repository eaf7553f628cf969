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

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"kitten", "sitting", 3},
		{"targett", "target", 1},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b, true, 0); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEditDistanceMaxCutoff(t *testing.T) {
	got := editDistance("abcdef", "uvwxyz", true, 2)
	if got <= 2 {
		t.Errorf("editDistance with unrelated strings and max=2 = %d, want > 2", got)
	}
}

func TestEditDistanceNoReplacements(t *testing.T) {
	// Without replacements, a single substitution costs two edits
	// (a delete plus an insert) instead of one.
	got := editDistance("abc", "abd", false, 0)
	if got != 2 {
		t.Errorf("editDistance(abc, abd, false) = %d, want 2", got)
	}
}
