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

import "testing"

func TestCanonicalizePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"foo.h", "foo.h"},
		{"./foo.h", "foo.h"},
		{"./foo/./bar.h", "foo/bar.h"},
		{"./x/../foo.h", "foo.h"},
		{"foo//bar", "foo/bar"},
		{"foo/./bar", "foo/bar"},
		{"foo/bar/..", "foo"},
		{"//foo", "//foo"},
		{"foo/", "foo"},
		{"..", ".."},
		{"../foo", "../foo"},
		{"../../foo", "../../foo"},
		{"a/../../b", "../b"},
	}

	for _, tt := range tests {
		got, err := CanonicalizePath(tt.in)
		if err != nil {
			t.Errorf("CanonicalizePath(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CanonicalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalizePathEmpty(t *testing.T) {
	if _, err := CanonicalizePath(""); err == nil {
		t.Errorf("CanonicalizePath(\"\") = nil error, want error")
	}
}

// TestCanonicalizePathFullCollapseIsFatal covers spec.md §7's "internal
// error: canonicalization producing the empty string" case: a path that
// backs all the way out past everything it wrote has no component left to
// return to, and is rejected rather than silently becoming ".".
func TestCanonicalizePathFullCollapseIsFatal(t *testing.T) {
	if _, err := CanonicalizePath("foo/bar/../.."); err == nil {
		t.Errorf("CanonicalizePath(foo/bar/../..) = nil error, want error")
	}
}

func TestCanonicalizePathIdempotent(t *testing.T) {
	inputs := []string{"./a/b/../c", "a//b/", "../a/./b", "//net/path"}
	for _, in := range inputs {
		once, err := CanonicalizePath(in)
		if err != nil {
			t.Fatalf("CanonicalizePath(%q) error: %v", in, err)
		}
		twice, err := CanonicalizePath(once)
		if err != nil {
			t.Fatalf("CanonicalizePath(%q) (second pass) error: %v", once, err)
		}
		if once != twice {
			t.Errorf("CanonicalizePath not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}
