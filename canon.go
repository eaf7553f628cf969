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

func isPathSeparator(c byte) bool {
	return c == '/' || c == '\\'
}

// CanonicalizePath collapses repeated separators, strips "./" segments,
// and resolves ".." against the accumulated prefix — never past the root
// of a relative path, where unresolved ".." segments are preserved at the
// front. It is idempotent: CanonicalizePath(CanonicalizePath(p)) ==
// CanonicalizePath(p). An empty result is an error, matching spec.md
// §4.3/§7's "canonicalization producing the empty string" internal error.
//
// This is a direct port of samurai's canonpath (graph.c/util.c lineage),
// rewritten over Go strings instead of in-place byte-pointer arithmetic.
func CanonicalizePath(path string) (string, error) {
	if len(path) == 0 {
		return "", errEmptyPath
	}

	buf := []byte(path)
	n := len(buf)

	// Components holds the start offset, in the output buffer, of each
	// path component written so far, so that a ".." can back up to it.
	var components []int

	src := 0
	dst := 0
	if isPathSeparator(buf[src]) {
		// A leading "//" is a network path; preserve exactly two slashes.
		if n > 1 && isPathSeparator(buf[src+1]) {
			buf[dst] = '/'
			buf[dst+1] = '/'
			src += 2
			dst += 2
		} else {
			buf[dst] = '/'
			src++
			dst++
		}
	}

	for src < n {
		if buf[src] == '.' {
			if src+1 == n || isPathSeparator(buf[src+1]) {
				// "." component: drop it (and the following separator, if
				// any).
				src += 2
				continue
			}
			if buf[src+1] == '.' && (src+2 == n || isPathSeparator(buf[src+2])) {
				// ".." component: back up to the previous component if one
				// exists in this output, otherwise keep it literally.
				if len(components) > 0 {
					dst = components[len(components)-1]
					components = components[:len(components)-1]
					src += 3
				} else {
					// Copy the literal ".." plus its trailing separator, if
					// the input actually has one (it may not, at the very
					// end of the path).
					l := 2
					if src+2 < n {
						l = 3
					}
					copy(buf[dst:dst+l], buf[src:src+l])
					dst += l
					src += l
				}
				continue
			}
		}

		if isPathSeparator(buf[src]) {
			src++
			continue
		}

		components = append(components, dst)
		for src < n && !isPathSeparator(buf[src]) {
			buf[dst] = buf[src]
			dst++
			src++
		}
		if src < n {
			buf[dst] = '/'
			dst++
			src++
		}
	}

	if dst == 0 {
		return "", errEmptyPath
	}
	// Strip a single trailing separator, unless the whole result is "/".
	if dst > 1 && buf[dst-1] == '/' {
		dst--
	}
	return string(buf[:dst]), nil
}

// errEmptyPath is returned by CanonicalizePath when the input, or the
// canonicalized result, is empty.
var errEmptyPath = &CanonError{}

// CanonError reports that a path could not be canonicalized.
type CanonError struct{}

func (*CanonError) Error() string { return "empty path" }
