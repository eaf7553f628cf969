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

import "encoding/binary"

const (
	murmurSeed = 0xDECAFBADDECAFBAD
	murmurM    = 0xc6a4a7935bd1e995
	murmurR    = 47
)

// MurmurHash64A is Austin Appleby's 64-bit MurmurHash2, used by edgehash to
// fingerprint an edge's expanded command line (and rspfile content, when
// present) the same way graph.c's edgehash does.
func MurmurHash64A(data []byte) uint64 {
	h := uint64(murmurSeed) ^ (uint64(len(data)) * murmurM)

	for len(data) >= 8 {
		k := binary.LittleEndian.Uint64(data)
		k *= murmurM
		k ^= k >> murmurR
		k *= murmurM
		h ^= k
		h *= murmurM
		data = data[8:]
	}

	switch len(data) {
	case 7:
		h ^= uint64(data[6]) << 48
		fallthrough
	case 6:
		h ^= uint64(data[5]) << 40
		fallthrough
	case 5:
		h ^= uint64(data[4]) << 32
		fallthrough
	case 4:
		h ^= uint64(data[3]) << 24
		fallthrough
	case 3:
		h ^= uint64(data[2]) << 16
		fallthrough
	case 2:
		h ^= uint64(data[1]) << 8
		fallthrough
	case 1:
		h ^= uint64(data[0])
		h *= murmurM
	}

	h ^= h >> murmurR
	h *= murmurM
	h ^= h >> murmurR
	return h
}

// rspfileSeparator is spliced between an edge's command and its rspfile
// content before hashing, so that two edges with the same command but
// different response-file bodies hash differently.
const rspfileSeparator = ";rspfile="

// EdgeHash computes and caches e.Hash, matching edgehash from spec.md
// §4.5: the hash covers the shell-escaped, fully expanded command, plus
// (when the edge writes a response file) a separator and the expanded
// rspfile_content. It is idempotent: a second call is a no-op, tracked via
// FlagHash the same way graph.c's FLAG_HASH bit guards re-hashing.
func EdgeHash(e *Edge) {
	if e.Flags&FlagHash != 0 {
		return
	}
	e.Flags |= FlagHash

	cmd := EdgeVar(e, "command", true)
	rsp := EdgeVar(e, "rspfile_content", true)
	if rsp != "" {
		e.Hash = MurmurHash64A([]byte(cmd + rspfileSeparator + rsp))
	} else {
		e.Hash = MurmurHash64A([]byte(cmd))
	}
}
