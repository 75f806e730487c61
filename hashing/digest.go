/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package hashing

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/streamsketch/heavyhitters-go/internal"
	"github.com/twmb/murmur3"
	"github.com/zeebo/xxh3"
)

// Digest is a deterministic 64-bit keyed hash of a byte string.
type Digest func(data []byte, seed uint64) uint64

// Murmur3Digest returns the first half of MurmurHash3 x64_128.
func Murmur3Digest(data []byte, seed uint64) uint64 {
	return murmur3.SeedSum64(seed, data)
}

// SimpleMurmur3Digest computes the same value as Murmur3Digest, with a fast
// path for 8-byte keys.
func SimpleMurmur3Digest(data []byte, seed uint64) uint64 {
	if len(data) == 8 {
		h1, _ := internal.HashUint64Murmur3(binary.LittleEndian.Uint64(data), seed)
		return h1
	}
	h1, _ := murmur3.SeedSum128(seed, seed, data)
	return h1
}

// XXHashDigest returns XXH64 of data.
func XXHashDigest(data []byte, seed uint64) uint64 {
	h := xxhash.NewWithSeed(seed)
	_, _ = h.Write(data)
	return h.Sum64()
}

// XXH3Digest returns the 64-bit XXH3 of data.
func XXH3Digest(data []byte, seed uint64) uint64 {
	return xxh3.HashSeed(data, seed)
}

var digests = map[string]Digest{
	"murmur3":        Murmur3Digest,
	"murmur3-simple": SimpleMurmur3Digest,
	"xxhash":         XXHashDigest,
	"xxh3":           XXH3Digest,
}

// DigestByName looks up one of the built-in digests.
func DigestByName(name string) (Digest, error) {
	d, ok := digests[name]
	if !ok {
		return nil, fmt.Errorf("unknown digest %q, expected one of %v", name, DigestNames())
	}
	return d, nil
}

// DigestNames lists the names accepted by DigestByName.
func DigestNames() []string {
	names := make([]string, 0, len(digests))
	for name := range digests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
