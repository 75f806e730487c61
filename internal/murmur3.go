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

package internal

const (
	c1 = 0x87c37b91114253d5
	c2 = 0x4cf5ad432745937f
)

// SimpleMurmur3 is the state of a MurmurHash3 x64_128 computation.
type SimpleMurmur3 struct {
	h1 uint64
	h2 uint64
}

// HashUint64Murmur3 returns MurmurHash3 x64_128 of the 8 little-endian bytes of
// key under the given seed, without materialising the byte slice.
func HashUint64Murmur3(key uint64, seed uint64) (uint64, uint64) {
	hashState := SimpleMurmur3{h1: seed, h2: seed}
	// 8 bytes never fill a 16-byte block: the whole key is tail.
	return hashState.finalMix128(key, 0, 8)
}

func mixK1(k1 uint64) uint64 {
	k1 *= c1
	k1 = (k1 << 31) | (k1 >> (64 - 31))
	k1 *= c2
	return k1
}

func mixK2(k2 uint64) uint64 {
	k2 *= c2
	k2 = (k2 << 33) | (k2 >> (64 - 33))
	k2 *= c1
	return k2
}

func finalMix64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

func (m *SimpleMurmur3) finalMix128(k1, k2, inputLengthBytes uint64) (uint64, uint64) {
	m.h1 ^= mixK1(k1)
	m.h2 ^= mixK2(k2)
	m.h1 ^= inputLengthBytes
	m.h2 ^= inputLengthBytes
	m.h1 += m.h2
	m.h2 += m.h1
	m.h1 = finalMix64(m.h1)
	m.h2 = finalMix64(m.h2)
	m.h1 += m.h2
	m.h2 += m.h1
	return m.h1, m.h2
}
