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

import (
	"encoding/binary"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/murmur3"
)

func TestHashUint64MatchesMurmur3(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	keys := []uint64{0, 1, 42, 1 << 63, ^uint64(0)}
	for range 100 {
		keys = append(keys, rng.Uint64())
	}

	var buf [8]byte
	for _, seed := range []uint64{0, DefaultUpdateSeed, rng.Uint64()} {
		for _, key := range keys {
			binary.LittleEndian.PutUint64(buf[:], key)
			wantLo, wantHi := murmur3.SeedSum128(seed, seed, buf[:])
			gotLo, gotHi := HashUint64Murmur3(key, seed)
			assert.Equal(t, wantLo, gotLo, "key=%d seed=%d", key, seed)
			assert.Equal(t, wantHi, gotHi, "key=%d seed=%d", key, seed)
		}
	}
}

func BenchmarkHashUint64Murmur3(b *testing.B) {
	b.Run("custom murmur3", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			HashUint64Murmur3(uint64(i), DefaultUpdateSeed)
		}
	})

	b.Run("twmb murmur3", func(b *testing.B) {
		var buf [8]byte
		for i := 0; i < b.N; i++ {
			binary.LittleEndian.PutUint64(buf[:], uint64(i))
			murmur3.SeedSum128(DefaultUpdateSeed, DefaultUpdateSeed, buf[:])
		}
	})
}
