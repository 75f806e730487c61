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
	"errors"
	"math/rand/v2"
)

// KeyedFamily derives every row's hash function from one Digest by giving each
// row its own seed. Signed families hold a second seed per row for the sign.
type KeyedFamily struct {
	rows    int
	mask    uint64
	signed  bool
	digest  Digest
	seeds   []uint64
	scratch [8]byte
}

// NewKeyedFamily seeds rows instances of digest onto buckets buckets.
func NewKeyedFamily(rows int, buckets uint64, signed bool, digest Digest, opts ...Option) (*KeyedFamily, error) {
	if err := checkDimensions(rows, buckets); err != nil {
		return nil, err
	}
	if digest == nil {
		return nil, errors.New("digest must not be nil")
	}
	o := buildOptions(opts)

	numSeeds := rows
	if signed {
		numSeeds = 2 * rows
	}
	rng := rand.New(o.source)
	seeds := make([]uint64, numSeeds)
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	return &KeyedFamily{
		rows:   rows,
		mask:   buckets - 1,
		signed: signed,
		digest: digest,
		seeds:  seeds,
	}, nil
}

func (f *KeyedFamily) Rows() int {
	return f.rows
}

func (f *KeyedFamily) Buckets() uint64 {
	return f.mask + 1
}

func (f *KeyedFamily) Signed() bool {
	return f.signed
}

func (f *KeyedFamily) Coefficients() int {
	return len(f.seeds)
}

func (f *KeyedFamily) Bucket(row int, key uint64) uint64 {
	return f.sum(key, f.seeds[row]) & f.mask
}

// Sign uses the top bit of the digest, which Bucket never looks at for an
// unsigned family.
func (f *KeyedFamily) Sign(row int, key uint64) int64 {
	seed := f.seeds[row]
	if f.signed {
		seed = f.seeds[f.rows+row]
	}
	return int64(f.sum(key, seed)>>63)*2 - 1
}

func (f *KeyedFamily) sum(key uint64, seed uint64) uint64 {
	binary.LittleEndian.PutUint64(f.scratch[:], key)
	return f.digest(f.scratch[:], seed)
}
