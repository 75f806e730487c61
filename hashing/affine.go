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
	"math/bits"
	"math/rand/v2"
)

const (
	// LargePrime is the largest prime below 2^64.
	LargePrime = uint64(0xffffffffffffffc5)
	// MersennePrime is 2^61-1.
	MersennePrime = uint64(1<<61 - 1)

	mersenneBits = 61
)

// AffineFamily is a pairwise independent family of hash functions
// h(x) = ((a*x + b) mod p) mod k, with k a power of 2.
//
// Every row owns an (a, b) pair for bucket selection and, for signed families,
// a second independent pair whose parity gives the sign. The pairs live in a
// single slice with 2 or 4 entries per row.
type AffineFamily struct {
	rows     int
	mask     uint64
	stride   int
	signed   bool
	mersenne bool
	prime    uint64
	coeffs   []uint64
}

// NewAffineFamily draws a family of rows affine hash functions onto buckets
// buckets. When signed is true each row also gets a sign hash.
func NewAffineFamily(rows int, buckets uint64, signed bool, opts ...Option) (*AffineFamily, error) {
	if err := checkDimensions(rows, buckets); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	prime := LargePrime
	if o.mersenne {
		prime = MersennePrime
	}
	stride := 2
	if signed {
		stride = 4
	}

	rng := rand.New(o.source)
	coeffs := make([]uint64, rows*stride)
	for i := 0; i < len(coeffs); i += 2 {
		coeffs[i] = 1 + rng.Uint64N(prime-1) // 0 < a < p
		coeffs[i+1] = rng.Uint64N(prime)     // 0 <= b < p
	}

	return &AffineFamily{
		rows:     rows,
		mask:     buckets - 1,
		stride:   stride,
		signed:   signed,
		mersenne: o.mersenne,
		prime:    prime,
		coeffs:   coeffs,
	}, nil
}

func (f *AffineFamily) Rows() int {
	return f.rows
}

func (f *AffineFamily) Buckets() uint64 {
	return f.mask + 1
}

func (f *AffineFamily) Signed() bool {
	return f.signed
}

func (f *AffineFamily) Coefficients() int {
	return len(f.coeffs)
}

// Prime returns the modulus p.
func (f *AffineFamily) Prime() uint64 {
	return f.prime
}

func (f *AffineFamily) Bucket(row int, key uint64) uint64 {
	i := row * f.stride
	return f.hash(f.coeffs[i], f.coeffs[i+1], key) & f.mask
}

// Sign falls back to the parity of the bucket hash for unsigned families.
func (f *AffineFamily) Sign(row int, key uint64) int64 {
	i := row * f.stride
	if f.signed {
		i += 2
	}
	return int64(f.hash(f.coeffs[i], f.coeffs[i+1], key)&1)*2 - 1
}

func (f *AffineFamily) hash(a, b, x uint64) uint64 {
	if f.mersenne {
		return mersenneAffine(a, b, x)
	}
	return affine(a, b, x, f.prime)
}

// affine returns (a*x + b) mod p using the full 128-bit intermediate.
func affine(a, b, x, p uint64) uint64 {
	hi, lo := bits.Mul64(a, x)
	lo, carry := bits.Add64(lo, b, 0)
	return bits.Rem64(hi+carry, lo, p)
}

// mersenneAffine returns (a*x + b) mod 2^61-1 for a, b < 2^61-1.
//
// For p = 2^s - 1, u = hi*2^s + lo is congruent to hi + lo, so the 128-bit
// intermediate is folded at bit 61 until it fits below p.
func mersenneAffine(a, b, x uint64) uint64 {
	x = mersenneFold(x)
	hi, lo := bits.Mul64(a, x)
	lo, carry := bits.Add64(lo, b, 0)
	hi += carry

	// a*x + b < 2^122 + 2^61, so the upper part fits in 62 bits.
	upper := hi<<(64-mersenneBits) | lo>>mersenneBits
	return mersenneFold((lo & MersennePrime) + upper)
}

// mersenneFold reduces any 64-bit value modulo 2^61-1.
func mersenneFold(v uint64) uint64 {
	v = (v & MersennePrime) + (v >> mersenneBits)
	if v >= MersennePrime {
		v -= MersennePrime
	}
	return v
}
