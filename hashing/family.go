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

// Package hashing provides the per-row hash families used by the probabilistic
// frequency sketches to select a bucket, and optionally a sign, for a key.
//
// Two strategies are available. AffineFamily draws a pairwise independent
// function h(x) = ((a*x + b) mod p) for every row and is the default.
// KeyedFamily seeds a general purpose 64-bit digest per row; it is faster on
// some platforms but only offers average-case guarantees.
package hashing

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/streamsketch/heavyhitters-go/internal"
)

var (
	// ErrInvalidRows is returned when a family is asked for fewer than one row.
	ErrInvalidRows = errors.New("number of rows must be at least 1")
	// ErrInvalidBuckets is returned when the bucket count is not a positive power of 2.
	ErrInvalidBuckets = errors.New("number of buckets must be a positive power of 2")
)

// RowHasher maps a key to a bucket, and to a sign, independently for each row
// of a sketch.
type RowHasher interface {
	// Rows returns the number of independent hash functions.
	Rows() int
	// Buckets returns the size of the bucket range, always a power of 2.
	Buckets() uint64
	// Signed reports whether Sign is backed by its own hash function.
	Signed() bool
	// Bucket returns the bucket of key in the given row, in [0, Buckets()).
	Bucket(row int, key uint64) uint64
	// Sign returns -1 or +1 for key in the given row.
	Sign(row int, key uint64) int64
	// Coefficients returns the number of 64-bit parameters held by the family.
	Coefficients() int
}

type options struct {
	source   rand.Source
	mersenne bool
}

// Option configures the construction of a hash family.
type Option func(*options)

// WithSeed draws the hash parameters from a PCG source seeded with seed.
// Families built with the same seed and dimensions are identical.
func WithSeed(seed uint64) Option {
	return func(opts *options) {
		opts.source = rand.NewPCG(seed, seed^pcgStream)
	}
}

// WithSource draws the hash parameters from src.
func WithSource(src rand.Source) Option {
	return func(opts *options) {
		if src != nil {
			opts.source = src
		}
	}
}

// WithMersenneModulus makes AffineFamily work modulo the Mersenne prime 2^61-1
// and reduce with shifts and adds instead of a 128-bit division. Keys are
// reduced modulo 2^61-1 first, so keys that differ by a multiple of it always
// collide.
func WithMersenneModulus() Option {
	return func(opts *options) {
		opts.mersenne = true
	}
}

const pcgStream = 0xda3e39cb94b95bdb

func buildOptions(opts []Option) *options {
	o := &options{}
	WithSeed(internal.DefaultUpdateSeed)(o)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func checkDimensions(rows int, buckets uint64) error {
	if rows < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRows, rows)
	}
	if !internal.IsPowerOf2(buckets) {
		return fmt.Errorf("%w: %d", ErrInvalidBuckets, buckets)
	}
	return nil
}
