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

package count

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/streamsketch/heavyhitters-go/hashing"
	"github.com/streamsketch/heavyhitters-go/internal"
)

// DefaultWatermark is the fraction of the stream a key's estimate must reach
// during Add to be tracked as a heavy hitter candidate.
const DefaultWatermark = 0.01

var (
	// ErrInvalidNumHashes is returned when a sketch is asked for fewer than one row.
	ErrInvalidNumHashes = errors.New("number of hashes must be at least 1")
	// ErrInvalidNumBuckets is returned when the number of buckets is not a positive power of 2.
	ErrInvalidNumBuckets = errors.New("number of buckets must be a positive power of 2")
)

const maxCounters = uint64(1) << 40

type options struct {
	hashOpts  []hashing.Option
	digest    hashing.Digest
	hasher    hashing.RowHasher
	watermark float64
}

// Option configures a CountMinSketch or a CountSketch.
type Option func(*options)

// WithSeed seeds the generation of the hash parameters. Sketches built with the
// same seed and dimensions hash identically.
func WithSeed(seed uint64) Option {
	return func(opts *options) {
		opts.hashOpts = append(opts.hashOpts, hashing.WithSeed(seed))
	}
}

// WithSource draws the hash parameters from src.
func WithSource(src rand.Source) Option {
	return func(opts *options) {
		opts.hashOpts = append(opts.hashOpts, hashing.WithSource(src))
	}
}

// WithMersenneModulus switches the affine hash family to the 2^61-1 modulus and
// its shift-and-add reduction.
func WithMersenneModulus() Option {
	return func(opts *options) {
		opts.hashOpts = append(opts.hashOpts, hashing.WithMersenneModulus())
	}
}

// WithKeyedHash replaces the affine hash family with per-row seeded instances
// of digest.
func WithKeyedHash(digest hashing.Digest) Option {
	return func(opts *options) {
		opts.digest = digest
	}
}

// WithHasher uses a ready-made hash family. Its dimensions must match the
// sketch's.
func WithHasher(hasher hashing.RowHasher) Option {
	return func(opts *options) {
		opts.hasher = hasher
	}
}

// WithWatermark sets the candidate admission fraction, in [0, 1].
func WithWatermark(watermark float64) Option {
	return func(opts *options) {
		opts.watermark = watermark
	}
}

func buildOptions(opts []Option) *options {
	o := &options{watermark: DefaultWatermark}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// newHasher checks the sketch dimensions and returns the configured hash family.
func newHasher(numHashes int, numBuckets uint64, signed bool, o *options) (hashing.RowHasher, error) {
	if numHashes < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNumHashes, numHashes)
	}
	if !internal.IsPowerOf2(numBuckets) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNumBuckets, numBuckets)
	}
	if numBuckets > maxCounters/uint64(numHashes) {
		return nil, fmt.Errorf("these parameters generate a sketch that exceeds 2^40 counters: %d x %d", numHashes, numBuckets)
	}
	if math.IsNaN(o.watermark) || o.watermark < 0 || o.watermark > 1 {
		return nil, fmt.Errorf("watermark must be in [0, 1]: %v", o.watermark)
	}

	switch {
	case o.hasher != nil:
		if o.hasher.Rows() != numHashes || o.hasher.Buckets() != numBuckets {
			return nil, fmt.Errorf("hasher dimensions %d x %d do not match sketch dimensions %d x %d",
				o.hasher.Rows(), o.hasher.Buckets(), numHashes, numBuckets)
		}
		if signed && !o.hasher.Signed() {
			return nil, errors.New("hasher must provide an independent sign hash")
		}
		return o.hasher, nil
	case o.digest != nil:
		return hashing.NewKeyedFamily(numHashes, numBuckets, signed, o.digest, o.hashOpts...)
	default:
		return hashing.NewAffineFamily(numHashes, numBuckets, signed, o.hashOpts...)
	}
}
