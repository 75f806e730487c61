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

// Package count implements counter-table frequency sketches: the Count-Min
// sketch, which never underestimates, and the Count sketch, whose median
// estimator is unbiased. Both track heavy hitter candidates while counting so
// that HeavyHitters never scans the key universe.
package count

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/streamsketch/heavyhitters-go/common"
	"github.com/streamsketch/heavyhitters-go/hashing"
	"github.com/streamsketch/heavyhitters-go/internal"
)

var _ common.FrequencySketch = (*CountMinSketch)(nil)

// CountMinSketch keeps numHashes rows of numBuckets non-negative counters.
// A key increments one counter per row and its estimate is the smallest of
// them, so collisions can only inflate it.
type CountMinSketch struct {
	numHashes    int
	numBuckets   uint64
	streamLength uint64
	table        []uint64 // row-major, numHashes * numBuckets
	hasher       hashing.RowHasher
	candidates   *candidateSet
}

// NewCountMinSketch returns an empty sketch with numHashes rows of numBuckets
// counters. numBuckets must be a power of 2.
func NewCountMinSketch(numHashes int, numBuckets uint64, opts ...Option) (*CountMinSketch, error) {
	o := buildOptions(opts)
	hasher, err := newHasher(numHashes, numBuckets, false, o)
	if err != nil {
		return nil, err
	}

	return &CountMinSketch{
		numHashes:  numHashes,
		numBuckets: numBuckets,
		table:      make([]uint64, uint64(numHashes)*numBuckets),
		hasher:     hasher,
		candidates: newCandidateSet(o.watermark),
	}, nil
}

// NumHashes returns the number of rows.
func (c *CountMinSketch) NumHashes() int {
	return c.numHashes
}

// NumBuckets returns the number of counters per row.
func (c *CountMinSketch) NumBuckets() uint64 {
	return c.numBuckets
}

// StreamLength returns the number of keys added so far.
func (c *CountMinSketch) StreamLength() uint64 {
	return c.streamLength
}

// NumCandidates returns the number of tracked heavy hitter candidates.
func (c *CountMinSketch) NumCandidates() int {
	return c.candidates.len()
}

// RelativeError returns e / numBuckets: with probability 1 - e^-numHashes an
// estimate exceeds the true count by at most RelativeError() * StreamLength().
func (c *CountMinSketch) RelativeError() float64 {
	return math.E / float64(c.numBuckets)
}

// Add records one occurrence of key.
func (c *CountMinSketch) Add(key uint64) {
	estimate := uint64(math.MaxUint64)
	for row := 0; row < c.numHashes; row++ {
		i := uint64(row)*c.numBuckets + c.hasher.Bucket(row, key)
		c.table[i]++
		estimate = min(estimate, c.table[i])
	}
	c.streamLength++
	c.candidates.observe(key, estimate, c.streamLength)
}

// Estimate returns the minimum of key's counters. It is never below the true
// count of key.
func (c *CountMinSketch) Estimate(key uint64) uint64 {
	estimate := uint64(math.MaxUint64)
	for row := 0; row < c.numHashes; row++ {
		estimate = min(estimate, c.table[uint64(row)*c.numBuckets+c.hasher.Bucket(row, key)])
	}
	return estimate
}

// UpperBound returns Estimate(key), which never undercounts.
func (c *CountMinSketch) UpperBound(key uint64) uint64 {
	return c.Estimate(key)
}

// LowerBound returns Estimate(key) minus the a priori error RelativeError() *
// StreamLength(), floored at zero. It holds with probability 1 - e^-numHashes.
func (c *CountMinSketch) LowerBound(key uint64) uint64 {
	estimate := c.Estimate(key)
	slack := uint64(c.RelativeError() * float64(c.streamLength))
	if slack >= estimate {
		return 0
	}
	return estimate - slack
}

// HeavyHitters returns the candidates whose estimate is at least phi times the
// stream length, by descending estimate and then ascending key.
func (c *CountMinSketch) HeavyHitters(phi float64) []common.HeavyHitter {
	return c.candidates.collect(phi, c.streamLength, c.Estimate)
}

// Size returns the bytes held by the counters, the hash parameters and the
// candidate set.
func (c *CountMinSketch) Size() uint64 {
	return uint64(unsafe.Sizeof(*c)) +
		uint64(len(c.table))*8 +
		uint64(c.hasher.Coefficients())*8 +
		c.candidates.size()
}

func (c *CountMinSketch) String() string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("### %s SUMMARY:", internal.FamilyEnum.CountMin.Name))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   num hashes      : %d", c.numHashes))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   num buckets     : %d", c.numBuckets))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   stream length   : %d", c.streamLength))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   relative error  : %f", c.RelativeError()))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   candidates      : %d", c.candidates.len()))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   size bytes      : %d", c.Size()))
	result.WriteString("\n")
	result.WriteString("### End sketch summary")
	result.WriteString("\n")
	return result.String()
}
