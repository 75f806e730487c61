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
	"fmt"
	"math"
	"strings"
	"unsafe"

	"github.com/streamsketch/heavyhitters-go/common"
	"github.com/streamsketch/heavyhitters-go/hashing"
	"github.com/streamsketch/heavyhitters-go/internal"
)

var _ common.FrequencySketch = (*CountSketch)(nil)

// CountSketch keeps numHashes rows of numBuckets signed counters. A key adds
// its row sign, +1 or -1, to one counter per row. Multiplying a counter back by
// the key's sign leaves the key's count plus zero-mean noise from colliding
// keys, and the median over the rows is the estimate.
type CountSketch struct {
	numHashes    int
	numBuckets   uint64
	streamLength uint64
	table        []int64 // row-major, numHashes * numBuckets
	hasher       hashing.RowHasher
	candidates   *candidateSet
	readings     []int64 // per-row scratch for the median
}

// NewCountSketch returns an empty sketch with numHashes rows of numBuckets
// counters. numBuckets must be a power of 2.
func NewCountSketch(numHashes int, numBuckets uint64, opts ...Option) (*CountSketch, error) {
	o := buildOptions(opts)
	hasher, err := newHasher(numHashes, numBuckets, true, o)
	if err != nil {
		return nil, err
	}

	return &CountSketch{
		numHashes:  numHashes,
		numBuckets: numBuckets,
		table:      make([]int64, uint64(numHashes)*numBuckets),
		hasher:     hasher,
		candidates: newCandidateSet(o.watermark),
		readings:   make([]int64, numHashes),
	}, nil
}

// NumHashes returns the number of rows.
func (c *CountSketch) NumHashes() int {
	return c.numHashes
}

// NumBuckets returns the number of counters per row.
func (c *CountSketch) NumBuckets() uint64 {
	return c.numBuckets
}

// StreamLength returns the number of keys added so far.
func (c *CountSketch) StreamLength() uint64 {
	return c.streamLength
}

// NumCandidates returns the number of tracked heavy hitter candidates.
func (c *CountSketch) NumCandidates() int {
	return c.candidates.len()
}

// RelativeError returns 1 / sqrt(numBuckets), the scale of the per-row
// standard deviation relative to the L2 norm of the stream.
func (c *CountSketch) RelativeError() float64 {
	return 1 / math.Sqrt(float64(c.numBuckets))
}

// Add records one occurrence of key.
func (c *CountSketch) Add(key uint64) {
	for row := 0; row < c.numHashes; row++ {
		c.table[uint64(row)*c.numBuckets+c.hasher.Bucket(row, key)] += c.hasher.Sign(row, key)
	}
	c.streamLength++
	c.candidates.observe(key, c.Estimate(key), c.streamLength)
}

// Estimate returns the median of key's sign-corrected counters, clamped at
// zero. For an even number of rows the upper median is used.
func (c *CountSketch) Estimate(key uint64) uint64 {
	for row := 0; row < c.numHashes; row++ {
		counter := c.table[uint64(row)*c.numBuckets+c.hasher.Bucket(row, key)]
		c.readings[row] = c.hasher.Sign(row, key) * counter
	}
	median := internal.Median(c.readings)
	if median < 0 {
		return 0
	}
	return uint64(median)
}

// HeavyHitters returns the candidates whose estimate is at least phi times the
// stream length, by descending estimate and then ascending key.
func (c *CountSketch) HeavyHitters(phi float64) []common.HeavyHitter {
	return c.candidates.collect(phi, c.streamLength, c.Estimate)
}

// Size returns the bytes held by the counters, the hash parameters, the median
// scratch space and the candidate set.
func (c *CountSketch) Size() uint64 {
	return uint64(unsafe.Sizeof(*c)) +
		uint64(len(c.table))*8 +
		uint64(c.hasher.Coefficients())*8 +
		uint64(len(c.readings))*8 +
		c.candidates.size()
}

func (c *CountSketch) String() string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("### %s SUMMARY:", internal.FamilyEnum.CountSketch.Name))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   num hashes      : %d", c.numHashes))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   num buckets     : %d", c.numBuckets))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   stream length   : %d", c.streamLength))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   candidates      : %d", c.candidates.len()))
	result.WriteString("\n")
	result.WriteString(fmt.Sprintf("   size bytes      : %d", c.Size()))
	result.WriteString("\n")
	result.WriteString("### End sketch summary")
	result.WriteString("\n")
	return result.String()
}
