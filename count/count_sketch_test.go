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
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamsketch/heavyhitters-go/hashing"
	"github.com/streamsketch/heavyhitters-go/internal"
)

// collidingHasher sends every key to bucket 0 with sign +1 for even keys and
// -1 for odd keys.
type collidingHasher struct {
	rows    int
	buckets uint64
}

func (h collidingHasher) Rows() int                 { return h.rows }
func (h collidingHasher) Buckets() uint64           { return h.buckets }
func (h collidingHasher) Signed() bool              { return true }
func (h collidingHasher) Coefficients() int         { return 0 }
func (h collidingHasher) Bucket(int, uint64) uint64 { return 0 }
func (h collidingHasher) Sign(_ int, key uint64) int64 {
	if key%2 == 0 {
		return 1
	}
	return -1
}

// rowSignHasher uses one bucket; row 0 gives every key +1, row 1 gives odd
// keys -1.
type rowSignHasher struct{}

func (rowSignHasher) Rows() int                 { return 2 }
func (rowSignHasher) Buckets() uint64           { return 1 }
func (rowSignHasher) Signed() bool              { return true }
func (rowSignHasher) Coefficients() int         { return 0 }
func (rowSignHasher) Bucket(int, uint64) uint64 { return 0 }
func (rowSignHasher) Sign(row int, key uint64) int64 {
	if row == 1 && key%2 == 1 {
		return -1
	}
	return 1
}

func TestCountSketch(t *testing.T) {
	cs, err := NewCountSketch(5, 128, WithSeed(3))
	require.NoError(t, err)
	x := uint64(0xfeedface)

	assert.Equal(t, uint64(0), cs.Estimate(x))
	for range 10000 {
		cs.Add(x)
	}
	assert.Equal(t, uint64(10000), cs.Estimate(x))
	assert.InEpsilon(t, 10000, cs.Estimate(x), 0.05)
	assert.Equal(t, uint64(10000), cs.StreamLength())
	assert.Equal(t, 5, cs.NumHashes())
	assert.Equal(t, uint64(128), cs.NumBuckets())
	assert.Equal(t, 1, cs.NumCandidates())
	assert.Equal(t, 5*internal.FamilyEnum.CountSketch.CoeffsPerRow, cs.hasher.Coefficients())
	assert.Contains(t, cs.String(), "CountSketch")
}

func TestNewCountSketchValidation(t *testing.T) {
	unsigned, err := hashing.NewAffineFamily(3, 16, false)
	require.NoError(t, err)

	_, err = NewCountSketch(0, 16)
	assert.ErrorIs(t, err, ErrInvalidNumHashes)
	_, err = NewCountSketch(3, 0)
	assert.ErrorIs(t, err, ErrInvalidNumBuckets)
	_, err = NewCountSketch(5, 100)
	assert.ErrorIs(t, err, ErrInvalidNumBuckets)
	_, err = NewCountSketch(3, 16, WithHasher(unsigned))
	assert.Error(t, err)

	signed, err := hashing.NewKeyedFamily(3, 16, true, hashing.SimpleMurmur3Digest)
	require.NoError(t, err)
	cs, err := NewCountSketch(3, 16, WithHasher(signed))
	assert.NoError(t, err)
	assert.NotNil(t, cs)
}

func TestCountSketchClampsAtZero(t *testing.T) {
	cs, err := NewCountSketch(3, 4, WithHasher(collidingHasher{rows: 3, buckets: 4}))
	require.NoError(t, err)

	for range 10 {
		cs.Add(2)
	}
	assert.Equal(t, uint64(10), cs.Estimate(2))
	assert.Equal(t, uint64(0), cs.Estimate(3))

	for range 4 {
		cs.Add(5)
	}
	assert.Equal(t, uint64(6), cs.Estimate(4))
	assert.Equal(t, uint64(0), cs.Estimate(5))
}

func TestCountSketchEvenRowsUseUpperMedian(t *testing.T) {
	cs, err := NewCountSketch(2, 1, WithHasher(rowSignHasher{}))
	require.NoError(t, err)

	for range 5 {
		cs.Add(2)
	}
	for range 3 {
		cs.Add(3)
	}
	// row 0 reads 8 for both keys, row 1 reads 2 for key 2 and -2 for key 3
	assert.Equal(t, uint64(8), cs.Estimate(2))
	assert.Equal(t, uint64(8), cs.Estimate(3))
}

func TestCountSketchIsUnbiased(t *testing.T) {
	const (
		trials    = 200
		frequency = 200
		numNoise  = 2000
	)
	r := rand.New(rand.NewPCG(2024, 10))
	noise := make([]uint64, numNoise)
	for i := range noise {
		noise[i] = r.Uint64()
	}
	target := uint64(42)

	var sum float64
	for trial := uint64(1); trial <= trials; trial++ {
		cs, err := NewCountSketch(5, 64, WithSeed(trial))
		require.NoError(t, err)
		for i, key := range noise {
			cs.Add(key)
			if i%10 == 0 {
				cs.Add(target)
			}
		}
		sum += float64(cs.Estimate(target))
	}
	assert.InDelta(t, frequency, sum/trials, 3)
}

func TestCountSketchHeavyHitters(t *testing.T) {
	for name, opts := range hashOptionVariants() {
		t.Run(name, func(t *testing.T) {
			cs, err := NewCountSketch(5, 2048, append(opts, WithSeed(17))...)
			require.NoError(t, err)

			keys, truth := skewedStream(13, 50000, 1<<10)
			for _, key := range keys {
				cs.Add(key)
			}

			hh := cs.HeavyHitters(0.02)
			for i := 1; i < len(hh); i++ {
				assert.GreaterOrEqual(t, hh[i-1].Count, hh[i].Count)
			}
			reported := make(map[uint64]bool)
			for _, row := range hh {
				reported[row.Key] = true
				assert.GreaterOrEqual(t, float64(row.Count), 0.02*float64(cs.StreamLength()))
			}
			for key, n := range truth {
				if n >= 2000 {
					assert.True(t, reported[key], "missing heavy hitter %d (%d)", key, n)
					assert.InEpsilon(t, n, cs.Estimate(key), 0.1)
				}
			}
		})
	}
}

func TestCountSketchEmptyStream(t *testing.T) {
	cs, err := NewCountSketch(5, 128)
	require.NoError(t, err)
	for _, phi := range []float64{-1, 0, 0.5, 1} {
		hh := cs.HeavyHitters(phi)
		assert.NotNil(t, hh)
		assert.Empty(t, hh)
	}
}

func TestCountSketchSizeNeverShrinks(t *testing.T) {
	cs, err := NewCountSketch(5, 256)
	require.NoError(t, err)

	base := cs.Size()
	assert.GreaterOrEqual(t, base, uint64(5*256*8+5*4*8))

	prev := base
	keys, _ := skewedStream(5, 10000, 1<<16)
	for _, key := range keys {
		cs.Add(key)
		size := cs.Size()
		require.GreaterOrEqual(t, size, prev)
		prev = size
	}
	assert.Equal(t, base+uint64(cs.NumCandidates())*8, cs.Size())
}

func BenchmarkCountSketchAdd(b *testing.B) {
	for name, opts := range hashOptionVariants() {
		b.Run(name, func(b *testing.B) {
			cs, _ := NewCountSketch(5, 1024, opts...)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				cs.Add(uint64(i & 0xffff))
			}
		})
	}
}
