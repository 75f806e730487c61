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

package frequencies

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamsketch/heavyhitters-go/common"
)

func TestMisraGriesKeepsOnlyKMinusOneCounters(t *testing.T) {
	s, err := NewMisraGries(3)
	require.NoError(t, err)
	for _, key := range []uint64{1, 1, 1, 2, 3, 4} {
		s.Add(key)
	}
	assert.Equal(t, 2, s.NumActive())
	assert.Equal(t, uint64(2), s.Estimate(1))
	assert.Equal(t, uint64(0), s.Estimate(2))
	assert.Equal(t, uint64(0), s.Estimate(3))
	assert.Equal(t, uint64(1), s.Estimate(4))
	assert.Equal(t, uint64(6), s.StreamLength())
	assert.Equal(t, uint64(1), s.MaximumError())
	assert.Equal(t, uint64(3), s.UpperBound(1))
	assert.Equal(t, uint64(2), s.LowerBound(1))
}

func TestMisraGriesInvalidCapacity(t *testing.T) {
	s, err := NewMisraGries(0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
	assert.Nil(t, s)
}

func TestMisraGriesCapacityOne(t *testing.T) {
	s, err := NewMisraGries(1)
	require.NoError(t, err)
	for range 10 {
		s.Add(42)
	}
	assert.Equal(t, uint64(0), s.Capacity())
	assert.Equal(t, 0, s.NumActive())
	assert.Equal(t, uint64(0), s.Estimate(42))
	assert.Equal(t, uint64(10), s.MaximumError())
	assert.Equal(t, uint64(10), s.UpperBound(42))
	assert.Empty(t, s.HeavyHitters(0))
}

func TestMisraGriesErrorBound(t *testing.T) {
	for _, k := range []uint64{2, 5, 16, 100} {
		s, err := NewMisraGries(k)
		require.NoError(t, err)
		r := rand.New(rand.NewPCG(k, 7))
		truth := make(map[uint64]uint64)
		for range 20000 {
			key := r.Uint64N(64)
			if r.IntN(4) == 0 {
				key = r.Uint64N(1 << 20)
			}
			s.Add(key)
			truth[key]++
			assert.LessOrEqual(t, uint64(s.NumActive()), k-1)
		}
		m := s.StreamLength()
		assert.LessOrEqual(t, s.MaximumError(), m/k)
		for key, n := range truth {
			est := s.Estimate(key)
			assert.LessOrEqual(t, est, n)
			assert.LessOrEqual(t, n-est, m/k)
			assert.GreaterOrEqual(t, s.UpperBound(key), n)
		}
	}
}

func TestMisraGriesHeavyHitters(t *testing.T) {
	s, err := NewMisraGries(10)
	require.NoError(t, err)
	for i := range 1000 {
		switch {
		case i%2 == 0:
			s.Add(7)
		case i%5 == 1:
			s.Add(3)
		default:
			s.Add(uint64(1000 + i))
		}
	}
	rows := s.HeavyHitters(0.1)
	require.NotEmpty(t, rows)
	assert.Equal(t, uint64(7), rows[0].Key)
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		assert.True(t, prev.Count > cur.Count || (prev.Count == cur.Count && prev.Key < cur.Key))
	}
	for _, row := range rows {
		assert.GreaterOrEqual(t, float64(row.Count), 0.1*float64(s.StreamLength()))
	}
}

func TestMisraGriesHeavyHittersThresholdIsInclusive(t *testing.T) {
	s, err := NewMisraGries(4)
	require.NoError(t, err)
	for _, key := range []uint64{1, 1, 2, 2} {
		s.Add(key)
	}
	rows := s.HeavyHitters(0.5)
	assert.Equal(t, []common.HeavyHitter{{Count: 2, Key: 1}, {Count: 2, Key: 2}}, rows)
}

func TestMisraGriesFrequentItems(t *testing.T) {
	s, err := NewMisraGries(3)
	require.NoError(t, err)
	for _, key := range []uint64{1, 1, 1, 2, 3, 4} {
		s.Add(key)
	}
	// m = 6, threshold 1.8, one decrement round
	noFP := s.FrequentItems(0.3, ErrorTypeEnum.NoFalsePositives)
	require.Len(t, noFP, 1)
	assert.Equal(t, uint64(1), noFP[0].Key())
	assert.Equal(t, uint64(2), noFP[0].Estimate())
	assert.Equal(t, uint64(2), noFP[0].LowerBound())
	assert.Equal(t, uint64(3), noFP[0].UpperBound())

	noFN := s.FrequentItems(0.3, ErrorTypeEnum.NoFalseNegatives)
	require.Len(t, noFN, 2)
	assert.Equal(t, uint64(1), noFN[0].Key())
	assert.Equal(t, uint64(4), noFN[1].Key())
}

func TestMisraGriesEmpty(t *testing.T) {
	s, err := NewMisraGries(10)
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
	for _, phi := range []float64{0, 0.01, 0.5, 1} {
		rows := s.HeavyHitters(phi)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
		assert.Empty(t, s.FrequentItems(phi, ErrorTypeEnum.NoFalseNegatives))
	}
	assert.Equal(t, uint64(0), s.Estimate(1))
}

func TestMisraGriesSize(t *testing.T) {
	s, err := NewMisraGries(4)
	require.NoError(t, err)
	empty := s.Size()
	s.Add(1)
	s.Add(2)
	assert.Equal(t, empty+32, s.Size())
	s.Add(3)
	s.Add(4) // decrements all, nothing tracked
	assert.Equal(t, empty, s.Size())
}

func TestMisraGriesString(t *testing.T) {
	s, err := NewMisraGries(4)
	require.NoError(t, err)
	s.Add(9)
	str := s.String()
	assert.True(t, strings.HasPrefix(str, "MisraGries:"))
	assert.Contains(t, str, "Stream Length    : 1")
}

func BenchmarkMisraGriesAdd(b *testing.B) {
	for _, k := range []uint64{10, 100, 1000} {
		b.Run(strconv.FormatUint(k, 10), func(b *testing.B) {
			s, _ := NewMisraGries(k)
			r := rand.New(rand.NewPCG(1, 2))
			keys := make([]uint64, 1<<12)
			for i := range keys {
				keys[i] = r.Uint64N(1 << 10)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s.Add(keys[i&(len(keys)-1)])
			}
		})
	}
}
