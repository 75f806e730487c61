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

// Package frequencies implements the Misra-Gries frequent items summary.
//
// A MisraGries with parameter k keeps at most k-1 counters. Every estimate is
// a lower bound on the true count and falls short of it by at most m/k, where
// m is the stream length, so every key occurring more than m/k times is
// tracked at the end of the stream.
package frequencies

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/streamsketch/heavyhitters-go/common"
	"github.com/streamsketch/heavyhitters-go/internal"
)

// ErrInvalidCapacity is returned when a Misra-Gries sketch is asked for k < 1.
var ErrInvalidCapacity = errors.New("frequencies: k must be at least 1")

// MisraGries keeps at most k-1 counters and never overestimates a key.
type MisraGries struct {
	k            uint64
	streamLength uint64
	// Number of times every counter was decremented at once. Bounds the
	// undercount of any estimate.
	decrements uint64
	counters   map[uint64]uint64
}

var _ common.FrequencySketch = (*MisraGries)(nil)

// NewMisraGries returns an empty summary holding at most k-1 counters.
func NewMisraGries(k uint64) (*MisraGries, error) {
	if k == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, k)
	}
	return &MisraGries{
		k:        k,
		counters: make(map[uint64]uint64, min(k-1, 1<<16)),
	}, nil
}

// Add records one occurrence of key. A tracked key is incremented. An
// untracked key takes a free counter if there is one; otherwise every counter
// is decremented, counters reaching zero are dropped and key is not inserted.
func (s *MisraGries) Add(key uint64) {
	s.streamLength++
	if _, ok := s.counters[key]; ok {
		s.counters[key]++
		return
	}
	if uint64(len(s.counters)) < s.Capacity() {
		s.counters[key] = 1
		return
	}
	s.decrements++
	for k, c := range s.counters {
		if c == 1 {
			delete(s.counters, k)
		} else {
			s.counters[k] = c - 1
		}
	}
}

// Estimate returns the counter of key, or 0 when key is not tracked. It is
// never above the true count.
func (s *MisraGries) Estimate(key uint64) uint64 {
	return s.counters[key]
}

// LowerBound is the same as Estimate.
func (s *MisraGries) LowerBound(key uint64) uint64 {
	return s.Estimate(key)
}

// UpperBound returns Estimate(key) + MaximumError(), never below the true
// count of key.
func (s *MisraGries) UpperBound(key uint64) uint64 {
	return s.Estimate(key) + s.decrements
}

// MaximumError returns the largest possible undercount of any estimate. It
// never exceeds StreamLength() / k.
func (s *MisraGries) MaximumError() uint64 {
	return s.decrements
}

// Capacity returns k-1, the maximum number of tracked keys.
func (s *MisraGries) Capacity() uint64 {
	return s.k - 1
}

// NumActive returns the number of tracked keys.
func (s *MisraGries) NumActive() int {
	return len(s.counters)
}

// StreamLength returns the number of keys added so far.
func (s *MisraGries) StreamLength() uint64 {
	return s.streamLength
}

// IsEmpty returns true if nothing was added.
func (s *MisraGries) IsEmpty() bool {
	return s.streamLength == 0
}

// HeavyHitters returns the tracked keys whose counter is at least phi *
// StreamLength(), by descending count then ascending key.
func (s *MisraGries) HeavyHitters(phi float64) []common.HeavyHitter {
	threshold := common.Threshold(phi, s.streamLength)
	rows := make([]common.HeavyHitter, 0)
	for key, count := range s.counters {
		if float64(count) >= threshold {
			rows = append(rows, common.HeavyHitter{Count: count, Key: key})
		}
	}
	common.SortHeavyHitters(rows)
	return rows
}

// FrequentItems returns the tracked keys whose bound selected by errorType is
// at least phi * StreamLength(), with their estimates and bounds.
//
// With NoFalseNegatives every key whose true count reaches the threshold is
// included, provided the threshold exceeds MaximumError(). With
// NoFalsePositives every included key truly reaches the threshold.
func (s *MisraGries) FrequentItems(phi float64, errorType ErrorType) []Row {
	threshold := common.Threshold(phi, s.streamLength)
	rows := make([]Row, 0)
	for key, count := range s.counters {
		lb, ub := count, count+s.decrements
		bound := lb
		if errorType == ErrorTypeEnum.NoFalseNegatives {
			bound = ub
		}
		if float64(bound) >= threshold {
			rows = append(rows, newRow(key, count, ub, lb))
		}
	}
	sortRows(rows)
	return rows
}

// Size returns the bytes held: the struct plus a key and a count per tracked
// entry.
func (s *MisraGries) Size() uint64 {
	return uint64(unsafe.Sizeof(*s)) + 16*uint64(len(s.counters))
}

func (s *MisraGries) String() string {
	var sb strings.Builder
	sb.WriteString(internal.FamilyEnum.MisraGries.Name + ":")
	sb.WriteString("\n")
	sb.WriteString("  k                : " + strconv.FormatUint(s.k, 10))
	sb.WriteString("\n")
	sb.WriteString("  Stream Length    : " + strconv.FormatUint(s.streamLength, 10))
	sb.WriteString("\n")
	sb.WriteString("  Max Error Offset : " + strconv.FormatUint(s.decrements, 10))
	sb.WriteString("\n")
	sb.WriteString("  Active Items     : " + strconv.Itoa(len(s.counters)))
	sb.WriteString("\n")
	return sb.String()
}
