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

import "github.com/streamsketch/heavyhitters-go/common"

// candidateSet remembers every key whose estimate reached the watermark
// fraction of the stream at the time it was added. It only grows.
type candidateSet struct {
	watermark float64
	keys      map[uint64]struct{}
}

func newCandidateSet(watermark float64) *candidateSet {
	return &candidateSet{
		watermark: watermark,
		keys:      make(map[uint64]struct{}),
	}
}

func (s *candidateSet) observe(key uint64, estimate uint64, streamLength uint64) {
	if float64(estimate) >= float64(streamLength)*s.watermark {
		s.keys[key] = struct{}{}
	}
}

func (s *candidateSet) len() int {
	return len(s.keys)
}

// size is one word per tracked key.
func (s *candidateSet) size() uint64 {
	return uint64(len(s.keys)) * 8
}

// collect re-estimates every candidate and keeps those at or above phi times
// the stream length.
func (s *candidateSet) collect(phi float64, streamLength uint64, estimate func(uint64) uint64) []common.HeavyHitter {
	threshold := common.Threshold(phi, streamLength)
	rows := make([]common.HeavyHitter, 0)
	for key := range s.keys {
		if est := estimate(key); float64(est) >= threshold {
			rows = append(rows, common.HeavyHitter{Count: est, Key: key})
		}
	}
	common.SortHeavyHitters(rows)
	return rows
}
