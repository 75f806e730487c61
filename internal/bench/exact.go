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

package bench

import (
	"github.com/streamsketch/heavyhitters-go/common"
)

// Exact counts every key in a map. It answers the same queries as the
// sketches with no error.
type Exact struct {
	streamLength uint64
	counts       map[uint64]uint64
}

var _ common.FrequencySketch = (*Exact)(nil)

func NewExact(sizeHint int) *Exact {
	return &Exact{counts: make(map[uint64]uint64, sizeHint)}
}

func (e *Exact) Add(key uint64) {
	e.counts[key]++
	e.streamLength++
}

func (e *Exact) Estimate(key uint64) uint64 {
	return e.counts[key]
}

func (e *Exact) HeavyHitters(phi float64) []common.HeavyHitter {
	threshold := common.Threshold(phi, e.streamLength)
	rows := make([]common.HeavyHitter, 0)
	for key, count := range e.counts {
		if float64(count) >= threshold {
			rows = append(rows, common.HeavyHitter{Count: count, Key: key})
		}
	}
	common.SortHeavyHitters(rows)
	return rows
}

// Size counts a key and a value per distinct key.
func (e *Exact) Size() uint64 {
	return 16 * uint64(len(e.counts))
}

func (e *Exact) StreamLength() uint64 {
	return e.streamLength
}

func (e *Exact) NumDistinct() int {
	return len(e.counts)
}
