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

package common

import (
	"cmp"
	"fmt"
	"slices"
)

// HeavyHitter is one row of a heavy hitters answer.
type HeavyHitter struct {
	Count uint64
	Key   uint64
}

func (h HeavyHitter) String() string {
	return fmt.Sprintf("  %20d %d", h.Count, h.Key)
}

// SortHeavyHitters orders rows by descending count, then ascending key.
func SortHeavyHitters(rows []HeavyHitter) {
	slices.SortFunc(rows, func(a, b HeavyHitter) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
}

// Threshold returns phi times the stream length m.
func Threshold(phi float64, m uint64) float64 {
	return phi * float64(m)
}
